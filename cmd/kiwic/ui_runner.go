package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"kiwi/internal/buildpipeline"
	"kiwi/internal/ui"
)

// wantProgressUI reads --ui for build. The progress view draws on os.Stdout,
// so auto only turns it on when the command writes to a terminal stdout.
func wantProgressUI(cmd *cobra.Command, setup *compileSetup) (bool, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return false, fmt.Errorf("failed to get ui flag: %w", err)
	}
	tty := cmd.OutOrStdout() == os.Stdout && isTerminal(os.Stdout)
	return progressUIEnabled(value, tty, setup.quiet, setup.out.machine())
}

// progressUIEnabled: --quiet и машинные форматы всегда выключают прогресс,
// даже при --ui on, иначе он смешается с JSON/SARIF в stdout.
func progressUIEnabled(value string, tty, quiet, machine bool) (bool, error) {
	var on bool
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		on = tty
	case "on":
		on = true
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return on && !quiet && !machine, nil
}

type buildOutcome struct {
	result buildpipeline.BuildResult
	err    error
}

// runBuildWithUI runs Build in the background and renders its progress
// events until the build closes the channel.
func runBuildWithUI(ctx context.Context, title string, files []string, req *buildpipeline.BuildRequest) (buildpipeline.BuildResult, error) {
	if req == nil {
		return buildpipeline.BuildResult{}, fmt.Errorf("missing build request")
	}
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := buildpipeline.Build(ctx, &reqCopy)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
