package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kiwi/internal/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags] [file.kiwi|dir]...",
		Short: "Rebuild kiwi schemas on change",
		Long: `Watch builds once and then rebuilds whenever a schema file changes.
Events are logged to stderr: human readable on a terminal, JSON lines otherwise.`,
		RunE: traced(runWatch),
	}
	addCompileFlags(cmd)
	addGoFlags(cmd)
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a rebuild")
	cmd.Flags().String("log-level", "info", "log level (debug|info|warn|error)")
	cmd.Flags().Bool("log-json", false, "always log JSON lines")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	setup, err := prepareCompile(cmd, args)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	levelStr, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return fmt.Errorf("failed to get log-json flag: %w", err)
	}
	level, err := watch.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := watch.NewLogger(cmd.ErrOrStderr(), !logJSON && isTerminal(os.Stderr), level)

	w, err := watch.New(watch.Config{
		Inputs:   setup.inputs.paths,
		Request:  setup.req,
		Debounce: debounce,
		Logger:   logger,
		OnBuild: func(b watch.Build) {
			if b.Result.Bag == nil {
				return
			}
			if rerr := setup.out.render(setup.out.writer(cmd), b.Result.Bag, b.Result.FileSet); rerr != nil {
				logger.Error().Err(rerr).Msg("cannot render diagnostics")
			}
			if setup.timing {
				printStageTimings(cmd.ErrOrStderr(), b.Result.Timings)
			}
		},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	start := time.Now()
	err = w.Run(ctx)
	logger.Info().Dur("uptime", time.Since(start)).Msg("bye")
	return err
}
