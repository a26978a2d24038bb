// Package main implements kiwic, the kiwi schema compiler.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kiwi/internal/buildpipeline"
	"kiwi/internal/version"
)

// errFailed is returned after diagnostics have already been printed.
var errFailed = errors.New("compilation failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kiwic",
		Short:         "Kiwi schema compiler",
		Long:          `kiwic validates kiwi schemas and generates Go encoders and decoders for them`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.String("cpuprofile", "", "write a CPU profile to file")
	pf.String("memprofile", "", "write a heap profile to file")
	pf.String("go-trace", "", "write a Go runtime trace to file")

	root.AddCommand(
		newTokenizeCmd(),
		newParseCmd(),
		newCheckCmd(),
		newBuildCmd(),
		newWatchCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		if !silentError(err) {
			fmt.Fprintf(os.Stderr, "kiwic: %v\n", err)
		}
		os.Exit(1)
	}
}

// silentError reports whether err was already rendered as diagnostics.
func silentError(err error) bool {
	return errors.Is(err, errFailed) || errors.Is(err, buildpipeline.ErrDiagnostics)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
