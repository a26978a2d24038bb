package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kiwi/internal/diag"
	"kiwi/internal/diagfmt"
	"kiwi/internal/source"
	"kiwi/internal/version"
)

// diagOutput collects how diagnostics should be rendered.
type diagOutput struct {
	format   string // pretty|json|sarif|short
	color    bool
	notes    bool
	pathMode diagfmt.PathMode
	max      int
}

func readDiagOutput(cmd *cobra.Command, format string) (diagOutput, error) {
	switch format {
	case "pretty", "json", "sarif", "short":
	default:
		return diagOutput{}, fmt.Errorf("unknown diagnostics format: %s (expected pretty|json|sarif|short)", format)
	}
	root := cmd.Root().PersistentFlags()
	colorFlag, err := root.GetString("color")
	if err != nil {
		return diagOutput{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	pathMode, err := root.GetString("path-mode")
	if err != nil {
		return diagOutput{}, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return diagOutput{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	notes := false
	if f := cmd.Flags().Lookup("with-notes"); f != nil {
		notes = f.Value.String() == "true"
	}
	return diagOutput{
		format:   format,
		color:    useColor(colorFlag, os.Stderr),
		notes:    notes,
		pathMode: diagfmt.ParsePathMode(pathMode),
		max:      maxDiagnostics,
	}, nil
}

func useColor(flag string, f *os.File) bool {
	switch flag {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(f)
	}
}

// render writes bag. Machine formats are always written so consumers get
// an empty document on success; pretty and short stay silent.
func (o diagOutput) render(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil {
		bag = diag.NewBag(o.max)
	}
	switch o.format {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         o.pathMode,
			Max:              o.max,
			IncludeNotes:     o.notes,
		})
	case "sarif":
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "kiwic",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	case "short":
		if bag.Len() == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Pointers(), fs, o.notes))
		return err
	default:
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     o.color,
			Context:   1,
			PathMode:  o.pathMode,
			ShowNotes: o.notes,
		})
		return nil
	}
}

// machine reports whether the format is meant for stdout consumers.
func (o diagOutput) machine() bool {
	return o.format == "json" || o.format == "sarif"
}

// writer picks stdout for machine formats and stderr for humans.
func (o diagOutput) writer(cmd *cobra.Command) io.Writer {
	if o.machine() {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}

// prettyDiagnostics is the fixed pretty output used by tokenize and parse.
func prettyDiagnostics(cmd *cobra.Command) (diagOutput, error) {
	return readDiagOutput(cmd, "pretty")
}
