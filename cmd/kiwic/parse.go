package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kiwi/internal/diagfmt"
	"kiwi/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.kiwi",
		Short: "Parse a kiwi schema and print it",
		Long:  `Parse reads and validates a schema, then prints it back as IDL, JSON or YAML`,
		Args:  cobra.ExactArgs(1),
		RunE:  traced(runParse),
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	cmd.Flags().Bool("no-validate", false, "print the schema as parsed, without semantic checks")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	noValidate, err := cmd.Flags().GetBool("no-validate")
	if err != nil {
		return fmt.Errorf("failed to get no-validate flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	out, err := prettyDiagnostics(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{Stage: driver.StageValidate, MaxDiagnostics: out.max}
	if noValidate {
		opts.Stage = driver.StageParse
	}
	res, err := driver.CompileFile(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	if showTimings && res.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	if res.Failed() {
		if err := out.render(cmd.ErrOrStderr(), res.Bag, res.FileSet); err != nil {
			return err
		}
		return errFailed
	}

	w := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatSchemaPretty(w, res.Schema)
	case "json":
		return diagfmt.FormatSchemaJSON(w, res.Schema)
	case "yaml":
		return diagfmt.FormatSchemaYAML(w, res.Schema)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
