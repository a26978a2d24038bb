package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kiwi/internal/diagfmt"
	"kiwi/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.kiwi",
		Short: "Tokenize a kiwi schema file",
		Long:  `Tokenize breaks a kiwi schema file into its tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  traced(runTokenize),
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	out, err := prettyDiagnostics(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], out.max)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if result.Bag.HasErrors() {
		if err := out.render(cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
			return err
		}
		return errFailed
	}

	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	}
}
