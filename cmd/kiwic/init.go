package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"kiwi/internal/project"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a kiwi.toml and a starter schema",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
	cmd.Flags().String("name", "", "package name (default: directory name)")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("failed to get name flag: %w", err)
	}
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		name = packageNameFrom(filepath.Base(abs))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	created, err := project.Init(dir, name)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	for _, p := range created {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", p)
	}
	return nil
}

// packageNameFrom turns a directory name into a schema package identifier.
func packageNameFrom(dir string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(dir) {
		switch {
		case r == '_' || (unicode.IsLetter(r) && r < unicode.MaxASCII):
			b.WriteRune(r)
		case unicode.IsDigit(r) && b.Len() > 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "schema"
	}
	return b.String()
}
