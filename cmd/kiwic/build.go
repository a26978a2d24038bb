package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kiwi/internal/buildpipeline"
	"kiwi/internal/driver"
	"kiwi/internal/gogen"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [file.kiwi|dir]...",
		Short: "Validate kiwi schemas",
		Long: `Check parses, validates and plans every schema without writing any code.
Without arguments the inputs of the nearest kiwi.toml are checked.`,
		RunE: traced(runCheck),
	}
	addCompileFlags(cmd)
	return cmd
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] [file.kiwi|dir]...",
		Short: "Generate Go code from kiwi schemas",
		Long: `Build writes one <schema>.kiwi.go file per schema.
Without arguments the inputs and [go] settings of the nearest kiwi.toml are used.`,
		RunE: traced(runBuild),
	}
	addCompileFlags(cmd)
	addGoFlags(cmd)
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	return cmd
}

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|sarif|short)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("disk-cache", false, "cache validated schemas on disk (experimental)")
}

func addGoFlags(cmd *cobra.Command) {
	cmd.Flags().String("out", "", "output directory (default: next to each schema, or [go].out)")
	cmd.Flags().String("package", "", "Go package name (default: the schema package, or [go].package)")
	cmd.Flags().String("wire-import", "", "import path of the wire package (default "+gogen.DefaultWireImport+")")
	cmd.Flags().Bool("lenient-enums", false, "decode unknown enum values instead of failing")
}

// compileSetup is everything check, build and watch share.
type compileSetup struct {
	inputs inputSet
	out    diagOutput
	req    buildpipeline.BuildRequest
	quiet  bool
	timing bool
}

func prepareCompile(cmd *cobra.Command, args []string) (*compileSetup, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	out, err := readDiagOutput(cmd, format)
	if err != nil {
		return nil, err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	diskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	inputs, err := resolveInputs(wd, args)
	if err != nil {
		return nil, reportInputError(out, out.writer(cmd), err)
	}

	setup := &compileSetup{
		inputs: inputs,
		out:    out,
		quiet:  quiet,
		timing: showTimings,
		req: buildpipeline.BuildRequest{
			Files:          inputs.files,
			BaseDir:        inputs.baseDir,
			MaxDiagnostics: out.max,
			Jobs:           jobs,
		},
	}
	if diskCache {
		cache, err := driver.OpenDiskCache("kiwi")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", err)
		} else {
			setup.req.Cache = cache
		}
	}
	if cmd.Flags().Lookup("out") != nil {
		if err := applyGoFlags(cmd, setup); err != nil {
			return nil, err
		}
	}
	return setup, nil
}

// applyGoFlags fills the [go] settings: manifest first, flags override.
func applyGoFlags(cmd *cobra.Command, setup *compileSetup) error {
	if m := setup.inputs.manifest; m != nil {
		setup.req.OutDir = m.OutDir()
		setup.req.Go.Package = m.Go.Package
		setup.req.Go.WireImport = m.Go.WireImport
	}
	flags := cmd.Flags()
	if flags.Changed("out") {
		outDir, _ := flags.GetString("out")
		setup.req.OutDir = filepath.Clean(outDir)
	}
	if flags.Changed("package") {
		setup.req.Go.Package, _ = flags.GetString("package")
	}
	if flags.Changed("wire-import") {
		setup.req.Go.WireImport, _ = flags.GetString("wire-import")
	}
	lenient, err := flags.GetBool("lenient-enums")
	if err != nil {
		return fmt.Errorf("failed to get lenient-enums flag: %w", err)
	}
	setup.req.Go.LenientEnums = lenient
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	setup, err := prepareCompile(cmd, args)
	if err != nil {
		return err
	}
	setup.req.CheckOnly = true
	res, err := buildpipeline.Build(cmd.Context(), &setup.req)
	return setup.finish(cmd, res, err, "checked")
}

func runBuild(cmd *cobra.Command, args []string) error {
	setup, err := prepareCompile(cmd, args)
	if err != nil {
		return err
	}
	progress, err := wantProgressUI(cmd, setup)
	if err != nil {
		return err
	}

	var res buildpipeline.BuildResult
	if progress {
		files := buildpipeline.DisplayFiles(setup.req.Files, setup.req.BaseDir)
		res, err = runBuildWithUI(cmd.Context(), "kiwic build", files, &setup.req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), &setup.req)
	}
	if !setup.quiet && !setup.out.machine() {
		for _, path := range res.Outputs {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", displayPath(path, setup.req.BaseDir))
		}
	}
	return setup.finish(cmd, res, err, "built")
}

// finish renders diagnostics, timings and the summary line.
func (s *compileSetup) finish(cmd *cobra.Command, res buildpipeline.BuildResult, err error, verb string) error {
	if res.Bag != nil {
		if rerr := s.out.render(s.out.writer(cmd), res.Bag, res.FileSet); rerr != nil {
			return rerr
		}
	}
	if s.timing {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	if err != nil {
		return err
	}
	if !s.quiet && !s.out.machine() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %d schema file(s)\n", verb, len(s.req.Files))
	}
	return nil
}

func displayPath(path, baseDir string) string {
	if baseDir == "" {
		return path
	}
	if rel, err := filepath.Rel(baseDir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
