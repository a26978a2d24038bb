package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"kiwi/internal/diag"
	"kiwi/internal/project"
)

// inputSet is the resolved list of schema files for check, build and watch.
type inputSet struct {
	files    []string
	paths    []string // arguments as given (or manifest inputs), for watch
	baseDir  string
	manifest *project.Manifest // nil when inputs came from arguments
}

// inputError is a project-level failure rendered as a diagnostic.
type inputError struct {
	code diag.Code
	path string
	err  error
}

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func (e *inputError) Diagnostic() diag.Diagnostic {
	return diag.NewPathError(e.code, e.path, e.err.Error())
}

// resolveInputs expands args into schema files. Without args it uses the
// kiwi.toml found by walking up from wd.
func resolveInputs(wd string, args []string) (inputSet, error) {
	if len(args) == 0 {
		return manifestInputs(wd)
	}

	seen := make(map[string]struct{})
	set := inputSet{baseDir: wd, paths: args}
	for _, arg := range args {
		files, err := project.ListSchemaFiles(arg)
		if err != nil {
			return inputSet{}, &inputError{code: diag.IOLoadFileError, path: arg, err: err}
		}
		for _, f := range files {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			set.files = append(set.files, f)
		}
	}
	if len(args) == 1 {
		if st, err := os.Stat(args[0]); err == nil && st.IsDir() {
			set.baseDir = args[0]
		}
	}
	sort.Strings(set.files)
	if len(set.files) == 0 {
		return inputSet{}, &inputError{code: diag.ProjNoInputs, path: args[0], err: errors.New("no *.kiwi files found")}
	}
	return set, nil
}

func manifestInputs(wd string) (inputSet, error) {
	path, ok, err := project.FindManifest(wd)
	if err != nil {
		return inputSet{}, err
	}
	if !ok {
		return inputSet{}, &inputError{
			code: diag.ProjManifestNotFound,
			path: filepath.Join(wd, project.ManifestName),
			err:  fmt.Errorf("no input files given and no %s found", project.ManifestName),
		}
	}
	m, err := project.LoadManifest(path)
	if err != nil {
		return inputSet{}, &inputError{code: diag.ProjInvalidManifest, path: path, err: err}
	}
	files, err := m.InputFiles()
	if err != nil {
		return inputSet{}, &inputError{code: diag.ProjInvalidManifest, path: path, err: err}
	}
	if len(files) == 0 {
		return inputSet{}, &inputError{code: diag.ProjNoInputs, path: path, err: errors.New("[schema].inputs matched no *.kiwi files")}
	}
	paths := make([]string, 0, len(m.Schema.Inputs))
	for _, in := range m.Schema.Inputs {
		if !filepath.IsAbs(in) {
			in = filepath.Join(m.Root, in)
		}
		paths = append(paths, in)
	}
	return inputSet{files: files, paths: paths, baseDir: m.Root, manifest: m}, nil
}

// reportInputError renders a project-level error as a diagnostic and
// returns errFailed; other errors pass through.
func reportInputError(out diagOutput, w io.Writer, err error) error {
	var ie *inputError
	if !errors.As(err, &ie) {
		return err
	}
	bag := diag.NewBag(out.max)
	bag.Add(ie.Diagnostic())
	if rerr := out.render(w, bag, nil); rerr != nil {
		return rerr
	}
	return errFailed
}
