package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"kiwi/internal/diag"
	"kiwi/internal/gogen"
	"kiwi/internal/observ"
)

// Generate emits Go source for a compiled result. It is a no-op returning
// nil when an earlier phase failed.
func Generate(ctx context.Context, res *Result, opts gogen.Options) []byte {
	if res.Failed() || res.Plan == nil {
		return nil
	}
	if opts.Source == "" && res.File != nil {
		opts.Source = filepath.Base(res.File.Path)
	}
	r := &runner{ctx: ctx, res: res}
	var out []byte
	r.run(observ.PhaseEmit, func() (err error) {
		out, err = gogen.Emit(res.Plan, opts)
		return err
	})
	return out
}

// OutputPath returns where build writes the Go file of schemaPath:
// outDir/<schema file name>.go.
func OutputPath(outDir, schemaPath string) string {
	return filepath.Join(outDir, filepath.Base(schemaPath)+".go")
}

// WriteOutput writes code next to other generated files, creating outDir.
// Failures are recorded in the result bag.
func WriteOutput(res *Result, outDir string, code []byte) (string, error) {
	path := OutputPath(outDir, res.File.Path)
	err := os.MkdirAll(outDir, 0o755)
	if err == nil {
		err = os.WriteFile(path, code, 0o600)
	}
	if err != nil {
		err = fmt.Errorf("write %s: %w", path, err)
		res.Bag.Add(diag.NewPathError(diag.IOWriteFileError, path, err.Error()))
		if res.Err == nil {
			res.Err = err
		}
		return "", err
	}
	return path, nil
}
