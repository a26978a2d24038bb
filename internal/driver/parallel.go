package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"kiwi/internal/diag"
	"kiwi/internal/project"
	"kiwi/internal/source"
	"kiwi/internal/trace"
)

// CompileDir compiles every *.kiwi file below dir in parallel.
func CompileDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*Result, error) {
	files, err := project.ListSchemaFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return CompileFiles(ctx, dir, files, opts)
}

// CompileFiles compiles files in parallel. Results keep the order of files;
// a file that failed to load gets a result carrying an IO diagnostic.
func CompileFiles(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, []*Result, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагрузка в порядке files: FileID совпадает с индексом входа
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		ids[i], loadErrs[i] = fileSet.Load(path)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewPathError(diag.IOLoadFileError, path, "failed to load file: "+loadErrs[i].Error()))
				results[i] = &Result{FileSet: fileSet, Bag: bag, Err: loadErrs[i]}
				return nil
			}

			fctx, span := trace.Start(gctx, trace.ScopeFile, "file:"+path)
			res := compile(fctx, fileSet, fileSet.Get(ids[i]), opts)
			detail := "ok"
			if res.Failed() {
				detail = "failed"
			}
			span.End(detail)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags collects the diagnostics of results into one sorted bag.
func MergeBags(results []*Result, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r != nil && r.Bag != nil {
			out.Merge(r.Bag)
		}
	}
	out.Sort()
	return out
}
