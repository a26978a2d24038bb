// Package buildpipeline runs `kiwic build` over a set of schema files and
// reports per-file progress.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"kiwi/internal/diag"
	"kiwi/internal/driver"
	"kiwi/internal/gogen"
	"kiwi/internal/observ"
	"kiwi/internal/source"
)

// ErrDiagnostics is returned when any file failed to compile.
var ErrDiagnostics = errors.New("diagnostics reported errors")

// BuildRequest configures one build.
type BuildRequest struct {
	Files          []string
	BaseDir        string
	OutDir         string // empty: next to each schema file
	Go             gogen.Options
	MaxDiagnostics int
	Jobs           int
	Cache          *driver.DiskCache
	CheckOnly      bool // stop after planning, write nothing
	Progress       ProgressSink
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	FileSet *source.FileSet // shared by all results
	Results []*driver.Result
	Outputs []string // written Go files, in input order
	Bag     *diag.Bag
	Timings *Timings
}

// Build compiles every file and, unless CheckOnly, writes one Go file per
// schema. A failing file does not stop the others; the returned error is
// ErrDiagnostics when any failed.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	result := BuildResult{Timings: &Timings{}}
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	names := make(map[string]string, len(req.Files))
	for _, f := range req.Files {
		names[filepath.ToSlash(filepath.Clean(f))] = displayName(f, req.BaseDir)
	}
	emitQueued(req.Progress, DisplayFiles(req.Files, req.BaseDir))

	obs := &phaseObserver{sink: req.Progress, names: names, timings: result.Timings}
	opts := driver.Options{
		MaxDiagnostics: req.MaxDiagnostics,
		Jobs:           req.Jobs,
		Cache:          req.Cache,
		Observer:       obs.OnPhase,
	}
	fileSet, results, err := driver.CompileFiles(ctx, req.BaseDir, req.Files, opts)
	result.FileSet = fileSet
	result.Results = results
	if err != nil {
		return result, err
	}

	for i, res := range results {
		name := displayName(req.Files[i], req.BaseDir)
		if res.Failed() {
			emitFile(req.Progress, name, StageValidate, StatusError, res.Err, 0)
			continue
		}
		if req.CheckOnly {
			emitFile(req.Progress, name, StagePlan, StatusDone, nil, 0)
			continue
		}
		out := write(ctx, req, res, name, result.Timings)
		if out != "" {
			result.Outputs = append(result.Outputs, out)
		}
	}

	result.Bag = driver.MergeBags(results, req.MaxDiagnostics)
	if req.Progress != nil {
		req.Progress.OnEvent(Event{Stage: StageWrite, Status: StatusDone})
	}
	if result.Bag.HasErrors() {
		return result, ErrDiagnostics
	}
	return result, nil
}

func write(ctx context.Context, req *BuildRequest, res *driver.Result, name string, timings *Timings) string {
	start := time.Now()
	emitFile(req.Progress, name, StageEmit, StatusWorking, nil, 0)
	code := driver.Generate(ctx, res, req.Go)
	timings.Add(StageEmit, time.Since(start))
	if res.Failed() {
		emitFile(req.Progress, name, StageEmit, StatusError, res.Err, time.Since(start))
		return ""
	}
	start = time.Now()
	emitFile(req.Progress, name, StageWrite, StatusWorking, nil, 0)
	outDir := req.OutDir
	if outDir == "" {
		outDir = filepath.Dir(res.File.Path)
	}
	path, err := driver.WriteOutput(res, outDir, code)
	elapsed := time.Since(start)
	timings.Add(StageWrite, elapsed)
	if err != nil {
		emitFile(req.Progress, name, StageWrite, StatusError, err, elapsed)
		return ""
	}
	emitFile(req.Progress, name, StageWrite, StatusDone, nil, elapsed)
	return path
}

// phaseObserver переводит события фаз драйвера в события прогресса.
type phaseObserver struct {
	sink    ProgressSink
	names   map[string]string
	timings *Timings
}

func stageOf(phase string) (Stage, bool) {
	switch phase {
	case observ.PhaseLex, observ.PhaseParse:
		return StageParse, true
	case observ.PhaseValidate, observ.PhaseCache:
		return StageValidate, true
	case observ.PhasePlan:
		return StagePlan, true
	case observ.PhaseEmit:
		return StageEmit, true
	}
	return "", false
}

func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	stage, ok := stageOf(ev.Phase)
	if !ok {
		return
	}
	if ev.Done {
		p.timings.Add(stage, ev.Elapsed)
	}
	if p.sink == nil {
		return
	}
	name, known := p.names[ev.Path]
	if !known {
		name = ev.Path
	}
	switch {
	case !ev.Done:
		emitFile(p.sink, name, stage, StatusWorking, nil, 0)
	case ev.Err != nil:
		emitFile(p.sink, name, stage, StatusError, ev.Err, ev.Elapsed)
	}
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitFile(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
