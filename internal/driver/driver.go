package driver

import (
	"context"
	"time"

	"kiwi/internal/ast"
	"kiwi/internal/diag"
	"kiwi/internal/gen"
	"kiwi/internal/lexer"
	"kiwi/internal/observ"
	"kiwi/internal/parser"
	"kiwi/internal/sema"
	"kiwi/internal/source"
	"kiwi/internal/token"
	"kiwi/internal/trace"
)

// Stage is the last phase CompileFile runs.
type Stage uint8

const (
	StageTokenize Stage = iota + 1
	StageParse
	StageValidate
	StagePlan
)

// Options configure one compilation.
type Options struct {
	Stage          Stage // default StagePlan
	MaxDiagnostics int
	Jobs           int        // CompileDir parallelism, default GOMAXPROCS
	Cache          *DiskCache // nil disables the schema cache
	Observer       PhaseObserver
	KeepTokens     bool // keep tokens in Result even past StageTokenize
}

func (o Options) stage() Stage {
	if o.Stage == 0 {
		return StagePlan
	}
	return o.Stage
}

// Result holds everything one schema file produced.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Schema  *ast.Schema
	Plan    *gen.Plan
	Bag     *diag.Bag
	Err     error // first phase failure, also recorded in Bag
	Cached  bool  // schema came from the disk cache
	Timer   *observ.Timer
}

// Failed reports whether a phase failed.
func (r *Result) Failed() bool {
	return r == nil || r.Err != nil
}

// CompileFile loads path and runs the pipeline up to opts.Stage.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return compile(ctx, fs, fs.Get(id), opts), nil
}

// CompileSource runs the pipeline over an in-memory schema.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return compile(ctx, fs, fs.Get(id), opts)
}

func compile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *Result {
	res := &Result{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}
	r := &runner{ctx: ctx, res: res, opts: opts}
	stage := opts.stage()

	if stage >= StageValidate && opts.Cache != nil && r.fromCache() {
		if stage >= StagePlan {
			r.plan()
		}
		return res
	}

	if !r.run(observ.PhaseLex, func() (err error) {
		res.Tokens, err = lexer.Tokenize(file)
		return err
	}) || stage == StageTokenize {
		return res
	}
	tokens := res.Tokens
	if !opts.KeepTokens {
		res.Tokens = nil
	}
	if !r.run(observ.PhaseParse, func() (err error) {
		res.Schema, err = parser.Parse(tokens)
		return err
	}) || stage == StageParse {
		return res
	}
	if !r.run(observ.PhaseValidate, func() error {
		return sema.Validate(res.Schema)
	}) {
		return res
	}
	r.store()
	if stage >= StagePlan {
		r.plan()
	}
	return res
}

type runner struct {
	ctx  context.Context
	res  *Result
	opts Options
}

// run executes one phase under a trace span, a timer entry and the
// observer. A failure lands in the bag and stops the pipeline.
func (r *runner) run(name string, fn func() error) bool {
	if err := r.ctx.Err(); err != nil {
		r.fail(err)
		return false
	}
	parent := trace.CurrentSpan(r.ctx)
	span := trace.Begin(trace.FromContext(r.ctx), trace.ScopePhase, name, parent)
	r.notify(PhaseEvent{Phase: name})
	started := time.Now()

	err := r.res.Timer.Track(name, fn)

	detail := ""
	if err != nil {
		detail = diag.CodeOf(err).ID()
		r.fail(err)
	}
	span.WithExtra("file", r.res.File.Path).End(detail)
	r.notify(PhaseEvent{Phase: name, Done: true, Elapsed: time.Since(started), Err: err})
	return err == nil
}

func (r *runner) fail(err error) {
	if r.res.Err == nil {
		r.res.Err = err
	}
	diag.ReportErr(diag.BagReporter{Bag: r.res.Bag}, err, r.res.File.Path, diag.UnknownCode)
}

func (r *runner) notify(ev PhaseEvent) {
	if r.opts.Observer == nil {
		return
	}
	ev.Path = r.res.File.Path
	r.opts.Observer(ev)
}

func (r *runner) plan() {
	r.run(observ.PhasePlan, func() (err error) {
		r.res.Plan, err = gen.Build(r.res.Schema)
		return err
	})
}
