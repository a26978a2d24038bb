package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"kiwi/internal/buildpipeline"
	"kiwi/internal/project"
)

// DefaultDebounce is the quiet period after the last change before a rebuild.
const DefaultDebounce = 150 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Inputs are schema files or directories. Directories are rescanned on
	// every rebuild, so new *.kiwi files are picked up.
	Inputs []string
	// Request is the template for every build; Files is replaced.
	Request  buildpipeline.BuildRequest
	Debounce time.Duration
	Logger   zerolog.Logger
	// OnBuild, when set, is called after every build (the initial one included).
	OnBuild func(Build)
}

// Build describes one rebuild.
type Build struct {
	Seq     int
	Trigger []string // changed paths; empty for the initial build
	Files   []string
	Result  buildpipeline.BuildResult
	Err     error
	Elapsed time.Duration
}

// Watcher rebuilds its inputs on change.
type Watcher struct {
	cfg     Config
	fsw     *fsnotify.Watcher
	dirs    map[string]struct{}
	seq     int
	pending map[string]struct{}
}

// New creates a watcher over cfg.Inputs. Call Run to start it.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Inputs) == 0 {
		return nil, errors.New("watch: no inputs")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		cfg:     cfg,
		fsw:     fsw,
		dirs:    make(map[string]struct{}),
		pending: make(map[string]struct{}),
	}, nil
}

// Run builds once, then rebuilds after every burst of schema changes
// until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	log := w.cfg.Logger
	w.rebuild(ctx, nil)
	log.Info().Strs("dirs", w.watchedDirs()).Msg("watching for changes")

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			log.Info().Msg("watch stopped")
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			log.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Msg("change")
			w.pending[filepath.Clean(ev.Name)] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			trigger := make([]string, 0, len(w.pending))
			for p := range w.pending {
				trigger = append(trigger, p)
			}
			sort.Strings(trigger)
			clear(w.pending)
			w.rebuild(ctx, trigger)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}

// relevant reports whether ev touches a schema file. Generated .go files
// land in the same directories and must not retrigger a build.
func relevant(ev fsnotify.Event) bool {
	if !strings.HasSuffix(ev.Name, project.SchemaExt) {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) rebuild(ctx context.Context, trigger []string) {
	w.seq++
	log := w.cfg.Logger
	start := time.Now()
	b := Build{Seq: w.seq, Trigger: trigger}

	files, err := w.resolve()
	b.Files = files
	if err == nil {
		w.subscribe(files)
		req := w.cfg.Request
		req.Files = files
		b.Result, err = buildpipeline.Build(ctx, &req)
	}
	b.Err = err
	b.Elapsed = time.Since(start)

	entry := log.Info()
	if err != nil {
		entry = log.Error().Err(err)
	}
	entry.Int("build", b.Seq).
		Int("files", len(files)).
		Int("outputs", len(b.Result.Outputs)).
		Int("diagnostics", bagLen(b.Result)).
		Strs("trigger", trigger).
		Dur("elapsed", b.Elapsed).
		Msg("rebuilt")

	if w.cfg.OnBuild != nil {
		w.cfg.OnBuild(b)
	}
}

func bagLen(res buildpipeline.BuildResult) int {
	if res.Bag == nil {
		return 0
	}
	return res.Bag.Len()
}

// resolve expands Inputs into schema files. A deleted file is skipped so the
// rest keep building; a deleted directory is an error.
func (w *Watcher) resolve() ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, in := range w.cfg.Inputs {
		list, err := project.ListSchemaFiles(in)
		if err != nil {
			if strings.HasSuffix(in, project.SchemaExt) {
				w.cfg.Logger.Warn().Str("file", in).Err(err).Msg("input missing")
				continue
			}
			return nil, fmt.Errorf("list %s: %w", in, err)
		}
		for _, f := range list {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files, nil
}

// subscribe watches the directory of every input file and every input
// directory. fsnotify is not recursive, so nested directories come from
// the file list.
func (w *Watcher) subscribe(files []string) {
	want := make([]string, 0, len(files)+len(w.cfg.Inputs))
	for _, f := range files {
		want = append(want, filepath.Dir(f))
	}
	for _, in := range w.cfg.Inputs {
		if !strings.HasSuffix(in, project.SchemaExt) {
			want = append(want, in)
		} else {
			want = append(want, filepath.Dir(in))
		}
	}
	for _, dir := range want {
		dir = filepath.Clean(dir)
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			w.cfg.Logger.Warn().Str("dir", dir).Err(err).Msg("cannot watch")
			continue
		}
		w.dirs[dir] = struct{}{}
	}
}

func (w *Watcher) watchedDirs() []string {
	out := make([]string, 0, len(w.dirs))
	for d := range w.dirs {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
