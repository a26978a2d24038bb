package buildpipeline

import (
	"sync"
	"time"
)

// Stage is the coarse step a file is in, as shown by the progress UI.
type Stage string

const (
	StageParse    Stage = "parse" // lexing and parsing
	StageValidate Stage = "validate"
	StagePlan     Stage = "plan"
	StageEmit     Stage = "emit" // Go source generation
	StageWrite    Stage = "write"
)

// Status of a file within its stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports one file's progress; File == "" describes the whole build.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent may be called from
// several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink отправляет события в канал; Ch читает TUI.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch != nil {
		s.Ch <- evt
	}
}

// Timings суммирует длительность стадий по всем файлам; безопасен для горутин.
type Timings struct {
	mu     sync.Mutex
	stages map[Stage]time.Duration
}

// Add is a no-op on a nil receiver, so callers need not check.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stages == nil {
		t.stages = map[Stage]time.Duration{}
	}
	t.stages[stage] += dur
}

// Has reports whether any file reached stage.
func (t *Timings) Has(stage Stage) bool {
	_, ok := t.lookup(stage)
	return ok
}

func (t *Timings) Duration(stage Stage) time.Duration {
	d, _ := t.lookup(stage)
	return d
}

func (t *Timings) lookup(stage Stage) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.stages[stage]
	return d, ok
}
