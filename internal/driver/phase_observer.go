package driver

import "time"

// PhaseEvent is sent twice per phase and file: once before the phase runs
// (Done false) and once after it, with Elapsed and the phase error.
type PhaseEvent struct {
	Path    string
	Phase   string // observ.Phase*
	Done    bool
	Elapsed time.Duration
	Err     error
}

// PhaseObserver is called synchronously from the compiling goroutine, so
// CompileFiles may call it concurrently.
type PhaseObserver func(PhaseEvent)
