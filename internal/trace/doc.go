// Package trace records compiler phase boundaries for kiwic.
//
// Enable it from the command line:
//
//	kiwic check --trace=- --trace-level=phase game.kiwi
//
// Tracers:
//
//   - Nop: disabled tracing
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events, dumped when a command fails
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes: phase emits driver and phase spans, detail adds
// per-file spans, debug adds per-definition events.
//
// A tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", 0)
//	defer span.End("")
package trace
