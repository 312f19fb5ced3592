// Package trace records what the chordpro tool is doing: which command
// runs, how long each phase (load, scan, assemble, render) takes, and which
// files are processed.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	chordpro parse --trace=- --trace-level=phase song.cho
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: writes each event immediately (file or stderr); in
//     "both" mode it also feeds a ring
//   - RingTracer: keeps the last events in memory, dumped when a command fails
//
// # Levels and scopes
//
// LevelPhase shows ScopeDriver and ScopePhase events, LevelDetail adds
// per-file events and LevelDebug shows everything.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "scan")
//	defer span.End("")
package trace
