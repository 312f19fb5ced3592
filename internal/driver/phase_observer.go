package driver

import (
	"context"
	"time"

	"chordpro/internal/observ"
	"chordpro/internal/trace"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// Phase names.
const (
	PhaseLoad     = "load"
	PhaseScan     = "scan"
	PhaseAssemble = "assemble"
	PhaseRender   = "render"
)

// PhaseEvent describes a phase boundary for one file.
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Err     error
}

// PhaseObserver receives phase events emitted by Tokenize, Parse and ParseDir.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) emit(ev PhaseEvent) {
	if o != nil {
		o(ev)
	}
}

// phase runs fn under a trace span, an optional timer entry and the
// observer's start/end events.
func phase(ctx context.Context, name, file string, timer *observ.Timer, obs PhaseObserver, fn func(context.Context) error) error {
	obs.emit(PhaseEvent{File: file, Name: name, Status: PhaseStart})
	ctx, span := trace.Start(ctx, trace.ScopePhase, name)
	idx := -1
	if timer != nil {
		idx = timer.Begin(name)
	}

	err := fn(ctx)

	note := ""
	if err != nil {
		note = "failed"
		span.WithExtra("error", err.Error())
	}
	if timer != nil {
		timer.End(idx, note)
	}
	elapsed := span.End(file)
	obs.emit(PhaseEvent{File: file, Name: name, Status: PhaseEnd, Elapsed: elapsed, Err: err})
	return err
}
