package driver

import (
	"context"

	"chordpro/internal/observ"
	"chordpro/internal/song"
)

type ParseResult struct {
	*TokenizeResult
	// Nodes is nil when scanning failed.
	Nodes   []song.Node
	Summary song.Summary
}

// Parse loads, scans and assembles one song.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	inner := opts
	inner.Timings = false

	tok, err := tokenizeTimed(ctx, path, inner, timer)
	if err != nil {
		return nil, err
	}
	res := &ParseResult{TokenizeResult: tok}
	res.assemble(ctx, timer, opts.OnPhase)
	if timer != nil {
		appendTimingDiagnostic(res.Bag, "parse", path, timer.Report())
	}
	return res, nil
}

// tokenizeTimed is Tokenize with an externally owned timer.
func tokenizeTimed(ctx context.Context, path string, opts Options, timer *observ.Timer) (*TokenizeResult, error) {
	if timer == nil {
		return Tokenize(ctx, path, opts)
	}
	var res *TokenizeResult
	err := timer.Time("tokenize", func() error {
		var terr error
		res, terr = Tokenize(ctx, path, opts)
		return terr
	})
	return res, err
}

func (res *ParseResult) assemble(ctx context.Context, timer *observ.Timer, obs PhaseObserver) {
	if res.Err != nil {
		return
	}
	_ = phase(ctx, PhaseAssemble, res.File.Path, timer, obs, func(context.Context) error {
		res.Nodes = song.Assemble(res.Tokens)
		res.Summary = song.Summarize(res.Nodes)
		return nil
	})
}

// Title returns the song title, falling back to the file's base name.
func (res *ParseResult) Title() string {
	if res.Summary.Title != "" {
		return res.Summary.Title
	}
	return baseTitle(res.File.Path)
}
