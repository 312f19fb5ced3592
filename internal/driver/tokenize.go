package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"chordpro/internal/diag"
	"chordpro/internal/lexer"
	"chordpro/internal/observ"
	"chordpro/internal/source"
	"chordpro/internal/token"
	"chordpro/internal/trace"
)

// Options control a single-file run.
type Options struct {
	MaxDiagnostics int
	// Timings records phase durations into the bag as an ObsTimings note.
	Timings bool
	OnPhase PhaseObserver
	// Cache, when set, short-circuits scanning of unchanged files.
	Cache *DiskCache
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens holds everything scanned before the error, if any. EOF is not
	// included.
	Tokens []token.Token
	Bag    *diag.Bag
	Err    *lexer.Error
	Cached bool
}

// Tokenize loads path and scans it. Load failures are returned as errors;
// scan failures are reported through Err and Bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	var fileID source.FileID
	err := phase(ctx, PhaseLoad, path, timer, opts.OnPhase, func(context.Context) error {
		var loadErr error
		fileID, loadErr = fs.Load(path)
		return loadErr
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	res := &TokenizeResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	res.scan(ctx, timer, opts)
	if timer != nil {
		appendTimingDiagnostic(res.Bag, "tokenize", path, timer.Report())
	}
	return res, nil
}

// scan fills Tokens, Err and Cached. Only clean scans are written back to
// the cache.
func (res *TokenizeResult) scan(ctx context.Context, timer *observ.Timer, opts Options) {
	_ = phase(ctx, PhaseScan, res.File.Path, timer, opts.OnPhase, func(ctx context.Context) error {
		key := CacheKey(res.File)
		if opts.Cache != nil {
			var payload DiskPayload
			hit, err := opts.Cache.Get(key, &payload)
			if err != nil {
				reportCacheError(res.Bag, err)
			} else if hit {
				if tokens, ok := payloadToTokens(res.File, &payload); ok {
					res.Tokens, res.Cached = tokens, true
					trace.Point(ctx, trace.ScopeFile, "cache-hit", res.File.Path)
					return nil
				}
			}
		}

		res.Tokens, res.Err = scanFile(ctx, res.File, res.Bag)
		if res.Err != nil {
			return res.Err
		}
		if opts.Cache != nil {
			if err := opts.Cache.Put(key, tokensToPayload(res.File, res.Tokens)); err != nil {
				reportCacheError(res.Bag, err)
			}
		}
		return nil
	})
}

func scanFile(ctx context.Context, file *source.File, bag *diag.Bag) ([]token.Token, *lexer.Error) {
	_, span := trace.Start(ctx, trace.ScopeFile, "lexer")
	reporter := (&lexer.ReporterAdapter{Bag: bag}).Reporter()
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	var tokens []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) {
				lexErr = &lexer.Error{Code: diag.UnknownCode, Msg: err.Error()}
			}
			span.WithExtra("error", lexErr.Code.ID())
			span.End(strconv.Itoa(len(tokens)))
			return tokens, lexErr
		}
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	span.End(strconv.Itoa(len(tokens)))
	return tokens, nil
}

func reportCacheError(bag *diag.Bag, err error) {
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.IOCacheError,
		Message:  "token cache: " + err.Error(),
	})
}
