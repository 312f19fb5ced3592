package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"
	"time"

	"chordpro/internal/diag"
	"chordpro/internal/driver"
	"chordpro/internal/project"
	"chordpro/internal/render"
	"chordpro/internal/source"
	"chordpro/internal/trace"
)

// ErrBookFormat is returned for render formats a songbook cannot use.
var ErrBookFormat = errors.New("songbook needs an HTML format")

// BookRequest describes one songbook build.
type BookRequest struct {
	Dir    string
	Config project.Config

	Jobs           int
	MaxDiagnostics int
	Cache          *driver.DiskCache
	Progress       ProgressSink
}

// BookResult is a built songbook. Songs that failed to scan are left out
// of HTML and reported in Bag.
type BookResult struct {
	FileSet  *source.FileSet
	Songs    []driver.ParseDirResult
	HTML     string
	Bag      *diag.Bag
	Rendered int
	Timings  Timings
}

// BookFiles lists the songs a request would include, as display paths.
func BookFiles(req BookRequest) ([]string, error) {
	files, err := driver.ListSongs(req.Dir, req.Config.IsSong)
	if err != nil {
		return nil, err
	}
	return DisplayFiles(files, req.Dir), nil
}

// BuildBook parses every song under req.Dir and joins them into one HTML
// document with an index.
func BuildBook(ctx context.Context, req BookRequest) (BookResult, error) {
	cfg := req.Config
	if cfg.Render.Format == project.FormatText {
		return BookResult{}, fmt.Errorf("%w, got %q", ErrBookFormat, cfg.Render.Format)
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "book")
	defer span.End(req.Dir)

	var result BookResult
	base := absBase(req.Dir)
	files, err := driver.ListSongs(req.Dir, cfg.IsSong)
	if err != nil {
		return result, err
	}
	display := make([]string, len(files))
	for i, f := range files {
		display[i] = displayPath(f, base)
	}
	emitQueued(req.Progress, display)

	var mu sync.Mutex
	observer := func(ev driver.PhaseEvent) {
		file := displayPath(ev.File, base)
		stage := Stage(ev.Name)
		switch {
		case ev.Status == driver.PhaseStart:
			emitStage(req.Progress, file, stage, StatusWorking, nil, 0)
		case ev.Err != nil:
			emitStage(req.Progress, file, stage, StatusError, ev.Err, ev.Elapsed)
		}
		if ev.Status == driver.PhaseEnd {
			mu.Lock()
			result.Timings.Add(stage, ev.Elapsed)
			mu.Unlock()
		}
	}

	fileSet, songs, err := driver.ParseDir(ctx, req.Dir, driver.DirOptions{
		Options: driver.Options{
			MaxDiagnostics: req.MaxDiagnostics,
			OnPhase:        observer,
			Cache:          req.Cache,
		},
		Jobs:   req.Jobs,
		IsSong: cfg.IsSong,
	})
	result.FileSet, result.Songs = fileSet, songs
	if err != nil {
		return result, err
	}
	result.Bag = driver.MergeBags(songs, req.MaxDiagnostics)

	extra, err := cfg.ExtraCSS()
	if err != nil {
		return result, err
	}
	style, err := render.Stylesheet(cfg.Render.Theme, extra)
	if err != nil {
		return result, err
	}

	start := time.Now()
	var body, index strings.Builder
	for i, s := range songs {
		file := displayPath(s.Path, base)
		// failures were already reported by the observer
		if s.Result == nil || s.Result.Err != nil {
			continue
		}
		frag, took := renderSong(ctx, file, s.Result, cfg.Render.Format, req.Progress)
		id := "song-" + strconv.Itoa(i+1)
		writeIndexEntry(&index, id, s.Result.Title())
		body.WriteString(render.Song(id, frag))
		result.Rendered++
		emitStage(req.Progress, file, StageRender, StatusDone, nil, took)
	}
	result.Timings.Add(StageRender, time.Since(start))

	emitStage(req.Progress, "", StageBundle, StatusWorking, nil, 0)
	var doc strings.Builder
	if cfg.Book.Title != "" {
		doc.WriteString("<h1 class='book-title'>" + html.EscapeString(cfg.Book.Title) + "</h1>\n")
	}
	if index.Len() > 0 {
		doc.WriteString("<ul class='book-index'>\n")
		doc.WriteString(index.String())
		doc.WriteString("</ul>\n")
	}
	doc.WriteString(body.String())
	result.HTML = render.Document(cfg.Book.Title, style, doc.String())
	emitStage(req.Progress, "", StageBundle, StatusDone, nil, 0)
	return result, nil
}

func renderSong(ctx context.Context, file string, res *driver.ParseResult, format string, sink ProgressSink) (string, time.Duration) {
	emitStage(sink, file, StageRender, StatusWorking, nil, 0)
	_, span := trace.Start(ctx, trace.ScopeFile, string(StageRender))
	defer span.End(file)
	start := time.Now()
	frag := driver.RenderHTML(res, format)
	return frag, time.Since(start)
}

func writeIndexEntry(sb *strings.Builder, id, title string) {
	sb.WriteString("<li><a href='#" + id + "'>" + html.EscapeString(title) + "</a></li>\n")
}
