package driver

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"chordpro/internal/lines"
	"chordpro/internal/project"
	"chordpro/internal/render"
)

// RenderOptions select the output of Render.
type RenderOptions struct {
	Format   string // project.FormatHTML, FormatLines or FormatText
	Theme    string
	ExtraCSS string
	// Standalone wraps HTML output in a full document with the stylesheet.
	Standalone bool
	Color      bool
	Width      int
	OnPhase    PhaseObserver
}

// Render writes res in the requested format. res must have scanned
// cleanly.
func Render(ctx context.Context, w io.Writer, res *ParseResult, opts RenderOptions) error {
	if res.Err != nil {
		return fmt.Errorf("render %s: %w", res.File.Path, res.Err)
	}
	return phase(ctx, PhaseRender, res.File.Path, nil, opts.OnPhase, func(context.Context) error {
		switch opts.Format {
		case project.FormatText:
			return render.Text(w, lines.Split(res.Tokens), render.TextOptions{Color: opts.Color, Width: opts.Width})
		case project.FormatHTML, project.FormatLines, "":
			body := RenderHTML(res, opts.Format)
			if opts.Standalone {
				style, err := render.Stylesheet(opts.Theme, opts.ExtraCSS)
				if err != nil {
					return err
				}
				body = render.Document(res.Title(), style, body)
			}
			_, err := io.WriteString(w, body)
			return err
		default:
			return fmt.Errorf("%w %q", project.ErrUnknownFormat, opts.Format)
		}
	})
}

// RenderHTML returns the HTML fragment of one song: the node renderer for
// FormatHTML, the song-line renderer for FormatLines.
func RenderHTML(res *ParseResult, format string) string {
	if format == project.FormatLines {
		return render.Lines(lines.Split(res.Tokens))
	}
	return render.Nodes(res.Nodes)
}

func baseTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
