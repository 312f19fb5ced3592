package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"chordpro/internal/diag"
	"chordpro/internal/source"
)

type palette struct {
	err, warn, info, path, code, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan),
		path:  color.New(color.Bold),
		code:  color.New(color.Faint),
		caret: color.New(color.FgGreen, color.Bold),
		note:  color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.code, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes diagnostics in human-readable form, in the order of
// bag.Items() (callers sort first):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   2 | line of source
//	     |     ^~~~
//
// followed by notes when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		loc := location(fs, d.Primary, opts.PathMode)
		sev := p.severity(d.Severity)
		if _, err := fmt.Fprintf(w, "%s%s %s: %s\n",
			p.path.Sprint(loc), sev.Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message); err != nil {
			return err
		}
		if err := writeSnippet(w, fs, d.Primary, opts.Context, p); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s %s%s\n", p.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// location renders "path:line:col: " or "" for spans outside fs.
func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fileFor(fs, sp)
	if f == nil {
		return ""
	}
	lc := f.LineCol(sp.Start)
	return fmt.Sprintf("%s:%d:%d: ", displayPath(f, fs, mode), lc.Line, lc.Col)
}

func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int8, p palette) error {
	f := fileFor(fs, sp)
	if f == nil || f.Len() == 0 {
		return nil
	}
	start, end := f.LineCol(sp.Start), f.LineCol(sp.End)
	first := start.Line
	if context > 0 {
		back := uint32(context)
		if back >= first {
			back = first - 1
		}
		first -= back
	}
	gutter := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		if _, err := fmt.Fprintf(w, " %*d | %s\n", gutter, ln, f.GetLine(ln)); err != nil {
			return err
		}
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		stop := int(end.Col) - 1
		if stop > len(line) {
			stop = len(line)
		}
		if cells := runewidth.StringWidth(line[col:stop]); cells > 1 {
			width = cells
		}
	}
	marker := "^" + strings.Repeat("~", width-1)
	_, err := fmt.Fprintf(w, " %s | %s%s\n", strings.Repeat(" ", gutter), strings.Repeat(" ", pad), p.caret.Sprint(marker))
	return err
}
