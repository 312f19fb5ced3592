package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"chordpro/internal/directive"
	"chordpro/internal/lines"
)

// TextOptions controls terminal rendering.
type TextOptions struct {
	// Color enables lipgloss styling; plain text otherwise.
	Color bool
	// Width truncates rows wider than this many cells when positive.
	Width int
}

type textStyles struct {
	chord   lipgloss.Style
	title   lipgloss.Style
	sub     lipgloss.Style
	comment lipgloss.Style
	section lipgloss.Style
}

func newTextStyles() textStyles {
	return textStyles{
		chord:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		title:   lipgloss.NewStyle().Bold(true).Underline(true),
		sub:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		comment: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("3")),
		section: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
}

// Text writes lines as plain text with every chord placed above the
// column where its lyrics start. Columns are measured in display cells so
// wide and combining characters stay aligned.
func Text(w io.Writer, ls [][]lines.Segment, opts TextOptions) error {
	bw := bufio.NewWriter(w)
	st := newTextStyles()
	paint := func(s lipgloss.Style, text string) string {
		if !opts.Color || text == "" {
			return text
		}
		return s.Render(text)
	}
	clip := func(text string) string {
		if opts.Width > 0 && runewidth.StringWidth(text) > opts.Width {
			return runewidth.Truncate(text, opts.Width, "")
		}
		return text
	}

	for _, line := range ls {
		var head []string
		var chordRow, lyricRow strings.Builder
		for _, seg := range line {
			if seg.Directive != nil {
				if s, ok := directiveText(st, seg.Directive); ok {
					head = append(head, paint(s, clip(directiveLabel(seg.Directive))))
				}
				continue
			}
			lyr := seg.Lyrics
			if seg.IsPlaceholder() {
				lyr = ""
			}
			width := runewidth.StringWidth(lyr)
			if seg.Chord != "" {
				if cw := runewidth.StringWidth(seg.Chord) + 1; cw > width {
					width = cw
				}
			}
			chordRow.WriteString(runewidth.FillRight(seg.Chord, width))
			lyricRow.WriteString(runewidth.FillRight(lyr, width))
		}
		for _, h := range head {
			if _, err := bw.WriteString(h + "\n"); err != nil {
				return err
			}
		}
		if lyricRowEmpty(line) {
			continue
		}
		if lines.HasChords(line) {
			row := clip(strings.TrimRight(chordRow.String(), " "))
			if _, err := bw.WriteString(paintChords(row, paint, st) + "\n"); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(clip(strings.TrimRight(lyricRow.String(), " ")) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// paintChords styles the chord names of a padded chord row but not the
// padding between them.
func paintChords(row string, paint func(lipgloss.Style, string) string, st textStyles) string {
	var sb strings.Builder
	for _, f := range strings.SplitAfter(row, " ") {
		name := strings.TrimRight(f, " ")
		if name == "" {
			sb.WriteString(f)
			continue
		}
		sb.WriteString(paint(st.chord, name))
		sb.WriteString(f[len(name):])
	}
	return sb.String()
}

func lyricRowEmpty(line []lines.Segment) bool {
	for _, s := range line {
		if s.Directive == nil {
			return false
		}
	}
	return true
}

func directiveText(st textStyles, d *lines.Directive) (lipgloss.Style, bool) {
	switch {
	case d.Name == directive.Title:
		return st.title, true
	case d.Name == directive.Subtitle:
		return st.sub, true
	case d.Name == directive.Comment || d.Name == "ci" || d.Name == "cb":
		return st.comment, true
	case directive.IsBlock(d.Name):
		return st.section, d.Value != "" || len(d.Items) > 0
	}
	return lipgloss.Style{}, false
}

func directiveLabel(d *lines.Directive) string {
	if d.Name == directive.Define {
		return strings.TrimSpace(d.Value + " " + strings.Join(d.Items, " "))
	}
	return d.Value
}
