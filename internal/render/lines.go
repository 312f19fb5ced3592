package render

import (
	"html"
	"strings"

	"chordpro/internal/directive"
	"chordpro/internal/lines"
	"chordpro/internal/lexer"
	"chordpro/internal/song"
)

// Lines renders segmented lines as song-line markup. Chord cells are only
// written on lines that carry at least one chord.
func Lines(ls [][]lines.Segment) string {
	var sb strings.Builder
	for _, line := range ls {
		writeLine(&sb, line)
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, line []lines.Segment) {
	withChords := lines.HasChords(line)
	sb.WriteString(`<span class="song-line">`)
	for _, seg := range line {
		sb.WriteString(`<span class="song-linesegment">`)
		if seg.Directive != nil {
			writeDirective(sb, seg.Directive)
			sb.WriteString(`</span>`)
			continue
		}
		blankLyrics := strings.TrimSpace(seg.Lyrics) == "" && !seg.IsPlaceholder()
		if withChords {
			class := "song-chord"
			chord := seg.Chord
			if chord == "" {
				chord = " "
			} else if blankLyrics {
				class = "song-chord-nolyrics"
			}
			sb.WriteString(`<span class="` + class + `">` + html.EscapeString(chord) + `</span>`)
		}
		switch {
		case seg.IsPlaceholder():
			sb.WriteString(`<span class="song-lyrics">&nbsp;</span>`)
		case blankLyrics:
			lyr := seg.Lyrics
			if lyr == "" {
				lyr = " "
			}
			sb.WriteString(`<span class="song-lyrics song-lyrics-whitespace">` + lyr + `</span>`)
		default:
			sb.WriteString(`<span class="song-lyrics">` + html.EscapeString(seg.Lyrics) + `</span>`)
		}
		sb.WriteString(`</span>`)
	}
	sb.WriteString(`</span>`)
}

func writeDirective(sb *strings.Builder, d *lines.Directive) {
	var class string
	switch {
	case d.Name == directive.Title:
		class = "song-title"
	case d.Name == directive.Subtitle:
		class = "song-subtitle"
	case d.Name == directive.Comment || d.Name == "ci" || d.Name == "cb":
		class = "song-comment"
	case directive.IsBlock(d.Name) || directive.IsClose(d.Name):
		class = "song-section song-" + d.Name
	default:
		class = "song-directive song-directive-" + d.Name
	}
	text := d.Value
	if len(d.Items) > 0 {
		text = strings.TrimSpace(text + " " + strings.Join(d.Items, " "))
	}
	sb.WriteString(`<span class="` + html.EscapeString(class) + `">` + html.EscapeString(text) + `</span>`)
}

// Result is a formatted song.
type Result struct {
	HTML     string
	Title    string
	Subtitle string
}

// Format parses text and renders it as song-line HTML together with the
// song's title and subtitle.
func Format(text string) (Result, error) {
	toks, err := lexer.ScanString(text)
	if err != nil {
		return Result{}, err
	}
	sum := song.Summarize(song.Assemble(toks))
	return Result{
		HTML:     Lines(lines.Split(toks)),
		Title:    sum.Title,
		Subtitle: sum.Subtitle,
	}, nil
}
