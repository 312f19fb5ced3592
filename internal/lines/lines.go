// Package lines splits a token stream into source lines of chord/lyric
// segments, keeping the left-to-right order of the source. It is the view
// used by the song-line renderer.
package lines

import (
	"chordpro/internal/directive"
	"chordpro/internal/lexer"
	"chordpro/internal/token"
)

// Placeholder is the lyric text of an empty line.
const Placeholder = "\u00a0"

// Directive is a directive occupying one segment.
type Directive struct {
	Name  string
	Value string
	// Items holds chord definition items for define.
	Items []string
}

// Segment is a chord and the lyric text sung under it. Either part may
// be empty; a directive segment has neither.
type Segment struct {
	Chord     string
	Lyrics    string
	Directive *Directive
}

// IsPlaceholder reports whether s stands for an empty line.
func (s Segment) IsPlaceholder() bool {
	return s.Chord == "" && s.Directive == nil && s.Lyrics == Placeholder
}

// Split groups tokens into lines of segments. Lines holding only a
// comment are dropped and a trailing newline does not start a new line.
// Body lines of choruses and verses are scanned again as song text so
// their chords are recognized; tab and grid bodies stay verbatim.
func Split(tokens []token.Token) [][]Segment {
	var (
		out     [][]Segment
		line    []token.Token
		section string
		started bool
	)
	flush := func() {
		if segs := Segments(line); segs != nil {
			out = append(out, segs)
		}
		line = line[:0]
	}
	for _, tok := range tokens {
		started = true
		switch tok.Kind {
		case token.Newline:
			flush()
			started = false
			continue
		case token.SectionOpen:
			if directive.IsBody(tok.Text) {
				section = tok.Text
			}
		case token.SectionClose:
			section = ""
		case token.BodyLine:
			if section == directive.StartOfChorus || section == directive.StartOfVerse {
				if toks, err := lexer.ScanString(tok.Text); err == nil {
					line = append(line, toks...)
					continue
				}
			}
		}
		line = append(line, tok)
	}
	if started || (len(out) == 0 && len(tokens) == 0) {
		flush()
	}
	return out
}

// Segments splits the tokens of one line. A chord starts a new segment
// and takes the first lyric or whitespace run after it; any other run
// gets a segment of its own. A line without tokens yields the placeholder
// segment and a comment-only line yields nil.
func Segments(tokens []token.Token) []Segment {
	var (
		out        []Segment
		hasComment bool
		open       bool // last segment is a chord still waiting for lyrics
	)
	lastDirective := func() *Directive {
		if n := len(out); n > 0 {
			return out[n-1].Directive
		}
		return nil
	}
	valued := false
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Chord, token.MeasureBar:
			out = append(out, Segment{Chord: tok.Text})
			open = true
		case token.LyricRun, token.Whitespace, token.BodyLine:
			if open {
				out[len(out)-1].Lyrics = tok.Text
			} else {
				out = append(out, Segment{Lyrics: tok.Text})
			}
			open = false
		case token.DirectiveName, token.SectionOpen, token.SectionClose:
			out = append(out, Segment{Directive: &Directive{Name: tok.Text}})
			open, valued = false, false
		case token.DirectiveValue:
			if d := lastDirective(); d != nil {
				if !valued {
					d.Value, valued = tok.Text, true
				} else {
					d.Items = append(d.Items, tok.Text)
				}
			}
		case token.DefineBaseFret, token.DefineFrets, token.DefineFingers:
			if d := lastDirective(); d != nil {
				d.Items = append(d.Items, tok.Text)
			}
		case token.CommentOpen, token.CommentText:
			hasComment = true
		}
	}
	if len(out) == 0 {
		if hasComment {
			return nil
		}
		return []Segment{{Lyrics: Placeholder}}
	}
	return out
}

// HasChords reports whether any segment of line carries a chord.
func HasChords(line []Segment) bool {
	for _, s := range line {
		if s.Chord != "" {
			return true
		}
	}
	return false
}

// Parse scans text and splits it into lines.
func Parse(text string) ([][]Segment, error) {
	toks, err := lexer.ScanString(text)
	if err != nil {
		return nil, err
	}
	return Split(toks), nil
}
