package token

import (
	"chordpro/internal/source"
)

// Token represents a single scanned token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line uint32
	Col  uint32
}

// IsStructural reports whether the token only delimits structure and
// carries no value.
func (t Token) IsStructural() bool {
	switch t.Kind {
	case DirectiveOpen, DirectiveClose, CommentOpen:
		return true
	default:
		return false
	}
}

// IsDefineItem reports whether the token is part of a chord definition body.
func (t Token) IsDefineItem() bool {
	switch t.Kind {
	case DefineBaseFret, DefineFrets, DefineFingers:
		return true
	default:
		return false
	}
}

// IsLineContent reports whether the token belongs to the chord/lyric tracks
// of a line.
func (t Token) IsLineContent() bool {
	switch t.Kind {
	case Chord, MeasureBar, LyricRun, Whitespace:
		return true
	default:
		return false
	}
}
