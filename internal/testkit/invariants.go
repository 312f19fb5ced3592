// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"chordpro/internal/song"
	"chordpro/internal/source"
	"chordpro/internal/token"
)

// CheckTokenInvariants runs a minimal set of invariants on a token stream
// scanned from sf:
// 1) every span points into sf and lies within its content
// 2) span starts never move backwards
// 3) Line/Col match the span start
// 4) chords carry text
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prev uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d (%s) points to file %d, want %d", i, tok.Kind, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("token %d (%s) span %v outside content of %d bytes", i, tok.Kind, sp, lenContent)
		}
		if sp.Start < prev {
			return fmt.Errorf("token %d (%s) starts at %d before previous start %d", i, tok.Kind, sp.Start, prev)
		}
		prev = sp.Start

		lc := sf.LineCol(sp.Start)
		if tok.Line != lc.Line || tok.Col != lc.Col {
			return fmt.Errorf("token %d (%s) at %d:%d, span says %d:%d", i, tok.Kind, tok.Line, tok.Col, lc.Line, lc.Col)
		}
		if tok.Kind == token.Chord && tok.Text == "" {
			return fmt.Errorf("token %d is an empty chord", i)
		}
	}
	return nil
}

// CheckNodeInvariants verifies the shape of an assembled song: verbatim
// nodes only live inside blocks, and chord and lyric lines are never empty.
func CheckNodeInvariants(nodes []song.Node) error {
	var err error
	song.Walk(nodes, func(n song.Node, depth int) bool {
		if err != nil {
			return false
		}
		switch v := n.(type) {
		case song.Verbatim:
			if depth == 0 {
				err = fmt.Errorf("top-level verbatim %s %q", v.Token, v.Text)
			}
		case song.ChordLine:
			if len(v.Chords) == 0 {
				err = fmt.Errorf("empty chord line at depth %d", depth)
			}
		case song.LyricLine:
			if len(v.Runs) == 0 {
				err = fmt.Errorf("empty lyric line at depth %d", depth)
			}
		}
		return true
	})
	return err
}
