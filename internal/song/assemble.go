package song

import (
	"strings"

	"chordpro/internal/lexer"
	"chordpro/internal/token"
)

// assembler is the single-pass state of Assemble.
type assembler struct {
	out    []Node
	blocks []*Directive

	chords  *ChordLine
	lyrics  *LyricLine
	comment *Comment
	// dirty is set once the current source line produced anything other
	// than whitespace.
	dirty bool
}

// Assemble builds the song tree from tokens in one pass without lookahead.
//
// Chords and lyric runs of one source line are grouped into a single
// ChordLine and a single LyricLine, in that order, regardless of how they
// interleave in the source. Single-line directives are emitted when their
// '}' is seen or at the end of their line. Block directives collect every
// node up to their close marker; blocks still open at the end of input are
// closed implicitly.
func Assemble(tokens []token.Token) []Node {
	a := &assembler{}
	for _, tok := range tokens {
		a.feed(tok)
	}
	a.finish()
	return a.out
}

// Parse scans and assembles text. On a scan error no nodes are returned.
func Parse(text string) ([]Node, error) {
	toks, err := lexer.ScanString(text)
	if err != nil {
		return nil, err
	}
	return Assemble(toks), nil
}

func (a *assembler) feed(tok token.Token) {
	switch tok.Kind {
	case token.Chord, token.MeasureBar:
		if a.chords == nil {
			a.chords = &ChordLine{}
		}
		a.chords.Chords = append(a.chords.Chords, tok.Text)
		a.dirty = true
	case token.LyricRun:
		if a.lyrics == nil {
			a.lyrics = &LyricLine{}
		}
		a.lyrics.Runs = append(a.lyrics.Runs, tok.Text)
		a.dirty = true
	case token.Whitespace:
		if a.lyrics != nil {
			a.lyrics.Runs = append(a.lyrics.Runs, tok.Text)
		}
	case token.DirectiveOpen:
		a.dirty = true
	case token.SectionOpen, token.DirectiveName:
		d := &Directive{Name: tok.Text}
		if d.IsBody() {
			// text before a mid-line opener belongs to the enclosing level
			a.flushLine()
		}
		a.blocks = append(a.blocks, d)
		a.dirty = true
	case token.DirectiveValue:
		top := a.top()
		if top == nil {
			return
		}
		if !top.HasValue {
			top.Value, top.HasValue = tok.Text, true
		} else {
			top.Children = append(top.Children, Verbatim{Token: tok.Kind, Text: tok.Text})
		}
	case token.DirectiveClose:
		if top := a.top(); top != nil && !top.IsBody() {
			a.pop()
			a.emit(top)
		}
	case token.BodyLine, token.DefineBaseFret, token.DefineFrets, token.DefineFingers:
		a.child(Verbatim{Token: tok.Kind, Text: tok.Text})
		a.dirty = true
	case token.SectionClose:
		a.dirty = true
		top := a.top()
		if top == nil || !top.IsBody() {
			return
		}
		top.Children = append(top.Children, Verbatim{Token: tok.Kind, Text: tok.Text})
		a.pop()
		a.emit(top)
	case token.CommentOpen:
		a.comment = &Comment{}
		a.dirty = true
	case token.CommentText:
		if a.comment == nil {
			a.comment = &Comment{}
		}
		a.comment.Text = tok.Text
	case token.Newline:
		a.newline()
	}
}

func (a *assembler) newline() {
	defer func() { a.dirty = false }()
	if !a.dirty && a.chords == nil && a.lyrics == nil && a.comment == nil {
		a.emit(Blank{})
		return
	}
	a.flushLine()
	if top := a.top(); top != nil && !top.IsBody() {
		a.pop()
		a.emit(top)
	}
}

func (a *assembler) finish() {
	a.flushLine()
	for len(a.blocks) > 0 {
		top := a.pop()
		a.emit(top)
	}
}

// flushLine emits the pending chord line, lyric line and comment.
func (a *assembler) flushLine() {
	if a.chords != nil {
		a.emit(*a.chords)
		a.chords = nil
	}
	if a.lyrics != nil {
		runs := a.lyrics.Runs
		for len(runs) > 0 && strings.TrimSpace(runs[len(runs)-1]) == "" {
			runs = runs[:len(runs)-1]
		}
		a.emit(LyricLine{Runs: runs})
		a.lyrics = nil
	}
	if a.comment != nil {
		a.emit(*a.comment)
		a.comment = nil
	}
}

func (a *assembler) top() *Directive {
	if len(a.blocks) == 0 {
		return nil
	}
	return a.blocks[len(a.blocks)-1]
}

func (a *assembler) pop() *Directive {
	top := a.blocks[len(a.blocks)-1]
	a.blocks = a.blocks[:len(a.blocks)-1]
	return top
}

// child appends n to the innermost open block, or emits it when no block
// is open.
func (a *assembler) child(n Node) {
	if top := a.top(); top != nil {
		top.Children = append(top.Children, n)
		return
	}
	a.emit(n)
}

// emit places a finished node into the innermost open body block, or into
// the output.
func (a *assembler) emit(n Node) {
	for i := len(a.blocks) - 1; i >= 0; i-- {
		if a.blocks[i].IsBody() {
			a.blocks[i].Children = append(a.blocks[i].Children, n)
			return
		}
	}
	a.out = append(a.out, n)
}
