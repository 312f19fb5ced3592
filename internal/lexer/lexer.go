// Package lexer turns song markup into a flat token stream. It is a
// mode-stack scanner: every lexical context (main text, a directive, a
// chord, a section body, a chord definition, a comment) has its own ordered
// set of rules and the active context decides how the next bytes are read.
package lexer

import (
	"chordpro/internal/source"
	"chordpro/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	modes []Mode
	queue []token.Token // tokens produced by the last step, not yet returned

	openAt      Mark // position of the '[' or '{' that opened the current mode
	dirStart    bool // nothing consumed yet inside the current directive
	defineNamed bool // current define already has its chord name
	err         *Error
}

// New creates a lexer positioned at the start of file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		modes:  []Mode{ModeMain},
	}
}

// Next returns the next token. At end of input it returns a token of kind
// token.EOF; once an error was returned every further call returns it again.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.err != nil {
		return token.Token{Kind: token.Invalid}, lx.err
	}
	for len(lx.queue) == 0 {
		if lx.cursor.EOF() {
			return lx.eof(), nil
		}
		if err := lx.step(); err != nil {
			lx.err = err
			lx.queue = nil
			return token.Token{Kind: token.Invalid}, err
		}
	}
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	return tok, nil
}

// Scan reads the whole input. The EOF token is not included. On failure no
// tokens are returned.
func (lx *Lexer) Scan() ([]token.Token, error) {
	out := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return out, nil
		}
		out = append(out, tok)
	}
}

// ScanString scans text as an anonymous in-memory file.
func ScanString(text string) ([]token.Token, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(text))
	return New(fs.Get(id), Options{}).Scan()
}

// step runs the rules of the current mode once. Every step either consumes
// input or changes mode.
func (lx *Lexer) step() *Error {
	switch m := lx.mode(); m {
	case ModeMain:
		return lx.scanMain()
	case ModeDirective:
		return lx.scanDirective()
	case ModeChord:
		return lx.scanChord()
	case ModeDefine:
		return lx.scanDefine()
	case ModeComment:
		return lx.scanComment()
	default:
		sec, ok := bodySection(m)
		if !ok {
			lx.pop()
			return nil
		}
		return lx.scanBody(sec)
	}
}

func (lx *Lexer) eof() token.Token {
	off := lx.cursor.Limit
	lc := lx.file.LineCol(off)
	return token.Token{
		Kind: token.EOF,
		Span: source.Span{File: lx.file.ID, Start: off, End: off},
		Line: lc.Line,
		Col:  lc.Col,
	}
}

// emit queues a token spanning from m to the cursor.
func (lx *Lexer) emit(kind token.Kind, m Mark, text string) {
	lx.emitSpan(kind, lx.cursor.SpanFrom(m), text)
}

func (lx *Lexer) emitSpan(kind token.Kind, sp source.Span, text string) {
	lc := lx.file.LineCol(sp.Start)
	lx.queue = append(lx.queue, token.Token{
		Kind: kind,
		Span: sp,
		Text: text,
		Line: lc.Line,
		Col:  lc.Col,
	})
}

// newline consumes '\n', emits it and leaves the current mode.
func (lx *Lexer) newlineAndPop() {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.emit(token.Newline, m, "\n")
	lx.pop()
}
