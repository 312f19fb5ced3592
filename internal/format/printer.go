package format

import (
	"errors"
	"strings"

	"chordpro/internal/directive"
	"chordpro/internal/lexer"
	"chordpro/internal/source"
	"chordpro/internal/token"
)

// FormatFile scans sf and returns its canonical text. A scan error is
// returned as is; nothing is formatted in that case.
func FormatFile(sf *source.File) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	tokens, err := lexer.New(sf, lexer.Options{}).Scan()
	if err != nil {
		return nil, err
	}
	return FormatTokens(tokens), nil
}

// FormatString is FormatFile for in-memory text.
func FormatString(text string) ([]byte, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(text))
	return FormatFile(fs.Get(id))
}

type printer struct {
	w      writer
	tokens []token.Token
	pos    int
}

// FormatTokens prints a clean token stream. An unterminated directive
// stays unterminated so that a bare "{soc: x" never turns into a section.
func FormatTokens(tokens []token.Token) []byte {
	p := printer{tokens: tokens}
	for p.pos < len(p.tokens) {
		p.print(p.tokens[p.pos])
		p.pos++
	}
	return p.w.finish()
}

func (p *printer) peek() (token.Token, bool) {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1], true
	}
	return token.Token{}, false
}

func (p *printer) print(tok token.Token) {
	switch tok.Kind {
	case token.DirectiveOpen:
		p.w.WriteString("{")
	case token.DirectiveName:
		p.w.WriteString(tok.Text)
	case token.DirectiveValue:
		p.value(tok.Text)
	case token.DirectiveClose:
		p.w.WriteString("}")
	case token.SectionOpen:
		p.sectionOpen(tok)
	case token.SectionClose:
		p.w.WriteString("{" + closeSpelling(tok.Text) + "}")
	case token.DefineBaseFret, token.DefineFrets, token.DefineFingers:
		p.w.WriteString(" " + tok.Text)
	case token.Chord:
		p.w.WriteString("[" + tok.Text + "]")
	case token.MeasureBar:
		p.w.WriteString("|")
	case token.LyricRun:
		p.lyric(tok.Text)
	case token.BodyLine:
		p.w.WriteString(tok.Text)
	case token.Whitespace:
		p.w.blank(tok.Text)
	case token.Newline:
		p.w.newline()
	case token.CommentOpen:
		p.w.WriteString("#")
	case token.CommentText:
		if tok.Text != "" {
			p.w.WriteString(" " + tok.Text)
		}
	}
}

// lyric prints a lyric run. A run starting with '#' can only open a line
// after an empty chord, which has no token; "[]" is put back so the line
// does not rescan as a comment.
func (p *printer) lyric(text string) {
	if strings.HasPrefix(text, "#") && p.w.lineBlank() {
		p.w.WriteString("[]" + text)
		return
	}
	p.w.WriteString(text)
}

func (p *printer) value(text string) {
	if text == "" {
		p.w.WriteString(":")
		return
	}
	p.w.WriteString(": " + text)
}

// sectionOpen prints a block opener. Body openers carry their label and
// close brace in the one token group; define keeps going with its items.
func (p *printer) sectionOpen(tok token.Token) {
	p.w.WriteString(tok.Text)
	if !directive.IsBody(tok.Text) {
		return
	}
	if next, ok := p.peek(); ok && next.Kind == token.DirectiveValue {
		p.value(next.Text)
		p.pos++
	}
	p.w.WriteString("}")
}

// closeSpelling returns a spelling the lexer accepts for the close marker
// name. Not every canonical close name is itself accepted.
func closeSpelling(name string) string {
	for _, sec := range directive.Sections() {
		if sec.Close == name && len(sec.CloseSpellings) > 0 {
			return sec.CloseSpellings[0]
		}
	}
	return name
}
