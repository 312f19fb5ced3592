package lexer

import (
	"chordpro/internal/directive"
	"chordpro/internal/token"
)

// scanBody reads one fragment of a chorus, verse, tab or grid body. Body
// text is taken verbatim; only the section's close marker is recognized.
func (lx *Lexer) scanBody(sec directive.Section) *Error {
	m := lx.cursor.Mark()
	switch lx.cursor.Peek() {
	case '\n':
		lx.cursor.Bump()
		lx.emit(token.Newline, m, "\n")
		return nil
	case '{':
		if n := lx.matchClose(sec); n > 0 {
			lx.cursor.Advance(n)
			lx.emit(token.SectionClose, m, sec.Close)
			lx.pop()
			return nil
		}
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		if b == '{' && lx.cursor.Mark() != m && lx.matchClose(sec) > 0 {
			break
		}
		lx.cursor.Bump()
	}
	lx.emit(token.BodyLine, m, string(lx.file.Content[m:lx.cursor.Off]))
	return nil
}

// matchClose returns the length of sec's close marker at the cursor, or 0.
func (lx *Lexer) matchClose(sec directive.Section) uint32 {
	rest := lx.cursor.Rest()
	if len(rest) == 0 || rest[0] != '{' {
		return 0
	}
	i := skipBlanks(rest, 1)
	for _, spelling := range sec.CloseSpellings {
		if !hasPrefixFold(rest[i:], spelling) {
			continue
		}
		j := skipBlanks(rest, i+len(spelling))
		if j < len(rest) && rest[j] == '}' {
			return uint32(j) + 1
		}
	}
	return 0
}
