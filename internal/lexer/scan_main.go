package lexer

import (
	"unicode/utf8"

	"chordpro/internal/diag"
	"chordpro/internal/token"
)

func (lx *Lexer) scanMain() *Error {
	if lx.cursor.AtLineStart() {
		if ok := lx.scanLineLeader(); ok {
			return nil
		}
	}
	m := lx.cursor.Mark()
	switch b := lx.cursor.Peek(); {
	case b == '\n':
		lx.cursor.Bump()
		lx.emit(token.Newline, m, "\n")
	case b == '{':
		lx.cursor.Bump()
		lx.emit(token.DirectiveOpen, m, "{")
		lx.enterDirective(m)
	case b == '[':
		lx.cursor.Bump()
		lx.openAt = m
		lx.push(ModeChord)
	case b == '|':
		lx.cursor.Bump()
		lx.emit(token.MeasureBar, m, "|")
	case isBlank(b):
		lx.cursor.EatWhile(isBlank)
		lx.emit(token.Whitespace, m, string(lx.file.Content[m:lx.cursor.Off]))
	default:
		return lx.scanLyric()
	}
	return nil
}

// scanLineLeader handles the line-leading forms: an optionally indented
// '#' opens a comment and an optionally indented '{' opens a directive.
// The indentation becomes part of the opening token.
func (lx *Lexer) scanLineLeader() bool {
	rest := lx.cursor.Rest()
	i := 0
	for i < len(rest) && isIndent(rest[i]) {
		i++
	}
	if i >= len(rest) {
		return false
	}
	m := lx.cursor.Mark()
	switch rest[i] {
	case '#':
		lx.cursor.Advance(uint32(i) + 1)
		lx.emit(token.CommentOpen, m, "#")
		lx.push(ModeComment)
		return true
	case '{':
		lx.cursor.Advance(uint32(i) + 1)
		lx.emit(token.DirectiveOpen, m, "{")
		lx.enterDirective(lx.cursor.Mark() - 1)
		return true
	}
	return false
}

func (lx *Lexer) enterDirective(open Mark) {
	lx.openAt = open
	lx.dirStart = true
	lx.push(ModeDirective)
}

// scanLyric reads a run of lyric characters. It stops at metacharacters,
// blanks and newlines; '#' is ordinary text here.
func (lx *Lexer) scanLyric() *Error {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '{' || b == '[' || b == '|' || isBlank(b) {
			break
		}
		if isControl(b) {
			if lx.cursor.Mark() == m {
				lx.cursor.Bump()
				return lx.fail(diag.LexUnknownChar, lx.cursor.SpanFrom(m), "unexpected control character")
			}
			break
		}
		if b < utf8.RuneSelf {
			lx.cursor.Bump()
			continue
		}
		r, size := utf8.DecodeRune(lx.cursor.Rest())
		if r == utf8.RuneError && size <= 1 {
			if lx.cursor.Mark() == m {
				lx.cursor.Bump()
				return lx.fail(diag.LexInvalidUTF8, lx.cursor.SpanFrom(m), "invalid UTF-8 sequence")
			}
			break
		}
		lx.cursor.Advance(uint32(size))
	}
	lx.emit(token.LyricRun, m, string(lx.file.Content[m:lx.cursor.Off]))
	return nil
}

// scanChord reads the body of a '[...]' annotation.
func (lx *Lexer) scanChord() *Error {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == ']' {
			break
		}
		if b == '\n' {
			return lx.fail(diag.LexUnterminatedChord, lx.cursor.SpanFrom(lx.openAt), "chord is missing its closing ']'")
		}
		lx.cursor.Bump()
	}
	text := trim(lx.file.Content[m:lx.cursor.Off])
	lx.cursor.Eat(']')
	lx.pop()
	if text != "" {
		lx.emit(token.Chord, lx.openAt, text)
	}
	return nil
}

func (lx *Lexer) scanComment() *Error {
	if lx.cursor.Peek() == '\n' {
		lx.newlineAndPop()
		return nil
	}
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.emit(token.CommentText, m, trim(lx.file.Content[m:lx.cursor.Off]))
	return nil
}
