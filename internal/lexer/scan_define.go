package lexer

import (
	"strings"

	"chordpro/internal/diag"
	"chordpro/internal/token"
)

func isFretChar(b byte) bool {
	switch b {
	case 'x', 'X', 'o', 'O', 'n', 'N', '-':
		return true
	}
	return isDigit(b)
}

func isFingerChar(b byte) bool {
	return isDigit(b) || b == '-' || b == 'x' || b == 'X' || b == 'N'
}

func isDefineWord(b byte) bool {
	return !isBlank(b) && b != '}' && b != '\n'
}

// scanDefine reads one item of a chord definition:
//
//	{define: Am base-fret 1 frets x 0 2 2 1 0 fingers - - 2 3 1 -}
func (lx *Lexer) scanDefine() *Error {
	m := lx.cursor.Mark()
	rest := lx.cursor.Rest()
	switch b := rest[0]; {
	case isBlank(b):
		lx.cursor.EatWhile(isBlank)
		return nil
	case b == '}':
		lx.cursor.Bump()
		lx.emit(token.DirectiveClose, m, "}")
		lx.pop()
		return nil
	case b == '\n':
		lx.newlineAndPop()
		return nil
	case b == ':':
		lx.cursor.Bump()
		lx.cursor.EatWhile(isBlank)
		nm := lx.cursor.Mark()
		if lx.cursor.EatWhile(isDefineWord) == 0 {
			return lx.fail(diag.LexBadDefine, lx.cursor.SpanFrom(m), "chord definition is missing a name")
		}
		lx.emit(token.DirectiveValue, m, string(lx.file.Content[nm:lx.cursor.Off]))
		lx.defineNamed = true
		return nil
	}

	if n, text := matchBaseFret(rest); n > 0 {
		lx.cursor.Advance(uint32(n))
		lx.emit(token.DefineBaseFret, m, text)
		return nil
	}
	if n, text := matchGroups(rest, "frets", isFretChar); n > 0 {
		lx.cursor.Advance(uint32(n))
		lx.emit(token.DefineFrets, m, text)
		return nil
	}
	if n, text := matchGroups(rest, "fingers", isFingerChar); n > 0 {
		lx.cursor.Advance(uint32(n))
		lx.emit(token.DefineFingers, m, text)
		return nil
	}
	if !lx.defineNamed {
		lx.cursor.EatWhile(isDefineWord)
		lx.emit(token.DirectiveValue, m, string(lx.file.Content[m:lx.cursor.Off]))
		lx.defineNamed = true
		return nil
	}
	lx.cursor.EatWhile(isDefineWord)
	return lx.fail(diag.LexBadDefine, lx.cursor.SpanFrom(m), "unexpected item in chord definition")
}

// matchBaseFret matches "base-fret N" and returns its length and
// normalized text.
func matchBaseFret(s []byte) (int, string) {
	const kw = "base-fret"
	if !hasPrefixFold(s, kw) {
		return 0, ""
	}
	i := skipBlanks(s, len(kw))
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i || !wordEnd(s, j) {
		return 0, ""
	}
	return j, kw + " " + string(s[i:j])
}

// matchGroups matches kw followed by one or more blank-separated groups of
// bytes accepted by class.
func matchGroups(s []byte, kw string, class func(byte) bool) (int, string) {
	if !hasPrefixFold(s, kw) || !wordEnd(s, len(kw)) {
		return 0, ""
	}
	var groups []string
	end := len(kw)
	for {
		i := skipBlanks(s, end)
		j := i
		for j < len(s) && class(s[j]) {
			j++
		}
		if j == i || !wordEnd(s, j) {
			break
		}
		groups = append(groups, string(s[i:j]))
		end = j
	}
	if len(groups) == 0 {
		return 0, ""
	}
	return end, kw + " " + strings.Join(groups, " ")
}
