package lexer

import (
	"chordpro/internal/directive"
	"chordpro/internal/source"
	"chordpro/internal/token"
)

func (lx *Lexer) scanDirective() *Error {
	if lx.dirStart {
		lx.dirStart = false
		if lx.scanSectionOpen() || lx.scanDefineOpen() {
			return nil
		}
	}
	m := lx.cursor.Mark()
	switch lx.cursor.Peek() {
	case '}':
		lx.cursor.Bump()
		lx.emit(token.DirectiveClose, m, "}")
		lx.pop()
		return nil
	case '\n':
		lx.newlineAndPop()
		return nil
	case ':':
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if b := lx.cursor.Peek(); b == '}' || b == '\n' {
				break
			}
			lx.cursor.Bump()
		}
		lx.emit(token.DirectiveValue, m, trim(lx.file.Content[m+1:lx.cursor.Off]))
		return nil
	}
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b == ':' || b == '}' || b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	lx.emit(token.DirectiveName, m, directive.Normalize(string(lx.file.Content[m:lx.cursor.Off])))
	return nil
}

// scanSectionOpen matches a body section opener spanning the rest of the
// directive: blanks, a spelling, an optional ":label", then '}'.
func (lx *Lexer) scanSectionOpen() bool {
	rest := lx.cursor.Rest()
	start := skipBlanks(rest, 0)
	for _, sec := range directive.Sections() {
		if !sec.Body {
			continue
		}
		for _, spelling := range sec.OpenSpellings {
			if !hasPrefixFold(rest[start:], spelling) {
				continue
			}
			j := skipBlanks(rest, start+len(spelling))
			hasLabel := false
			var labelFrom, labelTo int
			if j < len(rest) && rest[j] == ':' {
				k := j + 1
				for k < len(rest) && rest[k] != '}' && rest[k] != '\n' {
					k++
				}
				hasLabel = true
				labelFrom, labelTo = j, k
				j = k
			}
			if j >= len(rest) || rest[j] != '}' {
				continue
			}
			base := lx.cursor.Off
			lx.cursor.Advance(uint32(j) + 1)
			lx.emitSpan(token.SectionOpen, source.Span{File: lx.file.ID, Start: uint32(lx.openAt), End: lx.cursor.Off}, sec.Open)
			if hasLabel {
				lx.emitSpan(token.DirectiveValue,
					source.Span{File: lx.file.ID, Start: base + uint32(labelFrom), End: base + uint32(labelTo)},
					trim(rest[labelFrom+1:labelTo]))
			}
			lx.pop()
			lx.push(bodyModes[sec.Open])
			return true
		}
	}
	return false
}

// scanDefineOpen matches "define" or "chord" as a whole word and switches
// the directive into define mode.
func (lx *Lexer) scanDefineOpen() bool {
	sec, _ := directive.Lookup(directive.Define)
	rest := lx.cursor.Rest()
	start := skipBlanks(rest, 0)
	for _, spelling := range sec.OpenSpellings {
		end := start + len(spelling)
		if !hasPrefixFold(rest[start:], spelling) || !wordEnd(rest, end) {
			continue
		}
		lx.cursor.Advance(uint32(end))
		lx.emit(token.SectionOpen, lx.openAt, sec.Open)
		lx.defineNamed = false
		lx.replace(ModeDefine)
		return true
	}
	return false
}
