package lexer

import (
	"bytes"
	"strings"
)

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

func isIndent(b byte) bool {
	return b == ' ' || b == '\t'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isControl reports bytes that never appear in song text.
func isControl(b byte) bool {
	return (b < 0x20 && b != '\t' && b != '\n' && b != '\r') || b == 0x7f
}

// hasPrefixFold reports whether s starts with the lowercase ASCII word w,
// ignoring case.
func hasPrefixFold(s []byte, w string) bool {
	if len(s) < len(w) {
		return false
	}
	return bytes.EqualFold(s[:len(w)], []byte(w))
}

// skipBlanks returns the index of the first non-blank byte of s at or
// after i.
func skipBlanks(s []byte, i int) int {
	for i < len(s) && isBlank(s[i]) {
		i++
	}
	return i
}

// wordEnd reports whether i is a boundary after a keyword in s.
func wordEnd(s []byte, i int) bool {
	if i >= len(s) {
		return true
	}
	switch s[i] {
	case ' ', '\t', '\r', '\n', ':', '}':
		return true
	}
	return false
}

func trim(b []byte) string {
	return strings.TrimSpace(string(b))
}
