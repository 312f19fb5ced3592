package lexer

import (
	"testing"

	"chordpro/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cho", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	if c.EOF() || !c.AtLineStart() {
		t.Fatal("expected a fresh cursor at line start")
	}
	if b := c.Bump(); b != 'a' {
		t.Fatalf("expected 'a', got %q", b)
	}
	if c.AtLineStart() {
		t.Error("cursor after 'a' is not at line start")
	}
	c.Bump()
	if !c.AtLineStart() {
		t.Error("cursor after newline should be at line start")
	}
	if c.Peek() != 'b' || c.PeekAt(1) != 0 {
		t.Errorf("unexpected lookahead %q %q", c.Peek(), c.PeekAt(1))
	}
	c.Bump()
	if !c.EOF() || c.Bump() != 0 || c.Rest() != nil {
		t.Error("expected EOF to be sticky")
	}
}

func TestCursorMarkAndSpan(t *testing.T) {
	c := NewCursor(createFile("  abc"))
	if n := c.EatWhile(isBlank); n != 2 {
		t.Fatalf("EatWhile = %d, want 2", n)
	}
	m := c.Mark()
	c.Advance(3)
	sp := c.SpanFrom(m)
	if sp.Start != 2 || sp.End != 5 {
		t.Errorf("span = %v, want 2..5", sp)
	}
	c.Advance(10)
	if c.Off != c.Limit {
		t.Errorf("Advance past limit left Off=%d", c.Off)
	}
	c.Reset(m)
	if !c.Eat('a') || c.Eat('x') {
		t.Error("Eat did not match as expected")
	}
}
