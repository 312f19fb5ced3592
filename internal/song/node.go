// Package song assembles a token stream into the document tree of a song.
package song

import (
	"chordpro/internal/directive"
	"chordpro/internal/token"
)

// NodeKind identifies the variant of a Node.
type NodeKind uint8

const (
	KindDirective NodeKind = iota + 1
	KindChordLine
	KindLyricLine
	KindComment
	KindBlank
	KindVerbatim
)

var kindNames = [...]string{
	KindDirective: "directive",
	KindChordLine: "chordline",
	KindLyricLine: "lyricline",
	KindComment:   "comment",
	KindBlank:     "blank",
	KindVerbatim:  "verbatim",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "NodeKind(?)"
}

// Node is an element of the song tree. The set of implementations is
// closed.
type Node interface {
	Kind() NodeKind
	node()
}

// Directive is a {name: value} instruction. Only block directives (soc,
// sov, sot, sog, define) have children.
type Directive struct {
	Name     string
	Value    string
	HasValue bool
	Children []Node
}

// ChordLine holds the chords of one source line in order.
type ChordLine struct {
	Chords []string
}

// LyricLine holds the lyric runs of one source line, including the
// whitespace runs between words.
type LyricLine struct {
	Runs []string
}

type Comment struct {
	Text string
}

// Blank marks an empty source line.
type Blank struct{}

// Verbatim is a token kept as-is inside a block: a body line, a close
// marker or a chord definition item.
type Verbatim struct {
	Token token.Kind
	Text  string
}

func (*Directive) Kind() NodeKind { return KindDirective }
func (ChordLine) Kind() NodeKind  { return KindChordLine }
func (LyricLine) Kind() NodeKind  { return KindLyricLine }
func (Comment) Kind() NodeKind    { return KindComment }
func (Blank) Kind() NodeKind      { return KindBlank }
func (Verbatim) Kind() NodeKind   { return KindVerbatim }

func (*Directive) node() {}
func (ChordLine) node()  {}
func (LyricLine) node()  {}
func (Comment) node()    {}
func (Blank) node()      {}
func (Verbatim) node()   {}

// IsBlock reports whether d is a block directive.
func (d *Directive) IsBlock() bool {
	return directive.IsBlock(d.Name)
}

// IsBody reports whether d keeps its block open across lines.
func (d *Directive) IsBody() bool {
	return directive.IsBody(d.Name)
}

// Closed reports whether the block ended with an explicit close marker.
func (d *Directive) Closed() bool {
	if n := len(d.Children); n > 0 {
		if v, ok := d.Children[n-1].(Verbatim); ok && v.Token == token.SectionClose {
			return true
		}
	}
	return false
}

// Walk visits nodes depth-first in document order. Returning false from
// fn skips the children of that node.
func Walk(nodes []Node, fn func(n Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if !fn(n, depth) {
			continue
		}
		if d, ok := n.(*Directive); ok && len(d.Children) > 0 {
			walk(d.Children, depth+1, fn)
		}
	}
}
