// Package render turns parsed songs into markup: per-node HTML fragments,
// song-line HTML built from line segments, and aligned terminal text.
package render

import (
	"fmt"
	"html"
	"strings"

	"chordpro/internal/directive"
	"chordpro/internal/song"
	"chordpro/internal/token"
)

// Node renders one node as an HTML fragment. It keeps no state between
// calls.
func Node(n song.Node) string {
	switch v := n.(type) {
	case *song.Directive:
		return directiveHTML(v)
	case song.ChordLine:
		return fmt.Sprintf("<span class='chordline'>%s</span><BR>", html.EscapeString(strings.Join(v.Chords, " ")))
	case song.LyricLine:
		return fmt.Sprintf("<span class='lyricline'>%s</span><BR>", html.EscapeString(strings.Join(v.Runs, "")))
	case song.Comment:
		return fmt.Sprintf("<span class='comment'>%s</span><BR>", html.EscapeString(v.Text))
	case song.Blank:
		return "<BR>"
	case song.Verbatim:
		if v.Token == token.SectionClose {
			return ""
		}
		return fmt.Sprintf("<span class='basic'>%s</span><BR>", html.EscapeString(v.Text))
	}
	return ""
}

// Nodes renders a sequence of nodes.
func Nodes(nodes []song.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(Node(n))
	}
	return sb.String()
}

func directiveHTML(d *song.Directive) string {
	name := html.EscapeString(d.Name)
	if d.Name == directive.Define {
		parts := make([]string, 0, len(d.Children)+1)
		if d.Value != "" {
			parts = append(parts, d.Value)
		}
		for _, c := range d.Children {
			if v, ok := c.(song.Verbatim); ok {
				parts = append(parts, v.Text)
			}
		}
		return fmt.Sprintf("<span class='directive %s_directive'>%s</span><BR>", name, html.EscapeString(strings.Join(parts, " ")))
	}
	head := fmt.Sprintf("<span class='directive %s_directive'>%s</span><BR>", name, html.EscapeString(d.Value))
	if !d.IsBody() {
		return head
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "<div class='block %s_block'>", name)
	if d.HasValue {
		sb.WriteString(head)
	}
	for _, c := range d.Children {
		sb.WriteString(Node(c))
	}
	sb.WriteString("</div>")
	return sb.String()
}
