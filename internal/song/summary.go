package song

import "chordpro/internal/directive"

// Summary is the document-level metadata of a song.
type Summary struct {
	Title    string
	Subtitle string
	// Meta maps other valued top-level directives to their values in
	// document order.
	Meta map[string][]string
}

// Summarize scans top-level directives for metadata. The first t and st
// win; comments are not metadata.
func Summarize(nodes []Node) Summary {
	s := Summary{Meta: make(map[string][]string)}
	var haveTitle, haveSubtitle bool
	for _, n := range nodes {
		d, ok := n.(*Directive)
		if !ok || !d.HasValue || d.IsBlock() {
			continue
		}
		switch d.Name {
		case directive.Title:
			if !haveTitle {
				s.Title, haveTitle = d.Value, true
			}
		case directive.Subtitle:
			if !haveSubtitle {
				s.Subtitle, haveSubtitle = d.Value, true
			}
		case directive.Comment, "ci", "cb":
		default:
			s.Meta[d.Name] = append(s.Meta[d.Name], d.Value)
		}
	}
	return s
}
