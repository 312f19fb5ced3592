// Package directive holds the fixed vocabulary of song directives: name
// normalization and the block/section classification shared by the lexer,
// the assembler and the renderers.
package directive

import "strings"

// Canonical directive names.
const (
	Title    = "t"
	Subtitle = "st"
	Comment  = "c"

	StartOfChorus = "soc"
	EndOfChorus   = "eoc"
	StartOfVerse  = "sov"
	EndOfVerse    = "eov"
	StartOfTab    = "sot"
	EndOfTab      = "eot"
	StartOfGrid   = "sog"
	EndOfGrid     = "eog"
	Define        = "define"
)

var synonyms = map[string]string{
	"title":    Title,
	"subtitle": Subtitle,
	"comment":  Comment,

	"start_of_tab":    StartOfTab,
	"end_of_tab":      EndOfTab,
	"start_of_chorus": StartOfChorus,
	"end_of_chorus":   EndOfChorus,
	"start_of_verse":  StartOfVerse,
	"end_of_verse":    EndOfVerse,
	"start_of_grid":   StartOfGrid,
	"end_of_grid":     EndOfGrid,

	"comment_italic": "ci",
	"comment_box":    "cb",
	"new_song":       "ns",
}

// Normalize trims and lowercases name and maps long forms to their
// abbreviation. Unknown names pass through lowercased. Normalize is
// idempotent.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if short, ok := synonyms[n]; ok {
		return short
	}
	return n
}
