package token

// Kind represents the category of a song markup token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the input.
	EOF

	// DirectiveOpen is the '{' that starts a directive (with any line-leading blanks).
	DirectiveOpen
	// DirectiveName is the normalized directive name.
	DirectiveName
	// DirectiveValue is the trimmed text after ':' (or a define chord name, or a section label).
	DirectiveValue
	// DirectiveClose is the '}' that ends a directive.
	DirectiveClose
	// SectionOpen starts a block directive: soc, sov, sot, sog or define.
	SectionOpen
	// SectionClose ends a body block: eoc, eov, eot or eog.
	SectionClose

	// Chord is the trimmed body of a [chord] annotation.
	Chord
	// MeasureBar is a '|' separator.
	MeasureBar
	// LyricRun is a run of lyric characters without blanks.
	LyricRun
	// Whitespace is a run of spaces, tabs and carriage returns.
	Whitespace
	// Newline is a single '\n'.
	Newline

	// CommentOpen is a line-leading '#'.
	CommentOpen
	// CommentText is the trimmed rest of a comment line.
	CommentText

	// BodyLine is the raw text of one line inside a chorus, verse, tab or grid block.
	BodyLine

	// DefineBaseFret is "base-fret N" inside a chord definition.
	DefineBaseFret
	// DefineFrets is "frets ..." inside a chord definition.
	DefineFrets
	// DefineFingers is "fingers ..." inside a chord definition.
	DefineFingers
)

var kindNames = [...]string{
	Invalid:        "Invalid",
	EOF:            "EOF",
	DirectiveOpen:  "DirectiveOpen",
	DirectiveName:  "DirectiveName",
	DirectiveValue: "DirectiveValue",
	DirectiveClose: "DirectiveClose",
	SectionOpen:    "SectionOpen",
	SectionClose:   "SectionClose",
	Chord:          "Chord",
	MeasureBar:     "MeasureBar",
	LyricRun:       "LyricRun",
	Whitespace:     "Whitespace",
	Newline:        "Newline",
	CommentOpen:    "CommentOpen",
	CommentText:    "CommentText",
	BodyLine:       "BodyLine",
	DefineBaseFret: "DefineBaseFret",
	DefineFrets:    "DefineFrets",
	DefineFingers:  "DefineFingers",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// ParseKind maps a name produced by String back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return Invalid, false
}
