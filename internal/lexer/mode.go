package lexer

import "chordpro/internal/directive"

// Mode is a lexical context. Modes nest on a stack; Main is always at the
// bottom.
type Mode uint8

const (
	ModeMain Mode = iota
	ModeDirective
	ModeChorus
	ModeVerse
	ModeTablature
	ModeGrid
	ModeChord
	ModeDefine
	ModeComment
)

func (m Mode) String() string {
	switch m {
	case ModeMain:
		return "main"
	case ModeDirective:
		return "directive"
	case ModeChorus:
		return "chorus"
	case ModeVerse:
		return "verse"
	case ModeTablature:
		return "tablature"
	case ModeGrid:
		return "grid"
	case ModeChord:
		return "chord"
	case ModeDefine:
		return "define"
	case ModeComment:
		return "comment"
	}
	return "unknown"
}

// bodyModes maps a section opener to the mode scanning its body.
var bodyModes = map[string]Mode{
	directive.StartOfChorus: ModeChorus,
	directive.StartOfVerse:  ModeVerse,
	directive.StartOfTab:    ModeTablature,
	directive.StartOfGrid:   ModeGrid,
}

// bodySection returns the section scanned by a body mode.
func bodySection(m Mode) (directive.Section, bool) {
	for open, mode := range bodyModes {
		if mode == m {
			return directive.Lookup(open)
		}
	}
	return directive.Section{}, false
}

func (lx *Lexer) mode() Mode {
	return lx.modes[len(lx.modes)-1]
}

func (lx *Lexer) push(m Mode) {
	lx.modes = append(lx.modes, m)
}

// pop leaves the current mode. Main is never popped.
func (lx *Lexer) pop() {
	if len(lx.modes) > 1 {
		lx.modes = lx.modes[:len(lx.modes)-1]
	}
}

// replace swaps the current mode for m without growing the stack.
func (lx *Lexer) replace(m Mode) {
	lx.modes[len(lx.modes)-1] = m
}

// Depth reports the current mode stack depth (1 when in Main).
func (lx *Lexer) Depth() int {
	return len(lx.modes)
}

// Mode reports the current lexical mode.
func (lx *Lexer) Mode() Mode {
	return lx.mode()
}
