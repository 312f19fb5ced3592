package lexer

import (
	"fmt"

	"chordpro/internal/diag"
	"chordpro/internal/source"
)

// maxErrorInput caps how much unmatched input an Error quotes.
const maxErrorInput = 24

// Error reports input that no rule of the current mode matches. It is the
// only failure the scanner produces; scanning stops at the first one.
type Error struct {
	Code  diag.Code
	Span  source.Span
	Pos   source.LineCol
	Mode  Mode
	Input string // unmatched input up to the end of the line
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s in %s mode near %q", e.Pos.Line, e.Pos.Col, e.Msg, e.Mode, e.Input)
}

// fail builds an Error at sp, forwards it to the reporter and returns it.
func (lx *Lexer) fail(code diag.Code, sp source.Span, msg string) *Error {
	rest := lx.file.Content[sp.Start:lx.cursor.Limit]
	for i, b := range rest {
		if b == '\n' {
			rest = rest[:i]
			break
		}
	}
	if len(rest) > maxErrorInput {
		rest = rest[:maxErrorInput]
	}
	err := &Error{
		Code:  code,
		Span:  sp,
		Pos:   lx.file.LineCol(sp.Start),
		Mode:  lx.mode(),
		Input: string(rest),
		Msg:   msg,
	}
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).
			WithNote(sp, "while scanning in "+lx.mode().String()+" mode").
			Emit()
	}
	return err
}
