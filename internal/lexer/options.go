package lexer

import "chordpro/internal/diag"

type Options struct {
	// Reporter receives the scan error as a diagnostic. May be nil.
	Reporter diag.Reporter
}
