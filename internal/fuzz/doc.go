// Package fuzztests houses Go fuzz harnesses that run arbitrary bytes
// through the scanner, the assembler and the line renderers. They guard
// against panics and broken token invariants, not against wrong output.
package fuzztests
