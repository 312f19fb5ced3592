// Package format rewrites a scanned song into its canonical spelling.
//
// Directive names are abbreviated, labels and values are written after
// ": ", chord definitions are respaced, line-leading indentation before
// '{' and '#' is dropped, and trailing blanks are removed. Lyric text and
// section bodies are copied as scanned, except that an empty chord is kept
// before a '#' that would otherwise start the line. Formatting its own
// output returns the same bytes.
package format
