// Package diag defines the diagnostic model shared by the song pipeline.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string ID (LEX1001, IO4001, ...), a short Message, the primary source.Span
// and optional Notes.
//
// Producers emit through a Reporter so they stay decoupled from storage;
// BagReporter collects into a Bag which supports sorting, deduplication and
// a hard cap on the number of stored items. Rendering lives in
// internal/diagfmt.
package diag
