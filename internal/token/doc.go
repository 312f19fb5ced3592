// Package token defines the lexical token kinds of song markup.
// Invariants:
//   - Token.Span covers the source bytes the token was scanned from; Text is
//     the token's value, which may be trimmed or normalized (chords, comment
//     text, directive names and values) and therefore differ from the span.
//   - Line and Col are the 1-based position of Span.Start.
//   - Structural kinds (DirectiveOpen, DirectiveClose, CommentOpen) carry no
//     value; consumers may drop them.
//   - BodyLine text is kept verbatim, including characters that are
//     metacharacters elsewhere ('{', '[', '|', '#').
package token
