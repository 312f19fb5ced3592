package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"chordpro/internal/source"
	"chordpro/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind" yaml:"kind"`
	Text string      `json:"text,omitempty" yaml:"text,omitempty"`
	Line uint32      `json:"line" yaml:"line"`
	Col  uint32      `json:"col" yaml:"col"`
	Span source.Span `json:"span" yaml:"span,flow"`
}

func tokenOutputs(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Line: tok.Line,
			Col:  tok.Col,
			Span: tok.Span,
		})
	}
	return out
}

// FormatTokensPretty prints one token per line:
//
//	  1: DirectiveOpen   "{" at 1:1-1:2
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if f := fileFor(fs, tok.Span); f != nil {
			start, end := f.LineCol(tok.Span.Start), f.LineCol(tok.Span.End)
			fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		} else {
			fmt.Fprintf(w, " at %d:%d", tok.Line, tok.Col)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenOutputs(tokens))
}

// FormatTokensYAML writes tokens as a YAML sequence.
func FormatTokensYAML(w io.Writer, tokens []token.Token) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tokenOutputs(tokens)); err != nil {
		return err
	}
	return enc.Close()
}
