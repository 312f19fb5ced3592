package song_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"chordpro/internal/diag"
	"chordpro/internal/lexer"
	"chordpro/internal/song"
	"chordpro/internal/token"
)

func mustParse(t *testing.T, input string) []song.Node {
	t.Helper()
	nodes, err := song.Parse(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return nodes
}

func expectNodes(t *testing.T, input string, want []song.Node) {
	t.Helper()
	got := mustParse(t, input)
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parse %q:\n got  %s\n want %s", input, dump(got), dump(want))
	}
}

func dump(nodes []song.Node) string {
	var sb strings.Builder
	song.Walk(nodes, func(n song.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		switch v := n.(type) {
		case *song.Directive:
			sb.WriteString("directive " + v.Name + "=" + v.Value)
		case song.ChordLine:
			sb.WriteString("chords " + strings.Join(v.Chords, ","))
		case song.LyricLine:
			sb.WriteString("lyrics " + strings.Join(v.Runs, "|"))
		case song.Comment:
			sb.WriteString("comment " + v.Text)
		case song.Verbatim:
			sb.WriteString(v.Token.String() + " " + v.Text)
		default:
			sb.WriteString(n.Kind().String())
		}
		sb.WriteString("; ")
		return true
	})
	return sb.String()
}

func TestPlainLinesAreLyricLines(t *testing.T) {
	tests := []struct {
		input  string
		lyrics int
		blanks int
	}{
		{"one", 1, 0},
		{"one\ntwo\n", 2, 0},
		{"one\n\ntwo", 2, 1},
		{"\n\n\n", 0, 3},
		{"a b c\n   \nd", 2, 1},
		{"C# and Bb, sung #loud", 1, 0},
	}
	for _, tt := range tests {
		nodes := mustParse(t, tt.input)
		var lyrics, blanks int
		for _, n := range nodes {
			switch n.Kind() {
			case song.KindLyricLine:
				lyrics++
			case song.KindBlank:
				blanks++
			default:
				t.Errorf("%q: unexpected %v node", tt.input, n.Kind())
			}
		}
		if lyrics != tt.lyrics || blanks != tt.blanks {
			t.Errorf("%q: got %d lyric lines and %d blanks, want %d and %d", tt.input, lyrics, blanks, tt.lyrics, tt.blanks)
		}
	}
}

// Chords and lyrics of a line are grouped into one ChordLine followed by
// one LyricLine; whitespace between words stays a run of its own.
func TestLineGrouping(t *testing.T) {
	expectNodes(t, "[C]one [D]two", []song.Node{
		song.ChordLine{Chords: []string{"C", "D"}},
		song.LyricLine{Runs: []string{"one", " ", "two"}},
	})
	expectNodes(t, "  one two  \n", []song.Node{
		song.LyricLine{Runs: []string{"one", " ", "two"}},
	})
	expectNodes(t, "[G]|[C]\n", []song.Node{
		song.ChordLine{Chords: []string{"G", "|", "C"}},
	})
}

func TestDirectiveNormalization(t *testing.T) {
	want := []song.Node{&song.Directive{Name: "t", Value: "X", HasValue: true}}
	for _, input := range []string{"{title: X}", "{Title: X}", "{t: X}", "{t: X}\n"} {
		expectNodes(t, input, want)
	}
}

func TestSingleLineDirectives(t *testing.T) {
	expectNodes(t, "{c: hi}", []song.Node{
		&song.Directive{Name: "c", Value: "hi", HasValue: true},
	})
	expectNodes(t, "{c: hi\nla", []song.Node{
		&song.Directive{Name: "c", Value: "hi", HasValue: true},
		song.LyricLine{Runs: []string{"la"}},
	})
	expectNodes(t, "{new_page}", []song.Node{
		&song.Directive{Name: "new_page"},
	})
	expectNodes(t, "{c: one}text{c: two}", []song.Node{
		&song.Directive{Name: "c", Value: "one", HasValue: true},
		&song.Directive{Name: "c", Value: "two", HasValue: true},
		song.LyricLine{Runs: []string{"text"}},
	})
}

func TestBlockDirectivesNeverCloseEarly(t *testing.T) {
	nodes := mustParse(t, "{sot}\nline1\n{eot}")
	if len(nodes) != 1 {
		t.Fatalf("expected one top-level node, got %s", dump(nodes))
	}
	d, ok := nodes[0].(*song.Directive)
	if !ok || d.Name != "sot" {
		t.Fatalf("expected sot directive, got %s", dump(nodes))
	}
	want := []song.Node{
		song.Verbatim{Token: token.BodyLine, Text: "line1"},
		song.Verbatim{Token: token.SectionClose, Text: "eot"},
	}
	if !reflect.DeepEqual(d.Children, want) {
		t.Errorf("children: %s", dump(d.Children))
	}
	if !d.Closed() || !d.IsBody() {
		t.Error("sot should be a closed body block")
	}
}

func TestBodyBlocks(t *testing.T) {
	expectNodes(t, "{soc: Refrain}\n[G]a\n\nb\n{eoc}\nafter", []song.Node{
		&song.Directive{Name: "soc", Value: "Refrain", HasValue: true, Children: []song.Node{
			song.Verbatim{Token: token.BodyLine, Text: "[G]a"},
			song.Blank{},
			song.Verbatim{Token: token.BodyLine, Text: "b"},
			song.Verbatim{Token: token.SectionClose, Text: "eoc"},
		}},
		song.LyricLine{Runs: []string{"after"}},
	})
}

func TestUnterminatedBlockClosesAtEnd(t *testing.T) {
	nodes := mustParse(t, "{sov}\nla")
	if len(nodes) != 1 {
		t.Fatalf("got %s", dump(nodes))
	}
	d := nodes[0].(*song.Directive)
	if d.Name != "sov" || d.Closed() || len(d.Children) != 1 {
		t.Errorf("unexpected verse %s", dump(nodes))
	}
}

func TestDefine(t *testing.T) {
	expectNodes(t, "{define: Am base-fret 1 frets x 0 2 2 1 0}\nla", []song.Node{
		&song.Directive{Name: "define", Value: "Am", HasValue: true, Children: []song.Node{
			song.Verbatim{Token: token.DefineBaseFret, Text: "base-fret 1"},
			song.Verbatim{Token: token.DefineFrets, Text: "frets x 0 2 2 1 0"},
		}},
		song.LyricLine{Runs: []string{"la"}},
	})
	// closed by the newline
	expectNodes(t, "{chord: G frets 3 2 0 0 0 3\n", []song.Node{
		&song.Directive{Name: "define", Value: "G", HasValue: true, Children: []song.Node{
			song.Verbatim{Token: token.DefineFrets, Text: "frets 3 2 0 0 0 3"},
		}},
	})
}

func TestComments(t *testing.T) {
	expectNodes(t, "# note\nx\n", []song.Node{
		song.Comment{Text: "note"},
		song.LyricLine{Runs: []string{"x"}},
	})
}

func TestEmptyInputs(t *testing.T) {
	if nodes := mustParse(t, ""); len(nodes) != 0 {
		t.Errorf("empty input produced %s", dump(nodes))
	}
	expectNodes(t, "\n", []song.Node{song.Blank{}})
}

func TestMalformedInputFails(t *testing.T) {
	nodes, err := song.Parse("fine\nbad\x01line")
	if err == nil {
		t.Fatal("expected an error")
	}
	if nodes != nil {
		t.Errorf("expected no nodes, got %s", dump(nodes))
	}
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) || lexErr.Code != diag.LexUnknownChar {
		t.Errorf("unexpected error %v", err)
	}
	if lexErr.Pos.Line != 2 {
		t.Errorf("error line = %d, want 2", lexErr.Pos.Line)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	toks, err := lexer.ScanString("{t: A}\n{soc}\nx\n{eoc}")
	if err != nil {
		t.Fatal(err)
	}
	first := song.Assemble(toks)
	second := song.Assemble(toks)
	if !reflect.DeepEqual(first, second) {
		t.Error("assembling the same tokens twice differs")
	}
}

func TestEmittedNodesAreNotMutated(t *testing.T) {
	toks, err := lexer.ScanString("{t: A}\n{soc}\nx\n{eoc}\n{st: B}\nmore\n")
	if err != nil {
		t.Fatal(err)
	}
	// everything up to the end of the chorus line
	cut := 0
	for i, tok := range toks {
		if tok.Kind == token.SectionClose {
			cut = i + 1
			break
		}
	}
	prefix := song.Assemble(toks[:cut])
	full := song.Assemble(toks)
	if len(prefix) != 2 || len(full) < 2 {
		t.Fatalf("prefix %s\nfull %s", dump(prefix), dump(full))
	}
	if !reflect.DeepEqual(prefix, full[:2]) {
		t.Errorf("nodes emitted early changed later:\n before %s\n after  %s", dump(prefix), dump(full[:2]))
	}
}

func TestTextBeforeMidLineSectionStaysOutside(t *testing.T) {
	expectNodes(t, "hello {soc}\nline\n{eoc}\n", []song.Node{
		song.LyricLine{Runs: []string{"hello"}},
		&song.Directive{Name: "soc", Children: []song.Node{
			song.Verbatim{Token: token.BodyLine, Text: "line"},
			song.Verbatim{Token: token.SectionClose, Text: "eoc"},
		}},
	})
	expectNodes(t, "[C]la {sov}\nx\n{end_of_verse}", []song.Node{
		song.ChordLine{Chords: []string{"C"}},
		song.LyricLine{Runs: []string{"la"}},
		&song.Directive{Name: "sov", Children: []song.Node{
			song.Verbatim{Token: token.BodyLine, Text: "x"},
			song.Verbatim{Token: token.SectionClose, Text: "eov"},
		}},
	})
}
