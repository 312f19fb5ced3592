package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"chordpro/internal/diag"
	"chordpro/internal/lexer"
	"chordpro/internal/source"
	"chordpro/internal/token"
)

type tok struct {
	kind token.Kind
	text string
}

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cho", []byte(input))
	bag := diag.NewBag(16)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", t.Kind, t.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens scans input and compares kinds and texts.
func expectTokens(t *testing.T, input string, want []tok) {
	t.Helper()
	got, err := lexer.ScanString(input)
	if err != nil {
		t.Fatalf("scan %q: %v", input, err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s", len(want), len(got), input, tokensToString(got))
	}
	for i, g := range got {
		if g.Kind != want[i].kind || g.Text != want[i].text {
			t.Errorf("token %d: expected %v(%q), got %v(%q)", i, want[i].kind, want[i].text, g.Kind, g.Text)
		}
	}
}

func expectError(t *testing.T, input string, code diag.Code) *lexer.Error {
	t.Helper()
	lx, bag := makeTestLexer(input)
	toks, err := lx.Scan()
	if err == nil {
		t.Fatalf("expected error for %q, got tokens %s", input, tokensToString(toks))
	}
	if toks != nil {
		t.Errorf("expected no tokens on failure, got %s", tokensToString(toks))
	}
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %T", err)
	}
	if lexErr.Code != code {
		t.Errorf("code = %s, want %s", lexErr.Code.ID(), code.ID())
	}
	if bag.Len() != 1 || bag.Items()[0].Code != code {
		t.Errorf("expected one %s diagnostic, got %d", code.ID(), bag.Len())
	}
	return lexErr
}

func TestScanLyricsAndChords(t *testing.T) {
	expectTokens(t, "[C]one [D]two", []tok{
		{token.Chord, "C"},
		{token.LyricRun, "one"},
		{token.Whitespace, " "},
		{token.Chord, "D"},
		{token.LyricRun, "two"},
	})
	expectTokens(t, "[ Am7 ]|[]x\n", []tok{
		{token.Chord, "Am7"},
		{token.MeasureBar, "|"},
		{token.LyricRun, "x"},
		{token.Newline, "\n"},
	})
	expectTokens(t, "Grüße, café!\t\r\n", []tok{
		{token.LyricRun, "Grüße,"},
		{token.Whitespace, " "},
		{token.LyricRun, "café!"},
		{token.Whitespace, "\t\r"},
		{token.Newline, "\n"},
	})
}

func TestScanEmptyInputs(t *testing.T) {
	expectTokens(t, "", nil)
	expectTokens(t, "\n", []tok{{token.Newline, "\n"}})
	expectTokens(t, "\n\n", []tok{{token.Newline, "\n"}, {token.Newline, "\n"}})
}

func TestScanComments(t *testing.T) {
	expectTokens(t, "# a note \nx", []tok{
		{token.CommentOpen, "#"},
		{token.CommentText, "a note"},
		{token.Newline, "\n"},
		{token.LyricRun, "x"},
	})
	expectTokens(t, "  #indented", []tok{
		{token.CommentOpen, "#"},
		{token.CommentText, "indented"},
	})
	// '#' inside a line is lyric text
	expectTokens(t, "C# major", []tok{
		{token.LyricRun, "C#"},
		{token.Whitespace, " "},
		{token.LyricRun, "major"},
	})
}

func TestScanDirectiveNormalization(t *testing.T) {
	for _, input := range []string{"{title: X}", "{Title: X}", "{t: X}", "{ TITLE :X }"} {
		expectTokens(t, input, []tok{
			{token.DirectiveOpen, "{"},
			{token.DirectiveName, "t"},
			{token.DirectiveValue, "X"},
			{token.DirectiveClose, "}"},
		})
	}
}

func TestScanDirectiveForms(t *testing.T) {
	expectTokens(t, "{c: comment:}", []tok{
		{token.DirectiveOpen, "{"},
		{token.DirectiveName, "c"},
		{token.DirectiveValue, "comment:"},
		{token.DirectiveClose, "}"},
	})
	expectTokens(t, "{new_page}\n", []tok{
		{token.DirectiveOpen, "{"},
		{token.DirectiveName, "new_page"},
		{token.DirectiveClose, "}"},
		{token.Newline, "\n"},
	})
	// a newline ends an unclosed directive
	expectTokens(t, "{c: hi\nx", []tok{
		{token.DirectiveOpen, "{"},
		{token.DirectiveName, "c"},
		{token.DirectiveValue, "hi"},
		{token.Newline, "\n"},
		{token.LyricRun, "x"},
	})
	expectTokens(t, "{c: one}text{c: two}", []tok{
		{token.DirectiveOpen, "{"},
		{token.DirectiveName, "c"},
		{token.DirectiveValue, "one"},
		{token.DirectiveClose, "}"},
		{token.LyricRun, "text"},
		{token.DirectiveOpen, "{"},
		{token.DirectiveName, "c"},
		{token.DirectiveValue, "two"},
		{token.DirectiveClose, "}"},
	})
	// unterminated at end of input is not an error
	expectTokens(t, "{t: x", []tok{
		{token.DirectiveOpen, "{"},
		{token.DirectiveName, "t"},
		{token.DirectiveValue, "x"},
	})
}

func TestScanSections(t *testing.T) {
	expectTokens(t, "{sot}\n_ _ |x{[y]\n{ EOT }\nz", []tok{
		{token.DirectiveOpen, "{"},
		{token.SectionOpen, "sot"},
		{token.Newline, "\n"},
		{token.BodyLine, "_ _ |x{[y]"},
		{token.Newline, "\n"},
		{token.SectionClose, "eot"},
		{token.Newline, "\n"},
		{token.LyricRun, "z"},
	})
	expectTokens(t, "{start_of_chorus: Refrain}\n[G]la{end_of_chorus}", []tok{
		{token.DirectiveOpen, "{"},
		{token.SectionOpen, "soc"},
		{token.DirectiveValue, "Refrain"},
		{token.Newline, "\n"},
		{token.BodyLine, "[G]la"},
		{token.SectionClose, "eoc"},
	})
	expectTokens(t, "{sog}\n| G . | C . |\n{end_of_grid}", []tok{
		{token.DirectiveOpen, "{"},
		{token.SectionOpen, "sog"},
		{token.Newline, "\n"},
		{token.BodyLine, "| G . | C . |"},
		{token.Newline, "\n"},
		{token.SectionClose, "eog"},
	})
}

func TestScanVerseHasNoShortClose(t *testing.T) {
	expectTokens(t, "{sov}\n{eov}\n{End_Of_Verse}", []tok{
		{token.DirectiveOpen, "{"},
		{token.SectionOpen, "sov"},
		{token.Newline, "\n"},
		{token.BodyLine, "{eov}"},
		{token.Newline, "\n"},
		{token.SectionClose, "eov"},
	})
}

func TestScanSectionLookalikes(t *testing.T) {
	expectTokens(t, "{sotx}", []tok{
		{token.DirectiveOpen, "{"},
		{token.DirectiveName, "sotx"},
		{token.DirectiveClose, "}"},
	})
	expectTokens(t, "{chorus}", []tok{
		{token.DirectiveOpen, "{"},
		{token.DirectiveName, "chorus"},
		{token.DirectiveClose, "}"},
	})
}

func TestScanDefine(t *testing.T) {
	expectTokens(t, "{define: Am base-fret 1 frets x 0 2 2 1 0 fingers - - 2 3 1 -}\n", []tok{
		{token.DirectiveOpen, "{"},
		{token.SectionOpen, "define"},
		{token.DirectiveValue, "Am"},
		{token.DefineBaseFret, "base-fret 1"},
		{token.DefineFrets, "frets x 0 2 2 1 0"},
		{token.DefineFingers, "fingers - - 2 3 1 -"},
		{token.DirectiveClose, "}"},
		{token.Newline, "\n"},
	})
	expectTokens(t, "{chord G7 frets 3 2 0 0 0 1\nx", []tok{
		{token.DirectiveOpen, "{"},
		{token.SectionOpen, "define"},
		{token.DirectiveValue, "G7"},
		{token.DefineFrets, "frets 3 2 0 0 0 1"},
		{token.Newline, "\n"},
		{token.LyricRun, "x"},
	})
}

func TestScanErrors(t *testing.T) {
	err := expectError(t, "ab\x01c", diag.LexUnknownChar)
	if err.Pos != (source.LineCol{Line: 1, Col: 3}) || err.Mode != lexer.ModeMain {
		t.Errorf("unexpected error position %v mode %v", err.Pos, err.Mode)
	}
	if err.Input != "\x01c" {
		t.Errorf("input = %q", err.Input)
	}

	expectError(t, "ok\n\xff", diag.LexInvalidUTF8)

	err = expectError(t, "x [C\ny", diag.LexUnterminatedChord)
	if err.Mode != lexer.ModeChord || err.Pos.Col != 3 {
		t.Errorf("unexpected chord error %v", err)
	}

	err = expectError(t, "{define: Am bogus}", diag.LexBadDefine)
	if err.Mode != lexer.ModeDefine {
		t.Errorf("mode = %v", err.Mode)
	}
	expectError(t, "{define: }", diag.LexBadDefine)
}

func TestNextAfterErrorIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("\x02")
	_, first := lx.Next()
	_, second := lx.Next()
	if first == nil || first != second {
		t.Fatalf("expected the same error twice, got %v and %v", first, second)
	}
}

func TestTokenPositions(t *testing.T) {
	lx, _ := makeTestLexer("a\n  {t: x}\n[C]")
	toks, err := lx.Scan()
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		kind      token.Kind
		line, col uint32
	}{
		{token.LyricRun, 1, 1},
		{token.Newline, 1, 2},
		{token.DirectiveOpen, 2, 1},
		{token.DirectiveName, 2, 4},
		{token.DirectiveValue, 2, 5},
		{token.DirectiveClose, 2, 8},
		{token.Newline, 2, 9},
		{token.Chord, 3, 1},
	}
	if len(toks) != len(want) {
		t.Fatalf("tokens: %s", tokensToString(toks))
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Line != w.line || toks[i].Col != w.col {
			t.Errorf("token %d: got %v at %d:%d, want %v at %d:%d",
				i, toks[i].Kind, toks[i].Line, toks[i].Col, w.kind, w.line, w.col)
		}
	}
	if toks[7].Span.Len() != 3 {
		t.Errorf("chord span should cover the brackets, got %v", toks[7].Span)
	}
}

func TestModeStack(t *testing.T) {
	lx, _ := makeTestLexer("{soc}\nla")
	if lx.Mode() != lexer.ModeMain || lx.Depth() != 1 {
		t.Fatalf("fresh lexer in %v depth %d", lx.Mode(), lx.Depth())
	}
	for {
		tk, err := lx.Next()
		if err != nil {
			t.Fatal(err)
		}
		if tk.Kind == token.EOF {
			break
		}
	}
	if lx.Mode() != lexer.ModeChorus || lx.Depth() != 2 {
		t.Errorf("after unterminated chorus: %v depth %d", lx.Mode(), lx.Depth())
	}
}
