package testkit_test

import (
	"testing"

	"chordpro/internal/lexer"
	"chordpro/internal/song"
	"chordpro/internal/source"
	"chordpro/internal/testkit"
	"chordpro/internal/token"
)

func TestCheckTokenInvariants(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cho", []byte("{t: x}\n[C]la\n{soc}\n  # c\n[G]x\n{eoc}\n{define: G frets 3 2 0 0 0 3}\n"))
	f := fs.Get(id)
	tokens, err := lexer.New(f, lexer.Options{}).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if err := testkit.CheckTokenInvariants(tokens, f); err != nil {
		t.Fatal(err)
	}

	broken := append([]token.Token(nil), tokens...)
	broken[1].Col++
	if err := testkit.CheckTokenInvariants(broken, f); err == nil {
		t.Fatal("expected a position mismatch")
	}
	swapped := append([]token.Token(nil), tokens...)
	swapped[0], swapped[2] = swapped[2], swapped[0]
	if err := testkit.CheckTokenInvariants(swapped, f); err == nil {
		t.Fatal("expected an ordering error")
	}
}

func TestCheckNodeInvariants(t *testing.T) {
	nodes, err := song.Parse("{soc}\n[C]la\n{eoc}\n")
	if err != nil {
		t.Fatal(err)
	}
	if err := testkit.CheckNodeInvariants(nodes); err != nil {
		t.Fatal(err)
	}
	bad := []song.Node{song.Verbatim{Token: token.BodyLine, Text: "x"}}
	if err := testkit.CheckNodeInvariants(bad); err == nil {
		t.Fatal("expected top-level verbatim error")
	}
	if err := testkit.CheckNodeInvariants([]song.Node{song.ChordLine{}}); err == nil {
		t.Fatal("expected empty chord line error")
	}
}
