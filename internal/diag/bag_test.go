package diag_test

import (
	"testing"

	"chordpro/internal/diag"
	"chordpro/internal/source"
)

func TestBagLimitAndSeverity(t *testing.T) {
	bag := diag.NewBag(2)
	r := diag.BagReporter{Bag: bag}

	r.Report(diag.LexUnknownChar, diag.SevWarning, source.Span{Start: 1, End: 2}, "w", nil)
	if bag.HasErrors() {
		t.Fatal("unexpected error")
	}
	if !bag.HasWarnings() {
		t.Fatal("expected warning")
	}
	diag.ReportError(r, diag.LexInvalidUTF8, source.Span{Start: 0, End: 1}, "e").Emit()
	if !bag.HasErrors() {
		t.Fatal("expected error")
	}
	if bag.Add(diag.Diagnostic{Code: diag.LexBadDefine}) {
		t.Error("bag accepted an item beyond its cap")
	}
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Code: diag.LexUnknownChar, Severity: diag.SevError, Primary: source.Span{Start: 5, End: 6}})
	bag.Add(diag.Diagnostic{Code: diag.LexUnknownChar, Severity: diag.SevError, Primary: source.Span{Start: 1, End: 2}})
	bag.Add(diag.Diagnostic{Code: diag.LexUnknownChar, Severity: diag.SevError, Primary: source.Span{Start: 5, End: 6}})

	bag.Sort()
	if got := bag.Items()[0].Primary.Start; got != 1 {
		t.Errorf("first item starts at %d, want 1", got)
	}
	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("after Dedup Len() = %d, want 2", bag.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := diag.NewBag(1)
	a.Add(diag.Diagnostic{Code: diag.LexUnknownChar})
	b := diag.NewBag(2)
	b.Add(diag.Diagnostic{Code: diag.IOLoadFileError})
	b.Add(diag.Diagnostic{Code: diag.CfgInvalid})

	a.Merge(b)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Errorf("Len=%d Cap=%d, want 3/3", a.Len(), a.Cap())
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[diag.Code]string{
		diag.LexUnknownChar:  "LEX1001",
		diag.IOLoadFileError: "IO4001",
		diag.CfgInvalid:      "CFG5001",
		diag.UnknownCode:     "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if diag.Code(1999).Title() != "Unknown error" {
		t.Error("unregistered code should fall back to the unknown title")
	}
}
