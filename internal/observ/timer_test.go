package observ_test

import (
	"errors"
	"strings"
	"testing"

	"chordpro/internal/observ"
)

func TestTimerReport(t *testing.T) {
	tm := observ.NewTimer()
	idx := tm.Begin("scan")
	tm.End(idx, "12 tokens")
	err := tm.Time("assemble", func() error { return errors.New("boom") })
	if err == nil {
		t.Fatal("Time should return the phase error")
	}
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Note != "12 tokens" || rep.Phases[1].Note != "failed" {
		t.Fatalf("unexpected report %+v", rep)
	}
	sum := tm.Summary()
	for _, want := range []string{"timings:", "scan", "// 12 tokens", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if rep := observ.NewTimer().Report(); rep.TotalMS != 0 || rep.Phases != nil {
		t.Errorf("unexpected %+v", rep)
	}
}
