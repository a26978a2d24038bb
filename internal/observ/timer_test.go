package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTrackRecordsFailure(t *testing.T) {
	tm := NewTimer()
	if err := tm.Track(PhaseLex, func() error { return nil }); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	boom := errors.New("boom")
	if err := tm.Track(PhaseParse, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Track returned %v", err)
	}
	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[1].Note != "failed" || rep.Phases[0].Note != "" {
		t.Fatalf("unexpected report %+v", rep)
	}
	if !strings.Contains(tm.Summary(), "total") {
		t.Fatalf("summary missing total:\n%s", tm.Summary())
	}
}

func TestMergePrefixesNames(t *testing.T) {
	inner := NewTimer()
	inner.End(inner.Begin(PhaseValidate), "")
	outer := NewTimer()
	outer.Merge("a.kiwi/", inner)
	rep := outer.Report()
	if len(rep.Phases) != 1 || rep.Phases[0].Name != "a.kiwi/validate" {
		t.Fatalf("unexpected phases %+v", rep.Phases)
	}
}
