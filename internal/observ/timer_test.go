package observ

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimer_Report(t *testing.T) {
	timer := NewTimer()
	timer.now = fakeClock(2 * time.Millisecond)

	idx := timer.Begin("decode")
	timer.End(idx, "12 events")
	err := timer.Track("reconstruct", func() (string, error) { return "", errors.New("boom") })
	if err == nil {
		t.Fatalf("Track() should return the phase error")
	}
	timer.End(99, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("len(Phases) = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].DurationMS != 2 || report.Phases[0].Note != "12 events" {
		t.Errorf("phase 0 = %+v", report.Phases[0])
	}
	if report.Phases[1].Note != "failed" {
		t.Errorf("phase 1 note = %q, want failed", report.Phases[1].Note)
	}
	if report.TotalMS != 4 {
		t.Errorf("TotalMS = %v, want 4", report.TotalMS)
	}

	summary := report.Summary("trace.ndjson")
	for _, want := range []string{"timings: trace.ndjson", "decode", "// 12 events", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() missing %q:\n%s", want, summary)
		}
	}
}

func TestTimer_Empty(t *testing.T) {
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Errorf("Report() of empty timer = %+v", r)
	}
}
