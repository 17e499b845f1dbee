package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"parsetrace/internal/forensics"
	"parsetrace/internal/traceio"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeTrace(t *testing.T, dir, name string, events []forensics.Event) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	enc, err := traceio.NewEncoder(f, traceio.DetectFormat(path))
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
	}
	return path
}

var wellFormed = []forensics.Event{
	forensics.Enter("A", 0),
	forensics.Enter("B", 0),
	forensics.Match("B", 0, 1),
	forensics.Match("A", 1, 5),
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	tracePath := writeTrace(t, dir, "ok.ndjson", wellFormed)
	srcPath := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(srcPath, []byte("x+y=z"), 0o600); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	res, err := Inspect(context.Background(), Job{TracePath: tracePath, SourcePath: srcPath}, Options{Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if res.Table.Len() != 4 || len(res.Lines) != 3 {
		t.Errorf("Inspect() table=%d lines=%d, want 4 and 3", res.Table.Len(), len(res.Lines))
	}
	if res.Text.Content != "x+y=z" {
		t.Errorf("Text.Content = %q", res.Text.Content)
	}
	names := make([]string, 0, len(res.Timing.Phases))
	for _, p := range res.Timing.Phases {
		names = append(names, p.Name)
	}
	if len(names) != 4 || names[0] != "source" || names[3] != "render" {
		t.Errorf("timing phases = %v", names)
	}
}

func TestInspect_MalformedIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeTrace(t, dir, "bad.mp", []forensics.Event{forensics.Match("A", 0, 0)})

	res, err := Inspect(context.Background(), Job{TracePath: path}, Options{})
	if !errors.Is(err, forensics.ErrMalformedTrace) {
		t.Fatalf("Inspect() error = %v, want %v", err, forensics.ErrMalformedTrace)
	}
	if res != nil {
		t.Errorf("Inspect() returned a partial result")
	}
}

func TestInspect_MissingSource(t *testing.T) {
	dir := t.TempDir()
	path := writeTrace(t, dir, "ok.ndjson", wellFormed)
	_, err := Inspect(context.Background(), Job{TracePath: path, SourcePath: filepath.Join(dir, "nope")}, Options{})
	if err == nil {
		t.Fatalf("Inspect() expected error for missing source")
	}
}

func TestInspectAll(t *testing.T) {
	dir := t.TempDir()
	var jobs []Job
	for i, name := range []string{"a.ndjson", "b.mp", "c.ndjson", "d.mp"} {
		events := wellFormed
		if i%2 == 1 {
			events = []forensics.Event{forensics.Enter("solo", 0), forensics.Fail("solo", 0)}
		}
		jobs = append(jobs, Job{TracePath: writeTrace(t, dir, name, events)})
	}

	results, err := InspectAll(context.Background(), jobs, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("InspectAll() error = %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(jobs))
	}
	for i, res := range results {
		if res.Job.TracePath != jobs[i].TracePath {
			t.Errorf("result %d is for %s, want %s", i, res.Job.TracePath, jobs[i].TracePath)
		}
		wantLines := 3
		if i%2 == 1 {
			wantLines = 1
		}
		if len(res.Lines) != wantLines {
			t.Errorf("result %d has %d lines, want %d", i, len(res.Lines), wantLines)
		}
	}
}

func TestInspectAll_FirstErrorWins(t *testing.T) {
	dir := t.TempDir()
	jobs := []Job{
		{TracePath: writeTrace(t, dir, "ok.ndjson", wellFormed)},
		{TracePath: writeTrace(t, dir, "dangling.ndjson", []forensics.Event{forensics.Enter("A", 0)})},
	}
	results, err := InspectAll(context.Background(), jobs, Options{})
	if !errors.Is(err, forensics.ErrMalformedTrace) {
		t.Fatalf("InspectAll() error = %v, want %v", err, forensics.ErrMalformedTrace)
	}
	if results != nil {
		t.Errorf("InspectAll() returned results alongside an error")
	}
}

func TestInspect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Inspect(ctx, Job{TracePath: "unused"}, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Inspect() error = %v, want %v", err, context.Canceled)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) last(trace string) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out Event
	for _, ev := range s.events {
		if ev.Trace == trace {
			out = ev
		}
	}
	return out
}

func TestInspectAll_Progress(t *testing.T) {
	dir := t.TempDir()
	good := writeTrace(t, dir, "good.ndjson", wellFormed)
	bad := writeTrace(t, dir, "bad.ndjson", []forensics.Event{forensics.Enter("x", 0)})
	sink := &recordingSink{}

	if _, err := InspectAll(context.Background(), []Job{{TracePath: good}}, Options{Progress: sink}); err != nil {
		t.Fatalf("InspectAll() error = %v", err)
	}
	if ev := sink.last(good); ev.Status != StatusDone || ev.Stage != StageRender {
		t.Errorf("last event for good trace = %+v", ev)
	}
	if first := sink.events[0]; first.Status != StatusQueued {
		t.Errorf("first event = %+v, want queued", first)
	}

	if _, err := InspectAll(context.Background(), []Job{{TracePath: bad}}, Options{Progress: sink}); err == nil {
		t.Fatalf("InspectAll() expected error")
	}
	ev := sink.last(bad)
	if ev.Status != StatusError || ev.Stage != StageReconstruct || !errors.Is(ev.Err, forensics.ErrMalformedTrace) {
		t.Errorf("last event for bad trace = %+v", ev)
	}
}
