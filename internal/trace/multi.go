package trace

import "parsetrace/internal/forensics"

// MultiTracer fans out events to multiple tracers.
type MultiTracer struct {
	tracers []Tracer
}

// NewMultiTracer creates a MultiTracer; disabled tracers are skipped.
func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	active := make([]Tracer, 0, len(tracers))
	for _, tr := range tracers {
		if tr != nil && tr.Enabled() {
			active = append(active, tr)
		}
	}
	return &MultiTracer{tracers: active}
}

// Emit sends the event to all underlying tracers.
func (t *MultiTracer) Emit(ev forensics.Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

// Flush flushes all underlying tracers and returns the first error.
func (t *MultiTracer) Flush() error {
	var firstErr error
	for _, tr := range t.tracers {
		if err := tr.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Enabled returns true if any underlying tracer records.
func (t *MultiTracer) Enabled() bool {
	return len(t.tracers) > 0
}
