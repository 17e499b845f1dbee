package trace

import "parsetrace/internal/forensics"

// Tracer receives span events in the order the matcher produces them.
type Tracer interface {
	// Emit records an event. Must be goroutine-safe.
	Emit(ev forensics.Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Enabled returns true if events are being recorded.
	Enabled() bool
}

type nopTracer struct{}

func (nopTracer) Emit(forensics.Event) {}
func (nopTracer) Flush() error         { return nil }
func (nopTracer) Enabled() bool        { return false }

// Nop is the package-level singleton no-op tracer.
var Nop Tracer = nopTracer{}
