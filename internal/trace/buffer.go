package trace

import (
	"sync"

	"parsetrace/internal/forensics"
)

// Buffer keeps every emitted event in memory.
type Buffer struct {
	mu     sync.RWMutex
	events []forensics.Event
}

// NewBuffer creates an empty Buffer with room for capacity events.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{events: make([]forensics.Event, 0, capacity)}
}

// Emit appends an event.
func (b *Buffer) Emit(ev forensics.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}

// Events returns a copy of the recorded events in emission order.
func (b *Buffer) Events() []forensics.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]forensics.Event, len(b.events))
	copy(out, b.events)
	return out
}

// Reset drops all recorded events.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.events = b.events[:0]
	b.mu.Unlock()
}

// Flush is a no-op for Buffer since everything is in memory.
func (b *Buffer) Flush() error { return nil }

// Enabled always returns true.
func (b *Buffer) Enabled() bool { return true }
