package trace

import (
	"bufio"
	"io"
	"sync"

	"parsetrace/internal/forensics"
	"parsetrace/internal/traceio"
)

// Stream encodes events to an io.Writer as they arrive.
type Stream struct {
	mu  sync.Mutex
	w   *bufio.Writer
	enc *traceio.Encoder
	err error // first write error; later events are dropped
}

// NewStream creates a Stream writing format to w.
func NewStream(w io.Writer, format traceio.Format) (*Stream, error) {
	bw := bufio.NewWriter(w)
	enc, err := traceio.NewEncoder(bw, format)
	if err != nil {
		return nil, err
	}
	return &Stream{w: bw, enc: enc}, nil
}

// Emit encodes ev. Write errors are kept and reported by Flush so that a
// failing sink never aborts the matcher.
func (s *Stream) Emit(ev forensics.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	s.err = s.enc.Encode(ev)
}

// Flush writes buffered data and returns the first error seen.
func (s *Stream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}

// Enabled always returns true.
func (s *Stream) Enabled() bool { return true }
