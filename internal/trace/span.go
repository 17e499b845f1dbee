package trace

import "parsetrace/internal/forensics"

// Span is an open rule attempt. Exactly one of Match or Fail closes it;
// later calls do nothing.
type Span struct {
	tracer Tracer
	rule   string
	start  forensics.Pos
	closed bool
}

// Begin emits the Enter event for rule at start and returns the open span.
func Begin(t Tracer, rule string, start forensics.Pos) *Span {
	if t == nil || !t.Enabled() {
		return &Span{tracer: Nop, closed: true}
	}
	t.Emit(forensics.Enter(rule, start))
	return &Span{tracer: t, rule: rule, start: start}
}

// Match closes the span as a successful match ending at end.
func (s *Span) Match(end forensics.Pos) {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.tracer.Emit(forensics.Match(s.rule, s.start, end))
}

// Fail closes the span as a failed attempt.
func (s *Span) Fail() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.tracer.Emit(forensics.Fail(s.rule, s.start))
}

// End closes the span with the outcome of a match attempt.
func (s *Span) End(end forensics.Pos, ok bool) {
	if ok {
		s.Match(end)
		return
	}
	s.Fail()
}
