package forensics

import "fmt"

// Pos is a byte offset into the traced source text.
type Pos uint32

// Kind tags the variant carried by an Event.
type Kind uint8

const (
	// KindEnter marks the start of a rule attempt.
	KindEnter Kind = iota + 1
	// KindExit marks the end of a rule attempt, successful or not.
	KindExit
	// KindCached is a memoized rule result reported without nested events.
	// Producers may emit it; the reconstructor rejects it.
	KindCached
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindEnter:
		return "enter"
	case KindExit:
		return "exit"
	case KindCached:
		return "cached"
	default:
		return "unknown"
	}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "enter":
		return KindEnter, nil
	case "exit":
		return KindExit, nil
	case "cached":
		return KindCached, nil
	default:
		return 0, fmt.Errorf("invalid event kind: %q (expected: enter|exit|cached)", s)
	}
}

// Event is a single span event. End is meaningful only when HasEnd is set;
// an Exit without an end offset means the rule failed to match.
type Event struct {
	Kind   Kind
	Rule   string // rule or span name
	Start  Pos    // offset where the attempt started
	End    Pos    // offset where a successful match ended
	HasEnd bool
}

// Enter returns the event opening a span of rule at start.
func Enter(rule string, start Pos) Event {
	return Event{Kind: KindEnter, Rule: rule, Start: start}
}

// Match returns the event closing a span of rule that consumed [start, end).
func Match(rule string, start, end Pos) Event {
	return Event{Kind: KindExit, Rule: rule, Start: start, End: end, HasEnd: true}
}

// Fail returns the event closing a span of rule that did not match.
func Fail(rule string, start Pos) Event {
	return Event{Kind: KindExit, Rule: rule, Start: start}
}

// Succeeded reports whether e is an Exit carrying an end offset.
func (e Event) Succeeded() bool {
	return e.Kind == KindExit && e.HasEnd
}

func (e Event) String() string {
	switch e.Kind {
	case KindEnter:
		return fmt.Sprintf("enter %s@%d", e.Rule, e.Start)
	case KindExit, KindCached:
		if e.HasEnd {
			return fmt.Sprintf("%s %s@%d-%d", e.Kind, e.Rule, e.Start, e.End)
		}
		return fmt.Sprintf("%s %s@%d fail", e.Kind, e.Rule, e.Start)
	default:
		return fmt.Sprintf("%s %s@%d", e.Kind, e.Rule, e.Start)
	}
}
