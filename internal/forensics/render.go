package forensics

import "fmt"

// Status classifies a rendered line.
type Status uint8

const (
	// StatusOpened is an Enter that is shown on its own line.
	StatusOpened Status = iota + 1
	// StatusMatched is an Exit carrying an end offset.
	StatusMatched
	// StatusFailed is an Exit without an end offset.
	StatusFailed
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case StatusOpened:
		return "opened"
	case StatusMatched:
		return "matched"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StatusOf derives the display status of an event.
func StatusOf(ev Event) (Status, error) {
	switch ev.Kind {
	case KindEnter:
		return StatusOpened, nil
	case KindExit:
		if ev.HasEnd {
			return StatusMatched, nil
		}
		return StatusFailed, nil
	default:
		return 0, fmt.Errorf("%w: cannot render %s event %q", ErrUnsupportedEvent, ev.Kind, ev.Rule)
	}
}

// Line is one entry of a rendered trace. Offsets are passed through so that
// the presentation layer can correlate them with the source text.
type Line struct {
	Index  int // position of the rendered record in the table
	Indent int // nesting depth of the record
	Label  string
	Status Status
	Start  Pos
	End    Pos
	HasEnd bool
}

// Render walks t and returns the lines to display, in order. A leaf span,
// one whose Exit directly follows its Enter, yields a single line at the
// Exit position. text is the traced source; Render only carries it through
// for callers that correlate offsets and does not inspect it.
func Render(text string, t *Table) ([]Line, error) {
	_ = text
	n := t.Len()
	if n == 0 {
		return nil, nil
	}

	lines := make([]Line, 0, n)
	for idx := 0; idx < n; idx++ {
		rec := t.records[idx]
		if rec.Event.Kind == KindEnter {
			pair := rec.Pair
			if pair <= idx || pair >= n {
				return nil, fmt.Errorf("%w: enter %q at %d links to %d in a table of %d",
					ErrTraversalBounds, rec.Event.Rule, idx, pair, n)
			}
			if t.records[pair].Event.Kind != KindExit {
				return nil, fmt.Errorf("%w: enter %q at %d links to a %s record at %d",
					ErrTraversalBounds, rec.Event.Rule, idx, t.records[pair].Event.Kind, pair)
			}
			if pair == idx+1 {
				idx = pair
				rec = t.records[idx]
			}
		}

		status, err := StatusOf(rec.Event)
		if err != nil {
			return nil, err
		}
		lines = append(lines, Line{
			Index:  idx,
			Indent: rec.Depth,
			Label:  rec.Event.Rule,
			Status: status,
			Start:  rec.Event.Start,
			End:    rec.Event.End,
			HasEnd: rec.Event.HasEnd,
		})
	}

	if last := t.records[n-1]; last.Event.Kind != KindExit {
		return nil, fmt.Errorf("%w: table ends with %s %q at %d",
			ErrTraversalBounds, last.Event.Kind, last.Event.Rule, n-1)
	}
	return lines, nil
}

// Collapsed returns how many leaf spans Render folds into a single line.
func Collapsed(t *Table) int {
	count := 0
	for i := 0; i+1 < t.Len(); i++ {
		if t.records[i].Event.Kind == KindEnter && t.records[i].Pair == i+1 {
			count++
		}
	}
	return count
}
