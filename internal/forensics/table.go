package forensics

import "fmt"

// NoPair marks a record whose counterpart has not been linked yet.
const NoPair = -1

// Record is an Event positioned in a reconstructed Table.
type Record struct {
	Event Event
	Depth int // number of spans enclosing this one; shared by Enter and Exit
	Pair  int // index of the counterpart record
}

// Table is a reconstructed trace. It is immutable once Reconstruct returns.
type Table struct {
	records []Record
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the record at index i.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of all records in trace order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// MaxDepth returns the deepest nesting level present in the table, or -1
// for an empty table.
func (t *Table) MaxDepth() int {
	maxDepth := -1
	for i := 0; i < t.Len(); i++ {
		if d := t.records[i].Depth; d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// Reconstruct pairs every Enter with the Exit that closes it and annotates
// each event with its nesting depth. Events must be well nested; any
// violation is reported as an error and no table is returned.
func Reconstruct(events []Event) (*Table, error) {
	records := make([]Record, 0, len(events))
	open := make([]int, 0, 16)
	depth := 0

	for idx, ev := range events {
		switch ev.Kind {
		case KindEnter:
			records = append(records, Record{Event: ev, Depth: depth, Pair: NoPair})
			open = append(open, idx)
			depth++
		case KindExit:
			if depth == 0 {
				return nil, fmt.Errorf("%w: exit of %q at event %d has no open span", ErrMalformedTrace, ev.Rule, idx)
			}
			depth--
			top := open[len(open)-1]
			open = open[:len(open)-1]
			records = append(records, Record{Event: ev, Depth: depth, Pair: top})
		default:
			return nil, fmt.Errorf("%w: %s event %d (%q)", ErrUnsupportedEvent, ev.Kind, idx, ev.Rule)
		}
	}
	if depth != 0 {
		top := open[len(open)-1]
		return nil, fmt.Errorf("%w: %d span(s) still open at end of trace, innermost %q at event %d",
			ErrMalformedTrace, depth, events[top].Rule, top)
	}

	// Only Exits carry a link so far; mirror each onto its Enter.
	type link struct{ enter, exit int }
	links := make([]link, 0, len(records)/2)
	for idx := range records {
		if records[idx].Pair != NoPair {
			links = append(links, link{enter: records[idx].Pair, exit: idx})
		}
	}
	for _, l := range links {
		target := &records[l.enter]
		if target.Pair != NoPair {
			return nil, fmt.Errorf("%w: enter %q at event %d already paired with %d, cannot pair with %d",
				ErrPairingConflict, target.Event.Rule, l.enter, target.Pair, l.exit)
		}
		target.Pair = l.exit
	}

	return &Table{records: records}, nil
}
