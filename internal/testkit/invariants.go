package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"parsetrace/internal/forensics"
)

// CheckTable runs the structural invariants of a reconstructed table:
// 1) every record is paired, and pairing is symmetric between an Enter and an Exit
// 2) a pair shares one depth and the Enter precedes its Exit
// 3) depth returns to 0 exactly at the last record
func CheckTable(t *forensics.Table) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}
	n := t.Len()
	for i := 0; i < n; i++ {
		rec := t.At(i)
		if rec.Pair < 0 || rec.Pair >= n {
			return fmt.Errorf("record %d: pair %d out of range", i, rec.Pair)
		}
		other := t.At(rec.Pair)
		if other.Pair != i {
			return fmt.Errorf("record %d: pair %d links back to %d", i, rec.Pair, other.Pair)
		}
		if other.Depth != rec.Depth {
			return fmt.Errorf("record %d: depth %d, pair depth %d", i, rec.Depth, other.Depth)
		}
		switch rec.Event.Kind {
		case forensics.KindEnter:
			if other.Event.Kind != forensics.KindExit || rec.Pair <= i {
				return fmt.Errorf("record %d: enter not closed by a later exit", i)
			}
		case forensics.KindExit:
			if other.Event.Kind != forensics.KindEnter || rec.Pair >= i {
				return fmt.Errorf("record %d: exit not opened by an earlier enter", i)
			}
		default:
			return fmt.Errorf("record %d: unexpected %s event", i, rec.Event.Kind)
		}
	}
	if n > 0 {
		if last := t.At(n - 1); last.Depth != 0 || last.Event.Kind != forensics.KindExit {
			return fmt.Errorf("trace does not end at depth 0 with an exit")
		}
	}
	return nil
}

// CheckOffsets verifies that every offset in t lies within a source of
// textLen bytes and that successful spans do not end before they start.
func CheckOffsets(t *forensics.Table, textLen int) error {
	limit, err := safecast.Conv[uint32](textLen)
	if err != nil {
		return fmt.Errorf("text length overflow: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		ev := t.At(i).Event
		if uint32(ev.Start) > limit {
			return fmt.Errorf("record %d: start %d beyond text length %d", i, ev.Start, limit)
		}
		if ev.HasEnd {
			if uint32(ev.End) > limit {
				return fmt.Errorf("record %d: end %d beyond text length %d", i, ev.End, limit)
			}
			if ev.End < ev.Start {
				return fmt.Errorf("record %d: end %d before start %d", i, ev.End, ev.Start)
			}
		}
	}
	return nil
}
