// Package forensics reconstructs and renders match traces recorded by a
// recursive matcher such as a parser.
//
// A trace is a flat, chronologically ordered list of Enter and Exit events.
// Reconstruct turns it into a Table in which every record knows its nesting
// depth and the index of its counterpart:
//
//	table, err := forensics.Reconstruct(events)
//	if err != nil {
//		return err // ErrMalformedTrace, ErrPairingConflict, ErrUnsupportedEvent
//	}
//	lines, err := forensics.Render(text, table)
//
// Render walks the table with a single cursor and emits one Line per retained
// record. A span whose Enter is immediately followed by its own Exit (a leaf)
// is shown once, at the Exit, instead of twice.
//
// Both stages are pure: they perform no I/O and keep no state between calls.
// Presentation of the resulting lines lives in package present.
package forensics
