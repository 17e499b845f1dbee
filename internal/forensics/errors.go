package forensics

import "errors"

var (
	// ErrMalformedTrace reports an Exit with no open span, or spans left
	// open at the end of the trace.
	ErrMalformedTrace = errors.New("malformed trace")
	// ErrPairingConflict reports an Enter that was linked to two Exits.
	ErrPairingConflict = errors.New("pairing conflict")
	// ErrTraversalBounds reports a render walk that ran off the table.
	ErrTraversalBounds = errors.New("traversal out of bounds")
	// ErrUnsupportedEvent reports an event kind the reconstructor does not handle.
	ErrUnsupportedEvent = errors.New("unsupported event")
)
