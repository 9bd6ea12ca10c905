package review

import "errors"

var (
	// ErrNoRecord is returned when an operation needs a loaded record
	// and the session has none.
	ErrNoRecord = errors.New("no record loaded")

	// ErrQueueDrained marks the normal terminal state of a session:
	// the server reported no further pending records.
	ErrQueueDrained = errors.New("review queue drained")

	// ErrNothingToUndo is reported when the undo log is empty. Callers
	// surface it as a notice, not a failure.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrRowOutOfRange is returned for a row index outside the record.
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrUnknownField is returned when a correction targets a field
	// the selected row does not carry.
	ErrUnknownField = errors.New("unknown field")

	// ErrBusy is returned when a network operation is already in
	// flight and the requested operation is not legal yet.
	ErrBusy = errors.New("operation in flight")
)
