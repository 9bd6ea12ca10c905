package review

import "context"

// Direction selects which way the queue cursor steps.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// QueueQuery parameterizes one cursor step. An empty AnchorID loads
// the queue head; SourceID optionally restricts the queue to records
// extracted from one source.
type QueueQuery struct {
	Direction Direction
	AnchorID  string
	SourceID  string
}

// QueueStep is the server's answer to a cursor step. Record and Meta
// are unset when HasNext is false.
type QueueStep struct {
	HasNext      bool
	Record       *Record
	Meta         SourceMeta
	Position     int
	TotalPending int
}

// CorrectionEntry is the wire form of one correction in a commit body.
type CorrectionEntry struct {
	Field          string `json:"field"`
	OriginalValue  string `json:"original_value"`
	CorrectedValue string `json:"corrected_value"`
}

// CommitPayload is everything committed for one record: the aggregate
// outcome, the rejection reason when the outcome is rejected, the
// elapsed review time and the corrections in wire form. Row-level
// dispositions never leave the client.
type CommitPayload struct {
	Status          Outcome
	RejectionReason string
	DurationMS      int64
	Corrections     []CorrectionEntry
}

// Queue is the transport contract the engine consumes. Retries and
// timeouts belong to the implementation, not the engine; the engine
// only distinguishes success from failure.
type Queue interface {
	// Next steps the server cursor and returns the record at the new
	// position, or HasNext=false when the queue is exhausted.
	Next(ctx context.Context, q QueueQuery) (*QueueStep, error)

	// SourceContent fetches the captured source rendering for a
	// record. Callers treat failure as non-fatal.
	SourceContent(ctx context.Context, recordID string) (*SourceContent, error)

	// Commit submits the aggregate outcome for a record.
	Commit(ctx context.Context, recordID string, p CommitPayload) error

	// Revert resets a previously committed record to pending.
	Revert(ctx context.Context, recordID string) error
}
