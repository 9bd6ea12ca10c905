package review

import "fmt"

// Disposition is the reviewer's verdict on a single row.
type Disposition string

const (
	DispositionPending  Disposition = "pending"
	DispositionApproved Disposition = "approved"
	DispositionFlagged  Disposition = "flagged"
	DispositionRejected Disposition = "rejected"
)

// Valid reports whether d is a known disposition.
func (d Disposition) Valid() bool {
	switch d {
	case DispositionPending, DispositionApproved, DispositionFlagged, DispositionRejected:
		return true
	}
	return false
}

// ParseDisposition converts a string into a Disposition.
func ParseDisposition(s string) (Disposition, error) {
	d := Disposition(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown disposition %q", s)
	}
	return d, nil
}
