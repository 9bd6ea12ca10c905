package review

// StatusBoard holds exactly one disposition per row index. Every row
// starts pending when a record loads; the board never shrinks or grows
// for the lifetime of a record.
type StatusBoard struct {
	statuses []Disposition
}

// NewStatusBoard creates a board with every row pending.
func NewStatusBoard(rows int) *StatusBoard {
	statuses := make([]Disposition, rows)
	for i := range statuses {
		statuses[i] = DispositionPending
	}
	return &StatusBoard{statuses: statuses}
}

// Len returns the number of rows tracked.
func (b *StatusBoard) Len() int {
	if b == nil {
		return 0
	}
	return len(b.statuses)
}

// StatusOf returns the disposition of a row, pending for any index the
// board does not track.
func (b *StatusBoard) StatusOf(index int) Disposition {
	if b == nil || index < 0 || index >= len(b.statuses) {
		return DispositionPending
	}
	return b.statuses[index]
}

// Set applies a disposition to one row and returns the disposition it
// replaced. The caller owns undo bookkeeping.
func (b *StatusBoard) Set(index int, d Disposition) (Disposition, error) {
	if index < 0 || index >= len(b.statuses) {
		return "", ErrRowOutOfRange
	}
	prev := b.statuses[index]
	b.statuses[index] = d
	return prev, nil
}

// ApproveAll promotes every pending row to approved and returns how
// many rows changed. Rows already flagged or rejected keep their
// explicit verdict; a bulk approve never overrides a negative one.
func (b *StatusBoard) ApproveAll() int {
	changed := 0
	for i, s := range b.statuses {
		if s == DispositionPending {
			b.statuses[i] = DispositionApproved
			changed++
		}
	}
	return changed
}

// Any reports whether at least one row carries the disposition.
func (b *StatusBoard) Any(d Disposition) bool {
	for _, s := range b.statuses {
		if s == d {
			return true
		}
	}
	return false
}

// Every reports whether all rows carry the disposition. An empty board
// vacuously satisfies nothing.
func (b *StatusBoard) Every(d Disposition) bool {
	if len(b.statuses) == 0 {
		return false
	}
	for _, s := range b.statuses {
		if s != d {
			return false
		}
	}
	return true
}

// Counts tallies rows per disposition.
func (b *StatusBoard) Counts() map[Disposition]int {
	counts := make(map[Disposition]int, 4)
	for _, s := range b.statuses {
		counts[s]++
	}
	return counts
}

// All returns a copy of the per-row dispositions in row order.
func (b *StatusBoard) All() []Disposition {
	out := make([]Disposition, len(b.statuses))
	copy(out, b.statuses)
	return out
}
