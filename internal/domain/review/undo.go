package review

// UndoEntry captures one disposition change so it can be reversed.
type UndoEntry struct {
	Row      int
	Previous Disposition
}

// UndoLog is a LIFO log of disposition changes for the current record.
// It is discarded wholesale on every record transition; undo never
// crosses record boundaries. Bulk approval deliberately bypasses the
// log, so a bulk action is not reversible through N single undos.
type UndoLog struct {
	entries []UndoEntry
}

func NewUndoLog() *UndoLog {
	return &UndoLog{}
}

// Push records the disposition a row held before a change.
func (l *UndoLog) Push(row int, previous Disposition) {
	l.entries = append(l.entries, UndoEntry{Row: row, Previous: previous})
}

// Pop removes and returns the most recent entry. The second return is
// false when the log is empty.
func (l *UndoLog) Pop() (UndoEntry, bool) {
	if len(l.entries) == 0 {
		return UndoEntry{}, false
	}
	e := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return e, true
}

// Len returns the number of reversible changes.
func (l *UndoLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Clear empties the log.
func (l *UndoLog) Clear() {
	l.entries = l.entries[:0]
}
