package review

import "time"

// Session is the in-memory review state for the record currently on
// screen. Every mutation is local and synchronous; nothing reaches the
// server until the commit resolver packages the aggregate outcome. A
// record transition replaces the per-record state wholesale.
type Session struct {
	record *Record
	meta   SourceMeta
	source *SourceContent

	board       *StatusBoard
	corrections *CorrectionSet
	undo        *UndoLog

	selected int
	field    int

	position     int
	totalPending int
	hasNext      bool

	startedAt time.Time
}

// NewSession creates an empty session with no record loaded.
func NewSession() *Session {
	return &Session{
		board:       NewStatusBoard(0),
		corrections: NewCorrectionSet(),
		undo:        NewUndoLog(),
		startedAt:   time.Now(),
	}
}

// Reset installs a freshly loaded record: every row pending, no
// corrections, no undo history, cursor on row 0, clock restarted.
func (s *Session) Reset(rec *Record, meta SourceMeta, src *SourceContent, position, totalPending int) {
	s.record = rec
	s.meta = meta
	s.source = src
	s.board = NewStatusBoard(rec.RowCount())
	s.corrections = NewCorrectionSet()
	s.undo = NewUndoLog()
	s.selected = 0
	s.field = 0
	s.position = position
	s.totalPending = totalPending
	s.hasNext = true
	s.startedAt = time.Now()
}

// Drain clears the record and marks the queue exhausted. The session
// shows an empty terminal display until a new session starts.
func (s *Session) Drain() {
	s.record = nil
	s.meta = SourceMeta{}
	s.source = nil
	s.board = NewStatusBoard(0)
	s.corrections = NewCorrectionSet()
	s.undo = NewUndoLog()
	s.selected = 0
	s.field = 0
	s.hasNext = false
}

// HasRecord reports whether a record is loaded.
func (s *Session) HasRecord() bool { return s.record != nil }

// HasNext reports whether the queue had a record at the last step.
func (s *Session) HasNext() bool { return s.hasNext }

// Record returns the loaded record, nil when drained or empty.
func (s *Session) Record() *Record { return s.record }

// Meta returns the source metadata for the loaded record.
func (s *Session) Meta() SourceMeta { return s.meta }

// Source returns the captured source rendering, nil when the fetch
// failed or has not completed. Review proceeds without it.
func (s *Session) Source() *SourceContent { return s.source }

// AttachSource installs source content fetched after the record.
func (s *Session) AttachSource(src *SourceContent) { s.source = src }

// Position returns the 1-based queue position reported by the server.
func (s *Session) Position() int { return s.position }

// TotalPending returns the queue depth reported by the server.
func (s *Session) TotalPending() int { return s.totalPending }

// RowCount returns the number of rows in the loaded record.
func (s *Session) RowCount() int { return s.record.RowCount() }

// Elapsed returns the review time for the current record.
func (s *Session) Elapsed() time.Duration { return time.Since(s.startedAt) }

// SelectedRow returns the zero-based selection cursor.
func (s *Session) SelectedRow() int { return s.selected }

// StatusOf returns the disposition of a row.
func (s *Session) StatusOf(index int) Disposition { return s.board.StatusOf(index) }

// Statuses returns all dispositions in row order.
func (s *Session) Statuses() []Disposition { return s.board.All() }

// StatusCounts tallies rows per disposition.
func (s *Session) StatusCounts() map[Disposition]int { return s.board.Counts() }

// Corrections returns the recorded corrections in order.
func (s *Session) Corrections() []Correction { return s.corrections.All() }

// CorrectionCount returns the number of recorded corrections.
func (s *Session) CorrectionCount() int { return s.corrections.Len() }

// UndoDepth returns the number of reversible disposition changes.
func (s *Session) UndoDepth() int { return s.undo.Len() }

// SelectRow moves the cursor to a row.
func (s *Session) SelectRow(index int) error {
	if !s.HasRecord() {
		return ErrNoRecord
	}
	if index < 0 || index >= s.RowCount() {
		return ErrRowOutOfRange
	}
	if index != s.selected {
		s.selected = index
		s.field = 0
	}
	return nil
}

// NextRow moves the cursor down one row, stopping at the last row.
func (s *Session) NextRow() {
	if s.HasRecord() && s.selected < s.RowCount()-1 {
		s.selected++
		s.field = 0
	}
}

// PrevRow moves the cursor up one row, stopping at row 0.
func (s *Session) PrevRow() {
	if s.HasRecord() && s.selected > 0 {
		s.selected--
		s.field = 0
	}
}

// Row returns the currently selected row.
func (s *Session) Row() (Row, bool) {
	if !s.HasRecord() || s.selected >= s.RowCount() {
		return Row{}, false
	}
	return s.record.Rows[s.selected], true
}

// NextField moves the field cursor right within the selected row.
func (s *Session) NextField() {
	if row, ok := s.Row(); ok && s.field < len(row.Fields)-1 {
		s.field++
	}
}

// PrevField moves the field cursor left within the selected row.
func (s *Session) PrevField() {
	if s.field > 0 {
		s.field--
	}
}

// SelectedField returns the field under the field cursor, empty when
// no record or the row has no fields.
func (s *Session) SelectedField() string {
	row, ok := s.Row()
	if !ok || len(row.Fields) == 0 {
		return ""
	}
	if s.field >= len(row.Fields) {
		return row.Fields[len(row.Fields)-1]
	}
	return row.Fields[s.field]
}

// SetStatus applies a disposition to one row, recording the previous
// disposition for undo. The cursor does not move; direct per-row
// sweeps go through Dispose.
func (s *Session) SetStatus(index int, d Disposition) error {
	if !s.HasRecord() {
		return ErrNoRecord
	}
	prev, err := s.board.Set(index, d)
	if err != nil {
		return err
	}
	s.undo.Push(index, prev)
	return nil
}

// Dispose applies a disposition to the selected row and advances the
// cursor one row, modeling a top-to-bottom review sweep. The cursor
// never moves past the last row.
func (s *Session) Dispose(d Disposition) error {
	if err := s.SetStatus(s.selected, d); err != nil {
		return err
	}
	if s.selected < s.RowCount()-1 {
		s.selected++
		s.field = 0
	}
	return nil
}

// ApproveAll promotes every pending row to approved. The bulk action
// pushes nothing onto the undo log; reversing a bulk approve via N
// single undos would surprise more than it helps.
func (s *Session) ApproveAll() (int, error) {
	if !s.HasRecord() {
		return 0, ErrNoRecord
	}
	return s.board.ApproveAll(), nil
}

// Undo reverses the most recent disposition change, restoring the
// row's prior disposition and moving the cursor to that row. The
// returned row index is meaningful only when the second return is
// true; false means there was nothing to undo.
func (s *Session) Undo() (int, bool) {
	entry, ok := s.undo.Pop()
	if !ok {
		return 0, false
	}
	// The entry was pushed by a bounds-checked Set, so this cannot fail.
	s.board.Set(entry.Row, entry.Previous)
	s.selected = entry.Row
	s.field = 0
	return entry.Row, true
}

// EditCell records a correction for a field of the selected row.
// Editing back to the original value removes the correction instead of
// storing a no-op entry.
func (s *Session) EditCell(field string, corrected Value) error {
	row, ok := s.Row()
	if !ok {
		return ErrNoRecord
	}
	original, ok := row.Value(field)
	if !ok {
		return ErrUnknownField
	}
	s.corrections.Edit(s.selected, field, original, corrected)
	return nil
}

// ClearCorrections drops every recorded correction.
func (s *Session) ClearCorrections() {
	s.corrections.Clear()
}

// Outcome resolves the aggregate outcome for the loaded record.
func (s *Session) Outcome() Outcome {
	return ResolveOutcome(s.board, s.corrections)
}

// ActiveHighlight projects the current selection onto the source
// document: the field cursor's exact highlight when one exists,
// otherwise the row-level correlation.
func (s *Session) ActiveHighlight() (Highlight, bool) {
	row, ok := s.Row()
	if !ok {
		return Highlight{}, false
	}
	if h, ok := CorrelateField(s.source, s.SelectedField()); ok {
		return h, true
	}
	return Correlate(s.source, s.selected, row)
}

// CommitPayload packages the aggregate outcome, rejection reason,
// elapsed time and corrections for one commit request.
func (s *Session) CommitPayload(rejectionReason string) (CommitPayload, error) {
	if !s.HasRecord() {
		return CommitPayload{}, ErrNoRecord
	}
	outcome := s.Outcome()
	p := CommitPayload{
		Status:      outcome,
		DurationMS:  s.Elapsed().Milliseconds(),
		Corrections: s.corrections.Wire(),
	}
	if outcome == OutcomeRejected {
		p.RejectionReason = rejectionReason
	}
	return p, nil
}
