package review

import "testing"

func threeRowRecord() *Record {
	rows := make([]Row, 3)
	for i := range rows {
		rows[i] = NewRow(map[string]Value{
			"name":  StringValue("item"),
			"price": StringValue("10"),
		})
	}
	return &Record{ID: "rec-1", Rows: rows}
}

func loadedSession(t *testing.T, rec *Record) *Session {
	t.Helper()
	s := NewSession()
	s.Reset(rec, SourceMeta{Name: "shop", Type: "html"}, nil, 1, 5)
	return s
}

func TestSession_ResetState(t *testing.T) {
	s := loadedSession(t, threeRowRecord())

	if !s.HasRecord() {
		t.Fatal("expected record loaded")
	}
	if s.SelectedRow() != 0 {
		t.Errorf("expected cursor on row 0, got %d", s.SelectedRow())
	}
	for i := 0; i < 3; i++ {
		if s.StatusOf(i) != DispositionPending {
			t.Errorf("row %d: expected pending after reset", i)
		}
	}
	if s.CorrectionCount() != 0 || s.UndoDepth() != 0 {
		t.Error("expected clean correction and undo state after reset")
	}
}

func TestSession_DisposeSweep(t *testing.T) {
	s := loadedSession(t, threeRowRecord())

	if err := s.Dispose(DispositionApproved); err != nil {
		t.Fatal(err)
	}
	if s.SelectedRow() != 1 {
		t.Errorf("expected cursor advance to 1, got %d", s.SelectedRow())
	}

	s.Dispose(DispositionApproved)
	s.Dispose(DispositionApproved)
	// Cursor parks on the last row; repeated disposals never wrap.
	if s.SelectedRow() != 2 {
		t.Errorf("expected cursor parked on last row, got %d", s.SelectedRow())
	}
	s.Dispose(DispositionFlagged)
	if s.SelectedRow() != 2 {
		t.Errorf("cursor moved past last row: %d", s.SelectedRow())
	}
}

func TestSession_SelectionBounds(t *testing.T) {
	s := loadedSession(t, threeRowRecord())

	s.PrevRow()
	if s.SelectedRow() != 0 {
		t.Error("PrevRow moved above row 0")
	}
	s.NextRow()
	s.NextRow()
	s.NextRow()
	s.NextRow()
	if s.SelectedRow() != 2 {
		t.Errorf("NextRow moved past last row: %d", s.SelectedRow())
	}

	if err := s.SelectRow(5); err == nil {
		t.Error("expected error selecting out-of-range row")
	}
	if err := s.SelectRow(1); err != nil {
		t.Fatal(err)
	}
	if s.SelectedRow() != 1 {
		t.Errorf("expected row 1 selected, got %d", s.SelectedRow())
	}
}

func TestSession_UndoExactness(t *testing.T) {
	s := loadedSession(t, threeRowRecord())

	// N disposition changes, then N undos, returns every row to
	// pending with an empty undo log.
	s.Dispose(DispositionApproved)
	s.Dispose(DispositionFlagged)
	s.Dispose(DispositionRejected)
	s.SetStatus(0, DispositionRejected)

	for i := 0; i < 4; i++ {
		if _, ok := s.Undo(); !ok {
			t.Fatalf("undo %d failed unexpectedly", i)
		}
	}
	for i := 0; i < 3; i++ {
		if s.StatusOf(i) != DispositionPending {
			t.Errorf("row %d: expected pending after full undo, got %s", i, s.StatusOf(i))
		}
	}
	if s.UndoDepth() != 0 {
		t.Errorf("expected empty undo log, depth %d", s.UndoDepth())
	}

	// The (N+1)th undo is a no-op, never an error.
	if _, ok := s.Undo(); ok {
		t.Error("expected no-op undo on empty log")
	}
}

func TestSession_UndoRepositionsCursor(t *testing.T) {
	s := loadedSession(t, threeRowRecord())

	s.Dispose(DispositionApproved) // row 0, cursor -> 1
	s.Dispose(DispositionFlagged)  // row 1, cursor -> 2

	row, ok := s.Undo()
	if !ok || row != 1 {
		t.Fatalf("expected undo of row 1, got %d ok=%v", row, ok)
	}
	if s.SelectedRow() != 1 {
		t.Errorf("expected cursor back on row 1, got %d", s.SelectedRow())
	}
	if s.StatusOf(1) != DispositionPending {
		t.Errorf("expected row 1 restored to pending, got %s", s.StatusOf(1))
	}
}

func TestSession_ApproveAllNotUndoable(t *testing.T) {
	s := loadedSession(t, threeRowRecord())
	s.Dispose(DispositionFlagged) // row 0; one undoable change

	changed, err := s.ApproveAll()
	if err != nil {
		t.Fatal(err)
	}
	if changed != 2 {
		t.Errorf("expected 2 rows approved, got %d", changed)
	}
	if s.StatusOf(0) != DispositionFlagged {
		t.Error("approveAll must not override the flagged row")
	}
	// Only the individual flag is on the undo log.
	if s.UndoDepth() != 1 {
		t.Errorf("expected undo depth 1 after bulk approve, got %d", s.UndoDepth())
	}
}

func TestSession_ReviewSweepScenario(t *testing.T) {
	// 3-row record, all pending. Approve row 0, flag row 1, edit a
	// field on row 2 and revert it. Aggregate must be on_hold.
	s := loadedSession(t, threeRowRecord())

	s.Dispose(DispositionApproved)
	s.Dispose(DispositionFlagged)

	if s.SelectedRow() != 2 {
		t.Fatalf("expected cursor on row 2, got %d", s.SelectedRow())
	}
	s.EditCell("price", StringValue("12"))
	s.EditCell("price", StringValue("10"))

	want := []Disposition{DispositionApproved, DispositionFlagged, DispositionPending}
	for i, w := range want {
		if got := s.StatusOf(i); got != w {
			t.Errorf("row %d: expected %s, got %s", i, w, got)
		}
	}
	if s.CorrectionCount() != 0 {
		t.Errorf("expected zero corrections after revert, got %d", s.CorrectionCount())
	}
	if got := s.Outcome(); got != OutcomeOnHold {
		t.Errorf("expected on_hold aggregate, got %s", got)
	}
}

func TestSession_CorrectionOutranksApproval(t *testing.T) {
	// Single-row record: edit price 10 -> 12, then approve the row.
	// The aggregate is corrected, not approved.
	rec := &Record{ID: "rec-2", Rows: []Row{NewRow(map[string]Value{"price": StringValue("10")})}}
	s := loadedSession(t, rec)

	if err := s.EditCell("price", StringValue("12")); err != nil {
		t.Fatal(err)
	}
	s.Dispose(DispositionApproved)

	if got := s.Outcome(); got != OutcomeCorrected {
		t.Errorf("expected corrected aggregate, got %s", got)
	}
}

func TestSession_CommitPayload(t *testing.T) {
	s := loadedSession(t, threeRowRecord())
	s.Dispose(DispositionRejected)

	p, err := s.CommitPayload("bad extraction")
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != OutcomeRejected {
		t.Errorf("expected rejected status, got %s", p.Status)
	}
	if p.RejectionReason != "bad extraction" {
		t.Errorf("expected reason on reject, got %q", p.RejectionReason)
	}
	if p.DurationMS < 0 {
		t.Errorf("negative duration %d", p.DurationMS)
	}

	// The reason is dropped for non-rejected outcomes.
	s2 := loadedSession(t, threeRowRecord())
	s2.ApproveAll()
	p2, err := s2.CommitPayload("stale reason")
	if err != nil {
		t.Fatal(err)
	}
	if p2.Status != OutcomeApproved || p2.RejectionReason != "" {
		t.Errorf("expected approved with no reason, got %s %q", p2.Status, p2.RejectionReason)
	}
}

func TestSession_EditCellErrors(t *testing.T) {
	s := NewSession()
	if err := s.EditCell("price", StringValue("12")); err != ErrNoRecord {
		t.Errorf("expected ErrNoRecord, got %v", err)
	}

	s = loadedSession(t, threeRowRecord())
	if err := s.EditCell("missing", StringValue("12")); err != ErrUnknownField {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestSession_FieldCursor(t *testing.T) {
	s := loadedSession(t, threeRowRecord())

	// Fields are sorted: name, price.
	if got := s.SelectedField(); got != "name" {
		t.Errorf("expected name, got %s", got)
	}
	s.NextField()
	if got := s.SelectedField(); got != "price" {
		t.Errorf("expected price, got %s", got)
	}
	s.NextField()
	if got := s.SelectedField(); got != "price" {
		t.Errorf("field cursor moved past last field: %s", got)
	}
	// Changing rows resets the field cursor.
	s.NextRow()
	if got := s.SelectedField(); got != "name" {
		t.Errorf("expected field cursor reset on row change, got %s", got)
	}
}

func TestSession_Drain(t *testing.T) {
	s := loadedSession(t, threeRowRecord())
	s.Drain()

	if s.HasRecord() {
		t.Error("expected no record after drain")
	}
	if s.HasNext() {
		t.Error("expected HasNext false after drain")
	}
	if _, err := s.CommitPayload(""); err != ErrNoRecord {
		t.Errorf("expected ErrNoRecord after drain, got %v", err)
	}
}

func TestSession_ActiveHighlight(t *testing.T) {
	rec := threeRowRecord()
	src := &SourceContent{
		SourceType: "html",
		Highlights: []Highlight{
			{Field: "name", Selector: "h1"},
			{Field: "price", Selector: "span.price"},
		},
	}
	s := NewSession()
	s.Reset(rec, SourceMeta{}, src, 1, 1)

	// Field cursor on "name" matches its exact highlight.
	h, ok := s.ActiveHighlight()
	if !ok || h.Selector != "h1" {
		t.Errorf("expected h1 highlight, got %+v ok=%v", h, ok)
	}

	s.NextField() // price
	h, ok = s.ActiveHighlight()
	if !ok || h.Selector != "span.price" {
		t.Errorf("expected price highlight, got %+v ok=%v", h, ok)
	}

	// Without source content there is never a highlight.
	s.AttachSource(nil)
	if _, ok := s.ActiveHighlight(); ok {
		t.Error("expected no highlight without source content")
	}
}
