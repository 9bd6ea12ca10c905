package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recheck-dev/recheck/internal/domain/review"
)

// Update is the single event loop: every store mutation runs here to
// completion before the next event, so the engine never interleaves
// two keyboard events or two disposition changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		// Re-render so the elapsed clock advances.
		return m, tickCmd()

	case loadedMsg:
		if err := m.svc.ApplyLoad(msg.res); err != nil {
			m.notice = "load failed: " + noticeFor(err)
			return m, nil
		}
		m.notice = ""
		m.rebuildGrid()
		return m, nil

	case committedMsg:
		if err := m.svc.ApplyCommit(msg.ticket, msg.err); err != nil {
			// Local state is untouched; the operator can retry.
			m.notice = "commit failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = fmt.Sprintf("committed %s as %s", msg.ticket.RecordID, msg.ticket.Payload.Status)
		cmd := m.startLoad(review.DirectionForward)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

// handleKeyMsg routes keys: an open modal captures everything so the
// hotkey table never fires while a text input has focus.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeReject:
		return m.handleRejectKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	}
	return m.handleGlobalKey(msg)
}

// handleRejectKey drives the rejection-reason modal.
func (m Model) handleRejectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.mode = modeReview
		m.input.Blur()
		return m, nil
	case "enter":
		reason := m.input.Value()
		m.mode = modeReview
		m.input.Blur()
		if err := m.svc.Reject(reason); err != nil {
			m.notice = noticeFor(err)
			return m, nil
		}
		m.syncGrid()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// handleEditKey drives the cell-editor modal.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.mode = modeReview
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		field := m.editField
		m.mode = modeReview
		m.input.Blur()
		if err := m.svc.EditCell(field, value); err != nil {
			m.notice = noticeFor(err)
			return m, nil
		}
		m.notice = ""
		m.syncGrid()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// handleGlobalKey dispatches the session hotkey table.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.svc.Busy() {
		m.notice = "waiting for the server..."
		return m, nil
	}
	if m.svc.Drained() {
		return m, nil
	}

	sess := m.svc.Session()
	if !sess.HasRecord() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		sess.PrevRow()
		m.syncGrid()

	case key.Matches(msg, m.keys.Down):
		sess.NextRow()
		m.syncGrid()

	case key.Matches(msg, m.keys.Left):
		sess.PrevField()

	case key.Matches(msg, m.keys.Right):
		sess.NextField()

	case key.Matches(msg, m.keys.Approve):
		if err := m.svc.Approve(); err != nil {
			m.notice = noticeFor(err)
			break
		}
		m.notice = ""
		m.syncGrid()

	case key.Matches(msg, m.keys.ApproveAll):
		changed, err := m.svc.ApproveAll()
		if err != nil {
			m.notice = noticeFor(err)
			break
		}
		m.notice = fmt.Sprintf("approved %d pending rows (not undoable)", changed)
		m.syncGrid()

	case key.Matches(msg, m.keys.Flag):
		if err := m.svc.Flag(); err != nil {
			m.notice = noticeFor(err)
			break
		}
		m.notice = ""
		m.syncGrid()

	case key.Matches(msg, m.keys.Reject):
		m.mode = modeReject
		m.input = textinput.New()
		m.input.Placeholder = "rejection reason"
		m.input.CharLimit = 256
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		field := sess.SelectedField()
		if field == "" {
			m.notice = "no field selected"
			break
		}
		m.mode = modeEdit
		m.editField = field
		m.input = textinput.New()
		m.input.CharLimit = 256
		m.input.SetValue(m.currentCellValue(field))
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Undo):
		if _, ok := m.svc.Undo(); !ok {
			m.notice = "nothing to undo"
			break
		}
		m.notice = ""
		m.syncGrid()

	case key.Matches(msg, m.keys.ClearEdits):
		if err := m.svc.ClearCorrections(); err != nil {
			m.notice = noticeFor(err)
			break
		}
		m.notice = "corrections cleared"
		m.syncGrid()

	case key.Matches(msg, m.keys.Save):
		ticket, err := m.svc.StartCommit()
		if err != nil {
			m.notice = noticeFor(err)
			break
		}
		m.notice = "committing..."
		return m, commitCmd(m.svc, ticket)

	case key.Matches(msg, m.keys.Back):
		cmd := m.startLoad(review.DirectionBackward)
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// currentCellValue seeds the editor with the corrected value when one
// exists, otherwise the original.
func (m Model) currentCellValue(field string) string {
	sess := m.svc.Session()
	for _, c := range sess.Corrections() {
		if c.Row == sess.SelectedRow() && c.Field == field {
			return c.Corrected.String()
		}
	}
	row, ok := sess.Row()
	if !ok {
		return ""
	}
	v, _ := row.Value(field)
	return v.String()
}

// rebuildGrid rebuilds columns and rows after a record transition.
func (m *Model) rebuildGrid() {
	sess := m.svc.Session()
	rec := sess.Record()
	if rec == nil {
		m.grid.SetRows(nil)
		return
	}

	fields := gridFields(rec)
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "status", Width: 9},
	}
	for _, f := range fields {
		w := len(f)
		if w < 12 {
			w = 12
		}
		if w > 24 {
			w = 24
		}
		columns = append(columns, table.Column{Title: f, Width: w})
	}
	m.grid.SetColumns(columns)
	m.syncGrid()
}

// syncGrid refreshes row contents and the cursor from session state.
func (m *Model) syncGrid() {
	sess := m.svc.Session()
	rec := sess.Record()
	if rec == nil {
		m.grid.SetRows(nil)
		return
	}

	fields := gridFields(rec)
	rows := make([]table.Row, 0, len(rec.Rows))
	for i, r := range rec.Rows {
		cells := []string{fmt.Sprintf("%d", i), string(sess.StatusOf(i))}
		for _, f := range fields {
			cells = append(cells, cellText(sess, i, r, f))
		}
		rows = append(rows, cells)
	}
	m.grid.SetRows(rows)
	m.grid.SetCursor(sess.SelectedRow())
}

// cellText renders one cell, marking corrected values.
func cellText(sess *review.Session, rowIdx int, row review.Row, field string) string {
	v, ok := row.Value(field)
	if !ok {
		return "-"
	}
	for _, c := range sess.Corrections() {
		if c.Row == rowIdx && c.Field == field {
			return c.Corrected.String() + "*"
		}
	}
	return v.String()
}

// gridFields returns the display fields: the first row's order plus
// any stragglers later rows introduce.
func gridFields(rec *review.Record) []string {
	if len(rec.Rows) == 0 {
		return nil
	}
	fields := append([]string(nil), rec.Rows[0].Fields...)
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		seen[f] = true
	}
	for _, r := range rec.Rows[1:] {
		for _, f := range r.Fields {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	return fields
}
