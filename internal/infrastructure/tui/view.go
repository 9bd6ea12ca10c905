package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/recheck-dev/recheck/internal/domain/review"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			PaddingLeft(1).
			PaddingRight(1)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1).
			PaddingRight(1)

	paneTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))

	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statusStyles = map[review.Disposition]lipgloss.Style{
		review.DispositionPending:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		review.DispositionApproved: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		review.DispositionFlagged:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		review.DispositionRejected: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

func gridStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	return s
}

// View renders the full session screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sess := m.svc.Session()

	if m.svc.Drained() {
		return m.drainedView()
	}
	if !sess.HasRecord() {
		if m.svc.Busy() {
			return "\n  " + m.spinner.View() + " loading review queue...\n"
		}
		return "\n  no record loaded\n" + m.footer()
	}

	var b strings.Builder
	b.WriteString(m.headerView(sess))
	b.WriteString("\n")
	b.WriteString(m.grid.View())
	b.WriteString("\n")
	b.WriteString(m.cellView(sess))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sourceView(sess), m.correctionsView(sess)))
	b.WriteString("\n")

	if m.mode != modeReview {
		b.WriteString(m.modalView())
		b.WriteString("\n")
	}

	b.WriteString(m.footer())
	return b.String()
}

func (m Model) headerView(sess *review.Session) string {
	meta := sess.Meta()
	rec := sess.Record()

	title := headerStyle.Render(fmt.Sprintf(" recheck — %s (%s) ", meta.Name, meta.Type))
	pos := fmt.Sprintf("record %d of %d pending", sess.Position(), sess.TotalPending())
	elapsed := sess.Elapsed().Truncate(1e9).String()

	parts := []string{title, pos, "id " + rec.ID, elapsed}
	if rec.Confidence != nil {
		parts = append(parts, fmt.Sprintf("confidence %.2f", *rec.Confidence))
	}
	if m.svc.Busy() {
		parts = append(parts, m.spinner.View())
	}
	return strings.Join(parts, "  ")
}

// cellView is the field inspector for the cell under the cursor.
func (m Model) cellView(sess *review.Session) string {
	field := sess.SelectedField()
	if field == "" {
		return ""
	}
	row, _ := sess.Row()
	v, _ := row.Value(field)

	line := fmt.Sprintf("cell %s = %q", field, v.String())
	for _, c := range sess.Corrections() {
		if c.Row == sess.SelectedRow() && c.Field == field {
			line += fmt.Sprintf("  corrected → %q", c.Corrected.String())
		}
	}
	if sess.Record().Uncertain(field) {
		line += noticeStyle.Render("  [uncertain]")
	}
	return line
}

// sourceView shows the captured source rendering with the active
// highlight. Missing content degrades to a placeholder; review
// proceeds by data inspection alone.
func (m Model) sourceView(sess *review.Session) string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("source"))
	b.WriteString("\n")

	src := sess.Source()
	if src == nil {
		b.WriteString(faintStyle.Render("source content unavailable"))
		return paneStyle.Width(m.paneWidth()).Render(b.String())
	}

	b.WriteString(fmt.Sprintf("%s  %s\n", src.SourceType, src.SourceURL))
	if h, ok := sess.ActiveHighlight(); ok {
		b.WriteString("highlight: " + noticeStyle.Render(h.Describe()) + "\n")
	} else {
		b.WriteString(faintStyle.Render("no highlight for selection") + "\n")
	}
	b.WriteString(excerpt(src))
	return paneStyle.Width(m.paneWidth()).Render(b.String())
}

func (m Model) correctionsView(sess *review.Session) string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("dispositions & corrections"))
	b.WriteString("\n")

	counts := sess.StatusCounts()
	for _, d := range []review.Disposition{
		review.DispositionPending,
		review.DispositionApproved,
		review.DispositionFlagged,
		review.DispositionRejected,
	} {
		if counts[d] > 0 {
			b.WriteString(statusStyles[d].Render(fmt.Sprintf("%s %d", d, counts[d])))
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("aggregate on save: %s\n", sess.Outcome()))

	if corrections := sess.Corrections(); len(corrections) > 0 {
		for _, c := range corrections {
			b.WriteString(fmt.Sprintf("row %d %s: %q → %q\n", c.Row, c.Field, c.Original.String(), c.Corrected.String()))
		}
	} else {
		b.WriteString(faintStyle.Render("no corrections"))
		b.WriteString("\n")
	}
	if sess.UndoDepth() > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("%d change(s) undoable", sess.UndoDepth())))
	}
	return paneStyle.Width(m.paneWidth()).Render(b.String())
}

func (m Model) modalView() string {
	switch m.mode {
	case modeReject:
		return paneStyle.Render("reject reason (enter to confirm, esc to cancel)\n" + m.input.View())
	case modeEdit:
		return paneStyle.Render(fmt.Sprintf("edit %s (enter to apply, esc to cancel)\n%s", m.editField, m.input.View()))
	}
	return ""
}

func (m Model) drainedView() string {
	s := m.svc.Summary()
	var b strings.Builder
	b.WriteString("\n  review queue drained — nothing left to review\n\n")
	b.WriteString(fmt.Sprintf("  committed %d record(s) in %s\n", s.Total, s.Elapsed.Truncate(1e9)))
	for outcome, n := range s.Outcomes {
		b.WriteString(fmt.Sprintf("    %-10s %d\n", outcome, n))
	}
	b.WriteString("\n  press q to exit\n")
	return b.String()
}

func (m Model) footer() string {
	var b strings.Builder
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) paneWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width/2 - 4
	if w < 30 {
		w = 30
	}
	return w
}

// excerpt returns the first few lines of the captured rendering.
func excerpt(src *review.SourceContent) string {
	text := src.RawData
	if text == "" {
		text = src.HTMLSnapshot
	}
	if text == "" {
		return faintStyle.Render("(empty capture)")
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 6 {
		lines = lines[:6]
		lines = append(lines, faintStyle.Render("..."))
	}
	return strings.Join(lines, "\n")
}
