// Package tui renders the interactive review session: the row grid,
// the source pane with the active highlight, correction and status
// panes, and the hotkey dispatcher feeding the session engine.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recheck-dev/recheck/internal/application"
	"github.com/recheck-dev/recheck/internal/domain/review"
)

// mode is the input mode of the session view. Any mode other than
// modeReview opens a text input, which suppresses the hotkey table.
type mode int

const (
	modeReview mode = iota
	modeReject
	modeEdit
)

// Model is the bubbletea model for one review session.
type Model struct {
	svc  *application.SessionService
	keys KeyMap

	grid    table.Model
	help    help.Model
	spinner spinner.Model
	input   textinput.Model

	mode      mode
	editField string

	notice string
	width  int
	height int

	quitting bool
}

// New builds the session model. The first queue step is issued from
// Init.
func New(svc *application.SessionService) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	ti := textinput.New()
	ti.CharLimit = 256

	grid := table.New(table.WithFocused(true), table.WithHeight(8))
	grid.SetStyles(gridStyles())

	return Model{
		svc:     svc,
		keys:    DefaultKeyMap(),
		grid:    grid,
		help:    help.New(),
		spinner: sp,
		input:   ti,
	}
}

// Init issues the initial forward load from the queue head.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd(), m.startLoad(review.DirectionForward))
}

// Summary exposes the session tallies for the exit report.
func (m Model) Summary() application.Summary {
	return m.svc.Summary()
}

// noticeFor maps engine errors onto operator-facing notices.
func noticeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, review.ErrQueueDrained):
		return "queue drained — nothing left to review"
	case errors.Is(err, review.ErrNothingToUndo):
		return "nothing to undo"
	case errors.Is(err, review.ErrNoRecord):
		return "no record loaded"
	case errors.Is(err, review.ErrBusy):
		return "waiting for the server..."
	default:
		return err.Error()
	}
}
