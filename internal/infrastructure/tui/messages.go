package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recheck-dev/recheck/internal/application"
	"github.com/recheck-dev/recheck/internal/domain/review"
)

// loadedMsg delivers a finished queue step to the update loop.
type loadedMsg struct {
	res application.LoadResult
}

// committedMsg delivers a finished commit to the update loop.
type committedMsg struct {
	ticket application.CommitTicket
	err    error
}

// tickMsg drives the elapsed-time display.
type tickMsg time.Time

// loadCmd performs the network half of a cursor step off-thread. The
// service method it calls touches no session state; the result is
// applied on the update goroutine where stale generations are dropped.
func loadCmd(svc *application.SessionService, t application.LoadTicket) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{res: svc.FetchStep(context.Background(), t)}
	}
}

// commitCmd performs the network half of a commit off-thread.
func commitCmd(svc *application.SessionService, t application.CommitTicket) tea.Cmd {
	return func() tea.Msg {
		return committedMsg{ticket: t, err: svc.PerformCommit(context.Background(), t)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startLoad opens a cursor step and returns the fetch command, or a
// notice when loading is not legal right now.
func (m *Model) startLoad(dir review.Direction) tea.Cmd {
	t, err := m.svc.StartLoad(dir)
	if err != nil {
		m.notice = noticeFor(err)
		return nil
	}
	return loadCmd(m.svc, t)
}
