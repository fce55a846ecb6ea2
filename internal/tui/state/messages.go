package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/retrodesk/internal/storage"
)

// taskMsg carries a fired window task onto the event loop.
type taskMsg struct {
	run func()
}

// clearStatusMsg clears the status message it was scheduled for.
type clearStatusMsg struct {
	seq int
}

// sessionSavedMsg is sent when the layout is saved successfully.
type sessionSavedMsg struct {
	info storage.SessionInfo
}

// sessionSaveFailedMsg is sent when saving the layout fails.
type sessionSaveFailedMsg struct {
	err error
}

// waitForTask blocks until a fired task arrives or the model shuts down.
func waitForTask(tasks <-chan func(), done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-tasks:
			return taskMsg{run: fn}
		case <-done:
			return nil
		}
	}
}

func clearStatusAfter(d time.Duration, seq int) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
