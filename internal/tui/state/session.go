package state

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/cristianoliveira/retrodesk/internal/storage"
)

const storageTimeout = 5 * time.Second

// SaveSessionCmd returns a command that saves snaps for screen.
func SaveSessionCmd(store storage.LayoutStore, screen string, snaps []host.Snapshot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		info, err := store.SaveSession(ctx, screen, snaps)
		if err != nil {
			return sessionSaveFailedMsg{err: err}
		}
		return sessionSavedMsg{info: info}
	}
}

// saveCmd snapshots the layout on the event loop and saves it in the
// background.
func (m *Model) saveCmd() tea.Cmd {
	if m.store == nil {
		m.errorHandler.Warning("Session storage is disabled")
		return m.clearStatus()
	}
	return SaveSessionCmd(m.store, m.screen.Name(), m.host.Snapshot())
}

func (m *Model) saveNow() (storage.SessionInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return m.store.SaveSession(ctx, m.screen.Name(), m.host.Snapshot())
}

// restoreSession reopens the saved layout of the current screen. A screen
// with no saved session restores nothing.
func (m *Model) restoreSession() (int, error) {
	if m.store == nil {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	sess, err := m.store.LoadSession(ctx, m.screen.Name())
	if errors.Is(err, storage.ErrSessionNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := m.host.Restore(sess.Windows, m.screen.Template)
	m.log.Info("session restored", "windows", n, "saved", len(sess.Windows))
	return n, err
}
