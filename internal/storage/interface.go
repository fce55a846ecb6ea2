// Package storage persists desktop layouts so a screen can be reopened the
// way it was left.
package storage

import (
	"context"

	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/cristianoliveira/retrodesk/internal/storage/sqlite"
)

// SessionInfo describes one saved session.
type SessionInfo = sqlite.SessionInfo

// Session is a saved session with its windows ordered back to front.
type Session = sqlite.Session

var (
	// ErrSessionNotFound indicates that no session is saved for a screen.
	ErrSessionNotFound = sqlite.ErrSessionNotFound
	// ErrInvalidScreen indicates an empty screen name.
	ErrInvalidScreen = sqlite.ErrInvalidScreen
)

// LayoutStore saves at most one session per screen.
type LayoutStore interface {
	SaveSession(ctx context.Context, screen string, snaps []host.Snapshot) (SessionInfo, error)
	LoadSession(ctx context.Context, screen string) (Session, error)
	ListSessions(ctx context.Context) ([]SessionInfo, error)
	DeleteSession(ctx context.Context, screen string) error
	ClearSessions(ctx context.Context) (int, error)
	Close() error
}

var (
	_ LayoutStore = (*sqlite.SQLiteStorage)(nil)
	_ LayoutStore = (*MemoryStore)(nil)
	_ LayoutStore = Discard{}
)
