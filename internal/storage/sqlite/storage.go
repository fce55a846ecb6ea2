// Package sqlite provides a SQLite-backed session layout store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	// ErrSessionNotFound indicates that no session is saved for a screen.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidScreen indicates an empty screen name.
	ErrInvalidScreen = errors.New("invalid screen name")
)

// timeLayout has a fixed width so saved_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	screen       TEXT NOT NULL UNIQUE,
	saved_at     TEXT NOT NULL,
	window_count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS session_windows (
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	window_id  TEXT NOT NULL,
	title      TEXT NOT NULL,
	icon       TEXT NOT NULL DEFAULT '',
	x          INTEGER NOT NULL,
	y          INTEGER NOT NULL,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	mode       TEXT NOT NULL,
	z_index    INTEGER NOT NULL,
	PRIMARY KEY (session_id, position)
);
CREATE INDEX IF NOT EXISTS idx_sessions_saved_at ON sessions(saved_at);
`

// SessionInfo describes one saved session.
type SessionInfo struct {
	ID          string
	Screen      string
	SavedAt     time.Time
	WindowCount int
}

// Session is a saved session with its windows ordered back to front.
type Session struct {
	SessionInfo
	Windows []host.Snapshot
}

// SQLiteStorage stores one layout per screen.
type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStorage creates a SQLite-backed store at the provided path.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}
	// pragmas are per connection
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db, now: time.Now}
	if err := storage.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("sqlite storage: enable foreign keys: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}
	return nil
}

// SaveSession replaces the session saved for screen with snaps.
func (s *SQLiteStorage) SaveSession(ctx context.Context, screen string, snaps []host.Snapshot) (SessionInfo, error) {
	if strings.TrimSpace(screen) == "" {
		return SessionInfo{}, ErrInvalidScreen
	}
	info := SessionInfo{
		ID:          uuid.NewString(),
		Screen:      screen,
		SavedAt:     s.now().UTC(),
		WindowCount: len(snaps),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("sqlite storage: begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE screen = ?`, screen); err != nil {
		return SessionInfo{}, fmt.Errorf("sqlite storage: replace session: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, screen, saved_at, window_count) VALUES (?, ?, ?, ?)`,
		info.ID, info.Screen, info.SavedAt.Format(timeLayout), info.WindowCount,
	); err != nil {
		return SessionInfo{}, fmt.Errorf("sqlite storage: insert session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO session_windows
		(session_id, position, window_id, title, icon, x, y, width, height, mode, z_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("sqlite storage: prepare window insert: %w", err)
	}
	defer stmt.Close()
	for i, snap := range snaps {
		if _, err := stmt.ExecContext(ctx,
			info.ID, i, snap.ID, snap.Title, snap.Icon,
			snap.Position.X, snap.Position.Y, snap.Size.Width, snap.Size.Height,
			snap.Mode.String(), snap.ZIndex,
		); err != nil {
			return SessionInfo{}, fmt.Errorf("sqlite storage: insert window %q: %w", snap.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SessionInfo{}, fmt.Errorf("sqlite storage: commit save: %w", err)
	}
	return info, nil
}

// LoadSession returns the session saved for screen.
func (s *SQLiteStorage) LoadSession(ctx context.Context, screen string) (Session, error) {
	var (
		sess    Session
		savedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, screen, saved_at, window_count FROM sessions WHERE screen = ?`, screen,
	).Scan(&sess.ID, &sess.Screen, &savedAt, &sess.WindowCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, screen)
	}
	if err != nil {
		return Session{}, fmt.Errorf("sqlite storage: load session: %w", err)
	}
	if sess.SavedAt, err = time.Parse(timeLayout, savedAt); err != nil {
		return Session{}, fmt.Errorf("sqlite storage: parse saved_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT window_id, title, icon, x, y, width, height, mode, z_index
		FROM session_windows WHERE session_id = ? ORDER BY position`, sess.ID)
	if err != nil {
		return Session{}, fmt.Errorf("sqlite storage: load windows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pos  window.Point
			size window.Size
			out  host.Snapshot
			mode string
		)
		if err := rows.Scan(&out.ID, &out.Title, &out.Icon, &pos.X, &pos.Y, &size.Width, &size.Height, &mode, &out.ZIndex); err != nil {
			return Session{}, fmt.Errorf("sqlite storage: scan window: %w", err)
		}
		out.Position = pos
		out.Size = size
		if out.Mode, err = window.ParseMode(mode); err != nil {
			return Session{}, fmt.Errorf("sqlite storage: window %q: %w", out.ID, err)
		}
		sess.Windows = append(sess.Windows, out)
	}
	if err := rows.Err(); err != nil {
		return Session{}, fmt.Errorf("sqlite storage: iterate windows: %w", err)
	}
	return sess, nil
}

// ListSessions returns all saved sessions, most recent first.
func (s *SQLiteStorage) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, screen, saved_at, window_count FROM sessions ORDER BY saved_at DESC, screen`)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var (
			info    SessionInfo
			savedAt string
		)
		if err := rows.Scan(&info.ID, &info.Screen, &savedAt, &info.WindowCount); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan session: %w", err)
		}
		if info.SavedAt, err = time.Parse(timeLayout, savedAt); err != nil {
			return nil, fmt.Errorf("sqlite storage: parse saved_at: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeleteSession removes the session saved for screen.
func (s *SQLiteStorage) DeleteSession(ctx context.Context, screen string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE screen = ?`, screen)
	if err != nil {
		return fmt.Errorf("sqlite storage: delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: delete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, screen)
	}
	return nil
}

// ClearSessions removes every saved session and returns how many were removed.
func (s *SQLiteStorage) ClearSessions(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: clear sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: clear sessions: %w", err)
	}
	return int(n), nil
}
