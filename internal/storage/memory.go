package storage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/google/uuid"
)

// MemoryStore keeps sessions in memory for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session), now: time.Now}
}

func (m *MemoryStore) SaveSession(ctx context.Context, screen string, snaps []host.Snapshot) (SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return SessionInfo{}, err
	}
	if strings.TrimSpace(screen) == "" {
		return SessionInfo{}, ErrInvalidScreen
	}
	info := SessionInfo{
		ID:          uuid.NewString(),
		Screen:      screen,
		SavedAt:     m.now().UTC(),
		WindowCount: len(snaps),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[screen] = Session{SessionInfo: info, Windows: slices.Clone(snaps)}
	return info, nil
}

func (m *MemoryStore) LoadSession(ctx context.Context, screen string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[screen]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, screen)
	}
	sess.Windows = slices.Clone(sess.Windows)
	return sess, nil
}

func (m *MemoryStore) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SessionInfo, 0, len(m.sessions))
	for _, sess := range m.sessions {
		out = append(out, sess.SessionInfo)
	}
	slices.SortFunc(out, func(a, b SessionInfo) int {
		if c := b.SavedAt.Compare(a.SavedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Screen, b.Screen)
	})
	return out, nil
}

func (m *MemoryStore) DeleteSession(ctx context.Context, screen string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[screen]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, screen)
	}
	delete(m.sessions, screen)
	return nil
}

func (m *MemoryStore) ClearSessions(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.sessions)
	clear(m.sessions)
	return n, nil
}

func (m *MemoryStore) Close() error { return nil }

// Discard is a store that saves nothing. It backs storage_backend = "none".
type Discard struct{}

func (Discard) SaveSession(_ context.Context, screen string, snaps []host.Snapshot) (SessionInfo, error) {
	return SessionInfo{Screen: screen, WindowCount: len(snaps)}, nil
}

func (Discard) LoadSession(_ context.Context, screen string) (Session, error) {
	return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, screen)
}

func (Discard) ListSessions(context.Context) ([]SessionInfo, error) { return nil, nil }

func (Discard) DeleteSession(_ context.Context, screen string) error {
	return fmt.Errorf("%w: %s", ErrSessionNotFound, screen)
}

func (Discard) ClearSessions(context.Context) (int, error) { return 0, nil }

func (Discard) Close() error { return nil }
