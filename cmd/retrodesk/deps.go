package main

import (
	"context"
	"sync"

	"github.com/cristianoliveira/retrodesk/internal/config"
	apperrors "github.com/cristianoliveira/retrodesk/internal/errors"
	"github.com/cristianoliveira/retrodesk/internal/storage"
	"github.com/cristianoliveira/retrodesk/internal/tui/app"
	"github.com/cristianoliveira/retrodesk/internal/version"
)

// lazyStore opens the configured layout store on first use so commands that
// never touch sessions do not create the database.
type lazyStore struct {
	open  func() (storage.LayoutStore, error)
	once  sync.Once
	store storage.LayoutStore
	err   error
}

func (l *lazyStore) get() (storage.LayoutStore, error) {
	l.once.Do(func() {
		l.store, l.err = l.open()
	})
	return l.store, l.err
}

func (l *lazyStore) ListSessions(ctx context.Context) ([]storage.SessionInfo, error) {
	s, err := l.get()
	if err != nil {
		return nil, err
	}
	return s.ListSessions(ctx)
}

func (l *lazyStore) LoadSession(ctx context.Context, screen string) (storage.Session, error) {
	s, err := l.get()
	if err != nil {
		return storage.Session{}, err
	}
	return s.LoadSession(ctx, screen)
}

func (l *lazyStore) DeleteSession(ctx context.Context, screen string) error {
	s, err := l.get()
	if err != nil {
		return err
	}
	return s.DeleteSession(ctx, screen)
}

func (l *lazyStore) ClearSessions(ctx context.Context) (int, error) {
	s, err := l.get()
	if err != nil {
		return 0, err
	}
	return s.ClearSessions(ctx)
}

// Close closes the store if it was opened.
func (l *lazyStore) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// configAdapter exposes the loaded configuration to the config command.
type configAdapter struct{}

func (configAdapter) All() []config.Entry { return config.All() }
func (configAdapter) Path() string        { return config.Path() }

// versionAdapter reports the build version.
type versionAdapter struct{}

func (versionAdapter) Version() string { return version.String() }

var (
	sessionStore = &lazyStore{open: storage.NewFromConfig}
	tuiClient    = app.NewDefaultClient(nil, nil, nil)
	// notices prints command feedback to the terminal.
	notices apperrors.ErrorHandler = apperrors.NewDefaultCLIHandler()
)
