package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/retrodesk/internal/colors"
	"github.com/cristianoliveira/retrodesk/internal/config"
	"github.com/cristianoliveira/retrodesk/internal/storage/sqlite"
)

const (
	// BackendSQLite selects SQLite-backed storage.
	BackendSQLite = "sqlite"
	// BackendMemory keeps sessions for the current process only.
	BackendMemory = "memory"
	// BackendNone disables session persistence.
	BackendNone = "none"

	dbFileName = "retrodesk.db"
)

// NewFromConfig creates a store based on the loaded configuration.
func NewFromConfig() (LayoutStore, error) {
	backend := config.Get("storage_backend", BackendSQLite)
	dbPath := config.Get("db_path", "")
	if dbPath == "" {
		stateDir := config.Get("state_dir", "")
		if stateDir == "" {
			return nil, fmt.Errorf("storage: state_dir not configured")
		}
		dbPath = filepath.Join(stateDir, dbFileName)
	}
	return NewForBackend(backend, dbPath)
}

// NewForBackend creates a store for the provided backend name. A SQLite store
// that cannot be opened falls back to memory so the desktop still starts.
func NewForBackend(backend, dbPath string) (LayoutStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		s, err := sqlite.NewSQLiteStorage(dbPath)
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, sessions will not persist: %v", err))
			return NewMemoryStore(), nil
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendNone:
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
