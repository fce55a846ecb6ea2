package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/retrodesk/internal/config"
	"github.com/cristianoliveira/retrodesk/internal/storage/sqlite"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T, env map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("RETRODESK_STATE_DIR", filepath.Join(dir, "state"))
	for k, v := range env {
		t.Setenv(k, v)
	}
	config.Load()
	return dir
}

func TestNewFromConfigSelectsSQLiteByDefault(t *testing.T) {
	dir := loadConfig(t, nil)

	store, err := NewFromConfig()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	require.IsType(t, &sqlite.SQLiteStorage{}, store)

	_, err = os.Stat(filepath.Join(dir, "state", "retrodesk.db"))
	require.NoError(t, err)
}

func TestNewFromConfigHonorsDBPath(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom", "layouts.db")
	loadConfig(t, map[string]string{"RETRODESK_DB_PATH": custom})

	store, err := NewFromConfig()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	_, err = os.Stat(custom)
	require.NoError(t, err)
}

func TestNewFromConfigSelectsMemoryAndNone(t *testing.T) {
	loadConfig(t, map[string]string{"RETRODESK_STORAGE_BACKEND": "memory"})
	store, err := NewFromConfig()
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, store)

	loadConfig(t, map[string]string{"RETRODESK_STORAGE_BACKEND": "none"})
	store, err = NewFromConfig()
	require.NoError(t, err)
	require.IsType(t, Discard{}, store)
}

func TestNewForBackendUnknown(t *testing.T) {
	_, err := NewForBackend("postgres", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
}

func TestNewForBackendFallsBackToMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	store, err := NewForBackend(BackendSQLite, filepath.Join(blocker, "retrodesk.db"))
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, store)
}
