package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/retrodesk/internal/config"
	"github.com/cristianoliveira/retrodesk/internal/deskconfig"
	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/cristianoliveira/retrodesk/internal/storage"
	"github.com/cristianoliveira/retrodesk/internal/tui/app"
	"github.com/cristianoliveira/retrodesk/internal/tui/screens"
	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetIn(strings.NewReader(""))
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func assertPanicsWithNilClient(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		msg, ok := r.(string)
		require.True(t, ok)
		assert.Contains(t, msg, "client dependency cannot be nil")
	}()
	fn()
}

func TestConstructorsPanicWithoutClient(t *testing.T) {
	assertPanicsWithNilClient(t, func() { NewRunCmd(nil) })
	assertPanicsWithNilClient(t, func() { NewSessionsCmd(nil) })
	assertPanicsWithNilClient(t, func() { NewConfigCmd(nil) })
	assertPanicsWithNilClient(t, func() { NewVersionCmd(nil) })
}

type fakeVersionClient struct{}

func (fakeVersionClient) Version() string { return "1.2.3" }

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, NewVersionCmd(fakeVersionClient{}))
	require.NoError(t, err)
	assert.Equal(t, "retrodesk version 1.2.3\n", out)
}

type fakeRunClient struct {
	settings    deskconfig.Settings
	storeErr    error
	store       storage.LayoutStore
	gotSettings deskconfig.Settings
	gotStore    storage.LayoutStore
	ran         bool
	createErr   error
}

type fakeModel struct{ tea.Model }

func (fakeModel) Shutdown() {}

func (f *fakeRunClient) LoadSettings() deskconfig.Settings { return f.settings }

func (f *fakeRunClient) OpenStore() (storage.LayoutStore, error) { return f.store, f.storeErr }

func (f *fakeRunClient) CreateModel(s deskconfig.Settings, store storage.LayoutStore) (app.Model, error) {
	f.gotSettings, f.gotStore = s, store
	if f.createErr != nil {
		return nil, f.createErr
	}
	return fakeModel{}, nil
}

func (f *fakeRunClient) RunProgram(app.Model) error {
	f.ran = true
	return nil
}

func withTerminal(t *testing.T, ok bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return ok }
	t.Cleanup(func() { isTerminal = orig })
}

func TestRunCmdAppliesFlags(t *testing.T) {
	withTerminal(t, true)
	store := storage.NewMemoryStore()
	client := &fakeRunClient{
		settings: deskconfig.Settings{Host: host.DefaultOptions(), Screen: "chat", SaveOnExit: true},
		store:    store,
	}

	_, err := execute(t, NewRunCmd(client), "--screen", " Desktop ", "--restore", "--no-save")
	require.NoError(t, err)
	assert.True(t, client.ran)
	assert.Equal(t, "desktop", client.gotSettings.Screen)
	assert.True(t, client.gotSettings.RestoreSession)
	assert.False(t, client.gotSettings.SaveOnExit)
	assert.Same(t, store, client.gotStore)
}

func TestRunCmdKeepsConfiguredScreen(t *testing.T) {
	withTerminal(t, true)
	client := &fakeRunClient{settings: deskconfig.Settings{Screen: "profile", SaveOnExit: true}, store: storage.Discard{}}

	_, err := execute(t, NewRunCmd(client))
	require.NoError(t, err)
	assert.Equal(t, "profile", client.gotSettings.Screen)
	assert.True(t, client.gotSettings.SaveOnExit)
}

func TestRunCmdRequiresTerminal(t *testing.T) {
	withTerminal(t, false)
	client := &fakeRunClient{}

	_, err := execute(t, NewRunCmd(client))
	assert.ErrorIs(t, err, errNotTerminal)
	assert.False(t, client.ran)
}

func TestRunCmdStoreFailureDisablesSaving(t *testing.T) {
	withTerminal(t, true)
	client := &fakeRunClient{settings: deskconfig.Settings{Screen: "chat"}, storeErr: errors.New("read-only")}

	_, err := execute(t, NewRunCmd(client))
	require.NoError(t, err)
	assert.True(t, client.ran)
	assert.Nil(t, client.gotStore)
}

func TestRunCmdUnknownScreen(t *testing.T) {
	withTerminal(t, true)
	client := &fakeRunClient{
		settings:  deskconfig.Settings{Screen: "chat"},
		createErr: screens.ErrUnknownScreen,
	}

	_, err := execute(t, NewRunCmd(client), "-s", "winamp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown screen "winamp"`)
	assert.Contains(t, err.Error(), "chat, desktop, profile")
	assert.False(t, client.ran)
}

func savedStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	_, err := store.SaveSession(context.Background(), "chat", []host.Snapshot{
		{ID: "contacts", Title: "MSN Messenger - Contacts", Position: window.Point{X: 1}, Size: window.Size{Width: 30, Height: 16}, ZIndex: 1000},
		{ID: "chat-joao", Title: "Chat with João Silva", Position: window.Point{X: 5, Y: 3}, Size: window.Size{Width: 46, Height: 14}, Mode: window.ModeMaximized, ZIndex: 1001},
	})
	require.NoError(t, err)
	_, err = store.SaveSession(context.Background(), "desktop", []host.Snapshot{{ID: "notepad", Title: "Notepad", Size: window.Size{Width: 40, Height: 10}}})
	require.NoError(t, err)
	return store
}

func TestSessionsList(t *testing.T) {
	out, err := execute(t, NewSessionsCmd(savedStore(t)), "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "SCREEN"))
	assert.Contains(t, out, "chat        2        ")
	assert.Contains(t, out, "desktop     1        ")
	assert.Contains(t, out, "now")
}

func TestSessionsListEmpty(t *testing.T) {
	out, err := execute(t, NewSessionsCmd(storage.NewMemoryStore()), "list")
	require.NoError(t, err)
	assert.Equal(t, "No saved layouts\n", out)
}

func TestSessionsShow(t *testing.T) {
	out, err := execute(t, NewSessionsCmd(savedStore(t)), "show", "CHAT")
	require.NoError(t, err)

	assert.Contains(t, out, "chat: 2 windows saved")
	assert.Contains(t, out, "chat-joao")
	assert.Contains(t, out, "at 5,3  46x14  maximized")
}

func TestSessionsShowMissing(t *testing.T) {
	out, err := execute(t, NewSessionsCmd(storage.NewMemoryStore()), "show", "profile")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSessionsClearOneScreen(t *testing.T) {
	store := savedStore(t)
	_, err := execute(t, NewSessionsCmd(store), "clear", "chat", "--force")
	require.NoError(t, err)

	_, err = store.LoadSession(context.Background(), "chat")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
	_, err = store.LoadSession(context.Background(), "desktop")
	assert.NoError(t, err)
}

func TestSessionsClearAll(t *testing.T) {
	store := savedStore(t)
	_, err := execute(t, NewSessionsCmd(store), "clear", "--force")
	require.NoError(t, err)

	infos, err := store.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestSessionsClearCancelledWithoutConfirmation(t *testing.T) {
	t.Setenv("CI", "")
	store := savedStore(t)
	out, err := execute(t, NewSessionsCmd(store), "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "delete all saved layouts? (y/N)")

	infos, err := store.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}

func TestConfirmClear(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirmClear(strings.NewReader("yes\n"), &out, "chat"))
	assert.Contains(t, out.String(), "the layout saved for chat")
	assert.False(t, confirmClear(strings.NewReader("n\n"), &out, ""))
	assert.False(t, confirmClear(strings.NewReader(""), &out, ""))
}

type fakeSessionsClient struct{ err error }

func (f fakeSessionsClient) ListSessions(context.Context) ([]storage.SessionInfo, error) {
	return nil, f.err
}

func (f fakeSessionsClient) LoadSession(context.Context, string) (storage.Session, error) {
	return storage.Session{}, f.err
}
func (f fakeSessionsClient) DeleteSession(context.Context, string) error { return f.err }
func (f fakeSessionsClient) ClearSessions(context.Context) (int, error) { return 0, f.err }

func TestSessionsPropagateStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	for _, args := range [][]string{{"list"}, {"show", "chat"}, {"clear", "--force"}, {"clear", "chat", "--force"}} {
		_, err := execute(t, NewSessionsCmd(fakeSessionsClient{err: boom}), args...)
		assert.ErrorIs(t, err, boom, "args %v", args)
	}
}

func TestLazyStoreOpensOnce(t *testing.T) {
	opened := 0
	l := &lazyStore{open: func() (storage.LayoutStore, error) {
		opened++
		return storage.NewMemoryStore(), nil
	}}
	require.NoError(t, l.Close())
	assert.Equal(t, 0, opened)

	_, err := l.ListSessions(context.Background())
	require.NoError(t, err)
	_, err = l.ClearSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, opened)
	assert.NoError(t, l.Close())

	failing := &lazyStore{open: func() (storage.LayoutStore, error) { return nil, errors.New("nope") }}
	_, err = failing.LoadSession(context.Background(), "chat")
	assert.Error(t, err)
	assert.Error(t, failing.DeleteSession(context.Background(), "chat"))
}

type fakeConfigClient struct {
	entries []config.Entry
	path    string
}

func (f fakeConfigClient) All() []config.Entry { return f.entries }
func (f fakeConfigClient) Path() string        { return f.path }

func TestConfigShow(t *testing.T) {
	client := fakeConfigClient{entries: []config.Entry{
		{Key: "default_screen", Value: "chat", Default: true},
		{Key: "window_width", Value: "60"},
	}}

	out, err := execute(t, NewConfigCmd(client), "show")
	require.NoError(t, err)
	assert.Equal(t, "default_screen = \"chat\"\nwindow_width = \"60\"  # set\n", out)

	out, err = execute(t, NewConfigCmd(client), "show", "--changed")
	require.NoError(t, err)
	assert.Equal(t, "window_width = \"60\"  # set\n", out)
}

func TestConfigPath(t *testing.T) {
	out, err := execute(t, NewConfigCmd(fakeConfigClient{path: "/tmp/retrodesk.toml"}), "path")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/retrodesk.toml\n", out)

	_, err = execute(t, NewConfigCmd(fakeConfigClient{}), "path")
	assert.Error(t, err)
}

func TestRunReportsExitCode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	assert.Equal(t, 0, run([]string{"version"}, func() error { return nil }))
	assert.Equal(t, 1, run([]string{"version"}, func() error { return errors.New("boom") }))
}
