// Package state holds the bubbletea model of the desktop.
package state

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/retrodesk/internal/deskconfig"
	"github.com/cristianoliveira/retrodesk/internal/errors"
	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/cristianoliveira/retrodesk/internal/logging"
	"github.com/cristianoliveira/retrodesk/internal/storage"
	"github.com/cristianoliveira/retrodesk/internal/tui/mouse"
	"github.com/cristianoliveira/retrodesk/internal/tui/render"
	"github.com/cristianoliveira/retrodesk/internal/tui/screens"
	"github.com/cristianoliveira/retrodesk/internal/window"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// statusRows and dockRows frame the desktop area.
	statusRows = 1
	dockRows   = 1
	taskBuffer = 16
)

// Options configures a Model.
type Options struct {
	Settings deskconfig.Settings
	// Store persists layouts; nil disables saving.
	Store storage.LayoutStore
	// Theme defaults to render.DefaultTheme.
	Theme render.Theme
}

// Model represents the desktop for bubbletea.
type Model struct {
	settings deskconfig.Settings
	screen   screens.Screen
	host     *host.Host
	store    storage.LayoutStore
	keys     keyMap
	help     help.Model
	tracker  *mouse.Tracker
	theme    render.Theme
	log      logging.Logger

	width    int
	height   int
	showHelp bool

	errorHandler      *errors.TUIHandler
	statusMessage     string
	statusMessageType errors.MessageType
	hasStatusMessage  bool
	statusSeq         int

	tasks    chan func()
	done     chan struct{}
	quitting bool
}

// NewModel creates the desktop model and opens its first windows, restoring
// the saved layout when configured to.
func NewModel(opts Options) (*Model, error) {
	keys := defaultKeyMap()
	screen, err := screens.New(opts.Settings.Screen, screens.Options{
		ReplyMin: opts.Settings.ReplyMin,
		ReplyMax: opts.Settings.ReplyMax,
		Help:     keys.helpLines(),
	})
	if err != nil {
		return nil, err
	}

	theme := opts.Theme
	if theme == nil {
		theme = render.DefaultTheme()
	}

	m := &Model{
		settings: opts.Settings,
		screen:   screen,
		store:    opts.Store,
		keys:     keys,
		help:     plainHelp(),
		tracker:  mouse.NewTracker(opts.Settings.DoubleClick),
		theme:    theme,
		log:      logging.With("component", "tui", "screen", screen.Name()),
		width:    defaultWidth,
		height:   defaultHeight,
		tasks:    make(chan func(), taskBuffer),
		done:     make(chan struct{}),
	}
	m.host = host.New(
		host.WithOptions(opts.Settings.Host),
		host.WithDispatch(m.dispatch),
		host.WithRemoveHook(screen.Closed),
		host.WithLogger(logging.With("component", "host", "screen", screen.Name())),
	)
	screen.Attach(m.host)
	m.host.SetViewport(m.desktopSize())

	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.statusMessage = msg.Text
		m.statusMessageType = msg.Type
		m.hasStatusMessage = msg.Text != ""
		m.statusSeq++
	})

	restored := 0
	if opts.Settings.RestoreSession {
		restored, err = m.restoreSession()
		if err != nil {
			m.log.Warn("session restore incomplete", "error", err)
			m.errorHandler.Warning(fmt.Sprintf("Session restore incomplete: %v", err))
		}
	}
	if restored == 0 {
		m.openStartup()
	}
	return m, nil
}

func plainHelp() help.Model {
	h := help.New()
	plain := lipgloss.NewStyle()
	h.Styles = help.Styles{
		Ellipsis:       plain,
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}
	return h
}

func (m *Model) openStartup() {
	for _, id := range m.screen.Startup() {
		if _, _, err := m.host.Open(id, m.screen.Template); err != nil {
			m.log.Error("failed to open startup window", "id", id, "error", err)
		}
	}
}

// dispatch hands a fired task to the event loop. It gives up once the model
// has shut down.
func (m *Model) dispatch(fn func()) {
	select {
	case m.tasks <- fn:
	case <-m.done:
	}
}

// Init starts listening for fired window tasks.
func (m *Model) Init() tea.Cmd {
	return waitForTask(m.tasks, m.done)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.host.SetViewport(m.desktopSize())
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m, m.handleMouseMsg(msg)
	case tea.BlurMsg:
		m.host.PointerLeave()
		m.tracker.Reset()
		return m, nil
	case taskMsg:
		if msg.run != nil {
			msg.run()
		}
		return m, waitForTask(m.tasks, m.done)
	case sessionSavedMsg:
		m.errorHandler.Success(fmt.Sprintf("Saved %d windows for %s", msg.info.WindowCount, msg.info.Screen))
		return m, m.clearStatus()
	case sessionSaveFailedMsg:
		m.errorHandler.Error(fmt.Sprintf("Failed to save session: %v", msg.err))
		return m, m.clearStatus()
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.hasStatusMessage = false
		}
		return m, nil
	}
	return m, nil
}

// clearStatus schedules the current status message to disappear.
func (m *Model) clearStatus() tea.Cmd {
	return clearStatusAfter(m.settings.StatusClear, m.statusSeq)
}

func (m *Model) desktopSize() window.Size {
	return window.Size{Width: m.width, Height: max(m.height-statusRows-dockRows, 0)}
}

func (m *Model) dockRow() int {
	return m.height - dockRows
}

// open opens id or raises it when it is already open.
func (m *Model) open(id string) tea.Cmd {
	_, created, err := m.host.Open(id, m.screen.Template)
	if err != nil {
		m.errorHandler.Error(fmt.Sprintf("Failed to open %s: %v", id, err))
		return m.clearStatus()
	}
	if created {
		m.log.Debug("window opened from launcher", "id", id)
	}
	return nil
}

// quit saves the layout when configured to and stops pending tasks.
func (m *Model) quit() tea.Cmd {
	if m.settings.SaveOnExit && m.store != nil {
		if _, err := m.saveNow(); err != nil {
			m.log.Error("failed to save session on exit", "error", err)
		}
	}
	m.Shutdown()
	return tea.Quit
}

// Shutdown cancels pending window tasks. It is safe to call more than once.
func (m *Model) Shutdown() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.host.Shutdown()
	close(m.done)
}

// Host returns the window host of the current screen.
func (m *Model) Host() *host.Host {
	return m.host
}

// Screen returns the current screen.
func (m *Model) Screen() screens.Screen {
	return m.screen
}

// Status returns the status message currently shown.
func (m *Model) Status() (string, errors.MessageType, bool) {
	return m.statusMessage, m.statusMessageType, m.hasStatusMessage
}
