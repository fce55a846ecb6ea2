package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/retrodesk/internal/colors"
	"github.com/cristianoliveira/retrodesk/internal/deskconfig"
	"github.com/cristianoliveira/retrodesk/internal/storage"
	"github.com/cristianoliveira/retrodesk/internal/tui/state"
)

// Model defines the narrow TUI model surface used by command wiring.
type Model interface {
	tea.Model
	Shutdown()
}

// Client defines dependencies needed by the run command.
type Client interface {
	LoadSettings() deskconfig.Settings
	OpenStore() (storage.LayoutStore, error)
	CreateModel(settings deskconfig.Settings, store storage.LayoutStore) (Model, error)
	RunProgram(model Model) error
}

// DefaultClient is the default adapter-based implementation used by CLI wiring.
type DefaultClient struct {
	programRunner  ProgramRunner
	settingsLoader SettingsLoader
	storeFactory   StoreFactory
}

// NewDefaultClient creates a default TUI client adapter.
// Nil arguments are replaced by their Default implementations.
func NewDefaultClient(programRunner ProgramRunner, settingsLoader SettingsLoader, storeFactory StoreFactory) *DefaultClient {
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	if settingsLoader == nil {
		settingsLoader = NewDefaultSettingsLoader()
	}
	if storeFactory == nil {
		storeFactory = NewDefaultStoreFactory()
	}
	return &DefaultClient{
		programRunner:  programRunner,
		settingsLoader: settingsLoader,
		storeFactory:   storeFactory,
	}
}

// LoadSettings loads settings using the injected SettingsLoader.
func (d *DefaultClient) LoadSettings() deskconfig.Settings {
	return d.settingsLoader.Load()
}

// OpenStore opens the layout store using the injected StoreFactory.
func (d *DefaultClient) OpenStore() (storage.LayoutStore, error) {
	return d.storeFactory.Open()
}

// CreateModel builds the desktop model.
func (d *DefaultClient) CreateModel(settings deskconfig.Settings, store storage.LayoutStore) (Model, error) {
	return state.NewModel(state.Options{Settings: settings, Store: store})
}

// RunProgram starts the bubbletea program and cancels pending window tasks
// once it exits.
func (d *DefaultClient) RunProgram(model Model) error {
	defer model.Shutdown()
	err := d.programRunner.Run(model)
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}
