// Package app provides TUI application adapters for command wiring.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/retrodesk/internal/deskconfig"
	"github.com/cristianoliveira/retrodesk/internal/storage"
)

// ProgramRunner defines the interface for running a bubbletea program.
// This abstraction allows for easier testing and swapping of implementations.
type ProgramRunner interface {
	// Run starts the bubbletea program with the given model.
	Run(model tea.Model) error
}

// DefaultProgramRunner is the default implementation of ProgramRunner
// that wraps tea.NewProgram with standard options.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model. Motion events are
// reported while a button is held so windows can be dragged, and focus
// reports let a lost terminal end a drag.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	return err
}

// SettingsLoader defines the interface for loading desktop settings.
type SettingsLoader interface {
	// Load returns the effective settings.
	Load() deskconfig.Settings
}

// DefaultSettingsLoader reads settings from the loaded configuration.
type DefaultSettingsLoader struct{}

// NewDefaultSettingsLoader creates a new DefaultSettingsLoader.
func NewDefaultSettingsLoader() *DefaultSettingsLoader {
	return &DefaultSettingsLoader{}
}

// Load returns deskconfig.Load().
func (l *DefaultSettingsLoader) Load() deskconfig.Settings {
	return deskconfig.Load()
}

// StoreFactory opens the layout store.
type StoreFactory interface {
	Open() (storage.LayoutStore, error)
}

// DefaultStoreFactory opens the store named by the configuration.
type DefaultStoreFactory struct{}

// NewDefaultStoreFactory creates a new DefaultStoreFactory.
func NewDefaultStoreFactory() *DefaultStoreFactory {
	return &DefaultStoreFactory{}
}

// Open returns storage.NewFromConfig().
func (f *DefaultStoreFactory) Open() (storage.LayoutStore, error) {
	return storage.NewFromConfig()
}
