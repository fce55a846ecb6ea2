/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cristianoliveira/retrodesk/cmd"
	"github.com/cristianoliveira/retrodesk/internal/storage"
	"github.com/cristianoliveira/retrodesk/internal/tui/app"
	"github.com/cristianoliveira/retrodesk/internal/tui/screens"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errNotTerminal is returned when the desktop is started without a terminal.
var errNotTerminal = errors.New("retrodesk needs an interactive terminal")

// isTerminal reports whether stdin and stdout are attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

const runCommandLong = `Start the desktop.

USAGE:
    retrodesk run [OPTIONS]

OPTIONS:
    -s, --screen NAME   Screen to show: chat, desktop or profile
    --restore           Reopen the windows saved for the screen
    --no-save           Do not save the layout on exit

MOUSE:
    Drag a title bar to move a window. Double-click it to maximize.
    [_] minimizes, [+] maximizes, [=] restores and [x] closes.
    Click an item in the dock to open or raise its window.

KEYS:
    tab          Focus the next window
    alt+1..9     Open a dock item
    alt+arrows   Move the focused window
    alt+m/x/w    Minimize, maximize or close the focused window
    ctrl+s       Save the layout
    f1           Show all shortcuts
    ctrl+q       Quit

EXAMPLES:
    # Start the chat screen
    retrodesk run --screen chat

    # Reopen the desktop screen as it was left
    retrodesk run --screen desktop --restore`

// NewRunCmd creates the run command with explicit dependencies.
func NewRunCmd(client app.Client) *cobra.Command {
	if client == nil {
		panic("NewRunCmd: client dependency cannot be nil")
	}

	var (
		screen  string
		restore bool
		noSave  bool
	)
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the desktop",
		Long:  runCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if !isTerminal() {
				return errNotTerminal
			}
			settings := client.LoadSettings()
			if c.Flags().Changed("screen") {
				settings.Screen = strings.ToLower(strings.TrimSpace(screen))
			}
			if restore {
				settings.RestoreSession = true
			}
			if noSave {
				settings.SaveOnExit = false
			}
			return runDesktop(client, settings.Screen, func(store storage.LayoutStore) (app.Model, error) {
				return client.CreateModel(settings, store)
			})
		},
	}
	runCmd.Flags().StringVarP(&screen, "screen", "s", "", fmt.Sprintf("Screen to show (%s)", strings.Join(screens.Names(), ", ")))
	runCmd.Flags().BoolVar(&restore, "restore", false, "Reopen the saved layout")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save the layout on exit")
	return runCmd
}

// runDesktop opens the store, builds the model and runs it. A store that
// cannot be opened only disables saving.
func runDesktop(client app.Client, screen string, create func(storage.LayoutStore) (app.Model, error)) error {
	store, err := client.OpenStore()
	if err != nil {
		notices.Warning(fmt.Sprintf("sessions will not be saved: %v", err))
		store = nil
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	model, err := create(store)
	if err != nil {
		if errors.Is(err, screens.ErrUnknownScreen) {
			return fmt.Errorf("unknown screen %q (available: %s)", screen, strings.Join(screens.Names(), ", "))
		}
		return fmt.Errorf("failed to create desktop: %w", err)
	}
	return client.RunProgram(model)
}

// runCmd represents the run command
var runCmd = NewRunCmd(tuiClient)

func init() {
	cmd.RootCmd.AddCommand(runCmd)
}
