package state

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/retrodesk/internal/window"
)

// Keyboard moves use a wider horizontal step because cells are tall.
const (
	moveStepX = 2
	moveStepY = 1
)

// handleKeyMsg processes keyboard input. Desktop bindings win; anything else
// goes to the frontmost window.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, m.quit()
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.FocusNext):
		m.host.FocusNext()
	case key.Matches(msg, m.keys.Close):
		return m, m.closeFrontmost()
	case key.Matches(msg, m.keys.Minimize):
		return m, m.minimizeFrontmost()
	case key.Matches(msg, m.keys.Maximize):
		return m, m.maximizeFrontmost()
	case key.Matches(msg, m.keys.Launch):
		return m, m.launch(msg.String())
	case key.Matches(msg, m.keys.MoveUp):
		m.moveFrontmost(0, -moveStepY)
	case key.Matches(msg, m.keys.MoveDown):
		m.moveFrontmost(0, moveStepY)
	case key.Matches(msg, m.keys.MoveLeft):
		m.moveFrontmost(-moveStepX, 0)
	case key.Matches(msg, m.keys.MoveRight):
		m.moveFrontmost(moveStepX, 0)
	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()
	default:
		if id, ok := m.host.Frontmost(); ok {
			if handled, cmd := m.screen.HandleKey(id, msg); handled {
				return m, cmd
			}
		}
	}
	return m, nil
}

func (m *Model) frontmost() (string, *window.Window, bool) {
	id, ok := m.host.Frontmost()
	if !ok {
		return "", nil, false
	}
	w, ok := m.host.Get(id)
	return id, w, ok
}

func (m *Model) closeFrontmost() tea.Cmd {
	_, w, ok := m.frontmost()
	if !ok {
		return nil
	}
	if !w.Closable() {
		m.errorHandler.Warning(fmt.Sprintf("%s cannot be closed", w.Title()))
		return m.clearStatus()
	}
	w.Close()
	return nil
}

func (m *Model) minimizeFrontmost() tea.Cmd {
	_, w, ok := m.frontmost()
	if !ok {
		return nil
	}
	if !w.Minimizable() {
		m.errorHandler.Warning(fmt.Sprintf("%s cannot be minimized", w.Title()))
		return m.clearStatus()
	}
	w.ToggleMinimize()
	return nil
}

func (m *Model) maximizeFrontmost() tea.Cmd {
	_, w, ok := m.frontmost()
	if !ok {
		return nil
	}
	if !w.Maximizable() {
		m.errorHandler.Warning(fmt.Sprintf("%s cannot be maximized", w.Title()))
		return m.clearStatus()
	}
	w.ToggleMaximize()
	return nil
}

func (m *Model) launch(keyName string) tea.Cmd {
	i, ok := launchIndex(keyName)
	if !ok {
		return nil
	}
	launchers := m.screen.Launchers()
	if i >= len(launchers) {
		return nil
	}
	return m.open(launchers[i].ID)
}

// moveFrontmost drags the frontmost window by (dx, dy) through the same
// press, move and release path the mouse uses.
func (m *Model) moveFrontmost(dx, dy int) {
	id, w, ok := m.frontmost()
	if !ok {
		return
	}
	viewport := m.host.Viewport()
	grip := w.TitleBar(viewport).Origin()
	if w.HitTest(grip, viewport) != window.RegionTitleBar {
		return
	}
	got, region := m.host.PointerDown(grip)
	if got != id || region != window.RegionTitleBar {
		m.host.PointerUp()
		return
	}
	m.host.PointerMove(grip.Add(window.Point{X: dx, Y: dy}))
	m.host.PointerUp()
}
