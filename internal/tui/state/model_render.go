package state

import (
	"github.com/cristianoliveira/retrodesk/internal/tui/render"
	"github.com/cristianoliveira/retrodesk/internal/window"
)

// View renders the desktop.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.canvas().Render(m.theme)
}

// canvas draws the status bar, the windows back to front and the dock.
func (m *Model) canvas() *render.Canvas {
	c := render.NewCanvas(m.width, m.height, render.StyleDesktop)
	if m.height <= 0 {
		return c
	}

	status := render.StatusState{
		Screen:      m.screen.Name(),
		Windows:     m.host.Len(),
		Message:     m.statusMessage,
		MessageType: m.statusMessageType,
		HasMessage:  m.hasStatusMessage,
	}
	if _, w, ok := m.frontmost(); ok {
		status.Title = w.Title()
	}
	render.DrawStatusBar(c, 0, status)

	viewport := m.host.Viewport()
	if viewport.Valid() {
		desk := render.NewCanvas(viewport.Width, viewport.Height, render.StyleDesktop)
		stack := m.host.Stack()
		frames := make([]render.FrameState, 0, len(stack))
		for _, v := range stack {
			f := render.FrameState{Window: v.Window, Viewport: viewport}
			if inner, ok := v.Window.ContentRect(viewport); ok {
				f.Content = m.screen.Content(v.ID, window.Size{Width: inner.Width, Height: inner.Height})
			}
			frames = append(frames, f)
		}
		render.DrawDesktop(desk, frames)
		if m.showHelp {
			m.drawHelp(desk, viewport)
		}
		c.Blit(desk, 0, statusRows)
	}

	if m.dockRow() > 0 {
		render.DrawDock(c, m.dockRow(), m.dockItems(), m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return c
}

// drawHelp shows the key bindings in a window centered over the desktop.
func (m *Model) drawHelp(c *render.Canvas, viewport window.Size) {
	lines := m.keys.helpLines()
	size := window.Size{Width: min(36, viewport.Width), Height: min(len(lines)+3, viewport.Height)}
	pos := window.Point{X: (viewport.Width - size.Width) / 2, Y: (viewport.Height - size.Height) / 2}
	w, err := window.New("Keyboard shortcuts", 0,
		window.WithIcon("?"),
		window.WithPosition(pos),
		window.WithSize(size),
		window.WithoutMinimize(),
		window.WithoutMaximize(),
		window.OnClose(func() { m.showHelp = false }),
	)
	if err != nil {
		return
	}
	content := append(render.Lines(lines...), render.ContentLine{Text: "f1 or esc to close", Muted: true})
	render.DrawWindow(c, render.FrameState{Window: w, Viewport: viewport, Focused: true, Content: content})
}
