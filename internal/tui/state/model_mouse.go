package state

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/retrodesk/internal/tui/mouse"
	"github.com/cristianoliveira/retrodesk/internal/tui/render"
	"github.com/cristianoliveira/retrodesk/internal/window"
)

// handleMouseMsg translates terminal mouse events into host pointer events.
// Desktop coordinates start below the status bar.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	if mouse.IsWheel(msg) {
		return nil
	}
	if m.showHelp {
		if mouse.IsPrimaryPress(msg) {
			m.showHelp = false
		}
		return nil
	}

	p := window.Point{X: msg.X, Y: msg.Y - statusRows}
	switch {
	case mouse.IsMotion(msg):
		m.host.PointerMove(p)
	case mouse.IsRelease(msg):
		m.host.PointerUp()
	case mouse.IsPrimaryPress(msg):
		return m.handlePress(msg, p)
	}
	return nil
}

func (m *Model) handlePress(msg tea.MouseMsg, p window.Point) tea.Cmd {
	if msg.Y == m.dockRow() {
		m.host.PointerUp()
		m.tracker.Reset()
		if id, ok := render.HitDock(m.dockLayout(), window.Point{X: msg.X, Y: msg.Y}); ok {
			return m.open(id)
		}
		return nil
	}
	if p.Y < 0 || p.Y >= m.host.Viewport().Height {
		return nil
	}

	id, region := m.host.PointerDown(p)
	if id == "" {
		m.tracker.Reset()
		return nil
	}
	if m.tracker.Press(id+"/"+region.String(), msg.Button) {
		m.host.DoubleClick(p)
		return nil
	}
	if region != window.RegionBody {
		return nil
	}
	w, ok := m.host.Get(id)
	if !ok {
		return nil
	}
	inner, ok := w.ContentRect(m.host.Viewport())
	if !ok || !inner.Contains(p) {
		return nil
	}
	if target, ok := m.screen.Select(id, p.Y-inner.Y); ok {
		return m.open(target)
	}
	return nil
}

func (m *Model) dockItems() []render.DockItem {
	front, _ := m.host.Frontmost()
	launchers := m.screen.Launchers()
	items := make([]render.DockItem, 0, len(launchers))
	for _, l := range launchers {
		items = append(items, render.DockItem{
			ID:     l.ID,
			Icon:   l.Icon,
			Label:  l.Label,
			Open:   m.host.Has(l.ID),
			Active: l.ID == front,
		})
	}
	return items
}

func (m *Model) dockLayout() []render.DockSlot {
	return render.DockLayout(m.dockItems(), m.dockRow(), m.width)
}
