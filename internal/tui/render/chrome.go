package render

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/retrodesk/internal/errors"
	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/mattn/go-runewidth"
)

// StatusState defines the inputs for the top status bar.
type StatusState struct {
	Screen string
	// Title is the frontmost window's title, if any.
	Title       string
	Windows     int
	Message     string
	MessageType errors.MessageType
	HasMessage  bool
}

// DrawStatusBar fills row y with the status bar. The left side names the
// screen and frontmost window; a pending message replaces the window count on
// the right.
func DrawStatusBar(c *Canvas, y int, s StatusState) {
	c.Fill(window.Rect{Y: y, Width: c.Width(), Height: 1}, ' ', StyleStatus)

	left := " retrodesk · " + s.Screen
	if s.Title != "" {
		left += " · " + s.Title
	}

	right := fmt.Sprintf("%d window", s.Windows)
	if s.Windows != 1 {
		right += "s"
	}
	rightStyle := StyleStatus
	if s.HasMessage {
		right = s.Message
		rightStyle = StatusStyle(s.MessageType)
	}
	right += " "

	rightWidth := min(runewidth.StringWidth(right), c.Width())
	leftWidth := c.Width() - rightWidth - 1
	if leftWidth > 0 {
		c.Text(0, y, runewidth.Truncate(left, leftWidth, "…"), leftWidth, StyleStatus)
	}
	right = runewidth.Truncate(right, rightWidth, "…")
	c.Text(c.Width()-runewidth.StringWidth(right), y, right, rightWidth, rightStyle)
}

// DockItem is one launcher in the dock.
type DockItem struct {
	ID    string
	Icon  string
	Label string
	// Open marks launchers whose window is open; Active marks the frontmost.
	Open   bool
	Active bool
}

// DockSlot is where a dock item was drawn, for hit-testing clicks.
type DockSlot struct {
	ID   string
	Rect window.Rect
}

// DockLayout places items left to right on row y, numbering them from 1 so
// the labels match the alt+N bindings. Items that do not fit are dropped.
func DockLayout(items []DockItem, y, width int) []DockSlot {
	slots := make([]DockSlot, 0, len(items))
	x := 1
	for i, item := range items {
		w := runewidth.StringWidth(dockLabel(i, item))
		if x+w > width {
			break
		}
		slots = append(slots, DockSlot{ID: item.ID, Rect: window.Rect{X: x, Y: y, Width: w, Height: 1}})
		x += w + 1
	}
	return slots
}

// DrawDock fills row y with the dock and returns the slots drawn.
func DrawDock(c *Canvas, y int, items []DockItem, hint string) []DockSlot {
	c.Fill(window.Rect{Y: y, Width: c.Width(), Height: 1}, ' ', StyleDock)
	slots := DockLayout(items, y, c.Width())
	end := 0
	for i, slot := range slots {
		item := items[i]
		style := StyleDockItem
		switch {
		case item.Active:
			style = StyleDockItemActive
		case item.Open:
			style = StyleDockItemOpen
		}
		c.Text(slot.Rect.X, y, dockLabel(i, item), slot.Rect.Width, style)
		end = slot.Rect.X + slot.Rect.Width
	}

	if hint == "" {
		return slots
	}
	hint = strings.TrimSpace(hint) + " "
	avail := c.Width() - end - 2
	if avail <= 0 {
		return slots
	}
	hint = runewidth.Truncate(hint, avail, "…")
	c.Text(c.Width()-runewidth.StringWidth(hint), y, hint, avail, StyleHelp)
	return slots
}

func dockLabel(i int, item DockItem) string {
	marker := " "
	if item.Open {
		marker = "•"
	}
	return fmt.Sprintf("[%d %s %s%s]", i+1, item.Icon, item.Label, marker)
}

// HitDock returns the id of the slot containing p.
func HitDock(slots []DockSlot, p window.Point) (string, bool) {
	for _, s := range slots {
		if s.Rect.Contains(p) {
			return s.ID, true
		}
	}
	return "", false
}
