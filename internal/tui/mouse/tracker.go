// Package mouse turns raw terminal mouse events into desktop gestures.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDoubleClick is the longest gap between two presses of a double-click.
const DefaultDoubleClick = 350 * time.Millisecond

// Tracker remembers the last primary press so a second press on the same
// target within the threshold reads as a double-click.
type Tracker struct {
	threshold time.Duration
	now       func() time.Time

	lastAt     time.Time
	lastTarget string
	lastButton tea.MouseButton
}

// NewTracker returns a tracker. A non-positive threshold uses DefaultDoubleClick.
func NewTracker(threshold time.Duration) *Tracker {
	if threshold <= 0 {
		threshold = DefaultDoubleClick
	}
	return &Tracker{threshold: threshold, now: time.Now}
}

// Press records a press on target and reports whether it completes a
// double-click. The press that completes one is not remembered, so a third
// quick press starts over.
func (t *Tracker) Press(target string, button tea.MouseButton) bool {
	now := t.now()
	if t.isDouble(target, button, now) {
		t.Reset()
		return true
	}
	t.lastAt = now
	t.lastTarget = target
	t.lastButton = button
	return false
}

// Reset forgets the last press.
func (t *Tracker) Reset() {
	t.lastAt = time.Time{}
	t.lastTarget = ""
	t.lastButton = tea.MouseButtonNone
}

func (t *Tracker) isDouble(target string, button tea.MouseButton, now time.Time) bool {
	if target == "" || t.lastTarget != target {
		return false
	}
	if t.lastButton != button {
		return false
	}
	return now.Sub(t.lastAt) <= t.threshold
}

// IsPrimaryPress reports a left-button press.
func IsPrimaryPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

// IsRelease reports a button release of any button.
func IsRelease(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionRelease
}

// IsMotion reports pointer motion, with or without a held button.
func IsMotion(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionMotion
}

// IsWheel reports wheel events, which the desktop ignores.
func IsWheel(msg tea.MouseMsg) bool {
	return tea.MouseEvent(msg).IsWheel()
}
