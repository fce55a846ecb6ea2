// Package window implements a single floating panel: its geometry, stacking
// key, display mode and the title-bar drag interaction.
//
// A Window never decides its own lifecycle. Closing and raising are delegated
// to the owner through the OnClose and OnFocus callbacks.
package window

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultIcon is shown when no icon is supplied.
	DefaultIcon = "□"
	// DefaultWidth is the width used when no size is supplied.
	DefaultWidth = 40
	// DefaultHeight is the height used when no size is supplied.
	DefaultHeight = 12
)

var (
	// ErrEmptyTitle indicates a window was created without a title.
	ErrEmptyTitle = errors.New("window title cannot be empty")
	// ErrInvalidSize indicates a non-positive width or height.
	ErrInvalidSize = errors.New("window size must be positive")
	// ErrInvalidMode indicates an unknown mode name.
	ErrInvalidMode = errors.New("invalid window mode")
)

// Mode is the display state of a window. Minimized and maximized are
// exclusive by construction.
type Mode int

const (
	// ModeNormal renders the window at its own position and size.
	ModeNormal Mode = iota
	// ModeMinimized renders only the title bar.
	ModeMinimized
	// ModeMaximized fills the host viewport; position and size are kept.
	ModeMaximized
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeMinimized:
		return "minimized"
	case ModeMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name back into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return ModeNormal, nil
	case "minimized":
		return ModeMinimized, nil
	case "maximized":
		return ModeMaximized, nil
	default:
		return ModeNormal, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Clamp adjusts a dragged position before it is applied.
type Clamp func(pos Point, size Size) Point

// Option configures a Window at construction time.
type Option func(*Window)

// WithIcon sets the title-bar glyph.
func WithIcon(icon string) Option {
	return func(w *Window) {
		if icon != "" {
			w.icon = icon
		}
	}
}

// WithPosition sets the initial top-left position.
func WithPosition(p Point) Option {
	return func(w *Window) { w.pos = p }
}

// WithSize sets the window size.
func WithSize(s Size) Option {
	return func(w *Window) { w.size = s }
}

// WithMode sets the initial display mode.
func WithMode(m Mode) Option {
	return func(w *Window) { w.mode = m }
}

// WithoutMinimize removes the minimize control.
func WithoutMinimize() Option {
	return func(w *Window) { w.minimizable = false }
}

// WithoutMaximize removes the maximize control and the double-click toggle.
func WithoutMaximize() Option {
	return func(w *Window) { w.maximizable = false }
}

// OnClose registers the close callback.
func OnClose(fn func()) Option {
	return func(w *Window) { w.onClose = fn }
}

// OnFocus registers the focus callback.
func OnFocus(fn func()) Option {
	return func(w *Window) { w.onFocus = fn }
}

// WithClamp installs a clamp applied to every dragged position.
func WithClamp(c Clamp) Option {
	return func(w *Window) { w.clamp = c }
}

// dragState is Idle when active is false.
type dragState struct {
	active       bool
	startPointer Point
	startPos     Point
}

// Window is one floating panel.
type Window struct {
	title       string
	icon        string
	pos         Point
	size        Size
	mode        Mode
	restoreMode Mode // mode to return to when leaving ModeMinimized
	zIndex      int
	minimizable bool
	maximizable bool
	onClose     func()
	onFocus     func()
	clamp       Clamp
	drag        dragState
}

// New creates a window with the given title and stacking key.
func New(title string, zIndex int, opts ...Option) (*Window, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	w := &Window{
		title:       title,
		icon:        DefaultIcon,
		size:        Size{Width: DefaultWidth, Height: DefaultHeight},
		zIndex:      zIndex,
		minimizable: true,
		maximizable: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	if !w.size.Valid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w.size.Width, w.size.Height)
	}
	switch w.mode {
	case ModeNormal, ModeMinimized, ModeMaximized:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(w.mode))
	}
	return w, nil
}

func (w *Window) Title() string     { return w.title }
func (w *Window) Icon() string      { return w.icon }
func (w *Window) Position() Point   { return w.pos }
func (w *Window) Size() Size        { return w.size }
func (w *Window) Mode() Mode        { return w.mode }
func (w *Window) ZIndex() int       { return w.zIndex }
func (w *Window) Minimizable() bool { return w.minimizable }
func (w *Window) Maximizable() bool { return w.maximizable }

// Closable reports whether the close control does anything.
func (w *Window) Closable() bool { return w.onClose != nil }

// Dragging reports whether a title-bar drag is in progress.
func (w *Window) Dragging() bool { return w.drag.active }

// SetZIndex replaces the stacking key. Only the owning host calls this.
func (w *Window) SetZIndex(z int) {
	w.zIndex = z
}

// Bounds returns the rectangle the window occupies for the given viewport.
func (w *Window) Bounds(viewport Size) Rect {
	switch w.mode {
	case ModeMaximized:
		if viewport.Valid() {
			return Rect{Width: viewport.Width, Height: viewport.Height}
		}
	case ModeMinimized:
		return Rect{X: w.pos.X, Y: w.pos.Y, Width: w.size.Width, Height: 1}
	}
	return Rect{X: w.pos.X, Y: w.pos.Y, Width: w.size.Width, Height: w.size.Height}
}

// ContentRect returns the area inside the frame. It reports false while the
// window is minimized or too small to hold content.
func (w *Window) ContentRect(viewport Size) (Rect, bool) {
	if w.mode == ModeMinimized {
		return Rect{}, false
	}
	b := w.Bounds(viewport)
	inner := Rect{X: b.X + 1, Y: b.Y + 1, Width: b.Width - 2, Height: b.Height - 2}
	if inner.Empty() {
		return Rect{}, false
	}
	return inner, true
}

// PointerDown handles a primary press at p. Any hit focuses the window first;
// controls on the title bar take precedence over dragging.
func (w *Window) PointerDown(p Point, viewport Size) Region {
	region := w.HitTest(p, viewport)
	if region == RegionNone {
		return region
	}
	// a press while still dragging means the release was lost
	w.drag = dragState{}
	w.Focus()

	switch region {
	case RegionMinimize:
		w.ToggleMinimize()
	case RegionMaximize:
		w.ToggleMaximize()
	case RegionClose:
		w.Close()
	case RegionTitleBar:
		if w.mode != ModeMaximized {
			w.drag = dragState{active: true, startPointer: p, startPos: w.pos}
		}
	}
	return region
}

// PointerMove applies pointer motion to an active drag and reports whether the
// position changed. Outside a drag it does nothing.
func (w *Window) PointerMove(p Point) bool {
	if !w.drag.active {
		return false
	}
	next := w.drag.startPos.Add(p.Sub(w.drag.startPointer))
	if w.clamp != nil {
		next = w.clamp(next, w.size)
	}
	if next == w.pos {
		return false
	}
	w.pos = next
	return true
}

// PointerUp ends any drag.
func (w *Window) PointerUp() {
	w.drag = dragState{}
}

// PointerLeave ends any drag exactly like PointerUp.
func (w *Window) PointerLeave() {
	w.drag = dragState{}
}

// DoubleClick handles a double click at p. On the title bar it toggles
// maximize when the window is maximizable.
func (w *Window) DoubleClick(p Point, viewport Size) Region {
	region := w.HitTest(p, viewport)
	if region == RegionNone {
		return region
	}
	w.Focus()
	if region == RegionTitleBar && w.maximizable {
		w.ToggleMaximize()
	}
	return region
}

// ToggleMinimize flips between minimized and the previous mode.
func (w *Window) ToggleMinimize() {
	if !w.minimizable {
		return
	}
	if w.mode == ModeMinimized {
		w.mode = w.restoreMode
		return
	}
	w.restoreMode = w.mode
	w.mode = ModeMinimized
}

// ToggleMaximize flips between maximized and normal. A minimized window is
// restored straight to maximized.
func (w *Window) ToggleMaximize() {
	if !w.maximizable {
		return
	}
	w.drag = dragState{}
	if w.mode == ModeMaximized {
		w.mode = ModeNormal
		return
	}
	w.mode = ModeMaximized
}

// Close asks the owner to close the window.
func (w *Window) Close() {
	w.drag = dragState{}
	if w.onClose != nil {
		w.onClose()
	}
}

// Focus asks the owner to raise the window.
func (w *Window) Focus() {
	if w.onFocus != nil {
		w.onFocus()
	}
}
