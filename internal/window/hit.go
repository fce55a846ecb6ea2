package window

// Region identifies the part of a window under a point.
type Region int

const (
	// RegionNone means the point is outside the window.
	RegionNone Region = iota
	// RegionTitleBar is the draggable part of the title bar.
	RegionTitleBar
	// RegionMinimize is the minimize control.
	RegionMinimize
	// RegionMaximize is the maximize control.
	RegionMaximize
	// RegionClose is the close control.
	RegionClose
	// RegionBody is everything below the title bar.
	RegionBody
)

// ButtonWidth is the number of cells each title-bar control takes.
const ButtonWidth = 3

// String returns the string representation of the region.
func (r Region) String() string {
	switch r {
	case RegionNone:
		return "none"
	case RegionTitleBar:
		return "titlebar"
	case RegionMinimize:
		return "minimize"
	case RegionMaximize:
		return "maximize"
	case RegionClose:
		return "close"
	case RegionBody:
		return "body"
	default:
		return "unknown"
	}
}

// IsControl reports whether the region is a title-bar button.
func (r Region) IsControl() bool {
	return r == RegionMinimize || r == RegionMaximize || r == RegionClose
}

// Control is a title-bar button and where it sits.
type Control struct {
	Kind Region
	Rect Rect
}

// Controls lays out the title-bar buttons right to left: close, maximize,
// minimize. Buttons that would not fit are dropped.
func (w *Window) Controls(viewport Size) []Control {
	b := w.Bounds(viewport)
	kinds := []Region{RegionClose}
	if w.maximizable {
		kinds = append(kinds, RegionMaximize)
	}
	if w.minimizable {
		kinds = append(kinds, RegionMinimize)
	}

	controls := make([]Control, 0, len(kinds))
	right := b.X + b.Width
	for _, kind := range kinds {
		x := right - ButtonWidth
		if x < b.X {
			break
		}
		controls = append(controls, Control{
			Kind: kind,
			Rect: Rect{X: x, Y: b.Y, Width: ButtonWidth, Height: 1},
		})
		right = x
	}
	return controls
}

// TitleBar returns the title-bar row.
func (w *Window) TitleBar(viewport Size) Rect {
	b := w.Bounds(viewport)
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: 1}
}

// HitTest classifies p against the window's current geometry.
func (w *Window) HitTest(p Point, viewport Size) Region {
	b := w.Bounds(viewport)
	if !b.Contains(p) {
		return RegionNone
	}
	if p.Y != b.Y {
		return RegionBody
	}
	for _, c := range w.Controls(viewport) {
		if c.Rect.Contains(p) {
			return c.Kind
		}
	}
	return RegionTitleBar
}
