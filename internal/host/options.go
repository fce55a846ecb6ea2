package host

import "github.com/cristianoliveira/retrodesk/internal/window"

const (
	// DefaultBaseZIndex is the first zIndex a host hands out.
	DefaultBaseZIndex = 1000
	// DefaultCascadeWrap is how many cascade slots are used before wrapping.
	DefaultCascadeWrap = 8
	// DefaultMinVisibleTitle is how much of the title bar the clamp keeps on screen.
	DefaultMinVisibleTitle = 6
)

// Options holds layout and stacking settings for a Host.
type Options struct {
	// BaseZIndex seeds the zIndex counter.
	BaseZIndex int
	// DefaultSize is used when a template has no size.
	DefaultSize window.Size
	// CascadeOrigin is where the first cascaded window opens.
	CascadeOrigin window.Point
	// CascadeStep is the offset between consecutive cascaded windows.
	CascadeStep window.Point
	// CascadeWrap is the number of slots before the cascade starts over.
	CascadeWrap int
	// ClampDrag keeps part of the title bar inside the viewport while dragging.
	ClampDrag bool
	// MinVisibleTitle is the number of title-bar cells the clamp keeps visible.
	MinVisibleTitle int
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		BaseZIndex:      DefaultBaseZIndex,
		DefaultSize:     window.Size{Width: window.DefaultWidth, Height: window.DefaultHeight},
		CascadeOrigin:   window.Point{X: 2, Y: 1},
		CascadeStep:     window.Point{X: 3, Y: 2},
		CascadeWrap:     DefaultCascadeWrap,
		MinVisibleTitle: DefaultMinVisibleTitle,
	}
}

// normalized replaces unusable values with defaults.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if !o.DefaultSize.Valid() {
		o.DefaultSize = def.DefaultSize
	}
	if o.CascadeWrap <= 0 {
		o.CascadeWrap = def.CascadeWrap
	}
	if o.MinVisibleTitle <= 0 {
		o.MinVisibleTitle = def.MinVisibleTitle
	}
	return o
}
