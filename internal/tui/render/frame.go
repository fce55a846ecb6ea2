package render

import (
	"slices"

	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/mattn/go-runewidth"
)

// Control labels, each window.ButtonWidth columns wide.
const (
	LabelMinimize = "[_]"
	LabelMaximize = "[+]"
	LabelRestore  = "[=]"
	LabelClose    = "[x]"
)

// FrameState defines the inputs needed to draw one window.
type FrameState struct {
	Window   *window.Window
	Viewport window.Size
	Focused  bool
	// Content lines are clipped to the content rect.
	Content []ContentLine
}

// ContentLine is one line of window content.
type ContentLine struct {
	Text  string
	Muted bool
}

// Lines wraps plain strings as content lines.
func Lines(texts ...string) []ContentLine {
	out := make([]ContentLine, len(texts))
	for i, t := range texts {
		out[i] = ContentLine{Text: t}
	}
	return out
}

// DrawWindow draws a window frame and its content onto c in viewport
// coordinates.
func DrawWindow(c *Canvas, f FrameState) {
	w := f.Window
	b := w.Bounds(f.Viewport)
	if b.Empty() {
		return
	}

	titleStyle, frameStyle, buttonStyle := StyleTitle, StyleFrame, StyleButton
	if f.Focused {
		titleStyle, frameStyle, buttonStyle = StyleTitleFocused, StyleFrameFocused, StyleButtonFocused
	}

	// title bar
	c.Fill(w.TitleBar(f.Viewport), ' ', titleStyle)
	controls := w.Controls(f.Viewport)
	titleRight := b.X + b.Width
	for _, ctl := range controls {
		if ctl.Kind == window.RegionClose && !w.Closable() {
			titleRight = min(titleRight, ctl.Rect.X)
			continue
		}
		c.Text(ctl.Rect.X, ctl.Rect.Y, controlLabel(ctl.Kind, w.Mode()), window.ButtonWidth, buttonStyle)
		titleRight = min(titleRight, ctl.Rect.X)
	}
	if avail := titleRight - b.X - 2; avail > 0 {
		c.Text(b.X+1, b.Y, runewidth.Truncate(titleText(w), avail, "…"), avail, titleStyle)
	}

	if w.Mode() == window.ModeMinimized || b.Height < 2 {
		return
	}

	bottom := b.Y + b.Height - 1
	right := b.X + b.Width - 1
	for y := b.Y + 1; y < bottom; y++ {
		c.Set(b.X, y, '│', frameStyle)
		c.Set(right, y, '│', frameStyle)
	}
	c.Set(b.X, bottom, '└', frameStyle)
	for x := b.X + 1; x < right; x++ {
		c.Set(x, bottom, '─', frameStyle)
	}
	if right > b.X {
		c.Set(right, bottom, '┘', frameStyle)
	}

	inner, ok := w.ContentRect(f.Viewport)
	if !ok {
		return
	}
	c.Fill(inner, ' ', StyleContent)
	for i, line := range f.Content {
		if i >= inner.Height {
			break
		}
		style := StyleContent
		if line.Muted {
			style = StyleContentMuted
		}
		c.Text(inner.X, inner.Y+i, runewidth.Truncate(line.Text, inner.Width, "…"), inner.Width, style)
	}
}

func titleText(w *window.Window) string {
	if w.Icon() == "" {
		return w.Title()
	}
	return w.Icon() + " " + w.Title()
}

func controlLabel(kind window.Region, mode window.Mode) string {
	switch kind {
	case window.RegionMinimize:
		return LabelMinimize
	case window.RegionMaximize:
		if mode == window.ModeMaximized {
			return LabelRestore
		}
		return LabelMaximize
	case window.RegionClose:
		return LabelClose
	default:
		return ""
	}
}

// DrawDesktop composites frames back to front by zIndex. The frame with the
// highest zIndex is drawn last and is marked focused.
func DrawDesktop(c *Canvas, frames []FrameState) {
	ordered := slices.Clone(frames)
	slices.SortStableFunc(ordered, func(a, b FrameState) int {
		return a.Window.ZIndex() - b.Window.ZIndex()
	})
	for i, f := range ordered {
		f.Focused = i == len(ordered)-1
		DrawWindow(c, f)
	}
}
