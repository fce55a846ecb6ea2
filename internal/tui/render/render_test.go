package render

import (
	"strings"
	"testing"

	"github.com/cristianoliveira/retrodesk/internal/errors"
	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWindow(t *testing.T, title string, z int, pos window.Point, size window.Size) *window.Window {
	t.Helper()
	w, err := window.New(title, z,
		window.WithIcon("*"),
		window.WithPosition(pos),
		window.WithSize(size),
		window.OnClose(func() {}),
	)
	require.NoError(t, err)
	return w
}

func TestDrawWindowFrame(t *testing.T) {
	w := newWindow(t, "Notes", 1, window.Point{X: 1, Y: 1}, window.Size{Width: 20, Height: 5})
	c := NewCanvas(24, 7, StyleDesktop)

	DrawWindow(c, FrameState{
		Window:   w,
		Viewport: window.Size{Width: 24, Height: 7},
		Content:  Lines("hello", "world", "third", "fourth"),
	})

	assert.Equal(t, strings.Repeat(" ", 24), c.Line(0))
	assert.Equal(t, "  * Notes   [_][+][x]   ", c.Line(1))
	assert.Equal(t, " │hello             │   ", c.Line(2))
	assert.Equal(t, " │world             │   ", c.Line(3))
	assert.Equal(t, " │third             │   ", c.Line(4))
	assert.Equal(t, " └"+strings.Repeat("─", 18)+"┘   ", c.Line(5))
	assert.NotContains(t, c.Plain(), "fourth")
}

func TestDrawWindowMinimizedShowsTitleBarOnly(t *testing.T) {
	w := newWindow(t, "Notes", 1, window.Point{X: 0, Y: 0}, window.Size{Width: 20, Height: 5})
	w.ToggleMinimize()
	c := NewCanvas(20, 5, StyleDesktop)

	DrawWindow(c, FrameState{Window: w, Viewport: window.Size{Width: 20, Height: 5}, Content: Lines("hidden")})

	assert.Contains(t, c.Line(0), "Notes")
	for y := 1; y < 5; y++ {
		assert.Equal(t, strings.Repeat(" ", 20), c.Line(y))
	}
	assert.NotContains(t, c.Plain(), "hidden")
}

func TestDrawWindowMaximizedFillsViewport(t *testing.T) {
	w := newWindow(t, "Notes", 1, window.Point{X: 5, Y: 2}, window.Size{Width: 10, Height: 4})
	w.ToggleMaximize()
	c := NewCanvas(24, 6, StyleDesktop)

	DrawWindow(c, FrameState{Window: w, Viewport: window.Size{Width: 24, Height: 6}})

	assert.True(t, strings.HasSuffix(c.Line(0), "[_][=][x]"))
	assert.True(t, strings.HasPrefix(c.Line(5), "└"))
	assert.True(t, strings.HasSuffix(c.Line(5), "┘"))
}

func TestDrawWindowTruncatesTitle(t *testing.T) {
	w := newWindow(t, "A very long title", 1, window.Point{}, window.Size{Width: 16, Height: 3})
	c := NewCanvas(16, 3, StyleDesktop)

	DrawWindow(c, FrameState{Window: w, Viewport: window.Size{Width: 16, Height: 3}})

	line := c.Line(0)
	assert.NotContains(t, line, "title")
	assert.Contains(t, line, "…")
	assert.True(t, strings.HasSuffix(line, "[_][+][x]"))
}

func TestDrawWindowHidesCloseWhenNotClosable(t *testing.T) {
	w, err := window.New("Contacts", 1, window.WithIcon("*"), window.WithSize(window.Size{Width: 16, Height: 3}), window.WithoutMaximize())
	require.NoError(t, err)
	c := NewCanvas(16, 3, StyleDesktop)

	DrawWindow(c, FrameState{Window: w, Viewport: window.Size{Width: 16, Height: 3}})

	assert.True(t, strings.HasSuffix(c.Line(0), "[_]   "))
	assert.NotContains(t, c.Line(0), LabelClose)
}

func TestDrawWindowClipsAtEdges(t *testing.T) {
	w := newWindow(t, "Notes", 1, window.Point{X: -4, Y: -1}, window.Size{Width: 10, Height: 4})
	c := NewCanvas(8, 4, StyleDesktop)

	assert.NotPanics(t, func() {
		DrawWindow(c, FrameState{Window: w, Viewport: window.Size{Width: 8, Height: 4}, Content: Lines("abcdefgh")})
	})
	assert.Equal(t, "defgh│  ", c.Line(0))
	assert.Equal(t, "─────┘  ", c.Line(2))
}

func TestDrawDesktopStacksByZIndex(t *testing.T) {
	back := newWindow(t, "Back", 5, window.Point{X: 0, Y: 0}, window.Size{Width: 20, Height: 4})
	front := newWindow(t, "Front", 9, window.Point{X: 2, Y: 1}, window.Size{Width: 20, Height: 4})
	c := NewCanvas(24, 6, StyleDesktop)
	viewport := window.Size{Width: 24, Height: 6}

	// passed front first on purpose; drawing order comes from zIndex
	DrawDesktop(c, []FrameState{
		{Window: front, Viewport: viewport, Content: Lines("front")},
		{Window: back, Viewport: viewport, Content: Lines("back")},
	})

	assert.Contains(t, c.Line(1), "Front")
	assert.Contains(t, c.Line(2), "front")
	assert.NotContains(t, c.Plain(), "back")
	assert.Equal(t, StyleTitleFocused, c.StyleAt(3, 1))
	assert.Equal(t, StyleTitle, c.StyleAt(0, 0))
}

func TestCanvasWideRunes(t *testing.T) {
	c := NewCanvas(4, 1, StyleDesktop)

	assert.Equal(t, 2, c.Set(0, 0, '世', StyleContent))
	assert.Equal(t, "世  ", c.Line(0))

	// overwriting the right half blanks the left half
	c.Set(1, 0, 'a', StyleContent)
	assert.Equal(t, " a  ", c.Line(0))

	// no room for a wide rune on the last column
	c.Set(3, 0, '界', StyleContent)
	assert.Equal(t, " a  ", c.Line(0))

	c.Set(2, 0, '界', StyleContent)
	assert.Equal(t, " a界", c.Line(0))
	c.Set(1, 0, 'b', StyleContent)
	assert.Equal(t, " b界", c.Line(0))
}

func TestCanvasText(t *testing.T) {
	c := NewCanvas(10, 1, StyleDesktop)

	assert.Equal(t, 3, c.Text(0, 0, "abcdef", 3, StyleContent))
	assert.Equal(t, 4, c.Text(5, 0, "wxyz", -1, StyleContent))
	assert.Equal(t, "abc  wxyz ", c.Line(0))
	assert.Equal(t, 0, c.Text(0, 0, "世", 1, StyleContent))
}

func TestCanvasBlit(t *testing.T) {
	dst := NewCanvas(5, 3, StyleStatus)
	src := NewCanvas(3, 1, StyleDesktop)
	src.Text(0, 0, "abc", -1, StyleContent)

	dst.Blit(src, 3, 1)

	assert.Equal(t, "   ab", dst.Line(1))
	assert.Equal(t, StyleContent, dst.StyleAt(3, 1))
	assert.Equal(t, StyleStatus, dst.StyleAt(0, 1))
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 2, StyleDesktop)
	c.Text(0, 0, "ab", -1, StyleContent)

	out := c.Render(Theme{})
	assert.Equal(t, "ab \n   ", out)

	assert.Equal(t, "\n", NewCanvas(0, 2, StyleDesktop).Render(DefaultTheme()))
	assert.Equal(t, "", NewCanvas(0, 0, StyleDesktop).Render(DefaultTheme()))
}

func TestDrawStatusBar(t *testing.T) {
	c := NewCanvas(40, 1, StyleDesktop)
	DrawStatusBar(c, 0, StatusState{Screen: "chat", Title: "Contacts", Windows: 2})

	line := c.Line(0)
	assert.True(t, strings.HasPrefix(line, " retrodesk · chat · Contacts"))
	assert.True(t, strings.HasSuffix(line, "2 windows "))

	DrawStatusBar(c, 0, StatusState{Screen: "chat", Windows: 1, Message: "saved", MessageType: errors.MessageTypeSuccess, HasMessage: true})
	line = c.Line(0)
	assert.True(t, strings.HasSuffix(line, "saved "))
	assert.NotContains(t, line, "window")
	assert.Equal(t, StyleStatusSuccess, c.StyleAt(39, 0))
}

func TestDrawStatusBarNarrow(t *testing.T) {
	c := NewCanvas(6, 1, StyleDesktop)
	assert.NotPanics(t, func() {
		DrawStatusBar(c, 0, StatusState{Screen: "desktop", Message: "a long message", HasMessage: true})
	})
}

func TestDockLayoutAndHit(t *testing.T) {
	items := []DockItem{
		{ID: "notepad", Icon: "N", Label: "Notepad"},
		{ID: "help", Icon: "?", Label: "Help", Open: true},
	}
	c := NewCanvas(60, 1, StyleDesktop)

	slots := DrawDock(c, 0, items, "tab next")
	require.Len(t, slots, 2)
	assert.Equal(t, " [1 N Notepad ] [2 ? Help•]", c.Line(0)[:len(" [1 N Notepad ] [2 ? Help•]")])
	assert.True(t, strings.HasSuffix(c.Line(0), "tab next "))

	id, ok := HitDock(slots, window.Point{X: slots[1].Rect.X + 1, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, "help", id)
	_, ok = HitDock(slots, window.Point{X: 0, Y: 0})
	assert.False(t, ok)
}

func TestDockLayoutDropsOverflow(t *testing.T) {
	items := []DockItem{
		{ID: "a", Icon: "A", Label: "Alpha"},
		{ID: "b", Icon: "B", Label: "Bravo"},
	}
	slots := DockLayout(items, 3, 14)
	require.Len(t, slots, 1)
	assert.Equal(t, window.Rect{X: 1, Y: 3, Width: 12, Height: 1}, slots[0].Rect)
}

func TestStatusStyleAndANSI(t *testing.T) {
	assert.Equal(t, StyleStatusError, StatusStyle(errors.MessageTypeError))
	assert.Equal(t, StyleStatusWarning, StatusStyle(errors.MessageTypeWarning))
	assert.Equal(t, StyleStatusInfo, StatusStyle(errors.MessageTypeInfo))
	assert.Equal(t, StyleStatusSuccess, StatusStyle(errors.MessageTypeSuccess))

	assert.Equal(t, "1", string(ansiColor("\033[0;31m")))
	assert.Equal(t, "", string(ansiColor("\033[0m")))
}
