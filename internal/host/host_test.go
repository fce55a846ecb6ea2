package host

import (
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testViewport = window.Size{Width: 120, Height: 40}

func chatFactory(id string) (Template, bool) {
	if id == "unknown" {
		return Template{}, false
	}
	return Template{Title: "Chat with " + id, Icon: "@", Size: window.Size{Width: 30, Height: 10}}, true
}

func newTestHost(t *testing.T, opts ...Option) *Host {
	t.Helper()
	h := New(opts...)
	h.SetViewport(testViewport)
	t.Cleanup(h.Shutdown)
	return h
}

func mustOpen(t *testing.T, h *Host, id string) *window.Window {
	t.Helper()
	w, _, err := h.Open(id, chatFactory)
	require.NoError(t, err)
	return w
}

func TestOpenAssignsCounter(t *testing.T) {
	h := newTestHost(t)
	require.Equal(t, DefaultBaseZIndex, h.NextZIndex())

	w, created, err := h.Open("maria", chatFactory)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, DefaultBaseZIndex, w.ZIndex())
	assert.Equal(t, DefaultBaseZIndex+1, h.NextZIndex())
	assert.Equal(t, "Chat with maria", w.Title())
	assert.True(t, w.Closable())
}

func TestOpenTwiceRefocusesInsteadOfDuplicating(t *testing.T) {
	h := newTestHost(t)
	first := mustOpen(t, h, "joao")
	mustOpen(t, h, "ana")
	z := first.ZIndex()

	again, created, err := h.Open("joao", chatFactory)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, first, again)
	assert.Equal(t, 2, h.Len())
	assert.Greater(t, again.ZIndex(), z)

	front, ok := h.Frontmost()
	require.True(t, ok)
	assert.Equal(t, "joao", front)
}

func TestOpenRejectsBadInput(t *testing.T) {
	h := newTestHost(t)

	_, _, err := h.Open("", chatFactory)
	require.ErrorIs(t, err, ErrEmptyID)

	_, _, err = h.Open("unknown", chatFactory)
	require.ErrorIs(t, err, ErrUnknownWindow)

	_, _, err = h.Open("blank", func(string) (Template, bool) { return Template{}, true })
	require.ErrorIs(t, err, window.ErrEmptyTitle)

	assert.Equal(t, 0, h.Len())
	assert.Equal(t, DefaultBaseZIndex, h.NextZIndex(), "failed opens must not consume zIndex values")
}

func TestZIndexStrictlyIncreasing(t *testing.T) {
	h := newTestHost(t)
	ids := []string{"a", "b", "c", "d"}
	for _, id := range ids {
		mustOpen(t, h, id)
	}

	ops := []string{"c", "a", "a", "d", "b", "c", "missing", "b"}
	last := 0
	for _, id := range ops {
		if !h.Focus(id) {
			continue
		}
		w, _ := h.Get(id)
		assert.Greater(t, w.ZIndex(), last)
		last = w.ZIndex()

		front, _ := h.Frontmost()
		assert.Equal(t, id, front)
	}

	seen := map[int]bool{}
	for _, v := range h.Stack() {
		assert.False(t, seen[v.Window.ZIndex()], "duplicate zIndex %d", v.Window.ZIndex())
		seen[v.Window.ZIndex()] = true
	}
}

func TestStackOrdersBackToFront(t *testing.T) {
	h := newTestHost(t)
	for _, id := range []string{"a", "b", "c"} {
		mustOpen(t, h, id)
	}
	h.Focus("a")

	var got []string
	for _, v := range h.Stack() {
		got = append(got, v.ID)
	}
	assert.Equal(t, []string{"b", "c", "a"}, got)
	assert.Equal(t, []string{"a", "b", "c"}, h.IDs())
}

func TestFocusNextCycles(t *testing.T) {
	h := newTestHost(t)
	for _, id := range []string{"a", "b", "c"} {
		mustOpen(t, h, id)
	}

	var fronts []string
	for i := 0; i < 4; i++ {
		id, ok := h.FocusNext()
		require.True(t, ok)
		fronts = append(fronts, id)
	}
	assert.Equal(t, []string{"a", "b", "c", "a"}, fronts)

	single := newTestHost(t)
	mustOpen(t, single, "only")
	_, ok := single.FocusNext()
	assert.False(t, ok)
}

func TestAbsentIDsAreNoops(t *testing.T) {
	h := newTestHost(t)
	mustOpen(t, h, "a")
	next := h.NextZIndex()

	assert.False(t, h.Close("ghost"))
	assert.False(t, h.Focus("ghost"))
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.Has("ghost"))
	assert.Equal(t, next, h.NextZIndex())
}

func TestCloseThenReopenIsFresh(t *testing.T) {
	removed := []string{}
	h := newTestHost(t, WithRemoveHook(func(id string) { removed = append(removed, id) }))

	w := mustOpen(t, h, "a")
	instance := h.Instance("a")
	h.SetViewport(testViewport)
	h.PointerDown(window.Point{X: w.Position().X + 1, Y: w.Position().Y})
	h.PointerMove(window.Point{X: 60, Y: 20})
	moved := w.Position()
	mustOpen(t, h, "b")

	require.True(t, h.Close("a"))
	assert.False(t, h.Has("a"))
	assert.Equal(t, []string{"a"}, removed)
	assert.Empty(t, h.Captured())

	next := h.NextZIndex()
	reopened := mustOpen(t, h, "a")
	assert.NotSame(t, w, reopened)
	assert.NotEqual(t, instance, h.Instance("a"))
	assert.Equal(t, next, reopened.ZIndex())
	assert.NotEqual(t, moved, reopened.Position())
	assert.Equal(t, window.ModeNormal, reopened.Mode())
}

func TestCloseCancelsScheduledTask(t *testing.T) {
	h := newTestHost(t)
	mustOpen(t, h, "a")

	var mu sync.Mutex
	var messages []string
	require.NoError(t, h.Schedule("a", 200*time.Millisecond, func() {
		mu.Lock()
		defer mu.Unlock()
		messages = append(messages, "reply for a")
	}))
	require.True(t, h.Pending("a"))

	time.Sleep(100 * time.Millisecond)
	h.Close("a")
	assert.False(t, h.Pending("a"))

	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, messages)
}

func TestScheduleRequiresOpenWindow(t *testing.T) {
	h := newTestHost(t)
	err := h.Schedule("ghost", time.Millisecond, func() {})
	require.ErrorIs(t, err, ErrUnknownWindow)
}

func TestScheduledTaskRunsWhileOpen(t *testing.T) {
	h := newTestHost(t)
	mustOpen(t, h, "a")

	done := make(chan struct{})
	require.NoError(t, h.Schedule("a", 10*time.Millisecond, func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
	assert.False(t, h.Pending("a"))
}

func TestCloseBetweenFireAndDispatchDropsTask(t *testing.T) {
	queued := make(chan func(), 1)
	h := newTestHost(t, WithDispatch(func(fn func()) { queued <- fn }))
	mustOpen(t, h, "a")

	ran := false
	require.NoError(t, h.Schedule("a", time.Millisecond, func() { ran = true }))

	var fn func()
	select {
	case fn = <-queued:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}

	// the event loop processes the close before the fired task
	h.Close("a")
	fn()
	assert.False(t, ran)
}

func TestCascadePlacesNewWindows(t *testing.T) {
	h := newTestHost(t)
	a := mustOpen(t, h, "a")
	b := mustOpen(t, h, "b")

	def := DefaultOptions()
	assert.Equal(t, def.CascadeOrigin, a.Position())
	assert.Equal(t, def.CascadeOrigin.Add(def.CascadeStep), b.Position())

	pos := window.Point{X: 50, Y: 3}
	c, _, err := h.Open("c", func(string) (Template, bool) {
		return Template{Title: "Pinned", Position: &pos}, true
	})
	require.NoError(t, err)
	assert.Equal(t, pos, c.Position())
	assert.Equal(t, def.DefaultSize, c.Size())
}

func TestNoCloseTemplate(t *testing.T) {
	h := newTestHost(t)
	w, _, err := h.Open("contacts", func(string) (Template, bool) {
		return Template{Title: "Contacts", NoClose: true, NoMaximize: true}, true
	})
	require.NoError(t, err)

	w.Close()
	assert.True(t, h.Has("contacts"))
	assert.False(t, w.Maximizable())
}

func TestPointerDownHitsTopmostAndCaptures(t *testing.T) {
	h := newTestHost(t)
	pos := window.Point{X: 10, Y: 5}
	factory := func(id string) (Template, bool) {
		return Template{Title: id, Position: &pos, Size: window.Size{Width: 30, Height: 10}}, true
	}
	_, _, err := h.Open("back", factory)
	require.NoError(t, err)
	front, _, err := h.Open("front", factory)
	require.NoError(t, err)
	h.Focus("back")

	id, region := h.PointerDown(window.Point{X: 15, Y: 5})
	assert.Equal(t, "back", id)
	assert.Equal(t, window.RegionTitleBar, region)
	assert.Equal(t, "back", h.Captured())

	// motion far outside any window still reaches the captured window
	assert.True(t, h.PointerMove(window.Point{X: 115, Y: 39}))
	back, _ := h.Get("back")
	assert.Equal(t, window.Point{X: 110, Y: 39}, back.Position())
	assert.Equal(t, pos, front.Position())

	h.PointerUp()
	assert.Empty(t, h.Captured())
	assert.False(t, h.PointerMove(window.Point{X: 0, Y: 0}))
}

func TestPointerDownOnBackgroundWindowRaisesIt(t *testing.T) {
	h := newTestHost(t)
	a := mustOpen(t, h, "a")
	mustOpen(t, h, "b")

	// "a" sits at the cascade origin; its top-left cell is not covered by "b"
	id, _ := h.PointerDown(a.Position())
	assert.Equal(t, "a", id)
	front, _ := h.Frontmost()
	assert.Equal(t, "a", front)
}

func TestPointerLeaveEndsCapture(t *testing.T) {
	h := newTestHost(t)
	w := mustOpen(t, h, "a")

	h.PointerDown(w.Position())
	require.True(t, w.Dragging())
	h.PointerLeave()
	assert.False(t, w.Dragging())
	assert.Empty(t, h.Captured())

	at := w.Position()
	h.PointerMove(window.Point{X: 90, Y: 30})
	assert.Equal(t, at, w.Position())
}

func TestLostReleaseIsRecoveredByNextPress(t *testing.T) {
	h := newTestHost(t)
	a := mustOpen(t, h, "a")
	h.PointerDown(a.Position())
	require.True(t, a.Dragging())

	// press on empty desktop without a release in between
	id, _ := h.PointerDown(window.Point{X: 119, Y: 39})
	assert.Empty(t, id)
	assert.False(t, a.Dragging())
	assert.Empty(t, h.Captured())
}

func TestCloseButtonRemovesWindow(t *testing.T) {
	h := newTestHost(t)
	w := mustOpen(t, h, "a")

	var closeAt window.Point
	for _, c := range w.Controls(h.Viewport()) {
		if c.Kind == window.RegionClose {
			closeAt = c.Rect.Origin()
		}
	}
	id, region := h.PointerDown(closeAt)
	assert.Equal(t, "a", id)
	assert.Equal(t, window.RegionClose, region)
	assert.False(t, h.Has("a"))
	assert.Empty(t, h.Captured())
}

func TestDoubleClickMaximizes(t *testing.T) {
	h := newTestHost(t)
	w := mustOpen(t, h, "a")
	p := w.Position()

	h.PointerDown(p)
	id, region := h.DoubleClick(p)
	assert.Equal(t, "a", id)
	assert.Equal(t, window.RegionTitleBar, region)
	assert.Equal(t, window.ModeMaximized, w.Mode())
	assert.Empty(t, h.Captured())
}

func TestClampKeepsTitleBarReachable(t *testing.T) {
	opts := DefaultOptions()
	opts.ClampDrag = true
	h := newTestHost(t, WithOptions(opts))
	w := mustOpen(t, h, "a")

	h.PointerDown(w.Position())
	h.PointerMove(window.Point{X: -500, Y: -500})
	assert.Equal(t, window.Point{X: opts.MinVisibleTitle - 30, Y: 0}, w.Position())

	h.PointerMove(window.Point{X: 500, Y: 500})
	assert.Equal(t, window.Point{X: testViewport.Width - opts.MinVisibleTitle, Y: testViewport.Height - 1}, w.Position())
}

func TestCloseAllReleasesEverything(t *testing.T) {
	h := newTestHost(t)
	for _, id := range []string{"a", "b"} {
		mustOpen(t, h, id)
		require.NoError(t, h.Schedule(id, time.Hour, func() {}))
	}
	h.CloseAll()
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.Pending("a"))
	assert.False(t, h.Pending("b"))
}
