package host

import (
	"testing"

	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	h := newTestHost(t)
	a := mustOpen(t, h, "a")
	b := mustOpen(t, h, "b")
	mustOpen(t, h, "c")
	h.Focus("a")
	b.ToggleMinimize()
	h.PointerDown(a.Position())
	h.PointerMove(a.Position().Add(window.Point{X: 7, Y: 4}))
	h.PointerUp()

	snaps := h.Snapshot()
	require.Len(t, snaps, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{snaps[0].ID, snaps[1].ID, snaps[2].ID})

	restored := newTestHost(t)
	restored.Focus("anything")
	n, err := restored.Restore(snaps, chatFactory)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var order []string
	for _, v := range restored.Stack() {
		order = append(order, v.ID)
	}
	assert.Equal(t, []string{"b", "c", "a"}, order)

	ra, _ := restored.Get("a")
	assert.Equal(t, a.Position(), ra.Position())
	rb, _ := restored.Get("b")
	assert.Equal(t, window.ModeMinimized, rb.Mode())
	assert.Equal(t, DefaultBaseZIndex, rb.ZIndex())
}

func TestRestoreSkipsUnknownAndFocusesOpen(t *testing.T) {
	h := newTestHost(t)
	open := mustOpen(t, h, "open")
	z := open.ZIndex()

	snaps := []Snapshot{
		{ID: "unknown", Title: "gone", ZIndex: 1},
		{ID: "open", ZIndex: 2},
		{ID: "new", ZIndex: 3, Size: window.Size{Width: 12, Height: 6}, Mode: window.ModeMaximized},
	}
	n, err := h.Restore(snaps, chatFactory)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, h.Has("unknown"))
	assert.Greater(t, open.ZIndex(), z)

	w, ok := h.Get("new")
	require.True(t, ok)
	assert.Equal(t, window.Size{Width: 12, Height: 6}, w.Size())
	assert.Equal(t, window.ModeMaximized, w.Mode())
	assert.Equal(t, "Chat with new", w.Title())
}

func TestRestoreRespectsCapabilities(t *testing.T) {
	h := newTestHost(t)
	factory := func(id string) (Template, bool) {
		return Template{Title: "Contacts", NoMaximize: true}, true
	}
	_, err := h.Restore([]Snapshot{{ID: "contacts", Mode: window.ModeMaximized}}, factory)
	require.NoError(t, err)
	w, _ := h.Get("contacts")
	assert.Equal(t, window.ModeNormal, w.Mode())
}
