package host

import (
	"errors"
	"slices"

	"github.com/cristianoliveira/retrodesk/internal/window"
)

// Snapshot is the persisted form of one open window.
type Snapshot struct {
	ID       string
	Title    string
	Icon     string
	Position window.Point
	Size     window.Size
	Mode     window.Mode
	ZIndex   int
}

// Snapshot captures the open windows from back to front.
func (h *Host) Snapshot() []Snapshot {
	stack := h.Stack()
	snaps := make([]Snapshot, 0, len(stack))
	for _, v := range stack {
		w := v.Window
		snaps = append(snaps, Snapshot{
			ID:       v.ID,
			Title:    w.Title(),
			Icon:     w.Icon(),
			Position: w.Position(),
			Size:     w.Size(),
			Mode:     w.Mode(),
			ZIndex:   w.ZIndex(),
		})
	}
	return snaps
}

// Restore reopens saved windows in their saved stacking order. Title and icon
// come from the factory; geometry and mode come from the snapshot. zIndex
// values are freshly allocated, so only the relative order is kept. Ids the
// factory does not know are skipped. Restore returns how many windows were
// created.
func (h *Host) Restore(snaps []Snapshot, factory Factory) (int, error) {
	ordered := slices.Clone(snaps)
	slices.SortStableFunc(ordered, func(a, b Snapshot) int { return a.ZIndex - b.ZIndex })

	var errs []error
	created := 0
	for _, snap := range ordered {
		if h.Has(snap.ID) {
			h.Focus(snap.ID)
			continue
		}
		tmpl, ok := factory(snap.ID)
		if !ok {
			h.log.Warn("skipping unknown window in snapshot", "id", snap.ID)
			continue
		}
		pos := snap.Position
		tmpl.Position = &pos
		if snap.Size.Valid() {
			tmpl.Size = snap.Size
		}
		tmpl.Mode = snap.Mode
		if tmpl.NoMaximize && tmpl.Mode == window.ModeMaximized {
			tmpl.Mode = window.ModeNormal
		}
		if tmpl.NoMinimize && tmpl.Mode == window.ModeMinimized {
			tmpl.Mode = window.ModeNormal
		}
		if _, _, err := h.create(snap.ID, tmpl); err != nil {
			errs = append(errs, err)
			continue
		}
		created++
	}
	return created, errors.Join(errs...)
}
