// Package host owns a collection of floating windows keyed by a stable id.
//
// A Host deduplicates windows by id, arbitrates stacking order through a
// single monotonically increasing counter and routes pointer events to its
// windows, capturing the pointer for the window being dragged. Host is not
// safe for concurrent use: it belongs to the event loop. Delayed work tied to
// a window goes through Schedule and is delivered back to the event loop by
// the configured Dispatch.
package host

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cristianoliveira/retrodesk/internal/logging"
	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/google/uuid"
)

var (
	// ErrUnknownWindow indicates an id that is not open or that the factory
	// does not know.
	ErrUnknownWindow = errors.New("unknown window")
	// ErrEmptyID indicates an empty window id.
	ErrEmptyID = errors.New("window id cannot be empty")
)

// Template describes a window to create.
type Template struct {
	Title string
	Icon  string
	// Position is optional; nil places the window on the cascade.
	Position *window.Point
	// Size is optional; the zero value uses the host default.
	Size       window.Size
	Mode       window.Mode
	NoMinimize bool
	NoMaximize bool
	NoClose    bool
}

// Factory builds the template for id. It reports false for ids it does not
// know.
type Factory func(id string) (Template, bool)

// View pairs a window with its id.
type View struct {
	ID     string
	Window *window.Window
}

type entry struct {
	id       string
	instance string
	win      *window.Window
}

// Host owns the open windows of one screen.
type Host struct {
	opts       Options
	order      []string
	entries    map[string]*entry
	nextZIndex int
	viewport   window.Size
	captured   string
	sched      *Scheduler
	dispatch   Dispatch
	onRemove   func(id string)
	log        logging.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithOptions replaces the layout and stacking options.
func WithOptions(opts Options) Option {
	return func(h *Host) { h.opts = opts.normalized() }
}

// WithDispatch sets how fired tasks reach the event loop.
func WithDispatch(d Dispatch) Option {
	return func(h *Host) { h.dispatch = d }
}

// WithRemoveHook registers a function called after a window is removed.
func WithRemoveHook(fn func(id string)) Option {
	return func(h *Host) { h.onRemove = fn }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(h *Host) { h.log = l }
}

// New creates an empty host.
func New(opts ...Option) *Host {
	h := &Host{
		opts:    DefaultOptions(),
		entries: make(map[string]*entry),
		log:     logging.With("component", "host"),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.nextZIndex = h.opts.BaseZIndex
	h.sched = NewScheduler(h.dispatch)
	return h
}

// SetViewport records the size of the area windows live in.
func (h *Host) SetViewport(size window.Size) {
	h.viewport = size
}

// Viewport returns the current viewport size.
func (h *Host) Viewport() window.Size {
	return h.viewport
}

// NextZIndex returns the value the next open or focus will receive.
func (h *Host) NextZIndex() int {
	return h.nextZIndex
}

func (h *Host) allocZ() int {
	z := h.nextZIndex
	h.nextZIndex++
	return z
}

// Open creates the window for id, or focuses it if it is already open. It
// reports whether a new window was created.
func (h *Host) Open(id string, factory Factory) (*window.Window, bool, error) {
	if strings.TrimSpace(id) == "" {
		return nil, false, ErrEmptyID
	}
	if e, ok := h.entries[id]; ok {
		h.Focus(id)
		return e.win, false, nil
	}
	if factory == nil {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownWindow, id)
	}
	tmpl, ok := factory(id)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownWindow, id)
	}
	return h.create(id, tmpl)
}

func (h *Host) create(id string, tmpl Template) (*window.Window, bool, error) {
	size := tmpl.Size
	if size == (window.Size{}) {
		size = h.opts.DefaultSize
	}
	pos := h.cascadePosition()
	if tmpl.Position != nil {
		pos = *tmpl.Position
	}

	opts := []window.Option{
		window.WithIcon(tmpl.Icon),
		window.WithPosition(pos),
		window.WithSize(size),
		window.WithMode(tmpl.Mode),
		window.OnFocus(func() { h.Focus(id) }),
	}
	if !tmpl.NoClose {
		opts = append(opts, window.OnClose(func() { h.Close(id) }))
	}
	if tmpl.NoMinimize {
		opts = append(opts, window.WithoutMinimize())
	}
	if tmpl.NoMaximize {
		opts = append(opts, window.WithoutMaximize())
	}
	if h.opts.ClampDrag {
		opts = append(opts, window.WithClamp(h.clampTitleBar))
	}

	// allocate only once the window is known to be valid so a failed open
	// leaves the counter untouched
	w, err := window.New(tmpl.Title, h.nextZIndex, opts...)
	if err != nil {
		return nil, false, fmt.Errorf("open window %s: %w", id, err)
	}
	w.SetZIndex(h.allocZ())

	h.entries[id] = &entry{id: id, instance: uuid.NewString(), win: w}
	h.order = append(h.order, id)
	h.log.Debug("window opened", "id", id, "z", w.ZIndex(), "x", pos.X, "y", pos.Y)
	return w, true, nil
}

// cascadePosition offsets each new window from the previous one so windows
// never open exactly on top of each other.
func (h *Host) cascadePosition() window.Point {
	slot := len(h.order) % h.opts.CascadeWrap
	return window.Point{
		X: h.opts.CascadeOrigin.X + slot*h.opts.CascadeStep.X,
		Y: h.opts.CascadeOrigin.Y + slot*h.opts.CascadeStep.Y,
	}
}

// clampTitleBar keeps at least MinVisibleTitle cells of the title bar inside
// the viewport.
func (h *Host) clampTitleBar(pos window.Point, size window.Size) window.Point {
	if !h.viewport.Valid() {
		return pos
	}
	visible := min(h.opts.MinVisibleTitle, size.Width)
	pos.X = max(pos.X, visible-size.Width)
	pos.X = min(pos.X, h.viewport.Width-visible)
	pos.Y = max(pos.Y, 0)
	pos.Y = min(pos.Y, h.viewport.Height-1)
	return pos
}

// Focus raises id to the front. Unknown ids are ignored.
func (h *Host) Focus(id string) bool {
	e, ok := h.entries[id]
	if !ok {
		return false
	}
	e.win.SetZIndex(h.allocZ())
	return true
}

// FocusNext raises the window at the back of the stack, cycling through all
// windows on repeated calls.
func (h *Host) FocusNext() (string, bool) {
	stack := h.Stack()
	if len(stack) < 2 {
		return "", false
	}
	id := stack[0].ID
	h.Focus(id)
	return id, true
}

// Close removes id. Pending tasks for id are cancelled before the window is
// removed. Unknown ids are ignored.
func (h *Host) Close(id string) bool {
	if _, ok := h.entries[id]; !ok {
		return false
	}
	h.sched.Cancel(id)
	if h.captured == id {
		h.captured = ""
	}
	delete(h.entries, id)
	h.order = slices.DeleteFunc(h.order, func(s string) bool { return s == id })
	h.log.Debug("window closed", "id", id)
	if h.onRemove != nil {
		h.onRemove(id)
	}
	return true
}

// CloseAll closes every window in insertion order.
func (h *Host) CloseAll() {
	for _, id := range slices.Clone(h.order) {
		h.Close(id)
	}
}

// Get returns the window for id.
func (h *Host) Get(id string) (*window.Window, bool) {
	e, ok := h.entries[id]
	if !ok {
		return nil, false
	}
	return e.win, true
}

// Has reports whether id is open.
func (h *Host) Has(id string) bool {
	_, ok := h.entries[id]
	return ok
}

// Instance returns an identifier unique to this particular opening of id.
func (h *Host) Instance(id string) string {
	if e, ok := h.entries[id]; ok {
		return e.instance
	}
	return ""
}

// Len returns the number of open windows.
func (h *Host) Len() int {
	return len(h.order)
}

// IDs returns the open ids in insertion order.
func (h *Host) IDs() []string {
	return slices.Clone(h.order)
}

// Stack returns the open windows from back to front.
func (h *Host) Stack() []View {
	views := make([]View, 0, len(h.order))
	for _, id := range h.order {
		views = append(views, View{ID: id, Window: h.entries[id].win})
	}
	slices.SortFunc(views, func(a, b View) int {
		return a.Window.ZIndex() - b.Window.ZIndex()
	})
	return views
}

// Frontmost returns the id with the highest zIndex.
func (h *Host) Frontmost() (string, bool) {
	stack := h.Stack()
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1].ID, true
}

// Captured returns the id of the window holding the pointer.
func (h *Host) Captured() string {
	return h.captured
}

// WindowAt returns the topmost window containing p.
func (h *Host) WindowAt(p window.Point) (View, window.Region, bool) {
	stack := h.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		region := stack[i].Window.HitTest(p, h.viewport)
		if region != window.RegionNone {
			return stack[i], region, true
		}
	}
	return View{}, window.RegionNone, false
}

// PointerDown delivers a primary press to the topmost window under p. The
// window that starts dragging captures the pointer.
func (h *Host) PointerDown(p window.Point) (string, window.Region) {
	h.release()

	view, _, ok := h.WindowAt(p)
	if !ok {
		return "", window.RegionNone
	}
	region := view.Window.PointerDown(p, h.viewport)
	if h.Has(view.ID) && view.Window.Dragging() {
		h.captured = view.ID
	}
	return view.ID, region
}

// PointerMove routes motion to the captured window regardless of where the
// pointer is.
func (h *Host) PointerMove(p window.Point) bool {
	if h.captured == "" {
		return false
	}
	w, ok := h.Get(h.captured)
	if !ok {
		h.captured = ""
		return false
	}
	return w.PointerMove(p)
}

// PointerUp ends any drag.
func (h *Host) PointerUp() {
	h.release()
}

// PointerLeave ends any drag; it is used when the pointer leaves the host
// entirely.
func (h *Host) PointerLeave() {
	if h.captured == "" {
		return
	}
	if w, ok := h.Get(h.captured); ok {
		w.PointerLeave()
	}
	h.captured = ""
}

func (h *Host) release() {
	if h.captured == "" {
		return
	}
	if w, ok := h.Get(h.captured); ok {
		w.PointerUp()
	}
	h.captured = ""
}

// DoubleClick delivers a double click to the topmost window under p.
func (h *Host) DoubleClick(p window.Point) (string, window.Region) {
	h.release()

	view, _, ok := h.WindowAt(p)
	if !ok {
		return "", window.RegionNone
	}
	return view.ID, view.Window.DoubleClick(p, h.viewport)
}

// Schedule runs fn after delay on behalf of id. The task is cancelled when id
// closes, and scheduling again for id replaces the pending task.
func (h *Host) Schedule(id string, delay time.Duration, fn func()) error {
	if !h.Has(id) {
		return fmt.Errorf("%w: %s", ErrUnknownWindow, id)
	}
	h.sched.Schedule(id, delay, fn)
	return nil
}

// Pending reports whether id has a task waiting.
func (h *Host) Pending(id string) bool {
	return h.sched.Pending(id)
}

// Shutdown cancels all pending tasks.
func (h *Host) Shutdown() {
	h.sched.Stop()
}
