// Package screens defines the desktops retrodesk can show. A screen decides
// which windows exist and what they display; the host owns their geometry
// and stacking.
package screens

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/cristianoliveira/retrodesk/internal/tui/render"
	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/mattn/go-runewidth"
)

// Screen names.
const (
	NameChat    = "chat"
	NameDesktop = "desktop"
	NameProfile = "profile"
)

// ErrUnknownScreen indicates a screen name that does not exist.
var ErrUnknownScreen = errors.New("unknown screen")

// Names lists the available screens.
func Names() []string {
	return []string{NameChat, NameDesktop, NameProfile}
}

// Launcher is a dock entry that opens a window.
type Launcher struct {
	ID    string
	Icon  string
	Label string
}

// Screen is one desktop: the windows it can open and what they show.
type Screen interface {
	Name() string
	Launchers() []Launcher
	// Template is the host factory for this screen.
	Template(id string) (host.Template, bool)
	// Startup lists the windows opened when the screen starts empty.
	Startup() []string
	// Content returns the lines shown inside window id for an inner size.
	Content(id string, inner window.Size) []render.ContentLine
	// Select handles a click on a content line and returns a window to open.
	Select(id string, line int) (string, bool)
	// HandleKey offers a key press to window id.
	HandleKey(id string, msg tea.KeyMsg) (bool, tea.Cmd)
	// Attach gives the screen the host its windows live in.
	Attach(h *host.Host)
	// Closed releases per-window state after id is removed.
	Closed(id string)
}

// Options tunes screen behaviour.
type Options struct {
	ReplyMin time.Duration
	ReplyMax time.Duration
	// Intn returns a value in [0, n). Nil uses math/rand.
	Intn func(n int) int
	Now  func() time.Time
	// Help lines are shown by screens that have a help window.
	Help []string
}

func (o Options) withDefaults() Options {
	if o.ReplyMin <= 0 {
		o.ReplyMin = 1500 * time.Millisecond
	}
	if o.ReplyMax < o.ReplyMin {
		o.ReplyMax = o.ReplyMin
	}
	if o.Intn == nil {
		o.Intn = rand.IntN
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// New returns the screen called name.
func New(name string, opts Options) (Screen, error) {
	opts = opts.withDefaults()
	switch strings.ToLower(name) {
	case NameChat:
		return NewChat(opts), nil
	case NameDesktop:
		return NewDesktop(opts), nil
	case NameProfile:
		return NewProfile(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
}

// static is a window whose content never changes.
type static struct {
	tmpl  host.Template
	label string
	lines func(width int) []render.ContentLine
}

// base implements the parts of Screen shared by screens made of static
// windows.
type base struct {
	name    string
	order   []string
	windows map[string]static
	host    *host.Host
}

func (b *base) Name() string { return b.name }

func (b *base) Launchers() []Launcher {
	out := make([]Launcher, 0, len(b.order))
	for _, id := range b.order {
		w := b.windows[id]
		out = append(out, Launcher{ID: id, Icon: w.tmpl.Icon, Label: w.label})
	}
	return out
}

func (b *base) Template(id string) (host.Template, bool) {
	w, ok := b.windows[id]
	if !ok {
		return host.Template{}, false
	}
	return w.tmpl, true
}

func (b *base) Content(id string, inner window.Size) []render.ContentLine {
	w, ok := b.windows[id]
	if !ok || w.lines == nil {
		return nil
	}
	return w.lines(inner.Width)
}

func (b *base) Select(string, int) (string, bool)             { return "", false }
func (b *base) HandleKey(string, tea.KeyMsg) (bool, tea.Cmd) { return false, nil }
func (b *base) Attach(h *host.Host)                           { b.host = h }
func (b *base) Closed(string)                                 {}

func at(x, y int) *window.Point {
	return &window.Point{X: x, Y: y}
}

// wrap breaks s into lines no wider than width, splitting on spaces and
// hard-breaking words that are too long.
func wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	curWidth := 0
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}
	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		if curWidth > 0 && curWidth+1+ww > width {
			flush()
		}
		for ww > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				break
			}
			if curWidth > 0 {
				flush()
			}
			lines = append(lines, head)
			word = strings.TrimPrefix(word, head)
			ww = runewidth.StringWidth(word)
		}
		if ww == 0 {
			continue
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += ww
	}
	if curWidth > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func text(lines ...string) []render.ContentLine {
	return render.Lines(lines...)
}

func muted(s string) render.ContentLine {
	return render.ContentLine{Text: s, Muted: true}
}

func paragraph(s string, width int) []render.ContentLine {
	return render.Lines(wrap(s, width)...)
}
