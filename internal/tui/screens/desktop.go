package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/cristianoliveira/retrodesk/internal/tui/render"
	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/dustin/go-humanize"
)

// Desktop window ids.
const (
	MyComputerID = "mycomputer"
	RecycleBinID = "recyclebin"
	NotepadID    = "notepad"
	HelpID       = "help"
)

type drive struct {
	letter string
	label  string
	total  uint64
	free   uint64
}

var drives = []drive{
	{letter: "A:", label: "3½ Floppy", total: 1474560, free: 737280},
	{letter: "C:", label: "Local Disk", total: 120 << 30, free: 38 << 30},
	{letter: "D:", label: "CD-ROM"},
}

type trashItem struct {
	name    string
	size    uint64
	deleted time.Duration
}

var trash = []trashItem{
	{name: "curriculo_antigo.doc", size: 48 << 10, deleted: 3 * time.Hour},
	{name: "orkut_backup.zip", size: 2200 << 10, deleted: 72 * time.Hour},
	{name: "emoticons_msn.zip", size: 640 << 10, deleted: 21 * 24 * time.Hour},
}

// Desktop is the dashboard screen: classic desktop icons, each opening one
// window.
type Desktop struct {
	base
	now   func() time.Time
	notes []string
	input textinput.Model
}

// NewDesktop creates the desktop screen.
func NewDesktop(opts Options) *Desktop {
	opts = opts.withDefaults()
	d := &Desktop{now: opts.Now, input: newInput("Type and press enter")}
	help := opts.Help
	d.base = base{
		name:  NameDesktop,
		order: []string{MyComputerID, RecycleBinID, NotepadID, HelpID},
		windows: map[string]static{
			MyComputerID: {
				tmpl:  host.Template{Title: "My Computer", Icon: "C", Position: at(2, 1), Size: window.Size{Width: 44, Height: 8}},
				label: "My Computer",
				lines: func(int) []render.ContentLine { return d.driveLines() },
			},
			RecycleBinID: {
				tmpl:  host.Template{Title: "Recycle Bin", Icon: "R", Position: at(24, 9), Size: window.Size{Width: 50, Height: 7}},
				label: "Recycle Bin",
				lines: func(int) []render.ContentLine { return d.trashLines() },
			},
			NotepadID: {
				tmpl:  host.Template{Title: "Notepad", Icon: "N", Size: window.Size{Width: 40, Height: 10}},
				label: "Notepad",
			},
			HelpID: {
				tmpl:  host.Template{Title: "Help", Icon: "?", Size: window.Size{Width: 44, Height: 14}, NoMinimize: true},
				label: "Help",
				lines: func(width int) []render.ContentLine {
					lines := paragraph("Drag a title bar to move a window. Double click it to maximize.", width)
					lines = append(lines, render.ContentLine{})
					return append(lines, text(help...)...)
				},
			},
		},
	}
	return d
}

func (d *Desktop) Startup() []string { return []string{MyComputerID, RecycleBinID} }

func (d *Desktop) driveLines() []render.ContentLine {
	lines := make([]render.ContentLine, 0, len(drives))
	for _, dr := range drives {
		if dr.total == 0 {
			lines = append(lines, muted(fmt.Sprintf("%s %-10s  no disc", dr.letter, dr.label)))
			continue
		}
		lines = append(lines, render.ContentLine{Text: fmt.Sprintf("%s %-10s  %s free of %s",
			dr.letter, dr.label, humanize.IBytes(dr.free), humanize.IBytes(dr.total))})
	}
	return lines
}

func (d *Desktop) trashLines() []render.ContentLine {
	now := d.now()
	lines := make([]render.ContentLine, 0, len(trash)+1)
	var total uint64
	for _, item := range trash {
		total += item.size
		lines = append(lines, render.ContentLine{Text: fmt.Sprintf("%-20s %8s  %s",
			item.name, humanize.IBytes(item.size), humanize.RelTime(now.Add(-item.deleted), now, "ago", "from now"))})
	}
	lines = append(lines, muted(fmt.Sprintf("%d items, %s", len(trash), humanize.IBytes(total))))
	return lines
}

func (d *Desktop) Content(id string, inner window.Size) []render.ContentLine {
	if id != NotepadID {
		return d.base.Content(id, inner)
	}
	var lines []render.ContentLine
	for _, n := range d.notes {
		lines = append(lines, paragraph(n, inner.Width)...)
	}
	if room := inner.Height - 1; len(lines) > room {
		lines = lines[len(lines)-max(room, 0):]
	}
	return append(lines, inputLine(d.input, inner.Width))
}

func (d *Desktop) HandleKey(id string, msg tea.KeyMsg) (bool, tea.Cmd) {
	if id != NotepadID {
		return false, nil
	}
	if msg.Type == tea.KeyEnter {
		if line := strings.TrimSpace(d.input.Value()); line != "" {
			d.notes = append(d.notes, line)
		}
		d.input.Reset()
		return true, nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return true, cmd
}

// Closed discards the notepad's text; a reopened notepad starts empty.
func (d *Desktop) Closed(id string) {
	if id == NotepadID {
		d.notes = nil
		d.input.Reset()
	}
}
