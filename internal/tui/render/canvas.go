package render

import (
	"strings"

	"github.com/cristianoliveira/retrodesk/internal/window"
	"github.com/mattn/go-runewidth"
)

type cell struct {
	ch    rune
	style Style
	// cont marks the right half of a double-width rune.
	cont bool
}

// Canvas is a fixed grid of terminal cells. Writes outside the grid are
// clipped, so windows may hang off any edge.
type Canvas struct {
	width  int
	height int
	cells  []cell
}

// NewCanvas returns a canvas filled with spaces in the given style.
func NewCanvas(width, height int, bg Style) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', style: bg}
	}
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *Canvas) at(x, y int) *cell {
	return &c.cells[y*c.width+x]
}

// blank replaces the cell at (x, y) with a space, keeping its style.
func (c *Canvas) blank(x, y int) {
	if c.in(x, y) {
		cl := c.at(x, y)
		cl.ch, cl.cont = ' ', false
	}
}

// Set writes r at (x, y) and returns how many columns it takes. Wide runes
// that do not fit at the right edge become a space. Overwriting half of an
// existing wide rune blanks its other half.
func (c *Canvas) Set(x, y int, r rune, style Style) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	if !c.in(x, y) {
		return w
	}
	if c.at(x, y).cont {
		c.blank(x-1, y)
	}
	if w == 2 && x+1 >= c.width {
		r, w = ' ', 1
	}
	if nx := x + w; c.in(nx, y) && c.at(nx, y).cont {
		c.blank(nx, y)
	}
	*c.at(x, y) = cell{ch: r, style: style}
	if w == 2 {
		*c.at(x+1, y) = cell{style: style, cont: true}
	}
	return w
}

// Text writes s starting at (x, y) using at most maxWidth columns and returns
// the columns used. A negative maxWidth means no limit.
func (c *Canvas) Text(x, y int, s string, maxWidth int, style Style) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if maxWidth >= 0 && used+w > maxWidth {
			break
		}
		c.Set(x+used, y, r, style)
		used += w
	}
	return used
}

// Fill paints every cell of rect with r.
func (c *Canvas) Fill(rect window.Rect, r rune, style Style) {
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		for x := rect.X; x < rect.X+rect.Width; x++ {
			c.Set(x, y, r, style)
		}
	}
}

// Restyle changes the style of every cell in rect without touching content.
func (c *Canvas) Restyle(rect window.Rect, style Style) {
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		for x := rect.X; x < rect.X+rect.Width; x++ {
			if c.in(x, y) {
				c.at(x, y).style = style
			}
		}
	}
}

// StyleAt returns the style at (x, y).
func (c *Canvas) StyleAt(x, y int) Style {
	if !c.in(x, y) {
		return StyleDesktop
	}
	return c.at(x, y).style
}

// Line returns row y as plain text.
func (c *Canvas) Line(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < c.width; x++ {
		if cl := c.at(x, y); !cl.cont {
			b.WriteRune(cl.ch)
		}
	}
	return b.String()
}

// Plain returns the canvas as unstyled text, one line per row.
func (c *Canvas) Plain() string {
	lines := make([]string, c.height)
	for y := range lines {
		lines[y] = c.Line(y)
	}
	return strings.Join(lines, "\n")
}

// Render returns the canvas styled with theme. Runs of cells sharing a
// style are rendered together.
func (c *Canvas) Render(theme Theme) string {
	if c.width == 0 {
		return strings.Repeat("\n", max(c.height-1, 0))
	}
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		run.Reset()
		current := c.at(0, y).style
		for x := 0; x < c.width; x++ {
			cl := c.at(x, y)
			if cl.cont {
				continue
			}
			if cl.style != current {
				out.WriteString(theme.Get(current).Render(run.String()))
				run.Reset()
				current = cl.style
			}
			run.WriteRune(cl.ch)
		}
		out.WriteString(theme.Get(current).Render(run.String()))
	}
	return out.String()
}

// Blit copies src onto c with its top-left corner at (x, y).
func (c *Canvas) Blit(src *Canvas, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		for sx := 0; sx < src.width; sx++ {
			if c.in(x+sx, y+sy) {
				*c.at(x+sx, y+sy) = *src.at(sx, sy)
			}
		}
	}
}
