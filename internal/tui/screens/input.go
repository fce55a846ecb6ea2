package screens

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/cristianoliveira/retrodesk/internal/tui/render"
	"github.com/mattn/go-runewidth"
)

const inputCharLimit = 280

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = inputCharLimit
	in.Focus()
	return in
}

// inputLine renders an input as a single content line. Long drafts keep
// their end visible.
func inputLine(in textinput.Model, width int) render.ContentLine {
	if in.Value() == "" {
		return muted("> " + in.Placeholder)
	}
	line := "> " + in.Value() + "_"
	if over := runewidth.StringWidth(line) - width; over > 0 {
		line = runewidth.TruncateLeft(line, over+1, "…")
	}
	return render.ContentLine{Text: line}
}
