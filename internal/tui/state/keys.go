package state

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/mattn/go-runewidth"
)

const maxLaunchers = 9

type keyMap struct {
	FocusNext key.Binding
	Close     key.Binding
	Minimize  key.Binding
	Maximize  key.Binding
	Launch    key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	launch := make([]string, 0, maxLaunchers)
	for i := 1; i <= maxLaunchers; i++ {
		launch = append(launch, "alt+"+strconv.Itoa(i))
	}
	return keyMap{
		FocusNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next window")),
		Close:     key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "close")),
		Minimize:  key.NewBinding(key.WithKeys("alt+m"), key.WithHelp("alt+m", "minimize")),
		Maximize:  key.NewBinding(key.WithKeys("alt+x"), key.WithHelp("alt+x", "maximize")),
		Launch:    key.NewBinding(key.WithKeys(launch...), key.WithHelp("alt+1..9", "open")),
		MoveUp:    key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑", "move up")),
		MoveDown:  key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("alt+↓", "move down")),
		MoveLeft:  key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "move left")),
		MoveRight: key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "move right")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

// ShortHelp is shown in the dock.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusNext, k.Launch, k.Close, k.Help, k.Quit}
}

// FullHelp is shown in the help window.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusNext, k.Launch, k.Close, k.Minimize, k.Maximize},
		{k.MoveUp, k.MoveDown, k.MoveLeft, k.MoveRight},
		{k.Save, k.Help, k.Quit},
	}
}

// helpLines lists every binding as "keys  description".
func (k keyMap) helpLines() []string {
	var lines []string
	for _, group := range k.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, runewidth.FillRight(h.Key, 10)+h.Desc)
		}
	}
	return lines
}

// launchIndex returns the zero-based launcher for an alt+N key.
func launchIndex(s string) (int, bool) {
	if len(s) != len("alt+1") {
		return 0, false
	}
	n, err := strconv.Atoi(s[len("alt+"):])
	if err != nil || n < 1 || n > maxLaunchers {
		return 0, false
	}
	return n - 1, true
}
