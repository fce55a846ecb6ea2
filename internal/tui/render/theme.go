// Package render draws the desktop: a cell canvas with windows composited
// back to front, plus the status bar and dock around it.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/retrodesk/internal/colors"
	"github.com/cristianoliveira/retrodesk/internal/errors"
)

// Style names a role on screen. The Theme maps roles to lipgloss styles.
type Style int

const (
	StyleDesktop Style = iota
	StyleFrame
	StyleFrameFocused
	StyleTitle
	StyleTitleFocused
	StyleButton
	StyleButtonFocused
	StyleContent
	StyleContentMuted
	StyleStatus
	StyleStatusError
	StyleStatusWarning
	StyleStatusInfo
	StyleStatusSuccess
	StyleDock
	StyleDockItem
	StyleDockItemOpen
	StyleDockItemActive
	StyleHelp
)

// Theme maps every Style to how it is drawn.
type Theme map[Style]lipgloss.Style

// Get returns the style for s, or a plain style when the theme has none.
func (t Theme) Get(s Style) lipgloss.Style {
	if st, ok := t[s]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// DefaultTheme is a teal desktop with navy title bars.
func DefaultTheme() Theme {
	teal := lipgloss.Color("30")
	navy := lipgloss.Color("18")
	gray := lipgloss.Color("250")
	dark := lipgloss.Color("240")
	white := lipgloss.Color("15")
	black := lipgloss.Color("0")

	return Theme{
		StyleDesktop:        lipgloss.NewStyle().Background(teal),
		StyleFrame:          lipgloss.NewStyle().Foreground(dark).Background(gray),
		StyleFrameFocused:   lipgloss.NewStyle().Foreground(black).Background(gray),
		StyleTitle:          lipgloss.NewStyle().Foreground(gray).Background(dark),
		StyleTitleFocused:   lipgloss.NewStyle().Bold(true).Foreground(white).Background(navy),
		StyleButton:         lipgloss.NewStyle().Foreground(black).Background(gray),
		StyleButtonFocused:  lipgloss.NewStyle().Bold(true).Foreground(black).Background(gray),
		StyleContent:        lipgloss.NewStyle().Foreground(black).Background(white),
		StyleContentMuted:   lipgloss.NewStyle().Foreground(dark).Background(white),
		StyleStatus:         lipgloss.NewStyle().Foreground(white).Background(navy),
		StyleStatusError:    lipgloss.NewStyle().Bold(true).Foreground(ansiColor(colors.Red)).Background(navy),
		StyleStatusWarning:  lipgloss.NewStyle().Foreground(ansiColor(colors.Yellow)).Background(navy),
		StyleStatusInfo:     lipgloss.NewStyle().Foreground(ansiColor(colors.Cyan)).Background(navy),
		StyleStatusSuccess:  lipgloss.NewStyle().Foreground(ansiColor(colors.Green)).Background(navy),
		StyleDock:           lipgloss.NewStyle().Foreground(black).Background(gray),
		StyleDockItem:       lipgloss.NewStyle().Foreground(black).Background(gray),
		StyleDockItemOpen:   lipgloss.NewStyle().Bold(true).Foreground(black).Background(gray),
		StyleDockItemActive: lipgloss.NewStyle().Bold(true).Foreground(white).Background(navy),
		StyleHelp:           lipgloss.NewStyle().Foreground(dark).Background(gray),
	}
}

// ansiColor turns one of the colors package escape sequences (e.g. "\033[0;31m")
// into the matching basic palette index for lipgloss.
func ansiColor(seq string) lipgloss.Color {
	seq = strings.TrimSuffix(strings.TrimPrefix(seq, "\033["), "m")
	code := seq
	if i := strings.LastIndex(seq, ";"); i >= 0 {
		code = seq[i+1:]
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < 30 || n > 37 {
		return lipgloss.Color("")
	}
	return lipgloss.Color(strconv.Itoa(n - 30))
}

// StatusStyle picks the status bar style for a message type.
func StatusStyle(t errors.MessageType) Style {
	switch t {
	case errors.MessageTypeError:
		return StyleStatusError
	case errors.MessageTypeWarning:
		return StyleStatusWarning
	case errors.MessageTypeSuccess:
		return StyleStatusSuccess
	default:
		return StyleStatusInfo
	}
}
