// Package errors routes user-facing errors and notices to the right surface:
// the terminal for CLI commands and the status bar for the desktop.
package errors

import (
	"sync"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// Report sends err to h as an error message. Nil errors are ignored.
func Report(h ErrorHandler, err error) bool {
	if err == nil {
		return false
	}
	h.Error(err.Error())
	return true
}

// ColorOutput is the console printer used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler handles errors by printing to stdout/stderr using the colors package.
type CLIHandler struct {
	colors ColorOutput
	mu     sync.Mutex
	count  int
}

func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	h.count++
	h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.colors.Success(msg)
}

// ErrorCount returns how many errors were reported so far.
func (h *CLIHandler) ErrorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}
