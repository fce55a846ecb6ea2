// Package deskconfig turns the loaded configuration into desktop settings.
package deskconfig

import (
	"time"

	"github.com/cristianoliveira/retrodesk/internal/config"
	"github.com/cristianoliveira/retrodesk/internal/host"
	"github.com/cristianoliveira/retrodesk/internal/window"
)

// Settings is everything the desktop needs from configuration.
type Settings struct {
	Host           host.Options
	Screen         string
	DoubleClick    time.Duration
	ReplyMin       time.Duration
	ReplyMax       time.Duration
	StatusClear    time.Duration
	SaveOnExit     bool
	RestoreSession bool
}

// Load returns desktop settings using current configuration values.
// config.Load must have been called.
func Load() Settings {
	def := host.DefaultOptions()
	return Settings{
		Host: host.Options{
			BaseZIndex: config.GetInt("base_z_index", def.BaseZIndex),
			DefaultSize: window.Size{
				Width:  config.GetInt("window_width", def.DefaultSize.Width),
				Height: config.GetInt("window_height", def.DefaultSize.Height),
			},
			CascadeOrigin: window.Point{
				X: config.GetInt("cascade_x", def.CascadeOrigin.X),
				Y: config.GetInt("cascade_y", def.CascadeOrigin.Y),
			},
			CascadeStep: window.Point{
				X: config.GetInt("cascade_step_x", def.CascadeStep.X),
				Y: config.GetInt("cascade_step_y", def.CascadeStep.Y),
			},
			CascadeWrap:     config.GetInt("cascade_wrap", def.CascadeWrap),
			ClampDrag:       config.GetBool("clamp_drag", false),
			MinVisibleTitle: config.GetInt("min_visible_title", def.MinVisibleTitle),
		},
		Screen:         config.Get("default_screen", "chat"),
		DoubleClick:    config.GetDuration("double_click", 350*time.Millisecond),
		ReplyMin:       config.GetDuration("reply_min", 1500*time.Millisecond),
		ReplyMax:       config.GetDuration("reply_max", 3500*time.Millisecond),
		StatusClear:    config.GetDuration("status_clear", 5*time.Second),
		SaveOnExit:     config.GetBool("save_on_exit", true),
		RestoreSession: config.GetBool("restore_session", false),
	}
}
