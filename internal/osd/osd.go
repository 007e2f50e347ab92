// Package osd is the entry point used by the player to show sliders and
// status icons over the video.
package osd

import (
	"log/slog"
	"time"

	"github.com/rook-computer/osdkit/internal/spu"
	"github.com/rook-computer/osdkit/internal/widget"
)

// DefaultDuration is how long a widget stays on screen.
const DefaultDuration = 1200 * time.Millisecond

// Queue accepts subpictures for display.
type Queue interface {
	Put(sp *spu.Subpicture)
}

type Config struct {
	// Enabled gates every request; a disabled display queues nothing.
	Enabled  bool
	Duration time.Duration
}

func DefaultConfig() Config {
	return Config{Enabled: true, Duration: DefaultDuration}
}

// Display turns widget requests into timed, fading subpictures.
type Display struct {
	Queue  Queue
	Config Config
	Logger *slog.Logger

	// Now returns the current time; nil means time.Now.
	Now func() time.Time
}

func NewDisplay(q Queue, cfg Config) *Display {
	return &Display{Queue: q, Config: cfg}
}

// Slider shows a slider at position (clamped to 0..100) on channel.
func (d *Display) Slider(channel, position int, o widget.Orientation) {
	d.show(channel, widget.Slider{Orientation: o, Position: position})
}

// Icon shows a status icon on channel.
func (d *Display) Icon(channel int, g widget.Glyph) {
	d.show(channel, widget.Icon{Glyph: g})
}

func (d *Display) show(channel int, w widget.Widget) {
	ctrl := widget.NewController(w, widget.WithLogger(d.logger()))
	d.queue(channel, ctrl, d.Config.Duration, ctrl.Widget().String())
}

func (d *Display) queue(channel int, u spu.Updater, duration time.Duration, what string) {
	if d == nil || d.Queue == nil || !d.Config.Enabled {
		return
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	start := d.now()

	sp := spu.New(u)
	sp.Channel = channel
	sp.Start = start
	sp.Stop = start.Add(duration)
	sp.Ephemeral = true
	sp.Absolute = true
	sp.Fade = true

	d.Queue.Put(sp)
	d.logger().Debug("osd widget shown", "widget", what, "channel", channel)
}

func (d *Display) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Display) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}
