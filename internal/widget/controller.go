package widget

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/spu"
	"github.com/rook-computer/osdkit/internal/video"
)

// State is the lifecycle stage of a Controller.
type State int32

const (
	Created State = iota
	Active
	Destroyed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Active:
		return "active"
	case Destroyed:
		return "destroyed"
	}
	return "unknown"
}

// Controller binds one widget to a subpicture. It redraws the widget whenever
// the display geometry changes and is torn down exactly once.
type Controller struct {
	widget Widget
	state  atomic.Int32
	logger *slog.Logger
}

var _ spu.Updater = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for redraw diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController takes ownership of w. Slider positions are clamped to 0..100.
func NewController(w Widget, opts ...Option) *Controller {
	if s, ok := w.(Slider); ok {
		w = s.Clamp()
	}
	c := &Controller{widget: w, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Widget returns the widget drawn by the controller.
func (c *Controller) Widget() Widget { return c.widget }

// State returns the current lifecycle stage.
func (c *Controller) State() State { return State(c.state.Load()) }

// Validate keeps the current region unless the display geometry changed. The
// overlay lives in display space, so source changes never matter.
func (c *Controller) Validate(srcChanged bool, src video.Format, dstChanged bool, dst video.Format, ts time.Time) spu.Decision {
	if !dstChanged {
		return spu.Reuse
	}
	return spu.Recompute
}

// Update redraws the widget for dst. The returned region is owned by the
// caller; a nil region means the overlay is skipped for this frame.
func (c *Controller) Update(src, dst video.Format, ts time.Time) spu.Frame {
	if c.State() == Destroyed {
		return spu.Frame{}
	}
	c.state.CompareAndSwap(int32(Created), int32(Active))

	f := dst.Normalize()
	frame := spu.Frame{OriginalWidth: f.VisibleWidth, OriginalHeight: f.VisibleHeight}

	region, err := c.widget.Render(f, render.White)
	if err != nil {
		c.logger.Debug("osd widget skipped", "widget", c.widget.String(), "format", f.String(), "error", err)
		return frame
	}
	frame.Region = region
	return frame
}

// Destroy ends the lifecycle; later updates draw nothing. Only the first call
// has any effect.
func (c *Controller) Destroy() {
	if State(c.state.Swap(int32(Destroyed))) == Destroyed {
		c.logger.Debug("osd widget destroyed twice", "widget", c.widget.String())
	}
}
