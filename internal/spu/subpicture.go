// Package spu composites timed subpicture overlays onto video frames.
//
// Producers hand the compositor a Subpicture that wraps an Updater. On every
// rendered frame the compositor asks the updater whether its region is still
// valid for the current display format, asks it to redraw when it is not, and
// blends the result with fading applied near the end of its lifetime.
package spu

import (
	"time"

	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/video"
)

// DefaultChannel is the channel shared by overlays that do not register one.
const DefaultChannel = 1

// Decision is returned by Updater.Validate.
type Decision int

const (
	// Reuse keeps the region from the last update.
	Reuse Decision = iota
	// Recompute requests a new Update before the next blend.
	Recompute
)

func (d Decision) String() string {
	if d == Recompute {
		return "recompute"
	}
	return "reuse"
}

// Frame is the product of an update. Region coordinates are expressed in an
// OriginalWidth x OriginalHeight picture; the compositor scales them onto the
// display. A nil Region draws nothing.
type Frame struct {
	Region         *render.Region
	OriginalWidth  int
	OriginalHeight int
}

// Updater produces the content of a subpicture on demand. The compositor
// calls Validate and Update from its render goroutine only, and calls Destroy
// exactly once when the subpicture leaves the compositor.
type Updater interface {
	Validate(srcChanged bool, src video.Format, dstChanged bool, dst video.Format, ts time.Time) Decision
	Update(src, dst video.Format, ts time.Time) Frame
	Destroy()
}

// Subpicture is one overlay queued on the compositor.
type Subpicture struct {
	Channel int
	Start   time.Time
	Stop    time.Time // zero means no expiry

	// Ephemeral subpictures are dropped as soon as a newer one is put on
	// the same channel.
	Ephemeral bool
	// Absolute regions already include the visible area offsets; relative
	// ones are shifted by them.
	Absolute bool
	// Fade lowers opacity over the last quarter of the lifetime.
	Fade bool

	updater Updater
	frame   Frame
	src     video.Format
	dst     video.Format
	updated bool
}

// New wraps u in a subpicture on the default channel.
func New(u Updater) *Subpicture {
	return &Subpicture{Channel: DefaultChannel, updater: u}
}

// Frame returns the result of the last update.
func (sp *Subpicture) Frame() Frame { return sp.frame }

func (sp *Subpicture) expired(now time.Time) bool {
	return !sp.Stop.IsZero() && !now.Before(sp.Stop)
}

func (sp *Subpicture) started(now time.Time) bool {
	return !now.Before(sp.Start)
}

func (sp *Subpicture) destroy() {
	if sp.updater != nil {
		sp.updater.Destroy()
		sp.updater = nil
	}
	sp.frame = Frame{}
}
