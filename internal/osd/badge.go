package osd

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/render/layout"
	"github.com/rook-computer/osdkit/internal/spu"
	"github.com/rook-computer/osdkit/internal/video"
)

// BadgeDuration is how long the remote-control badge stays up at startup.
const BadgeDuration = 10 * time.Second

// badgeMargin is the gap to the bottom-left corner, relative to the larger
// visible side.
const badgeMargin = 0.03

// Badge shows payload as a QR code in the bottom-left corner for duration.
// An empty payload shows nothing.
func (d *Display) Badge(channel int, payload string, duration time.Duration) {
	if payload == "" {
		return
	}
	if duration <= 0 {
		duration = BadgeDuration
	}
	d.queue(channel, &badge{payload: payload, logger: d.logger()}, duration, "badge")
}

// badge is an Updater drawing a QR code sized to the display.
type badge struct {
	payload   string
	logger    *slog.Logger
	destroyed atomic.Bool
}

var _ spu.Updater = (*badge)(nil)

func (b *badge) Validate(srcChanged bool, src video.Format, dstChanged bool, dst video.Format, ts time.Time) spu.Decision {
	if !dstChanged {
		return spu.Reuse
	}
	return spu.Recompute
}

func (b *badge) Update(src, dst video.Format, ts time.Time) spu.Frame {
	if b.destroyed.Load() {
		return spu.Frame{}
	}
	f := dst.Normalize()
	frame := spu.Frame{OriginalWidth: f.VisibleWidth, OriginalHeight: f.VisibleHeight}

	larger := max(f.VisibleWidth, f.VisibleHeight)
	region, err := render.QRRegion(b.payload, 0, 0, max(larger/320, 1))
	if err != nil {
		b.logger.Debug("osd badge skipped", "format", f.String(), "error", err)
		return frame
	}
	margin := int(float64(larger) * badgeMargin)
	place := layout.AnchorBottomLeft(layout.Inset(f.Visible(), margin), region.Width(), region.Height())
	region.X, region.Y = place.Min.X, place.Min.Y
	frame.Region = region
	return frame
}

func (b *badge) Destroy() { b.destroyed.Store(true) }
