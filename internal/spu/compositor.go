package spu

import (
	"image"
	"image/color"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/video"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	xdraw "golang.org/x/image/draw"
)

// Compositor owns queued subpictures and blends them onto frames. It is safe
// for concurrent use; updaters are only ever invoked from Render.
type Compositor struct {
	mu          sync.Mutex
	subpictures []*Subpicture
	nextChannel int

	logger *slog.Logger
	easing ease.TweenFunc
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEasing sets the curve used for fading out.
func WithEasing(fn ease.TweenFunc) Option {
	return func(c *Compositor) {
		if fn != nil {
			c.easing = fn
		}
	}
}

func NewCompositor(opts ...Option) *Compositor {
	c := &Compositor{
		nextChannel: DefaultChannel + 1,
		logger:      slog.New(slog.DiscardHandler),
		easing:      ease.Linear,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterChannel reserves a channel number for a producer.
func (c *Compositor) RegisterChannel() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := c.nextChannel
	c.nextChannel++
	return ch
}

// Put queues sp. Older ephemeral subpictures on the same channel are
// destroyed. Putting a subpicture that is already queued does nothing.
func (c *Compositor) Put(sp *Subpicture) {
	if sp == nil || sp.updater == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if slices.Contains(c.subpictures, sp) {
		return
	}
	kept := c.subpictures[:0]
	for _, old := range c.subpictures {
		if old.Channel == sp.Channel && old.Ephemeral {
			c.logger.Debug("subpicture superseded", "channel", old.Channel)
			old.destroy()
			continue
		}
		kept = append(kept, old)
	}
	c.subpictures = append(kept, sp)
	c.logger.Debug("subpicture queued", "channel", sp.Channel, "start", sp.Start, "stop", sp.Stop)
}

// Clear destroys every subpicture on channel.
func (c *Compositor) Clear(channel int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(func(sp *Subpicture) bool { return sp.Channel == channel })
}

// Close destroys every queued subpicture.
func (c *Compositor) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(func(*Subpicture) bool { return true })
}

// Len returns the number of queued subpictures, expired or not.
func (c *Compositor) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subpictures)
}

// Render updates the subpictures that are visible at now and blends them onto
// dst, which covers the frame described by dstFmt. Expired subpictures are
// destroyed. It returns the number of regions drawn.
func (c *Compositor) Render(dst xdraw.Image, src, dstFmt video.Format, now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(func(sp *Subpicture) bool {
		if sp.expired(now) {
			c.logger.Debug("subpicture expired", "channel", sp.Channel)
			return true
		}
		return false
	})

	drawn := 0
	for _, sp := range c.subpictures {
		if sp.updater == nil || !sp.started(now) {
			continue
		}
		c.update(sp, src, dstFmt, now)
		region := sp.frame.Region
		if region == nil || region.Width() == 0 || region.Height() == 0 {
			continue
		}
		alpha := c.fadeAlpha(sp, now)
		if alpha <= 0 {
			continue
		}
		c.blend(dst, sp, dstFmt, alpha)
		drawn++
	}
	return drawn
}

func (c *Compositor) update(sp *Subpicture, src, dst video.Format, now time.Time) {
	srcChanged := !sp.updated || sp.src != src
	dstChanged := !sp.updated || sp.dst != dst
	if sp.updated {
		decision := sp.updater.Validate(srcChanged, src, dstChanged, dst, now)
		if decision == Reuse {
			return
		}
	}
	sp.frame = sp.updater.Update(src, dst, now)
	sp.src, sp.dst = src, dst
	sp.updated = true
	if sp.frame.Region == nil {
		c.logger.Debug("subpicture update produced no region", "channel", sp.Channel, "format", dst.String())
	}
}

// fadeAlpha returns the opacity of sp at now, from 1 down to 0 over the last
// quarter of its lifetime.
func (c *Compositor) fadeAlpha(sp *Subpicture, now time.Time) float32 {
	if !sp.Fade || sp.Stop.IsZero() {
		return 1
	}
	fadeStart := sp.Start.Add(3 * sp.Stop.Sub(sp.Start) / 4)
	if now.Before(fadeStart) || !fadeStart.Before(sp.Stop) {
		return 1
	}
	tween := gween.New(1, 0, float32(sp.Stop.Sub(fadeStart).Seconds()), c.easing)
	alpha, _ := tween.Update(float32(now.Sub(fadeStart).Seconds()))
	return min(max(alpha, 0), 1)
}

// blend scales the indexed region from its original picture size onto the
// visible area of dst.
func (c *Compositor) blend(dst xdraw.Image, sp *Subpicture, f video.Format, alpha float32) {
	region := sp.frame.Region
	origW, origH := sp.frame.OriginalWidth, sp.frame.OriginalHeight
	if origW <= 0 {
		origW = f.VisibleWidth
	}
	if origH <= 0 {
		origH = f.VisibleHeight
	}
	if origW <= 0 || origH <= 0 {
		return
	}

	place := region.Placement()
	rect := image.Rect(
		place.Min.X*f.VisibleWidth/origW,
		place.Min.Y*f.VisibleHeight/origH,
		place.Max.X*f.VisibleWidth/origW,
		place.Max.Y*f.VisibleHeight/origH,
	)
	if !sp.Absolute {
		rect = rect.Add(image.Pt(f.XOffset, f.YOffset))
	}
	rect = rect.Add(dst.Bounds().Min)
	if rect.Empty() {
		return
	}

	xdraw.NearestNeighbor.Scale(dst, rect, expand(region, alpha), region.Rect, xdraw.Over, nil)
}

// expand converts an indexed region to NRGBA with the palette alpha scaled.
func expand(r *render.Region, alpha float32) *image.NRGBA {
	lut := make([]color.NRGBA, len(r.Palette))
	for i, pc := range r.Palette {
		n := color.NRGBAModel.Convert(pc).(color.NRGBA)
		n.A = uint8(float32(n.A) * alpha)
		lut[i] = n
	}
	out := image.NewNRGBA(r.Rect)
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			idx := int(r.Pix[y*r.Stride+x])
			if idx >= len(lut) {
				continue
			}
			n := lut[idx]
			o := out.PixOffset(x, y)
			out.Pix[o+0] = n.R
			out.Pix[o+1] = n.G
			out.Pix[o+2] = n.B
			out.Pix[o+3] = n.A
		}
	}
	return out
}

func (c *Compositor) removeLocked(drop func(*Subpicture) bool) {
	kept := c.subpictures[:0]
	for _, sp := range c.subpictures {
		if drop(sp) {
			sp.destroy()
			continue
		}
		kept = append(kept, sp)
	}
	for i := len(kept); i < len(c.subpictures); i++ {
		c.subpictures[i] = nil
	}
	c.subpictures = kept
}
