package widget

import (
	"image"

	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/render/layout"
	"github.com/rook-computer/osdkit/internal/video"
)

func (i Icon) Bounds(f video.Format) image.Rectangle {
	return layout.Icon(f)
}

// Render draws the glyph in c with a black inset highlight. On a display
// smaller than a few pixels the region is returned empty.
func (i Icon) Render(f video.Format, c render.ColorIndex) (*render.Region, error) {
	bounds := i.Bounds(f)
	r, err := render.NewRegion(bounds.Min.X, bounds.Min.Y, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	if !layout.IconDetailed(f) {
		return r, nil
	}

	g := layout.Glyph(bounds.Dx(), bounds.Dy())
	switch i.Glyph {
	case Pause:
		drawPause(r, g, c)
	case Play:
		drawPlay(r, g, c)
	default:
		// speaker and mute share one glyph
		drawSpeaker(r, g, c)
	}
	return r, nil
}

func drawPause(r *render.Region, g layout.GlyphMetrics, c render.ColorIndex) {
	left := [4]int{0, 0, g.BarWidth - 1, g.Height - 1}
	right := [4]int{g.Width - g.BarWidth, 0, g.Width - 1, g.Height - 1}

	for _, bar := range [][4]int{left, right} {
		r.DrawRect(render.Filled, bar[0], bar[1], bar[2], bar[3], c)
	}
	for _, bar := range [][4]int{left, right} {
		r.DrawRectInset(render.Filled, bar[0], bar[1], bar[2], bar[3], int(g.Highlight), render.Black)
	}
}

func drawPlay(r *render.Region, g layout.GlyphMetrics, c render.ColorIndex) {
	x1, x2, y2 := g.Delta, g.Width-g.Delta, g.Height-1

	r.DrawTriangle(render.Filled, render.Rightward, x1, 0, x2, y2, c)
	r.DrawTriangleInset(render.Filled, render.Rightward, x1, 0, x2, y2, g.Highlight, render.Black)
}

func drawSpeaker(r *render.Region, g layout.GlyphMetrics, c render.ColorIndex) {
	left, right, y2 := g.Delta, g.Width-g.Delta, g.Height-1
	top, bottom := g.Mid/2, g.Height-1-g.Mid/2

	r.DrawRect(render.Filled, left, top, right, bottom, c)
	r.DrawTriangle(render.Filled, render.Leftward, right, 0, left, y2, c)

	r.DrawRectInset(render.Filled, left, top, right, bottom, int(g.Highlight), render.Black)
	r.DrawTriangleInset(render.Filled, render.Leftward, right, 0, left, y2, g.Highlight, render.Black)
}
