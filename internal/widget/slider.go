package widget

import (
	"image"

	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/render/layout"
	"github.com/rook-computer/osdkit/internal/video"
)

func (s Slider) Bounds(f video.Format) image.Rectangle {
	return layout.Slider(s.Orientation, f)
}

// Render draws the indicator bar and a border; a vertical slider also gets a
// tick on each side at half height. The position must already be clamped.
func (s Slider) Render(f video.Format, c render.ColorIndex) (*render.Region, error) {
	bounds := s.Bounds(f)
	r, err := render.NewRegion(bounds.Min.X, bounds.Min.Y, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	width, height := bounds.Dx(), bounds.Dy()

	x1, y1, x2, y2 := layout.SliderIndicator(s.Orientation, width, height, s.Position)
	r.DrawRect(render.Filled, x1, y1, x2, y2, c)
	if s.Orientation == Vertical {
		mid := height / 2
		r.DrawRect(render.Filled, 1, mid, 1, mid, c)
		r.DrawRect(render.Filled, width-2, mid, width-2, mid, c)
	}
	r.DrawRect(render.Outline, 0, 0, width-1, height-1, c)
	return r, nil
}
