package layout

import (
	"image"

	"github.com/rook-computer/osdkit/internal/video"
)

// Ratios relative to the larger side of the visible area.
const (
	SliderMargin          = 0.10
	SliderThickness       = 0.05  // horizontal slider height, relative to visible height
	VerticalSliderBreadth = 0.025 // vertical slider width, relative to visible width

	IconSize   float32 = 0.08
	IconMargin float32 = 0.07 // from the top-right corner

	// IconHighlightMargin is the black inset inside a glyph, relative to icon width.
	IconHighlightMargin = 0.03

	// below this many pixels an icon keeps its region but draws no glyph
	minIconDetail = 4
)

// SliderOrientation selects a horizontal (seek) or vertical (volume) bar.
type SliderOrientation int

const (
	Horizontal SliderOrientation = iota
	Vertical
)

func (o SliderOrientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func largerSide(f video.Format) int {
	return max(f.VisibleWidth, f.VisibleHeight)
}

// Slider returns the placement of a slider in display space for a square-pixel
// format.
func Slider(o SliderOrientation, f video.Format) image.Rectangle {
	margin := int(float64(largerSide(f)) * SliderMargin)

	var x, y, width, height int
	if o == Horizontal {
		width = max(f.VisibleWidth-2*margin, 1)
		height = max(int(float64(f.VisibleHeight)*SliderThickness), 1)
		x = min(f.XOffset+margin, f.VisibleWidth-width)
		y = max(f.YOffset+f.VisibleHeight-margin, 0)
	} else {
		width = max(int(float64(f.VisibleWidth)*VerticalSliderBreadth), 1)
		height = max(f.VisibleHeight-2*margin, 1)
		x = max(f.XOffset+f.VisibleWidth-margin, 0)
		y = min(f.YOffset+margin, f.VisibleHeight-height)
	}
	return image.Rect(x, y, x+width, y+height)
}

// SliderIndicator returns the inclusive corners of the filled bar inside a
// width x height slider at position 0..100, in region coordinates. The
// vertical bar grows up from the bottom and is empty at position 0.
func SliderIndicator(o SliderOrientation, width, height, position int) (x1, y1, x2, y2 int) {
	if o == Horizontal {
		pos := (width - 2) * position / 100
		return pos - 1, 2, pos + 1, height - 3
	}
	pos := height - (height-2)*position/100
	return 2, pos, width - 3, height - 3
}

// Icon returns the placement of a status icon anchored to the top-right corner
// of a square-pixel format.
func Icon(f video.Format) image.Rectangle {
	size := float32(largerSide(f))
	side := int(size * IconSize)
	x := int(float32(f.XOffset+f.VisibleWidth) - IconMargin*size - float32(side))
	y := int(float32(f.YOffset) + IconMargin*size)

	x = max(x, 0)
	y = min(y, f.VisibleHeight-side)
	return image.Rect(x, y, x+side, y+side)
}

// IconDetailed reports whether the display is large enough to draw glyphs.
func IconDetailed(f video.Format) bool {
	return largerSide(f) >= minIconDetail
}

// GlyphMetrics holds the shared measurements of the icon glyphs.
type GlyphMetrics struct {
	Width, Height int
	Mid           int // half height
	Delta         int // horizontal inset of the play and speaker shapes
	BarWidth      int // pause bar width
	Highlight     float64
}

// Glyph returns the glyph measurements for a width x height icon.
func Glyph(width, height int) GlyphMetrics {
	mid := height >> 1
	return GlyphMetrics{
		Width:     width,
		Height:    height,
		Mid:       mid,
		Delta:     (width - mid) >> 1,
		BarWidth:  width / 3,
		Highlight: float64(width) * IconHighlightMargin,
	}
}
