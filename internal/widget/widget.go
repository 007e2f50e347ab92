// Package widget draws the OSD sliders and status icons and adapts them to
// the subpicture update protocol.
package widget

import (
	"fmt"
	"image"

	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/render/layout"
	"github.com/rook-computer/osdkit/internal/video"
)

// Widget is either a Slider or an Icon.
type Widget interface {
	// Bounds returns the placement of the widget for a square-pixel format.
	Bounds(f video.Format) image.Rectangle
	// Render allocates and draws the widget region for a square-pixel format.
	Render(f video.Format, c render.ColorIndex) (*render.Region, error)

	fmt.Stringer
	sealed()
}

type Orientation = layout.SliderOrientation

const (
	Horizontal = layout.Horizontal
	Vertical   = layout.Vertical
)

// Glyph identifies a status icon.
type Glyph int

const (
	Play Glyph = iota
	Pause
	Speaker
	Mute
)

var glyphNames = [...]string{Play: "play", Pause: "pause", Speaker: "speaker", Mute: "mute"}

func (g Glyph) String() string {
	if g < 0 || int(g) >= len(glyphNames) {
		return fmt.Sprintf("glyph(%d)", int(g))
	}
	return glyphNames[g]
}

// ParseGlyph is the inverse of Glyph.String.
func ParseGlyph(s string) (Glyph, error) {
	for g, name := range glyphNames {
		if name == s {
			return Glyph(g), nil
		}
	}
	return 0, fmt.Errorf("unknown glyph %q", s)
}

// ParseOrientation accepts "horizontal" or "vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case Horizontal.String():
		return Horizontal, nil
	case Vertical.String():
		return Vertical, nil
	}
	return 0, fmt.Errorf("unknown slider orientation %q", s)
}

// Slider is a position bar. Position runs from 0 to 100.
type Slider struct {
	Orientation Orientation
	Position    int
}

// Icon is a status glyph in the top-right corner.
type Icon struct {
	Glyph Glyph
}

func (Slider) sealed() {}
func (Icon) sealed()   {}

func (s Slider) String() string {
	return fmt.Sprintf("%s slider at %d", s.Orientation, s.Position)
}

func (i Icon) String() string {
	return i.Glyph.String() + " icon"
}

// Clamp returns the slider with its position limited to 0..100.
func (s Slider) Clamp() Slider {
	s.Position = min(max(s.Position, 0), 100)
	return s
}

// All returns one widget of every kind, sliders at mid position.
func All() []Widget {
	return []Widget{
		Slider{Orientation: Horizontal, Position: 50},
		Slider{Orientation: Vertical, Position: 50},
		Icon{Glyph: Play},
		Icon{Glyph: Pause},
		Icon{Glyph: Speaker},
		Icon{Glyph: Mute},
	}
}
