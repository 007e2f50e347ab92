package render

import (
	"errors"
	"fmt"
	"image"
)

// MaxRegionPixels bounds a single overlay allocation.
const MaxRegionPixels = 4096 * 4096

// ErrAlloc is returned when a region buffer cannot be allocated. Callers skip
// the overlay for the frame; the error is never retried.
var ErrAlloc = errors.New("region allocation failed")

// Region is an indexed-colour overlay placed at (X, Y) in display space.
// The embedded image is anchored at the origin; Stride is the row pitch and
// every pixel is an index into Palette.
type Region struct {
	*image.Paletted
	X, Y int
}

// NewRegion allocates a fully transparent width x height region. Zero-sized
// regions are valid and simply contain no pixels.
func NewRegion(x, y, width, height int) (*Region, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrAlloc, width, height)
	}
	if width*height > MaxRegionPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAlloc, width, height, MaxRegionPixels)
	}
	// image.NewPaletted zeroes Pix, which is the transparent index.
	img := image.NewPaletted(image.Rect(0, 0, width, height), Palette())
	return &Region{Paletted: img, X: x, Y: y}, nil
}

// Width returns the region width in pixels.
func (r *Region) Width() int { return r.Rect.Dx() }

// Height returns the region height in pixels.
func (r *Region) Height() int { return r.Rect.Dy() }

// Placement returns the rectangle the region covers in display space.
func (r *Region) Placement() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width(), r.Y+r.Height())
}

// Index returns the palette index at (x, y), or Transparent outside the region.
func (r *Region) Index(x, y int) ColorIndex {
	if !(image.Point{X: x, Y: y}.In(r.Rect)) {
		return Transparent
	}
	return ColorIndex(r.Pix[y*r.Stride+x])
}

// Count returns how many pixels hold the given index.
func (r *Region) Count(c ColorIndex) int {
	n := 0
	for y := 0; y < r.Height(); y++ {
		row := r.Pix[y*r.Stride : y*r.Stride+r.Width()]
		for _, p := range row {
			if ColorIndex(p) == c {
				n++
			}
		}
	}
	return n
}

// set writes one pixel; anything outside the region is dropped.
func (r *Region) set(x, y int, c ColorIndex) {
	if x < 0 || y < 0 || x >= r.Rect.Max.X || y >= r.Rect.Max.Y {
		return
	}
	r.Pix[y*r.Stride+x] = uint8(c)
}
