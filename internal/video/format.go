package video

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Format describes the geometry of a video frame as seen by the display.
// Offsets position the visible area inside the (possibly padded) frame.
type Format struct {
	Width  int
	Height int

	VisibleWidth  int
	VisibleHeight int
	XOffset       int
	YOffset       int

	// Sample aspect ratio. Zero or negative terms are treated as 1.
	SARNum int
	SARDen int
}

// NewFormat returns a square-pixel format whose visible area covers the frame.
func NewFormat(width, height int) Format {
	return Format{
		Width:         width,
		Height:        height,
		VisibleWidth:  width,
		VisibleHeight: height,
		SARNum:        1,
		SARDen:        1,
	}
}

// SAR returns the sample aspect ratio with non-positive terms replaced by 1.
func (f Format) SAR() (num, den int) {
	num, den = f.SARNum, f.SARDen
	if num <= 0 {
		num = 1
	}
	if den <= 0 {
		den = 1
	}
	return num, den
}

// Normalize rescales the horizontal geometry into square-pixel space and
// resets the sample aspect ratio to 1:1. Heights are never touched.
func (f Format) Normalize() Format {
	num, den := f.SAR()
	out := f
	out.Width = f.Width * num / den
	out.VisibleWidth = f.VisibleWidth * num / den
	out.XOffset = f.XOffset * num / den
	out.SARNum = 1
	out.SARDen = 1
	return out
}

// Visible returns the visible area in frame coordinates.
func (f Format) Visible() image.Rectangle {
	return image.Rect(f.XOffset, f.YOffset, f.XOffset+f.VisibleWidth, f.YOffset+f.VisibleHeight)
}

func (f Format) String() string {
	num, den := f.SAR()
	return fmt.Sprintf("%dx%d+%d+%d (frame %dx%d, sar %d:%d)",
		f.VisibleWidth, f.VisibleHeight, f.XOffset, f.YOffset, f.Width, f.Height, num, den)
}

// ParseFormat parses "WxH" or "WxH@num:den" into a format whose visible area
// covers the whole frame.
func ParseFormat(s string) (Format, error) {
	dims, sar, hasSAR := strings.Cut(strings.TrimSpace(s), "@")
	ws, hs, ok := strings.Cut(dims, "x")
	if !ok {
		return Format{}, fmt.Errorf("invalid format %q, want WxH or WxH@num:den", s)
	}
	w, werr := strconv.Atoi(ws)
	h, herr := strconv.Atoi(hs)
	if werr != nil || herr != nil || w <= 0 || h <= 0 {
		return Format{}, fmt.Errorf("invalid format %q: dimensions must be positive integers", s)
	}
	f := NewFormat(w, h)
	if !hasSAR {
		return f, nil
	}
	num, den, err := ParseSAR(sar)
	if err != nil {
		return Format{}, fmt.Errorf("invalid format %q: %w", s, err)
	}
	f.SARNum, f.SARDen = num, den
	return f, nil
}

// ParseSAR parses a sample aspect ratio written as "num:den".
func ParseSAR(s string) (num, den int, err error) {
	ns, ds, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q, want num:den", s)
	}
	num, nerr := strconv.Atoi(ns)
	den, derr := strconv.Atoi(ds)
	if nerr != nil || derr != nil || num <= 0 || den <= 0 {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q: terms must be positive integers", s)
	}
	return num, den, nil
}
