package render

import "image/color"

// Global render configuration for colors and logical canvas.
var (
	Foreground = color.RGBA{R: 0xE8, G: 0xE8, B: 0xE8, A: 0xFF}
	Background = color.RGBA{R: 0x10, G: 0x18, B: 0x20, A: 0xFF}
	Accent     = color.RGBA{R: 0x3A, G: 0x7B, B: 0xD5, A: 0xFF}

	// Logical canvas size; scaled to framebuffer.
	CanvasWidth  = 1280
	CanvasHeight = 720

	// DefaultFontSize is the point size used when a TextStyle leaves it at 0.
	DefaultFontSize = 32
)
