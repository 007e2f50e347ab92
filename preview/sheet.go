package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/osdkit/internal/assets"
	"github.com/rook-computer/osdkit/internal/render"
	"github.com/rook-computer/osdkit/internal/render/layout"
	"github.com/rook-computer/osdkit/internal/video"
	xdraw "golang.org/x/image/draw"
)

const (
	sheetColumns = 3
	thumbWidth   = 320
	cellPadding  = 8
	captionPt    = 14
	captionPx    = 24
)

// Mid grey keeps both the white glyphs and their black highlight visible.
var sheetBackground = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}

// contactSheet lays out one thumbnail per widget with its name underneath.
func contactSheet(f video.Format, results []rendered) (*image.RGBA, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("empty format %s", f)
	}
	ttf, err := truetype.Parse(assets.FontTTF)
	if err != nil {
		return nil, fmt.Errorf("could not parse caption font: %w", err)
	}

	thumbHeight := max(thumbWidth*f.Height/f.Width, 1)
	rows := (len(results) + sheetColumns - 1) / sheetColumns
	cellW := thumbWidth + 2*cellPadding
	cellH := thumbHeight + captionPx + 2*cellPadding
	sheet := image.NewRGBA(image.Rect(0, 0, sheetColumns*cellW, rows*cellH))
	draw.Draw(sheet, sheet.Bounds(), &image.Uniform{C: sheetBackground}, image.Point{}, draw.Src)

	fc := freetype.NewContext()
	fc.SetDPI(72)
	fc.SetFont(ttf)
	fc.SetFontSize(captionPt)
	fc.SetClip(sheet.Bounds())
	fc.SetDst(sheet)
	fc.SetSrc(image.NewUniform(render.Foreground))

	for i, res := range results {
		cell := layout.Inset(layout.Grid(sheet.Bounds(), sheetColumns, rows, i), cellPadding)
		thumbArea, captionArea := layout.SplitHorizontal(cell, thumbHeight)

		thumb := layout.AnchorTopLeft(thumbArea, thumbWidth, thumbHeight)
		draw.Draw(sheet, thumb, &image.Uniform{C: render.Background}, image.Point{}, draw.Src)
		if res.frame != nil {
			xdraw.CatmullRom.Scale(sheet, thumb, res.frame, res.frame.Bounds(), xdraw.Over, nil)
		}

		if res.widget == nil {
			continue
		}
		pt := freetype.Pt(captionArea.Min.X, captionArea.Min.Y+int(fc.PointToFixed(captionPt)>>6))
		if _, err := fc.DrawString(res.widget.String(), pt); err != nil {
			return nil, fmt.Errorf("could not draw caption: %w", err)
		}
	}
	return sheet, nil
}
