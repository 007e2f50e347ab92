package render

import (
	"github.com/skip2/go-qrcode"
)

const defaultQRModulePx = 4

// QRRegion returns the payload as a QR code region placed at (x, y). Dark
// modules are Black on a White quiet zone, each module modulePx square.
// If payload is empty, it returns (nil, nil).
func QRRegion(payload string, x, y, modulePx int) (*Region, error) {
	if payload == "" {
		return nil, nil
	}
	if modulePx <= 0 {
		modulePx = defaultQRModulePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	bitmap := qrCode.Bitmap()
	size := len(bitmap) * modulePx
	region, err := NewRegion(x, y, size, size)
	if err != nil {
		return nil, err
	}
	region.DrawRect(Filled, 0, 0, size-1, size-1, White)
	for row, modules := range bitmap {
		for col, dark := range modules {
			if !dark {
				continue
			}
			x1, y1 := col*modulePx, row*modulePx
			region.DrawRect(Filled, x1, y1, x1+modulePx-1, y1+modulePx-1, Black)
		}
	}
	return region, nil
}
