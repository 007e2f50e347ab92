package render

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

// ColorIndex selects an entry of the overlay palette.
type ColorIndex uint8

const (
	Transparent ColorIndex = iota
	White
	Black
)

func (c ColorIndex) String() string {
	switch c {
	case Transparent:
		return "transparent"
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("index(%d)", uint8(c))
}

// overlay palette in YUVA, as handed to the compositor
var palette = [...]color.NYCbCrA{
	Transparent: {YCbCr: color.YCbCr{Y: 0xff, Cb: 0x80, Cr: 0x80}, A: 0x00},
	White:       {YCbCr: color.YCbCr{Y: 0xff, Cb: 0x80, Cr: 0x80}, A: 0xff},
	Black:       {YCbCr: color.YCbCr{Y: 0x00, Cb: 0x80, Cr: 0x80}, A: 0xff},
}

// Palette returns a fresh copy of the 3-entry overlay palette.
func Palette() color.Palette {
	p := make(color.Palette, len(palette))
	for i, c := range palette {
		p[i] = c
	}
	return p
}

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// WritePaletteRIFF writes p as a Microsoft RIFF PAL file. PAL entries carry no
// alpha, so the flags byte holds the entry's alpha instead.
func WritePaletteRIFF(w io.Writer, p color.Palette) error {
	chunkSize := 4 + len(p)*4
	buf := make([]byte, 0, 12+8+chunkSize)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+chunkSize))
	buf = append(buf, palType[:]...)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(chunkSize))
	buf = binary.LittleEndian.AppendUint16(buf, 0x0300)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(p)))
	for _, c := range p {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		buf = append(buf, n.R, n.G, n.B, n.A)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("could not write palette: %w", err)
	}
	return nil
}

// ReadPaletteRIFF reads the first data chunk of a RIFF PAL file written by
// WritePaletteRIFF.
func ReadPaletteRIFF(r io.Reader) (color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	}
	if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}
	for {
		id, _, data, err := rd.Next()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("no palette data chunk")
			}
			return nil, fmt.Errorf("could not read chunk: %w", err)
		}
		if id != dataType {
			continue
		}
		return readPaletteChunk(data)
	}
}

func readPaletteChunk(r io.Reader) (color.Palette, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read palette header: %w", err)
	}
	if ver := binary.LittleEndian.Uint16(hdr[:2]); ver != 0x0300 {
		return nil, fmt.Errorf("unsupported palette version: %#x", ver)
	}
	count := int(binary.LittleEndian.Uint16(hdr[2:]))
	p := make(color.Palette, count)
	var entry [4]byte
	for i := range count {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return p[:i], fmt.Errorf("could not read color %d/%d: %w", i, count, err)
		}
		p[i] = color.NRGBA{R: entry[0], G: entry[1], B: entry[2], A: entry[3]}
	}
	return p, nil
}
