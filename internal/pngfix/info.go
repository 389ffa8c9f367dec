package pngfix

import "encoding/binary"

// Geometry is the pixel size recorded in IHDR.
type Geometry struct {
	Width  uint32
	Height uint32
}

// RawSize is the inflated IDAT size of an 8-bit RGBA, non-interlaced image:
// one filter byte per scanline plus four bytes per pixel.
func (g Geometry) RawSize() uint64 {
	return uint64(g.Width)*uint64(g.Height)*4 + uint64(g.Height)
}

func (g Geometry) empty() bool {
	return g.Width == 0 || g.Height == 0
}

func parseGeometry(ihdr []byte) (Geometry, bool) {
	if len(ihdr) < 8 {
		return Geometry{}, false
	}
	return Geometry{
		Width:  binary.BigEndian.Uint32(ihdr[0:4]),
		Height: binary.BigEndian.Uint32(ihdr[4:8]),
	}, true
}

// Info describes the IHDR of a standard or CgBI PNG.
type Info struct {
	Width      int
	Height     int
	BitDepth   int
	ColorType  int
	ColorSpace string
	CgBI       bool
}

// ReadInfo finds IHDR among the leading chunks. Unlike a plain PNG, a CgBI
// file carries IHDR as its second chunk.
func ReadInfo(data []byte) (Info, bool) {
	if !hasSignature(data) {
		return Info{}, false
	}
	r := NewChunkReader(data)
	for {
		c, ok := r.Next()
		if !ok || c.Type == chunkIDAT {
			return Info{}, false
		}
		if c.Type != chunkIHDR {
			continue
		}
		if len(c.Data) < 13 {
			return Info{}, false
		}
		g, _ := parseGeometry(c.Data)
		colorType := c.Data[9]

		cs := ""
		switch colorType {
		case 0, 4: // grayscale / grayscale+alpha
			cs = "Y"
		case 2, 3, 6: // truecolor / indexed / truecolor+alpha
			cs = "RGB"
		}
		return Info{
			Width:      int(g.Width),
			Height:     int(g.Height),
			BitDepth:   int(c.Data[8]),
			ColorType:  int(colorType),
			ColorSpace: cs,
			CgBI:       IsCgBI(data),
		}, true
	}
}
