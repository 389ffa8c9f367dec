// Package pngfix turns Apple CgBI PNGs back into standard PNGs.
//
// A CgBI file differs from a regular PNG in three ways: a CgBI chunk precedes
// IHDR, the IDAT stream is raw DEFLATE without the zlib header and Adler-32
// trailer, and pixels are stored as BGRA. Normalize undoes all three and
// recomputes every chunk CRC. All functions are pure and safe for concurrent
// use on distinct buffers.
package pngfix

import (
	"bytes"

	"github.com/pkg/errors"
)

// Normalize returns a standard PNG for a CgBI input and data itself for any
// other PNG. Inputs shorter than 20 bytes or without the PNG signature fail
// with ErrMalformedHeader.
//
// A chunk stream that ends mid-chunk is not an error: the chunks read so far
// are returned and the result may lack IEND.
func Normalize(data []byte) ([]byte, error) {
	if !hasSignature(data) {
		return nil, errors.WithStack(ErrMalformedHeader)
	}
	if !IsCgBI(data) {
		return data, nil
	}

	var out bytes.Buffer
	out.Grow(len(data) + len(data)/2)
	out.WriteString(pngSignature)

	var (
		geom Geometry
		idat []byte
	)
	r := NewChunkReader(data)
	for {
		c, ok := r.Next()
		if !ok {
			break
		}
		switch c.Type {
		case chunkIHDR:
			geom, _ = parseGeometry(c.Data)
			WriteChunk(&out, c.Type, c.Data)
		case chunkCgBI:
		case chunkIDAT:
			idat = append(idat, c.Data...)
		case chunkIEND:
			if len(idat) > 0 && !geom.empty() {
				rebuilt, err := rebuildIDAT(idat, geom)
				if err != nil {
					return nil, err
				}
				WriteChunk(&out, chunkIDAT, rebuilt)
			}
			WriteChunk(&out, chunkIEND, nil)
		default:
			WriteChunk(&out, c.Type, c.Data)
		}
	}
	return out.Bytes(), nil
}

func rebuildIDAT(compressed []byte, g Geometry) ([]byte, error) {
	raw, err := inflateRaw(compressed, g.RawSize())
	if err != nil {
		return nil, err
	}
	SwapRedBlue(raw, g)
	return deflateZlib(raw)
}
