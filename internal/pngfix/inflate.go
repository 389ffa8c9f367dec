package pngfix

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/pkg/errors"
)

const (
	inflateReadSize = 8 << 10

	// MaxRawSize bounds the pixel buffer allocated for one image.
	MaxRawSize = 512 << 20
)

// inflateRaw decodes a headerless DEFLATE stream into a buffer of exactly
// size bytes and returns the prefix that was actually produced.
func inflateRaw(src []byte, size uint64) ([]byte, error) {
	if size > MaxRawSize {
		return nil, &Error{Kind: ErrDecompression, Err: errors.Errorf("raw size %d exceeds %d", size, MaxRawSize)}
	}
	dst := make([]byte, size)

	fr := flate.NewReader(bufio.NewReaderSize(bytes.NewReader(src), inflateReadSize))
	defer fr.Close()

	n := 0
	for n < len(dst) {
		end := min(n+inflateReadSize, len(dst))
		m, err := fr.Read(dst[n:end])
		n += m
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &Error{Kind: ErrDecompression, Err: err}
		}
		if m == 0 {
			// No progress and no error: treat as exhausted.
			break
		}
	}
	return dst[:n], nil
}
