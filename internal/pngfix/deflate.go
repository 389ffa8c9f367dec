package pngfix

import (
	"bytes"

	"github.com/klauspost/compress/zlib"
)

// deflateZlib wraps raw in a standard zlib stream. Speed wins over ratio.
func deflateZlib(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(raw) / 2)

	zw, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, &Error{Kind: ErrCompression, Err: err}
	}
	if _, err := zw.Write(raw); err != nil {
		_ = zw.Close()
		return nil, &Error{Kind: ErrCompression, Err: err}
	}
	if err := zw.Close(); err != nil {
		return nil, &Error{Kind: ErrCompression, Err: err}
	}
	return buf.Bytes(), nil
}
