package pngfix

import (
	"bytes"
	"encoding/binary"
)

const (
	pngSignature = "\x89PNG\r\n\x1a\n"

	chunkIHDR = "IHDR"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"
	chunkCgBI = "CgBI"
)

// Chunk is one length-prefixed, CRC-trailered PNG record. Data aliases the
// buffer it was read from.
type Chunk struct {
	Type string
	Data []byte
}

// ChunkReader walks the chunk stream of a fully materialized PNG, starting
// right after the signature. Stored CRCs are skipped, never checked.
type ChunkReader struct {
	data      []byte
	off       int
	done      bool
	truncated bool
}

func NewChunkReader(data []byte) *ChunkReader {
	r := &ChunkReader{data: data, off: len(pngSignature)}
	if len(data) < len(pngSignature) {
		r.done = true
		r.truncated = true
	}
	return r
}

// Next returns the next chunk. It reports false once IEND has been returned
// or the remaining bytes cannot hold a complete chunk.
func (r *ChunkReader) Next() (Chunk, bool) {
	if r.done {
		return Chunk{}, false
	}
	rest := r.data[r.off:]
	if len(rest) == 0 {
		r.done = true
		return Chunk{}, false
	}
	// length(4) + type(4) + crc(4)
	if len(rest) < 12 {
		r.done = true
		r.truncated = true
		return Chunk{}, false
	}
	n := uint64(binary.BigEndian.Uint32(rest[0:4]))
	if n+12 > uint64(len(rest)) {
		r.done = true
		r.truncated = true
		return Chunk{}, false
	}
	c := Chunk{
		Type: string(rest[4:8]),
		Data: rest[8 : 8+n],
	}
	r.off += int(n) + 12
	if c.Type == chunkIEND {
		r.done = true
	}
	return c, true
}

// Truncated reports whether reading stopped on a chunk that did not fit in
// the buffer.
func (r *ChunkReader) Truncated() bool {
	return r.truncated
}

// WriteChunk appends a complete chunk to buf with a freshly computed CRC.
func WriteChunk(buf *bytes.Buffer, typ string, data []byte) {
	var word [4]byte
	binary.BigEndian.PutUint32(word[:], uint32(len(data)))
	buf.Write(word[:])
	buf.WriteString(typ)
	buf.Write(data)
	binary.BigEndian.PutUint32(word[:], CRC(typ, data))
	buf.Write(word[:])
}
