package pngfix

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"testing"

	"github.com/klauspost/compress/flate"
)

func ihdrData(w, h uint32) []byte {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:4], w)
	binary.BigEndian.PutUint32(b[4:8], h)
	b[8] = 8 // bit depth
	b[9] = 6 // truecolor+alpha
	return b
}

func buildPNG(chunks ...Chunk) []byte {
	var buf bytes.Buffer
	buf.WriteString(pngSignature)
	for _, c := range chunks {
		WriteChunk(&buf, c.Type, c.Data)
	}
	return buf.Bytes()
}

func rawDeflate(t testing.TB, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		t.Fatalf("flate writer: %v", err)
	}
	if _, err := fw.Write(raw); err != nil {
		t.Fatalf("flate write: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("flate close: %v", err)
	}
	return buf.Bytes()
}

// cgbiPNG builds a CgBI file around raw (filter bytes included), splitting
// the compressed stream into idatParts chunks.
func cgbiPNG(t testing.TB, g Geometry, raw []byte, idatParts int) []byte {
	t.Helper()
	compressed := rawDeflate(t, raw)
	chunks := []Chunk{
		{Type: chunkCgBI, Data: []byte{0x50, 0x00, 0x20, 0x06}},
		{Type: chunkIHDR, Data: ihdrData(g.Width, g.Height)},
	}
	chunks = append(chunks, splitIDAT(compressed, idatParts)...)
	chunks = append(chunks, Chunk{Type: chunkIEND})
	return buildPNG(chunks...)
}

func splitIDAT(compressed []byte, parts int) []Chunk {
	if parts < 1 {
		parts = 1
	}
	step := (len(compressed) + parts - 1) / parts
	var out []Chunk
	for off := 0; off < len(compressed); off += step {
		end := min(off+step, len(compressed))
		out = append(out, Chunk{Type: chunkIDAT, Data: compressed[off:end]})
	}
	return out
}

type storedChunk struct {
	Type string
	Data []byte
	CRC  uint32
}

// walkChunks parses data independently of ChunkReader and keeps the stored
// CRCs.
func walkChunks(t testing.TB, data []byte) []storedChunk {
	t.Helper()
	if !bytes.HasPrefix(data, []byte(pngSignature)) {
		t.Fatalf("missing png signature")
	}
	var out []storedChunk
	off := len(pngSignature)
	for off+12 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[off : off+4]))
		if off+12+n > len(data) {
			t.Fatalf("chunk at %d overruns buffer", off)
		}
		out = append(out, storedChunk{
			Type: string(data[off+4 : off+8]),
			Data: data[off+8 : off+8+n],
			CRC:  binary.BigEndian.Uint32(data[off+8+n : off+12+n]),
		})
		off += 12 + n
	}
	if off != len(data) {
		t.Fatalf("%d trailing bytes", len(data)-off)
	}
	return out
}

func chunkTypes(chunks []storedChunk) []string {
	types := make([]string, 0, len(chunks))
	for _, c := range chunks {
		types = append(types, c.Type)
	}
	return types
}

func inflateZlib(t testing.TB, data []byte) []byte {
	t.Helper()
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("zlib reader: %v", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("zlib read: %v", err)
	}
	return raw
}
