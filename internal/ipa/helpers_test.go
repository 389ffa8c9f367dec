package ipa

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/flate"
	"howett.net/plist"

	"github.com/AppleEcosystem/ipa-metadata/internal/pngfix"
)

type zipEntry struct {
	Name string
	Data []byte
}

func writeIPA(t testing.TB, dir, name string, entries ...zipEntry) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("zip create %s: %v", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			t.Fatalf("zip write %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func marshalPlist(t testing.TB, v interface{}, format int) []byte {
	t.Helper()
	data, err := plist.Marshal(v, format)
	if err != nil {
		t.Fatalf("plist.Marshal: %v", err)
	}
	return data
}

func samplePlist(t testing.TB) []byte {
	return marshalPlist(t, map[string]interface{}{
		"CFBundleName":               "Sample",
		"CFBundleShortVersionString": "2.4.1",
		"CFBundleVersion":            "241",
		"CFBundleIdentifier":         "com.example.sample",
		"CFBundleIcons": map[string]interface{}{
			"CFBundlePrimaryIcon": map[string]interface{}{
				"CFBundleIconFiles": []interface{}{"AppIcon60x60"},
			},
		},
	}, plist.XMLFormat)
}

// cgbiIcon encodes a w x h CgBI PNG whose every pixel is the given RGBA.
// The file grows with w*h.
func cgbiIcon(t testing.TB, w, h int, rgba [4]byte) []byte {
	t.Helper()
	raw := make([]byte, 0, h*(1+w*4))
	for y := 0; y < h; y++ {
		raw = append(raw, 0)
		for x := 0; x < w; x++ {
			raw = append(raw, rgba[2], rgba[1], rgba[0], rgba[3])
		}
	}
	var compressed bytes.Buffer
	fw, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("flate writer: %v", err)
	}
	fw.Write(raw)
	fw.Close()

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(h))
	ihdr[8], ihdr[9] = 8, 6

	var out bytes.Buffer
	out.WriteString("\x89PNG\r\n\x1a\n")
	pngfix.WriteChunk(&out, "CgBI", []byte{0x50, 0x00, 0x20, 0x06})
	pngfix.WriteChunk(&out, "IHDR", ihdr)
	// Flat colors compress to almost nothing; pad so file size tracks w*h.
	pngfix.WriteChunk(&out, "tEXt", append([]byte("Comment\x00"), bytes.Repeat([]byte{'x'}, w*h)...))
	pngfix.WriteChunk(&out, "IDAT", compressed.Bytes())
	pngfix.WriteChunk(&out, "IEND", nil)
	return out.Bytes()
}
