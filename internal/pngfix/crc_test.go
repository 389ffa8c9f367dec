package pngfix

import "testing"

// bitwiseCRC is the table-free reference: reflected 0xEDB88320, init and
// final xor 0xFFFFFFFF.
func bitwiseCRC(typ string, data []byte) uint32 {
	crc := uint32(0xFFFFFFFF)
	update := func(b byte) {
		crc ^= uint32(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ 0xEDB88320
			} else {
				crc >>= 1
			}
		}
	}
	for i := 0; i < len(typ); i++ {
		update(typ[i])
	}
	for _, b := range data {
		update(b)
	}
	return ^crc
}

func TestCRCKnownChunks(t *testing.T) {
	cases := []struct {
		typ  string
		data []byte
		want uint32
	}{
		{typ: "IHDR", data: ihdrData(1, 1), want: 0x1F15C489},
		{typ: "IEND", data: nil, want: 0xAE426082},
	}
	for _, tc := range cases {
		if got := CRC(tc.typ, tc.data); got != tc.want {
			t.Fatalf("CRC(%s)=%#08x want %#08x", tc.typ, got, tc.want)
		}
	}
}

func TestCRCMatchesBitwiseReference(t *testing.T) {
	payload := make([]byte, 1000)
	for i := range payload {
		payload[i] = byte(i*7 + 3)
	}
	for _, n := range []int{0, 1, 13, 255, 1000} {
		got := CRC("IDAT", payload[:n])
		want := bitwiseCRC("IDAT", payload[:n])
		if got != want {
			t.Fatalf("CRC(IDAT, %d bytes)=%#08x want %#08x", n, got, want)
		}
	}
}
