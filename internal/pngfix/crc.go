package pngfix

import "hash/crc32"

// CRC returns the PNG chunk checksum: CRC-32 (IEEE, reflected 0xEDB88320)
// over the chunk type followed by its payload.
func CRC(typ string, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	return crc.Sum32()
}
