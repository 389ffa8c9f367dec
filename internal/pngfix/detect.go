package pngfix

// IsCgBI reports whether data is an Apple CgBI PNG. Only the type tag at
// offset 12 is inspected: the vendor toolchain always writes the CgBI chunk
// directly after the signature.
func IsCgBI(data []byte) bool {
	if !hasSignature(data) {
		return false
	}
	return string(data[12:16]) == chunkCgBI
}

func hasSignature(data []byte) bool {
	if len(data) < 20 {
		return false
	}
	return string(data[:len(pngSignature)]) == pngSignature
}
