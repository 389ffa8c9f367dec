package pngfix

// SwapRedBlue converts inflated CgBI scanlines from BGRA to RGBA in place.
// Each row starts with a filter byte that is left alone; rows running past
// the end of pix are clamped to it.
func SwapRedBlue(pix []byte, g Geometry) {
	rowBytes := uint64(g.Width) * 4
	pos := 0
	for y := uint32(0); y < g.Height; y++ {
		if pos >= len(pix) {
			return
		}
		pos++

		end := len(pix)
		if uint64(end-pos) > rowBytes {
			end = pos + int(rowBytes)
		}

		i := pos
		for ; i+16 <= end; i += 16 {
			pix[i], pix[i+2] = pix[i+2], pix[i]
			pix[i+4], pix[i+6] = pix[i+6], pix[i+4]
			pix[i+8], pix[i+10] = pix[i+10], pix[i+8]
			pix[i+12], pix[i+14] = pix[i+14], pix[i+12]
		}
		for ; i+4 <= end; i += 4 {
			pix[i], pix[i+2] = pix[i+2], pix[i]
		}
		pos = end
	}
}
