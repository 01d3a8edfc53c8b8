package conv

const hexd = "0123456789ABCDEF"

// U8Hex writes 2-digit uppercase hex without 0x, zero-padded.
func U8Hex(buf []byte, n uint8) []byte {
	if len(buf) < 2 {
		return buf[:0]
	}
	i := len(buf) - 2
	buf[i] = hexd[n>>4]
	buf[i+1] = hexd[n&0xF]
	return buf[i:]
}

// Hex8 returns "0x" followed by the 2-digit hex form of n.
func Hex8(n uint8) string {
	var b [4]byte
	b[0], b[1] = '0', 'x'
	U8Hex(b[2:], n)
	return string(b[:])
}
