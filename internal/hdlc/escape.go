package hdlc

const (
	Flag      = 0x7E
	Esc       = 0x7D
	EscapeXor = 0x20
)

// IsReserved reports whether b must be escaped inside a frame.
func IsReserved(b byte) bool {
	return b == Flag || b == Esc
}

// Escape byte-stuffs data so that neither Flag nor Esc appear literally.
// Each reserved byte becomes Esc followed by the byte XOR 0x20.
func Escape(data []byte) []byte {
	return AppendEscaped(make([]byte, 0, EscapedLen(data)), data)
}

// AppendEscaped appends the escaped form of data to dst.
func AppendEscaped(dst, data []byte) []byte {
	for _, b := range data {
		if IsReserved(b) {
			dst = append(dst, Esc, b^EscapeXor)
		} else {
			dst = append(dst, b)
		}
	}
	return dst
}

// EscapedLen returns len(Escape(data)) without building it.
func EscapedLen(data []byte) int {
	n := len(data)
	for _, b := range data {
		if IsReserved(b) {
			n++
		}
	}
	return n
}
