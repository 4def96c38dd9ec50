package hdlc

import (
	"errors"
	"fmt"

	"github.com/bigbag/hdlc-framer/internal/crc16"
)

// ErrPayloadTooLarge is returned by Framer when a payload exceeds MaxPayload.
var ErrPayloadTooLarge = errors.New("payload too large")

// Build returns the frame for payload:
//
//	Escape(payload || LE16(crc16/x-25(payload))) || 0x7E
//
// The result never aliases payload and always ends in a single unescaped Flag.
func Build(payload []byte) []byte {
	return assemble(crc16.X25, payload)
}

func assemble(sum crc16.Checksum, payload []byte) []byte {
	fcs := crc16.Append(make([]byte, 0, crc16.Size), sum.Sum16(payload))

	frame := make([]byte, 0, EscapedLen(payload)+EscapedLen(fcs)+1)
	frame = AppendEscaped(frame, payload)
	frame = AppendEscaped(frame, fcs)
	return append(frame, Flag)
}

// Framer builds frames with a configurable checksum and an optional
// payload bound. The zero value frames with CRC-16/X-25 and no bound.
type Framer struct {
	// Checksum defaults to crc16.X25 when nil.
	Checksum crc16.Checksum
	// MaxPayload rejects longer payloads when positive.
	MaxPayload int
}

// Frame validates payload against the bound and assembles its frame.
func (f *Framer) Frame(payload []byte) ([]byte, error) {
	if f.MaxPayload > 0 && len(payload) > f.MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(payload), f.MaxPayload)
	}
	sum := f.Checksum
	if sum == nil {
		sum = crc16.X25
	}
	return assemble(sum, payload), nil
}
