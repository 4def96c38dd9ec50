package crc16

import (
	"encoding/binary"

	sigurn "github.com/sigurn/crc16"
)

// X-25 parameters (reflected form of polynomial 0x1021).
const (
	polyReflected = 0x8408
	initial       = 0xFFFF
	xorOut        = 0xFFFF

	// CheckX25 is the published check value over ASCII "123456789".
	CheckX25 = 0x906E
)

// Size is the number of bytes a checksum occupies on the wire.
const Size = 2

// Checksum computes a 16-bit check value over a byte sequence.
type Checksum interface {
	Sum16(data []byte) uint16
}

// ChecksumFunc adapts an ordinary function to the Checksum interface.
type ChecksumFunc func(data []byte) uint16

// Sum16 calls f(data).
func (f ChecksumFunc) Sum16(data []byte) uint16 {
	return f(data)
}

// x25Table is built once and only read afterwards.
var x25Table = func() [256]uint16 {
	var table [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i)
		for bit := 0; bit < 8; bit++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ polyReflected
			} else {
				crc >>= 1
			}
		}
		table[i] = crc
	}
	return table
}()

type x25 struct{}

func (x25) Sum16(data []byte) uint16 {
	crc := uint16(initial)
	for _, b := range data {
		crc = (crc >> 8) ^ x25Table[byte(crc)^b]
	}
	return crc ^ xorOut
}

// X25 is the CRC-16/X-25 engine used by HDLC-like framing.
var X25 Checksum = x25{}

// Compute returns the CRC-16/X-25 of data.
func Compute(data []byte) uint16 {
	return X25.Sum16(data)
}

// Append appends sum to dst in wire order, low byte first.
func Append(dst []byte, sum uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, sum)
}

// Params describes an arbitrary CRC-16 parameterization.
type Params = sigurn.Params

// Well-known parameterizations accepted by New.
var (
	ParamsX25        = sigurn.CRC16_X_25
	ParamsCCITTFalse = sigurn.CRC16_CCITT_FALSE
	ParamsKermit     = sigurn.CRC16_KERMIT
	ParamsXModem     = sigurn.CRC16_XMODEM
	ParamsModbus     = sigurn.CRC16_MODBUS
)

// Engine computes a CRC-16 for a fixed parameterization.
// Its lookup table is immutable once New returns, so one Engine
// may be shared between goroutines.
type Engine struct {
	params Params
	table  *sigurn.Table
}

// New builds an Engine for params.
func New(params Params) *Engine {
	return &Engine{
		params: params,
		table:  sigurn.MakeTable(params),
	}
}

// Sum16 returns the checksum of data.
func (e *Engine) Sum16(data []byte) uint16 {
	return sigurn.Checksum(data, e.table)
}

// Name returns the catalogue name of the parameterization.
func (e *Engine) Name() string {
	return e.params.Name
}

// Verify reports whether the engine reproduces its published check value.
func (e *Engine) Verify() bool {
	return e.Sum16([]byte("123456789")) == e.params.Check
}
