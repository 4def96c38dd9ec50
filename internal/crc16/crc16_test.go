package crc16

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Vectors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{name: "empty", data: nil, want: 0x0000},
		{name: "check string", data: []byte("123456789"), want: CheckX25},
		{name: "diag command", data: []byte{0x7D, 0x02, 0x88, 0x13, 0xA5, 0x13}, want: 0x40C3},
		{name: "single flag byte", data: []byte{0x7E}, want: 0x6A81},
		{name: "flag and escape", data: []byte{0x7D, 0x7E}, want: 0xD502},
		{name: "counting", data: []byte{0x01, 0x02, 0x03, 0x04, 0x05}, want: 0x22EC},
		{name: "checksum contains flag", data: []byte{0x60}, want: 0x937E},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Compute(tt.data), "Compute(% x)", tt.data)
		})
	}
}

func TestCompute_EmptyAndNilAgree(t *testing.T) {
	assert.Equal(t, Compute(nil), Compute([]byte{}))
}

func TestX25_MatchesReferenceEngine(t *testing.T) {
	ref := New(ParamsX25)
	rng := rand.New(rand.NewSource(25))

	for i := 0; i < 200; i++ {
		data := make([]byte, rng.Intn(512))
		rng.Read(data)
		require.Equal(t, ref.Sum16(data), X25.Sum16(data), "length %d", len(data))
	}
}

func TestAppend_LittleEndian(t *testing.T) {
	got := Append([]byte{0xAA}, 0x40C3)
	assert.Equal(t, []byte{0xAA, 0xC3, 0x40}, got)
	assert.Len(t, Append(nil, 0), Size)
}

func TestEngine_Verify(t *testing.T) {
	t.Parallel()
	for _, p := range []Params{ParamsX25, ParamsCCITTFalse, ParamsKermit, ParamsXModem, ParamsModbus} {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			t.Parallel()
			e := New(p)
			assert.True(t, e.Verify(), "%s check value", e.Name())
		})
	}
}

func TestEngine_DiffersFromX25(t *testing.T) {
	data := []byte("123456789")
	assert.NotEqual(t, X25.Sum16(data), New(ParamsCCITTFalse).Sum16(data))
}

func TestChecksumFunc(t *testing.T) {
	var c Checksum = ChecksumFunc(func(data []byte) uint16 { return uint16(len(data)) })
	assert.Equal(t, uint16(3), c.Sum16([]byte{1, 2, 3}))
}

func TestX25_ConcurrentUse(t *testing.T) {
	data := []byte("123456789")
	var wg sync.WaitGroup
	errs := make(chan uint16, 64)

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Compute(data); got != CheckX25 {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent Compute() = 0x%04X, want 0x%04X", got, CheckX25)
	}
}
