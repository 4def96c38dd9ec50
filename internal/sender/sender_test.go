package sender

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigbag/hdlc-framer/internal/hdlc"
)

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) - 1, nil
}

type failAfter struct {
	n   int
	buf bytes.Buffer
}

func (f *failAfter) Write(p []byte) (int, error) {
	if f.n == 0 {
		return 0, errors.New("link down")
	}
	f.n--
	return f.buf.Write(p)
}

func TestSend_WritesFramesInOrder(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)

	var progress []int
	s.SetProgressCallback(func(current, total int) {
		assert.Equal(t, 2, total)
		progress = append(progress, current)
	})

	n, err := s.Send(context.Background(), [][]byte{
		{0x7D, 0x02, 0x88, 0x13, 0xA5, 0x13},
		{},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{1, 2}, progress)
	assert.Equal(t, "7d5d028813a513c3407e"+"00007e", hex.EncodeToString(buf.Bytes()))
}

func TestSend_PayloadTooLargeSendsNothing(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, &hdlc.Framer{MaxPayload: 2})

	n, err := s.Send(context.Background(), [][]byte{{0x01}, {0x01, 0x02, 0x03}})
	require.Error(t, err)
	assert.ErrorIs(t, err, hdlc.ErrPayloadTooLarge)
	assert.Contains(t, err.Error(), "payload 2")
	assert.Zero(t, n)
	assert.Zero(t, buf.Len())
}

func TestSend_ShortWrite(t *testing.T) {
	s := New(shortWriter{}, nil)
	n, err := s.Send(context.Background(), [][]byte{{0x01}})
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Zero(t, n)
}

func TestSend_WriteError(t *testing.T) {
	w := &failAfter{n: 1}
	s := New(w, nil)

	n, err := s.Send(context.Background(), [][]byte{{0x01}, {0x02}, {0x03}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write frame 2")
	assert.Equal(t, 1, n)
	assert.Equal(t, hdlc.Build([]byte{0x01}), w.buf.Bytes())
}

func TestSend_Cancelled(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := s.Send(ctx, [][]byte{{0x01}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Zero(t, buf.Len())
}

func TestSend_CancelledDuringDelay(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, nil)
	s.SetDelay(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	n, err := s.Send(ctx, [][]byte{{0x01}, {0x02}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, n)
	assert.Equal(t, hdlc.Build([]byte{0x01}), buf.Bytes())
}

func TestSend_Empty(t *testing.T) {
	var buf bytes.Buffer
	n, err := New(&buf, nil).Send(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
