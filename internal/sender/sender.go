package sender

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bigbag/hdlc-framer/internal/hdlc"
)

// ProgressCallback is called after each frame is written.
type ProgressCallback func(current, total int)

// Sender frames payloads and writes them to a byte link.
type Sender struct {
	w        io.Writer
	framer   *hdlc.Framer
	progress ProgressCallback
	delay    time.Duration
}

// New creates a Sender writing to w. A nil framer uses CRC-16/X-25 with
// no payload bound.
func New(w io.Writer, framer *hdlc.Framer) *Sender {
	if framer == nil {
		framer = &hdlc.Framer{}
	}
	return &Sender{w: w, framer: framer}
}

// SetProgressCallback sets the progress callback function.
func (s *Sender) SetProgressCallback(cb ProgressCallback) {
	s.progress = cb
}

// SetDelay sets the pause between consecutive frames.
func (s *Sender) SetDelay(d time.Duration) {
	s.delay = d
}

func (s *Sender) reportProgress(current, total int) {
	if s.progress != nil {
		s.progress(current, total)
	}
}

// Send writes one frame per payload, in order. It returns how many
// frames were fully written before an error or cancellation.
func (s *Sender) Send(ctx context.Context, payloads [][]byte) (int, error) {
	// Frame everything first so an oversized payload sends nothing.
	frames := make([][]byte, 0, len(payloads))
	for i, p := range payloads {
		frame, err := s.framer.Frame(p)
		if err != nil {
			return 0, fmt.Errorf("payload %d: %w", i+1, err)
		}
		frames = append(frames, frame)
	}

	total := len(frames)
	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if i > 0 && s.delay > 0 {
			if err := sleep(ctx, s.delay); err != nil {
				return i, err
			}
		}

		n, err := s.w.Write(frame)
		if err != nil {
			return i, fmt.Errorf("write frame %d: %w", i+1, err)
		}
		if n != len(frame) {
			return i, fmt.Errorf("write frame %d: %w", i+1, io.ErrShortWrite)
		}

		s.reportProgress(i+1, total)
	}

	return total, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
