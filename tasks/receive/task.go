package receive

import (
	"errors"
	"io"
	"time"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/kernel"
	"emojiradio/proto"
)

// Source delivers inbound datagrams. Recv blocks until one is available.
// hal.Network satisfies it.
type Source interface {
	Recv(buf []byte) (int, error)
}

// maxDatagram leaves room to notice oversized payloads.
const maxDatagram = 64

const retryDelay = 100 * time.Millisecond

// Task installs every well-formed inbound picture into the board.
//
// There is no acknowledgement or retry: a datagram that is not exactly one picture
// is dropped with a log line.
type Task struct {
	board *board.State
	src   Source
}

// New returns a task that feeds pictures from src into st.
func New(st *board.State, src Source) *Task {
	return &Task{board: st, src: src}
}

// Run receives until ctx ends or the source reports it has nothing more to give.
func (t *Task) Run(ctx *kernel.Context) error {
	if t.src == nil {
		ctx.Logf("no source")
		return nil
	}

	if c, ok := t.src.(io.Closer); ok {
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				_ = c.Close()
			case <-done:
			}
		}()
	}

	buf := make([]byte, maxDatagram)
	for {
		n, err := t.src.Recv(buf)
		if err != nil {
			switch {
			case ctx.Err() != nil:
				return nil
			case errors.Is(err, hal.ErrNotImplemented):
				ctx.Logf("no radio on this target")
				return nil
			case errors.Is(err, io.EOF):
				ctx.Logf("source closed")
				return nil
			}
			ctx.Logf("recv: %v", err)
			if err := ctx.Sleep(retryDelay); err != nil {
				return nil
			}
			continue
		}

		ctx.Logf("received %d bytes", n)
		// n is the datagram's full length and may exceed what fit in buf.
		if n > len(buf) {
			ctx.Logf("dropped %d-byte datagram, want %d", n, proto.PictureSize)
			continue
		}
		img, ok := proto.DecodePicturePayload(buf[:n])
		if !ok {
			ctx.Logf("dropped %d-byte datagram, want %d", n, proto.PictureSize)
			continue
		}
		t.board.Receive(img)
		ctx.Logf("picture received")
	}
}
