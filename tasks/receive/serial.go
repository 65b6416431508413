package receive

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"emojiradio/board"
	"emojiradio/proto"
)

// SerialTrigger is a Source fed by text lines instead of the radio.
//
// An empty line delivers the test picture; any other line is parsed with
// board.ParseImage and delivered as is.
type SerialTrigger struct {
	sc   *bufio.Scanner
	test board.Image
	c    io.Closer
}

// NewSerialTrigger reads lines from r. Empty lines deliver test.
func NewSerialTrigger(r io.Reader, test board.Image) *SerialTrigger {
	s := &SerialTrigger{sc: bufio.NewScanner(r), test: test}
	if c, ok := r.(io.Closer); ok {
		s.c = c
	}
	return s
}

// Recv blocks for the next line and writes its picture into buf.
func (s *SerialTrigger) Recv(buf []byte) (int, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return 0, fmt.Errorf("receive: serial: %w", err)
		}
		return 0, io.EOF
	}
	img := s.test
	if line := strings.TrimSpace(s.sc.Text()); line != "" {
		parsed, err := board.ParseImage(line)
		if err != nil {
			return 0, fmt.Errorf("receive: serial line: %w", err)
		}
		img = parsed
	}
	return copy(buf, proto.PicturePayload(img)), nil
}

// Close closes the underlying reader when it is closable.
func (s *SerialTrigger) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}
