package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Matrix is a single-brightness LED matrix.
//
// Show renders one frame immediately. rows[y] is a bitmask with bit x set when the
// LED at column x is lit; missing rows are dark.
type Matrix interface {
	Width() int
	Height() int
	Show(rows []uint8) error
}

// Labeler is implemented by matrices that can display a short status text next to the LEDs.
type Labeler interface {
	SetLabel(s string)
}

// Speaker emits tones. PlayNote blocks for d.
type Speaker interface {
	PlayNote(n Note, d time.Duration) error
}

// CycleCounter is a free-running counter, reset to zero on demand.
type CycleCounter interface {
	Reset()
	Cycles() uint32
	// Frequency returns the counter rate in Hz.
	Frequency() uint32
}

// Time provides a base tick stream.
//
// Ticks are 1ms apart; higher-level timers live in the kernel.
type Time interface {
	Ticks() <-chan uint64
}

// Network provides a low-level datagram transport.
//
// Recv blocks until one datagram is available and returns its length.
type Network interface {
	Send(pkt []byte) error
	Recv(pkt []byte) (int, error)
}

// Serial is a raw byte stream (UART on boards, stdio on host).
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// Radio settings shared by every peer. The group is the radio address prefix on the
// board and the topic group on the host.
const (
	RadioGroup   = 17
	RadioChannel = 7
)

// Button pin indices on GPIO.
const (
	PinButtonA = 0
	PinButtonB = 1
)

// HAL provides the only contact point between the application and the outside world.
type HAL interface {
	Logger() Logger
	Matrix() Matrix
	GPIO() GPIO
	Speaker() Speaker
	Cycles() CycleCounter
	Time() Time
	Network() Network
	Serial() Serial
}
