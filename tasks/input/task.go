package input

import (
	"fmt"
	"time"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/kernel"
	"emojiradio/proto"
)

// Sender transmits one datagram. hal.Network satisfies it.
type Sender interface {
	Send(pkt []byte) error
}

// Config sets the press timing and the scan interval.
type Config struct {
	Timing Timing
	// Poll is the delay between two button scans. It is also the debounce window.
	Poll time.Duration
}

// DefaultConfig scans every 200ms with DefaultTiming.
func DefaultConfig() Config {
	return Config{Timing: DefaultTiming(), Poll: 200 * time.Millisecond}
}

type buttonState uint8

const (
	idle buttonState = iota
	down
)

type button struct {
	name  string
	pin   hal.GPIOPin
	state buttonState
	// dx, dy is the cursor step taken on release.
	dx, dy int
}

// Task scans buttons A and B, draws on the board and sends the drawing.
//
// Each scan takes the first matching branch:
//
//  1. A and B pressed: send the saved drawing (every scan while both are held).
//  2. A pressed: start timing if A was idle, leave Remote mode.
//  3. A released after a press: long press commits the pixel, then the cursor moves down.
//  4. B pressed: as 2.
//  5. B released after a press: as 3, moving right.
//
// Branch 2 matches on every scan while A is held, so B is not seen until A is let go.
// Both buttons time their presses with the same cycle counter.
type Task struct {
	board  *board.State
	a, b   button
	cycles hal.CycleCounter
	tx     Sender
	cfg    Config
}

// New returns an input task reading buttons A and B from gpio and sending on tx.
func New(st *board.State, gpio hal.GPIO, cycles hal.CycleCounter, tx Sender, cfg Config) *Task {
	var a, b hal.GPIOPin
	if gpio != nil {
		a = gpio.Pin(hal.PinButtonA)
		b = gpio.Pin(hal.PinButtonB)
	}
	return &Task{
		board:  st,
		a:      button{name: "A", pin: a, dx: 0, dy: 1},
		b:      button{name: "B", pin: b, dx: 1, dy: 0},
		cycles: cycles,
		tx:     tx,
		cfg:    cfg,
	}
}

// Run configures both buttons as pulled-up inputs and scans them until ctx ends.
func (t *Task) Run(ctx *kernel.Context) error {
	for _, btn := range []*button{&t.a, &t.b} {
		if btn.pin == nil {
			return fmt.Errorf("input: button %s: no pin", btn.name)
		}
		if err := btn.pin.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return fmt.Errorf("input: button %s: %w", btn.name, err)
		}
	}

	for {
		t.Step(ctx)
		if err := ctx.Sleep(t.cfg.Poll); err != nil {
			return nil
		}
	}
}

// Step performs one button scan.
func (t *Task) Step(ctx *kernel.Context) {
	aDown, err := pressed(t.a.pin)
	if err != nil {
		ctx.Logf("read %s: %v", t.a.name, err)
		return
	}
	bDown, err := pressed(t.b.pin)
	if err != nil {
		ctx.Logf("read %s: %v", t.b.name, err)
		return
	}

	switch {
	case aDown && bDown:
		t.send(ctx)
	case aDown:
		t.press(ctx, &t.a)
	case t.a.state == down:
		t.release(ctx, &t.a)
	case bDown:
		t.press(ctx, &t.b)
	case t.b.state == down:
		t.release(ctx, &t.b)
	}
}

// pressed reads an active-low button.
func pressed(pin hal.GPIOPin) (bool, error) {
	level, err := pin.Read()
	if err != nil {
		return false, err
	}
	return !level, nil
}

func (t *Task) send(ctx *kernel.Context) {
	if t.tx == nil {
		ctx.Logf("send: no radio")
		return
	}
	img := t.board.Saved()
	if err := t.tx.Send(proto.PicturePayload(img)); err != nil {
		ctx.Logf("send: %v", err)
		return
	}
	ctx.Logf("sent picture (%d lit)", img.Lit())
}

func (t *Task) press(ctx *kernel.Context, btn *button) {
	if btn.state == idle {
		t.cycles.Reset()
		btn.state = down
		ctx.Logf("press %s", btn.name)
	}
	if t.board.BeginInteraction() {
		ctx.Logf("back to local drawing")
	}
}

func (t *Task) release(ctx *kernel.Context, btn *button) {
	btn.state = idle
	cycles := t.cycles.Cycles()
	d := t.cfg.Timing.Duration(cycles)
	ctx.Logf("release %s after %d", btn.name, d)
	if t.cfg.Timing.IsLong(cycles) {
		on := t.board.CommitPixel()
		ctx.Logf("long press: pixel %s on=%t", t.board.Cursor(), on)
	}
	c := t.board.MoveCursor(btn.dx, btn.dy)
	ctx.Logf("cursor %s", c)
}
