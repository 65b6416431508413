package input

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/kernel"
	"emojiradio/proto"
)

type fakeCycles struct {
	n      uint32
	resets int
}

func (c *fakeCycles) Reset()            { c.n = 0; c.resets++ }
func (c *fakeCycles) Cycles() uint32    { return c.n }
func (c *fakeCycles) Frequency() uint32 { return 64_000_000 }

type recordSender struct {
	sent [][]byte
	err  error
}

func (s *recordSender) Send(pkt []byte) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, append([]byte(nil), pkt...))
	return nil
}

type rig struct {
	t      *testing.T
	board  *board.State
	a, b   *hal.ButtonPin
	cycles *fakeCycles
	tx     *recordSender
	task   *Task
	ctx    *kernel.Context
}

func newRig(t *testing.T, wrap board.WrapPolicy) *rig {
	cfg := board.DefaultConfig()
	cfg.Wrap = wrap
	r := &rig{
		t:      t,
		board:  board.New(cfg),
		a:      hal.NewButtonPin("A"),
		b:      hal.NewButtonPin("B"),
		cycles: &fakeCycles{},
		tx:     &recordSender{},
	}
	require.NoError(t, r.a.Configure(hal.GPIOModeInput, hal.GPIOPullUp))
	require.NoError(t, r.b.Configure(hal.GPIOModeInput, hal.GPIOPullUp))
	r.task = New(r.board, hal.NewButtonGPIO(r.a, r.b), r.cycles, r.tx, DefaultConfig())
	r.ctx = kernel.NewContext(context.Background(), kernel.NewSystem(nil), "input")
	return r
}

// tap presses and releases pin, holding it for the given number of counter cycles.
func (r *rig) tap(pin *hal.ButtonPin, cycles uint32) {
	pin.Press()
	r.task.Step(r.ctx)
	r.cycles.n += cycles
	pin.Release()
	r.task.Step(r.ctx)
}

const (
	short = 64 * 100_000   // 0.1s
	long  = 64 * 3_000_000 // 3s
)

func TestTimingDuration(t *testing.T) {
	tm := DefaultTiming()
	assert.Equal(t, uint32(0), tm.Duration(0))
	assert.Equal(t, uint32(0), tm.Duration(4))
	assert.Equal(t, uint32(1), tm.Duration(5+64))
	assert.Equal(t, uint32(2_500_000), tm.Duration(5+64*2_500_000))

	assert.False(t, tm.IsLong(5+64*2_500_000))
	assert.True(t, tm.IsLong(5+64*2_500_001))

	assert.Error(t, Timing{}.Validate())
	assert.NoError(t, tm.Validate())
}

func TestShortPressesMoveCursorWrapAxis(t *testing.T) {
	r := newRig(t, board.WrapAxis)

	r.tap(r.b, short)
	assert.Equal(t, board.CursorPosition{X: 3, Y: 2}, r.board.Cursor())
	r.tap(r.b, short)
	assert.Equal(t, board.CursorPosition{X: 4, Y: 2}, r.board.Cursor())
	r.tap(r.b, short)
	assert.Equal(t, board.CursorPosition{X: 0, Y: 2}, r.board.Cursor())
	assert.Equal(t, board.Blank, r.board.Saved())

	r.tap(r.a, long)
	assert.True(t, r.board.Saved().At(0, 2))
	assert.Equal(t, 1, r.board.Saved().Lit())
	assert.Equal(t, board.CursorPosition{X: 0, Y: 3}, r.board.Cursor())
	assert.Equal(t, 4, r.cycles.resets)
}

func TestShortPressesMoveCursorWrapOrigin(t *testing.T) {
	r := newRig(t, board.WrapOrigin)

	r.tap(r.b, short)
	r.tap(r.b, short)
	r.tap(r.b, short)
	assert.Equal(t, board.CursorPosition{X: 0, Y: 0}, r.board.Cursor())
}

func TestHoldDoesNotMoveUntilRelease(t *testing.T) {
	r := newRig(t, board.WrapOrigin)

	r.a.Press()
	for i := 0; i < 5; i++ {
		r.task.Step(r.ctx)
	}
	assert.Equal(t, board.CursorPosition{X: 2, Y: 2}, r.board.Cursor())
	assert.Equal(t, 1, r.cycles.resets, "timing starts once per press")

	r.a.Release()
	r.task.Step(r.ctx)
	assert.Equal(t, board.CursorPosition{X: 2, Y: 3}, r.board.Cursor())
}

func TestAHeldStarvesB(t *testing.T) {
	r := newRig(t, board.WrapOrigin)

	r.a.Press()
	r.task.Step(r.ctx)
	r.b.Press()
	r.b.Release()
	r.task.Step(r.ctx)
	r.task.Step(r.ctx)
	assert.Equal(t, board.CursorPosition{X: 2, Y: 2}, r.board.Cursor())

	r.a.Release()
	r.task.Step(r.ctx)
	assert.Equal(t, board.CursorPosition{X: 2, Y: 3}, r.board.Cursor())
	r.task.Step(r.ctx)
	assert.Equal(t, board.CursorPosition{X: 2, Y: 3}, r.board.Cursor(), "B press was never seen")
}

func TestBothPressedSendsSaved(t *testing.T) {
	r := newRig(t, board.WrapOrigin)
	r.tap(r.a, long)
	saved := r.board.Saved()
	require.Equal(t, 1, saved.Lit())

	// A is down and tracked when B joins.
	r.a.Press()
	r.task.Step(r.ctx)
	r.b.Press()
	r.task.Step(r.ctx)
	r.task.Step(r.ctx)

	require.Len(t, r.tx.sent, 2)
	for _, pkt := range r.tx.sent {
		img, ok := proto.DecodePicturePayload(pkt)
		require.True(t, ok)
		assert.Equal(t, saved, img)
	}
	assert.Equal(t, saved, r.board.Saved())
}

func TestPressLeavesRemote(t *testing.T) {
	r := newRig(t, board.WrapOrigin)
	r.board.Receive(board.Blank)

	r.b.Press()
	r.task.Step(r.ctx)
	assert.Equal(t, board.Local, r.board.Mode())
}

func TestReadErrorSkipsScan(t *testing.T) {
	r := newRig(t, board.WrapOrigin)
	unconfigured := hal.NewButtonPin("A")
	r.task = New(r.board, hal.NewButtonGPIO(unconfigured, r.b), r.cycles, r.tx, DefaultConfig())

	r.tap(r.b, short)
	assert.Equal(t, board.CursorPosition{X: 2, Y: 2}, r.board.Cursor())
}

func TestSendErrorIsLogged(t *testing.T) {
	r := newRig(t, board.WrapOrigin)
	r.tx.err = errors.New("radio down")

	r.a.Press()
	r.b.Press()
	r.task.Step(r.ctx)
	assert.Empty(t, r.tx.sent)
}

func TestRunRejectsMissingPins(t *testing.T) {
	st := board.New(board.DefaultConfig())
	task := New(st, nil, &fakeCycles{}, nil, DefaultConfig())
	err := task.Run(kernel.NewContext(context.Background(), kernel.NewSystem(nil), "input"))
	assert.Error(t, err)
}
