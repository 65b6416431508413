package display

import (
	"time"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/kernel"
)

// DefaultBlink is how long each of the two phases stays on the matrix.
const DefaultBlink = 400 * time.Millisecond

// Task alternates two images on the matrix so a single-brightness display can show
// the cursor over the drawing (Local) or flash the received picture (Remote).
//
// The mode is sampled once per cycle, so both phases of a cycle belong to the same mode.
type Task struct {
	board *board.State
	m     hal.Matrix
	label hal.Labeler
	blink time.Duration
}

// New returns a display task showing st on m. A non-positive blink uses DefaultBlink.
func New(st *board.State, m hal.Matrix, blink time.Duration) *Task {
	if blink <= 0 {
		blink = DefaultBlink
	}
	t := &Task{board: st, m: m, blink: blink}
	if l, ok := m.(hal.Labeler); ok {
		t.label = l
	}
	return t
}

// Run renders display cycles until ctx ends.
func (t *Task) Run(ctx *kernel.Context) error {
	if t.m == nil {
		ctx.Logf("no matrix")
		return nil
	}
	for {
		mode := t.board.Mode()
		for phase := 0; phase < 2; phase++ {
			t.show(ctx, mode, phase)
			if err := ctx.Sleep(t.blink); err != nil {
				return nil
			}
		}
	}
}

func (t *Task) show(ctx *kernel.Context, mode board.Mode, phase int) {
	img := t.board.Frame(mode, phase)
	if err := t.m.Show(img.Rows()); err != nil {
		ctx.Logf("show: %v", err)
	}
	if t.label == nil {
		return
	}
	if mode == board.Remote {
		t.label.SetLabel("remote")
	} else {
		t.label.SetLabel("local " + t.board.Cursor().String())
	}
}
