package sound

import (
	"time"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/kernel"
)

// DefaultTune is the rising C major run played when a picture arrives.
var DefaultTune = []hal.Note{hal.NoteC5, hal.NoteD5, hal.NoteE5, hal.NoteF5}

// DefaultNoteLength is a quarter note.
const DefaultNoteLength = 250 * time.Millisecond

// Config is the tune and the length of each note.
type Config struct {
	Tune       []hal.Note
	NoteLength time.Duration
}

// DefaultConfig plays DefaultTune at DefaultNoteLength.
func DefaultConfig() Config {
	return Config{Tune: append([]hal.Note(nil), DefaultTune...), NoteLength: DefaultNoteLength}
}

// Task plays the tune once each time the board's sound trigger goes from idle to armed.
//
// A picture arriving while the tune plays re-arms nothing: the trigger is cleared
// after the last note.
type Task struct {
	board *board.State
	spk   hal.Speaker
	cfg   Config
}

// New returns a sound task playing on spk. A non-positive note length uses DefaultNoteLength.
func New(st *board.State, spk hal.Speaker, cfg Config) *Task {
	if cfg.NoteLength <= 0 {
		cfg.NoteLength = DefaultNoteLength
	}
	return &Task{board: st, spk: spk, cfg: cfg}
}

// Run waits for the sound trigger and plays the tune until ctx ends.
func (t *Task) Run(ctx *kernel.Context) error {
	for {
		if err := t.board.WaitSound(ctx.Context()); err != nil {
			return nil
		}
		t.play(ctx)
		t.board.ClearSound()
	}
}

func (t *Task) play(ctx *kernel.Context) {
	if t.spk == nil {
		return
	}
	for _, n := range t.cfg.Tune {
		if err := t.spk.PlayNote(n, t.cfg.NoteLength); err != nil {
			ctx.Logf("play %s: %v", n, err)
		}
	}
}
