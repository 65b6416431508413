package board

import (
	"context"
	"fmt"
	"sync"

	"emojiradio/kernel"
)

// Mode selects which image family the display renders.
type Mode uint8

const (
	Local Mode = iota
	Remote
)

func (m Mode) String() string {
	switch m {
	case Local:
		return "local"
	case Remote:
		return "remote"
	default:
		return "unknown"
	}
}

// Config holds the initial board contents.
type Config struct {
	Cursor   CursorPosition
	Wrap     WrapPolicy
	Saved    Image
	Received Image
}

// DefaultConfig starts with the cursor in the middle, an empty drawing and a short
// bar as the received picture.
func DefaultConfig() Config {
	var seed Image
	seed.Set(0, 2)
	seed.Set(1, 2)
	seed.Set(2, 2)
	return Config{
		Cursor:   CursorPosition{X: 2, Y: 2},
		Wrap:     WrapOrigin,
		Received: seed,
	}
}

// Validate checks the initial cursor and wrap policy.
func (c Config) Validate() error {
	if !c.Cursor.valid() {
		return fmt.Errorf("board: cursor %s out of range", c.Cursor)
	}
	if c.Wrap != WrapOrigin && c.Wrap != WrapAxis {
		return fmt.Errorf("board: unknown wrap policy %d", c.Wrap)
	}
	return nil
}

// State is the shared board: the drawing, its cursor overlay, the last received
// picture, the display mode and the pending sound trigger.
//
// Every method takes the lock for its whole read or update, so readers never see a
// cursor that disagrees with current.
type State struct {
	mu       sync.Mutex
	wrap     WrapPolicy
	saved    Image
	current  Image
	received Image
	cursor   CursorPosition
	mode     Mode

	sound kernel.Signal
}

// New creates a board from cfg. An invalid cursor falls back to (0,0).
func New(cfg Config) *State {
	s := &State{
		wrap:     cfg.Wrap,
		saved:    cfg.Saved,
		received: cfg.Received,
		cursor:   cfg.Cursor,
		mode:     Local,
	}
	if !s.cursor.valid() {
		s.cursor = CursorPosition{}
	}
	s.recompute()
	return s
}

// recompute derives current from saved and the cursor. Callers hold mu.
func (s *State) recompute() {
	s.current = s.saved
	s.current.Toggle(s.cursor.X, s.cursor.Y)
}

// MoveCursor moves one axis by one step. dx wins when both are non-zero.
// A move off the grid wraps according to the board's policy.
func (s *State) MoveCursor(dx, dy int) CursorPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = s.wrap.move(s.cursor, dx, dy)
	s.recompute()
	return s.cursor
}

// CommitPixel toggles the saved pixel under the cursor and returns its new value.
func (s *State) CommitPixel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	on := s.saved.Toggle(s.cursor.X, s.cursor.Y)
	s.recompute()
	return on
}

// Receive installs an inbound picture, switches to Remote and arms the sound.
func (s *State) Receive(img Image) {
	s.mu.Lock()
	s.received = img
	s.mode = Remote
	s.mu.Unlock()
	s.sound.Raise()
}

// BeginInteraction switches back to Local. It reports whether the board was in Remote.
func (s *State) BeginInteraction() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.mode == Remote
	s.mode = Local
	return was
}

// Saved returns the committed drawing.
func (s *State) Saved() Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

// Current returns the drawing with the cursor pixel inverted.
func (s *State) Current() Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Received returns the last picture that came in over the radio.
func (s *State) Received() Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.received
}

// Cursor returns the cursor position.
func (s *State) Cursor() CursorPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Mode returns which image family the display shows.
func (s *State) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Frame returns the image shown in phase 0 or 1 of a display cycle in mode m.
//
//	Local:  current, saved
//	Remote: received, blank
func (s *State) Frame(m Mode, phase int) Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case m == Remote && phase == 0:
		return s.received
	case m == Remote:
		return Blank
	case phase == 0:
		return s.current
	default:
		return s.saved
	}
}

// SoundPending reports whether a received picture still waits for its tune.
func (s *State) SoundPending() bool { return s.sound.Pending() }

// WaitSound blocks until a tune is pending.
func (s *State) WaitSound(ctx context.Context) error { return s.sound.Wait(ctx) }

// ClearSound disarms the tune trigger.
func (s *State) ClearSound() { s.sound.Clear() }
