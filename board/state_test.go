package board

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diff returns the coordinates where a and b differ.
func diff(a, b Image) []CursorPosition {
	var out []CursorPosition
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if a.At(x, y) != b.At(x, y) {
				out = append(out, CursorPosition{X: x, Y: y})
			}
		}
	}
	return out
}

func assertOverlay(t *testing.T, s *State) {
	t.Helper()
	c := s.Cursor()
	assert.True(t, c.valid(), "cursor %s out of range", c)
	assert.Equal(t, []CursorPosition{c}, diff(s.Saved(), s.Current()))
}

func TestNewDefaults(t *testing.T) {
	s := New(DefaultConfig())

	assert.Equal(t, CursorPosition{X: 2, Y: 2}, s.Cursor())
	assert.Equal(t, Local, s.Mode())
	assert.False(t, s.SoundPending())
	assert.Equal(t, Blank, s.Saved())
	assert.Equal(t, MustParseImage(`
		.....
		.....
		..#..
		.....
		.....`), s.Current())
	assert.Equal(t, MustParseImage(`
		.....
		.....
		###..
		.....
		.....`), s.Received())
}

func TestMoveCursorStaysInRange(t *testing.T) {
	for _, wrap := range []WrapPolicy{WrapOrigin, WrapAxis} {
		t.Run(wrap.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Wrap = wrap
			s := New(cfg)
			rng := rand.New(rand.NewSource(1))
			for i := 0; i < 500; i++ {
				if rng.Intn(4) == 0 {
					s.CommitPixel()
				}
				if rng.Intn(2) == 0 {
					s.MoveCursor(1, 0)
				} else {
					s.MoveCursor(0, 1)
				}
				assertOverlay(t, s)
			}
		})
	}
}

func TestMoveCursorWrapOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cursor = CursorPosition{X: 4, Y: 3}
	s := New(cfg)

	assert.Equal(t, CursorPosition{X: 0, Y: 0}, s.MoveCursor(1, 0))

	cfg.Cursor = CursorPosition{X: 2, Y: 4}
	s = New(cfg)
	assert.Equal(t, CursorPosition{X: 0, Y: 0}, s.MoveCursor(0, 1))
	assertOverlay(t, s)
}

func TestMoveCursorWrapAxis(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wrap = WrapAxis
	cfg.Cursor = CursorPosition{X: 4, Y: 3}
	s := New(cfg)

	assert.Equal(t, CursorPosition{X: 0, Y: 3}, s.MoveCursor(1, 0))

	cfg.Cursor = CursorPosition{X: 2, Y: 4}
	s = New(cfg)
	assert.Equal(t, CursorPosition{X: 2, Y: 0}, s.MoveCursor(0, 1))
}

func TestMoveCursorNegative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cursor = CursorPosition{X: 0, Y: 3}
	s := New(cfg)
	assert.Equal(t, CursorPosition{}, s.MoveCursor(-1, 0))
}

func TestMoveCursorOneAxis(t *testing.T) {
	s := New(DefaultConfig())
	assert.Equal(t, CursorPosition{X: 3, Y: 2}, s.MoveCursor(1, 1))
}

func TestCommitPixelIsInvolution(t *testing.T) {
	s := New(DefaultConfig())
	s.MoveCursor(1, 0)
	before := s.Saved()

	assert.True(t, s.CommitPixel())
	assert.True(t, s.Saved().At(3, 2))
	assertOverlay(t, s)

	assert.False(t, s.CommitPixel())
	assert.Equal(t, before, s.Saved())
	assertOverlay(t, s)
}

func TestReceive(t *testing.T) {
	s := New(DefaultConfig())
	img := MustParseImage("#...# .#.#. ..#.. .#.#. #...#")
	saved := s.Saved()

	s.Receive(img)

	assert.Equal(t, img, s.Received())
	assert.Equal(t, Remote, s.Mode())
	assert.True(t, s.SoundPending())
	assert.Equal(t, saved, s.Saved())

	require.NoError(t, s.WaitSound(context.Background()))
	s.ClearSound()
	assert.False(t, s.SoundPending())
}

func TestWaitSoundBlocks(t *testing.T) {
	s := New(DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.WaitSound(ctx), context.DeadlineExceeded)
}

func TestBeginInteraction(t *testing.T) {
	s := New(DefaultConfig())
	assert.False(t, s.BeginInteraction())

	s.Receive(Blank)
	assert.True(t, s.BeginInteraction())
	assert.Equal(t, Local, s.Mode())
	assert.True(t, s.SoundPending(), "leaving Remote does not cancel the tune")
}

func TestFrame(t *testing.T) {
	s := New(DefaultConfig())
	s.CommitPixel()
	s.MoveCursor(0, 1)

	assert.Equal(t, s.Current(), s.Frame(Local, 0))
	assert.Equal(t, s.Saved(), s.Frame(Local, 1))
	assert.NotEqual(t, s.Frame(Local, 0), s.Frame(Local, 1))

	assert.Equal(t, s.Received(), s.Frame(Remote, 0))
	assert.Equal(t, Blank, s.Frame(Remote, 1))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Cursor = CursorPosition{X: 5}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Wrap = WrapPolicy(9)
	assert.Error(t, cfg.Validate())
}
