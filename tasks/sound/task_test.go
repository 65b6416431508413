package sound

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/kernel"
)

type recordSpeaker struct {
	mu     sync.Mutex
	notes  []hal.Note
	during func(n hal.Note)
}

func (s *recordSpeaker) PlayNote(n hal.Note, d time.Duration) error {
	if s.during != nil {
		s.during(n)
	}
	s.mu.Lock()
	s.notes = append(s.notes, n)
	s.mu.Unlock()
	return nil
}

func (s *recordSpeaker) played() []hal.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]hal.Note(nil), s.notes...)
}

type mockSpeaker struct {
	mock.Mock
}

func (m *mockSpeaker) PlayNote(n hal.Note, d time.Duration) error {
	return m.Called(n, d).Error(0)
}

func run(t *testing.T, task *Task) (stop func()) {
	t.Helper()
	sys := kernel.NewSystem(nil)
	sys.AddTask("sound", task)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sys.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("sound task did not stop")
		}
	}
}

func TestPlaysTuneOncePerTrigger(t *testing.T) {
	st := board.New(board.DefaultConfig())
	spk := &recordSpeaker{}
	stop := run(t, New(st, spk, DefaultConfig()))
	defer stop()

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, spk.played(), "nothing plays before a picture arrives")

	st.Receive(board.Blank)
	require.Eventually(t, func() bool { return !st.SoundPending() }, 2*time.Second, time.Millisecond)
	assert.Equal(t, DefaultTune, spk.played())

	time.Sleep(20 * time.Millisecond)
	assert.Len(t, spk.played(), 4)
}

func TestTriggerDuringTuneIsAbsorbed(t *testing.T) {
	st := board.New(board.DefaultConfig())
	spk := &recordSpeaker{}
	spk.during = func(n hal.Note) {
		if n == hal.NoteE5 {
			st.Receive(board.Blank)
		}
	}
	stop := run(t, New(st, spk, DefaultConfig()))
	defer stop()

	st.Receive(board.Blank)
	require.Eventually(t, func() bool { return !st.SoundPending() }, 2*time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, DefaultTune, spk.played())
}

func TestCustomTune(t *testing.T) {
	st := board.New(board.DefaultConfig())
	spk := &recordSpeaker{}
	stop := run(t, New(st, spk, Config{Tune: []hal.Note{hal.NoteA4}}))
	defer stop()

	st.Receive(board.Blank)
	require.Eventually(t, func() bool { return len(spk.played()) == 1 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, []hal.Note{hal.NoteA4}, spk.played())
}

func TestSpeakerErrorKeepsPlaying(t *testing.T) {
	st := board.New(board.DefaultConfig())
	spk := &mockSpeaker{}
	spk.On("PlayNote", hal.NoteD5, DefaultNoteLength).Return(errors.New("pwm busy")).Once()
	spk.On("PlayNote", mock.AnythingOfType("hal.Note"), DefaultNoteLength).Return(nil).Times(3)
	stop := run(t, New(st, spk, DefaultConfig()))
	defer stop()

	st.Receive(board.Blank)
	require.Eventually(t, func() bool { return !st.SoundPending() }, 2*time.Second, time.Millisecond)
	spk.AssertExpectations(t)
	spk.AssertNumberOfCalls(t, "PlayNote", 4)
}
