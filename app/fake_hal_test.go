package app

import (
	"strings"
	"sync"
	"time"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/radio/loopback"
)

type lineLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLog) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *lineLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *lineLog) count(sub string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			n++
		}
	}
	return n
}

type recordMatrix struct {
	mu     sync.Mutex
	frames [][]uint8
}

func (m *recordMatrix) Width() int  { return board.Width }
func (m *recordMatrix) Height() int { return board.Height }

func (m *recordMatrix) Show(rows []uint8) error {
	m.mu.Lock()
	m.frames = append(m.frames, append([]uint8(nil), rows...))
	m.mu.Unlock()
	return nil
}

func (m *recordMatrix) since(i int) [][]uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i > len(m.frames) {
		return nil
	}
	return append([][]uint8(nil), m.frames[i:]...)
}

func (m *recordMatrix) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

type recordSpeaker struct {
	mu    sync.Mutex
	notes []hal.Note
}

func (s *recordSpeaker) PlayNote(n hal.Note, d time.Duration) error {
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

type fakeCycles struct {
	mu     sync.Mutex
	n      uint32
	resets int
}

func (c *fakeCycles) Reset() {
	c.mu.Lock()
	c.n = 0
	c.resets++
	c.mu.Unlock()
}

func (c *fakeCycles) Cycles() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func (c *fakeCycles) Frequency() uint32 { return 64_000_000 }

func (c *fakeCycles) set(n uint32) {
	c.mu.Lock()
	c.n = n
	c.mu.Unlock()
}

func (c *fakeCycles) resetCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resets
}

// fakeTime ticks every 100us of wall time.
type fakeTime struct {
	ch chan uint64
}

func newFakeTime(stop <-chan struct{}) *fakeTime {
	t := &fakeTime{ch: make(chan uint64, 16)}
	go func() {
		var seq uint64
		for {
			seq++
			select {
			case <-stop:
				return
			case t.ch <- seq:
			}
			time.Sleep(100 * time.Microsecond)
		}
	}()
	return t
}

func (t *fakeTime) Ticks() <-chan uint64 { return t.ch }

type fakeHAL struct {
	log     *lineLog
	matrix  *recordMatrix
	a, b    *hal.ButtonPin
	gpio    hal.GPIO
	speaker *recordSpeaker
	cycles  *fakeCycles
	t       *fakeTime
	net     hal.Network
	serial  hal.Serial
}

func newFakeHAL(net hal.Network, stop <-chan struct{}) *fakeHAL {
	a := hal.NewButtonPin("A")
	b := hal.NewButtonPin("B")
	if net == nil {
		net = loopback.New()
	}
	return &fakeHAL{
		log:     &lineLog{},
		matrix:  &recordMatrix{},
		a:       a,
		b:       b,
		gpio:    hal.NewButtonGPIO(a, b),
		speaker: &recordSpeaker{},
		cycles:  &fakeCycles{},
		t:       newFakeTime(stop),
		net:     net,
	}
}

func (h *fakeHAL) Logger() hal.Logger       { return h.log }
func (h *fakeHAL) Matrix() hal.Matrix       { return h.matrix }
func (h *fakeHAL) GPIO() hal.GPIO           { return h.gpio }
func (h *fakeHAL) Speaker() hal.Speaker     { return h.speaker }
func (h *fakeHAL) Cycles() hal.CycleCounter { return h.cycles }
func (h *fakeHAL) Time() hal.Time           { return h.t }
func (h *fakeHAL) Network() hal.Network     { return h.net }
func (h *fakeHAL) Serial() hal.Serial       { return h.serial }
