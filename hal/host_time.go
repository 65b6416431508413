//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step(n uint64) {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	const tickDur = time.Millisecond
	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % tickDur
	t.stepN(ticks)
}

func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}

// HostCycleHz matches the 64MHz core clock of the nRF52833.
const HostCycleHz = 64_000_000

// hostCycles emulates the DWT cycle counter from the wall clock. Like the
// 32-bit hardware register it wraps after about 67 seconds.
type hostCycles struct {
	mu    sync.Mutex
	now   func() time.Time
	start time.Time
}

func newHostCycles() *hostCycles {
	return newHostCyclesWithClock(time.Now)
}

func newHostCyclesWithClock(now func() time.Time) *hostCycles {
	if now == nil {
		now = time.Now
	}
	return &hostCycles{now: now, start: now()}
}

func (c *hostCycles) Reset() {
	c.mu.Lock()
	c.start = c.now()
	c.mu.Unlock()
}

func (c *hostCycles) Cycles() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.now().Sub(c.start)
	if d < 0 {
		return 0
	}
	return uint32(uint64(d.Nanoseconds()) * (HostCycleHz / 1_000_000) / 1000)
}

func (c *hostCycles) Frequency() uint32 { return HostCycleHz }
