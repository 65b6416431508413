package kernel

import (
	"context"
	"fmt"
	"time"
)

// TickPeriod is the duration of one kernel tick.
const TickPeriod = time.Millisecond

// Context provides task-local access to kernel operations.
type Context struct {
	ctx    context.Context
	s      *System
	taskID TaskID
	name   string
}

// NewContext returns a context for running a task outside System.Run, mostly in tests.
func NewContext(ctx context.Context, s *System, name string) *Context {
	return &Context{ctx: ctx, s: s, name: name}
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// Name returns the name the task was registered with.
func (c *Context) Name() string { return c.name }

// Context returns the cancellation context of the task.
func (c *Context) Context() context.Context { return c.ctx }

// Done is closed when the task should stop.
func (c *Context) Done() <-chan struct{} { return c.ctx.Done() }

// Err reports why Done was closed.
func (c *Context) Err() error { return c.ctx.Err() }

// NowTick returns the last observed tick value.
func (c *Context) NowTick() uint64 {
	if c.s == nil {
		return 0
	}
	return c.s.NowTick()
}

// WaitTick blocks until tick advances past the provided value and returns the new tick.
func (c *Context) WaitTick(after uint64) (uint64, error) {
	if c.s == nil {
		<-c.ctx.Done()
		return 0, c.ctx.Err()
	}
	return c.s.WaitTick(c.ctx, after)
}

// Sleep blocks for at least d of kernel time, rounded up to whole ticks.
func (c *Context) Sleep(d time.Duration) error {
	if d <= 0 {
		return c.ctx.Err()
	}
	n := uint64((d + TickPeriod - 1) / TickPeriod)
	deadline := c.NowTick() + n
	now := c.NowTick()
	for now < deadline {
		var err error
		now, err = c.WaitTick(now)
		if err != nil {
			return err
		}
	}
	return nil
}

// Logf writes one diagnostic line prefixed with the task name.
func (c *Context) Logf(format string, args ...any) {
	if c.s == nil {
		return
	}
	c.s.logLine(c.name + ": " + fmt.Sprintf(format, args...))
}
