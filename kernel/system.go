package kernel

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TaskID identifies a task within a System, in registration order.
type TaskID uint8

// Task is a long-running activity. Run returns when ctx is cancelled or the task has nothing left to do.
type Task interface {
	Run(ctx *Context) error
}

// TaskFunc adapts a function to Task.
type TaskFunc func(ctx *Context) error

func (f TaskFunc) Run(ctx *Context) error { return f(ctx) }

// Logger receives task diagnostics. hal.Logger satisfies it.
type Logger interface {
	WriteLineString(s string)
}

type taskEntry struct {
	name string
	task Task
}

// System is the kernel state: registered tasks and the 1ms timebase.
type System struct {
	log Logger

	mu    sync.Mutex
	tick  uint64
	wake  chan struct{}
	tasks []taskEntry
}

// NewSystem creates a kernel instance. log may be nil.
func NewSystem(log Logger) *System {
	return &System{log: log, wake: make(chan struct{})}
}

// AddTask registers a task under name and returns its ID.
func (s *System) AddTask(name string, t Task) TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := TaskID(len(s.tasks))
	s.tasks = append(s.tasks, taskEntry{name: name, task: t})
	return id
}

// TickTo advances the timebase to seq and wakes tick waiters.
// Stale or repeated values are ignored.
func (s *System) TickTo(seq uint64) {
	s.mu.Lock()
	if seq <= s.tick {
		s.mu.Unlock()
		return
	}
	s.tick = seq
	close(s.wake)
	s.wake = make(chan struct{})
	s.mu.Unlock()
}

// NowTick returns the last observed tick value.
func (s *System) NowTick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// WaitTick blocks until the tick advances past after and returns the new tick.
func (s *System) WaitTick(ctx context.Context, after uint64) (uint64, error) {
	for {
		s.mu.Lock()
		now := s.tick
		wake := s.wake
		s.mu.Unlock()
		if now > after {
			return now, nil
		}
		select {
		case <-ctx.Done():
			return now, ctx.Err()
		case <-wake:
		}
	}
}

// Run starts every registered task and blocks until all have returned.
//
// A task that returns an error cancels the others. A panicking task is recovered,
// reported through the panic handler and turned into an error.
func (s *System) Run(ctx context.Context) error {
	s.mu.Lock()
	tasks := append([]taskEntry(nil), s.tasks...)
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range tasks {
		tc := &Context{ctx: gctx, s: s, taskID: TaskID(i), name: e.name}
		task := e.task
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					triggerPanic(PanicInfo{TaskID: tc.taskID, Task: tc.name, Value: r})
					err = fmt.Errorf("kernel: task %s panicked: %v", tc.name, r)
				}
			}()
			return task.Run(tc)
		})
	}
	return g.Wait()
}

func (s *System) logLine(line string) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(line)
}
