package kernel

import (
	"context"
	"sync"
)

// Signal is a one-shot notification flag.
//
// Raise sets the flag and wakes waiters; it stays set until Clear.
type Signal struct {
	mu      sync.Mutex
	pending bool
	ch      chan struct{}
}

func (s *Signal) Raise() {
	s.mu.Lock()
	s.pending = true
	if s.ch != nil {
		close(s.ch)
		s.ch = nil
	}
	s.mu.Unlock()
}

func (s *Signal) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Signal) Clear() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

// Wait blocks until the flag is set. It does not clear it.
func (s *Signal) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.pending {
			s.mu.Unlock()
			return nil
		}
		if s.ch == nil {
			s.ch = make(chan struct{})
		}
		ch := s.ch
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}
