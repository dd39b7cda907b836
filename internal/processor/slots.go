package processor

import "context"

// slots bounds how many pipeline runs hold external resources at once.
type slots struct {
	ch chan struct{}
}

func newSlots(n int) *slots {
	return &slots{ch: make(chan struct{}, n)}
}

// tryAcquire takes a slot only if one is free right now.
func (s *slots) tryAcquire() bool {
	select {
	case s.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

// acquire blocks until a slot frees up or ctx is done.
func (s *slots) acquire(ctx context.Context) error {
	if s.tryAcquire() {
		return nil
	}
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *slots) release() { <-s.ch }

func (s *slots) busy() int { return len(s.ch) }
