package jobs

import "context"

// semaphore is a counting semaphore. It bounds the running pipelines and
// serializes access to the accelerator.
type semaphore struct {
	ch chan struct{}
}

func newSemaphore(capacity int) *semaphore {
	return &semaphore{
		ch: make(chan struct{}, max(1, capacity)),
	}
}

// acquire acquires a slot, blocking until one is free or ctx is done.
func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	<-s.ch
}

// with runs fn while holding a slot.
func (s *semaphore) with(ctx context.Context, fn func()) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()
	fn()
	return nil
}

func (s *semaphore) inUse() int { return len(s.ch) }

func (s *semaphore) capacity() int { return cap(s.ch) }
