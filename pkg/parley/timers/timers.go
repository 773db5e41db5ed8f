package timers

import (
	"sync"
	"time"
)

// Handle identifies a scheduled callback.
type Handle uint64

// Scheduler fires callbacks after a delay. Cancel is a no-op for handles whose
// timer already fired, so racing a cancellation against the firing is safe.
type Scheduler interface {
	Schedule(delay time.Duration, callback func()) Handle
	Cancel(handle Handle)
}

func NewScheduler() Scheduler {
	return &scheduler{
		pending: map[Handle]*time.Timer{},
	}
}

type scheduler struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]*time.Timer
}

func (s *scheduler) Schedule(delay time.Duration, callback func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	handle := s.next

	s.pending[handle] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.pending, handle)
		s.mu.Unlock()

		callback()
	})

	return handle
}

func (s *scheduler) Cancel(handle Handle) {
	s.mu.Lock()
	timer, ok := s.pending[handle]
	delete(s.pending, handle)
	s.mu.Unlock()

	if ok {
		timer.Stop()
	}
}
