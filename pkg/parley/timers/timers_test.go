package timers

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestScheduledCallbackFires(t *testing.T) {
	is := is.New(t)

	s := NewScheduler()
	fired := make(chan struct{})
	s.Schedule(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		is.Fail() // callback never fired
	}
}

func TestCancelPreventsFiring(t *testing.T) {
	is := is.New(t)

	s := NewScheduler()
	fired := false
	handle := s.Schedule(50*time.Millisecond, func() { fired = true })
	s.Cancel(handle)

	time.Sleep(100 * time.Millisecond)
	is.True(!fired)
}

func TestCancelAfterFiringIsNoOp(t *testing.T) {
	s := NewScheduler()
	fired := make(chan struct{})
	handle := s.Schedule(time.Millisecond, func() { close(fired) })

	<-fired
	s.Cancel(handle)
	s.Cancel(handle)
}
