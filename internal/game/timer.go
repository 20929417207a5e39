package game

import (
	"sync"
	"time"
)

// RoundTimer is a cancellable recurring countdown bound to one active
// round. At most one live timer exists per session; arming a new round
// stops the previous timer first.
type RoundTimer struct {
	done     chan struct{}
	stopOnce sync.Once
}

// NewRoundTimer starts a timer that invokes tick once per interval until
// stopped. The callback runs on the timer's goroutine.
func NewRoundTimer(interval time.Duration, tick func()) *RoundTimer {
	t := &RoundTimer{
		done: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				tick()
			case <-t.done:
				return
			}
		}
	}()

	return t
}

// Stop cancels the timer. Idempotent and safe to call from any goroutine;
// a tick already in flight may still run, which is why ticks carry a round
// sequence for the receiver to validate.
func (t *RoundTimer) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
	})
}
