package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTimerTicks(t *testing.T) {
	var ticks atomic.Int32
	timer := NewRoundTimer(5*time.Millisecond, func() {
		ticks.Add(1)
	})
	defer timer.Stop()

	require.Eventually(t, func() bool {
		return ticks.Load() >= 3
	}, time.Second, time.Millisecond)
}

func TestRoundTimerStop(t *testing.T) {
	var ticks atomic.Int32
	timer := NewRoundTimer(5*time.Millisecond, func() {
		ticks.Add(1)
	})

	timer.Stop()
	timer.Stop() // idempotent

	before := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, ticks.Load(), "no ticks after stop")
}
