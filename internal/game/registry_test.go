package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawdash/drawdash/internal/testutil"
)

func registryTestSession(roomID string) *Session {
	words := &stubWords{words: []string{"cat"}}
	cfg := SessionConfig{RoundDuration: 80, TickInterval: time.Hour}
	return NewSession(roomID, cfg, words, testutil.NopLogger(), func(uint64) {})
}

func TestRegistryGetOrCreate(t *testing.T) {
	registry := NewRegistry()

	room, created := registry.GetOrCreate("r1", func() *Session {
		return registryTestSession("r1")
	})
	require.True(t, created)
	require.NotNil(t, room.Session)

	again, created := registry.GetOrCreate("r1", func() *Session {
		t.Fatal("constructor must not run for an existing room")
		return nil
	})
	assert.False(t, created)
	assert.Same(t, room, again)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.Get("r1")
	assert.False(t, ok)

	room, _ := registry.GetOrCreate("r1", func() *Session {
		return registryTestSession("r1")
	})

	got, ok := registry.Get("r1")
	require.True(t, ok)
	assert.Same(t, room, got)
}

func TestRegistryRemove(t *testing.T) {
	registry := NewRegistry()
	registry.GetOrCreate("r1", func() *Session {
		return registryTestSession("r1")
	})

	registry.Remove("r1")
	registry.Remove("r1") // idempotent

	_, ok := registry.Get("r1")
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}
