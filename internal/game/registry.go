package game

import (
	"sync"
)

// Room pairs a session with the mutex that serializes every mutation on
// it. Event handlers and timer ticks for a room all take this lock, so no
// two operations on the same session ever interleave partway.
type Room struct {
	mu      sync.Mutex
	Session *Session
}

// Lock acquires the room's serialization lock
func (r *Room) Lock() {
	r.mu.Lock()
}

// Unlock releases the room's serialization lock
func (r *Room) Unlock() {
	r.mu.Unlock()
}

// Registry maps room ids to live rooms. Creation and removal are its only
// mutating operations and are serialized by the registry mutex.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room for an id, creating it with the given
// session constructor on first reference. Reports whether the room was
// created by this call.
func (r *Registry) GetOrCreate(roomID string, create func() *Session) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.rooms[roomID]; ok {
		return room, false
	}

	room := &Room{Session: create()}
	r.rooms[roomID] = room
	return room, true
}

// Get returns the room for an id if it exists
func (r *Registry) Get(roomID string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	return room, ok
}

// Remove deletes a room. The caller must have ended the session's round
// first so no timer outlives the room.
func (r *Registry) Remove(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rooms, roomID)
}

// Len returns the number of live rooms
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.rooms)
}
