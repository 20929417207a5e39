package transport

import (
	"github.com/drawdash/drawdash/internal/model"
)

// Broadcaster delivers named events to live connections, grouped by room.
// Delivery is best-effort and non-blocking; the caller never learns whether
// a recipient actually received the event.
type Broadcaster interface {
	// JoinRoom adds a connection to a room group
	JoinRoom(connID model.ConnID, roomID string)

	// ToRoom sends an event to every connection in a room
	ToRoom(roomID string, event model.EventName, payload any)

	// ToRoomExcept sends an event to every connection in a room except one,
	// used for chat-style forwarding where the sender already has the data
	ToRoomExcept(roomID string, except model.ConnID, event model.EventName, payload any)

	// ToConn sends an event to a single connection
	ToConn(connID model.ConnID, event model.EventName, payload any)
}
