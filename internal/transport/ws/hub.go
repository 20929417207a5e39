package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/drawdash/drawdash/internal/model"
	"github.com/drawdash/drawdash/internal/transport"
)

// envelope is the wire frame for every event in both directions
type envelope struct {
	Event model.EventName `json:"event"`
	Data  any             `json:"data"`
}

// Hub tracks live websocket connections and their room membership,
// and fans events out to them. The send channel of a client is only
// closed while holding the write lock, and only written to while
// holding the read lock with the client still registered, so a send
// can never race a close.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[model.ConnID]*Client
	rooms   map[string]map[model.ConnID]*Client
	roomOf  map[model.ConnID]string
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With(slog.String("component", "ws")),
		clients: make(map[model.ConnID]*Client),
		rooms:   make(map[string]map[model.ConnID]*Client),
		roomOf:  make(map[model.ConnID]string),
	}
}

// Ensure Hub implements the broadcaster interface
var _ transport.Broadcaster = (*Hub)(nil)

// Register adds a connection to the hub
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client registered",
		slog.String("connId", string(client.id)),
		slog.Int("totalClients", total),
	)
}

// Unregister removes a connection from the hub and its room group,
// closing its send channel. Idempotent.
func (h *Hub) Unregister(connID model.ConnID) {
	h.mu.Lock()
	client, ok := h.clients[connID]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, connID)
	if roomID, inRoom := h.roomOf[connID]; inRoom {
		delete(h.roomOf, connID)
		if members, exists := h.rooms[roomID]; exists {
			delete(members, connID)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	close(client.send)
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client unregistered",
		slog.String("connId", string(connID)),
		slog.Int("totalClients", total),
	)
}

// JoinRoom adds a connection to a room group. A connection belongs to at
// most one room; joining again moves it.
func (h *Hub) JoinRoom(connID model.ConnID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[connID]
	if !ok {
		return
	}

	if prev, inRoom := h.roomOf[connID]; inRoom && prev != roomID {
		if members, exists := h.rooms[prev]; exists {
			delete(members, connID)
			if len(members) == 0 {
				delete(h.rooms, prev)
			}
		}
	}

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[model.ConnID]*Client)
	}
	h.rooms[roomID][connID] = client
	h.roomOf[connID] = roomID
}

// ToRoom sends an event to every connection in a room
func (h *Hub) ToRoom(roomID string, event model.EventName, payload any) {
	h.sendToRoom(roomID, "", event, payload)
}

// ToRoomExcept sends an event to every connection in a room except one
func (h *Hub) ToRoomExcept(roomID string, except model.ConnID, event model.EventName, payload any) {
	h.sendToRoom(roomID, except, event, payload)
}

// ToConn sends an event to a single connection. No-op if the connection
// is gone.
func (h *Hub) ToConn(connID model.ConnID, event model.EventName, payload any) {
	message, err := h.encode(event, payload)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[connID]
	if !ok {
		return
	}
	h.deliver(client, message, event)
}

// ClientCount returns the number of registered connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize returns the number of connections in a room
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func (h *Hub) sendToRoom(roomID string, except model.ConnID, event model.EventName, payload any) {
	message, err := h.encode(event, payload)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, client := range h.rooms[roomID] {
		if id == except {
			continue
		}
		h.deliver(client, message, event)
	}
}

func (h *Hub) deliver(client *Client, message []byte, event model.EventName) {
	select {
	case client.send <- message:
	default:
		h.logger.Warn("message dropped - client buffer full",
			slog.String("connId", string(client.id)),
			slog.String("event", string(event)),
		)
	}
}

func (h *Hub) encode(event model.EventName, payload any) ([]byte, error) {
	message, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("failed to encode event",
			slog.String("event", string(event)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return message, nil
}
