package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/drawdash/drawdash/internal/model"
)

// Orchestrator is the game-side consumer of client events
type Orchestrator interface {
	HandleJoin(connID model.ConnID, roomID, username string)
	HandleGuess(connID model.ConnID, guess string)
	HandleDraw(connID model.ConnID, data json.RawMessage)
	HandleDisconnect(connID model.ConnID)
}

type joinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type guessPayload struct {
	RoomID string `json:"roomId"`
	Guess  string `json:"guess"`
}

// Handler upgrades HTTP requests to websocket connections and routes
// decoded client events to the orchestrator
type Handler struct {
	hub      *Hub
	orch     Orchestrator
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new websocket handler
func NewHandler(hub *Hub, orch Orchestrator, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		orch:   orch,
		logger: logger.With(slog.String("component", "ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Game clients are served from arbitrary origins
				return true
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := newClient(model.ConnID(uuid.NewString()), conn)
	h.hub.Register(client)

	go client.writePump()
	h.readLoop(client)
}

// readLoop consumes inbound frames until the connection drops, then
// tears the client down. Unregistering before notifying the
// orchestrator keeps departure broadcasts away from the leaver.
func (h *Handler) readLoop(client *Client) {
	defer func() {
		h.hub.Unregister(client.id)
		h.orch.HandleDisconnect(client.id)
	}()

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error",
					slog.String("connId", string(client.id)),
					slog.String("error", err.Error()),
				)
			}
			return
		}

		var msg struct {
			Event model.EventName `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Warn("invalid client frame",
				slog.String("connId", string(client.id)),
				slog.String("error", err.Error()),
			)
			continue
		}

		switch msg.Event {
		case model.EventJoinRoom:
			var p joinRoomPayload
			if err := json.Unmarshal(msg.Data, &p); err != nil || p.RoomID == "" || p.Username == "" {
				h.hub.ToConn(client.id, model.EventError, model.ErrorPayload{Message: "Failed to join room"})
				continue
			}
			h.orch.HandleJoin(client.id, p.RoomID, p.Username)

		case model.EventGuess:
			var p guessPayload
			if err := json.Unmarshal(msg.Data, &p); err != nil {
				continue
			}
			h.orch.HandleGuess(client.id, p.Guess)

		case model.EventDraw:
			h.orch.HandleDraw(client.id, msg.Data)

		default:
			h.logger.Warn("unknown client event",
				slog.String("connId", string(client.id)),
				slog.String("event", string(msg.Event)),
			)
		}
	}
}
