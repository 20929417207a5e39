package model

// ConnID identifies a live websocket connection. It is not stable across
// reconnects; UserID is the durable account identity.
type ConnID string

// Player represents a participant in a room session.
// The JSON shape matches the wire format clients consume in rosters
// and score lists.
type Player struct {
	ConnID   ConnID `json:"id"`
	Username string `json:"username"`
	UserID   string `json:"userId"`
	Score    int    `json:"score"`
}
