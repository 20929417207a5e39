package model

// EventName identifies a websocket event emitted to clients
type EventName string

// Server -> client events
const (
	EventPlayerJoined  EventName = "playerJoined"
	EventGameState     EventName = "gameState"
	EventDrawing       EventName = "drawing"
	EventCorrectGuess  EventName = "correctGuess"
	EventSystemMessage EventName = "systemMessage"
	EventRoundEnd      EventName = "roundEnd"
	EventNewRound      EventName = "newRound"
	EventNewGuess      EventName = "newGuess"
	EventPlayerLeft    EventName = "playerLeft"
	EventError         EventName = "error"
)

// Client -> server events
const (
	EventJoinRoom EventName = "joinRoom"
	EventGuess    EventName = "guess"
	EventDraw     EventName = "draw"
)

// PlayerJoinedPayload is broadcast to a room when a player joins
type PlayerJoinedPayload struct {
	Players []Player `json:"players"`
	Message string   `json:"message"`
}

// PlayerLeftPayload is broadcast to a room when a player leaves
type PlayerLeftPayload struct {
	Players []Player `json:"players"`
	Message string   `json:"message"`
}

// CorrectGuessPayload is broadcast when a guess matches the word
type CorrectGuessPayload struct {
	Username string   `json:"username"`
	Scores   []Player `json:"scores"`
}

// SystemMessagePayload carries informational chat messages
type SystemMessagePayload struct {
	Message string `json:"message"`
}

// RoundEndPayload reveals the word when a round finishes
type RoundEndPayload struct {
	Word   string   `json:"word"`
	Scores []Player `json:"scores"`
}

// NewRoundPayload announces the next drawer after the grace interval
type NewRoundPayload struct {
	Drawer       string `json:"drawer"`
	PreviousWord string `json:"previousWord"`
}

// NewGuessPayload forwards an incorrect guess as chat to the rest of the room
type NewGuessPayload struct {
	Username string `json:"username"`
	Guess    string `json:"guess"`
}

// ErrorPayload is sent to a single connection when a request fails
type ErrorPayload struct {
	Message string `json:"message"`
}
