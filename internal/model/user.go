package model

import "time"

// User is the persistent account behind a player, keyed by username.
// Stats accumulate across sessions.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	TotalScore   int       `json:"totalScore"`
	GamesPlayed  int       `json:"gamesPlayed"`
	WordsGuessed int       `json:"wordsGuessed"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RoundRecord captures the start of a round for game history
type RoundRecord struct {
	RoomID    string    `json:"roomId"`
	Drawer    string    `json:"drawer"`
	Word      string    `json:"word"`
	StartedAt time.Time `json:"startedAt"`
}

// RoundGuess records a correct guess within a round
type RoundGuess struct {
	RoomID      string    `json:"roomId"`
	Word        string    `json:"word"`
	Guesser     string    `json:"guesser"`
	TimeToGuess int       `json:"timeToGuessSeconds"`
	GuessedAt   time.Time `json:"guessedAt"`
}
