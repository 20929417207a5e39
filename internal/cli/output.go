package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case UserStats:
		o.printUserStats(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// UserStats response type (matches API)
type UserStats struct {
	Username     string `json:"username"`
	TotalScore   int    `json:"total_score"`
	WordsGuessed int    `json:"words_guessed"`
	GamesPlayed  int    `json:"games_played"`
}

// Leaderboard response type
type Leaderboard struct {
	Users []UserStats `json:"users"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUserStats(u UserStats) {
	fmt.Printf("Username:      %s\n", u.Username)
	fmt.Printf("Total score:   %d\n", u.TotalScore)
	fmt.Printf("Words guessed: %d\n", u.WordsGuessed)
	fmt.Printf("Games played:  %d\n", u.GamesPlayed)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Users) == 0 {
		fmt.Println("No players yet")
		return
	}

	fmt.Printf("%-4s %-20s %8s %8s %8s\n", "#", "USERNAME", "SCORE", "WORDS", "GAMES")
	for i, u := range l.Users {
		fmt.Printf("%-4d %-20s %8d %8d %8d\n", i+1, u.Username, u.TotalScore, u.WordsGuessed, u.GamesPlayed)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
