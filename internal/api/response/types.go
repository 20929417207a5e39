package response

import (
	"github.com/drawdash/drawdash/internal/model"
)

// UserStats represents a user's persisted stats in API responses
type UserStats struct {
	Username     string `json:"username"`
	TotalScore   int    `json:"total_score"`
	WordsGuessed int    `json:"words_guessed"`
	GamesPlayed  int    `json:"games_played"`
}

// UserStatsFromModel converts a model.User to a response UserStats
func UserStatsFromModel(u *model.User) UserStats {
	return UserStats{
		Username:     u.Username,
		TotalScore:   u.TotalScore,
		WordsGuessed: u.WordsGuessed,
		GamesPlayed:  u.GamesPlayed,
	}
}

// Leaderboard is the response for the leaderboard endpoint
type Leaderboard struct {
	Users []UserStats `json:"users"`
}

// LeaderboardFromModel converts a ranked user list
func LeaderboardFromModel(users []*model.User) Leaderboard {
	entries := make([]UserStats, len(users))
	for i, u := range users {
		entries[i] = UserStatsFromModel(u)
	}
	return Leaderboard{Users: entries}
}

// Health is the response for the health endpoint
type Health struct {
	Status string `json:"status"`
}
