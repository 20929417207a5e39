package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "drawdash"

// userKey returns the Redis key for a user's stats hash
func userKey(username string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, username)
}

// leaderboardKey returns the Redis key for the global score sorted set
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}

// roundsKey returns the Redis key for a room's round history list
func roundsKey(roomID string) string {
	return fmt.Sprintf("%s:rounds:%s", keyPrefix, roomID)
}

// guessesKey returns the Redis key for a room's correct-guess history list
func guessesKey(roomID string) string {
	return fmt.Sprintf("%s:guesses:%s", keyPrefix, roomID)
}

// gameKey returns the Redis key for a room's game status hash
func gameKey(roomID string) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, roomID)
}
