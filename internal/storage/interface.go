package storage

import (
	"context"

	"github.com/drawdash/drawdash/internal/model"
)

// Store defines the interface for persistent user stats and game history
type Store interface {
	// User operations.
	// UpsertUser inserts the given user if the username is not yet known
	// and returns the stored record either way.
	UpsertUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	IncrementUserStats(ctx context.Context, username string, scoreDelta, wordsGuessedDelta int) error
	IncrementGamesPlayed(ctx context.Context, username string) error
	TopUsers(ctx context.Context, limit int) ([]*model.User, error)

	// Game history operations
	RecordNewRound(ctx context.Context, record *model.RoundRecord) error
	RecordRoundGuess(ctx context.Context, guess *model.RoundGuess) error
	MarkGameFinished(ctx context.Context, roomID string) error
}
