package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/drawdash/drawdash/internal/dependencies/clock"
	"github.com/drawdash/drawdash/internal/model"
	"github.com/drawdash/drawdash/internal/storage"
)

const defaultTimeout = 3 * time.Second

// Service persists user stats and game history. Write operations are
// best-effort: a storage failure is logged and never surfaced to the
// game flow that triggered it.
type Service struct {
	store   storage.Store
	clock   clock.Clock
	logger  *slog.Logger
	timeout time.Duration
}

// New creates a new stats service
func New(store storage.Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "stats")),
		timeout: defaultTimeout,
	}
}

// EnsureUser registers a username on first sight and bumps its games
// played counter. Returns nil when storage is unavailable.
func (s *Service) EnsureUser(username string) *model.User {
	ctx, cancel := s.opCtx()
	defer cancel()

	candidate := &model.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: s.clock.Now(),
	}

	user, err := s.store.UpsertUser(ctx, candidate)
	if err != nil {
		s.logger.Error("failed to upsert user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if err := s.store.IncrementGamesPlayed(ctx, username); err != nil {
		s.logger.Error("failed to increment games played",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
	}
	return user
}

// RoundStarted records a new round in the room's history
func (s *Service) RoundStarted(roomID, drawer, word string) {
	ctx, cancel := s.opCtx()
	defer cancel()

	record := &model.RoundRecord{
		RoomID:    roomID,
		Drawer:    drawer,
		Word:      word,
		StartedAt: s.clock.Now(),
	}
	if err := s.store.RecordNewRound(ctx, record); err != nil {
		s.logger.Error("failed to record round start",
			slog.String("roomId", roomID),
			slog.String("error", err.Error()),
		)
	}
}

// CorrectGuess credits a guesser with points and records the guess in
// the room's history
func (s *Service) CorrectGuess(roomID, word, guesser string, points int, timeToGuess time.Duration) {
	ctx, cancel := s.opCtx()
	defer cancel()

	if err := s.store.IncrementUserStats(ctx, guesser, points, 1); err != nil {
		s.logger.Error("failed to credit guesser",
			slog.String("username", guesser),
			slog.String("error", err.Error()),
		)
	}

	guess := &model.RoundGuess{
		RoomID:      roomID,
		Word:        word,
		Guesser:     guesser,
		TimeToGuess: int(timeToGuess.Seconds()),
		GuessedAt:   s.clock.Now(),
	}
	if err := s.store.RecordRoundGuess(ctx, guess); err != nil {
		s.logger.Error("failed to record guess",
			slog.String("roomId", roomID),
			slog.String("error", err.Error()),
		)
	}
}

// GameFinished marks a room's game as finished in storage
func (s *Service) GameFinished(roomID string) {
	ctx, cancel := s.opCtx()
	defer cancel()

	if err := s.store.MarkGameFinished(ctx, roomID); err != nil {
		s.logger.Error("failed to mark game finished",
			slog.String("roomId", roomID),
			slog.String("error", err.Error()),
		)
	}
}

// UserStats returns the persisted stats for a username
func (s *Service) UserStats(ctx context.Context, username string) (*model.User, error) {
	return s.store.GetUserByUsername(ctx, username)
}

// Leaderboard returns the top users by total score
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*model.User, error) {
	return s.store.TopUsers(ctx, limit)
}

func (s *Service) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}
