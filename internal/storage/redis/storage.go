package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/drawdash/drawdash/internal/model"
	"github.com/drawdash/drawdash/internal/storage"
)

// Storage is a Redis-backed implementation of the store interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// User operations

func (s *Storage) UpsertUser(ctx context.Context, user *model.User) (*model.User, error) {
	key := userKey(user.Username)

	// HSetNX on the id field decides whether this is a fresh user; the
	// remaining fields are only written on first insert.
	created, err := s.client.HSetNX(ctx, key, "id", user.ID).Result()
	if err != nil {
		return nil, err
	}

	if created {
		pipe := s.client.Pipeline()
		pipe.HSet(ctx, key,
			"username", user.Username,
			"total_score", user.TotalScore,
			"words_guessed", user.WordsGuessed,
			"games_played", user.GamesPlayed,
			"created_at", user.CreatedAt.UTC().Format(time.RFC3339),
		)
		pipe.ZAddNX(ctx, leaderboardKey(), redis.Z{Score: float64(user.TotalScore), Member: user.Username})
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, err
		}
	}

	return s.GetUserByUsername(ctx, user.Username)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	fields, err := s.client.HGetAll(ctx, userKey(username)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrUserNotFound
	}
	return userFromFields(fields)
}

func (s *Storage) IncrementUserStats(ctx context.Context, username string, scoreDelta, wordsGuessedDelta int) error {
	exists, err := s.client.Exists(ctx, userKey(username)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrUserNotFound
	}

	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, userKey(username), "total_score", int64(scoreDelta))
	pipe.HIncrBy(ctx, userKey(username), "words_guessed", int64(wordsGuessedDelta))
	pipe.ZIncrBy(ctx, leaderboardKey(), float64(scoreDelta), username)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) IncrementGamesPlayed(ctx context.Context, username string) error {
	exists, err := s.client.Exists(ctx, userKey(username)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrUserNotFound
	}
	return s.client.HIncrBy(ctx, userKey(username), "games_played", 1).Err()
}

func (s *Storage) TopUsers(ctx context.Context, limit int) ([]*model.User, error) {
	if limit <= 0 {
		return nil, nil
	}

	usernames, err := s.client.ZRevRange(ctx, leaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(usernames))
	for _, username := range usernames {
		user, err := s.GetUserByUsername(ctx, username)
		if err != nil {
			// Leaderboard entry without a hash; skip rather than fail the query
			if errors.Is(err, model.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// Game history operations

func (s *Storage) RecordNewRound(ctx context.Context, record *model.RoundRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, roundsKey(record.RoomID), data)
	if s.cfg.HistoryTTL > 0 {
		pipe.Expire(ctx, roundsKey(record.RoomID), s.cfg.HistoryTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) RecordRoundGuess(ctx context.Context, guess *model.RoundGuess) error {
	data, err := json.Marshal(guess)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, guessesKey(guess.RoomID), data)
	if s.cfg.HistoryTTL > 0 {
		pipe.Expire(ctx, guessesKey(guess.RoomID), s.cfg.HistoryTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) MarkGameFinished(ctx context.Context, roomID string) error {
	pipe := s.client.Pipeline()
	pipe.HSet(ctx, gameKey(roomID), "status", "finished")
	if s.cfg.HistoryTTL > 0 {
		pipe.Expire(ctx, gameKey(roomID), s.cfg.HistoryTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func userFromFields(fields map[string]string) (*model.User, error) {
	user := &model.User{
		ID:       fields["id"],
		Username: fields["username"],
	}

	var err error
	if user.TotalScore, err = strconv.Atoi(fields["total_score"]); err != nil {
		return nil, err
	}
	if user.WordsGuessed, err = strconv.Atoi(fields["words_guessed"]); err != nil {
		return nil, err
	}
	if user.GamesPlayed, err = strconv.Atoi(fields["games_played"]); err != nil {
		return nil, err
	}
	if user.CreatedAt, err = time.Parse(time.RFC3339, fields["created_at"]); err != nil {
		return nil, err
	}
	return user, nil
}
