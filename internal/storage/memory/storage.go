package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/drawdash/drawdash/internal/model"
	"github.com/drawdash/drawdash/internal/storage"
)

// Storage is an in-memory implementation of the store interface
type Storage struct {
	mu sync.RWMutex

	users         map[string]*model.User
	rounds        map[string][]*model.RoundRecord
	guesses       map[string][]*model.RoundGuess
	finishedRooms map[string]bool
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[string]*model.User),
		rounds:        make(map[string][]*model.RoundRecord),
		guesses:       make(map[string][]*model.RoundGuess),
		finishedRooms: make(map[string]bool),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// User operations

func (s *Storage) UpsertUser(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.Username]; ok {
		return cloneUser(existing), nil
	}

	stored := cloneUser(user)
	s.users[user.Username] = stored
	return cloneUser(stored), nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *Storage) IncrementUserStats(ctx context.Context, username string, scoreDelta, wordsGuessedDelta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return model.ErrUserNotFound
	}
	user.TotalScore += scoreDelta
	user.WordsGuessed += wordsGuessedDelta
	return nil
}

func (s *Storage) IncrementGamesPlayed(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return model.ErrUserNotFound
	}
	user.GamesPlayed++
	return nil
}

func (s *Storage) TopUsers(ctx context.Context, limit int) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, cloneUser(u))
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].TotalScore != users[j].TotalScore {
			return users[i].TotalScore > users[j].TotalScore
		}
		return users[i].Username < users[j].Username
	})

	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

// Game history operations

func (s *Storage) RecordNewRound(ctx context.Context, record *model.RoundRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := *record
	s.rounds[record.RoomID] = append(s.rounds[record.RoomID], &r)
	return nil
}

func (s *Storage) RecordRoundGuess(ctx context.Context, guess *model.RoundGuess) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := *guess
	s.guesses[guess.RoomID] = append(s.guesses[guess.RoomID], &g)
	return nil
}

func (s *Storage) MarkGameFinished(ctx context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finishedRooms[roomID] = true
	return nil
}

// RoundsForRoom returns the recorded rounds for a room (test helper)
func (s *Storage) RoundsForRoom(roomID string) []*model.RoundRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rounds := make([]*model.RoundRecord, len(s.rounds[roomID]))
	copy(rounds, s.rounds[roomID])
	return rounds
}

// GuessesForRoom returns the recorded guesses for a room (test helper)
func (s *Storage) GuessesForRoom(roomID string) []*model.RoundGuess {
	s.mu.RLock()
	defer s.mu.RUnlock()

	guesses := make([]*model.RoundGuess, len(s.guesses[roomID]))
	copy(guesses, s.guesses[roomID])
	return guesses
}

// IsGameFinished reports whether a room has been marked finished (test helper)
func (s *Storage) IsGameFinished(roomID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finishedRooms[roomID]
}

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}
