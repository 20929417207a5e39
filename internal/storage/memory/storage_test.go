package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/drawdash/drawdash/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newUser(id, username string) *model.User {
	return &model.User{
		ID:        id,
		Username:  username,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// User tests

func (s *StorageSuite) TestUpsertUserCreates() {
	user, err := s.storage.UpsertUser(s.ctx, s.newUser("u-1", "alice"))
	s.Require().NoError(err)
	s.Equal("u-1", user.ID)
	s.Equal("alice", user.Username)
	s.Equal(0, user.TotalScore)
}

func (s *StorageSuite) TestUpsertUserReturnsExisting() {
	_, err := s.storage.UpsertUser(s.ctx, s.newUser("u-1", "alice"))
	s.Require().NoError(err)
	s.Require().NoError(s.storage.IncrementUserStats(s.ctx, "alice", 100, 1))

	user, err := s.storage.UpsertUser(s.ctx, s.newUser("u-2", "alice"))
	s.Require().NoError(err)
	s.Equal("u-1", user.ID, "second upsert must not replace the stored user")
	s.Equal(100, user.TotalScore)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestIncrementUserStats() {
	_, err := s.storage.UpsertUser(s.ctx, s.newUser("u-1", "alice"))
	s.Require().NoError(err)

	s.Require().NoError(s.storage.IncrementUserStats(s.ctx, "alice", 100, 1))
	s.Require().NoError(s.storage.IncrementUserStats(s.ctx, "alice", 100, 1))

	user, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(200, user.TotalScore)
	s.Equal(2, user.WordsGuessed)
}

func (s *StorageSuite) TestIncrementGamesPlayed() {
	_, err := s.storage.UpsertUser(s.ctx, s.newUser("u-1", "alice"))
	s.Require().NoError(err)

	s.Require().NoError(s.storage.IncrementGamesPlayed(s.ctx, "alice"))

	user, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, user.GamesPlayed)
}

func (s *StorageSuite) TestIncrementGamesPlayedUnknownUser() {
	s.ErrorIs(s.storage.IncrementGamesPlayed(s.ctx, "nobody"), model.ErrUserNotFound)
}

func (s *StorageSuite) TestIncrementUserStatsUnknownUser() {
	err := s.storage.IncrementUserStats(s.ctx, "nobody", 100, 1)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestTopUsersOrderedByScore() {
	for _, u := range []struct {
		name  string
		score int
	}{
		{"alice", 300},
		{"bob", 500},
		{"carol", 100},
	} {
		_, err := s.storage.UpsertUser(s.ctx, s.newUser("id-"+u.name, u.name))
		s.Require().NoError(err)
		s.Require().NoError(s.storage.IncrementUserStats(s.ctx, u.name, u.score, 1))
	}

	top, err := s.storage.TopUsers(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal("bob", top[0].Username)
	s.Equal("alice", top[1].Username)
}

func (s *StorageSuite) TestTopUsersEmptyStore() {
	top, err := s.storage.TopUsers(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(top)
}

// Game history tests

func (s *StorageSuite) TestRecordNewRound() {
	record := &model.RoundRecord{RoomID: "r1", Drawer: "alice", Word: "cat"}
	s.Require().NoError(s.storage.RecordNewRound(s.ctx, record))

	rounds := s.storage.RoundsForRoom("r1")
	s.Require().Len(rounds, 1)
	s.Equal("cat", rounds[0].Word)
}

func (s *StorageSuite) TestRecordRoundGuess() {
	guess := &model.RoundGuess{RoomID: "r1", Word: "cat", Guesser: "bob", TimeToGuess: 12}
	s.Require().NoError(s.storage.RecordRoundGuess(s.ctx, guess))

	guesses := s.storage.GuessesForRoom("r1")
	s.Require().Len(guesses, 1)
	s.Equal("bob", guesses[0].Guesser)
	s.Equal(12, guesses[0].TimeToGuess)
}

func (s *StorageSuite) TestMarkGameFinished() {
	s.False(s.storage.IsGameFinished("r1"))
	s.Require().NoError(s.storage.MarkGameFinished(s.ctx, "r1"))
	s.True(s.storage.IsGameFinished("r1"))
}
