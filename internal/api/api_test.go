package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/drawdash/drawdash/internal/api/apierr"
	"github.com/drawdash/drawdash/internal/api/response"
	"github.com/drawdash/drawdash/internal/dependencies/mocks"
	"github.com/drawdash/drawdash/internal/services/stats"
	"github.com/drawdash/drawdash/internal/storage/memory"
	"github.com/drawdash/drawdash/internal/testutil"
)

type APISuite struct {
	suite.Suite
	storage *memory.Storage
	stats   *stats.Service
	server  *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.storage = memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.stats = stats.New(s.storage, clk, testutil.NopLogger())

	router := NewRouter(RouterConfig{
		Logger:       testutil.NopLogger(),
		StatsService: s.stats,
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) get(path string, out any) *http.Response {
	resp, err := http.Get(s.server.URL + path)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (s *APISuite) TestHealth() {
	var health response.Health
	resp := s.get("/api/v1/health", &health)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", health.Status)
}

func (s *APISuite) TestLeaderboardEmpty() {
	var leaderboard response.Leaderboard
	resp := s.get("/api/v1/leaderboard", &leaderboard)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Empty(leaderboard.Users)
}

func (s *APISuite) TestLeaderboardRanksByScore() {
	s.stats.EnsureUser("alice")
	s.stats.EnsureUser("bob")
	s.stats.CorrectGuess("r1", "cat", "alice", 100, time.Second)
	s.stats.CorrectGuess("r1", "dog", "bob", 300, time.Second)

	var leaderboard response.Leaderboard
	resp := s.get("/api/v1/leaderboard", &leaderboard)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(leaderboard.Users, 2)
	s.Equal("bob", leaderboard.Users[0].Username)
	s.Equal(300, leaderboard.Users[0].TotalScore)
	s.Equal("alice", leaderboard.Users[1].Username)
}

func (s *APISuite) TestUserStats() {
	s.stats.EnsureUser("alice")
	s.stats.CorrectGuess("r1", "cat", "alice", 100, time.Second)

	var userStats response.UserStats
	resp := s.get("/api/v1/users/alice/stats", &userStats)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("alice", userStats.Username)
	s.Equal(100, userStats.TotalScore)
	s.Equal(1, userStats.WordsGuessed)
	s.Equal(1, userStats.GamesPlayed)
}

func (s *APISuite) TestUserStatsNotFound() {
	var errResp apierr.ErrorResponse
	resp := s.get("/api/v1/users/nobody/stats", &errResp)

	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal(apierr.CodeUserNotFound, errResp.Error.Code)
}
