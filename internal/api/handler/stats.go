package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/drawdash/drawdash/internal/api/apierr"
	"github.com/drawdash/drawdash/internal/api/response"
	"github.com/drawdash/drawdash/internal/services/stats"
)

const leaderboardSize = 10

// StatsHandler serves the read-only stats endpoints
type StatsHandler struct {
	stats *stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *stats.Service) *StatsHandler {
	return &StatsHandler{stats: statsService}
}

// Leaderboard handles GET /leaderboard
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.stats.Leaderboard(r.Context(), leaderboardSize)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(users))
}

// UserStats handles GET /users/{username}/stats
func (h *StatsHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}

	user, err := h.stats.UserStats(r.Context(), username)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserStatsFromModel(user))
}
