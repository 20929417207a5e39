package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/drawdash/drawdash/internal/api/handler"
	apimiddleware "github.com/drawdash/drawdash/internal/api/middleware"
	"github.com/drawdash/drawdash/internal/middleware"
	"github.com/drawdash/drawdash/internal/services/stats"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger       *slog.Logger
	StatsService *stats.Service
	// GameSocket serves the websocket endpoint the game runs over
	GameSocket http.Handler
}

// NewRouter creates the full HTTP router: the REST API plus the game
// websocket endpoint
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	statsHandler := handler.NewStatsHandler(cfg.StatsService)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/leaderboard", statsHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/users/{username}/stats", statsHandler.UserStats).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// The websocket endpoint skips the logging middleware: the connection
	// is long-lived and logs its own lifecycle
	if cfg.GameSocket != nil {
		r.Handle("/ws", cfg.GameSocket)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
