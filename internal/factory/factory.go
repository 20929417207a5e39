package factory

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/drawdash/drawdash/internal/api"
	"github.com/drawdash/drawdash/internal/dependencies/clock"
	"github.com/drawdash/drawdash/internal/dependencies/random"
	"github.com/drawdash/drawdash/internal/game"
	"github.com/drawdash/drawdash/internal/services/stats"
	"github.com/drawdash/drawdash/internal/services/words"
	"github.com/drawdash/drawdash/internal/storage"
	"github.com/drawdash/drawdash/internal/storage/memory"
	redisstorage "github.com/drawdash/drawdash/internal/storage/redis"
	"github.com/drawdash/drawdash/internal/transport/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordsService *words.Service
	StatsService *stats.Service
	Registry     *game.Registry
	Orchestrator *game.Orchestrator
	Hub          *ws.Hub

	// Router is the full HTTP handler (REST API plus websocket endpoint)
	Router http.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// GameConfig holds gameplay constants (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// WordsFile is a path to a custom word list (optional)
	// If empty, the built-in list is used
	WordsFile string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	gameCfg := cfg.GameConfig
	if gameCfg.PointsPerGuess == 0 {
		gameCfg = game.DefaultConfig()
	}

	app := newWithDependencies(store, clk, rnd, gameCfg, logger)

	if cfg.WordsFile != "" {
		if err := app.WordsService.LoadFromFile(cfg.WordsFile); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, gameCfg game.Config, logger *slog.Logger) *App {
	wordsService := words.New(rnd, logger)
	statsService := stats.New(store, clk, logger)
	hub := ws.NewHub(logger)
	registry := game.NewRegistry()
	orchestrator := game.NewOrchestrator(gameCfg, registry, wordsService, hub, statsService, logger)
	socket := ws.NewHandler(hub, orchestrator, logger)

	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		StatsService: statsService,
		GameSocket:   socket,
	})

	return &App{
		Store:        store,
		Clock:        clk,
		Random:       rnd,
		WordsService: wordsService,
		StatsService: statsService,
		Registry:     registry,
		Orchestrator: orchestrator,
		Hub:          hub,
		Router:       router,
	}
}
