// Package factory wires the application's services and dependencies.
package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/wordlebot-go/internal/dependencies/clock"
	"github.com/mcoot/wordlebot-go/internal/dependencies/random"
	"github.com/mcoot/wordlebot-go/internal/services/achievement"
	"github.com/mcoot/wordlebot-go/internal/services/daily"
	"github.com/mcoot/wordlebot-go/internal/services/game"
	"github.com/mcoot/wordlebot-go/internal/services/history"
	"github.com/mcoot/wordlebot-go/internal/services/identity"
	"github.com/mcoot/wordlebot-go/internal/services/session"
	"github.com/mcoot/wordlebot-go/internal/services/words"
	"github.com/mcoot/wordlebot-go/internal/storage"
	"github.com/mcoot/wordlebot-go/internal/storage/memory"
	redisstorage "github.com/mcoot/wordlebot-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// DefaultIdleTimeout is how long a session may sit untouched before the
// sweeper abandons it
const DefaultIdleTimeout = 5 * time.Minute

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordsService       *words.Service
	SessionRegistry    *session.Registry
	IdentityService    *identity.Service
	HistoryService     *history.Service
	DailyCoordinator   *daily.Coordinator
	AchievementService *achievement.Service
	GameController     *game.Controller
	Sweeper            *session.Sweeper
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// IdleTimeout is the session idle window before abandonment.
	// Zero means DefaultIdleTimeout; negative disables the sweeper.
	IdleTimeout time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
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

	clk := clock.New()
	rnd := random.New()

	idleTimeout := cfg.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = DefaultIdleTimeout
	}

	return newWithDependencies(store, clk, rnd, idleTimeout, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, idleTimeout time.Duration, logger *slog.Logger) *App {
	wordsService := words.New(store, rnd)
	sessionRegistry := session.NewRegistry(clk)
	identityService := identity.New(store, clk, rnd)
	historyService := history.New(store, clk, rnd, logger)
	dailyCoordinator := daily.NewCoordinator(store, wordsService, clk, logger)
	achievementService := achievement.New(store, clk, logger)

	gameController := game.NewController(
		wordsService,
		sessionRegistry,
		identityService,
		historyService,
		dailyCoordinator,
		achievementService,
		store,
		clk,
		rnd,
		logger,
	)

	sweeper := session.NewSweeper(sessionRegistry, gameController, clk, idleTimeout, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		WordsService:       wordsService,
		SessionRegistry:    sessionRegistry,
		IdentityService:    identityService,
		HistoryService:     historyService,
		DailyCoordinator:   dailyCoordinator,
		AchievementService: achievementService,
		GameController:     gameController,
		Sweeper:            sweeper,
	}
}
