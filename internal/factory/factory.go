package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/wordtide/wordtide-go/internal/bus"
	membus "github.com/wordtide/wordtide-go/internal/bus/memory"
	redisbus "github.com/wordtide/wordtide-go/internal/bus/redis"
	"github.com/wordtide/wordtide-go/internal/dependencies/clock"
	"github.com/wordtide/wordtide-go/internal/dependencies/random"
	"github.com/wordtide/wordtide-go/internal/services/lexicon"
	"github.com/wordtide/wordtide-go/internal/services/pattern"
	"github.com/wordtide/wordtide-go/internal/services/room"
	"github.com/wordtide/wordtide-go/internal/services/scoring"
	"github.com/wordtide/wordtide-go/internal/services/turn"
	"github.com/wordtide/wordtide-go/internal/storage"
	"github.com/wordtide/wordtide-go/internal/storage/memory"
	redisstorage "github.com/wordtide/wordtide-go/internal/storage/redis"
)

// Backend type constants
const (
	BackendTypeMemory = "memory"
	BackendTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Store storage.RoomStore
	Bus   bus.Bus

	Clock  clock.Clock
	Random random.Random

	LexiconService   *lexicon.Service
	PatternGenerator *pattern.Generator
	ScoringService   *scoring.Service
	RoomManager      *room.Manager
	TurnEngine       *turn.Engine

	redisStore *redisstorage.Storage
}

// Config holds configuration for the application factory
type Config struct {
	// LexiconPath is the path to the word list file (optional)
	// If empty, the lexicon must be loaded manually
	LexiconPath string
	// PatternSeed seeds the prefix pattern generator
	PatternSeed int64
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// BackendType selects storage and bus backends ("memory" or "redis")
	// If empty, defaults to "memory"
	BackendType string
	// RedisConfig holds Redis connection settings (required if BackendType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired. The redis
// backend serves both the room store and the event bus from one
// connection config, so two processes pointed at the same redis share
// rooms and snapshots.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	backendType := cfg.BackendType
	if backendType == "" {
		backendType = BackendTypeMemory
	}

	var (
		store      storage.RoomStore
		eventBus   bus.Bus
		redisStore *redisstorage.Storage
	)

	switch backendType {
	case BackendTypeMemory:
		store = memory.New()
		eventBus = membus.New(logger)
	case BackendTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when BackendType is redis")
		}
		rs, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		redisStore = rs
		store = rs
		eventBus = redisbus.New(rs.Client(), logger)
	default:
		return nil, errors.New("invalid BackendType: must be 'memory' or 'redis'")
	}

	app := newWithDependencies(store, eventBus, clock.New(), random.New(), cfg.PatternSeed, logger)
	app.redisStore = redisStore

	if cfg.LexiconPath != "" {
		if err := app.LexiconService.LoadFromFile(cfg.LexiconPath); err != nil {
			// Startable without a lexicon; submissions are rejected until
			// one is loaded
			logger.Warn("could not load lexicon",
				slog.String("path", cfg.LexiconPath),
				slog.String("error", err.Error()))
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.RoomStore,
	eventBus bus.Bus,
	clk clock.Clock,
	rnd random.Random,
	patternSeed int64,
	logger *slog.Logger,
) *App {
	lexiconService := lexicon.New()
	patternGenerator := pattern.New(patternSeed)
	scoringService := scoring.New()
	roomManager := room.NewManager(store, eventBus, clk, rnd, logger)
	turnEngine := turn.NewEngine(roomManager, lexiconService, patternGenerator, scoringService, clk, logger)

	return &App{
		Store:            store,
		Bus:              eventBus,
		Clock:            clk,
		Random:           rnd,
		LexiconService:   lexiconService,
		PatternGenerator: patternGenerator,
		ScoringService:   scoringService,
		RoomManager:      roomManager,
		TurnEngine:       turnEngine,
	}
}

// Close releases backend connections
func (a *App) Close() error {
	if a.redisStore != nil {
		return a.redisStore.Close()
	}
	return nil
}
