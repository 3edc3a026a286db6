package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/clock"
	"github.com/mcoot/battleshipgame-go/internal/dependencies/random"
	"github.com/mcoot/battleshipgame-go/internal/events"
	"github.com/mcoot/battleshipgame-go/internal/services/board"
	"github.com/mcoot/battleshipgame-go/internal/services/registry"
	"github.com/mcoot/battleshipgame-go/internal/services/session"
	"github.com/mcoot/battleshipgame-go/internal/storage"
	"github.com/mcoot/battleshipgame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/battleshipgame-go/internal/storage/redis"
	"github.com/mcoot/battleshipgame-go/internal/transport/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Engine
	Queue             *events.Queue
	Notifier          *events.Notifier
	BoardService      *board.Service
	SessionController *session.Controller
	Registry          *registry.Controller

	// Transport
	Hub     *ws.Hub
	Drainer *ws.Drainer
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
	// DrainInterval is how often queued events are delivered (optional)
	DrainInterval time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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

	return newWithDependencies(store, clock.New(), random.New(), cfg.DrainInterval, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, drainInterval time.Duration, logger *slog.Logger) *App {
	queue := events.NewQueue()
	notifier := events.NewNotifier(queue, logger)
	boardService := board.New(logger)
	sessionController := session.NewController(boardService, clk, rnd, logger)
	reg := registry.NewController(store, sessionController, notifier, clk, rnd, logger)
	hub := ws.NewHub(logger)
	drainer := ws.NewDrainer(queue, hub, drainInterval, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Queue:             queue,
		Notifier:          notifier,
		BoardService:      boardService,
		SessionController: sessionController,
		Registry:          reg,
		Hub:               hub,
		Drainer:           drainer,
	}
}
