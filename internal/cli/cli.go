// Package cli holds the setup shared by the command binaries.
package cli

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/events/subscribers"
)

// ParseLevel maps a config level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetupLogging configures the global logger. JSON output is used when
// format is "json" or APP_ENV is production.
func SetupLogging(level, format string) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}

// SignalContext is cancelled on SIGINT or SIGTERM
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// NewSimulator builds a simulator from the game section. Seed zero draws
// the food seed from the clock. Episode events are logged at debug level.
func NewSimulator(gc config.GameConfig, seed int64, logger zerolog.Logger) (*game.Simulator, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rewards := gc.Rewards

	bus := events.NewEventBus(logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber("episode-log", logger, zerolog.DebugLevel))

	return game.NewSimulator(game.GameConfig{
		BoardSize: gc.BoardSize,
		Rewards:   &rewards,
		Rng:       rand.New(rand.NewSource(seed)),
		Logger:    logger,
		EventBus:  bus,
	})
}
