package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/events"
)

// GameConfig holds everything needed to build a Simulator
type GameConfig struct {
	BoardSize int
	// Rewards defaults to DefaultRewardConfig when nil
	Rewards *RewardConfig
	// Rng is the private food source. It must not be shared with the
	// learner's exploration so the two stay independently reproducible.
	Rng      *rand.Rand
	Logger   zerolog.Logger
	GameID   string
	EventBus events.Publisher
}

// NewSimulator validates the config, fills in defaults and allocates the
// board. The returned simulator must be Reset before the first Step.
func NewSimulator(cfg GameConfig) (*Simulator, error) {
	logger := cfg.Logger.With().Str("component", "Simulator").Logger()

	if cfg.BoardSize < MinBoardSize {
		return nil, fmt.Errorf("board size %d, need at least %d: %w", cfg.BoardSize, MinBoardSize, ErrInvalidBoardSize)
	}

	rewards := DefaultRewardConfig()
	if cfg.Rewards != nil {
		rewards = *cfg.Rewards
	}
	if err := rewards.Validate(); err != nil {
		return nil, fmt.Errorf("reward config: %w", err)
	}

	if cfg.Rng == nil {
		logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.NewString()
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NopPublisher
	}

	s := &Simulator{
		size:     cfg.BoardSize,
		maxTicks: 4 * cfg.BoardSize * cfg.BoardSize,
		rewards:  rewards,
		rng:      cfg.Rng,
		logger:   logger.With().Str("game_id", cfg.GameID).Logger(),
		events:   cfg.EventBus,
		gameID:   cfg.GameID,
		board:    core.NewBoard(cfg.BoardSize),
		body:     newBody(cfg.BoardSize * cfg.BoardSize),
	}

	s.logger.Debug().
		Int("board_size", s.size).
		Int("max_ticks", s.maxTicks).
		Int("stagnation_limit", rewards.StagnationLimit).
		Msg("Simulator created")

	return s, nil
}
