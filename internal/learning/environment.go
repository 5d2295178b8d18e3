package learning

import (
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// Environment is the episodic interface the trainer and runner drive.
// *game.Simulator satisfies it.
type Environment interface {
	Reset() (int, game.Info)
	ResetSeed(seed int64) (int, game.Info)
	Step(a core.Action) (game.StepResult, error)
}

// StepObserver sees every step of an observed episode, after it is applied
type StepObserver func(episode int, a core.Action, res game.StepResult)

var _ Environment = (*game.Simulator)(nil)
