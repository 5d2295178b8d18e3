package learning

import (
	"math/rand"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// Policy picks an action for an observation
type Policy interface {
	Act(obs int) core.Action
}

// GreedyPolicy always takes the highest valued action, lowest index on ties.
type GreedyPolicy struct {
	Table *ValueTable
}

func (p GreedyPolicy) Act(obs int) core.Action {
	return p.Table.Argmax(obs)
}

// EpsilonGreedyPolicy takes a uniformly random action with probability
// Epsilon and the greedy action otherwise. It draws from its own rng so
// exploration never perturbs the simulator's food sequence.
type EpsilonGreedyPolicy struct {
	Table   *ValueTable
	Epsilon float64
	rng     *rand.Rand
}

func NewEpsilonGreedyPolicy(table *ValueTable, epsilon float64, rng *rand.Rand) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{Table: table, Epsilon: epsilon, rng: rng}
}

func (p *EpsilonGreedyPolicy) Act(obs int) core.Action {
	if p.rng.Float64() < p.Epsilon {
		return core.Actions[p.rng.Intn(core.NumActions)]
	}
	return p.Table.Argmax(obs)
}
