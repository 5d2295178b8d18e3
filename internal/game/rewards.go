package game

import "fmt"

// RewardConfig holds the reward shaping constants
type RewardConfig struct {
	StepCost        float64 `mapstructure:"step_cost" yaml:"step_cost"`
	Collision       float64 `mapstructure:"collision" yaml:"collision"`
	Food            float64 `mapstructure:"food" yaml:"food"`
	Closer          float64 `mapstructure:"closer" yaml:"closer"`
	Farther         float64 `mapstructure:"farther" yaml:"farther"`
	Alignment       float64 `mapstructure:"alignment" yaml:"alignment"`
	Stagnation      float64 `mapstructure:"stagnation" yaml:"stagnation"`
	StagnationLimit int     `mapstructure:"stagnation_limit" yaml:"stagnation_limit"`
}

// DefaultRewardConfig returns the default reward configuration
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		StepCost:        -0.02,
		Collision:       -10.0,
		Food:            10.0,
		Closer:          0.15,
		Farther:         -0.15,
		Alignment:       0.03,
		Stagnation:      -1.0,
		StagnationLimit: 20,
	}
}

// Validate checks the parts of the config the simulator depends on
func (rc RewardConfig) Validate() error {
	if rc.StagnationLimit <= 0 {
		return fmt.Errorf("stagnation limit must be positive, got %d", rc.StagnationLimit)
	}
	return nil
}

// RewardBreakdown is the per-term decomposition of a step reward. Terms that
// did not apply are zero.
type RewardBreakdown struct {
	StepCost   float64
	Collision  float64
	Food       float64
	Distance   float64
	Alignment  float64
	Stagnation float64
}

// Total sums the terms in the order the simulator applies them, so the
// result is bit-identical to StepResult.Reward.
func (b RewardBreakdown) Total() float64 {
	total := b.StepCost
	total += b.Collision
	total += b.Food
	total += b.Distance
	total += b.Alignment
	total += b.Stagnation
	return total
}

// Shaping is the sum of the distance and alignment terms
func (b RewardBreakdown) Shaping() float64 {
	return b.Distance + b.Alignment
}
