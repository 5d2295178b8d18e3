package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRewardConfig(t *testing.T) {
	rc := DefaultRewardConfig()
	assert.NoError(t, rc.Validate())
	assert.Equal(t, 20, rc.StagnationLimit)
	assert.InDelta(t, -10.02, rc.StepCost+rc.Collision, 1e-12)
}

func TestRewardConfigValidate(t *testing.T) {
	rc := DefaultRewardConfig()
	rc.StagnationLimit = 0
	assert.Error(t, rc.Validate())
}

func TestRewardBreakdown(t *testing.T) {
	b := RewardBreakdown{StepCost: -0.02, Food: 10, Distance: 0.15, Alignment: 0.03}
	assert.InDelta(t, 10.16, b.Total(), 1e-9)
	assert.InDelta(t, 0.18, b.Shaping(), 1e-9)
	assert.Zero(t, RewardBreakdown{}.Total())
}
