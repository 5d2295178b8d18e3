package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_Validate(t *testing.T) {
	for _, a := range Actions {
		assert.NoError(t, a.Validate(), "action %s", a)
	}

	for _, a := range []Action{-1, 3, 42} {
		err := a.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidAction)
	}
}

func TestAction_Apply(t *testing.T) {
	tests := []struct {
		name     string
		heading  Heading
		action   Action
		expected Heading
	}{
		{"StraightKeepsHeading", Right, ActionStraight, Right},
		{"LeftFromRightIsUp", Right, ActionLeft, Up},
		{"RightFromRightIsDown", Right, ActionRight, Down},
		{"LeftFromUpWraps", Up, ActionLeft, Left},
		{"RightFromLeftWraps", Left, ActionRight, Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.action.Apply(tt.heading))
		})
	}
}

func TestRelativeAction(t *testing.T) {
	for current := Up; current <= Left; current++ {
		assert.Equal(t, ActionStraight, RelativeAction(current, current))
		assert.Equal(t, ActionRight, RelativeAction(current, current.TurnRight()))
		assert.Equal(t, ActionLeft, RelativeAction(current, current.TurnLeft()))
		assert.Equal(t, ActionStraight, RelativeAction(current, current.Opposite()))
	}
}

func TestRelativeActionRoundTrip(t *testing.T) {
	for current := Up; current <= Left; current++ {
		for _, target := range []Heading{current.TurnLeft(), current, current.TurnRight()} {
			assert.Equal(t, target, RelativeAction(current, target).Apply(current))
		}
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "straight", ActionStraight.String())
	assert.Equal(t, "left", ActionLeft.String())
	assert.Equal(t, "right", ActionRight.String())
	assert.Equal(t, "action(9)", Action(9).String())
}
