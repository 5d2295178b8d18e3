package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/testutil"
)

func noHazard(core.Coordinate) bool { return false }

func TestFeaturesIndex_CoversRangeExactlyOnce(t *testing.T) {
	seen := make(map[int]Features, NumObservations)

	for _, dl := range []bool{false, true} {
		for _, df := range []bool{false, true} {
			for _, dr := range []bool{false, true} {
				for b := BearingLeft; b <= BearingRight; b++ {
					for h := core.Up; h <= core.Left; h++ {
						f := Features{DangerLeft: dl, DangerForward: df, DangerRight: dr, Food: b, Heading: h}
						idx := f.Index()
						require.True(t, idx >= 0 && idx < NumObservations, "index %d out of range", idx)
						_, dup := seen[idx]
						require.False(t, dup, "index %d produced twice", idx)
						seen[idx] = f

						decoded, err := DecodeObservation(idx)
						require.NoError(t, err)
						assert.Equal(t, f, decoded)
					}
				}
			}
		}
	}
	assert.Len(t, seen, NumObservations)
}

func TestFeaturesIndex_MixedRadix(t *testing.T) {
	f := Features{DangerLeft: true, DangerForward: false, DangerRight: true, Food: BearingRight, Heading: core.Left}
	assert.Equal(t, ((((1*2+0)*2+1)*3+2)*4 + 3), f.Index())
	assert.Equal(t, 71, f.Index())

	assert.Equal(t, 0, Features{}.Index())
	assert.Equal(t, 95, Features{true, true, true, BearingRight, core.Left}.Index())
}

func TestDecodeObservation_OutOfRange(t *testing.T) {
	for _, obs := range []int{-1, NumObservations, 1000} {
		_, err := DecodeObservation(obs)
		assert.ErrorIs(t, err, ErrInvalidObservation)
	}
}

func TestExtractFeatures_FoodBearing(t *testing.T) {
	head := core.Coordinate{Row: 8, Col: 8}

	tests := []struct {
		name     string
		heading  core.Heading
		food     core.Coordinate
		expected Bearing
	}{
		{"AheadRight", core.Right, core.Coordinate{Row: 8, Col: 12}, BearingForward},
		{"UpWhileFacingRightIsLeft", core.Right, core.Coordinate{Row: 2, Col: 3}, BearingLeft},
		{"DownWhileFacingRightIsRight", core.Right, core.Coordinate{Row: 12, Col: 9}, BearingRight},
		{"BehindTiesLeftAndRight", core.Right, core.Coordinate{Row: 8, Col: 2}, BearingLeft},
		{"DiagonalTiesLeftAndForward", core.Right, core.Coordinate{Row: 5, Col: 11}, BearingLeft},
		{"DiagonalTiesForwardAndRight", core.Right, core.Coordinate{Row: 11, Col: 11}, BearingForward},
		{"FacingUpFoodRight", core.Up, core.Coordinate{Row: 8, Col: 14}, BearingRight},
		{"FacingDownFoodRightIsLeft", core.Down, core.Coordinate{Row: 8, Col: 14}, BearingLeft},
		{"FacingLeftFoodAhead", core.Left, core.Coordinate{Row: 8, Col: 0}, BearingForward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ExtractFeatures(head, tt.heading, tt.food, noHazard)
			assert.Equal(t, tt.expected, f.Food)
			assert.Equal(t, tt.heading, f.Heading)
			assert.False(t, f.DangerLeft || f.DangerForward || f.DangerRight)
		})
	}
}

func TestExtractFeatures_DangerOrder(t *testing.T) {
	head := core.Coordinate{Row: 5, Col: 5}
	// only the cell above the head is dangerous
	above := func(c core.Coordinate) bool { return c == core.Coordinate{Row: 4, Col: 5} }

	f := ExtractFeatures(head, core.Right, core.Coordinate{}, above)
	assert.Equal(t, Features{DangerLeft: true, Food: BearingLeft, Heading: core.Right}, f)

	f = ExtractFeatures(head, core.Up, core.Coordinate{}, above)
	assert.True(t, f.DangerForward)
	assert.False(t, f.DangerLeft)

	f = ExtractFeatures(head, core.Left, core.Coordinate{}, above)
	assert.True(t, f.DangerRight)
	assert.False(t, f.DangerForward)
}

func TestSimulatorFeatures_AfterReset(t *testing.T) {
	sim := newTestSimulator(t, 16)
	obs, _ := sim.Reset()

	f := sim.Features()
	assert.False(t, f.DangerLeft)
	assert.False(t, f.DangerForward)
	assert.False(t, f.DangerRight)
	assert.Equal(t, core.Right, f.Heading)
	assert.Equal(t, obs, f.Index())
}

func TestSimulatorFeatures_Walls(t *testing.T) {
	sim := newTestSimulator(t, 16)
	// top-right corner, heading right: forward and left are walls
	setState(t, sim, State{
		Body:    testutil.StraightSnake(core.Coordinate{Row: 0, Col: 15}, core.Right, 3),
		Heading: core.Right,
		Food:    core.Coordinate{Row: 10, Col: 10},
	})

	f := sim.Features()
	assert.True(t, f.DangerLeft)
	assert.True(t, f.DangerForward)
	assert.False(t, f.DangerRight)
	assert.Equal(t, BearingRight, f.Food)
}

func TestSimulatorFeatures_TailIsNotDanger(t *testing.T) {
	sim := newTestSimulator(t, 16)
	setState(t, sim, State{Body: testutil.SquareSnake(core.Coordinate{Row: 8, Col: 8}), Heading: core.Up, Food: core.Coordinate{Row: 0, Col: 0}})
	assert.False(t, sim.Features().DangerRight, "the tail cell vacates on a normal move")

	setState(t, sim, State{Body: testutil.HookSnake(core.Coordinate{Row: 8, Col: 8}), Heading: core.Up, Food: core.Coordinate{Row: 0, Col: 0}})
	assert.True(t, sim.Features().DangerRight)
}

func TestEncodingIsLossy(t *testing.T) {
	a := newTestSimulator(t, 16)
	b := newTestSimulator(t, 16)

	setState(t, a, State{
		Body:    []core.Coordinate{{Row: 8, Col: 8}, {Row: 8, Col: 7}, {Row: 8, Col: 6}},
		Heading: core.Right,
		Food:    core.Coordinate{Row: 8, Col: 12},
	})
	setState(t, b, State{
		Body:    []core.Coordinate{{Row: 3, Col: 4}, {Row: 3, Col: 3}, {Row: 3, Col: 2}, {Row: 3, Col: 1}},
		Heading: core.Right,
		Food:    core.Coordinate{Row: 3, Col: 9},
	})

	assert.NotEqual(t, a.View(), b.View())
	assert.Equal(t, a.Observation(), b.Observation())
}

func TestFeaturesString(t *testing.T) {
	f := Features{DangerForward: true, Food: BearingRight, Heading: core.Down}
	assert.Equal(t, "danger[L=0 F=1 R=0] food=right heading=down", f.String())
}
