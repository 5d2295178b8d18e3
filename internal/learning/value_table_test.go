package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

func TestNewValueTable(t *testing.T) {
	table := NewValueTable()
	r, c := table.Dims()
	assert.Equal(t, 96, r)
	assert.Equal(t, 3, c)
	assert.Zero(t, table.Visited())
	for s := 0; s < Rows; s++ {
		assert.Equal(t, core.ActionStraight, table.Argmax(s), "all-zero rows resolve to the first action")
	}
}

func TestValueTable_GetSetArgmax(t *testing.T) {
	table := NewValueTable()
	table.Set(10, core.ActionRight, 2.5)
	table.Set(10, core.ActionLeft, -1)

	assert.Equal(t, 2.5, table.Get(10, core.ActionRight))
	assert.Equal(t, 2.5, table.Max(10))
	assert.Equal(t, core.ActionRight, table.Argmax(10))
	assert.Equal(t, []float64{0, -1, 2.5}, table.Row(10))
	assert.Equal(t, 1, table.Visited())
}

func TestValueTable_ArgmaxTiesPickLowestIndex(t *testing.T) {
	table := NewValueTable()
	table.Set(5, core.ActionLeft, 3)
	table.Set(5, core.ActionRight, 3)
	assert.Equal(t, core.ActionLeft, table.Argmax(5))
}

func TestValueTable_RowIsACopy(t *testing.T) {
	table := NewValueTable()
	row := table.Row(0)
	row[0] = 99
	assert.Zero(t, table.Get(0, core.ActionStraight))
}

func TestValueTable_Clone(t *testing.T) {
	table := NewValueTable()
	table.Set(1, core.ActionLeft, 4)
	clone := table.Clone()
	clone.Set(1, core.ActionLeft, 8)

	assert.Equal(t, 4.0, table.Get(1, core.ActionLeft))
	assert.Equal(t, 8.0, clone.Get(1, core.ActionLeft))
}

func TestNewValueTableFrom(t *testing.T) {
	values := NewValueTable().Values()
	values[95][2] = 1.25

	table, err := NewValueTableFrom(values)
	require.NoError(t, err)
	assert.Equal(t, 1.25, table.Get(95, core.ActionRight))
	assert.Equal(t, values, table.Values())
}

func TestNewValueTableFrom_ShapeMismatch(t *testing.T) {
	tests := []struct {
		name   string
		values [][]float64
	}{
		{"TooFewRows", make([][]float64, 95)},
		{"TooManyRows", make([][]float64, 97)},
		{"NarrowRow", func() [][]float64 {
			v := NewValueTable().Values()
			v[40] = []float64{1, 2}
			return v
		}()},
		{"Empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewValueTableFrom(tt.values)
			assert.ErrorIs(t, err, ErrShapeMismatch)
		})
	}
}

func TestCheckIndex(t *testing.T) {
	assert.NoError(t, CheckIndex(0, core.ActionStraight))
	assert.NoError(t, CheckIndex(95, core.ActionRight))
	assert.ErrorIs(t, CheckIndex(-1, core.ActionStraight), ErrInvalidObsAction)
	assert.ErrorIs(t, CheckIndex(96, core.ActionStraight), ErrInvalidObsAction)
	assert.ErrorIs(t, CheckIndex(0, core.Action(3)), ErrInvalidObsAction)
}
