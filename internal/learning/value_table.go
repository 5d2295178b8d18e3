package learning

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// Table dimensions
const (
	Rows = game.NumObservations
	Cols = core.NumActions
)

// ValueTable holds one estimated return per (observation, action) pair.
// It is created zeroed and never resized.
type ValueTable struct {
	m *mat.Dense
}

// NewValueTable returns a zeroed Rows x Cols table
func NewValueTable() *ValueTable {
	return &ValueTable{m: mat.NewDense(Rows, Cols, nil)}
}

// NewValueTableFrom copies values, which must be exactly Rows x Cols.
func NewValueTableFrom(values [][]float64) (*ValueTable, error) {
	if len(values) != Rows {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrShapeMismatch, len(values), Rows)
	}
	t := NewValueTable()
	for s, row := range values {
		if len(row) != Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, s, len(row), Cols)
		}
		t.m.SetRow(s, row)
	}
	return t, nil
}

// Dims returns the table shape
func (t *ValueTable) Dims() (int, int) { return t.m.Dims() }

func (t *ValueTable) Get(obs int, a core.Action) float64 {
	return t.m.At(obs, int(a))
}

func (t *ValueTable) Set(obs int, a core.Action, v float64) {
	t.m.Set(obs, int(a), v)
}

// Row returns a copy of the action values for obs
func (t *ValueTable) Row(obs int) []float64 {
	return mat.Row(nil, obs, t.m)
}

// Max is the largest action value for obs
func (t *ValueTable) Max(obs int) float64 {
	return floats.Max(t.m.RawRowView(obs))
}

// Argmax is the action with the largest value for obs. Ties resolve to the
// lowest action index.
func (t *ValueTable) Argmax(obs int) core.Action {
	return core.Action(floats.MaxIdx(t.m.RawRowView(obs)))
}

// Values copies the table out as rows
func (t *ValueTable) Values() [][]float64 {
	out := make([][]float64, Rows)
	for s := range out {
		out[s] = t.Row(s)
	}
	return out
}

// Clone returns an independent copy
func (t *ValueTable) Clone() *ValueTable {
	return &ValueTable{m: mat.DenseCopyOf(t.m)}
}

// Visited counts observations with at least one non-zero action value
func (t *ValueTable) Visited() int {
	n := 0
	for s := 0; s < Rows; s++ {
		for _, v := range t.m.RawRowView(s) {
			if v != 0 {
				n++
				break
			}
		}
	}
	return n
}

// CheckIndex validates an (observation, action) pair before it is used
// to address the table.
func CheckIndex(obs int, a core.Action) error {
	if obs < 0 || obs >= Rows {
		return fmt.Errorf("%w: observation %d", ErrInvalidObsAction, obs)
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidObsAction, err)
	}
	return nil
}
