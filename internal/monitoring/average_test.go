package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovingAverage(t *testing.T) {
	m := NewMovingAverage(3)
	assert.Zero(t, m.Value())

	assert.InDelta(t, 1.0, m.Add(1), 1e-12)
	assert.InDelta(t, 1.5, m.Add(2), 1e-12)
	assert.InDelta(t, 2.0, m.Add(3), 1e-12)
	assert.Equal(t, 3, m.Len())

	// window slides, oldest value drops out
	assert.InDelta(t, 3.0, m.Add(4), 1e-12)
	assert.InDelta(t, 4.0, m.Add(5), 1e-12)
	assert.InDelta(t, 5.0, m.Add(6), 1e-12)
	assert.Equal(t, 3, m.Len())
}

func TestMovingAverage_WindowClamp(t *testing.T) {
	m := NewMovingAverage(0)
	assert.Equal(t, 1, m.Window())
	m.Add(5)
	assert.InDelta(t, 7.0, m.Add(7), 1e-12)
}

func TestMovingAverage_Hundred(t *testing.T) {
	m := NewMovingAverage(DefaultWindow)
	for i := 1; i <= 150; i++ {
		m.Add(float64(i))
	}
	// mean of 51..150
	assert.InDelta(t, 100.5, m.Value(), 1e-9)
}
