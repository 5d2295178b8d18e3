package monitoring

import "gonum.org/v1/gonum/floats"

// DefaultWindow is the trailing window used for training progress
const DefaultWindow = 100

// MovingAverage is the mean of the most recent window values. Until the
// window fills, it is the mean of everything seen so far.
type MovingAverage struct {
	window int
	values []float64
	next   int
	full   bool
}

// NewMovingAverage creates a moving average over window values. A window
// below 1 is treated as 1.
func NewMovingAverage(window int) *MovingAverage {
	if window < 1 {
		window = 1
	}
	return &MovingAverage{window: window, values: make([]float64, 0, window)}
}

// Add records v and returns the updated average
func (m *MovingAverage) Add(v float64) float64 {
	if !m.full {
		m.values = append(m.values, v)
		if len(m.values) == m.window {
			m.full = true
		}
	} else {
		m.values[m.next] = v
		m.next = (m.next + 1) % m.window
	}
	return m.Value()
}

// Value returns the current average, or 0 before any value was added
func (m *MovingAverage) Value() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return floats.Sum(m.values) / float64(len(m.values))
}

// Len is the number of values currently inside the window
func (m *MovingAverage) Len() int { return len(m.values) }

// Window is the configured window size
func (m *MovingAverage) Window() int { return m.window }
