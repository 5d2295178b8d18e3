package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

func TestBody_PushPopWrapsAround(t *testing.T) {
	b := newBody(4)
	b.pushFront(core.Coordinate{Row: 0, Col: 0})
	b.pushFront(core.Coordinate{Row: 0, Col: 1})
	b.pushFront(core.Coordinate{Row: 0, Col: 2})

	// slide far enough to wrap the ring several times
	for i := 3; i < 20; i++ {
		popped := b.popBack()
		assert.Equal(t, core.Coordinate{Row: 0, Col: i - 3}, popped)
		b.pushFront(core.Coordinate{Row: 0, Col: i})
		assert.Equal(t, 3, b.len())
		assert.Equal(t, core.Coordinate{Row: 0, Col: i}, b.at(0))
		assert.Equal(t, core.Coordinate{Row: 0, Col: i - 2}, b.tail())
	}

	assert.Equal(t, []core.Coordinate{{Row: 0, Col: 19}, {Row: 0, Col: 18}, {Row: 0, Col: 17}}, b.snapshot())
}

func TestBody_FillToCapacity(t *testing.T) {
	b := newBody(3)
	for i := 0; i < 3; i++ {
		b.pushFront(core.Coordinate{Row: i, Col: 0})
	}
	assert.Equal(t, 3, b.len())
	assert.Equal(t, core.Coordinate{Row: 2, Col: 0}, b.at(0))
	assert.Equal(t, core.Coordinate{Row: 0, Col: 0}, b.tail())

	b.reset()
	assert.Equal(t, 0, b.len())
	assert.Empty(t, b.snapshot())
}
