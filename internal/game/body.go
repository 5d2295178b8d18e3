package game

import "github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"

// body is the snake as a fixed-capacity ring buffer, head first.
type body struct {
	cells  []core.Coordinate
	head   int
	length int
}

func newBody(capacity int) *body {
	return &body{cells: make([]core.Coordinate, capacity)}
}

func (b *body) reset() {
	b.head = 0
	b.length = 0
}

func (b *body) len() int { return b.length }

// at returns segment i, where 0 is the head
func (b *body) at(i int) core.Coordinate {
	return b.cells[(b.head+i)%len(b.cells)]
}

func (b *body) tail() core.Coordinate {
	return b.at(b.length - 1)
}

// pushFront adds a new head. The caller guarantees capacity.
func (b *body) pushFront(c core.Coordinate) {
	b.head = (b.head - 1 + len(b.cells)) % len(b.cells)
	b.cells[b.head] = c
	b.length++
}

func (b *body) popBack() core.Coordinate {
	c := b.tail()
	b.length--
	return c
}

// snapshot copies the segments head first
func (b *body) snapshot() []core.Coordinate {
	out := make([]core.Coordinate, b.length)
	for i := range out {
		out[i] = b.at(i)
	}
	return out
}
