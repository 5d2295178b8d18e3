package testutil

import (
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// StraightSnake returns a head-first body of the given length laid out in a
// straight line behind head, for a snake travelling along heading.
func StraightSnake(head core.Coordinate, heading core.Heading, length int) []core.Coordinate {
	body := make([]core.Coordinate, length)
	back := heading.Opposite()
	body[0] = head
	for i := 1; i < length; i++ {
		body[i] = body[i-1].Move(back)
	}
	return body
}

// HookSnake returns a five-segment body, heading Up, whose segment 3 sits
// immediately right of the head. Turning right is fatal.
//
//	. . 4
//	. H 3
//	. 1 2
func HookSnake(head core.Coordinate) []core.Coordinate {
	return []core.Coordinate{
		head,
		{Row: head.Row + 1, Col: head.Col},
		{Row: head.Row + 1, Col: head.Col + 1},
		{Row: head.Row, Col: head.Col + 1},
		{Row: head.Row - 1, Col: head.Col + 1},
	}
}

// SquareSnake returns a four-segment body, heading Up, whose tail sits
// immediately right of the head. Turning right is safe unless it also eats.
//
//	. H 3
//	. 1 2
func SquareSnake(head core.Coordinate) []core.Coordinate {
	return []core.Coordinate{
		head,
		{Row: head.Row + 1, Col: head.Col},
		{Row: head.Row + 1, Col: head.Col + 1},
		{Row: head.Row, Col: head.Col + 1},
	}
}
