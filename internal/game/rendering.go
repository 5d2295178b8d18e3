package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// Board symbols used by the plain text renderer
const (
	EmptySymbol = "·"
	HeadSymbol  = "@"
	BodySymbol  = "o"
	FoodSymbol  = "*"
)

// Grid returns the board as a row-major grid of symbols.
func (v View) Grid() [][]string {
	grid := make([][]string, v.BoardSize)
	for r := range grid {
		grid[r] = make([]string, v.BoardSize)
		for c := range grid[r] {
			grid[r][c] = EmptySymbol
		}
	}
	if v.Food.IsValid(v.BoardSize) {
		grid[v.Food.Row][v.Food.Col] = FoodSymbol
	}
	for i, seg := range v.Body {
		if !seg.IsValid(v.BoardSize) {
			continue
		}
		if i == 0 {
			grid[seg.Row][seg.Col] = HeadSymbol
		} else {
			grid[seg.Row][seg.Col] = BodySymbol
		}
	}
	return grid
}

// String renders the board without colour, one row per line, followed by a
// status line.
func (v View) String() string {
	var sb strings.Builder
	sb.Grow((v.BoardSize*2 + 1) * (v.BoardSize + 1))

	for _, row := range v.Grid() {
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}
	sb.WriteString(v.Status())
	sb.WriteByte('\n')
	return sb.String()
}

// Status is the one-line summary printed under a rendered board
func (v View) Status() string {
	status := fmt.Sprintf("score=%d tick=%d/%d heading=%s", v.Score, v.Tick, v.MaxTicks, v.Heading)
	if v.Done {
		status += " ended=" + v.Reason.String()
	}
	return status
}

// Contains reports whether c is one of the body segments
func (v View) Contains(c core.Coordinate) bool {
	for _, seg := range v.Body {
		if seg == c {
			return true
		}
	}
	return false
}
