package core

// Tile is the content of a single board cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileBody
	TileFood
)

// Board is a square occupancy grid, row-major. It mirrors the snake body and
// the food so collision and free-cell queries are O(1).
type Board struct {
	Size int
	T    []Tile // length = Size*Size
	free int
}

func NewBoard(size int) *Board {
	return &Board{Size: size, T: make([]Tile, size*size), free: size * size}
}

// Tile returns the content of c. Cells off the board read as TileEmpty.
func (b *Board) Tile(c Coordinate) Tile {
	if !c.IsValid(b.Size) {
		return TileEmpty
	}
	return b.T[c.ToIndex(b.Size)]
}

// Set writes t into cell c and keeps the free-cell count current
func (b *Board) Set(c Coordinate, t Tile) {
	idx := c.ToIndex(b.Size)
	if b.T[idx] == TileEmpty && t != TileEmpty {
		b.free--
	} else if b.T[idx] != TileEmpty && t == TileEmpty {
		b.free++
	}
	b.T[idx] = t
}

func (b *Board) IsBody(c Coordinate) bool { return b.Tile(c) == TileBody }

// FreeCells returns how many cells hold neither body nor food
func (b *Board) FreeCells() int { return b.free }

// Reset empties every cell
func (b *Board) Reset() {
	for i := range b.T {
		b.T[i] = TileEmpty
	}
	b.free = len(b.T)
}
