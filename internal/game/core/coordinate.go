package core

import "fmt"

// Coordinate is a cell on the square board, addressed by row then column.
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a row-major board index
func FromIndex(idx, size int) Coordinate {
	return Coordinate{
		Row: idx / size,
		Col: idx % size,
	}
}

// IsValid checks if the coordinate lies inside a size x size board
func (c Coordinate) IsValid(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// ToIndex converts the coordinate to a row-major board index
func (c Coordinate) ToIndex(size int) int {
	return c.Row*size + c.Col
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Add returns the component-wise sum of two coordinates
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		Row: c.Row + other.Row,
		Col: c.Col + other.Col,
	}
}

// Sub returns the component-wise difference of two coordinates
func (c Coordinate) Sub(other Coordinate) Coordinate {
	return Coordinate{
		Row: c.Row - other.Row,
		Col: c.Col - other.Col,
	}
}

// Dot treats both coordinates as vectors and returns their dot product
func (c Coordinate) Dot(other Coordinate) int {
	return c.Row*other.Row + c.Col*other.Col
}

// Move returns the neighbouring coordinate one step along heading h
func (c Coordinate) Move(h Heading) Coordinate {
	return c.Add(h.Vector())
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Heading is the absolute direction the snake travels in. Values are cyclic,
// turning right is +1 and turning left is -1 modulo NumHeadings.
type Heading int

const (
	Up Heading = iota
	Right
	Down
	Left
)

// NumHeadings is the number of absolute headings
const NumHeadings = 4

// HeadingVectors provides (row, col) offsets for each heading
var HeadingVectors = [NumHeadings]Coordinate{
	Up:    {Row: -1, Col: 0},
	Right: {Row: 0, Col: 1},
	Down:  {Row: 1, Col: 0},
	Left:  {Row: 0, Col: -1},
}

// Valid reports whether h is one of the four headings
func (h Heading) Valid() bool {
	return h >= Up && h <= Left
}

// Vector returns the unit movement vector for the heading
func (h Heading) Vector() Coordinate {
	return HeadingVectors[h.normalize()]
}

// TurnLeft returns the heading rotated a quarter turn counter-clockwise
func (h Heading) TurnLeft() Heading {
	return (h + NumHeadings - 1).normalize()
}

// TurnRight returns the heading rotated a quarter turn clockwise
func (h Heading) TurnRight() Heading {
	return (h + 1).normalize()
}

// Opposite returns the reverse heading
func (h Heading) Opposite() Heading {
	return (h + 2).normalize()
}

func (h Heading) normalize() Heading {
	return ((h % NumHeadings) + NumHeadings) % NumHeadings
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("heading(%d)", int(h))
	}
}
