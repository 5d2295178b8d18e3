package common

import (
	"image/color"
)

// Palette is the colour scheme shared by every renderer
type Palette struct {
	Background color.RGBA
	Grid       color.RGBA
	Head       color.RGBA
	Body       color.RGBA
	Food       color.RGBA
	Text       color.RGBA
}

// DefaultPalette matches the classic SnakeRL look
var DefaultPalette = Palette{
	Background: color.RGBA{30, 30, 30, 255},
	Grid:       color.RGBA{50, 50, 50, 255},
	Head:       color.RGBA{0, 120, 120, 255},
	Body:       color.RGBA{0, 255, 255, 255},
	Food:       color.RGBA{250, 0, 0, 255},
	Text:       color.RGBA{230, 230, 230, 255},
}

// RGB converts a config triple to an opaque colour
func RGB(rgb [3]int) color.RGBA {
	return color.RGBA{uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), 255}
}

// PaletteFrom builds a palette from config triples
func PaletteFrom(background, grid, head, body, food [3]int) Palette {
	p := DefaultPalette
	p.Background = RGB(background)
	p.Grid = RGB(grid)
	p.Head = RGB(head)
	p.Body = RGB(body)
	p.Food = RGB(food)
	return p
}
