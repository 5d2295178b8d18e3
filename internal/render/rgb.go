package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/common"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
)

// RGBArray paints one pixel per cell: background, food, body and head.
// Row r of the board is pixel row r.
func RGBArray(v game.View, p common.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, v.BoardSize, v.BoardSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: p.Background}, image.Point{}, draw.Src)

	// body is painted last so a board-full head covers the stale food cell
	if v.Food.IsValid(v.BoardSize) {
		img.SetRGBA(v.Food.Col, v.Food.Row, p.Food)
	}
	for i, seg := range v.Body {
		if !seg.IsValid(v.BoardSize) {
			continue
		}
		c := p.Body
		if i == 0 {
			c = p.Head
		}
		img.SetRGBA(seg.Col, seg.Row, c)
	}
	return img
}

// Frame upscales RGBArray to cell pixels per cell and draws grid lines,
// giving the same picture as the window renderer.
func Frame(v game.View, p common.Palette, cell int) *image.RGBA {
	if cell < 1 {
		cell = 1
	}
	small := RGBArray(v, p)
	side := v.BoardSize * cell
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.NearestNeighbor.Scale(img, img.Bounds(), small, small.Bounds(), draw.Src, nil)

	if cell > 2 {
		for i := 0; i <= v.BoardSize; i++ {
			pos := i * cell
			if pos == side {
				pos--
			}
			hline(img, pos, p.Grid)
			vline(img, pos, p.Grid)
		}
	}
	return img
}

func hline(img *image.RGBA, y int, c color.RGBA) {
	for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
		img.SetRGBA(x, y, c)
	}
}

func vline(img *image.RGBA, x int, c color.RGBA) {
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		img.SetRGBA(x, y, c)
	}
}

// WritePNG saves img to path
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
