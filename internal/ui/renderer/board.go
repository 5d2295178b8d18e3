package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/common"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
)

// BoardRenderer draws a game.View onto an ebiten image.
type BoardRenderer struct {
	cellSize int
	palette  common.Palette
	font     font.Face
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(cellSize int, palette common.Palette, f font.Face) *BoardRenderer {
	return &BoardRenderer{cellSize: cellSize, palette: palette, font: f}
}

// Size is the side length in pixels of a board of boardSize cells
func (br *BoardRenderer) Size(boardSize int) int {
	return boardSize * br.cellSize
}

// Draw renders the board with its top edge at offsetY.
func (br *BoardRenderer) Draw(screen *ebiten.Image, v game.View, offsetY int) {
	side := float32(br.Size(v.BoardSize))
	top := float32(offsetY)
	cs := float32(br.cellSize)

	vector.DrawFilledRect(screen, 0, top, side, side, br.palette.Background, false)

	// grid
	for i := 0; i <= v.BoardSize; i++ {
		p := float32(i) * cs
		vector.StrokeLine(screen, p, top, p, top+side, 1, br.palette.Grid, false)
		vector.StrokeLine(screen, 0, top+p, side, top+p, 1, br.palette.Grid, false)
	}

	if v.Food.IsValid(v.BoardSize) {
		br.fillCell(screen, v.Food.Row, v.Food.Col, offsetY, br.palette.Food)
	}
	for i := len(v.Body) - 1; i >= 0; i-- {
		seg := v.Body[i]
		c := br.palette.Body
		if i == 0 {
			c = br.palette.Head
		}
		br.fillCell(screen, seg.Row, seg.Col, offsetY, c)
	}
}

// fillCell paints a cell leaving a one pixel margin for the grid
func (br *BoardRenderer) fillCell(screen *ebiten.Image, row, col, offsetY int, c color.RGBA) {
	cs := float32(br.cellSize)
	x := float32(col)*cs + 1
	y := float32(row)*cs + float32(offsetY) + 1
	vector.DrawFilledRect(screen, x, y, cs-2, cs-2, c, false)
}

// DrawBanner centres msg over the board
func (br *BoardRenderer) DrawBanner(screen *ebiten.Image, boardSize, offsetY int, msg string) {
	if br.font == nil || msg == "" {
		return
	}
	side := br.Size(boardSize)
	b := text.BoundString(br.font, msg)
	w, h := b.Dx(), b.Dy()

	pad := 6
	bx := float32((side-w)/2 - pad)
	by := float32(offsetY + (side-h)/2 - pad)
	vector.DrawFilledRect(screen, bx, by, float32(w+2*pad), float32(h+2*pad), color.RGBA{0, 0, 0, 200}, false)

	x := (side - w) / 2
	y := offsetY + (side+h)/2
	text.Draw(screen, msg, br.font, x, y, br.palette.Text)
}
