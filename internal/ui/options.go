package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/common"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/ui/renderer"
)

// HUDHeight is the status strip above the board
const HUDHeight = 20

// TicksPerSecond is the ebiten update rate; simulation speed is derived
// from it with frame counters.
const TicksPerSecond = 60

// Options configures a window
type Options struct {
	CellSize int
	FPS      int
	Title    string
	Palette  common.Palette
	// Episodes limits how many episodes a watch window plays. Zero is unlimited.
	Episodes int
}

// DefaultOptions mirrors the ui config defaults
func DefaultOptions() Options {
	return Options{CellSize: 40, FPS: 10, Title: "SnakeRL", Palette: common.DefaultPalette, Episodes: 5}
}

// framesPerStep converts a steps-per-second speed to an update interval
func framesPerStep(fps int) int {
	fps = common.Clamp(fps, 1, TicksPerSecond)
	return TicksPerSecond / fps
}

func newBoardRenderer(opts Options) *renderer.BoardRenderer {
	return renderer.NewBoardRenderer(opts.CellSize, opts.Palette, basicfont.Face7x13)
}

// Run opens a window sized for boardSize and runs g until it terminates.
func Run(g ebiten.Game, opts Options, boardSize int) error {
	side := boardSize * opts.CellSize
	ebiten.SetWindowSize(side, side+HUDHeight)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetTPS(TicksPerSecond)
	return ebiten.RunGame(g)
}
