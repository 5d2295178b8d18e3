package ui

import (
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/common"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/ui/input"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/ui/renderer"
)

// restartFrames is the pause after a game over before a new game starts
const restartFrames = TicksPerSecond * 3 / 10

// PlayGame lets a human steer the snake with WASD or the arrow keys.
type PlayGame struct {
	sim    *game.Simulator
	board  *renderer.BoardRenderer
	input  *input.Handler
	opts   Options
	logger zerolog.Logger

	// ReplayDir, when set, receives a replay of every finished game
	ReplayDir string

	seedFn   func() int64
	recorder *experience.Recorder
	speed    int
	timer    int
	restart  int
	paused   bool
	best     int
	games    int
}

// NewPlayGame starts a game; seedFn provides the seed of every new game.
func NewPlayGame(sim *game.Simulator, opts Options, seedFn func() int64, logger zerolog.Logger) *PlayGame {
	g := &PlayGame{
		sim:    sim,
		board:  newBoardRenderer(opts),
		input:  input.NewHandler(),
		opts:   opts,
		logger: logger.With().Str("component", "PlayGame").Logger(),
		seedFn: seedFn,
		speed:  common.Clamp(opts.FPS, 1, TicksPerSecond),
	}
	g.newGame()
	return g
}

func (g *PlayGame) newGame() {
	seed := g.seedFn()
	g.sim.ResetSeed(seed)
	g.recorder = experience.NewRecorder(seed, g.sim.BoardSize())
	g.input.Clear()
	g.timer = 0
	g.restart = 0
}

// Update handles input and advances the snake once per tick.
func (g *PlayGame) Update() error {
	g.input.Update()
	for _, cmd := range g.input.Commands() {
		switch cmd {
		case input.CommandQuit:
			return ebiten.Termination
		case input.CommandReset:
			g.newGame()
		case input.CommandPause:
			g.paused = !g.paused
		case input.CommandFaster:
			g.speed = common.Clamp(g.speed+1, 1, TicksPerSecond)
		case input.CommandSlower:
			g.speed = common.Clamp(g.speed-1, 1, TicksPerSecond)
		}
	}
	if g.paused {
		return nil
	}

	if g.sim.Done() {
		g.restart++
		if g.restart >= restartFrames {
			g.newGame()
		}
		return nil
	}

	g.timer++
	if g.timer < framesPerStep(g.speed) {
		return nil
	}
	g.timer = 0

	a := g.input.Action(g.sim.View().Heading)
	res, err := g.sim.Step(a)
	if err != nil {
		return err
	}
	g.recorder.Record(a, res)
	if res.Done() {
		g.gameOver(res)
	}
	return nil
}

func (g *PlayGame) gameOver(res game.StepResult) {
	g.games++
	if res.Info.Score > g.best {
		g.best = res.Info.Score
	}
	g.logger.Info().
		Int("game", g.games).
		Int("score", res.Info.Score).
		Int("steps", g.recorder.Steps()).
		Str("reason", res.Info.Reason.String()).
		Int("best", g.best).
		Msg("Game over")

	if g.ReplayDir == "" {
		return
	}
	path := filepath.Join(g.ReplayDir, fmt.Sprintf("game-%03d.yaml", g.games))
	if err := g.recorder.Replay().Save(path); err != nil {
		g.logger.Error().Err(err).Str("path", path).Msg("Failed to save replay")
	}
}

// Draw renders the board and the status strip.
func (g *PlayGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Palette.Background)
	v := g.sim.View()
	g.board.Draw(screen, v, HUDHeight)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("score %d  best %d  speed %d", v.Score, g.best, g.speed), 4, 2)

	switch {
	case g.paused:
		g.board.DrawBanner(screen, v.BoardSize, HUDHeight, "PAUSED")
	case v.Done:
		g.board.DrawBanner(screen, v.BoardSize, HUDHeight, fmt.Sprintf("Over! Score %d", v.Score))
	}
}

// Layout defines the Ebitengine screen size.
func (g *PlayGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := g.board.Size(g.sim.BoardSize())
	return side, side + HUDHeight
}
