package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/learning"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/ui/renderer"
)

// endPauseFrames is how long a finished episode stays on screen
const endPauseFrames = TicksPerSecond

// WatchGame plays greedy episodes, or a recorded replay, in a window.
type WatchGame struct {
	sim      *game.Simulator
	policy   learning.Policy
	player   *experience.Player
	board    *renderer.BoardRenderer
	opts     Options
	logger   zerolog.Logger
	interval int
	timer    int
	pause    int
	episode  int
	ret      float64
	paused   bool
}

// NewWatchGame watches the greedy policy of table
func NewWatchGame(sim *game.Simulator, table *learning.ValueTable, opts Options, logger zerolog.Logger) *WatchGame {
	g := newWatchGame(sim, opts, logger)
	g.policy = learning.GreedyPolicy{Table: table}
	g.startEpisode()
	return g
}

// NewReplayGame plays back replay, once per episode requested in opts
func NewReplayGame(sim *game.Simulator, replay *experience.Replay, opts Options, logger zerolog.Logger) (*WatchGame, error) {
	player, err := experience.NewPlayer(sim, replay)
	if err != nil {
		return nil, err
	}
	g := newWatchGame(sim, opts, logger)
	g.player = player
	g.episode = 1
	return g, nil
}

func newWatchGame(sim *game.Simulator, opts Options, logger zerolog.Logger) *WatchGame {
	return &WatchGame{
		sim:      sim,
		board:    newBoardRenderer(opts),
		opts:     opts,
		logger:   logger.With().Str("component", "WatchGame").Logger(),
		interval: framesPerStep(opts.FPS),
	}
}

func (g *WatchGame) startEpisode() {
	g.episode++
	g.ret = 0
	if g.player != nil {
		g.player.Rewind()
		return
	}
	g.sim.Reset()
}

// Update advances the episode at the configured speed.
func (g *WatchGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	if g.finished() {
		if g.pause == 0 {
			g.logEpisode()
		}
		g.pause++
		if g.pause < endPauseFrames {
			return nil
		}
		g.pause = 0
		if g.opts.Episodes > 0 && g.episode >= g.opts.Episodes {
			return ebiten.Termination
		}
		g.startEpisode()
		return nil
	}

	g.timer++
	if g.timer < g.interval {
		return nil
	}
	g.timer = 0

	var (
		res game.StepResult
		err error
	)
	if g.player != nil {
		res, err = g.player.Step()
	} else {
		res, err = g.sim.Step(g.policy.Act(g.sim.Observation()))
	}
	if err != nil {
		return err
	}
	g.ret += res.Reward
	return nil
}

func (g *WatchGame) finished() bool {
	if g.player != nil {
		return g.player.Done()
	}
	return g.sim.Done()
}

func (g *WatchGame) logEpisode() {
	v := g.sim.View()
	g.logger.Info().
		Int("episode", g.episode).
		Int("score", v.Score).
		Int("steps", v.Tick).
		Float64("return", g.ret).
		Str("reason", v.Reason.String()).
		Msg("Episode finished")
}

// Draw renders the board and the status strip.
func (g *WatchGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Palette.Background)
	v := g.sim.View()
	g.board.Draw(screen, v, HUDHeight)

	mode := "greedy"
	if g.player != nil {
		mode = "replay"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s ep %d  score %d  return %.2f", mode, g.episode, v.Score, g.ret), 4, 2)

	switch {
	case g.paused:
		g.board.DrawBanner(screen, v.BoardSize, HUDHeight, "PAUSED")
	case v.Done:
		g.board.DrawBanner(screen, v.BoardSize, HUDHeight, fmt.Sprintf("Score %d (%s)", v.Score, v.Reason))
	}
}

// Layout defines the Ebitengine screen size.
func (g *WatchGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := g.board.Size(g.sim.BoardSize())
	return side, side + HUDHeight
}
