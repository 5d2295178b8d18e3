package main

import (
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/cli"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	boardSize := flag.Int("board", -1, "Board size (-1 to use config default)")
	speed := flag.Int("speed", -1, "Starting speed in steps per second, 1-60 (-1 to use ui.fps)")
	seed := flag.Int64("seed", 0, "Seed of the first game, 0 picks one from the clock")
	replayDir := flag.String("replay-dir", "", "Save a replay of every game here (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *boardSize != -1 {
		cfg.Game.BoardSize = *boardSize
	}
	if *speed != -1 {
		cfg.UI.FPS = *speed
	}
	if *replayDir == "" {
		*replayDir = cfg.UI.ReplayDir
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}

	cli.SetupLogging(*logLevel, cfg.Logging.Format)
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	sim, err := cli.NewSimulator(cfg.Game, *seed, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create simulator")
	}

	// the first game uses -seed when given, later games count up from it
	next := *seed
	if next == 0 {
		next = time.Now().UnixNano()
	}
	seedFn := func() int64 {
		s := next
		next++
		return s
	}

	opts := ui.Options{
		CellSize: cfg.UI.CellSize,
		FPS:      cfg.UI.FPS,
		Title:    cfg.UI.Title + " - play",
		Palette:  cfg.UI.Colors.Palette(),
	}
	g := ui.NewPlayGame(sim, opts, seedFn, log.Logger)
	g.ReplayDir = *replayDir

	log.Info().
		Int("board_size", cfg.Game.BoardSize).
		Int("speed", cfg.UI.FPS).
		Str("replay_dir", *replayDir).
		Msg("WASD or arrows to steer, P pause, R reset, +/- speed, Esc quit")

	if err := ui.Run(g, opts, cfg.Game.BoardSize); err != nil {
		log.Fatal().Err(err).Msg("Window closed with error")
	}
}
