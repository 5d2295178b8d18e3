package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/cli"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/persistence"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	tablePath := flag.String("table", "", "Checkpoint to watch (empty to use checkpoint.save_path)")
	replayPath := flag.String("replay", "", "Play back a replay file instead of a table")
	episodes := flag.Int("episodes", -1, "Episodes to show, 0 is unlimited (-1 to use config default)")
	fps := flag.Int("fps", -1, "Steps per second (-1 to use config default)")
	seed := flag.Int64("seed", 0, "Food seed, 0 picks one from the clock")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *tablePath == "" {
		*tablePath = cfg.Checkpoint.SavePath
	}
	if *episodes != -1 {
		cfg.UI.Episodes = *episodes
	}
	if *fps != -1 {
		cfg.UI.FPS = *fps
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}

	cli.SetupLogging(*logLevel, cfg.Logging.Format)
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	opts := ui.Options{
		CellSize: cfg.UI.CellSize,
		FPS:      cfg.UI.FPS,
		Title:    cfg.UI.Title,
		Palette:  cfg.UI.Colors.Palette(),
		Episodes: cfg.UI.Episodes,
	}

	var g ebiten.Game
	if *replayPath != "" {
		replay, err := experience.LoadReplay(*replayPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load replay")
		}
		cfg.Game.BoardSize = replay.BoardSize
		sim, err := cli.NewSimulator(cfg.Game, replay.Seed, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create simulator")
		}
		if g, err = ui.NewReplayGame(sim, replay, opts, log.Logger); err != nil {
			log.Fatal().Err(err).Msg("Failed to start replay")
		}
		opts.Title += " - replay"
		log.Info().
			Str("path", *replayPath).
			Int64("seed", replay.Seed).
			Int("score", replay.Score).
			Int("steps", replay.Steps).
			Msg("Replaying episode")
	} else {
		cp, err := persistence.Load(*tablePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load checkpoint")
		}
		sim, err := cli.NewSimulator(cfg.Game, *seed, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create simulator")
		}
		g = ui.NewWatchGame(sim, cp.Table, opts, log.Logger)
		opts.Title += " - greedy"
		log.Info().
			Str("path", *tablePath).
			Str("run_id", cp.RunID).
			Int("episodes", cp.Episodes).
			Msg("Watching greedy policy")
	}

	if err := ui.Run(g, opts, cfg.Game.BoardSize); err != nil {
		log.Fatal().Err(err).Msg("Window closed with error")
	}
}
