package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/cli"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/learning"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/monitoring"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/persistence"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/render"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	episodes := flag.Int("episodes", -1, "Training episodes (-1 to use config default)")
	lr := flag.Float64("lr", -1, "Learning rate (-1 to use config default)")
	gamma := flag.Float64("gamma", -1, "Discount factor (-1 to use config default)")
	epsStart := flag.Float64("eps-start", -1, "Initial exploration rate (-1 to use config default)")
	epsEnd := flag.Float64("eps-end", -1, "Final exploration rate (-1 to use config default)")
	epsDecay := flag.Int("eps-decay", -1, "Episodes to decay epsilon over (-1 to use config default)")
	seed := flag.Int64("seed", -1, "Seed for exploration and food (-1 to use config default)")
	boardSize := flag.Int("board", -1, "Board size (-1 to use config default)")
	renderEvery := flag.Int("render-every", -1, "Render one episode every N episodes, 0 disables (-1 to use config default)")
	loadPath := flag.String("load", "", "Continue training from this checkpoint")
	savePath := flag.String("save", "", "Where to write the checkpoint (empty to use config default)")
	chartPath := flag.String("chart", "", "Write a learning curve HTML chart here")
	noColor := flag.Bool("no-color", false, "Disable ANSI colours in rendered episodes")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	// Flags override config
	if *episodes != -1 {
		cfg.Training.Episodes = *episodes
	}
	if *lr != -1 {
		cfg.Training.LearningRate = *lr
	}
	if *gamma != -1 {
		cfg.Training.Discount = *gamma
	}
	if *epsStart != -1 {
		cfg.Training.EpsilonStart = *epsStart
	}
	if *epsEnd != -1 {
		cfg.Training.EpsilonEnd = *epsEnd
	}
	if *epsDecay != -1 {
		cfg.Training.EpsilonDecayEpisodes = *epsDecay
	}
	if *seed != -1 {
		cfg.Training.Seed = *seed
	}
	if *boardSize != -1 {
		cfg.Game.BoardSize = *boardSize
	}
	if *renderEvery != -1 {
		cfg.Training.RenderEvery = *renderEvery
	}
	if *loadPath == "" {
		*loadPath = cfg.Checkpoint.LoadPath
	}
	if *savePath == "" {
		*savePath = cfg.Checkpoint.SavePath
	}
	if *chartPath == "" {
		*chartPath = cfg.Training.ChartPath
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}

	cli.SetupLogging(*logLevel, cfg.Logging.Format)
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	sim, err := cli.NewSimulator(cfg.Game, cfg.Training.Seed, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create simulator")
	}

	table := learning.NewValueTable()
	previousEpisodes := 0
	if *loadPath != "" {
		cp, err := persistence.Load(*loadPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load checkpoint")
		}
		table = cp.Table
		previousEpisodes = cp.Episodes
		log.Info().
			Str("path", *loadPath).
			Str("run_id", cp.RunID).
			Int("episodes", cp.Episodes).
			Int("visited", table.Visited()).
			Msg("Continuing from checkpoint")
	}

	trainerCfg := learning.TrainerConfig{
		Episodes:     cfg.Training.Episodes,
		LearningRate: cfg.Training.LearningRate,
		Discount:     cfg.Training.Discount,
		Schedule:     cfg.Training.Schedule(),
		Seed:         cfg.Training.Seed,
		ReportEvery:  cfg.Training.ReportEvery,
		RenderEvery:  cfg.Training.RenderEvery,
		Logger:       log.Logger,
	}
	if cfg.Training.RenderEvery > 0 {
		colors := !*noColor
		trainerCfg.OnStep = func(episode int, a core.Action, res game.StepResult) {
			fmt.Printf("\nepisode %d  action=%s  reward=%+.2f\n%s\n", episode, a, res.Reward, render.Terminal(sim.View(), colors))
		}
	}

	trainer, err := learning.NewTrainer(sim, table, trainerCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create trainer")
	}

	// Ctrl+C stops between episodes and still saves
	ctx, stop := cli.SignalContext()
	defer stop()

	result, runErr := trainer.Run(ctx)
	if runErr != nil {
		log.Error().Err(runErr).Msg("Training aborted")
	}

	cp := &persistence.Checkpoint{
		Table:     trainer.Table(),
		RunID:     persistence.NewRunID(),
		Episodes:  previousEpisodes + result.Episodes,
		BoardSize: cfg.Game.BoardSize,
	}
	if err := persistence.Save(*savePath, cp); err != nil {
		log.Fatal().Err(err).Msg("Failed to save checkpoint")
	}
	log.Info().
		Str("path", *savePath).
		Str("run_id", cp.RunID).
		Int("episodes", cp.Episodes).
		Int("best_score", result.BestScore).
		Bool("cancelled", result.Cancelled).
		Dur("duration", result.Duration).
		Msg("Checkpoint saved")

	if *chartPath != "" {
		if err := monitoring.WriteLearningCurve(*chartPath, result.Curve, "SnakeRL Q-learning"); err != nil {
			log.Error().Err(err).Msg("Failed to write learning curve")
		} else {
			log.Info().Str("path", *chartPath).Msg("Learning curve written")
		}
	}

	if runErr != nil {
		os.Exit(1)
	}
}
