package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/cli"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/experience"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/learning"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/persistence"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/render"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	tablePath := flag.String("table", "", "Checkpoint to evaluate (empty to use checkpoint.save_path)")
	episodes := flag.Int("episodes", -1, "Evaluation episodes (-1 to use config default)")
	seed := flag.Int64("seed", -1, "Base seed, 0 picks one from the clock (-1 to use config default)")
	boardSize := flag.Int("board", -1, "Board size (-1 to use config default)")
	renderEvery := flag.Int("render-every", -1, "Render every Nth episode, 0 disables (-1 to use config default)")
	replayPath := flag.String("replay", "", "Save the best episode as a replay file")
	snapshotPath := flag.String("snapshot", "", "Save the final frame of the best episode as a PNG")
	noColor := flag.Bool("no-color", false, "Disable ANSI colours in rendered episodes")
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
		cfg.Evaluation.Episodes = *episodes
	}
	if *seed != -1 {
		cfg.Evaluation.Seed = *seed
	}
	if *boardSize != -1 {
		cfg.Game.BoardSize = *boardSize
	}
	if *renderEvery != -1 {
		cfg.Evaluation.RenderEvery = *renderEvery
	}
	if *replayPath == "" {
		*replayPath = cfg.Evaluation.ReplayPath
	}
	if *snapshotPath == "" {
		*snapshotPath = cfg.Evaluation.SnapshotPath
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}

	cli.SetupLogging(*logLevel, cfg.Logging.Format)
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	cp, err := persistence.Load(*tablePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load checkpoint")
	}
	if cp.BoardSize != 0 && cp.BoardSize != cfg.Game.BoardSize {
		log.Warn().
			Int("checkpoint_board_size", cp.BoardSize).
			Int("board_size", cfg.Game.BoardSize).
			Msg("Evaluating on a different board size than the table was trained on")
	}

	sim, err := cli.NewSimulator(cfg.Game, cfg.Evaluation.Seed, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create simulator")
	}

	runner := learning.NewGreedyRunner(sim, cp.Table, log.Logger)
	if every := cfg.Evaluation.RenderEvery; every > 0 {
		colors := !*noColor
		runner.OnStep = func(episode int, a core.Action, res game.StepResult) {
			if episode%every != 0 {
				return
			}
			fmt.Printf("\nepisode %d  action=%s  reward=%+.2f\n%s\n", episode, a, res.Reward, render.Terminal(sim.View(), colors))
		}
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	report, err := runner.Evaluate(ctx, learning.EvalConfig{
		Episodes: cfg.Evaluation.Episodes,
		Seed:     cfg.Evaluation.Seed,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Evaluation failed")
	}

	summary := log.Info().
		Int("episodes", report.Episodes).
		Int64("base_seed", report.BaseSeed).
		Float64("avg_return", report.MeanReturn).
		Float64("std_return", report.StdReturn).
		Float64("avg_score", report.MeanScore).
		Float64("std_score", report.StdScore).
		Float64("avg_steps", report.MeanSteps).
		Int("max_score", report.MaxScore).
		Int64("best_seed", report.Best.Seed)
	for reason, n := range report.Reasons {
		summary = summary.Int("ended_"+reason.String(), n)
	}
	summary.Msg("Evaluation finished")

	if *replayPath == "" && *snapshotPath == "" {
		return
	}

	replay := experience.FromEpisode(report.Best, cfg.Game.BoardSize)
	if *replayPath != "" {
		if err := replay.Save(*replayPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to save replay")
		}
		log.Info().Str("path", *replayPath).Int("score", replay.Score).Msg("Best episode replay saved")
	}

	if *snapshotPath != "" {
		if err := experience.Verify(sim, replay); err != nil {
			log.Fatal().Err(err).Msg("Best episode did not replay")
		}
		img := render.Frame(sim.View(), cfg.UI.Colors.Palette(), cfg.UI.CellSize)
		if err := render.WritePNG(*snapshotPath, img); err != nil {
			log.Fatal().Err(err).Msg("Failed to write snapshot")
		}
		log.Info().Str("path", *snapshotPath).Msg("Final frame saved")
	}
}
