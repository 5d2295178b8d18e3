package learning

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/common"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// GreedyRunner plays episodes with the greedy policy. It never writes to
// the table.
type GreedyRunner struct {
	env    Environment
	policy GreedyPolicy
	logger zerolog.Logger

	// OnStep, when set, is called for every step of every episode
	OnStep StepObserver
}

func NewGreedyRunner(env Environment, table *ValueTable, logger zerolog.Logger) *GreedyRunner {
	return &GreedyRunner{
		env:    env,
		policy: GreedyPolicy{Table: table},
		logger: logger.With().Str("component", "GreedyRunner").Logger(),
	}
}

// EpisodeResult is the outcome of one greedy episode. Replaying Actions
// after ResetSeed(Seed) reproduces it exactly.
type EpisodeResult struct {
	Episode   int
	Seed      int64
	Return    float64
	Score     int
	Steps     int
	Reason    game.EndReason
	Truncated bool
	Actions   []core.Action
}

// RunEpisode plays one episode from seed and returns its outcome.
func (r *GreedyRunner) RunEpisode(ctx context.Context, episode int, seed int64) (EpisodeResult, error) {
	res := EpisodeResult{Episode: episode, Seed: seed}

	obs, _ := r.env.ResetSeed(seed)
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		a := r.policy.Act(obs)
		step, err := r.env.Step(a)
		if err != nil {
			return res, err
		}
		if r.OnStep != nil {
			r.OnStep(episode, a, step)
		}

		res.Actions = append(res.Actions, a)
		res.Return += step.Reward
		res.Steps++
		obs = step.Observation
		if step.Done() {
			res.Score = step.Info.Score
			res.Reason = step.Info.Reason
			res.Truncated = step.Truncated
			return res, nil
		}
	}
}

// EvalConfig configures Evaluate
type EvalConfig struct {
	Episodes int
	// Seed is the base seed; episode i (0-based) uses Seed+i. Zero picks a
	// base from the clock.
	Seed int64
	// ReportEvery is the progress logging interval. Zero logs about ten
	// times per run.
	ReportEvery int
}

// EvaluationReport aggregates an evaluation run
type EvaluationReport struct {
	Episodes   int
	BaseSeed   int64
	MeanReturn float64
	StdReturn  float64
	MeanScore  float64
	StdScore   float64
	MeanSteps  float64
	StdSteps   float64
	MaxScore   int
	Reasons    map[game.EndReason]int
	Best       EpisodeResult
}

// Evaluate plays cfg.Episodes greedy episodes and summarises them.
func (r *GreedyRunner) Evaluate(ctx context.Context, cfg EvalConfig) (*EvaluationReport, error) {
	if cfg.Episodes <= 0 {
		return nil, ErrNoEpisodes
	}
	base := cfg.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	every := cfg.ReportEvery
	if every <= 0 {
		every = common.ReportInterval(cfg.Episodes, 10)
	}

	returns := make([]float64, 0, cfg.Episodes)
	scores := make([]float64, 0, cfg.Episodes)
	steps := make([]float64, 0, cfg.Episodes)
	report := &EvaluationReport{BaseSeed: base, Reasons: make(map[game.EndReason]int)}

	for i := 0; i < cfg.Episodes; i++ {
		res, err := r.RunEpisode(ctx, i+1, base+int64(i))
		if err != nil {
			return nil, fmt.Errorf("evaluation episode %d: %w", i+1, err)
		}
		returns = append(returns, res.Return)
		scores = append(scores, float64(res.Score))
		steps = append(steps, float64(res.Steps))
		report.Reasons[res.Reason]++
		if i == 0 || res.Score > report.Best.Score || (res.Score == report.Best.Score && res.Return > report.Best.Return) {
			report.Best = res
		}

		if (i+1)%every == 0 {
			r.logger.Info().
				Int("episode", i+1).
				Int("of", cfg.Episodes).
				Float64("return", res.Return).
				Int("score", res.Score).
				Int("steps", res.Steps).
				Str("reason", res.Reason.String()).
				Msg("Evaluation progress")
		}
	}

	report.Episodes = cfg.Episodes
	report.MeanReturn, report.StdReturn = meanStd(returns)
	report.MeanScore, report.StdScore = meanStd(scores)
	report.MeanSteps, report.StdSteps = meanStd(steps)
	report.MaxScore = report.Best.Score
	return report, nil
}

// meanStd returns the mean and sample standard deviation; the deviation of
// a single sample is zero.
func meanStd(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}
