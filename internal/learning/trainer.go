package learning

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/common"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/monitoring"
)

// TrainerConfig configures a Q-learning run
type TrainerConfig struct {
	Episodes     int
	LearningRate float64
	Discount     float64
	Schedule     EpsilonSchedule
	// Seed drives the exploration rng. The simulator keeps its own.
	Seed int64
	// ReportEvery is the progress logging interval in episodes. Zero logs
	// about twenty times per run.
	ReportEvery int
	// RenderEvery selects the episodes passed to OnStep. Zero disables it.
	RenderEvery int
	Logger      zerolog.Logger
	OnEpisode   func(EpisodeSummary)
	OnStep      StepObserver
}

// DefaultTrainerConfig returns the standard hyperparameters
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Episodes:     5000,
		LearningRate: 0.1,
		Discount:     0.99,
		Schedule:     DefaultEpsilonSchedule(),
		Seed:         42,
		Logger:       zerolog.Nop(),
	}
}

func (c TrainerConfig) Validate() error {
	if c.Episodes < 0 {
		return fmt.Errorf("%w: episodes must be non-negative, got %d", ErrInvalidConfig, c.Episodes)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("%w: learning rate must be in (0, 1], got %g", ErrInvalidConfig, c.LearningRate)
	}
	if err := common.ValidateProbability(c.Discount, "discount"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.ReportEvery < 0 || c.RenderEvery < 0 {
		return fmt.Errorf("%w: report and render intervals must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// EpisodeSummary describes one finished training episode
type EpisodeSummary struct {
	Episode   int
	Epsilon   float64
	Return    float64
	Average   float64
	Score     int
	Steps     int
	Reason    game.EndReason
	Truncated bool
}

// TrainingResult is what Run hands back, also when cancelled part way.
type TrainingResult struct {
	Episodes  int
	BestScore int
	Curve     *monitoring.TrainingCurve
	Cancelled bool
	Duration  time.Duration
}

// Trainer runs tabular Q-learning against an Environment, updating the
// table in place.
type Trainer struct {
	cfg    TrainerConfig
	env    Environment
	table  *ValueTable
	policy *EpsilonGreedyPolicy
	logger zerolog.Logger
}

// NewTrainer validates cfg and binds it to env and table
func NewTrainer(env Environment, table *ValueTable, cfg TrainerConfig) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ReportEvery == 0 {
		cfg.ReportEvery = common.ReportInterval(cfg.Episodes, 20)
	}
	return &Trainer{
		cfg:    cfg,
		env:    env,
		table:  table,
		policy: NewEpsilonGreedyPolicy(table, cfg.Schedule.Start, rand.New(rand.NewSource(cfg.Seed))),
		logger: cfg.Logger.With().Str("component", "Trainer").Logger(),
	}, nil
}

// Table returns the table being trained
func (t *Trainer) Table() *ValueTable { return t.table }

// Run trains for the configured number of episodes. Cancelling ctx stops
// the run between episodes; the partial result is still returned.
func (t *Trainer) Run(ctx context.Context) (*TrainingResult, error) {
	start := time.Now()
	result := &TrainingResult{BestScore: -1, Curve: &monitoring.TrainingCurve{}}
	avg := monitoring.NewMovingAverage(monitoring.DefaultWindow)

	t.logger.Info().
		Int("episodes", t.cfg.Episodes).
		Float64("learning_rate", t.cfg.LearningRate).
		Float64("discount", t.cfg.Discount).
		Float64("epsilon_start", t.cfg.Schedule.Start).
		Float64("epsilon_end", t.cfg.Schedule.End).
		Int("epsilon_decay_episodes", t.cfg.Schedule.DecayEpisodes).
		Int64("seed", t.cfg.Seed).
		Msg("Training started")

	for ep := 1; ep <= t.cfg.Episodes; ep++ {
		if err := ctx.Err(); err != nil {
			result.Cancelled = true
			t.logger.Warn().Int("episode", ep).Msg("Training cancelled")
			break
		}

		rendered := t.cfg.RenderEvery > 0 && ep%t.cfg.RenderEvery == 0
		summary, err := t.runEpisode(ep, rendered)
		if err != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("episode %d: %w", ep, err)
		}
		summary.Average = avg.Add(summary.Return)

		result.Episodes = ep
		result.Curve.Record(ep, summary.Return, summary.Average, summary.Score)
		if summary.Score > result.BestScore {
			result.BestScore = summary.Score
		}

		if ep%t.cfg.ReportEvery == 0 || rendered {
			t.logger.Info().
				Int("episode", ep).
				Int("of", t.cfg.Episodes).
				Float64("epsilon", summary.Epsilon).
				Float64("return", summary.Return).
				Float64("avg100", summary.Average).
				Int("score", summary.Score).
				Int("steps", summary.Steps).
				Str("reason", summary.Reason.String()).
				Msg("Training progress")
		}
		if t.cfg.OnEpisode != nil {
			t.cfg.OnEpisode(summary)
		}
	}

	result.Duration = time.Since(start)
	t.logger.Info().
		Int("episodes", result.Episodes).
		Int("best_score", result.BestScore).
		Dur("duration", result.Duration).
		Msg("Training finished")
	return result, nil
}

func (t *Trainer) runEpisode(ep int, observed bool) (EpisodeSummary, error) {
	t.policy.Epsilon = t.cfg.Schedule.At(ep)
	summary := EpisodeSummary{Episode: ep, Epsilon: t.policy.Epsilon}

	obs, _ := t.env.Reset()
	for {
		a := t.policy.Act(obs)
		res, err := t.env.Step(a)
		if err != nil {
			return summary, err
		}
		done := res.Done()
		TDUpdate(t.table, obs, a, res.Reward, res.Observation, done, t.cfg.LearningRate, t.cfg.Discount)

		if observed && t.cfg.OnStep != nil {
			t.cfg.OnStep(ep, a, res)
		}

		summary.Return += res.Reward
		summary.Steps++
		obs = res.Observation
		if done {
			summary.Score = res.Info.Score
			summary.Reason = res.Info.Reason
			summary.Truncated = res.Truncated
			return summary, nil
		}
	}
}
