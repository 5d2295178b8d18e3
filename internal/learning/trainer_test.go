package learning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/testutil"
)

// fixedEnv ends every episode after length steps with reward 1 per step.
type fixedEnv struct {
	length int
	score  int
	step   int
	resets int
	seeds  []int64
}

func (e *fixedEnv) Reset() (int, game.Info) {
	e.step = 0
	e.resets++
	return 0, game.Info{}
}

func (e *fixedEnv) ResetSeed(seed int64) (int, game.Info) {
	e.seeds = append(e.seeds, seed)
	return e.Reset()
}

func (e *fixedEnv) Step(a core.Action) (game.StepResult, error) {
	if err := a.Validate(); err != nil {
		return game.StepResult{}, err
	}
	e.step++
	res := game.StepResult{Observation: e.step % 2, Reward: 1}
	if e.step >= e.length {
		res.Terminated = true
		res.Info = game.Info{Score: e.score, Reason: game.ReasonWall}
	}
	return res, nil
}

func newTestSimulator(t *testing.T, size int, seed int64) *game.Simulator {
	t.Helper()
	sim, err := game.NewSimulator(game.GameConfig{
		BoardSize: size,
		Rng:       testutil.NewTestRNG(seed),
		Logger:    testutil.NopLogger(),
		GameID:    "learning-test",
	})
	require.NoError(t, err)
	return sim
}

func testTrainerConfig(episodes int) TrainerConfig {
	cfg := DefaultTrainerConfig()
	cfg.Episodes = episodes
	cfg.Schedule = EpsilonSchedule{Start: 1, End: 0.1, DecayEpisodes: episodes}
	return cfg
}

func TestTrainerConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TrainerConfig)
	}{
		{"NegativeEpisodes", func(c *TrainerConfig) { c.Episodes = -1 }},
		{"ZeroLearningRate", func(c *TrainerConfig) { c.LearningRate = 0 }},
		{"LearningRateAboveOne", func(c *TrainerConfig) { c.LearningRate = 1.5 }},
		{"DiscountAboveOne", func(c *TrainerConfig) { c.Discount = 1.01 }},
		{"EpsilonOutOfRange", func(c *TrainerConfig) { c.Schedule.Start = 2 }},
		{"NegativeRenderEvery", func(c *TrainerConfig) { c.RenderEvery = -1 }},
	}

	assert.NoError(t, DefaultTrainerConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTrainerConfig()
			tt.mutate(&cfg)
			_, err := NewTrainer(&fixedEnv{length: 1}, NewValueTable(), cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestTrainer_RunOnFixedEnvironment(t *testing.T) {
	env := &fixedEnv{length: 4, score: 2}
	cfg := testTrainerConfig(3)
	cfg.Logger = testutil.TestLogger(t)

	var summaries []EpisodeSummary
	cfg.OnEpisode = func(s EpisodeSummary) { summaries = append(summaries, s) }

	trainer, err := NewTrainer(env, NewValueTable(), cfg)
	require.NoError(t, err)

	result, err := trainer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Episodes)
	assert.Equal(t, 2, result.BestScore)
	assert.False(t, result.Cancelled)
	assert.Equal(t, 3, env.resets)
	require.Equal(t, 3, result.Curve.Len())
	assert.Equal(t, []int{1, 2, 3}, result.Curve.Episodes)

	require.Len(t, summaries, 3)
	for i, s := range summaries {
		assert.Equal(t, i+1, s.Episode)
		assert.Equal(t, 4, s.Steps)
		assert.InDelta(t, 4.0, s.Return, 1e-12)
		assert.InDelta(t, 4.0, s.Average, 1e-12)
		assert.Equal(t, game.ReasonWall, s.Reason)
		assert.InDelta(t, cfg.Schedule.At(i+1), s.Epsilon, 1e-12)
	}
	assert.Positive(t, trainer.Table().Visited())
}

func TestTrainer_OnStepOnlyForRenderedEpisodes(t *testing.T) {
	env := &fixedEnv{length: 5}
	cfg := testTrainerConfig(4)
	cfg.RenderEvery = 2

	observed := map[int]int{}
	cfg.OnStep = func(ep int, a core.Action, res game.StepResult) { observed[ep]++ }

	trainer, err := NewTrainer(env, NewValueTable(), cfg)
	require.NoError(t, err)
	_, err = trainer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[int]int{2: 5, 4: 5}, observed)
}

func TestTrainer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trainer, err := NewTrainer(&fixedEnv{length: 3}, NewValueTable(), testTrainerConfig(10))
	require.NoError(t, err)

	result, err := trainer.Run(ctx)
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.Zero(t, result.Episodes)
	assert.Equal(t, -1, result.BestScore)
}

func TestTrainer_CancelBetweenEpisodes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testTrainerConfig(10)
	cfg.OnEpisode = func(s EpisodeSummary) {
		if s.Episode == 3 {
			cancel()
		}
	}
	trainer, err := NewTrainer(&fixedEnv{length: 3}, NewValueTable(), cfg)
	require.NoError(t, err)

	result, err := trainer.Run(ctx)
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.Equal(t, 3, result.Episodes)
}

func TestTrainer_DeterministicWithSeeds(t *testing.T) {
	run := func() ([][]float64, []float64) {
		sim := newTestSimulator(t, 8, 7)
		table := NewValueTable()
		cfg := testTrainerConfig(40)
		cfg.Seed = 42
		trainer, err := NewTrainer(sim, table, cfg)
		require.NoError(t, err)
		result, err := trainer.Run(context.Background())
		require.NoError(t, err)
		return table.Values(), result.Curve.Returns
	}

	valuesA, returnsA := run()
	valuesB, returnsB := run()
	assert.Equal(t, valuesA, valuesB)
	assert.Equal(t, returnsA, returnsB)
}

func TestTrainer_LearnsToAvoidWalls(t *testing.T) {
	sim := newTestSimulator(t, 8, testutil.TestSeed)
	table := NewValueTable()
	cfg := testTrainerConfig(300)
	trainer, err := NewTrainer(sim, table, cfg)
	require.NoError(t, err)
	_, err = trainer.Run(context.Background())
	require.NoError(t, err)

	// wall directly ahead, nothing on either side, food to the left
	f := game.Features{DangerForward: true, Food: game.BearingLeft, Heading: core.Up}
	obs := f.Index()
	if table.Visited() > 0 && table.Get(obs, core.ActionStraight) != 0 {
		assert.NotEqual(t, core.ActionStraight, table.Argmax(obs))
	}
}
