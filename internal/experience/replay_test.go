package experience

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/learning"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/testutil"
)

func newTestSimulator(t *testing.T, size int) *game.Simulator {
	t.Helper()
	sim, err := game.NewSimulator(game.GameConfig{
		BoardSize: size,
		Rng:       testutil.NewTestRNG(testutil.TestSeed),
		Logger:    testutil.NopLogger(),
	})
	require.NoError(t, err)
	return sim
}

// greedyEpisode plays one episode with a table that prefers turning left
// in a handful of observations, so the trace is not trivially straight.
func greedyEpisode(t *testing.T, sim *game.Simulator, seed int64) learning.EpisodeResult {
	t.Helper()
	table := learning.NewValueTable()
	for s := 0; s < learning.Rows; s += 7 {
		table.Set(s, core.ActionLeft, 1)
	}
	runner := learning.NewGreedyRunner(sim, table, testutil.NopLogger())
	res, err := runner.RunEpisode(context.Background(), 1, seed)
	require.NoError(t, err)
	return res
}

func TestReplay_SaveLoad(t *testing.T) {
	sim := newTestSimulator(t, 8)
	replay := FromEpisode(greedyEpisode(t, sim, 77), 8)

	path := testutil.TempFile(t, "best.yaml")
	require.NoError(t, replay.Save(path))

	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, replay.Seed, loaded.Seed)
	assert.Equal(t, replay.Actions, loaded.Actions)
	assert.Equal(t, replay.Score, loaded.Score)
	assert.Equal(t, replay.Return, loaded.Return)
	assert.Equal(t, replay.Reason, loaded.Reason)
	assert.True(t, replay.RecordedAt.Equal(loaded.RecordedAt))
	assert.Equal(t, replay.EndReason(), loaded.EndReason())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "board_size: 8")
	assert.Contains(t, string(data), "actions: [")
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(testutil.TempFile(t, "missing.yaml"))
	assert.ErrorIs(t, err, ErrReplayNotFound)

	versioned := testutil.TempFile(t, "v2.yaml")
	require.NoError(t, os.WriteFile(versioned, []byte("version: 2\nseed: 1\nboard_size: 8\n"), 0o644))
	_, err = LoadReplay(versioned)
	assert.ErrorIs(t, err, ErrReplayVersion)

	badAction := testutil.TempFile(t, "bad.yaml")
	require.NoError(t, os.WriteFile(badAction, []byte("version: 1\nseed: 1\nboard_size: 8\nactions: [0, 1, 5]\n"), 0o644))
	_, err = LoadReplay(badAction)
	assert.ErrorIs(t, err, core.ErrInvalidAction)

	garbage := testutil.TempFile(t, "garbage.yaml")
	require.NoError(t, os.WriteFile(garbage, []byte("version: [unterminated"), 0o644))
	_, err = LoadReplay(garbage)
	assert.Error(t, err)
}

func TestVerify_ReproducesEpisode(t *testing.T) {
	sim := newTestSimulator(t, 8)
	res := greedyEpisode(t, sim, 5)
	replay := FromEpisode(res, 8)

	// a different simulator instance with a different construction seed
	other, err := game.NewSimulator(game.GameConfig{BoardSize: 8, Rng: testutil.NewTestRNG(1), Logger: testutil.NopLogger()})
	require.NoError(t, err)
	assert.NoError(t, Verify(other, replay))
}

func TestVerify_DetectsDivergence(t *testing.T) {
	sim := newTestSimulator(t, 8)
	replay := FromEpisode(greedyEpisode(t, sim, 5), 8)
	replay.Score += 3

	assert.ErrorIs(t, Verify(sim, replay), ErrReplayDiverged)
}

func TestVerify_BoardSizeMismatch(t *testing.T) {
	sim := newTestSimulator(t, 8)
	replay := FromEpisode(greedyEpisode(t, sim, 5), 8)

	big := newTestSimulator(t, 16)
	assert.ErrorIs(t, Verify(big, replay), ErrReplayBoardSize)
}

func TestPlayer_StepAndRewind(t *testing.T) {
	sim := newTestSimulator(t, 8)
	replay := FromEpisode(greedyEpisode(t, sim, 9), 8)

	p, err := NewPlayer(sim, replay)
	require.NoError(t, err)
	first, err := p.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, p.Position())

	p.Rewind()
	assert.Zero(t, p.Position())
	again, err := p.Step()
	require.NoError(t, err)
	assert.Equal(t, first, again)

	for !p.Done() {
		_, err := p.Step()
		require.NoError(t, err)
	}
	_, err = p.Step()
	assert.ErrorIs(t, err, ErrReplayFinished)
	assert.InDelta(t, replay.Return, p.Return(), 1e-9)
}

func TestRecorder(t *testing.T) {
	sim := newTestSimulator(t, 8)
	sim.ResetSeed(31)
	rec := NewRecorder(31, 8)

	for _, a := range []core.Action{core.ActionStraight, core.ActionLeft, core.ActionLeft} {
		res, err := sim.Step(a)
		require.NoError(t, err)
		rec.Record(a, res)
		if res.Done() {
			break
		}
	}

	replay := rec.Replay()
	assert.Equal(t, rec.Steps(), replay.Steps)
	assert.Equal(t, int64(31), replay.Seed)
	assert.NotEmpty(t, replay.Reason)

	// an unfinished trace still replays step for step
	p, err := NewPlayer(newTestSimulator(t, 8), replay)
	require.NoError(t, err)
	for !p.Done() {
		_, err := p.Step()
		require.NoError(t, err)
	}
	assert.Equal(t, replay.Steps, p.Position())
	assert.InDelta(t, replay.Return, p.Return(), 1e-9)
}
