package cli

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), name)
	}
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	SetupLogging("warn", "json")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestNewSimulator(t *testing.T) {
	gc := config.GameConfig{BoardSize: 10, Rewards: game.DefaultRewardConfig()}

	a, err := NewSimulator(gc, 5, testutil.TestLogger(t))
	require.NoError(t, err)
	b, err := NewSimulator(gc, 5, testutil.NopLogger())
	require.NoError(t, err)

	assert.Equal(t, 10, a.BoardSize())
	a.Reset()
	b.Reset()
	assert.Equal(t, a.View(), b.View(), "same seed, same food")

	gc.BoardSize = 2
	_, err = NewSimulator(gc, 5, testutil.NopLogger())
	assert.ErrorIs(t, err, game.ErrInvalidBoardSize)
}
