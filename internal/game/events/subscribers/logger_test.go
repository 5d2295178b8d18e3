package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/events/subscribers"
)

func TestLoggerSubscriber_Only(t *testing.T) {
	ls := subscribers.NewLoggerSubscriber("episode-log", zerolog.Nop(), zerolog.InfoLevel)

	assert.Equal(t, "episode-log", ls.ID())
	assert.True(t, ls.InterestedIn(events.TypeFoodEaten))

	ls.Only(events.TypeEpisodeEnded)
	assert.True(t, ls.InterestedIn(events.TypeEpisodeEnded))
	assert.False(t, ls.InterestedIn(events.TypeFoodEaten))

	ls.Only()
	assert.True(t, ls.InterestedIn(events.TypeFoodEaten))
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestLoggerSubscriber_Fields(t *testing.T) {
	tests := []struct {
		name  string
		event events.Event
		want  map[string]interface{}
	}{
		{
			name:  "EpisodeStarted",
			event: events.NewEpisodeStartedEvent("sim-1", 3, 16, core.Coordinate{Row: 4, Col: 5}),
			want:  map[string]interface{}{"board_size": 16.0, "food_row": 4.0, "food_col": 5.0},
		},
		{
			name:  "FoodEaten",
			event: events.NewFoodEatenEvent("sim-1", 3, 12, core.Coordinate{Row: 1, Col: 1}, 2, 5),
			want:  map[string]interface{}{"tick": 12.0, "score": 2.0, "length": 5.0},
		},
		{
			name:  "EpisodeEnded",
			event: events.NewEpisodeEndedEvent("sim-1", 3, 40, "stagnation", 2, false),
			want:  map[string]interface{}{"tick": 40.0, "reason": "stagnation", "truncated": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ls := subscribers.NewLoggerSubscriber("episode-log", zerolog.New(&buf), zerolog.InfoLevel)
			ls.HandleEvent(tt.event)

			line := decodeLine(t, &buf)
			assert.Equal(t, "Simulator event", line["message"])
			assert.Equal(t, "info", line["level"])
			assert.Equal(t, "sim-1", line["game_id"])
			assert.Equal(t, "episode-log", line["subscriber"])
			assert.Equal(t, 3.0, line["episode"])
			assert.Equal(t, tt.event.Type(), line["event_type"])
			for k, v := range tt.want {
				assert.Equal(t, v, line[k], k)
			}
		})
	}
}

func TestLoggerSubscriber_IncludeRaw(t *testing.T) {
	var buf bytes.Buffer
	ls := subscribers.NewLoggerSubscriber("raw", zerolog.New(&buf), zerolog.DebugLevel)
	ls.IncludeRaw(true)

	ls.HandleEvent(events.NewEpisodeEndedEvent("sim-2", 1, 9, "wall", 0, false))

	line := decodeLine(t, &buf)
	assert.Equal(t, "debug", line["level"])
	raw, ok := line["event"].(map[string]interface{})
	require.True(t, ok, "raw event should be embedded: %s", buf.String())
	assert.Equal(t, "wall", raw["reason"])
	assert.Equal(t, 9.0, raw["tick"])
}

func TestLoggerSubscriber_OnBus(t *testing.T) {
	var buf bytes.Buffer
	bus := events.NewEventBus(zerolog.Nop())
	ls := subscribers.NewLoggerSubscriber("episode-log", zerolog.New(&buf), zerolog.InfoLevel)
	ls.Only(events.TypeEpisodeEnded)
	bus.Subscribe(ls)

	bus.Publish(events.NewFoodEatenEvent("sim", 1, 2, core.Coordinate{}, 1, 4))
	assert.Zero(t, buf.Len())

	bus.Publish(events.NewEpisodeEndedEvent("sim", 1, 3, "self", 1, false))
	assert.Equal(t, "self", decodeLine(t, &buf)["reason"])
}
