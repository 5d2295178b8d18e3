package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/events"
)

// LoggerSubscriber writes simulator events to a logger at a fixed level
type LoggerSubscriber struct {
	id     string
	logger zerolog.Logger
	level  zerolog.Level
	only   map[string]bool // nil logs every type
	raw    bool
}

func NewLoggerSubscriber(id string, logger zerolog.Logger, level zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:     id,
		logger: logger.With().Str("subscriber", id).Logger(),
		level:  level,
	}
}

func (ls *LoggerSubscriber) ID() string { return ls.id }

// Only restricts logging to the given event types. No types logs everything.
func (ls *LoggerSubscriber) Only(eventTypes ...string) {
	if len(eventTypes) == 0 {
		ls.only = nil
		return
	}
	ls.only = make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		ls.only[t] = true
	}
}

// IncludeRaw attaches the whole event as JSON to each line
func (ls *LoggerSubscriber) IncludeRaw(enabled bool) {
	ls.raw = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	return ls.only == nil || ls.only[eventType]
}

func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	line := ls.logger.WithLevel(ls.level).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Int("episode", event.Episode())

	switch e := event.(type) {
	case *events.EpisodeStartedEvent:
		line.Int("board_size", e.BoardSize).
			Int("food_row", e.Food.Row).
			Int("food_col", e.Food.Col)
	case *events.FoodEatenEvent:
		line.Int("tick", e.Tick).
			Int("score", e.Score).
			Int("length", e.Length)
	case *events.EpisodeEndedEvent:
		line.Int("tick", e.Tick).
			Str("reason", e.Reason).
			Int("score", e.Score).
			Bool("truncated", e.Truncated)
	}

	if ls.raw {
		if data, err := json.Marshal(event); err == nil {
			line.RawJSON("event", data)
		}
	}
	line.Msg("Simulator event")
}
