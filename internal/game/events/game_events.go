package events

import (
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// Event types
const (
	TypeEpisodeStarted = "episode.started"
	TypeFoodEaten      = "food.eaten"
	TypeEpisodeEnded   = "episode.ended"
)

// EpisodeStartedEvent is published by Reset
type EpisodeStartedEvent struct {
	Header
	BoardSize int             `json:"board_size"`
	Food      core.Coordinate `json:"food"`
}

func NewEpisodeStartedEvent(gameID string, episode, boardSize int, food core.Coordinate) *EpisodeStartedEvent {
	return &EpisodeStartedEvent{
		Header:    newHeader(TypeEpisodeStarted, gameID, episode, 0),
		BoardSize: boardSize,
		Food:      food,
	}
}

// FoodEatenEvent is published when the head lands on the food. Tick is the
// tick count before the step that ate it.
type FoodEatenEvent struct {
	Header
	Location core.Coordinate `json:"location"`
	Score    int             `json:"score"`
	Length   int             `json:"length"`
}

func NewFoodEatenEvent(gameID string, episode, tick int, location core.Coordinate, score, length int) *FoodEatenEvent {
	return &FoodEatenEvent{
		Header:   newHeader(TypeFoodEaten, gameID, episode, tick),
		Location: location,
		Score:    score,
		Length:   length,
	}
}

// EpisodeEndedEvent is published on the step that terminates or truncates
// an episode.
type EpisodeEndedEvent struct {
	Header
	Reason    string `json:"reason"`
	Score     int    `json:"score"`
	Truncated bool   `json:"truncated"`
}

func NewEpisodeEndedEvent(gameID string, episode, tick int, reason string, score int, truncated bool) *EpisodeEndedEvent {
	return &EpisodeEndedEvent{
		Header:    newHeader(TypeEpisodeEnded, gameID, episode, tick),
		Reason:    reason,
		Score:     score,
		Truncated: truncated,
	}
}
