package game

import "errors"

var (
	ErrInvalidBoardSize   = errors.New("invalid board size")
	ErrNotReset           = errors.New("simulator has not been reset")
	ErrEpisodeOver        = errors.New("episode is over, call Reset")
	ErrInvalidState       = errors.New("invalid game state")
	ErrInvalidObservation = errors.New("invalid observation")
)

// MinBoardSize is the smallest board that fits the three-segment starting snake
const MinBoardSize = 4
