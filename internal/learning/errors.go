package learning

import "errors"

var (
	ErrShapeMismatch    = errors.New("value table shape mismatch")
	ErrInvalidConfig    = errors.New("invalid learning configuration")
	ErrNoEpisodes       = errors.New("no episodes to evaluate")
	ErrInvalidObsAction = errors.New("observation or action out of range")
)
