package experience

import "errors"

var (
	ErrReplayNotFound  = errors.New("replay not found")
	ErrReplayVersion   = errors.New("unsupported replay version")
	ErrReplayBoardSize = errors.New("replay board size does not match simulator")
	ErrReplayDiverged  = errors.New("replay diverged from recorded outcome")
	ErrReplayFinished  = errors.New("replay has no more actions")
)
