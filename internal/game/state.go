package game

import (
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// EndReason says why an episode stopped.
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonWall
	ReasonSelf
	ReasonStagnation
	ReasonTimeout
	ReasonBoardFull
)

func (r EndReason) String() string {
	switch r {
	case ReasonWall:
		return "wall"
	case ReasonSelf:
		return "self"
	case ReasonStagnation:
		return "stagnation"
	case ReasonTimeout:
		return "timeout"
	case ReasonBoardFull:
		return "board_full"
	default:
		return "none"
	}
}

// ParseEndReason is the inverse of EndReason.String. Unknown names map to ReasonNone.
func ParseEndReason(s string) EndReason {
	for r := ReasonNone; r <= ReasonBoardFull; r++ {
		if r.String() == s {
			return r
		}
	}
	return ReasonNone
}

// Collision reports whether the reason is a fatal move
func (r EndReason) Collision() bool {
	return r == ReasonWall || r == ReasonSelf
}

// Info is the auxiliary record returned by Reset and Step.
type Info struct {
	Score  int
	Reason EndReason
}

// StepResult is everything one call to Step produces.
type StepResult struct {
	Observation int
	Reward      float64
	Terminated  bool
	Truncated   bool
	Info        Info
	Breakdown   RewardBreakdown
}

// Done reports whether the episode ended on this step
func (r StepResult) Done() bool {
	return r.Terminated || r.Truncated
}

// View is a read-only copy of the game state. Renderers, UIs and tools
// consume it instead of reaching into the simulator.
type View struct {
	BoardSize  int
	Body       []core.Coordinate // head first
	Heading    core.Heading
	Food       core.Coordinate
	Score      int
	Tick       int
	MaxTicks   int
	Stagnation int
	Done       bool
	Reason     EndReason
}

// Head returns the first body segment
func (v View) Head() core.Coordinate {
	return v.Body[0]
}

// State is the settable subset of the game state, used to set up scenarios.
type State struct {
	Body       []core.Coordinate // head first
	Heading    core.Heading
	Food       core.Coordinate
	Score      int
	Tick       int
	Stagnation int
}
