package experience

import (
	"time"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// Recorder accumulates the actions of one episode as it is played, for
// callers that drive the simulator themselves.
type Recorder struct {
	replay Replay
}

// NewRecorder starts recording an episode that was reset with seed
func NewRecorder(seed int64, boardSize int) *Recorder {
	return &Recorder{replay: Replay{
		Version:   ReplayVersion,
		Seed:      seed,
		BoardSize: boardSize,
		Actions:   make([]core.Action, 0, 256),
	}}
}

// Record appends one applied step
func (r *Recorder) Record(a core.Action, res game.StepResult) {
	r.replay.Actions = append(r.replay.Actions, a)
	r.replay.Return += res.Reward
	r.replay.Steps++
	r.replay.Score = res.Info.Score
	if res.Done() {
		r.replay.Reason = res.Info.Reason.String()
	}
}

// Steps is the number of recorded steps
func (r *Recorder) Steps() int { return r.replay.Steps }

// Replay returns a copy of what has been recorded so far
func (r *Recorder) Replay() *Replay {
	out := r.replay
	out.Actions = append([]core.Action(nil), r.replay.Actions...)
	if out.Reason == "" {
		out.Reason = game.ReasonNone.String()
	}
	out.RecordedAt = time.Now().UTC()
	return &out
}
