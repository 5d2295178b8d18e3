package experience

import (
	"fmt"
	"math"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
)

// Player steps a simulator through a replay one action at a time.
type Player struct {
	sim    *game.Simulator
	replay *Replay
	next   int
	ret    float64
	last   game.StepResult
}

// NewPlayer resets sim from the replay seed
func NewPlayer(sim *game.Simulator, replay *Replay) (*Player, error) {
	if sim.BoardSize() != replay.BoardSize {
		return nil, fmt.Errorf("%w: replay %d, simulator %d", ErrReplayBoardSize, replay.BoardSize, sim.BoardSize())
	}
	p := &Player{sim: sim, replay: replay}
	p.Rewind()
	return p, nil
}

// Rewind restarts playback from the first action
func (p *Player) Rewind() {
	p.sim.ResetSeed(p.replay.Seed)
	p.next = 0
	p.ret = 0
	p.last = game.StepResult{}
}

// Done reports whether every action was applied or the episode ended
func (p *Player) Done() bool {
	return p.next >= len(p.replay.Actions) || p.sim.Done()
}

// Step applies the next recorded action
func (p *Player) Step() (game.StepResult, error) {
	if p.Done() {
		return p.last, ErrReplayFinished
	}
	res, err := p.sim.Step(p.replay.Actions[p.next])
	if err != nil {
		return res, fmt.Errorf("replay step %d: %w", p.next, err)
	}
	p.next++
	p.ret += res.Reward
	p.last = res
	return res, nil
}

// Position is the number of applied actions
func (p *Player) Position() int { return p.next }

// Return is the reward accumulated so far
func (p *Player) Return() float64 { return p.ret }

// Verify plays the whole replay on sim and checks that the outcome matches
// what was recorded.
func Verify(sim *game.Simulator, replay *Replay) error {
	p, err := NewPlayer(sim, replay)
	if err != nil {
		return err
	}
	for !p.Done() {
		if _, err := p.Step(); err != nil {
			return err
		}
	}

	switch {
	case p.Position() != len(replay.Actions):
		return fmt.Errorf("%w: episode ended after %d of %d actions", ErrReplayDiverged, p.Position(), len(replay.Actions))
	case p.last.Info.Score != replay.Score:
		return fmt.Errorf("%w: score %d, recorded %d", ErrReplayDiverged, p.last.Info.Score, replay.Score)
	case p.last.Info.Reason.String() != replay.Reason:
		return fmt.Errorf("%w: reason %s, recorded %s", ErrReplayDiverged, p.last.Info.Reason, replay.Reason)
	case math.Abs(p.ret-replay.Return) > 1e-9:
		return fmt.Errorf("%w: return %g, recorded %g", ErrReplayDiverged, p.ret, replay.Return)
	}
	return nil
}
