package game

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/common"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/events"
)

// Simulator owns the game state of one snake episode at a time and is the
// only thing that mutates it. It is not safe for concurrent use.
type Simulator struct {
	size     int
	maxTicks int
	rewards  RewardConfig
	rng      *rand.Rand
	logger   zerolog.Logger
	events   events.Publisher
	gameID   string

	board      *core.Board
	body       *body
	heading    core.Heading
	food       core.Coordinate
	score      int
	tick       int
	stagnation int

	episode int
	started bool
	done    bool
	reason  EndReason
}

func (s *Simulator) BoardSize() int        { return s.size }
func (s *Simulator) MaxTicks() int         { return s.maxTicks }
func (s *Simulator) Episode() int          { return s.episode }
func (s *Simulator) GameID() string        { return s.gameID }
func (s *Simulator) Rewards() RewardConfig { return s.rewards }

// Reset starts a new episode: a three-segment snake centred on the board
// heading right, counters cleared and food placed on a random free cell.
func (s *Simulator) Reset() (int, Info) {
	s.board.Reset()
	s.body.reset()

	center := core.NewCoordinate(s.size/2, s.size/2)
	for i := 2; i >= 0; i-- {
		seg := core.NewCoordinate(center.Row, center.Col-i)
		s.body.pushFront(seg)
		s.board.Set(seg, core.TileBody)
	}
	s.heading = core.Right
	s.score = 0
	s.tick = 0
	s.stagnation = 0
	s.spawnFood()

	s.episode++
	s.started = true
	s.done = false
	s.reason = ReasonNone

	s.events.Publish(events.NewEpisodeStartedEvent(s.gameID, s.episode, s.size, s.food))

	return s.observe(), Info{Score: s.score}
}

// ResetSeed reseeds the food source before resetting, which makes the
// episode reproducible from (seed, actions).
func (s *Simulator) ResetSeed(seed int64) (int, Info) {
	s.rng.Seed(seed)
	return s.Reset()
}

// Step advances the episode by one move. Invalid actions are rejected before
// anything changes. Collisions, stagnation and the tick limit are reported
// through the returned flags, never as errors.
func (s *Simulator) Step(a core.Action) (StepResult, error) {
	if err := a.Validate(); err != nil {
		return StepResult{}, err
	}
	if !s.started {
		return StepResult{}, ErrNotReset
	}
	if s.done {
		return StepResult{}, ErrEpisodeOver
	}

	head := s.body.at(0)
	heading := a.Apply(s.heading)
	if head.Move(heading) == s.body.at(1) {
		heading = s.heading
	}
	s.heading = heading

	next := head.Move(heading)
	prevGap := head.DistanceTo(s.food)
	grow := next == s.food
	br := RewardBreakdown{StepCost: s.rewards.StepCost}

	if s.collides(next, grow) {
		br.Collision = s.rewards.Collision
		reason := ReasonSelf
		if !next.IsValid(s.size) {
			reason = ReasonWall
		}
		s.finish(reason, false)
		return s.result(br, true, false), nil
	}

	if !grow {
		s.board.Set(s.body.popBack(), core.TileEmpty)
	}
	s.body.pushFront(next)
	s.board.Set(next, core.TileBody)

	if grow {
		s.score++
		br.Food = s.rewards.Food
		s.events.Publish(events.NewFoodEatenEvent(s.gameID, s.episode, s.tick, next, s.score, s.body.len()))
		if !s.spawnFood() {
			s.tick++
			s.finish(ReasonBoardFull, false)
			return s.result(br, true, s.tick >= s.maxTicks), nil
		}
	}

	newGap := next.DistanceTo(s.food)
	switch {
	case newGap < prevGap:
		br.Distance = s.rewards.Closer
		s.stagnation = 0
	case newGap > prevGap:
		br.Distance = s.rewards.Farther
		s.stagnation = 0
	default:
		s.stagnation++
	}
	br.Alignment = s.rewards.Alignment * float64(alignment(s.food.Sub(next), heading.Vector()))

	terminated := false
	if s.stagnation >= s.rewards.StagnationLimit {
		br.Stagnation = s.rewards.Stagnation
		terminated = true
	}

	s.tick++
	truncated := s.tick >= s.maxTicks

	switch {
	case terminated:
		s.finish(ReasonStagnation, truncated)
	case truncated:
		s.finish(ReasonTimeout, true)
	}

	return s.result(br, terminated, truncated), nil
}

// alignment scores the forward vector against the dominant axis of the
// offset to the food: +1 when moving toward the food along it, -1 when moving
// along the other axis, 0 otherwise. Equal offsets count as column-dominant.
func alignment(toFood, forward core.Coordinate) int {
	if common.Abs(toFood.Row) > common.Abs(toFood.Col) {
		switch {
		case toFood.Row*forward.Row > 0:
			return 1
		case forward.Row == 0:
			return -1
		}
		return 0
	}
	switch {
	case toFood.Col*forward.Col > 0:
		return 1
	case forward.Col == 0:
		return -1
	}
	return 0
}

// collides applies the movement collision rule. The tail is about to vacate
// unless the move also grows the snake.
func (s *Simulator) collides(c core.Coordinate, grow bool) bool {
	if !c.IsValid(s.size) {
		return true
	}
	if !s.board.IsBody(c) {
		return false
	}
	return grow || c != s.body.tail()
}

func (s *Simulator) hazard(c core.Coordinate) bool {
	return s.collides(c, false)
}

func (s *Simulator) observe() int {
	return ExtractFeatures(s.body.at(0), s.heading, s.food, s.hazard).Index()
}

// spawnFood rejection-samples a free cell, row then column. It reports false
// when the snake covers the whole board.
func (s *Simulator) spawnFood() bool {
	if s.board.FreeCells() == 0 {
		return false
	}
	for {
		c := core.NewCoordinate(s.rng.Intn(s.size), s.rng.Intn(s.size))
		if s.board.Tile(c) == core.TileEmpty {
			s.food = c
			s.board.Set(c, core.TileFood)
			return true
		}
	}
}

func (s *Simulator) finish(reason EndReason, truncated bool) {
	s.done = true
	s.reason = reason
	s.events.Publish(events.NewEpisodeEndedEvent(s.gameID, s.episode, s.tick, reason.String(), s.score, truncated))
	s.logger.Debug().
		Int("episode", s.episode).
		Int("tick", s.tick).
		Int("score", s.score).
		Str("reason", reason.String()).
		Msg("Episode finished")
}

func (s *Simulator) result(br RewardBreakdown, terminated, truncated bool) StepResult {
	return StepResult{
		Observation: s.observe(),
		Reward:      br.Total(),
		Terminated:  terminated,
		Truncated:   truncated,
		Info:        Info{Score: s.score, Reason: s.reason},
		Breakdown:   br,
	}
}

// Observation encodes the current state without stepping
func (s *Simulator) Observation() int {
	return s.observe()
}

// Features returns the decoded form of the current observation
func (s *Simulator) Features() Features {
	return ExtractFeatures(s.body.at(0), s.heading, s.food, s.hazard)
}

// View returns a copy of the current state
func (s *Simulator) View() View {
	return View{
		BoardSize:  s.size,
		Body:       s.body.snapshot(),
		Heading:    s.heading,
		Food:       s.food,
		Score:      s.score,
		Tick:       s.tick,
		MaxTicks:   s.maxTicks,
		Stagnation: s.stagnation,
		Done:       s.done,
		Reason:     s.reason,
	}
}

// Done reports whether the current episode has ended
func (s *Simulator) Done() bool {
	return s.done
}

// SetState replaces the current episode state with st after checking every
// invariant. It is meant for scripted scenarios and replays.
func (s *Simulator) SetState(st State) error {
	if err := s.validate(st.Body, st.Heading, st.Food, true); err != nil {
		return err
	}
	if st.Score < 0 || st.Tick < 0 || st.Tick >= s.maxTicks {
		return fmt.Errorf("score %d tick %d: %w", st.Score, st.Tick, ErrInvalidState)
	}
	if st.Stagnation < 0 || st.Stagnation >= s.rewards.StagnationLimit {
		return fmt.Errorf("stagnation %d: %w", st.Stagnation, ErrInvalidState)
	}

	s.board.Reset()
	s.body.reset()
	for i := len(st.Body) - 1; i >= 0; i-- {
		s.body.pushFront(st.Body[i])
		s.board.Set(st.Body[i], core.TileBody)
	}
	s.heading = st.Heading
	s.food = st.Food
	s.board.Set(st.Food, core.TileFood)
	s.score = st.Score
	s.tick = st.Tick
	s.stagnation = st.Stagnation

	if !s.started {
		s.episode++
	}
	s.started = true
	s.done = false
	s.reason = ReasonNone
	return nil
}

// Validate checks the state invariants of the current episode
func (s *Simulator) Validate() error {
	if !s.started {
		return ErrNotReset
	}
	return s.validate(s.body.snapshot(), s.heading, s.food, s.reason != ReasonBoardFull)
}

func (s *Simulator) validate(segments []core.Coordinate, heading core.Heading, food core.Coordinate, checkFood bool) error {
	if len(segments) < 3 || len(segments) > s.size*s.size {
		return fmt.Errorf("body length %d: %w", len(segments), ErrInvalidState)
	}
	if !heading.Valid() {
		return fmt.Errorf("heading %d: %w", int(heading), core.ErrInvalidHeading)
	}

	seen := make(map[core.Coordinate]struct{}, len(segments))
	for i, seg := range segments {
		if !seg.IsValid(s.size) {
			return fmt.Errorf("segment %d at %s: %w", i, seg, core.ErrInvalidCoordinates)
		}
		if _, dup := seen[seg]; dup {
			return fmt.Errorf("segment %d at %s overlaps the body: %w", i, seg, ErrInvalidState)
		}
		seen[seg] = struct{}{}
		if i > 0 && seg.DistanceTo(segments[i-1]) != 1 {
			return fmt.Errorf("segment %d at %s is not adjacent to %s: %w", i, seg, segments[i-1], ErrInvalidState)
		}
	}
	if segments[0].Move(heading) == segments[1] {
		return fmt.Errorf("heading %s points into the neck: %w", heading, ErrInvalidState)
	}

	if checkFood {
		if !food.IsValid(s.size) {
			return fmt.Errorf("food at %s: %w", food, core.ErrInvalidCoordinates)
		}
		if _, onBody := seen[food]; onBody {
			return fmt.Errorf("food at %s is inside the body: %w", food, ErrInvalidState)
		}
	}
	return nil
}
