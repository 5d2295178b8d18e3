package game

import (
	"fmt"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// NumObservations is the size of the discrete observation space:
// 2 (danger left) * 2 (danger forward) * 2 (danger right) * 3 (food bearing) * 4 (heading).
const NumObservations = 96

// Bearing buckets the direction of the food relative to the heading.
type Bearing int

const (
	BearingLeft Bearing = iota
	BearingForward
	BearingRight
)

// NumBearings is the number of food bearing buckets
const NumBearings = 3

func (b Bearing) String() string {
	switch b {
	case BearingLeft:
		return "left"
	case BearingForward:
		return "forward"
	case BearingRight:
		return "right"
	default:
		return fmt.Sprintf("bearing(%d)", int(b))
	}
}

// Features is the decoded form of an observation.
//
// The encoding is lossy: it keeps only immediate danger, a coarse food
// bearing and the absolute heading, so distinct game states share indices.
type Features struct {
	DangerLeft    bool
	DangerForward bool
	DangerRight   bool
	Food          Bearing
	Heading       core.Heading
}

// Index packs the features into [0, NumObservations) with mixed-radix
// ((((dL*2+dF)*2+dR)*3+bearing)*4+heading).
func (f Features) Index() int {
	idx := boolToInt(f.DangerLeft)
	idx = idx*2 + boolToInt(f.DangerForward)
	idx = idx*2 + boolToInt(f.DangerRight)
	idx = idx*NumBearings + int(f.Food)
	idx = idx*core.NumHeadings + int(f.Heading)
	return idx
}

// DecodeObservation unpacks an index produced by Features.Index
func DecodeObservation(obs int) (Features, error) {
	if obs < 0 || obs >= NumObservations {
		return Features{}, fmt.Errorf("observation %d: %w", obs, ErrInvalidObservation)
	}
	f := Features{}
	f.Heading = core.Heading(obs % core.NumHeadings)
	obs /= core.NumHeadings
	f.Food = Bearing(obs % NumBearings)
	obs /= NumBearings
	f.DangerRight = obs%2 == 1
	obs /= 2
	f.DangerForward = obs%2 == 1
	obs /= 2
	f.DangerLeft = obs%2 == 1
	return f, nil
}

func (f Features) String() string {
	return fmt.Sprintf("danger[L=%d F=%d R=%d] food=%s heading=%s",
		boolToInt(f.DangerLeft), boolToInt(f.DangerForward), boolToInt(f.DangerRight), f.Food, f.Heading)
}

// Hazard reports whether moving the head onto c would be fatal.
type Hazard func(c core.Coordinate) bool

// ExtractFeatures computes the observation features from raw geometry.
// hazard must use the non-growth collision rule, i.e. treat the tail as vacating.
func ExtractFeatures(head core.Coordinate, heading core.Heading, food core.Coordinate, hazard Hazard) Features {
	left := heading.TurnLeft()
	right := heading.TurnRight()

	f := Features{
		DangerLeft:    hazard(head.Move(left)),
		DangerForward: hazard(head.Move(heading)),
		DangerRight:   hazard(head.Move(right)),
		Heading:       heading,
	}

	// argmax over the projections, first maximum wins
	vec := food.Sub(head)
	projections := [NumBearings]int{
		vec.Dot(left.Vector()),
		vec.Dot(heading.Vector()),
		vec.Dot(right.Vector()),
	}
	best := 0
	for i := 1; i < NumBearings; i++ {
		if projections[i] > projections[best] {
			best = i
		}
	}
	f.Food = Bearing(best)
	return f
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
