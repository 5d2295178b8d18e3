package core

import "fmt"

// Action is a turn relative to the snake's current heading.
type Action int

const (
	ActionStraight Action = iota
	ActionLeft
	ActionRight
)

// NumActions is the size of the action space
const NumActions = 3

// Actions lists every action in index order
var Actions = [NumActions]Action{ActionStraight, ActionLeft, ActionRight}

// Validate returns ErrInvalidAction when a is outside the action space
func (a Action) Validate() error {
	if a < ActionStraight || a > ActionRight {
		return fmt.Errorf("action %d: %w", int(a), ErrInvalidAction)
	}
	return nil
}

// Apply returns the heading that results from taking a while facing h.
// It does not apply the reversal guard; that needs the body.
func (a Action) Apply(h Heading) Heading {
	switch a {
	case ActionLeft:
		return h.TurnLeft()
	case ActionRight:
		return h.TurnRight()
	default:
		return h
	}
}

func (a Action) String() string {
	switch a {
	case ActionStraight:
		return "straight"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// RelativeAction converts an absolute target heading, as chosen by a human
// player, into the relative action that turns toward it. Asking to reverse
// maps to ActionStraight.
func RelativeAction(current, target Heading) Action {
	switch (target - current + NumHeadings).normalize() {
	case 1:
		return ActionRight
	case 3:
		return ActionLeft
	default:
		return ActionStraight
	}
}
