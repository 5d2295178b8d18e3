package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// Command is a non-movement key action
type Command int

const (
	CommandReset Command = iota
	CommandPause
	CommandFaster
	CommandSlower
	CommandQuit
)

var headingKeys = map[ebiten.Key]core.Heading{
	ebiten.KeyW:          core.Up,
	ebiten.KeyArrowUp:    core.Up,
	ebiten.KeyD:          core.Right,
	ebiten.KeyArrowRight: core.Right,
	ebiten.KeyS:          core.Down,
	ebiten.KeyArrowDown:  core.Down,
	ebiten.KeyA:          core.Left,
	ebiten.KeyArrowLeft:  core.Left,
}

var commandKeys = map[ebiten.Key]Command{
	ebiten.KeyR:              CommandReset,
	ebiten.KeyP:              CommandPause,
	ebiten.KeyEqual:          CommandFaster,
	ebiten.KeyNumpadAdd:      CommandFaster,
	ebiten.KeyMinus:          CommandSlower,
	ebiten.KeyNumpadSubtract: CommandSlower,
	ebiten.KeyEscape:         CommandQuit,
}

// Handler collects keyboard input between simulation ticks. Only the first
// direction pressed in a tick counts, so one tick is at most one turn.
type Handler struct {
	target    core.Heading
	hasTarget bool
	commands  []Command
}

func NewHandler() *Handler {
	return &Handler{commands: make([]Command, 0, 4)}
}

// Update polls the keyboard; call it once per frame.
func (h *Handler) Update() {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if cmd, ok := commandKeys[k]; ok {
			h.commands = append(h.commands, cmd)
			continue
		}
		if hd, ok := headingKeys[k]; ok && !h.hasTarget {
			h.target = hd
			h.hasTarget = true
		}
	}
}

// Commands returns and clears the commands pressed since the last call
func (h *Handler) Commands() []Command {
	cmds := h.commands
	h.commands = h.commands[:0:0]
	return cmds
}

// Action converts the pending direction into a relative action for a snake
// facing current and clears it. No input, or a reversal, is straight.
func (h *Handler) Action(current core.Heading) core.Action {
	if !h.hasTarget {
		return core.ActionStraight
	}
	h.hasTarget = false
	return core.RelativeAction(current, h.target)
}

// Clear drops any pending direction
func (h *Handler) Clear() {
	h.hasTarget = false
}
