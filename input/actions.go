// Package input maps keyboard events and upstream pose signals onto game actions
package input

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/lane-catcher/engine"
)

// Action is what a key does
type Action uint8

const (
	ActionNone Action = iota
	ActionLaneLeft
	ActionLaneCenter
	ActionLaneRight
	ActionStart
	ActionPause
	ActionMute
	ActionQuit
	actionCount
)

var actionNames = [actionCount]string{
	"none", "left", "center", "right", "start", "pause", "mute", "quit",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction resolves a keymap action name, case-insensitively
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Lane returns the basket lane for a lane action
func (a Action) Lane() (engine.Lane, bool) {
	switch a {
	case ActionLaneLeft:
		return engine.LaneLeft, true
	case ActionLaneCenter:
		return engine.LaneCenter, true
	case ActionLaneRight:
		return engine.LaneRight, true
	default:
		return 0, false
	}
}
