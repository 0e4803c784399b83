package core

// Action represents a semantic race action, abstracted from physical key presses.
// This allows the race to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionAccelUp            // Up arrow, 8
	ActionAccelDown          // Down arrow, 2
	ActionAccelLeft          // Left arrow, 4
	ActionAccelRight         // Right arrow, 6
	ActionAccelUpLeft        // 7
	ActionAccelUpRight       // 9
	ActionAccelDownLeft      // 1
	ActionAccelDownRight     // 3
	ActionCoast              // Space, 5 - keep current velocity
	ActionToggleWalls        // H - show wall segments
	ActionRestart            // R - restart after the race ends
	ActionQuit               // Q, Ctrl+C - exit
	ActionPause              // P - pause/unpause
)

// accelerations maps turn actions to their acceleration vector.
var accelerations = map[Action]Vec{
	ActionAccelUp:        {0, -1},
	ActionAccelDown:      {0, 1},
	ActionAccelLeft:      {-1, 0},
	ActionAccelRight:     {1, 0},
	ActionAccelUpLeft:    {-1, -1},
	ActionAccelUpRight:   {1, -1},
	ActionAccelDownLeft:  {-1, 1},
	ActionAccelDownRight: {1, 1},
	ActionCoast:          {0, 0},
}

// turnOrder fixes the priority when several turn actions arrive in one frame.
var turnOrder = []Action{
	ActionAccelUp, ActionAccelDown, ActionAccelLeft, ActionAccelRight,
	ActionAccelUpLeft, ActionAccelUpRight, ActionAccelDownLeft, ActionAccelDownRight,
	ActionCoast,
}

// Accel returns the acceleration for a turn action.
// ok is false for actions that do not play a turn.
func (a Action) Accel() (Vec, bool) {
	v, ok := accelerations[a]
	return v, ok
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAccelUp:
		return "Up"
	case ActionAccelDown:
		return "Down"
	case ActionAccelLeft:
		return "Left"
	case ActionAccelRight:
		return "Right"
	case ActionAccelUpLeft:
		return "UpLeft"
	case ActionAccelUpRight:
		return "UpRight"
	case ActionAccelDownLeft:
		return "DownLeft"
	case ActionAccelDownRight:
		return "DownRight"
	case ActionCoast:
		return "Coast"
	case ActionToggleWalls:
		return "ToggleWalls"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Turn returns the acceleration requested this frame, if any.
func (f InputFrame) Turn() (Vec, bool) {
	for _, a := range turnOrder {
		if f.Has(a) {
			return a.Accel()
		}
	}
	return Vec{}, false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
