package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/racetrack/internal/core"
)

// KeyMapper translates Bubble Tea key messages to race actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// raceKeys maps keys to turn actions. Digits follow the numeric keypad
// layout, so 7 is up-left and 3 is down-right.
var raceKeys = map[string]core.Action{
	"up":    core.ActionAccelUp,
	"8":     core.ActionAccelUp,
	"down":  core.ActionAccelDown,
	"2":     core.ActionAccelDown,
	"left":  core.ActionAccelLeft,
	"4":     core.ActionAccelLeft,
	"right": core.ActionAccelRight,
	"6":     core.ActionAccelRight,
	"7":     core.ActionAccelUpLeft,
	"9":     core.ActionAccelUpRight,
	"1":     core.ActionAccelDownLeft,
	"3":     core.ActionAccelDownRight,
	"5":     core.ActionCoast,
	" ":     core.ActionCoast,
	"h":     core.ActionToggleWalls,
	"r":     core.ActionRestart,
	"p":     core.ActionPause,
}

// MapKey translates a key message to a race action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	if a, ok := raceKeys[key]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionFewerPlayers
	MenuActionMorePlayers
	MenuActionCycleColor
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionRules
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "-":
		return MenuActionFewerPlayers
	case "d", "right", "+", "=":
		return MenuActionMorePlayers
	case "1", "2", "3", "4":
		return MenuActionCycleColor
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "?", "i":
		return MenuActionRules
	}

	return MenuActionNone
}

// colorSlot returns the car index for a colour key, or -1.
func colorSlot(msg tea.KeyMsg) int {
	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '4' {
		return int(key[0] - '1')
	}
	return -1
}
