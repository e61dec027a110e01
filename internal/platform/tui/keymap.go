package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/penquin/internal/core"
)

// holdTicks is how long a movement key stays active after its last key event.
// Terminals report presses and repeats but never releases.
const holdTicks = 8

// KeyMapper translates Bubble Tea key messages to level actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message while the player is moving around.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case "a", "left", "h":
		return core.ActionLeft
	case "d", "right", "l":
		return core.ActionRight
	case " ", "w", "up", "k":
		return core.ActionJump
	case "enter":
		return core.ActionConfirm
	case "esc", "b":
		return core.ActionBack
	}
	return core.ActionNone
}

// MapTextKey translates a key message while the level wants typed text.
// Printable keys go to the frame's runes, editing keys become actions.
func (km *KeyMapper) MapTextKey(msg tea.KeyMsg, frame *core.InputFrame) {
	switch msg.Type {
	case tea.KeyRunes:
		frame.Type(string(msg.Runes))
	case tea.KeySpace:
		frame.Type(" ")
	case tea.KeyBackspace:
		frame.Set(core.ActionBackspace)
	case tea.KeyEnter:
		frame.Set(core.ActionConfirm)
	case tea.KeyEsc, tea.KeyCtrlC:
		frame.Set(core.ActionCancel)
	}
}

// Held reports whether an action is kept alive between key repeats.
func Held(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionJump
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionStats
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionStats
	}
	return MenuActionNone
}
