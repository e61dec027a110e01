package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow - held while walking left
	ActionRight            // D, Right arrow - held while walking right
	ActionJump             // Space, W, Up - held; the state machine derives the press edge
	ActionConfirm          // Enter - submit terminal command, confirm selection
	ActionCancel           // Escape, Ctrl+C while the terminal is open
	ActionBackspace        // Backspace while typing
	ActionBack             // Escape - return to level select
	ActionQuit             // Q, Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionBackspace:
		return "Backspace"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// Actions holds intents that are active this tick (held or pressed);
// Runes holds printable characters typed since the previous tick.
type InputFrame struct {
	Actions map[Action]bool
	Runes   []rune
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Type appends typed characters to the frame.
func (f *InputFrame) Type(s string) {
	f.Runes = append(f.Runes, []rune(s)...)
}

// Clear resets all actions and typed runes for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Runes = f.Runes[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Runes) > 0 {
		clone.Runes = append([]rune(nil), f.Runes...)
	}
	return clone
}
