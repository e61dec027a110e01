package core

// RuntimeConfig contains configuration passed to a level at initialization.
// The level uses it to size its camera viewport and convert durations to ticks.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Outcome describes how a level session ended.
type Outcome int

const (
	OutcomeNone     Outcome = iota // Still running
	OutcomeComplete                // Player reached the UFO with the task done
	OutcomeMenu                    // Player asked to return to the level select
	OutcomeQuit                    // Player quit the program
	OutcomeError                   // Level content could not be loaded
)

// String returns the outcome name used in run history.
func (o Outcome) String() string {
	switch o {
	case OutcomeComplete:
		return "complete"
	case OutcomeMenu:
		return "menu"
	case OutcomeQuit:
		return "quit"
	case OutcomeError:
		return "error"
	default:
		return "running"
	}
}

// GameState represents the current state of a level session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Coins collected this attempt
	Deaths   int     // Deaths since the level was entered
	Ticks    int     // Simulation ticks since the level was entered
	GameOver bool    // Whether the session has ended
	Outcome  Outcome // Why the session ended
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
