package penquin

import (
	"fmt"

	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
)

// Step is one expected command of a level's terminal puzzle.
type Step struct {
	Command   string
	Objective string
	Explain   string
}

// ScriptFor returns the puzzle for a level: the steps authored in the level
// file when present, the built-in script for its number otherwise.
func ScriptFor(m *levels.Map) []Step {
	if len(m.Puzzle) > 0 {
		steps := make([]Step, len(m.Puzzle))
		for i, s := range m.Puzzle {
			steps[i] = Step(s)
		}
		return steps
	}
	return DefaultScript(m.ID)
}

// DefaultScript returns the built-in puzzle for a level number.
func DefaultScript(level int) []Step {
	switch level {
	case 2:
		return []Step{{
			Command:   "git clone https://github.com/penquin/cloud-hill.git",
			Objective: "Copy the remote repository to your machine.",
			Explain:   "git clone downloads a repository and its whole history.",
		}}
	case 3:
		return []Step{{
			Command:   "git pull",
			Objective: "Bring in the changes your teammates pushed.",
			Explain:   "git pull fetches the remote branch and merges it into yours.",
		}}
	default:
		return []Step{
			{
				Command:   "git add game.json",
				Objective: "Stage game.json for the next commit.",
				Explain:   "git add moves changes into the staging area.",
			},
			{
				Command:   fmt.Sprintf("git commit -m \"level %d\"", level),
				Objective: "Save the staged change in the history.",
				Explain:   "git commit records a snapshot of the staging area with a message.",
			},
		}
	}
}
