package penquin

import (
	"strings"

	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/progress"
)

// FeedbackKind colors the terminal's feedback line.
type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackOK
	FeedbackError
)

// TerminalPuzzleEngine runs a level's git-command script.
//
// The player types one command per step; a submitted command is trimmed and
// compared case-sensitively with the step's literal. Accepted steps are
// persisted immediately. After the last step the task is persisted, the
// OnComplete callback runs and the terminal closes after a short delay.
type TerminalPuzzleEngine struct {
	level      int
	steps      []Step
	progress   *progress.Progress
	sched      *Scheduler
	closeDelay int

	open         bool
	step         int // 1-based while open
	buffer       []rune
	feedback     string
	feedbackKind FeedbackKind
	closing      bool

	// OnComplete runs once when the final step is accepted.
	OnComplete func()
	// OnClose runs every time the terminal closes.
	OnClose func()
}

// NewTerminalPuzzleEngine creates a closed terminal for a level.
func NewTerminalPuzzleEngine(level int, steps []Step, prog *progress.Progress, sched *Scheduler, closeDelay int) *TerminalPuzzleEngine {
	return &TerminalPuzzleEngine{
		level:      level,
		steps:      steps,
		progress:   prog,
		sched:      sched,
		closeDelay: closeDelay,
	}
}

// Open shows the terminal at step 1 with an empty buffer.
func (t *TerminalPuzzleEngine) Open() {
	if t.open || len(t.steps) == 0 {
		return
	}
	t.open = true
	t.closing = false
	t.step = 1
	t.buffer = t.buffer[:0]
	t.feedback = ""
	t.feedbackKind = FeedbackNone
}

// Close hides the terminal and clears the buffer.
func (t *TerminalPuzzleEngine) Close() {
	if !t.open {
		return
	}
	t.open = false
	t.closing = false
	t.buffer = t.buffer[:0]
	t.feedback = ""
	t.feedbackKind = FeedbackNone
	if t.OnClose != nil {
		t.OnClose()
	}
}

func (t *TerminalPuzzleEngine) accepting() bool {
	return t.open && !t.closing
}

// Type appends printable runes to the buffer.
func (t *TerminalPuzzleEngine) Type(runes []rune) {
	if !t.accepting() {
		return
	}
	for _, r := range runes {
		if r >= ' ' && r != 0x7f {
			t.buffer = append(t.buffer, r)
		}
	}
}

// Backspace removes the last rune.
func (t *TerminalPuzzleEngine) Backspace() {
	if !t.accepting() || len(t.buffer) == 0 {
		return
	}
	t.buffer = t.buffer[:len(t.buffer)-1]
}

// Cancel closes the terminal without any effect on progress.
func (t *TerminalPuzzleEngine) Cancel() {
	if !t.accepting() {
		return
	}
	t.Close()
}

// Submit checks the buffer against the current step.
func (t *TerminalPuzzleEngine) Submit() {
	if !t.accepting() {
		return
	}
	typed := strings.TrimSpace(string(t.buffer))
	want := t.steps[t.step-1]

	if typed != want.Command {
		t.feedback = "Wrong command. Type: " + want.Command
		t.feedbackKind = FeedbackError
		return
	}

	t.progress.MarkStepDone(t.level, t.step)
	t.buffer = t.buffer[:0]
	t.feedbackKind = FeedbackOK

	if t.step < len(t.steps) {
		t.feedback = "OK  " + want.Explain
		t.step++
		return
	}

	t.feedback = "OK  Task complete!"
	t.progress.MarkTaskCompleted(t.level)
	t.closing = true
	if t.OnComplete != nil {
		t.OnComplete()
	}
	t.sched.After(t.closeDelay, t.Close)
}

// HandleInput routes one input frame while the terminal is open.
func (t *TerminalPuzzleEngine) HandleInput(in core.InputFrame) {
	if !t.open {
		return
	}
	if in.Has(core.ActionCancel) {
		t.Cancel()
		return
	}
	if in.Has(core.ActionBackspace) {
		t.Backspace()
	}
	if len(in.Runes) > 0 {
		t.Type(in.Runes)
	}
	if in.Has(core.ActionConfirm) {
		t.Submit()
	}
}

// IsOpen reports whether the terminal is shown.
func (t *TerminalPuzzleEngine) IsOpen() bool { return t.open }

// Closing reports whether the success close is pending.
func (t *TerminalPuzzleEngine) Closing() bool { return t.closing }

// StepIndex returns the current 1-based step, or 0 when closed.
func (t *TerminalPuzzleEngine) StepIndex() int {
	if !t.open {
		return 0
	}
	return t.step
}

// Current returns the step being asked for.
func (t *TerminalPuzzleEngine) Current() Step {
	if t.step < 1 || t.step > len(t.steps) {
		return Step{}
	}
	return t.steps[t.step-1]
}

// Steps returns the script length.
func (t *TerminalPuzzleEngine) Steps() int { return len(t.steps) }

// Buffer returns the typed text.
func (t *TerminalPuzzleEngine) Buffer() string { return string(t.buffer) }

// Feedback returns the last feedback message and its kind.
func (t *TerminalPuzzleEngine) Feedback() (string, FeedbackKind) {
	return t.feedback, t.feedbackKind
}
