package progress

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"
)

// Progress is a typed view over Flags.
//
// Reads treat backend errors as absent values and writes are best-effort:
// failures are logged and gameplay continues.
type Progress struct {
	flags  Flags
	logger *log.Logger
}

// New wraps a flag store. A nil logger discards messages.
func New(flags Flags, logger *log.Logger) *Progress {
	if flags == nil {
		flags = NewMemoryFlags()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Progress{flags: flags, logger: logger}
}

// Flags returns the underlying store.
func (p *Progress) Flags() Flags {
	return p.flags
}

func (p *Progress) get(key string) string {
	v, err := p.flags.GetFlag(key)
	if err != nil {
		p.logger.Warn("progress read failed", "key", key, "err", err)
		return ""
	}
	return v
}

func (p *Progress) set(key, value string) {
	if err := p.flags.SetFlag(key, value); err != nil {
		p.logger.Warn("progress write failed", "key", key, "err", err)
	}
}

func (p *Progress) getInt(key string, def int) int {
	n, err := strconv.Atoi(p.get(key))
	if err != nil {
		return def
	}
	return n
}

func (p *Progress) isSet(key string) bool {
	return p.get(key) == "1"
}

// UnlockedLevel returns the highest level the player may enter (at least 1).
func (p *Progress) UnlockedLevel() int {
	n := p.getInt(KeyUnlockedLevel, 1)
	if n < 1 {
		return 1
	}
	return n
}

// IsUnlocked reports whether level may be entered.
func (p *Progress) IsUnlocked(level int) bool {
	return level >= 1 && level <= p.UnlockedLevel()
}

// Unlock raises unlockedLevel to level. It never lowers it.
// Returns the resulting unlocked level.
func (p *Progress) Unlock(level int) int {
	cur := p.UnlockedLevel()
	if level <= cur {
		return cur
	}
	p.set(KeyUnlockedLevel, strconv.Itoa(level))
	return level
}

// TaskCompleted reports whether level's puzzle has been solved.
func (p *Progress) TaskCompleted(level int) bool {
	return p.isSet(TaskCompletedKey(level))
}

// MarkTaskCompleted persists level's puzzle as solved.
func (p *Progress) MarkTaskCompleted(level int) {
	p.set(TaskCompletedKey(level), "1")
}

// StepDone reports whether step k of level's puzzle was accepted.
func (p *Progress) StepDone(level, step int) bool {
	return p.isSet(StepDoneKey(level, step))
}

// MarkStepDone persists step k of level's puzzle as accepted.
func (p *Progress) MarkStepDone(level, step int) {
	p.set(StepDoneKey(level, step), "1")
}

// ClearTasks removes the completion flag and every step flag of level.
// steps is the length of the level's puzzle script.
func (p *Progress) ClearTasks(level, steps int) {
	keys := make([]string, 0, steps+1)
	keys = append(keys, TaskCompletedKey(level))
	for k := 1; k <= steps; k++ {
		keys = append(keys, StepDoneKey(level, k))
	}
	if err := p.flags.DeleteFlags(keys...); err != nil {
		p.logger.Warn("progress clear failed", "level", level, "err", err)
	}
}

// CurrentLevel returns the last level the player started, or 0.
func (p *Progress) CurrentLevel() int {
	return p.getInt(KeyCurrentLevel, 0)
}

// SetCurrentLevel records the level being played.
func (p *Progress) SetCurrentLevel(level int) {
	p.set(KeyCurrentLevel, strconv.Itoa(level))
}

// InitDone reports whether git init was typed for level.
func (p *Progress) InitDone(level int) bool {
	return p.isSet(InitDoneKey(level))
}

// MarkInitDone persists the git init for level.
func (p *Progress) MarkInitDone(level int) {
	p.set(InitDoneKey(level), "1")
}
