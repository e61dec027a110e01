package progress

import (
	"errors"
	"testing"
)

func TestUnlockedLevelDefaultsToOne(t *testing.T) {
	p := New(NewMemoryFlags(), nil)

	if got := p.UnlockedLevel(); got != 1 {
		t.Errorf("UnlockedLevel() = %d, expected 1", got)
	}
	if !p.IsUnlocked(1) {
		t.Error("level 1 should always be unlocked")
	}
	if p.IsUnlocked(2) {
		t.Error("level 2 should be locked on a fresh store")
	}
}

func TestUnlockNeverDecrements(t *testing.T) {
	p := New(NewMemoryFlags(), nil)

	tests := []struct {
		unlock   int
		expected int
	}{
		{2, 2},
		{4, 4},
		{3, 4}, // replaying an earlier level keeps the higher unlock
		{1, 4},
		{5, 5},
	}

	for _, tc := range tests {
		if got := p.Unlock(tc.unlock); got != tc.expected {
			t.Errorf("Unlock(%d) = %d, expected %d", tc.unlock, got, tc.expected)
		}
		if got := p.UnlockedLevel(); got != tc.expected {
			t.Errorf("UnlockedLevel() after Unlock(%d) = %d, expected %d", tc.unlock, got, tc.expected)
		}
	}
}

func TestClearTasksRemovesEveryTaskFlag(t *testing.T) {
	flags := NewMemoryFlags()
	p := New(flags, nil)

	p.MarkStepDone(1, 1)
	p.MarkStepDone(1, 2)
	p.MarkTaskCompleted(1)
	p.MarkStepDone(2, 1)
	p.Unlock(2)

	p.ClearTasks(1, 2)

	if p.TaskCompleted(1) || p.StepDone(1, 1) || p.StepDone(1, 2) {
		t.Error("level 1 task flags should be cleared")
	}
	if !p.StepDone(2, 1) {
		t.Error("other levels must keep their flags")
	}
	if p.UnlockedLevel() != 2 {
		t.Error("clearing tasks must not touch unlockedLevel")
	}
}

func TestFlagKeys(t *testing.T) {
	tests := []struct {
		got, expected string
	}{
		{TaskCompletedKey(3), "level3_taskCompleted"},
		{StepDoneKey(1, 2), "level1_step2Done"},
		{InitDoneKey(4), "level4_initDone"},
	}
	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("key = %q, expected %q", tc.got, tc.expected)
		}
	}
}

func TestCurrentLevelAndInit(t *testing.T) {
	flags := NewMemoryFlags()
	p := New(flags, nil)

	if p.CurrentLevel() != 0 {
		t.Errorf("CurrentLevel() = %d, expected 0", p.CurrentLevel())
	}
	p.SetCurrentLevel(3)
	if p.CurrentLevel() != 3 {
		t.Errorf("CurrentLevel() = %d, expected 3", p.CurrentLevel())
	}

	if p.InitDone(3) {
		t.Error("InitDone should be false before MarkInitDone")
	}
	p.MarkInitDone(3)
	if !p.InitDone(3) {
		t.Error("InitDone should be true after MarkInitDone")
	}

	keys := flags.Keys()
	if len(keys) != 2 || keys[0] != KeyCurrentLevel || keys[1] != InitDoneKey(3) {
		t.Errorf("Keys() = %v", keys)
	}
}

type failingFlags struct{}

func (failingFlags) GetFlag(string) (string, error) { return "", errors.New("boom") }
func (failingFlags) SetFlag(string, string) error   { return errors.New("boom") }
func (failingFlags) DeleteFlags(...string) error    { return errors.New("boom") }

func TestBackendErrorsAreBestEffort(t *testing.T) {
	p := New(failingFlags{}, nil)

	// None of these may panic; reads fall back to defaults.
	p.MarkTaskCompleted(1)
	p.ClearTasks(1, 2)
	if p.UnlockedLevel() != 1 {
		t.Errorf("UnlockedLevel() = %d, expected fallback 1", p.UnlockedLevel())
	}
	if p.TaskCompleted(1) {
		t.Error("TaskCompleted should read as false on backend error")
	}
}
