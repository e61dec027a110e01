package penquin

import (
	"testing"

	"github.com/vovakirdan/penquin/internal/core"
)

func TestTeleportSequence(t *testing.T) {
	s := NewScheduler()
	tc := NewTeleportController("tube", s, 15, 15)
	arrived := 0
	tc.OnArrive = func() { arrived++ }

	p, _ := newTestPlayer()
	p.Vel = core.V(5, 3)
	exit := core.V(500, 300)

	if !tc.Start(p, exit) {
		t.Fatal("Start() = false on an idle controller")
	}
	if !tc.Busy() || p.Vel != (core.Vec{}) {
		t.Fatalf("busy=%v vel=%v, want busy and stopped", tc.Busy(), p.Vel)
	}
	if tc.Start(p, core.V(0, 0)) {
		t.Error("Start() should refuse while busy")
	}

	for i := 0; i < 14; i++ {
		s.Advance()
	}
	if arrived != 0 {
		t.Fatal("arrived before the shrink finished")
	}
	s.Advance()
	if arrived != 1 {
		t.Fatalf("arrived = %d after shrink, want 1", arrived)
	}
	if foot := p.Rect().Foot(); foot != exit {
		t.Errorf("foot = %v, want %v", foot, exit)
	}
	if !tc.Busy() {
		t.Error("controller should stay busy while growing")
	}

	for i := 0; i < 15; i++ {
		s.Advance()
	}
	if tc.Busy() {
		t.Error("controller still busy after grow")
	}
	if p.Scale != 1 || p.Alpha != 1 {
		t.Errorf("scale=%v alpha=%v, want 1", p.Scale, p.Alpha)
	}
	if arrived != 1 {
		t.Errorf("arrived = %d, want 1", arrived)
	}
}

func TestTeleportResetClearsBusy(t *testing.T) {
	s := NewScheduler()
	tc := NewTeleportController("portal", s, 5, 5)
	p, _ := newTestPlayer()
	tc.Start(p, core.V(100, 100))

	s.Reset()
	tc.Reset()
	if tc.Busy() {
		t.Fatal("Reset() left the controller busy")
	}
	if !tc.Start(p, core.V(100, 100)) {
		t.Error("Start() after Reset should succeed")
	}
}
