package penquin

import (
	"testing"

	"github.com/vovakirdan/penquin/internal/core"
)

// bodyAt returns a 24x30 body whose foot is at (x, y).
func bodyAt(x, y float64) core.Rect {
	return core.NewRect(x-12, y-30, 24, 30)
}

func TestIsInsideReferencePoints(t *testing.T) {
	zone := core.NewRect(100, 100, 50, 50)

	tests := []struct {
		name   string
		body   core.Rect
		ref    RefPoint
		inside bool
	}{
		{"foot inside", bodyAt(120, 140), RefFoot, true},
		{"foot on bottom edge", bodyAt(120, 150), RefFoot, true},
		{"foot on left edge", bodyAt(100, 140), RefFoot, true},
		{"foot below", bodyAt(120, 151), RefFoot, false},
		{"center inside, foot below", bodyAt(120, 160), RefCenter, true},
		{"foot below, foot ref", bodyAt(120, 160), RefFoot, false},
		{"far away", bodyAt(10, 10), RefCenter, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInside(tt.body, zone, tt.ref); got != tt.inside {
				t.Errorf("IsInside() = %v, want %v", got, tt.inside)
			}
		})
	}
}

func TestTriggerEnterExitPairing(t *testing.T) {
	enters, exits := 0, 0
	tr := &Trigger{
		Rect:    core.NewRect(100, 100, 50, 50),
		Ref:     RefFoot,
		Active:  true,
		OnEnter: func() { enters++ },
		OnExit:  func() { exits++ },
	}

	path := []struct {
		x, y float64
	}{
		{50, 140}, {90, 140}, {110, 140}, {120, 140}, {130, 140},
		{160, 140}, {170, 140}, {140, 140}, {140, 145}, {40, 140},
	}
	for i, p := range path {
		tr.Update(bodyAt(p.x, p.y))
		if d := enters - exits; d < 0 || d > 1 {
			t.Fatalf("step %d: enters=%d exits=%d", i, enters, exits)
		}
		if tr.Inside() != (enters-exits == 1) {
			t.Fatalf("step %d: Inside()=%v with enters=%d exits=%d", i, tr.Inside(), enters, exits)
		}
	}
	if enters != 2 || exits != 2 {
		t.Errorf("enters=%d exits=%d, want 2 and 2", enters, exits)
	}
}

func TestZoneTrackerRemove(t *testing.T) {
	var z ZoneTracker
	enters := 0
	tr := z.Add(&Trigger{
		Rect:    core.NewRect(0, 0, 100, 100),
		Ref:     RefCenter,
		Active:  true,
		OnEnter: func() { enters++ },
	})

	z.Update(bodyAt(50, 60))
	if enters != 1 {
		t.Fatalf("enters = %d, want 1", enters)
	}

	z.Remove(tr)
	if tr.Active || len(z.Triggers()) != 0 {
		t.Fatal("removed trigger is still registered")
	}
	z.Update(bodyAt(500, 500))
	z.Update(bodyAt(50, 60))
	tr.Update(bodyAt(50, 60))
	if enters != 1 {
		t.Errorf("enters = %d after Remove, want 1", enters)
	}
}

func TestZoneTrackerCallbackMayRemoveItself(t *testing.T) {
	var z ZoneTracker
	var self *Trigger
	second := 0
	self = z.Add(&Trigger{
		Rect:    core.NewRect(0, 0, 100, 100),
		Ref:     RefCenter,
		Active:  true,
		OnEnter: func() { z.Remove(self) },
	})
	z.Add(&Trigger{
		Rect:    core.NewRect(0, 0, 100, 100),
		Ref:     RefCenter,
		Active:  true,
		OnEnter: func() { second++ },
	})

	z.Update(bodyAt(50, 60))
	if second != 1 {
		t.Errorf("second trigger enters = %d, want 1", second)
	}
	if len(z.Triggers()) != 1 {
		t.Errorf("Triggers() = %d, want 1", len(z.Triggers()))
	}
}
