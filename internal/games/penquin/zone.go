package penquin

import "github.com/vovakirdan/penquin/internal/core"

// ZoneKind identifies what a sensor zone does.
type ZoneKind int

const (
	ZoneTerminal ZoneKind = iota
	ZoneTube
	ZonePortal
	ZoneGoal
	ZoneDeath
)

// String returns the zone kind name.
func (k ZoneKind) String() string {
	switch k {
	case ZoneTerminal:
		return "terminal"
	case ZoneTube:
		return "tube-enter"
	case ZonePortal:
		return "portal-enter"
	case ZoneGoal:
		return "goal"
	case ZoneDeath:
		return "death"
	default:
		return "unknown"
	}
}

// RefPoint selects which point of a body is tested against a zone.
type RefPoint int

const (
	RefFoot   RefPoint = iota // bottom-center
	RefCenter                 // geometric center
)

// IsInside reports whether the body's reference point lies in zone.
// Bounds are closed on every side.
func IsInside(body, zone core.Rect, ref RefPoint) bool {
	p := body.Foot()
	if ref == RefCenter {
		p = body.Center()
	}
	return zone.Contains(p)
}

// Trigger is a sensor zone with enter/exit edge detection.
type Trigger struct {
	Kind    ZoneKind
	Rect    core.Rect
	Ref     RefPoint
	Exit    *core.Vec // paired exit point for teleport zones
	Active  bool
	OnEnter func()
	OnExit  func()

	wasInside bool
}

// Update tests the body against the zone and fires OnEnter on an
// outside→inside transition and OnExit on inside→outside.
func (t *Trigger) Update(body core.Rect) {
	if !t.Active {
		t.wasInside = false
		return
	}
	inside := IsInside(body, t.Rect, t.Ref)
	switch {
	case inside && !t.wasInside:
		t.wasInside = true
		if t.OnEnter != nil {
			t.OnEnter()
		}
	case !inside && t.wasInside:
		t.wasInside = false
		if t.OnExit != nil {
			t.OnExit()
		}
	}
}

// Inside reports the last observed state.
func (t *Trigger) Inside() bool {
	return t.wasInside
}

// ZoneTracker updates a set of triggers against the player's bounds.
type ZoneTracker struct {
	triggers []*Trigger
}

// Add registers a trigger.
func (z *ZoneTracker) Add(t *Trigger) *Trigger {
	z.triggers = append(z.triggers, t)
	return t
}

// Remove unregisters a trigger. Its callbacks never fire again.
func (z *ZoneTracker) Remove(t *Trigger) {
	for i, tr := range z.triggers {
		if tr == t {
			t.Active = false
			z.triggers = append(z.triggers[:i], z.triggers[i+1:]...)
			return
		}
	}
}

// Update runs every trigger once. Callbacks may add or remove triggers.
func (z *ZoneTracker) Update(body core.Rect) {
	for _, t := range append([]*Trigger(nil), z.triggers...) {
		t.Update(body)
	}
}

// Triggers returns the registered triggers.
func (z *ZoneTracker) Triggers() []*Trigger {
	return z.triggers
}

// Reset removes every trigger.
func (z *ZoneTracker) Reset() {
	z.triggers = nil
}
