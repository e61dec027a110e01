package penquin

import "github.com/vovakirdan/penquin/internal/core"

// TeleportController moves the player between a paired entrance and exit
// with a shrink-out, reposition, grow-in sequence. The tube and the portal
// are two instances of it.
type TeleportController struct {
	Name   string
	sched  *Scheduler
	shrink int
	grow   int
	busy   bool

	// OnArrive is called after the player is repositioned.
	OnArrive func()
}

// NewTeleportController creates a controller driven by sched.
func NewTeleportController(name string, sched *Scheduler, shrinkTicks, growTicks int) *TeleportController {
	return &TeleportController{Name: name, sched: sched, shrink: shrinkTicks, grow: growTicks}
}

// Busy reports whether a teleport is in progress. The level treats a busy
// controller as a freeze.
func (t *TeleportController) Busy() bool {
	return t.busy
}

// Start begins a teleport to exit (bottom-center). It returns false and does
// nothing when a teleport is already running.
func (t *TeleportController) Start(p *Player, exit core.Vec) bool {
	if t.busy {
		return false
	}
	t.busy = true
	p.Vel = core.Vec{}

	t.sched.Tween(t.shrink, func(k float64) {
		p.Scale = 1 - k
		p.Alpha = 1 - k
	}, func() {
		p.Pos = core.V(exit.X-p.W/2, exit.Y-p.H)
		p.Vel = core.Vec{}
		if t.OnArrive != nil {
			t.OnArrive()
		}
		t.sched.Tween(t.grow, func(k float64) {
			p.Scale = k
			p.Alpha = k
		}, func() {
			p.Scale = 1
			p.Alpha = 1
			t.busy = false
		})
	})
	return true
}

// Reset clears the busy flag. Pending animation tasks are dropped by the
// scheduler's own Reset.
func (t *TeleportController) Reset() {
	t.busy = false
}
