package penquin

import (
	"math"

	"github.com/vovakirdan/penquin/internal/config"
)

// Thresholds are the numeric rules used to classify contacts.
type Thresholds struct {
	HeadbuttMaxVY     float64 // player vy must be below this
	HeadbuttTolerance float64 // max |playerTop - tileBottom|
	StompMargin       float64 // player foot must be this far above the enemy center
	StompBounce       float64 // upward speed given by a stomp
	BrickDampen       float64 // vy multiplier after a brick headbutt
	GoalBlockPushX    float64 // displacement when the goal refuses the player
}

// ThresholdsFromConfig collects the thresholds from the engine configuration.
func ThresholdsFromConfig(cfg config.PenquinConfig) Thresholds {
	return Thresholds{
		HeadbuttMaxVY:     cfg.Collision.HeadbuttMaxVY,
		HeadbuttTolerance: cfg.Collision.HeadbuttTolerance,
		StompMargin:       cfg.Collision.StompMargin,
		StompBounce:       cfg.Collision.StompBounce,
		BrickDampen:       cfg.Collision.BrickDampen,
		GoalBlockPushX:    cfg.Goal.BlockPushX,
	}
}

// Event is the classification of a single contact.
type Event int

const (
	EventNone         Event = iota
	EventDeath              // death sensor
	EventGoalBlocked        // goal touched with the task unfinished
	EventGoalComplete       // goal touched with the task finished
	EventHeadbutt           // destructible tile hit from below
	EventStomp              // enemy hit from above
	EventEnemyHit           // enemy hit any other way
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventDeath:
		return "death"
	case EventGoalBlocked:
		return "goal-blocked"
	case EventGoalComplete:
		return "goal-complete"
	case EventHeadbutt:
		return "headbutt"
	case EventStomp:
		return "stomp"
	case EventEnemyHit:
		return "enemy-hit"
	default:
		return "none"
	}
}

// Ends reports whether no further contact may be processed this tick.
func (e Event) Ends() bool {
	return e == EventDeath || e == EventGoalBlocked || e == EventGoalComplete || e == EventEnemyHit
}

// Handlers receive the routed events.
type Handlers interface {
	TaskCompleted() bool
	Die()
	GoalBlocked()
	GoalReached()
	Headbutt(p *Player, c Contact)
	Stomp(e *Enemy)
}

// CollisionRouter classifies contacts and dispatches them to Handlers.
type CollisionRouter struct {
	T Thresholds
	h Handlers
}

// NewCollisionRouter creates a router.
func NewCollisionRouter(t Thresholds, h Handlers) *CollisionRouter {
	return &CollisionRouter{T: t, h: h}
}

// Classify decides what a single contact means, without side effects.
func (r *CollisionRouter) Classify(c Contact) Event {
	switch c.Kind {
	case ContactDeath:
		return EventDeath

	case ContactGoal:
		if r.h.TaskCompleted() {
			return EventGoalComplete
		}
		return EventGoalBlocked

	case ContactBlock:
		if c.PlayerVel.Y < r.T.HeadbuttMaxVY &&
			math.Abs(c.PlayerBounds.Y-c.Rect.Bottom()) <= r.T.HeadbuttTolerance {
			return EventHeadbutt
		}

	case ContactEnemy:
		if c.Enemy == nil || !c.Enemy.Alive {
			return EventNone
		}
		if c.PlayerBounds.Bottom() <= c.Rect.Center().Y-r.T.StompMargin {
			return EventStomp
		}
		return EventEnemyHit
	}
	return EventNone
}

// Route processes contacts in order until one ends the tick.
// It returns the last event handled.
func (r *CollisionRouter) Route(p *Player, contacts []Contact) Event {
	last := EventNone
	for _, c := range contacts {
		if !p.Alive {
			break
		}
		ev := r.Classify(c)
		switch ev {
		case EventDeath, EventEnemyHit:
			r.h.Die()
		case EventGoalBlocked:
			p.Pos.X += r.T.GoalBlockPushX
			r.h.GoalBlocked()
		case EventGoalComplete:
			r.h.GoalReached()
		case EventHeadbutt:
			r.h.Headbutt(p, c)
		case EventStomp:
			r.h.Stomp(c.Enemy)
			p.Vel.Y = -r.T.StompBounce
		case EventNone:
			continue
		}
		last = ev
		if ev.Ends() {
			break
		}
	}
	return last
}
