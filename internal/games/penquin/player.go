package penquin

import (
	"github.com/vovakirdan/penquin/internal/config"
	"github.com/vovakirdan/penquin/internal/core"
)

// State is the player's locomotion state. Freezing is not a state: it is a
// guard evaluated every tick that suspends input-driven transitions.
type State int

const (
	StateIdle State = iota
	StateWalking
	StateJumping
	StateDead
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalking:
		return "walking"
	case StateJumping:
		return "jumping"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Animation returns the sprite animation played in this state.
func (s State) Animation() string {
	switch s {
	case StateWalking:
		return "player-walk"
	case StateJumping:
		return "player-jump"
	case StateDead:
		return "player-dead"
	default:
		return "player-idle"
	}
}

// Body is an axis-aligned moving box. Pos is the top-left corner.
type Body struct {
	Pos core.Vec
	W   float64
	H   float64
	Vel core.Vec
}

// Rect returns the body's bounds.
func (b *Body) Rect() core.Rect {
	return core.NewRect(b.Pos.X, b.Pos.Y, b.W, b.H)
}

// Player is the controllable penguin.
type Player struct {
	Body
	Facing  int // -1 left, +1 right
	Alive   bool
	Frozen  bool // recomputed every tick from the freeze guard
	State   State
	Scale   float64
	Alpha   float64
	Visible bool
}

// NewPlayer creates a live, idle player standing at the bottom-center of spawn.
func NewPlayer(spawn core.Rect, cfg config.PlayerConfig) *Player {
	foot := spawn.Foot()
	return &Player{
		Body: Body{
			Pos: core.V(foot.X-cfg.Width/2, foot.Y-cfg.Height),
			W:   cfg.Width,
			H:   cfg.Height,
		},
		Facing:  1,
		Alive:   true,
		State:   StateIdle,
		Scale:   1,
		Alpha:   1,
		Visible: true,
	}
}

// PlayerStateMachine turns held intents into locomotion state and velocity.
type PlayerStateMachine struct {
	cfg         config.PhysicsConfig
	jumpWasHeld bool
}

// NewPlayerStateMachine creates a state machine using the given speeds.
func NewPlayerStateMachine(cfg config.PhysicsConfig) *PlayerStateMachine {
	return &PlayerStateMachine{cfg: cfg}
}

// Update runs one tick. When frozen the player's velocity is forced to zero
// and no transition happens, but the jump edge is still tracked so a jump
// held through a freeze does not fire when it ends.
func (m *PlayerStateMachine) Update(p *Player, in core.InputFrame, frozen bool) {
	jumpHeld := in.Has(core.ActionJump)
	jumpPressed := jumpHeld && !m.jumpWasHeld
	m.jumpWasHeld = jumpHeld

	p.Frozen = frozen
	if frozen {
		p.Vel = core.Vec{}
		return
	}
	if p.State == StateDead {
		return
	}

	dir := 0
	if in.Has(core.ActionLeft) {
		dir = -1
	} else if in.Has(core.ActionRight) {
		dir = 1
	}

	switch p.State {
	case StateIdle, StateWalking:
		if dir != 0 {
			m.walk(p, dir)
		} else {
			m.idle(p)
		}
		if jumpPressed {
			m.jump(p)
		}

	case StateJumping:
		// Steering only; vx keeps its value when no direction is held.
		if dir != 0 {
			p.Facing = dir
			p.Vel.X = float64(dir) * m.cfg.WalkSpeed
		}
	}
}

func (m *PlayerStateMachine) idle(p *Player) {
	p.State = StateIdle
	p.Vel.X = 0
}

func (m *PlayerStateMachine) walk(p *Player, dir int) {
	p.State = StateWalking
	p.Facing = dir
	p.Vel.X = float64(dir) * m.cfg.WalkSpeed
}

func (m *PlayerStateMachine) jump(p *Player) {
	p.State = StateJumping
	p.Vel.Y = -m.cfg.JumpImpulse
}

// Land handles a ground contact: a jump ends in idle.
func (m *PlayerStateMachine) Land(p *Player) {
	if p.State == StateJumping {
		m.idle(p)
	}
}

// Kill moves the player to the dead state.
func (m *PlayerStateMachine) Kill(p *Player) {
	p.State = StateDead
	p.Alive = false
	p.Vel = core.Vec{}
}

// Revive resets the state machine for a fresh player.
func (m *PlayerStateMachine) Revive(p *Player) {
	p.State = StateIdle
	p.Alive = true
	p.Vel = core.Vec{}
}
