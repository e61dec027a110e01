package penquin

import (
	"math"

	"github.com/vovakirdan/penquin/internal/config"
	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
)

// maxSubstep bounds how far a body moves per integration substep, so a
// contact always starts with a shallow overlap.
const maxSubstep = 4.0

const epsilon = 0.001

// ContactKind classifies the other side of a player contact.
type ContactKind int

const (
	ContactSolid ContactKind = iota // plain tile hit from below
	ContactBlock                    // destructible tile hit from below
	ContactDeath                    // death tile or death zone
	ContactGoal                     // UFO goal sensor
	ContactEnemy                    // living enemy
)

// String returns the contact kind name.
func (k ContactKind) String() string {
	switch k {
	case ContactSolid:
		return "solid"
	case ContactBlock:
		return "block"
	case ContactDeath:
		return "death"
	case ContactGoal:
		return "goal"
	case ContactEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// TileCoord addresses a ground-layer cell.
type TileCoord struct {
	Col, Row int
}

// Contact is one player collision pair, reported when the overlap starts.
type Contact struct {
	Kind  ContactKind
	Tile  TileCoord // ContactSolid, ContactBlock, tile-based ContactDeath
	Enemy *Enemy    // ContactEnemy
	Rect  core.Rect // bounds of the other body

	// Player state at the moment of contact, before the solver resolved it.
	PlayerBounds core.Rect
	PlayerVel    core.Vec
}

// PhysicsResult is the outcome of one physics step.
type PhysicsResult struct {
	Contacts []Contact
	Landed   bool // the player came to rest on top of a tile
}

// PhysicsProvider integrates the player and reports contacts.
type PhysicsProvider interface {
	Step(p *Player, enemies []*Enemy) PhysicsResult
	Reset()
}

type contactKey struct {
	kind ContactKind
	a, b int
}

// TilePhysics is a tile-grid AABB integrator with sensor bodies.
// Frozen or dead players are not moved and produce no contacts.
type TilePhysics struct {
	tiles        [][]levels.Tile
	tileW, tileH float64
	width        float64
	deathZones   []core.Rect
	goal         *core.Rect
	cfg          config.PhysicsConfig

	touching map[contactKey]bool
}

// NewTilePhysics creates an integrator over tiles. The tiles slice is shared
// with the level, so tile mutations (emptied blocks, removed files) apply
// immediately.
func NewTilePhysics(m *levels.Map, tiles [][]levels.Tile, cfg config.PhysicsConfig) *TilePhysics {
	return &TilePhysics{
		tiles:      tiles,
		tileW:      m.TileW,
		tileH:      m.TileH,
		width:      m.Width(),
		deathZones: m.DeathZones,
		goal:       m.Goal,
		cfg:        cfg,
		touching:   make(map[contactKey]bool),
	}
}

// Reset forgets every ongoing overlap.
func (w *TilePhysics) Reset() {
	w.touching = make(map[contactKey]bool)
}

func (w *TilePhysics) tileAt(col, row int) (levels.Tile, bool) {
	if row < 0 || row >= len(w.tiles) || col < 0 || col >= len(w.tiles[row]) {
		return levels.Tile{}, false
	}
	return w.tiles[row][col], true
}

func (w *TilePhysics) tileRect(col, row int) core.Rect {
	return core.NewRect(float64(col)*w.tileW, float64(row)*w.tileH, w.tileW, w.tileH)
}

// overlapping calls fn for every cell that r strictly overlaps.
func (w *TilePhysics) overlapping(r core.Rect, fn func(col, row int, t levels.Tile)) {
	c0 := int(math.Floor(r.X / w.tileW))
	c1 := int(math.Floor((r.Right() - epsilon) / w.tileW))
	r0 := int(math.Floor(r.Y / w.tileH))
	r1 := int(math.Floor((r.Bottom() - epsilon) / w.tileH))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if t, ok := w.tileAt(col, row); ok && !t.Empty() {
				fn(col, row, t)
			}
		}
	}
}

// Step applies gravity, moves the player in substeps, resolves solid tiles
// and reports contacts that started during this step.
func (w *TilePhysics) Step(p *Player, enemies []*Enemy) PhysicsResult {
	var res PhysicsResult
	if p.Frozen || !p.Alive {
		return res
	}

	p.Vel.Y = math.Min(p.Vel.Y+w.cfg.Gravity, w.cfg.MaxFallSpeed)
	impactVel := p.Vel

	steps := int(math.Ceil(math.Max(math.Abs(p.Vel.X), math.Abs(p.Vel.Y)) / maxSubstep))
	if steps < 1 {
		steps = 1
	}
	dx := p.Vel.X / float64(steps)
	dy := p.Vel.Y / float64(steps)

	now := make(map[contactKey]bool)
	touch := func(key contactKey, c Contact) {
		if now[key] {
			return
		}
		now[key] = true
		if !w.touching[key] {
			res.Contacts = append(res.Contacts, c)
		}
	}

	for i := 0; i < steps; i++ {
		if dx != 0 {
			w.moveX(p, dx)
		}
		if dy != 0 {
			var landed bool
			dy, landed = w.moveY(p, dy, impactVel, touch)
			res.Landed = res.Landed || landed
		}
		w.sense(p, enemies, impactVel, touch)
	}

	w.touching = now
	return res
}

func (w *TilePhysics) moveX(p *Player, dx float64) {
	p.Pos.X = core.ClampF(p.Pos.X+dx, 0, math.Max(0, w.width-p.W))
	w.overlapping(p.Rect(), func(col, row int, t levels.Tile) {
		if !t.Collides || t.OneWay {
			return
		}
		tr := w.tileRect(col, row)
		if dx > 0 {
			p.Pos.X = tr.X - p.W
		} else {
			p.Pos.X = tr.Right()
		}
	})
}

// moveY returns the remaining per-substep dy (zero after a hit) and whether
// the player landed.
func (w *TilePhysics) moveY(p *Player, dy float64, impactVel core.Vec, touch func(contactKey, Contact)) (float64, bool) {
	prevTop := p.Pos.Y
	prevBottom := p.Pos.Y + p.H
	p.Pos.Y += dy

	landed := false
	hit := false
	bounds := p.Rect()

	w.overlapping(bounds, func(col, row int, t levels.Tile) {
		tr := w.tileRect(col, row)
		switch {
		case dy > 0 && t.Collides && prevBottom <= tr.Y+epsilon:
			p.Pos.Y = tr.Y - p.H
			landed = true
			hit = true
		case dy < 0 && t.CollideDown && prevTop >= tr.Bottom()-epsilon:
			kind := ContactSolid
			if t.Block != levels.BlockNone {
				kind = ContactBlock
			}
			touch(contactKey{kind, col, row}, Contact{
				Kind:         kind,
				Tile:         TileCoord{Col: col, Row: row},
				Rect:         tr,
				PlayerBounds: bounds,
				PlayerVel:    impactVel,
			})
			p.Pos.Y = tr.Bottom()
			hit = true
		}
	})

	if hit {
		p.Vel.Y = 0
		return 0, landed
	}
	return dy, false
}

func (w *TilePhysics) sense(p *Player, enemies []*Enemy, impactVel core.Vec, touch func(contactKey, Contact)) {
	bounds := p.Rect()

	w.overlapping(bounds, func(col, row int, t levels.Tile) {
		if t.Death {
			touch(contactKey{ContactDeath, col, row}, Contact{
				Kind:         ContactDeath,
				Tile:         TileCoord{Col: col, Row: row},
				Rect:         w.tileRect(col, row),
				PlayerBounds: bounds,
				PlayerVel:    impactVel,
			})
		}
	})

	for i, z := range w.deathZones {
		if bounds.Intersects(z) {
			touch(contactKey{ContactDeath, -1, i}, Contact{
				Kind: ContactDeath, Rect: z, PlayerBounds: bounds, PlayerVel: impactVel,
			})
		}
	}

	if w.goal != nil && bounds.Intersects(*w.goal) {
		touch(contactKey{ContactGoal, 0, 0}, Contact{
			Kind: ContactGoal, Rect: *w.goal, PlayerBounds: bounds, PlayerVel: impactVel,
		})
	}

	for i, e := range enemies {
		if !e.Alive {
			continue
		}
		if er := e.Rect(); bounds.Intersects(er) {
			touch(contactKey{ContactEnemy, i, 0}, Contact{
				Kind: ContactEnemy, Enemy: e, Rect: er, PlayerBounds: bounds, PlayerVel: impactVel,
			})
		}
	}
}
