package penquin

import (
	"math"

	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
)

// Reward is a spawned pickup rising out of an emptied question block.
type Reward struct {
	Kind  string
	Value int
	Pos   core.Vec // center
	Alpha float64
	Done  bool
}

// DestructibleBlockEngine resolves accepted headbutts on brick and question
// tiles. Question blocks are consumed at most once per coordinate until the
// level restarts.
type DestructibleBlockEngine struct {
	m       *levels.Map
	tiles   [][]levels.Tile
	sched   *Scheduler
	dampen  float64
	bounceT int
	rewardT int

	consumed map[TileCoord]bool
	bouncing map[TileCoord]bool
	offsets  map[TileCoord]float64
	rewards  []*Reward

	// OnReward is called with the reward value when a question block is emptied.
	OnReward func(value int)
}

// NewDestructibleBlockEngine creates the engine over the level's live tiles.
func NewDestructibleBlockEngine(m *levels.Map, tiles [][]levels.Tile, sched *Scheduler, dampen float64, bounceTicks, rewardTicks int) *DestructibleBlockEngine {
	return &DestructibleBlockEngine{
		m:        m,
		tiles:    tiles,
		sched:    sched,
		dampen:   dampen,
		bounceT:  bounceTicks,
		rewardT:  rewardTicks,
		consumed: make(map[TileCoord]bool),
		bouncing: make(map[TileCoord]bool),
		offsets:  make(map[TileCoord]float64),
	}
}

// Hit handles an accepted headbutt.
func (d *DestructibleBlockEngine) Hit(p *Player, c Contact) {
	at := c.Tile
	if at.Row < 0 || at.Row >= len(d.tiles) || at.Col < 0 || at.Col >= len(d.tiles[at.Row]) {
		return
	}
	tile := &d.tiles[at.Row][at.Col]

	switch tile.Block {
	case levels.BlockBrick:
		d.bounce(at)
		p.Vel.Y = c.PlayerVel.Y * d.dampen

	case levels.BlockQuestion:
		if d.consumed[at] {
			return
		}
		d.consumed[at] = true
		tile.Used = true
		tile.CollideDown = false
		d.spawnReward(at, tile.Reward, tile.RewardValue)
	}
}

// bounce nudges the tile sprite up and back. A tile already bouncing is left alone.
func (d *DestructibleBlockEngine) bounce(at TileCoord) {
	if d.bouncing[at] {
		return
	}
	d.bouncing[at] = true
	height := d.m.TileH / 4
	d.sched.Tween(d.bounceT, func(t float64) {
		d.offsets[at] = -height * math.Sin(t*math.Pi)
	}, func() {
		delete(d.offsets, at)
		d.bouncing[at] = false
	})
}

func (d *DestructibleBlockEngine) spawnReward(at TileCoord, kind string, value int) {
	tr := d.m.TileRect(at.Col, at.Row)
	start := core.V(tr.Center().X, tr.Y-tr.H/2)
	r := &Reward{Kind: kind, Value: value, Pos: start, Alpha: 1}
	d.rewards = append(d.rewards, r)

	if d.OnReward != nil {
		d.OnReward(value)
	}

	rise := tr.H * 1.5
	d.sched.Tween(d.rewardT, func(t float64) {
		r.Pos.Y = start.Y - rise*t
		r.Alpha = 1 - t
	}, func() {
		r.Done = true
		d.prune()
	})
}

func (d *DestructibleBlockEngine) prune() {
	live := d.rewards[:0]
	for _, r := range d.rewards {
		if !r.Done {
			live = append(live, r)
		}
	}
	d.rewards = live
}

// Consumed reports whether the question block at c was emptied.
func (d *DestructibleBlockEngine) Consumed(c TileCoord) bool {
	return d.consumed[c]
}

// Bouncing reports whether the brick at c is mid-bounce.
func (d *DestructibleBlockEngine) Bouncing(c TileCoord) bool {
	return d.bouncing[c]
}

// Offset returns the vertical sprite offset of a bouncing tile.
func (d *DestructibleBlockEngine) Offset(c TileCoord) float64 {
	return d.offsets[c]
}

// Rewards returns the pickups still animating.
func (d *DestructibleBlockEngine) Rewards() []*Reward {
	return d.rewards
}
