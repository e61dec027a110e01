package penquin

import (
	"math"
	"testing"

	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
)

func newTestBlocks(t *testing.T) (*DestructibleBlockEngine, [][]levels.Tile, *Scheduler, *int) {
	t.Helper()
	m := testMap(t, []string{"..?B..", "......", "######"}, object(levels.MarkerSpawn, 0, 1, 1, 1))
	tiles := m.CloneTiles()
	s := NewScheduler()
	d := NewDestructibleBlockEngine(m, tiles, s, 0.35, 8, 30)
	coins := new(int)
	d.OnReward = func(v int) { *coins += v }
	return d, tiles, s, coins
}

func TestQuestionBlockIsConsumedOnce(t *testing.T) {
	d, tiles, s, coins := newTestBlocks(t)
	p, _ := newTestPlayer()
	at := TileCoord{Col: 2, Row: 0}
	c := Contact{Kind: ContactBlock, Tile: at, PlayerVel: core.V(0, -10)}

	d.Hit(p, c)
	d.Hit(p, c)
	d.Hit(p, c)

	if *coins != 1 {
		t.Errorf("coins = %d, want 1", *coins)
	}
	if !d.Consumed(at) {
		t.Error("block should be consumed")
	}
	if q := tiles[0][2]; !q.Used || q.CollideDown || !q.Collides {
		t.Errorf("used block = %+v, want used, passable from below, solid on top", q)
	}
	if len(d.Rewards()) != 1 {
		t.Fatalf("Rewards() = %d, want 1", len(d.Rewards()))
	}

	r := d.Rewards()[0]
	start := r.Pos.Y
	for i := 0; i < 30; i++ {
		s.Advance()
	}
	if !r.Done || r.Pos.Y >= start {
		t.Errorf("reward = %+v, want risen and done", r)
	}
	if len(d.Rewards()) != 0 {
		t.Errorf("finished rewards should be pruned, got %d", len(d.Rewards()))
	}
}

func TestBrickBouncesAndDampens(t *testing.T) {
	d, tiles, s, coins := newTestBlocks(t)
	p, _ := newTestPlayer()
	at := TileCoord{Col: 3, Row: 0}

	d.Hit(p, Contact{Kind: ContactBlock, Tile: at, PlayerVel: core.V(0, -10)})
	if math.Abs(p.Vel.Y-(-3.5)) > 1e-9 {
		t.Errorf("vy = %v, want -3.5", p.Vel.Y)
	}
	if !d.Bouncing(at) {
		t.Fatal("brick should be bouncing")
	}

	for i := 0; i < 4; i++ {
		s.Advance()
	}
	if off := d.Offset(at); math.Abs(off-(-8)) > 1e-9 {
		t.Errorf("mid-bounce offset = %v, want -8", off)
	}

	// A second hit during the bounce does not restart it.
	d.Hit(p, Contact{Kind: ContactBlock, Tile: at, PlayerVel: core.V(0, -10)})
	for i := 0; i < 4; i++ {
		s.Advance()
	}
	if d.Bouncing(at) || d.Offset(at) != 0 {
		t.Error("bounce should have finished after 8 ticks")
	}
	if tiles[0][3].Block != levels.BlockBrick {
		t.Error("brick should stay in place")
	}
	if *coins != 0 {
		t.Errorf("brick gave %d coins", *coins)
	}
}

func TestBlockHitOutOfRangeIgnored(t *testing.T) {
	d, _, _, coins := newTestBlocks(t)
	p, _ := newTestPlayer()
	d.Hit(p, Contact{Kind: ContactBlock, Tile: TileCoord{Col: 99, Row: -1}})
	if *coins != 0 || len(d.Rewards()) != 0 {
		t.Error("out of range hit had an effect")
	}
}
