package penquin

import (
	"testing"

	"github.com/vovakirdan/penquin/internal/config"
	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
)

func TestNewEnemyDefaults(t *testing.T) {
	cfg := config.DefaultPenquinConfig().Enemy
	e := NewEnemy(levels.EnemySpawn{Name: "enemy-goomba", Rect: core.NewRect(500, 100, 0, 0)}, cfg)

	if e.W != cfg.Width || e.H != cfg.Height {
		t.Errorf("size = %vx%v, want %vx%v", e.W, e.H, cfg.Width, cfg.Height)
	}
	if e.HalfRange != 210 {
		t.Errorf("HalfRange = %v, want 210", e.HalfRange)
	}
	if !e.Alive || e.Dir != 1 || e.OriginX != 500 {
		t.Errorf("enemy = %+v", e)
	}

	custom := NewEnemy(levels.EnemySpawn{Rect: core.NewRect(0, 0, 20, 20), Range: 96}, cfg)
	if custom.HalfRange != 96 || custom.W != 20 {
		t.Errorf("custom enemy = %+v", custom)
	}
}

func TestPatrolReversesAtRange(t *testing.T) {
	cfg := config.DefaultPenquinConfig().Enemy
	e := NewEnemy(levels.EnemySpawn{Rect: core.NewRect(500, 100, 28, 28)}, cfg)
	ai := EnemyPatrolAI{Speed: cfg.Speed}

	minX, maxX := e.Pos.X, e.Pos.X
	flips := 0
	dir := e.Dir
	for i := 0; i < 1200; i++ {
		ai.Update([]*Enemy{e})
		minX = min(minX, e.Pos.X)
		maxX = max(maxX, e.Pos.X)
		if e.Dir != dir {
			flips++
			dir = e.Dir
		}
	}

	if maxX != 710 || minX != 290 {
		t.Errorf("patrol span = [%v, %v], want [290, 710]", minX, maxX)
	}
	if flips < 3 {
		t.Errorf("flips = %d, want at least 3", flips)
	}
	if e.Pos.Y != 100 {
		t.Errorf("patrol changed Y to %v", e.Pos.Y)
	}
}

func TestPatrolSkipsDeadEnemies(t *testing.T) {
	e := &Enemy{Pos: core.V(10, 0), OriginX: 10, Dir: 1, HalfRange: 50}
	EnemyPatrolAI{Speed: 2}.Update([]*Enemy{e})
	if e.Pos.X != 10 {
		t.Errorf("dead enemy moved to %v", e.Pos.X)
	}
}
