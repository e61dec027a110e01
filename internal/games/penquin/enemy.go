package penquin

import (
	"github.com/vovakirdan/penquin/internal/config"
	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
)

// Enemy is a patrolling walker. It is killed by a stomp from above.
type Enemy struct {
	Name      string
	Pos       core.Vec // top-left
	W, H      float64
	OriginX   float64
	Dir       int // -1 or +1
	HalfRange float64
	Alive     bool
	Squashed  bool
	Removed   bool // squash animation finished
}

// Rect returns the enemy's bounds.
func (e *Enemy) Rect() core.Rect {
	return core.NewRect(e.Pos.X, e.Pos.Y, e.W, e.H)
}

// Facing mirrors the patrol direction.
func (e *Enemy) Facing() int {
	return e.Dir
}

// NewEnemy creates a live enemy from a level placement.
func NewEnemy(s levels.EnemySpawn, cfg config.EnemyConfig) *Enemy {
	w, h := s.Rect.W, s.Rect.H
	if w <= 0 {
		w = cfg.Width
	}
	if h <= 0 {
		h = cfg.Height
	}
	rng := s.Range
	if rng <= 0 {
		rng = cfg.DefaultRange
	}
	return &Enemy{
		Name:      s.Name,
		Pos:       core.V(s.Rect.X, s.Rect.Y),
		W:         w,
		H:         h,
		OriginX:   s.Rect.X,
		Dir:       1,
		HalfRange: rng,
		Alive:     true,
	}
}

// EnemyPatrolAI walks enemies back and forth around their origin.
type EnemyPatrolAI struct {
	Speed float64
}

// Update moves every living enemy one tick. An enemy that reaches
// origin ± HalfRange is clamped to the boundary and turns around.
func (ai EnemyPatrolAI) Update(enemies []*Enemy) {
	for _, e := range enemies {
		if !e.Alive {
			continue
		}
		e.Pos.X += float64(e.Dir) * ai.Speed

		offset := e.Pos.X - e.OriginX
		switch {
		case e.Dir > 0 && offset >= e.HalfRange:
			e.Pos.X = e.OriginX + e.HalfRange
			e.Dir = -1
		case e.Dir < 0 && offset <= -e.HalfRange:
			e.Pos.X = e.OriginX - e.HalfRange
			e.Dir = 1
		}
	}
}
