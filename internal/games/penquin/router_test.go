package penquin

import (
	"testing"

	"github.com/vovakirdan/penquin/internal/config"
	"github.com/vovakirdan/penquin/internal/core"
)

type recorder struct {
	completed bool
	deaths    int
	blocked   int
	reached   int
	headbutts []Contact
	stomps    []*Enemy
}

func (r *recorder) TaskCompleted() bool           { return r.completed }
func (r *recorder) Die()                          { r.deaths++ }
func (r *recorder) GoalBlocked()                  { r.blocked++ }
func (r *recorder) GoalReached()                  { r.reached++ }
func (r *recorder) Headbutt(_ *Player, c Contact) { r.headbutts = append(r.headbutts, c) }
func (r *recorder) Stomp(e *Enemy)                { r.stomps = append(r.stomps, e) }

func newTestRouter() (*CollisionRouter, *recorder) {
	rec := &recorder{}
	return NewCollisionRouter(ThresholdsFromConfig(config.DefaultPenquinConfig()), rec), rec
}

func blockContact(top, vy float64) Contact {
	return Contact{
		Kind:         ContactBlock,
		Tile:         TileCoord{Col: 2, Row: 2},
		Rect:         core.NewRect(64, 64, 32, 32),
		PlayerBounds: core.NewRect(68, top, 24, 30),
		PlayerVel:    core.V(0, vy),
	}
}

func enemyContact(e *Enemy, bottom float64) Contact {
	return Contact{
		Kind:         ContactEnemy,
		Enemy:        e,
		Rect:         e.Rect(),
		PlayerBounds: core.NewRect(e.Pos.X, bottom-30, 24, 30),
	}
}

func testEnemy() *Enemy {
	// Center Y is 114.
	return &Enemy{Pos: core.V(0, 100), W: 28, H: 28, Dir: 1, Alive: true}
}

func TestClassifyHeadbutt(t *testing.T) {
	r, _ := newTestRouter()

	tests := []struct {
		name string
		c    Contact
		want Event
	}{
		{"rising into block", blockContact(93, -5), EventHeadbutt},
		{"at tolerance", blockContact(86, -5), EventHeadbutt},
		{"too deep", blockContact(80, -5), EventNone},
		{"barely rising", blockContact(93, -0.05), EventNone},
		{"falling", blockContact(93, 2), EventNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Classify(tt.c); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}

	solid := blockContact(93, -5)
	solid.Kind = ContactSolid
	if got := r.Classify(solid); got != EventNone {
		t.Errorf("solid tile classified as %v", got)
	}
}

func TestClassifyEnemy(t *testing.T) {
	r, _ := newTestRouter()
	e := testEnemy()

	if got := r.Classify(enemyContact(e, 108)); got != EventStomp {
		t.Errorf("foot well above center: %v, want stomp", got)
	}
	if got := r.Classify(enemyContact(e, 110)); got != EventStomp {
		t.Errorf("foot at margin: %v, want stomp", got)
	}
	if got := r.Classify(enemyContact(e, 112)); got != EventEnemyHit {
		t.Errorf("foot below margin: %v, want enemy-hit", got)
	}

	e.Alive = false
	if got := r.Classify(enemyContact(e, 108)); got != EventNone {
		t.Errorf("dead enemy: %v, want none", got)
	}
}

func TestClassifyGoal(t *testing.T) {
	r, rec := newTestRouter()
	goal := Contact{Kind: ContactGoal}

	if got := r.Classify(goal); got != EventGoalBlocked {
		t.Errorf("unfinished task: %v, want goal-blocked", got)
	}
	rec.completed = true
	if got := r.Classify(goal); got != EventGoalComplete {
		t.Errorf("finished task: %v, want goal-complete", got)
	}
	if rec.blocked != 0 || rec.reached != 0 {
		t.Error("Classify must not call handlers")
	}
}

func TestRouteStopsAtTerminalEvents(t *testing.T) {
	r, rec := newTestRouter()
	rec.completed = true
	p, _ := newTestPlayer()

	got := r.Route(p, []Contact{
		{Kind: ContactDeath},
		{Kind: ContactGoal},
		enemyContact(testEnemy(), 112),
	})
	if got != EventDeath {
		t.Errorf("Route() = %v, want death", got)
	}
	if rec.deaths != 1 || rec.reached != 0 {
		t.Errorf("deaths=%d reached=%d, want 1 and 0", rec.deaths, rec.reached)
	}
}

func TestRouteGoalBlockedPushesBack(t *testing.T) {
	r, rec := newTestRouter()
	p, _ := newTestPlayer()
	p.Pos.X = 100

	if got := r.Route(p, []Contact{{Kind: ContactGoal}}); got != EventGoalBlocked {
		t.Fatalf("Route() = %v, want goal-blocked", got)
	}
	if p.Pos.X != 74 {
		t.Errorf("X = %v, want 74", p.Pos.X)
	}
	if rec.blocked != 1 {
		t.Errorf("blocked = %d, want 1", rec.blocked)
	}
}

func TestRouteStompBouncesAndContinues(t *testing.T) {
	r, rec := newTestRouter()
	p, _ := newTestPlayer()
	e := testEnemy()

	got := r.Route(p, []Contact{enemyContact(e, 106), blockContact(93, -5)})
	if got != EventHeadbutt {
		t.Errorf("Route() = %v, want the later headbutt", got)
	}
	if len(rec.stomps) != 1 || rec.stomps[0] != e {
		t.Errorf("stomps = %v", rec.stomps)
	}
	if p.Vel.Y != -8 {
		t.Errorf("vy = %v, want -8 bounce", p.Vel.Y)
	}
	if len(rec.headbutts) != 1 {
		t.Errorf("headbutts = %d, want 1", len(rec.headbutts))
	}
}

func TestRouteIgnoresDeadPlayer(t *testing.T) {
	r, rec := newTestRouter()
	p, _ := newTestPlayer()
	p.Alive = false

	if got := r.Route(p, []Contact{{Kind: ContactDeath}}); got != EventNone {
		t.Errorf("Route() = %v, want none", got)
	}
	if rec.deaths != 0 {
		t.Error("dead player died again")
	}
}

func TestEventEnds(t *testing.T) {
	ends := map[Event]bool{
		EventNone:         false,
		EventDeath:        true,
		EventGoalBlocked:  true,
		EventGoalComplete: true,
		EventHeadbutt:     false,
		EventStomp:        false,
		EventEnemyHit:     true,
	}
	for ev, want := range ends {
		if ev.Ends() != want {
			t.Errorf("%v.Ends() = %v, want %v", ev, ev.Ends(), want)
		}
	}
}
