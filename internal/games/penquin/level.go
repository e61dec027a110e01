package penquin

import (
	"math"

	"github.com/vovakirdan/penquin/internal/config"
	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
	"github.com/vovakirdan/penquin/internal/progress"
)

// Signals notify the platform about level flow.
type Signals struct {
	// OnLevelComplete fires exactly once per successful exit with the
	// resulting unlockedLevel.
	OnLevelComplete func(nextUnlocked int)
	// OnReturnToMenu fires when the player leaves for the level select.
	OnReturnToMenu func()
}

// Ship is a UFO sprite: the goal, or the dropship of the intro.
type Ship struct {
	Pos     core.Vec // center
	Shake   float64  // horizontal offset while shaking
	Visible bool
	busy    bool
}

// Level is one running level: the player, its world and every interaction
// system, advanced one tick at a time by Step.
type Level struct {
	cfg     config.PenquinConfig
	m       *levels.Map
	script  []Step
	prog    *progress.Progress
	signals Signals
	intro   bool

	sched    *Scheduler
	psm      *PlayerStateMachine
	patrol   EnemyPatrolAI
	zones    ZoneTracker
	tiles    [][]levels.Tile
	player   *Player
	physics  PhysicsProvider
	enemies  []*Enemy
	router   *CollisionRouter
	terminal *TerminalPuzzleEngine
	tube     *TeleportController
	portal   *TeleportController
	blocks   *DestructibleBlockEngine

	terminalZone *Trigger

	goal     Ship
	dropship Ship

	introActive bool
	ending      bool
	dead        bool
	completed   bool

	coins  int
	deaths int
	ticks  int
	deathY float64
}

// NewLevel builds a level from a compiled map. When intro is set the level
// starts (and restarts) with the UFO drop cutscene.
func NewLevel(m *levels.Map, cfg config.PenquinConfig, prog *progress.Progress, signals Signals, intro bool) *Level {
	if prog == nil {
		prog = progress.New(nil, nil)
	}
	l := &Level{
		cfg:     cfg,
		m:       m,
		script:  ScriptFor(m),
		prog:    prog,
		signals: signals,
		intro:   intro,
		sched:   NewScheduler(),
		psm:     NewPlayerStateMachine(cfg.Physics),
		patrol:  EnemyPatrolAI{Speed: cfg.Enemy.Speed},
		deathY:  m.Height() + cfg.Death.YMargin,
	}
	l.build()
	return l
}

// build (re)creates every per-attempt object from the authored map.
func (l *Level) build() {
	l.sched.Reset()
	l.zones.Reset()

	l.tiles = l.m.CloneTiles()
	l.player = NewPlayer(l.m.Spawn, l.cfg.Player)
	l.physics = NewTilePhysics(l.m, l.tiles, l.cfg.Physics)

	l.enemies = l.enemies[:0]
	for _, s := range l.m.Enemies {
		l.enemies = append(l.enemies, NewEnemy(s, l.cfg.Enemy))
	}

	t := l.cfg.Timings
	l.blocks = NewDestructibleBlockEngine(l.m, l.tiles, l.sched, l.cfg.Collision.BrickDampen, t.BrickBounceTicks, t.RewardTicks)
	l.blocks.OnReward = func(v int) { l.coins += v }

	l.tube = NewTeleportController("tube", l.sched, t.ShrinkTicks, t.GrowTicks)
	l.portal = NewTeleportController("portal", l.sched, t.ShrinkTicks, t.GrowTicks)
	l.tube.OnArrive = l.physics.Reset
	l.portal.OnArrive = l.physics.Reset

	l.terminal = NewTerminalPuzzleEngine(l.m.ID, l.script, l.prog, l.sched, t.PuzzleCloseTicks)
	l.terminal.OnComplete = l.completeTask

	l.router = NewCollisionRouter(ThresholdsFromConfig(l.cfg), levelHandlers{l})

	l.buildZones()

	l.goal = Ship{}
	if l.m.Goal != nil {
		l.goal = Ship{Pos: l.m.Goal.Center(), Visible: true}
	}
	l.dropship = Ship{}

	l.dead = false
	l.ending = false
	l.completed = false
	l.introActive = false
	l.coins = 0

	if l.intro {
		l.playIntro()
	}
}

func (l *Level) buildZones() {
	if l.prog.TaskCompleted(l.m.ID) {
		l.removeGitFiles()
	} else if file, ok := l.lastGitFile(); ok {
		tr := l.m.TileRect(file.Col, file.Row)
		c := tr.Center()
		l.terminalZone = l.zones.Add(&Trigger{
			Kind:    ZoneTerminal,
			Rect:    core.RectCentered(c.X, c.Y, tr.W*1.2, tr.H*1.2),
			Ref:     RefFoot,
			Active:  true,
			OnEnter: l.terminal.Open,
		})
	}

	for _, tp := range l.m.Tubes {
		l.addTeleport(ZoneTube, RefFoot, tp, l.tube)
	}
	for _, tp := range l.m.Portals {
		l.addTeleport(ZonePortal, RefCenter, tp, l.portal)
	}
}

func (l *Level) addTeleport(kind ZoneKind, ref RefPoint, tp levels.Teleport, ctl *TeleportController) {
	exit := tp.Exit
	l.zones.Add(&Trigger{
		Kind:    kind,
		Rect:    tp.Enter,
		Ref:     ref,
		Exit:    &exit,
		Active:  true,
		OnEnter: func() { ctl.Start(l.player, exit) },
	})
}

// lastGitFile finds the git file tile that anchors the terminal zone.
func (l *Level) lastGitFile() (TileCoord, bool) {
	var found TileCoord
	ok := false
	for row := range l.tiles {
		for col, t := range l.tiles[row] {
			if t.GitFile {
				found, ok = TileCoord{Col: col, Row: row}, true
			}
		}
	}
	return found, ok
}

func (l *Level) removeGitFiles() {
	for row := range l.tiles {
		for col := range l.tiles[row] {
			if l.tiles[row][col].GitFile {
				l.tiles[row][col] = levels.Tile{}
			}
		}
	}
}

// completeTask runs when the last puzzle step is accepted.
func (l *Level) completeTask() {
	l.removeGitFiles()
	if l.terminalZone != nil {
		l.zones.Remove(l.terminalZone)
		l.terminalZone = nil
	}
}

// Frozen is the global freeze guard.
func (l *Level) Frozen() bool {
	return l.terminal.IsOpen() || l.ending || l.completed || l.dead ||
		l.tube.Busy() || l.portal.Busy() || l.introActive
}

// Step advances the level by one tick.
func (l *Level) Step(in core.InputFrame) {
	l.ticks++
	l.sched.Advance()
	if l.completed {
		return
	}

	l.terminal.HandleInput(in)

	l.psm.Update(l.player, in, l.Frozen())
	l.patrol.Update(l.enemies)

	res := l.physics.Step(l.player, l.enemies)
	if res.Landed {
		l.psm.Land(l.player)
	}

	ev := l.router.Route(l.player, res.Contacts)
	if ev.Ends() || l.dead || l.ending {
		return
	}

	l.zones.Update(l.player.Rect())

	if l.player.Rect().Center().Y > l.deathY {
		l.die()
	}
}

// die kills the player, clears the level's task flags and schedules a restart.
func (l *Level) die() {
	if l.dead || l.ending || l.completed {
		return
	}
	l.dead = true
	l.psm.Kill(l.player)
	l.deaths++
	l.prog.ClearTasks(l.m.ID, len(l.script))
	l.sched.After(l.cfg.Timings.DeathRestartTicks, l.restart)
}

func (l *Level) restart() {
	l.build()
}

func (l *Level) shakeGoal() {
	if l.goal.busy {
		return
	}
	l.goal.busy = true
	l.sched.Tween(l.cfg.Timings.GoalShakeTicks, func(t float64) {
		l.goal.Shake = 6 * math.Sin(t*math.Pi*8)
	}, func() {
		l.goal.Shake = 0
		l.goal.busy = false
	})
}

// exitCutscene glides the player into the UFO, fades it out, flies the UFO
// away and then completes the level.
func (l *Level) exitCutscene() {
	if l.ending {
		return
	}
	l.ending = true
	l.player.Vel = core.Vec{}

	t := l.cfg.Timings
	start := l.player.Pos
	target := core.V(l.goal.Pos.X-l.player.W/2, l.goal.Pos.Y-l.player.H/2)
	shipStart := l.goal.Pos

	l.sched.Tween(t.ExitMoveTicks, func(k float64) {
		l.player.Pos = start.Lerp(target, k)
	}, func() {
		l.sched.Tween(t.ExitFadeTicks, func(k float64) {
			l.player.Alpha = 1 - k
		}, func() {
			l.player.Visible = false
			l.sched.Tween(t.ExitFlyTicks, func(k float64) {
				l.goal.Pos = core.V(shipStart.X, shipStart.Y-(shipStart.Y+l.m.TileH*4)*k)
			}, func() {
				l.goal.Visible = false
				l.complete()
			})
		})
	})
}

func (l *Level) complete() {
	if l.completed {
		return
	}
	l.completed = true
	next := l.prog.Unlock(l.m.ID + 1)
	if l.signals.OnLevelComplete != nil {
		l.signals.OnLevelComplete(next)
	}
}

// playIntro lowers the dropship over the spawn, releases the player and
// flies off. The player is frozen throughout.
func (l *Level) playIntro() {
	l.introActive = true
	l.player.Visible = false

	total := l.cfg.Timings.IntroTicks
	descend := total * 9 / 16
	leave := total - descend

	spawn := l.m.Spawn.Foot()
	top := core.V(spawn.X, -l.m.TileH*2)
	hover := core.V(spawn.X, l.m.Spawn.Y-l.m.TileH)
	l.dropship = Ship{Pos: top, Visible: true}

	l.sched.Tween(descend, func(k float64) {
		l.dropship.Pos = top.Lerp(hover, k)
	}, func() {
		l.player.Visible = true
		l.sched.Tween(leave, func(k float64) {
			l.dropship.Pos = hover.Lerp(top, k)
		}, func() {
			l.dropship.Visible = false
			l.introActive = false
		})
	})
}

// levelHandlers adapts Level to the router's Handlers.
type levelHandlers struct {
	l *Level
}

func (h levelHandlers) TaskCompleted() bool { return h.l.prog.TaskCompleted(h.l.m.ID) }
func (h levelHandlers) Die()                { h.l.die() }
func (h levelHandlers) GoalBlocked()        { h.l.shakeGoal() }
func (h levelHandlers) GoalReached()        { h.l.exitCutscene() }

func (h levelHandlers) Headbutt(p *Player, c Contact) {
	h.l.blocks.Hit(p, c)
}

func (h levelHandlers) Stomp(e *Enemy) {
	if !e.Alive {
		return
	}
	e.Alive = false
	e.Squashed = true
	h.l.sched.After(h.l.cfg.Timings.SquashTicks, func() {
		e.Removed = true
	})
}

// Map returns the level's compiled map.
func (l *Level) Map() *levels.Map { return l.m }

// Player returns the player.
func (l *Level) Player() *Player { return l.player }

// Enemies returns every enemy, including squashed ones.
func (l *Level) Enemies() []*Enemy { return l.enemies }

// Tiles returns the live ground layer.
func (l *Level) Tiles() [][]levels.Tile { return l.tiles }

// Terminal returns the puzzle engine.
func (l *Level) Terminal() *TerminalPuzzleEngine { return l.terminal }

// Blocks returns the destructible block engine.
func (l *Level) Blocks() *DestructibleBlockEngine { return l.blocks }

// Zones returns the zone tracker.
func (l *Level) Zones() *ZoneTracker { return &l.zones }

// Goal returns the goal UFO.
func (l *Level) Goal() Ship { return l.goal }

// Dropship returns the intro UFO.
func (l *Level) Dropship() Ship { return l.dropship }

// Script returns the puzzle steps.
func (l *Level) Script() []Step { return l.script }

// TaskCompleted reports whether the level's puzzle is solved.
func (l *Level) TaskCompleted() bool { return l.prog.TaskCompleted(l.m.ID) }

// Dead reports whether the death overlay is showing.
func (l *Level) Dead() bool { return l.dead }

// Ending reports whether the exit cutscene is playing.
func (l *Level) Ending() bool { return l.ending }

// Completed reports whether the level finished successfully.
func (l *Level) Completed() bool { return l.completed }

// Coins returns the coins collected in the current attempt.
func (l *Level) Coins() int { return l.coins }

// Deaths returns the deaths since the level was created.
func (l *Level) Deaths() int { return l.deaths }

// Ticks returns the ticks since the level was created.
func (l *Level) Ticks() int { return l.ticks }

// DeathY returns the fallback death line.
func (l *Level) DeathY() float64 { return l.deathY }
