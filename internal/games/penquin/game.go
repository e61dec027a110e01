// Package penquin implements a side-scrolling platformer where each level is
// gated by a git-command puzzle typed into an in-game terminal.
package penquin

import (
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/penquin/internal/config"
	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
	"github.com/vovakirdan/penquin/internal/progress"
	"github.com/vovakirdan/penquin/internal/registry"
)

// Options configure every level created through the registry.
type Options struct {
	Config   config.PenquinConfig
	Progress *progress.Progress
	Logger   *log.Logger
	Intro    bool
	Signals  Signals
}

var (
	optsMu sync.RWMutex
	opts   = Options{Config: config.DefaultPenquinConfig(), Intro: true}
)

// Setup sets the options used by registry-created levels.
func Setup(o Options) {
	optsMu.Lock()
	defer optsMu.Unlock()
	opts = o
}

func currentOptions() Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts
}

// RegisterCatalog replaces the registered levels with the catalog's entries.
// A later entry with an already registered id is skipped.
func RegisterCatalog(c *levels.Catalog) {
	registry.Unregister()
	register(c)
}

func register(c *levels.Catalog) {
	for _, e := range c.Entries() {
		entry := e
		id := strconv.Itoa(entry.ID)
		if registry.Exists(id) {
			continue
		}
		registry.Register(id, func() registry.Game {
			return New(entry, currentOptions())
		})
	}
}

func init() {
	if c, err := levels.Builtin(nil); err == nil {
		register(c)
	}
}

// Game adapts a level entry to registry.Game.
type Game struct {
	entry   levels.Entry
	opts    Options
	runtime core.RuntimeConfig
	level   *Level
	err     error
	outcome core.Outcome
	done    bool
}

// New creates a game for a catalog entry. Reset must be called before Step.
func New(entry levels.Entry, o Options) *Game {
	if o.Config == (config.PenquinConfig{}) {
		o.Config = config.DefaultPenquinConfig()
	}
	if o.Progress == nil {
		o.Progress = progress.New(nil, o.Logger)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return &Game{entry: entry, opts: o}
}

// ID returns the level number.
func (g *Game) ID() string {
	return strconv.Itoa(g.entry.ID)
}

// Title returns the display name of the level.
func (g *Game) Title() string {
	return g.entry.Title()
}

// Reset (re)starts the level from its spawn.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.outcome = core.OutcomeNone
	g.done = false
	g.level = nil
	g.err = g.entry.Err

	if g.err == nil && g.entry.Map == nil {
		g.err = levels.ErrMissingLayer
	}
	if g.err == nil {
		g.err = g.entry.Map.CheckTeleports(g.opts.Config.Player.Height)
	}
	if g.err != nil {
		g.opts.Logger.Error("level failed to load", "level", g.entry.ID, "source", g.entry.Source, "err", g.err)
		return
	}

	signals := Signals{
		OnLevelComplete: func(next int) {
			g.finish(core.OutcomeComplete)
			g.opts.Logger.Info("level complete", "level", g.entry.ID, "unlocked", next)
			if g.opts.Signals.OnLevelComplete != nil {
				g.opts.Signals.OnLevelComplete(next)
			}
		},
		OnReturnToMenu: g.opts.Signals.OnReturnToMenu,
	}

	g.level = NewLevel(g.entry.Map, g.opts.Config, g.opts.Progress, signals, g.opts.Intro)
	g.opts.Progress.SetCurrentLevel(g.entry.ID)
	g.opts.Logger.Debug("level started", "level", g.entry.ID, "name", g.entry.Map.Name)
}

func (g *Game) finish(o core.Outcome) {
	if g.done {
		return
	}
	g.done = true
	g.outcome = o
}

func (g *Game) backToMenu() {
	g.finish(core.OutcomeMenu)
	if g.opts.Signals.OnReturnToMenu != nil {
		g.opts.Signals.OnReturnToMenu()
	}
}

// Step advances the level by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.done {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionQuit) {
		g.finish(core.OutcomeQuit)
		return core.StepResult{State: g.State()}
	}

	if g.level == nil {
		if in.Has(core.ActionBack) || in.Has(core.ActionConfirm) || in.Has(core.ActionCancel) {
			g.backToMenu()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionBack) && !g.level.Terminal().IsOpen() {
		g.backToMenu()
		return core.StepResult{State: g.State()}
	}

	g.level.Step(in)
	return core.StepResult{State: g.State()}
}

// State reports the session state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.done,
		Outcome:  g.outcome,
	}
	if g.err != nil && !g.done {
		st.Outcome = core.OutcomeError
	}
	if g.level != nil {
		st.Score = g.level.Coins()
		st.Deaths = g.level.Deaths()
		st.Ticks = g.level.Ticks()
	}
	return st
}

// Outcome reports why the session ended, or OutcomeNone while it runs.
func (g *Game) Outcome() core.Outcome {
	return g.State().Outcome
}

// WantsText reports whether typed keys should go to the terminal as runes.
func (g *Game) WantsText() bool {
	return g.level != nil && g.level.Terminal().IsOpen()
}

// Level returns the running level, or nil when the content failed to load.
func (g *Game) Level() *Level {
	return g.level
}

// Err returns the content error of the level, if any.
func (g *Game) Err() error {
	return g.err
}

var _ registry.Game = (*Game)(nil)
var _ registry.TextInput = (*Game)(nil)
