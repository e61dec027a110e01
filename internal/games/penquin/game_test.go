package penquin

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels/formats"
	"github.com/vovakirdan/penquin/internal/progress"
	"github.com/vovakirdan/penquin/internal/registry"
)

func builtinEntry(t *testing.T, id int) levels.Entry {
	t.Helper()
	c, err := levels.Builtin(nil)
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	e, ok := c.Get(id)
	if !ok {
		t.Fatalf("level %d not found", id)
	}
	return e
}

func TestBuiltinLevelsAreRegistered(t *testing.T) {
	list := registry.List()
	if len(list) != 4 {
		t.Fatalf("List() = %d games, want 4", len(list))
	}
	for i, info := range list {
		if want := string(rune('1' + i)); info.ID != want {
			t.Errorf("List()[%d].ID = %q, want %q", i, info.ID, want)
		}
	}
	g, err := registry.Create("4")
	if err != nil {
		t.Fatalf("Create(4) error = %v", err)
	}
	if g.Title() != "Summit" {
		t.Errorf("Title() = %q, want Summit", g.Title())
	}
}

func TestGameBackReturnsToMenu(t *testing.T) {
	back := 0
	g := New(builtinEntry(t, 1), Options{Signals: Signals{OnReturnToMenu: func() { back++ }}})
	g.Reset(core.DefaultConfig())

	g.Step(press(core.ActionBack))
	st := g.State()
	if !st.GameOver || st.Outcome != core.OutcomeMenu {
		t.Errorf("state = %+v, want menu outcome", st)
	}
	g.Step(press(core.ActionBack))
	if back != 1 {
		t.Errorf("OnReturnToMenu called %d times, want 1", back)
	}
}

func TestGameQuit(t *testing.T) {
	g := New(builtinEntry(t, 1), Options{})
	g.Reset(core.DefaultConfig())
	if g.Outcome() != core.OutcomeNone {
		t.Fatalf("Outcome() = %v before quitting", g.Outcome())
	}
	if st := g.Step(press(core.ActionQuit)).State; st.Outcome != core.OutcomeQuit || !st.GameOver {
		t.Errorf("state = %+v, want quit", st)
	}
	if g.Outcome() != core.OutcomeQuit {
		t.Errorf("Outcome() = %v, want quit", g.Outcome())
	}
}

func TestGameContentError(t *testing.T) {
	back := 0
	g := New(levels.Entry{ID: 9, Source: "level9.yaml", Err: levels.ErrMissingLayer},
		Options{Signals: Signals{OnReturnToMenu: func() { back++ }}})
	g.Reset(core.DefaultConfig())

	if g.State().Outcome != core.OutcomeError || g.Level() != nil {
		t.Fatalf("state = %+v, want error outcome and no level", g.State())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "could not be loaded") {
		t.Error("error banner not rendered")
	}

	g.Step(press(core.ActionConfirm))
	if g.State().Outcome != core.OutcomeMenu || back != 1 {
		t.Errorf("outcome=%v back=%d, want menu", g.State().Outcome, back)
	}
}

func TestGameRejectsPortalThatReenters(t *testing.T) {
	// The exit foot clears the entrance but the arriving player's center
	// would not.
	m := testMap(t, flatRows(10),
		object(levels.MarkerSpawn, 6, 4, 1, 1),
		object(levels.MarkerPortal, 0, 0, 2, 2),
		formats.Object{Name: levels.MarkerPortalExit, X: 16, Y: 40, Width: 32, Height: 32},
	)
	g := New(levels.Entry{ID: 1, Map: m}, Options{})
	g.Reset(core.DefaultConfig())

	if !errors.Is(g.Err(), levels.ErrBadTeleport) {
		t.Fatalf("Err() = %v, want %v", g.Err(), levels.ErrBadTeleport)
	}
	if g.State().Outcome != core.OutcomeError || g.Level() != nil {
		t.Errorf("state = %+v, want error outcome and no level", g.State())
	}
}

func TestGameRecordsCurrentLevel(t *testing.T) {
	prog := progress.New(nil, nil)
	g := New(builtinEntry(t, 3), Options{Progress: prog})
	g.Reset(core.DefaultConfig())
	if prog.CurrentLevel() != 3 {
		t.Errorf("CurrentLevel() = %d, want 3", prog.CurrentLevel())
	}
}

func TestWantsTextFollowsTerminal(t *testing.T) {
	g := New(builtinEntry(t, 1), Options{})
	g.Reset(core.DefaultConfig())
	if g.WantsText() {
		t.Fatal("WantsText() should be false with the terminal closed")
	}
	g.Level().Terminal().Open()
	if !g.WantsText() {
		t.Error("WantsText() should be true with the terminal open")
	}

	// Back is ignored while typing.
	g.Step(press(core.ActionBack))
	if g.State().GameOver {
		t.Error("Back should not leave the level while the terminal is open")
	}
}

func TestBuiltinLevelsPlayAndRender(t *testing.T) {
	c, err := levels.Builtin(nil)
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	for _, e := range c.Entries() {
		t.Run(e.Title(), func(t *testing.T) {
			g := New(e, Options{Intro: true})
			g.Reset(core.DefaultConfig())
			screen := core.NewScreen(80, 24)

			for i := 0; i < 400; i++ {
				in := press(core.ActionRight)
				if i%40 == 0 {
					in.Set(core.ActionJump)
				}
				g.Step(in)
				if i%50 == 0 {
					g.Render(screen)
				}
			}
			g.Level().Terminal().Open()
			g.Render(screen)

			if !strings.Contains(screen.Row(0), "coins") {
				t.Errorf("HUD row = %q", screen.Row(0))
			}
			if !strings.Contains(screen.String(), "git terminal") {
				t.Error("terminal overlay not rendered")
			}
		})
	}
}
