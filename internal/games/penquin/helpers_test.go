package penquin

import (
	"testing"

	"github.com/vovakirdan/penquin/internal/config"
	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels/formats"
	"github.com/vovakirdan/penquin/internal/progress"
)

const tile = 32

var testLegend = map[string]formats.TileProps{
	"#": {Collides: true},
	"=": {Collides: true, NoCollideUp: true},
	"~": {DeathZone: true},
	"B": {Collides: true, Brick: true},
	"?": {Collides: true, Question: true},
	"F": {Git: "file"},
}

// object places a marker in tile units.
func object(name string, col, row, w, h int) formats.Object {
	return formats.Object{
		Name:   name,
		X:      float64(col * tile),
		Y:      float64(row * tile),
		Width:  float64(w * tile),
		Height: float64(h * tile),
	}
}

func testMap(t *testing.T, rows []string, objs ...formats.Object) *levels.Map {
	t.Helper()
	m, err := levels.Compile("level1.yaml", &formats.Document{
		ID:         1,
		Name:       "Test",
		Tileset:    "iceworld",
		TileWidth:  tile,
		TileHeight: tile,
		Layers: []formats.Layer{
			{Name: "ground", Type: formats.LayerTiles, Rows: rows, Legend: testLegend},
			{Name: "objects", Type: formats.LayerObjects, Objects: objs},
		},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return m
}

// flatRows is an empty field with a floor on the last row.
func flatRows(cols int) []string {
	empty := make([]byte, cols)
	floor := make([]byte, cols)
	for i := range empty {
		empty[i] = '.'
		floor[i] = '#'
	}
	return []string{
		string(empty), string(empty), string(empty),
		string(empty), string(empty), string(floor),
	}
}

func newTestLevel(m *levels.Map, prog *progress.Progress, signals Signals) *Level {
	return NewLevel(m, config.DefaultPenquinConfig(), prog, signals, false)
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func typed(s string, actions ...core.Action) core.InputFrame {
	in := press(actions...)
	in.Type(s)
	return in
}

func run(l *Level, ticks int, in core.InputFrame) {
	for i := 0; i < ticks; i++ {
		l.Step(in)
	}
}

// runUntil steps until cond holds and reports whether it did within max ticks.
func runUntil(l *Level, max int, in core.InputFrame, cond func() bool) bool {
	for i := 0; i < max; i++ {
		l.Step(in)
		if cond() {
			return true
		}
	}
	return false
}
