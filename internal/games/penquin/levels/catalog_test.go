package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinLevelsLoad(t *testing.T) {
	c, err := Builtin(nil)
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	for i, e := range c.Entries() {
		if e.ID != i+1 {
			t.Errorf("entry %d has ID %d", i, e.ID)
		}
		if e.Err != nil {
			t.Errorf("level %d: %v", e.ID, e.Err)
			continue
		}
		if e.Map.Goal == nil {
			t.Errorf("level %d has no goal", e.ID)
		}
		if len(e.Map.Warnings) != 0 {
			t.Errorf("level %d warnings: %v", e.ID, e.Map.Warnings)
		}
	}
	if c.Last() != 4 {
		t.Errorf("Last() = %d, want 4", c.Last())
	}

	four, ok := c.Get(4)
	if !ok {
		t.Fatal("Get(4) not found")
	}
	if len(four.Map.Puzzle) != 4 {
		t.Errorf("level 4 puzzle has %d steps, want 4", len(four.Map.Puzzle))
	}
	if _, ok := c.Get(99); ok {
		t.Error("Get(99) should not be found")
	}
}

const dirLevel = `
name: Dir
tileset: iceworld
layers:
  - name: ground
    type: tiles
    rows: ["....", "####"]
    legend:
      "#": {collides: true}
  - name: objects
    type: objects
    objects:
      - {name: penquin-spawn, x: 0, y: 0, width: 32, height: 32}
      - {name: ufo-goal, x: 64, y: 0, width: 32, height: 32}
`

const dirLevelTOML = `
name = "Toml"
tileset = "caves"

[[layers]]
name = "ground"
type = "tiles"
rows = ["....", "####"]
[layers.legend."#"]
collides = true

[[layers]]
name = "objects"
type = "objects"
[[layers.objects]]
name = "penquin-spawn"
x = 0
y = 0
width = 32
height = 32
`

func writeFile(t *testing.T, dir, name, data string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFromDirKeepsBrokenEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "level1.yaml", dirLevel)
	writeFile(t, dir, "level2.toml", dirLevelTOML)
	writeFile(t, dir, "level3.yaml", "name: Broken\ntileset: caves\nlayers: []\n")
	writeFile(t, dir, "notes.txt", "ignored")

	c, err := FromDir(dir, nil)
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	e1, _ := c.Get(1)
	if e1.Err != nil || e1.Name != "Dir" {
		t.Errorf("level 1 = %+v", e1)
	}
	e2, _ := c.Get(2)
	if e2.Err != nil || e2.Map.Tileset != "caves" {
		t.Errorf("level 2 = %+v", e2)
	}
	if len(e2.Map.Warnings) != 1 {
		t.Errorf("level 2 warnings = %v, want missing goal", e2.Map.Warnings)
	}

	e3, _ := c.Get(3)
	if !errors.Is(e3.Err, ErrMissingLayer) {
		t.Errorf("level 3 error = %v, want ErrMissingLayer", e3.Err)
	}
	if e3.Map != nil {
		t.Error("broken level should have no map")
	}
	if e3.Title() != "Broken" {
		t.Errorf("Title() = %q, want Broken", e3.Title())
	}
}

func TestFromDirErrors(t *testing.T) {
	if _, err := FromDir(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("FromDir(missing) should fail")
	}
	if _, err := FromDir(t.TempDir(), nil); err == nil {
		t.Error("FromDir(empty) should fail")
	}
}

func TestLoadFallsBackToBuiltin(t *testing.T) {
	c, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
}

func TestEntryTitleFallback(t *testing.T) {
	if got := (Entry{ID: 5}).Title(); got != "Level 5" {
		t.Errorf("Title() = %q, want Level 5", got)
	}
}
