// Package levels compiles level documents into playable maps and provides the
// built-in level catalog.
package levels

import (
	"strconv"
	"strings"

	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels/formats"
)

// Marker object names.
const (
	MarkerSpawn      = "penquin-spawn"
	MarkerGoal       = "ufo-goal"
	MarkerTubeEnter  = "tube-enter"
	MarkerTubeExit   = "tube-exit"
	MarkerPortal     = "portal-enter"
	MarkerPortalExit = "portal-exit"
	MarkerDeathZone  = "death-zone"
	enemyPrefix      = "enemy"
)

// BlockKind classifies destructible tiles.
type BlockKind int

const (
	BlockNone BlockKind = iota
	BlockBrick
	BlockQuestion
)

// Tile is one compiled ground-layer cell.
type Tile struct {
	Glyph       rune
	Collides    bool
	CollideDown bool // solid when hit from below
	OneWay      bool // authored platform: lands from above only
	Death       bool
	Block       BlockKind
	UsedFrame   int
	Reward      string
	RewardValue int
	GitFile     bool
	Hint        bool
	Used        bool // question block already emptied; drawn with UsedFrame
}

// Empty reports whether the cell holds nothing at all.
func (t Tile) Empty() bool {
	return t == Tile{}
}

// Teleport pairs an entrance rectangle with an exit point.
// Exit is the bottom-center position the body is moved to.
type Teleport struct {
	Enter core.Rect
	Exit  core.Vec
}

// EnemySpawn is an enemy placement. W/H of zero mean "engine default",
// Range of zero means the default patrol half-range.
type EnemySpawn struct {
	Name  string
	Rect  core.Rect
	Range float64
}

// PuzzleStep is one expected terminal command.
type PuzzleStep struct {
	Command   string
	Objective string
	Explain   string
}

// Map is a compiled, validated level.
type Map struct {
	ID         int
	Name       string
	Tileset    string
	Background string
	TileW      float64
	TileH      float64
	Cols, Rows int

	Tiles      [][]Tile
	Spawn      core.Rect
	Goal       *core.Rect
	Tubes      []Teleport
	Portals    []Teleport
	Enemies    []EnemySpawn
	DeathZones []core.Rect
	Puzzle     []PuzzleStep

	// Warnings lists non-fatal content issues (for example a missing goal).
	Warnings []string
}

// Width returns the map width in pixels.
func (m *Map) Width() float64 { return float64(m.Cols) * m.TileW }

// Height returns the map height in pixels.
func (m *Map) Height() float64 { return float64(m.Rows) * m.TileH }

// TileRect returns the world rectangle of a cell.
func (m *Map) TileRect(col, row int) core.Rect {
	return core.NewRect(float64(col)*m.TileW, float64(row)*m.TileH, m.TileW, m.TileH)
}

// CloneTiles returns a deep copy of the ground layer, so a running level can
// mutate its tiles and still restart from the authored state.
func (m *Map) CloneTiles() [][]Tile {
	out := make([][]Tile, len(m.Tiles))
	for y, row := range m.Tiles {
		out[y] = append([]Tile(nil), row...)
	}
	return out
}

// Compile validates a document and builds its Map.
// name identifies the source in error messages.
func Compile(name string, doc *formats.Document) (*Map, error) {
	if doc.Tileset == "" {
		return nil, contentErr(name, ErrMissingTileset, "tileset name is empty")
	}

	ground := findLayer(doc, "ground", formats.LayerTiles)
	if ground == nil {
		return nil, contentErr(name, ErrMissingLayer, "no ground tile layer")
	}
	objects := findLayer(doc, "objects", formats.LayerObjects)
	if objects == nil {
		return nil, contentErr(name, ErrMissingLayer, "no object layer")
	}

	m := &Map{
		ID:         doc.ID,
		Name:       doc.Name,
		Tileset:    doc.Tileset,
		Background: doc.Background,
		TileW:      float64(doc.TileWidth),
		TileH:      float64(doc.TileHeight),
	}
	if m.TileW <= 0 {
		m.TileW = 32
	}
	if m.TileH <= 0 {
		m.TileH = 32
	}

	if err := m.compileTiles(name, ground); err != nil {
		return nil, err
	}
	if err := m.compileObjects(name, objects.Objects); err != nil {
		return nil, err
	}

	for _, p := range doc.Puzzle {
		m.Puzzle = append(m.Puzzle, PuzzleStep{
			Command:   strings.TrimSpace(p.Command),
			Objective: p.Objective,
			Explain:   p.Explain,
		})
	}

	return m, nil
}

func findLayer(doc *formats.Document, name, typ string) *formats.Layer {
	for i := range doc.Layers {
		l := &doc.Layers[i]
		if l.Name == name && (l.Type == "" || l.Type == typ) {
			return l
		}
	}
	return nil
}

func (m *Map) compileTiles(name string, layer *formats.Layer) error {
	m.Rows = len(layer.Rows)
	for _, row := range layer.Rows {
		if n := len([]rune(row)); n > m.Cols {
			m.Cols = n
		}
	}

	m.Tiles = make([][]Tile, m.Rows)
	for y, row := range layer.Rows {
		m.Tiles[y] = make([]Tile, m.Cols)
		for x, r := range []rune(row) {
			if r == '.' || r == ' ' {
				continue
			}
			props, ok := layer.Legend[string(r)]
			if !ok {
				return contentErr(name, ErrBadTile, "glyph %q at %d,%d has no legend entry", r, x, y)
			}
			m.Tiles[y][x] = tileFromProps(r, props)
		}
	}
	return nil
}

func tileFromProps(r rune, p formats.TileProps) Tile {
	t := Tile{
		Glyph:       r,
		Collides:    p.Collides,
		CollideDown: p.Collides && !p.NoCollideUp,
		OneWay:      p.Collides && p.NoCollideUp,
		Death:       p.DeathZone,
		UsedFrame:   p.UsedFrame,
		Reward:      p.Reward,
		RewardValue: p.RewardValue,
		GitFile:     p.Git == "file",
		Hint:        p.Hint != "",
	}
	switch {
	case p.Question:
		t.Block = BlockQuestion
		if t.Reward == "" {
			t.Reward = "coin"
		}
		if t.RewardValue == 0 {
			t.RewardValue = 1
		}
	case p.Brick:
		t.Block = BlockBrick
	}
	return t
}

func objectRect(o formats.Object) core.Rect {
	return core.NewRect(o.X, o.Y, o.Width, o.Height)
}

func (m *Map) compileObjects(name string, objs []formats.Object) error {
	var spawn *core.Rect
	var tubeEnters, tubeExits, portalEnters, portalExits []formats.Object

	for _, o := range objs {
		switch {
		case o.Name == MarkerSpawn:
			r := objectRect(o)
			spawn = &r
		case o.Name == MarkerGoal:
			r := objectRect(o)
			m.Goal = &r
		case o.Name == MarkerTubeEnter:
			tubeEnters = append(tubeEnters, o)
		case o.Name == MarkerTubeExit:
			tubeExits = append(tubeExits, o)
		case o.Name == MarkerPortal:
			portalEnters = append(portalEnters, o)
		case o.Name == MarkerPortalExit:
			portalExits = append(portalExits, o)
		case strings.HasPrefix(o.Name, enemyPrefix):
			m.Enemies = append(m.Enemies, EnemySpawn{
				Name:  o.Name,
				Rect:  objectRect(o),
				Range: o.Float("range", 0),
			})
		case o.Name == MarkerDeathZone || o.Type == "death" || o.Bool("deadly"):
			m.DeathZones = append(m.DeathZones, objectRect(o))
		}
	}

	if spawn == nil {
		return contentErr(name, ErrMissingMarker, "no %s object", MarkerSpawn)
	}
	m.Spawn = *spawn
	if m.Goal == nil {
		m.Warnings = append(m.Warnings, "no "+MarkerGoal+" object: level has no exit")
	}

	var err error
	if m.Tubes, err = pairTeleports(name, "tube", tubeEnters, tubeExits); err != nil {
		return err
	}
	if m.Portals, err = pairTeleports(name, "portal", portalEnters, portalExits); err != nil {
		return err
	}
	return nil
}

// pairTeleports matches the n-th entrance with the n-th exit and rejects
// exits that land inside their own entrance, which would re-trigger forever.
func pairTeleports(name, kind string, enters, exits []formats.Object) ([]Teleport, error) {
	if len(enters) != len(exits) {
		return nil, contentErr(name, ErrBadTeleport, "%d %s entrances but %d exits", len(enters), kind, len(exits))
	}
	out := make([]Teleport, 0, len(enters))
	for i := range enters {
		enter := objectRect(enters[i])
		exit := objectRect(exits[i]).Foot()
		if enter.Contains(exit) {
			return nil, contentErr(name, ErrBadTeleport, "%s %d exit lies inside its entrance", kind, i+1)
		}
		out = append(out, Teleport{Enter: enter, Exit: exit})
	}
	return out, nil
}

// CheckTeleports rejects a teleport that would put a body of height h back
// inside its own entrance on arrival. Tube entrances test the body's foot and
// portal entrances its center, so a portal exit must clear the entrance by
// half a body.
func (m *Map) CheckTeleports(h float64) error {
	name := strconv.Itoa(m.ID)
	for i, tp := range m.Tubes {
		if tp.Enter.Contains(tp.Exit) {
			return contentErr(name, ErrBadTeleport, "tube %d exit lies inside its entrance", i+1)
		}
	}
	for i, tp := range m.Portals {
		if tp.Enter.Contains(core.V(tp.Exit.X, tp.Exit.Y-h/2)) {
			return contentErr(name, ErrBadTeleport, "portal %d exit puts a %gpx body back inside its entrance", i+1, h)
		}
	}
	return nil
}

// levelNumberFromName extracts digits from a file name like "level3.yaml".
func levelNumberFromName(base string) int {
	var digits strings.Builder
	for _, r := range base {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		} else if digits.Len() > 0 {
			break
		}
	}
	n, _ := strconv.Atoi(digits.String())
	return n
}
