package penquin

import (
	"fmt"
	"math"

	"github.com/vovakirdan/penquin/internal/core"
	"github.com/vovakirdan/penquin/internal/games/penquin/levels"
)

// Each tile is drawn as two cells side by side, one row tall.
const cellsPerTile = 2

// palette picks ground colors per tileset.
var palette = map[string]core.Color{
	"iceworld": core.ColorBrightCyan,
	"clouds":   core.ColorBrightWhite,
	"caves":    core.ColorMagenta,
	"summit":   core.ColorGray,
}

// camera maps world pixels to screen cells.
type camera struct {
	tileW, tileH float64
	x, y         int // top-left world cell
	top          int // first screen row of the world view
	w, h         int
}

func newCamera(l *Level, dst *core.Screen) camera {
	m := l.Map()
	c := camera{tileW: m.TileW, tileH: m.TileH, top: 1, w: dst.Width(), h: dst.Height() - 2}
	worldW, worldH := m.Cols*cellsPerTile, m.Rows

	focus := l.Player().Rect().Center()
	fx, fy := c.cell(focus)
	c.x = core.Clamp(fx-c.w/2, 0, core.Max(0, worldW-c.w))
	c.y = core.Clamp(fy-c.h/2, 0, core.Max(0, worldH-c.h))
	return c
}

// cell converts a world point to world cell coordinates.
func (c camera) cell(p core.Vec) (int, int) {
	return int(math.Floor(p.X / c.tileW * cellsPerTile)), int(math.Floor(p.Y / c.tileH))
}

// screen converts a world point to screen coordinates.
func (c camera) screen(p core.Vec) (int, int) {
	x, y := c.cell(p)
	return x - c.x, y - c.y + c.top
}

func (c camera) visible(sx, sy int) bool {
	return sx >= 0 && sx < c.w && sy >= c.top && sy < c.top+c.h
}

func (c camera) text(dst *core.Screen, sx, sy int, s string, col core.Color) {
	for i, r := range []rune(s) {
		if c.visible(sx+i, sy) {
			dst.SetColored(sx+i, sy, r, col)
		}
	}
}

// Render draws the current state of the game.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.level == nil {
		g.renderError(dst)
		return
	}
	l := g.level
	cam := newCamera(l, dst)

	renderTiles(dst, l, cam)
	renderObjects(dst, l, cam)
	renderEnemies(dst, l, cam)
	renderShips(dst, l, cam)
	renderPlayer(dst, l, cam)
	renderRewards(dst, l, cam)

	g.renderHUD(dst)

	switch {
	case l.Terminal().IsOpen():
		renderTerminal(dst, l)
	case l.Dead():
		drawBanner(dst, core.ColorBrightRed, "YOU FELL", "restarting...")
	case l.Completed():
		drawBanner(dst, core.ColorBrightGreen, "LEVEL COMPLETE", "esc: back to levels")
	}
}

func renderTiles(dst *core.Screen, l *Level, cam camera) {
	ground, ok := palette[l.Map().Tileset]
	if !ok {
		// Custom levels may name a color instead of a known tileset.
		if ground, ok = core.ParseColor(l.Map().Tileset); !ok {
			ground = core.ColorWhite
		}
	}
	for row, line := range l.Tiles() {
		for col, t := range line {
			if t.Empty() {
				continue
			}
			glyph, color := tileGlyph(t, ground)
			at := l.Map().TileRect(col, row)
			if off := l.Blocks().Offset(TileCoord{Col: col, Row: row}); off < -at.H/8 {
				at = at.Translate(core.V(0, -at.H))
			}
			sx, sy := cam.screen(core.V(at.X, at.Y))
			cam.text(dst, sx, sy, glyph, color)
		}
	}
}

func tileGlyph(t levels.Tile, ground core.Color) (string, core.Color) {
	switch {
	case t.Death:
		return "~~", core.ColorRed
	case t.Block == levels.BlockQuestion && t.Used:
		return "[]", core.ColorGray
	case t.Block == levels.BlockQuestion:
		return "??", core.ColorBrightYellow
	case t.Block == levels.BlockBrick:
		return "▓▓", core.ColorOrange
	case t.GitFile:
		return "{}", core.ColorBrightGreen
	case t.Hint:
		return "··", core.ColorBrightYellow
	case t.OneWay:
		return "══", ground
	case t.Glyph == 'T':
		return "||", core.ColorGreen
	}
	return "██", ground
}

func renderObjects(dst *core.Screen, l *Level, cam camera) {
	for _, z := range l.Map().DeathZones {
		for x := z.X; x < z.Right(); x += l.Map().TileW / cellsPerTile {
			sx, sy := cam.screen(core.V(x, z.Bottom()-1))
			cam.text(dst, sx, sy, "^", core.ColorRed)
		}
	}
	for _, p := range l.Map().Portals {
		sx, sy := cam.screen(core.V(p.Enter.X, p.Enter.Y))
		cam.text(dst, sx, sy, "()", core.ColorBrightMagenta)
		ex, ey := cam.screen(core.V(p.Exit.X-l.Map().TileW/2, p.Exit.Y-1))
		cam.text(dst, ex, ey, "()", core.ColorMagenta)
	}
}

func renderEnemies(dst *core.Screen, l *Level, cam camera) {
	for _, e := range l.Enemies() {
		if e.Removed {
			continue
		}
		r := e.Rect()
		sx, sy := cam.screen(core.V(r.X, r.Bottom()-1))
		switch {
		case e.Squashed:
			cam.text(dst, sx, sy, "__", core.ColorRed)
		case e.Facing() < 0:
			cam.text(dst, sx, sy, "<m", core.ColorBrightRed)
		default:
			cam.text(dst, sx, sy, "m>", core.ColorBrightRed)
		}
	}
}

func renderShips(dst *core.Screen, l *Level, cam camera) {
	for _, s := range []Ship{l.Goal(), l.Dropship()} {
		if !s.Visible {
			continue
		}
		sx, sy := cam.screen(core.V(s.Pos.X+s.Shake, s.Pos.Y))
		cam.text(dst, sx-2, sy-1, " /^\\ ", core.ColorBrightGreen)
		cam.text(dst, sx-3, sy, "<=O=O=>", core.ColorGreen)
		cam.text(dst, sx-1, sy+1, "/ \\", core.ColorGray)
	}
}

func renderPlayer(dst *core.Screen, l *Level, cam camera) {
	p := l.Player()
	if !p.Visible || p.Alpha < 0.2 {
		return
	}
	r := p.Rect()
	sx, sy := cam.screen(core.V(r.X, r.Bottom()-1))

	sprite := "°>"
	if p.Facing < 0 {
		sprite = "<°"
	}
	color := core.ColorBrightWhite
	switch {
	case p.State == StateDead:
		sprite, color = "xx", core.ColorRed
	case p.Scale < 0.5:
		sprite = "··"
	case p.State == StateJumping:
		color = core.ColorBrightCyan
	}
	cam.text(dst, sx, sy, sprite, color)
}

func renderRewards(dst *core.Screen, l *Level, cam camera) {
	for _, r := range l.Blocks().Rewards() {
		if r.Done || r.Alpha < 0.2 {
			continue
		}
		sx, sy := cam.screen(r.Pos)
		cam.text(dst, sx, sy, "$", core.ColorBrightYellow)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	l := g.level
	task := "pending"
	if l.TaskCompleted() {
		task = "done"
	}
	hud := fmt.Sprintf(" %d · %s   coins %d   deaths %d   task %s ",
		l.Map().ID, g.Title(), l.Coins(), l.Deaths(), task)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	help := " ←/→ move   space jump   esc levels   q quit "
	if l.Terminal().IsOpen() {
		help = " type the command   enter run   esc close "
	}
	dst.DrawTextColored(0, dst.Height()-1, help, core.ColorGray)
}

func renderTerminal(dst *core.Screen, l *Level) {
	t := l.Terminal()
	w := core.Min(dst.Width()-4, 72)
	h := 11
	x := (dst.Width() - w) / 2
	y := core.Max(1, (dst.Height()-h)/2)

	dst.FillRect(x, y, w, h, ' ', core.ColorDefault)
	dst.DrawBox(x, y, w, h, core.ColorBrightGreen)

	step := t.Current()
	inner := w - 4
	title := fmt.Sprintf(" git terminal  step %d/%d ", t.StepIndex(), t.Steps())
	dst.DrawTextColored(x+2, y, title, core.ColorBrightGreen)
	dst.DrawTextColored(x+2, y+2, clip(step.Objective, inner), core.ColorBrightWhite)
	dst.DrawTextColored(x+2, y+3, clip(step.Explain, inner), core.ColorGray)
	dst.DrawTextColored(x+2, y+5, clip("command: "+step.Command, inner), core.ColorYellow)

	msg, kind := t.Feedback()
	color := core.ColorDefault
	switch kind {
	case FeedbackOK:
		color = core.ColorBrightGreen
	case FeedbackError:
		color = core.ColorBrightRed
	}
	dst.DrawTextColored(x+2, y+6, clip(msg, inner), color)

	prompt := "$ " + t.Buffer()
	if !t.Closing() {
		prompt += "█"
	}
	dst.DrawTextColored(x+2, y+8, clipLeft(prompt, inner), core.ColorBrightWhite)
}

func (g *Game) renderError(dst *core.Screen) {
	lines := []string{fmt.Sprintf("Level %s could not be loaded", g.ID())}
	if g.err != nil {
		lines = append(lines, clip(g.err.Error(), dst.Width()-4))
	}
	lines = append(lines, "", "esc: back to levels")
	drawBanner(dst, core.ColorBrightRed, lines...)
}

// drawBanner draws a boxed, centered message; the first line uses color.
func drawBanner(dst *core.Screen, color core.Color, lines ...string) {
	w := 0
	for _, s := range lines {
		w = core.Max(w, len([]rune(s)))
	}
	w = core.Min(w+6, dst.Width())
	h := len(lines) + 2
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2

	dst.FillRect(x, y, w, h, ' ', core.ColorDefault)
	dst.DrawBox(x, y, w, h, color)
	for i, s := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = color
		}
		dst.DrawTextCenteredColored(y+1+i, s, c)
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// clipLeft keeps the tail of s so the cursor stays visible.
func clipLeft(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n <= 0 {
		return s
	}
	return "…" + string(r[len(r)-n+1:])
}
