package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Garsondee/Shoot-Or-Die/internal/game"
)

// Each grid cell is two terminal columns wide so tiles come out roughly square.
const (
	colsPerCell = 2
	hudRows     = 2
	laserSteps  = 40
	laserRange  = 60
)

var (
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorTan)
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleDoor   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleBarrel = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleTrail  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHunter = tcell.StyleDefault.Foreground(tcell.ColorMaroon).Bold(true)
	styleSeen   = tcell.StyleDefault.Foreground(tcell.ColorCrimson).Bold(true).Reverse(true)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorRoyalBlue).Bold(true)
	styleLaser  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleFinish = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWheat)
	styleLost   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
	styleWon    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold).Bold(true)
)

// Cell is one terminal character.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Canvas is an off-screen character buffer, drawn in one pass to the terminal.
type Canvas struct {
	W, H  int
	cells []Cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{W: w, H: h, cells: make([]Cell, w*h)}
	c.Clear()
	return c
}

// Clear fills the canvas with spaces.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Ch: ' ', Style: tcell.StyleDefault}
	}
}

// Set writes one character; out-of-range writes are dropped.
func (c *Canvas) Set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	c.cells[y*c.W+x] = Cell{Ch: ch, Style: style}
}

// At returns the character at x, y.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return Cell{}
	}
	return c.cells[y*c.W+x]
}

// Text writes s starting at x, y.
func (c *Canvas) Text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, style)
	}
}

// Row returns one line as a plain string.
func (c *Canvas) Row(y int) string {
	rs := make([]rune, c.W)
	for x := 0; x < c.W; x++ {
		rs[x] = c.At(x, y).Ch
	}
	return string(rs)
}

// mapView places grid cells on the canvas, centred on the player's cell.
type mapView struct {
	grid           *game.TileGrid
	focusC, focusR int
	w, h           int // map area size in terminal cells
}

func (v mapView) toScreen(col, row int) (int, int) {
	x := (col-v.focusC)*colsPerCell + v.w/2
	y := (row-v.focusR) + v.h/2 + hudRows
	return x, y
}

func (v mapView) worldToScreen(p mgl32.Vec3) (int, int) {
	col, row := v.grid.WorldToCell(p)
	return v.toScreen(col, row)
}

// Render draws the whole session onto c.
func Render(c *Canvas, s *game.Session, notice string) {
	c.Clear()
	g := s.Grid()
	pc, pr := g.WorldToCell(s.Player().Position)
	v := mapView{grid: g, focusC: pc, focusR: pr, w: c.W, h: c.H - hudRows - 1}

	drawTiles(c, v)
	drawFinish(c, v, s.Level().Config.FinishZ)

	for _, pt := range s.Trail() {
		x, y := v.worldToScreen(pt)
		c.Set(x, y, '·', styleTrail)
	}
	for _, b := range s.Barrels() {
		if !b.Visible {
			continue
		}
		x, y := v.worldToScreen(b.Position)
		c.Set(x, y, 'o', styleBarrel)
		c.Set(x+1, y, 'o', styleBarrel)
	}
	if s.Weapon().Firing {
		drawLaser(c, v, s.Camera())
	}

	h := s.Hunter()
	hx, hy := v.worldToScreen(h.Position)
	style := styleHunter
	if h.HasLineOfSight {
		style = styleSeen
	}
	glyph := 'H'
	if h.IsJumping {
		glyph = '^'
	}
	c.Set(hx, hy, glyph, style)
	c.Set(hx+1, hy, glyph, style)

	px, py := v.worldToScreen(s.Player().Position)
	c.Set(px, py, '@', stylePlayer)
	c.Set(px+1, py, headingGlyph(s.Player().Yaw), stylePlayer)

	drawHUD(c, s, notice)
}

func drawTiles(c *Canvas, v mapView) {
	g := v.grid
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			x, y := v.toScreen(col, row)
			if y < hudRows || y >= c.H-1 || x < -1 || x >= c.W {
				continue
			}
			t, _ := g.At(col, row)
			var ch rune
			style := styleWall
			switch t {
			case game.TileWall:
				ch = '█'
			case game.TileWallRunEW:
				ch = '═'
			case game.TileWallRunNS:
				ch = '║'
			case game.TileDoor:
				ch, style = '+', styleDoor
			default:
				ch, style = '.', styleFloor
			}
			c.Set(x, y, ch, style)
			if t == game.TileWallRunNS {
				c.Set(x+1, y, ' ', style)
			} else if ch == '.' {
				c.Set(x+1, y, ' ', style)
			} else {
				c.Set(x+1, y, ch, style)
			}
		}
	}
}

func drawFinish(c *Canvas, v mapView, finishZ float32) {
	g := v.grid
	_, row := g.WorldToCell(mgl32.Vec3{0, 0, finishZ})
	for col := 0; col < g.Cols; col++ {
		if t, ok := g.At(col, row); ok && t != game.TileFloor && t != game.TileBarrel {
			continue
		}
		x, y := v.toScreen(col, row)
		c.Set(x, y, '=', styleFinish)
		c.Set(x+1, y, '=', styleFinish)
	}
}

// drawLaser marks the shot ray until it leaves the grid or meets a wall.
func drawLaser(c *Canvas, v mapView, cam game.Camera) {
	dir := mgl32.Vec3{cam.Forward.X(), 0, cam.Forward.Z()}
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()
	for i := 1; i <= laserSteps; i++ {
		p := cam.Position.Add(dir.Mul(float32(i) * laserRange / laserSteps))
		col, row := v.grid.WorldToCell(p)
		if v.grid.ProbeSight(col, row) != game.CellOpen {
			return
		}
		x, y := v.toScreen(col, row)
		if c.At(x, y).Ch == '.' {
			c.Set(x, y, '*', styleLaser)
		}
	}
}

func drawHUD(c *Canvas, s *game.Session, notice string) {
	destroyed, total := s.BarrelCounts()
	h := s.Hunter()
	status := s.StatusLine()
	style := styleHUD
	switch s.State() {
	case game.StateLost:
		style = styleLost
	case game.StateWon:
		style = styleWon
	}
	c.Text(0, 0, status, style)
	c.Text(0, 1, fmt.Sprintf("time %6.2fs  barrels %d/%d  hunter %s %.1f  %s",
		s.Elapsed(), destroyed, total, h.Mode(), h.CurrentSpeed, notice), styleHUD)
	c.Text(0, c.H-1, "wasd move  q/e turn  f fire  space jump  shift+wasd sprint  r restart  c copy  esc quit", styleHUD)
}

// headingGlyph picks the arrow closest to a yaw in degrees (-90 is up).
func headingGlyph(yaw float32) rune {
	a := int(yaw) % 360
	if a < 0 {
		a += 360
	}
	switch {
	case a >= 45 && a < 135:
		return 'v'
	case a >= 135 && a < 225:
		return '<'
	case a >= 225 && a < 315:
		return '^'
	default:
		return '>'
	}
}
