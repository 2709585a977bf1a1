package client

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Shoot-Or-Die/internal/game"
)

var (
	colSand     = color.RGBA{R: 240, G: 217, B: 166, A: 255}
	colDeath    = color.RGBA{R: 128, G: 0, B: 0, A: 255}
	colVictory  = color.RGBA{R: 204, G: 153, B: 0, A: 255}
	colWall     = color.RGBA{R: 120, G: 96, B: 70, A: 255}
	colWallEdge = color.RGBA{R: 80, G: 62, B: 44, A: 255}
	colDoor     = color.RGBA{R: 150, G: 90, B: 40, A: 255}
	colTrail    = color.RGBA{R: 90, G: 70, B: 60, A: 140}
	colHUDBack  = color.RGBA{R: 10, G: 8, B: 6, A: 200}
)

const (
	barrelDrawRadius = 0.8
	hunterDrawRadius = 1.0
	playerDrawRadius = 0.7
	thinWallFraction = 0.25
)

// clearColor is the backdrop for each session state.
func clearColor(s game.SessionState) color.RGBA {
	switch s {
	case game.StateLost:
		return colDeath
	case game.StateWon:
		return colVictory
	default:
		return colSand
	}
}

func (c *Client) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor(c.session.State()))

	p := c.session.Player()
	v := newView(p.Position, pixelsPerUnit, c.playWidth(), c.height)

	c.drawGrid(screen, v)
	c.drawFinishLine(screen, v)
	c.drawTrail(screen, v)
	c.drawBarrels(screen, v)
	c.drawParticles(screen, v)
	c.drawLaser(screen, v)
	c.drawHunter(screen, v)
	c.drawPlayer(screen, v)
	c.drawHUD(screen)

	if c.showLog {
		c.events.Draw(screen, c.playWidth(), c.height)
	}
	if c.session.State() != game.StatePlaying {
		c.drawBanner(screen)
	}
}

func (c *Client) drawGrid(screen *ebiten.Image, v view) {
	g := c.session.Grid()
	size := v.length(g.TileSize)
	c0, r0, c1, r1 := v.cellRange(g)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			t, _ := g.At(col, row)
			cx, cy := v.toScreen(g.CellToWorld(col, row))
			x, y := cx-size/2, cy-size/2
			switch t {
			case game.TileWall:
				vector.FillRect(screen, x, y, size, size, colWall, false)
				vector.StrokeRect(screen, x, y, size, size, 1, colWallEdge, false)
			case game.TileWallRunEW:
				th := size * thinWallFraction
				vector.FillRect(screen, x, cy-th/2, size, th, colWall, false)
			case game.TileWallRunNS:
				th := size * thinWallFraction
				vector.FillRect(screen, cx-th/2, y, th, size, colWall, false)
			case game.TileDoor:
				vector.FillRect(screen, x+1, y+1, size-2, size-2, colDoor, false)
			}
		}
	}
}

func (c *Client) drawFinishLine(screen *ebiten.Image, v view) {
	minX, _, maxX, _ := c.session.Grid().Bounds()
	z := c.level.Config.FinishZ
	x0, y := v.toScreen(vecXZ(minX, z))
	x1, _ := v.toScreen(vecXZ(maxX, z))
	vector.StrokeLine(screen, x0, y, x1, y, 3, colornames.Gold, false)
}

func (c *Client) drawTrail(screen *ebiten.Image, v view) {
	for _, pt := range c.session.Trail() {
		x, y := v.toScreen(pt)
		vector.FillCircle(screen, x, y, 2, colTrail, false)
	}
}

func (c *Client) drawBarrels(screen *ebiten.Image, v view) {
	r := v.length(barrelDrawRadius)
	for _, b := range c.session.Barrels() {
		if !b.Visible {
			continue
		}
		x, y := v.toScreen(b.Position)
		vector.FillCircle(screen, x, y, r, colornames.Firebrick, true)
		vector.StrokeCircle(screen, x, y, r, 1, colornames.Darkred, true)
	}
}

func (c *Client) drawParticles(screen *ebiten.Image, v view) {
	for _, p := range c.particles.Particles() {
		x, y := v.toScreen(p.Position)
		a := uint8(255 * p.Alpha)
		// premultiplied orange
		col := color.RGBA{R: a, G: a / 2, B: 0, A: a}
		vector.FillRect(screen, x-1.5, y-1.5, 3, 3, col, false)
	}
}

func (c *Client) drawLaser(screen *ebiten.Image, v view) {
	if !c.session.Weapon().Firing {
		return
	}
	x0, y0 := v.toScreen(c.laserFrom)
	x1, y1 := v.toScreen(c.laserTo)
	vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.Red, true)
}

func (c *Client) drawHunter(screen *ebiten.Image, v view) {
	h := c.session.Hunter()
	x, y := v.toScreen(h.Position)
	r := v.length(hunterDrawRadius)

	// Shadow stays on the ground; the body grows with jump height.
	vector.FillCircle(screen, x, y, r, color.RGBA{A: 70}, true)
	body := r * (1 + h.Position.Y()*0.3)
	col := colornames.Maroon
	if h.HasLineOfSight {
		col = colornames.Crimson
	}
	vector.FillCircle(screen, x, y, body, col, true)

	fx := float32(math.Sin(float64(h.Facing)))
	fz := float32(math.Cos(float64(h.Facing)))
	vector.StrokeLine(screen, x, y, x+fx*body*1.6, y+fz*body*1.6, 2, colornames.Black, true)
}

func (c *Client) drawPlayer(screen *ebiten.Image, v view) {
	p := c.session.Player()
	x, y := v.toScreen(p.Position)
	r := v.length(playerDrawRadius)
	vector.FillCircle(screen, x, y, r, colornames.Royalblue, true)
	vector.StrokeCircle(screen, x, y, r, 1, colornames.Navy, true)

	dx, dz := headingXZ(p.Yaw)
	vector.StrokeLine(screen, x, y, x+dx*r*2.2, y+dz*r*2.2, 2, colornames.Navy, true)
}

// drawHUD renders the run status in the top-left corner.
func (c *Client) drawHUD(screen *ebiten.Image) {
	destroyed, total := c.session.BarrelCounts()
	h := c.session.Hunter()
	lines := []string{
		c.session.StatusLine(),
		fmt.Sprintf("TIME %6.2fs   BARRELS %d/%d", c.session.Elapsed(), destroyed, total),
		fmt.Sprintf("HUNTER %-8s speed %.1f", h.Mode(), h.CurrentSpeed),
		"WASD move  mouse/QE turn  click/F fire  space jump  shift sprint",
		"R restart  C copy  M mute  Tab log  Esc quit",
	}
	if c.notice != "" {
		lines = append(lines, c.notice)
	}

	const lineH = 15
	const padX = 6
	const padY = 4
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*7 + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	vector.FillRect(screen, 4, 4, boxW, boxH, colHUDBack, false)
	vector.StrokeRect(screen, 4, 4, boxW, boxH, 1, colWall, false)

	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, 4+padX, 4+padY+(i+1)*lineH-3, colornames.Wheat)
	}
}

// drawBanner centres the death or victory message over the playfield.
func (c *Client) drawBanner(screen *ebiten.Image) {
	msg := c.session.StatusLine()
	w := float32(len(msg)*7 + 24)
	x := float32(c.playWidth())/2 - w/2
	y := float32(c.height)/2 - 20
	vector.FillRect(screen, x, y, w, 40, color.RGBA{A: 200}, false)
	text.Draw(screen, msg, basicfont.Face7x13, int(x)+12, int(y)+25, colornames.White)
}
