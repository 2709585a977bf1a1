package client

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Garsondee/Shoot-Or-Die/internal/game"
)

// view maps the world's XZ plane onto the playfield, centred on a focus
// point. World +X is screen right and world +Z is screen down, so the
// player's default heading (-Z) points up.
type view struct {
	centerX float32
	centerZ float32
	scale   float32 // pixels per world unit
	w, h    float32
}

func newView(focus mgl32.Vec3, scale float32, w, h int) view {
	return view{centerX: focus.X(), centerZ: focus.Z(), scale: scale, w: float32(w), h: float32(h)}
}

// toScreen projects a world point onto the playfield, dropping height.
func (v view) toScreen(p mgl32.Vec3) (float32, float32) {
	return (p.X()-v.centerX)*v.scale + v.w/2, (p.Z()-v.centerZ)*v.scale + v.h/2
}

// length converts a world distance to pixels.
func (v view) length(d float32) float32 { return d * v.scale }

// cellRange returns the inclusive range of grid cells that can touch the
// playfield, clamped to the grid.
func (v view) cellRange(g *game.TileGrid) (c0, r0, c1, r1 int) {
	halfW := v.w / 2 / v.scale
	halfH := v.h / 2 / v.scale
	c0, r0 = g.WorldToCell(mgl32.Vec3{v.centerX - halfW, 0, v.centerZ - halfH})
	c1, r1 = g.WorldToCell(mgl32.Vec3{v.centerX + halfW, 0, v.centerZ + halfH})
	c0 = clampInt(c0, 0, g.Cols-1)
	c1 = clampInt(c1, 0, g.Cols-1)
	r0 = clampInt(r0, 0, g.Rows-1)
	r1 = clampInt(r1, 0, g.Rows-1)
	return c0, r0, c1, r1
}

// headingXZ returns the screen-plane unit vector for a yaw in degrees.
func headingXZ(yawDeg float32) (float32, float32) {
	yaw := float64(mgl32.DegToRad(yawDeg))
	return float32(math.Cos(yaw)), float32(math.Sin(yaw))
}

func vecXZ(x, z float32) mgl32.Vec3 { return mgl32.Vec3{x, 0, z} }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
