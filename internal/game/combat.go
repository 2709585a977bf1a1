package game

import "github.com/go-gl/mathgl/mgl32"

// --- Combat constants ---

const (
	barrelRadius      = 0.8 // hitbox radius on the ground plane
	barrelBlockRadius = 1.0 // player cannot step this close to a barrel centre
	hitBandLow        = 0.0 // lowest accepted hit height
	hitBandHigh       = 3.0 // highest accepted hit height
)

// Barrel is a destructible obstacle. Position never changes; Visible flips
// to false once, when the barrel is shot.
type Barrel struct {
	Position mgl32.Vec3
	Visible  bool
}

// NewBarrels creates one visible barrel per position, preserving order.
func NewBarrels(positions []mgl32.Vec3) []Barrel {
	out := make([]Barrel, len(positions))
	for i, p := range positions {
		out[i] = Barrel{Position: p, Visible: true}
	}
	return out
}

// ShotResult is the outcome of one trigger pull.
type ShotResult struct {
	Hit   bool
	Index int        // barrel index; -1 on a miss
	Point mgl32.Vec3 // 3D point on the ray closest to the barrel
}

// FireAt casts a ray from origin along direction and destroys the first
// visible barrel it hits. Barrels are tested in slice order and the first
// acceptable one wins, even if a later barrel is nearer along the ray.
//
// A barrel is hit when the ground-plane projection of the ray passes within
// radius of its centre in front of the shooter, and the 3D point on the ray
// closest to the barrel lies within the [0,3] height band.
func FireAt(origin, direction mgl32.Vec3, barrels []Barrel, radius float32) ShotResult {
	miss := ShotResult{Index: -1}

	dirLen := direction.Len()
	flat := mgl32.Vec2{direction.X(), direction.Z()}
	flatLen := flat.Len()
	if dirLen < 1e-6 || flatLen < 1e-6 {
		return miss
	}
	dir := direction.Mul(1 / dirLen)
	flat = flat.Mul(1 / flatLen)
	origin2 := mgl32.Vec2{origin.X(), origin.Z()}

	for i := range barrels {
		b := &barrels[i]
		if !b.Visible {
			continue
		}
		barrel2 := mgl32.Vec2{b.Position.X(), b.Position.Z()}
		t := barrel2.Sub(origin2).Dot(flat)
		if t <= 0 {
			continue // behind the shooter
		}
		closest := origin2.Add(flat.Mul(t))
		if closest.Sub(barrel2).Len() >= radius {
			continue
		}
		t3 := b.Position.Sub(origin).Dot(dir)
		hit := origin.Add(dir.Mul(t3))
		if hit.Y() < hitBandLow || hit.Y() > hitBandHigh {
			continue
		}
		b.Visible = false
		return ShotResult{
			Hit:   true,
			Index: i,
			Point: hit,
		}
	}
	return miss
}

// barrelBlocks reports whether a visible barrel stands within the blocking
// radius of pos on the ground plane.
func barrelBlocks(pos mgl32.Vec3, barrels []Barrel) bool {
	for i := range barrels {
		if barrels[i].Visible && xzDistance(pos, barrels[i].Position) < barrelBlockRadius {
			return true
		}
	}
	return false
}

// CanOccupy reports whether the player may move to pos: the destination
// cell must not be a wall and no visible barrel may be in the way.
// Destinations outside the grid never collide.
func CanOccupy(pos mgl32.Vec3, grid *TileGrid, barrels []Barrel) bool {
	col, row := grid.WorldToCell(pos)
	if grid.ProbeMovement(col, row) == CellBlocked {
		return false
	}
	return !barrelBlocks(pos, barrels)
}
