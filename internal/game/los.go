package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	losFirstSample = 1.0 // skip the observer's own cell
	losSampleStep  = 2.0 // world units between samples
)

// HasLineOfSight marches sample points from start toward end and reports
// whether none of them land in a sight-blocking cell. Samples outside the
// grid never block.
//
// The 2-unit step can skip a wall thinner than the step; this is a known
// leniency of the sampled test. HasLineOfSightExact is the strict variant.
func HasLineOfSight(start, end mgl32.Vec3, grid *TileGrid) bool {
	delta := end.Sub(start)
	dist := delta.Len()
	if dist <= losFirstSample {
		return true
	}
	dir := delta.Mul(1 / dist)
	for i := float32(losFirstSample); i < dist; i += losSampleStep {
		col, row := grid.WorldToCell(start.Add(dir.Mul(i)))
		if grid.ProbeSight(col, row) == CellBlocked {
			return false
		}
	}
	return true
}

// HasLineOfSightExact tests the XZ segment from start to end against the
// footprint of every sight-blocking cell it could cross. Unlike the sampled
// test it cannot tunnel through thin walls.
func HasLineOfSightExact(start, end mgl32.Vec3, grid *TileGrid) bool {
	ax, az := float64(start.X()), float64(start.Z())
	bx, bz := float64(end.X()), float64(end.Z())

	c0, r0 := grid.WorldToCell(start)
	c1, r1 := grid.WorldToCell(end)
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	half := float64(grid.TileSize) / 2
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if grid.ProbeSight(col, row) != CellBlocked {
				continue
			}
			cx := float64(col) * float64(grid.TileSize)
			cz := float64(row) * float64(grid.TileSize)
			if rayIntersectsAABB(ax, az, bx, bz, cx-half, cz-half, cx+half, cz+half) {
				return false
			}
		}
	}
	return true
}

// rayAABBHitT returns the segment parameter t in [0,1] at which the segment
// (ox,oz)->(ex,ez) first touches the box. The bool is false on a miss.
func rayAABBHitT(ox, oz, ex, ez, minX, minZ, maxX, maxZ float64) (float64, bool) {
	tLo, tHi := 0.0, 1.0
	if !clipSlab(ox, ex-ox, minX, maxX, &tLo, &tHi) || !clipSlab(oz, ez-oz, minZ, maxZ, &tLo, &tHi) {
		return 0, false
	}
	return tLo, true
}

// clipSlab narrows [tLo,tHi] to the part of the segment lying between two
// parallel box faces on one axis. It returns false once nothing is left.
func clipSlab(origin, delta, faceLo, faceHi float64, tLo, tHi *float64) bool {
	if math.Abs(delta) < 1e-12 {
		return origin >= faceLo && origin <= faceHi
	}
	t1, t2 := (faceLo-origin)/delta, (faceHi-origin)/delta
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	*tLo = math.Max(*tLo, t1)
	*tHi = math.Min(*tHi, t2)
	return *tLo <= *tHi
}

// rayIntersectsAABB reports whether the segment (ox,oz)->(ex,ez) touches the box.
func rayIntersectsAABB(ox, oz, ex, ez, minX, minZ, maxX, maxZ float64) bool {
	_, hit := rayAABBHitT(ox, oz, ex, ez, minX, minZ, maxX, maxZ)
	return hit
}
