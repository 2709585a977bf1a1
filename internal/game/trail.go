package game

import "github.com/go-gl/mathgl/mgl32"

const (
	trailSampleInterval = 0.1 // seconds between breadcrumb samples
	trailMinSpacing     = 1.0 // world units between consecutive breadcrumbs
)

// Trail is the Hunter's memory of where the player has been, oldest first.
// It is a fallback path when the player is out of sight.
type Trail struct {
	points []mgl32.Vec3
	timer  float32
}

// Record accumulates dt and, once per sample interval, drops a breadcrumb at
// pos unless the player has not moved far enough from the last one.
func (t *Trail) Record(pos mgl32.Vec3, dt float32) {
	t.timer += dt
	if t.timer <= trailSampleInterval {
		return
	}
	t.timer = 0
	if n := len(t.points); n == 0 || pos.Sub(t.points[n-1]).Len() > trailMinSpacing {
		t.points = append(t.points, pos)
	}
}

// Front returns the oldest breadcrumb.
func (t *Trail) Front() (mgl32.Vec3, bool) {
	if len(t.points) == 0 {
		return mgl32.Vec3{}, false
	}
	return t.points[0], true
}

// PopFront discards the oldest breadcrumb.
func (t *Trail) PopFront() {
	if len(t.points) == 0 {
		return
	}
	t.points = t.points[1:]
}

// TrimToRecent keeps only the newest keep breadcrumbs.
func (t *Trail) TrimToRecent(keep int) {
	if keep < 0 {
		keep = 0
	}
	if len(t.points) <= keep {
		return
	}
	kept := make([]mgl32.Vec3, keep)
	copy(kept, t.points[len(t.points)-keep:])
	t.points = kept
}

// Clear forgets every breadcrumb and resets the sample timer.
func (t *Trail) Clear() {
	t.points = t.points[:0]
	t.timer = 0
}

// Len returns the number of breadcrumbs held.
func (t *Trail) Len() int { return len(t.points) }

// Points returns a copy of the breadcrumbs, oldest first.
func (t *Trail) Points() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(t.points))
	copy(out, t.points)
	return out
}
