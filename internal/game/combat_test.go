package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFireAt_LowestIndexWins(t *testing.T) {
	// Barrel 1 is nearer along the ray, but barrel 0 is tested first.
	barrels := NewBarrels([]mgl32.Vec3{{10, 0, 0}, {5, 0, 0}})
	shot := FireAt(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, barrels, barrelRadius)
	if !shot.Hit || shot.Index != 0 {
		t.Fatalf("expected barrel 0 hit, got %+v", shot)
	}
	if barrels[0].Visible || !barrels[1].Visible {
		t.Fatal("only barrel 0 should be destroyed")
	}
	if shot.Point != (mgl32.Vec3{10, 1, 0}) {
		t.Fatalf("expected hit point (10,1,0), got %v", shot.Point)
	}

	again := FireAt(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, barrels, barrelRadius)
	if !again.Hit || again.Index != 1 {
		t.Fatalf("second shot should hit the remaining barrel, got %+v", again)
	}
}

func TestFireAt_HeightGate(t *testing.T) {
	barrels := NewBarrels([]mgl32.Vec3{{10, 0, 0}})
	shot := FireAt(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{1, 0, 0}, barrels, barrelRadius)
	if shot.Hit || shot.Index != -1 {
		t.Fatalf("a hit at y=5 is above the band and must miss, got %+v", shot)
	}
	if !barrels[0].Visible {
		t.Fatal("a missed barrel must stay visible")
	}
}

func TestFireAt_BehindShooter(t *testing.T) {
	barrels := NewBarrels([]mgl32.Vec3{{-10, 0, 0}})
	if shot := FireAt(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, barrels, barrelRadius); shot.Hit {
		t.Fatal("a barrel behind the shooter must not be hit")
	}
}

func TestFireAt_RadiusBoundary(t *testing.T) {
	wide := NewBarrels([]mgl32.Vec3{{10, 0, 0.9}})
	if FireAt(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, wide, barrelRadius).Hit {
		t.Fatal("0.9 off the ray is outside the 0.8 radius")
	}
	inside := NewBarrels([]mgl32.Vec3{{10, 0, 0.5}})
	if !FireAt(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, inside, barrelRadius).Hit {
		t.Fatal("0.5 off the ray is inside the 0.8 radius")
	}
}

func TestFireAt_SkipsDestroyed(t *testing.T) {
	barrels := NewBarrels([]mgl32.Vec3{{10, 0, 0}})
	barrels[0].Visible = false
	if FireAt(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, barrels, barrelRadius).Hit {
		t.Fatal("an invisible barrel cannot be hit again")
	}
}

func TestFireAt_DegenerateDirections(t *testing.T) {
	barrels := NewBarrels([]mgl32.Vec3{{0, 0, 0}})
	if FireAt(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, barrels, barrelRadius).Hit {
		t.Fatal("a zero direction must miss")
	}
	if FireAt(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, -1, 0}, barrels, barrelRadius).Hit {
		t.Fatal("a straight-down shot has no ground-plane direction and must miss")
	}
}

func TestFireAt_DownwardShotHitsInBand(t *testing.T) {
	barrels := NewBarrels([]mgl32.Vec3{{10, 0, 0}})
	dir := mgl32.Vec3{10, -1.3, 0}.Normalize()
	shot := FireAt(mgl32.Vec3{0, 1.8, 0}, dir, barrels, barrelRadius)
	if !shot.Hit {
		t.Fatal("a shot aimed low at the barrel should hit")
	}
	if shot.Point.Y() < hitBandLow || shot.Point.Y() > hitBandHigh {
		t.Fatalf("hit point %v outside the height band", shot.Point)
	}
}

func TestCanOccupy(t *testing.T) {
	g := mustGrid(t, 4,
		"...",
		".#D",
		"...",
	)
	barrels := NewBarrels([]mgl32.Vec3{{0, 0, 8}})

	cases := []struct {
		name string
		pos  mgl32.Vec3
		want bool
	}{
		{"floor", mgl32.Vec3{0, 1.8, 0}, true},
		{"wall", mgl32.Vec3{4, 1.8, 4}, false},
		{"door", mgl32.Vec3{8, 1.8, 4}, true},
		{"out of bounds", mgl32.Vec3{-100, 1.8, -100}, true},
		{"next to barrel", mgl32.Vec3{0.5, 1.8, 8}, false},
		{"clear of barrel", mgl32.Vec3{1.5, 1.8, 8}, true},
	}
	for _, tc := range cases {
		if got := CanOccupy(tc.pos, g, barrels); got != tc.want {
			t.Errorf("%s: CanOccupy(%v) = %v, want %v", tc.name, tc.pos, got, tc.want)
		}
	}

	barrels[0].Visible = false
	if !CanOccupy(mgl32.Vec3{0.5, 1.8, 8}, g, barrels) {
		t.Error("a destroyed barrel should not block")
	}
}
