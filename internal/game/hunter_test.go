package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// flatTuning is a Hunter with a constant speed and no sight adjustments.
func flatTuning(speed float32) HunterTuning {
	t := DefaultHunterTuning()
	t.BaseSpeed = speed
	t.SpeedRamp = 0
	t.SpeedCap = 0
	t.SightBonus = 0
	return t
}

func TestHunter_ScenarioDefaultsToPlayer(t *testing.T) {
	g := mustGrid(t, 4,
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)
	hc := NewHunterController(g, mgl32.Vec3{4, 0, 4}, flatTuning(10))
	player := mgl32.Vec3{16, 0, 16}

	tick := hc.Tick(player, 0.1, 0)

	h := hc.Hunter
	if h.HasLineOfSight {
		t.Fatal("the corner wall should hide the player")
	}
	if tick.FollowsTrail || hc.Trail.Len() != 0 {
		t.Fatal("expected an empty trail after a single 0.1s tick")
	}
	if h.Target != player {
		t.Fatalf("target should default to the player, got %v", h.Target)
	}
	moved := xzDistance(mgl32.Vec3{4, 0, 4}, h.Position)
	if !near(moved, 10*0.1, 1e-4) {
		t.Fatalf("expected to move baseSpeed*0.1 = 1.0, moved %.5f", moved)
	}
	if !near(h.Position.X(), h.Position.Z(), 1e-5) || h.Position.X() <= 4 {
		t.Fatalf("expected a diagonal step toward (16,0,16), got %v", h.Position)
	}
}

func TestHunter_JumpCommitment(t *testing.T) {
	g := openGrid(t, 12, 12)
	hc := NewHunterController(g, mgl32.Vec3{20, 0, 20}, DefaultHunterTuning())
	player := mgl32.Vec3{24, playerEyeHeight, 20}

	first := hc.Tick(player, 0.05, 0)
	if !first.JumpStarted || !hc.Hunter.IsJumping {
		t.Fatalf("expected a jump at XZ distance 4, got %+v", first)
	}
	dir := hc.Hunter.JumpDirection
	if dir != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("expected jump direction +X, got %v", dir)
	}
	if hc.Hunter.Position.Y() <= 0 {
		t.Fatal("expected the Hunter to leave the ground")
	}

	prevTimer := hc.Hunter.JumpTimer
	landed := false
	for i := 0; i < 40 && !landed; i++ {
		// Sidestep every tick; the jump must not re-aim.
		player = player.Add(mgl32.Vec3{0, 0, 1})
		tick := hc.Tick(player, 0.05, float32(i)*0.05)
		if tick.Landed {
			landed = true
			break
		}
		h := hc.Hunter
		if h.JumpDirection != dir {
			t.Fatalf("tick %d: jump direction changed from %v to %v", i, dir, h.JumpDirection)
		}
		if h.JumpTimer <= prevTimer {
			t.Fatalf("tick %d: jump timer did not increase (%v -> %v)", i, prevTimer, h.JumpTimer)
		}
		if h.JumpTimer > h.JumpDuration {
			t.Fatalf("tick %d: jump timer %v exceeds duration %v", i, h.JumpTimer, h.JumpDuration)
		}
		prevTimer = h.JumpTimer
	}
	if !landed {
		t.Fatal("expected the jump to land")
	}
	h := hc.Hunter
	if h.IsJumping || h.Mode() != HunterSeeking {
		t.Fatal("expected to be seeking after landing")
	}
	if h.Position.Y() != 0 {
		t.Fatalf("expected Y reset to 0 on landing, got %v", h.Position.Y())
	}
	if h.Position.Z() != 20 {
		t.Fatalf("jump should stay on its committed line z=20, got %v", h.Position.Z())
	}
}

func TestHunter_JumpOvershootsTriggerPosition(t *testing.T) {
	g := openGrid(t, 12, 12)
	hc := NewHunterController(g, mgl32.Vec3{20, 0, 20}, DefaultHunterTuning())
	player := mgl32.Vec3{24, playerEyeHeight, 20}
	for i := 0; i < 40; i++ {
		if hc.Tick(player, 0.02, 0).Landed {
			break
		}
	}
	// distance 4 plus the 1-unit margin, give or take the final tick
	if !near(hc.Hunter.Position.X(), 25, 0.2) {
		t.Fatalf("expected to land near x=25, got %v", hc.Hunter.Position.X())
	}
}

func TestHunter_JumpBand(t *testing.T) {
	def := DefaultHunterTuning()
	cases := []struct {
		d    float32
		want bool
	}{
		{1, false},
		{2, false},
		{4, true},
		{5.99, true},
		{6, false},
		{10, false},
	}
	for _, tc := range cases {
		if got := def.inJumpBand(tc.d); got != tc.want {
			t.Errorf("band(2,6) d=%v: got %v, want %v", tc.d, got, tc.want)
		}
	}

	single := HunterTuning{JumpOuter: 5}
	if !single.inJumpBand(0.5) || single.inJumpBand(5) {
		t.Error("single threshold band should accept any distance under 5")
	}
	if (HunterTuning{}).inJumpBand(1) {
		t.Error("a zero outer bound should disable jumping")
	}
}

func TestHunter_RampedSpeed(t *testing.T) {
	hc := NewHunterController(openGrid(t, 2, 2), mgl32.Vec3{}, DefaultHunterTuning())
	if got := hc.rampedSpeed(0); got != 25 {
		t.Fatalf("default tuning should be capped at 25, got %v", got)
	}
	tu := flatTuning(10)
	tu.SpeedRamp = 0.1
	hc = NewHunterController(openGrid(t, 2, 2), mgl32.Vec3{}, tu)
	if got := hc.rampedSpeed(50); !near(got, 15, 1e-4) {
		t.Fatalf("expected 10 + 50*0.1 = 15, got %v", got)
	}
}

func TestHunter_SightBonus(t *testing.T) {
	g := openGrid(t, 12, 12)
	tu := flatTuning(10)
	tu.SightBonus = 3
	hc := NewHunterController(g, mgl32.Vec3{4, 0, 4}, tu)
	player := mgl32.Vec3{40, playerEyeHeight, 40}

	tick := hc.Tick(player, 0.01, 0)
	if !hc.Hunter.HasLineOfSight || !tick.SightGained {
		t.Fatal("expected sight to be acquired on an open grid")
	}
	if hc.Hunter.CurrentSpeed != 13 {
		t.Fatalf("expected 10+3 while visible, got %v", hc.Hunter.CurrentSpeed)
	}
	if tick = hc.Tick(player, 0.01, 0); tick.SightGained {
		t.Fatal("SightGained should only fire on the transition")
	}
}

func TestHunter_SightSpeedOverride(t *testing.T) {
	g := openGrid(t, 12, 12)
	tu := flatTuning(8)
	tu.SightSpeed = 14
	hc := NewHunterController(g, mgl32.Vec3{4, 0, 4}, tu)
	hc.Tick(mgl32.Vec3{40, playerEyeHeight, 40}, 0.01, 0)
	if hc.Hunter.CurrentSpeed != 14 {
		t.Fatalf("expected sight speed 14, got %v", hc.Hunter.CurrentSpeed)
	}
}

func TestHunter_SightTrimsTrail(t *testing.T) {
	g := openGrid(t, 12, 12)
	hc := NewHunterController(g, mgl32.Vec3{4, 0, 4}, flatTuning(10))
	hc.Trail.points = []mgl32.Vec3{{8, 0, 8}, {12, 0, 12}, {16, 0, 16}}
	hc.Tick(mgl32.Vec3{40, playerEyeHeight, 40}, 0.01, 0)
	if hc.Trail.Len() != 1 {
		t.Fatalf("expected the trail trimmed to 1 while visible, got %d", hc.Trail.Len())
	}
}

// wallSplit has a wall column at col 3 separating the west and east halves.
func wallSplit(t *testing.T) *TileGrid {
	return mustGrid(t, 4,
		".......",
		"...#...",
		"...#...",
		"...#...",
		"...#...",
		"...#...",
		".......",
	)
}

func TestHunter_FollowsTrailWithoutSight(t *testing.T) {
	hc := NewHunterController(wallSplit(t), mgl32.Vec3{4, 0, 12}, flatTuning(10))
	crumb := mgl32.Vec3{4, playerEyeHeight, 20}
	hc.Trail.points = []mgl32.Vec3{crumb, {12, playerEyeHeight, 26}}

	tick := hc.Tick(mgl32.Vec3{20, playerEyeHeight, 12}, 0.05, 0)
	if hc.Hunter.HasLineOfSight {
		t.Fatal("the wall column should hide the player")
	}
	if !tick.FollowsTrail || hc.Hunter.Target != crumb {
		t.Fatalf("expected to steer to the oldest breadcrumb, got %v", hc.Hunter.Target)
	}
	if hc.Trail.Len() != 2 {
		t.Fatal("a distant breadcrumb should not be consumed")
	}
	p := hc.Hunter.Position
	if p.X() != 4 || !near(p.Z(), 12.5, 1e-5) {
		t.Fatalf("expected to step 0.5 toward +Z, got %v", p)
	}
}

func TestHunter_ConsumesReachedBreadcrumb(t *testing.T) {
	hc := NewHunterController(wallSplit(t), mgl32.Vec3{4, 0, 12}, flatTuning(10))
	hc.Trail.points = []mgl32.Vec3{{4.5, playerEyeHeight, 12}, {4, playerEyeHeight, 20}}

	hc.Tick(mgl32.Vec3{20, playerEyeHeight, 12}, 0.05, 0)
	if hc.Trail.Len() != 1 {
		t.Fatalf("expected the reached breadcrumb popped, %d left", hc.Trail.Len())
	}
	if next, _ := hc.Trail.Front(); next.Z() != 20 {
		t.Fatalf("expected the next breadcrumb at the front, got %v", next)
	}
}

func TestHunter_CatchRadius(t *testing.T) {
	g := openGrid(t, 6, 6)
	hc := NewHunterController(g, mgl32.Vec3{8, 0, 8}, flatTuning(5))
	if hc.Tick(mgl32.Vec3{8, playerEyeHeight, 9.5}, 0.01, 0).Caught {
		t.Fatal("1.5 units away should not be a catch")
	}
	hc.Reset()
	if !hc.Tick(mgl32.Vec3{8, playerEyeHeight, 8.5}, 0.01, 0).Caught {
		t.Fatal("0.5 units away should be a catch")
	}
}

func TestHunter_FacingTracksPlayer(t *testing.T) {
	g := openGrid(t, 12, 12)
	hc := NewHunterController(g, mgl32.Vec3{20, 0, 20}, flatTuning(1))
	hc.Tick(mgl32.Vec3{20, playerEyeHeight, 40}, 0.01, 0)
	if !near(hc.Hunter.Facing, 0, 1e-5) {
		t.Fatalf("facing +Z should be yaw 0, got %v", hc.Hunter.Facing)
	}
	hc.Reset()
	hc.Tick(mgl32.Vec3{40, playerEyeHeight, 20}, 0.01, 0)
	if !near(hc.Hunter.Facing, math.Pi/2, 1e-5) {
		t.Fatalf("facing +X should be yaw pi/2, got %v", hc.Hunter.Facing)
	}
}

func TestHunter_Reset(t *testing.T) {
	g := openGrid(t, 12, 12)
	spawn := mgl32.Vec3{20, 3, 20}
	hc := NewHunterController(g, spawn, DefaultHunterTuning())
	hc.Tick(mgl32.Vec3{24, playerEyeHeight, 20}, 0.05, 0)
	hc.Trail.points = append(hc.Trail.points, mgl32.Vec3{1, 1, 1})

	hc.Reset()
	h := hc.Hunter
	if h.Position != (mgl32.Vec3{20, 0, 20}) {
		t.Fatalf("expected spawn on the ground, got %v", h.Position)
	}
	if h.IsJumping || h.JumpTimer != 0 || hc.Trail.Len() != 0 {
		t.Fatal("expected jump state and trail cleared")
	}
}

func TestHunter_TuningDefaultsFilled(t *testing.T) {
	hc := NewHunterController(openGrid(t, 2, 2), mgl32.Vec3{}, HunterTuning{BaseSpeed: 5})
	tu := hc.Tuning()
	if tu.JumpDuration <= 0 || tu.CatchRadius <= 0 || tu.TrailReach <= 0 || tu.EyeHeight == 0 {
		t.Fatalf("expected zero fields filled from defaults, got %+v", tu)
	}
}
