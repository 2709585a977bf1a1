package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// HunterTuning holds the per-level constants that distinguish the Hunter
// revisions. Zero values disable the optional behaviours noted per field.
type HunterTuning struct {
	BaseSpeed  float32 `yaml:"base_speed"`
	SpeedRamp  float32 `yaml:"speed_ramp"`  // speed gained per second of play
	SpeedCap   float32 `yaml:"speed_cap"`   // 0 = uncapped
	SightBonus float32 `yaml:"sight_bonus"` // added while the player is visible
	SightSpeed float32 `yaml:"sight_speed"` // if > 0, replaces the speed while visible

	JumpInner    float32 `yaml:"jump_inner"` // 0 = single upper threshold
	JumpOuter    float32 `yaml:"jump_outer"`
	JumpDuration float32 `yaml:"jump_duration"`
	JumpMargin   float32 `yaml:"jump_margin"` // overshoot past the player's trigger position
	JumpApex     float32 `yaml:"jump_apex"`

	EyeHeight   float32 `yaml:"eye_height"`
	TrailReach  float32 `yaml:"trail_reach"`  // XZ distance at which a breadcrumb counts as reached
	CatchRadius float32 `yaml:"catch_radius"` // XZ distance that ends the run
	ExactSight  bool    `yaml:"exact_sight"`  // use the strict segment-vs-cell sight test
}

// DefaultHunterTuning is the tuning of the last game revision.
func DefaultHunterTuning() HunterTuning {
	return HunterTuning{
		BaseSpeed:    50,
		SpeedRamp:    0.1,
		SpeedCap:     25,
		SightBonus:   3,
		JumpInner:    2,
		JumpOuter:    6,
		JumpDuration: 0.6,
		JumpMargin:   1,
		JumpApex:     1.5,
		EyeHeight:    1.5,
		TrailReach:   1,
		CatchRadius:  1,
	}
}

// withDefaults fills fields a level file left at zero with safe values.
func (t HunterTuning) withDefaults() HunterTuning {
	d := DefaultHunterTuning()
	if t.JumpDuration <= 0 {
		t.JumpDuration = d.JumpDuration
	}
	if t.EyeHeight == 0 {
		t.EyeHeight = d.EyeHeight
	}
	if t.TrailReach <= 0 {
		t.TrailReach = d.TrailReach
	}
	if t.CatchRadius <= 0 {
		t.CatchRadius = d.CatchRadius
	}
	return t
}

// inJumpBand reports whether an XZ distance to the player triggers a jump.
func (t HunterTuning) inJumpBand(d float32) bool {
	if t.JumpOuter <= 0 {
		return false
	}
	return d < t.JumpOuter && d > t.JumpInner
}

// HunterMode is the Hunter's movement state.
type HunterMode uint8

const (
	HunterSeeking HunterMode = iota
	HunterJumping
)

func (m HunterMode) String() string {
	switch m {
	case HunterSeeking:
		return "seeking"
	case HunterJumping:
		return "jumping"
	default:
		return "unknown"
	}
}

// Hunter is the enemy's full state. Only HunterController mutates it.
type Hunter struct {
	Position       mgl32.Vec3
	BaseSpeed      float32
	CurrentSpeed   float32
	HasLineOfSight bool

	IsJumping     bool
	JumpTimer     float32
	JumpDuration  float32
	JumpDirection mgl32.Vec3 // unit XZ vector, frozen at jump entry
	JumpSpeed     float32

	// Facing is the yaw (radians, atan2(x, z)) the renderer should use.
	Facing float32
	// Target is where the Hunter was steering on the last tick.
	Target mgl32.Vec3
}

// Mode returns the discriminant of the Hunter's state machine.
func (h *Hunter) Mode() HunterMode {
	if h.IsJumping {
		return HunterJumping
	}
	return HunterSeeking
}

// HunterTick reports what happened during one controller tick.
type HunterTick struct {
	Distance     float32 // XZ distance to the player before motion
	Caught       bool
	JumpStarted  bool
	Landed       bool
	SightGained  bool
	SightLost    bool
	FollowsTrail bool
}

// HunterController is the Hunter's pursuit state machine.
type HunterController struct {
	Hunter Hunter
	Trail  Trail

	tuning HunterTuning
	grid   *TileGrid
	spawn  mgl32.Vec3
}

// NewHunterController places a Hunter at spawn on grid.
func NewHunterController(grid *TileGrid, spawn mgl32.Vec3, tuning HunterTuning) *HunterController {
	hc := &HunterController{
		tuning: tuning.withDefaults(),
		grid:   grid,
		spawn:  spawn,
	}
	hc.Reset()
	return hc
}

// Tuning returns the controller's effective tuning.
func (hc *HunterController) Tuning() HunterTuning { return hc.tuning }

// Reset returns the Hunter to its spawn pose and forgets the trail.
func (hc *HunterController) Reset() {
	hc.Hunter = Hunter{
		Position:     mgl32.Vec3{hc.spawn.X(), 0, hc.spawn.Z()},
		BaseSpeed:    hc.tuning.BaseSpeed,
		CurrentSpeed: hc.tuning.BaseSpeed,
		JumpDuration: hc.tuning.JumpDuration,
	}
	hc.Trail.Clear()
}

// seesPlayer runs the configured sight test from the Hunter's eye.
func (hc *HunterController) seesPlayer(player mgl32.Vec3) bool {
	eye := hc.Hunter.Position.Add(mgl32.Vec3{0, hc.tuning.EyeHeight, 0})
	if hc.tuning.ExactSight {
		return HasLineOfSightExact(eye, player, hc.grid)
	}
	return HasLineOfSight(eye, player, hc.grid)
}

// rampedSpeed is the Hunter's chase speed after elapsed seconds of play.
func (hc *HunterController) rampedSpeed(elapsed float32) float32 {
	s := hc.tuning.BaseSpeed + elapsed*hc.tuning.SpeedRamp
	if hc.tuning.SpeedCap > 0 && s > hc.tuning.SpeedCap {
		s = hc.tuning.SpeedCap
	}
	return s
}

// Tick advances the Hunter by dt seconds toward a player standing at player.
// elapsed is the session's play time, used for the speed ramp.
//
// Order matters: sight and trail are refreshed before the target is chosen,
// the target before the jump trigger, and the trigger before motion.
func (hc *HunterController) Tick(player mgl32.Vec3, dt, elapsed float32) HunterTick {
	h := &hc.Hunter
	var out HunterTick

	h.CurrentSpeed = hc.rampedSpeed(elapsed)

	hadSight := h.HasLineOfSight
	h.HasLineOfSight = hc.seesPlayer(player)
	out.SightGained = h.HasLineOfSight && !hadSight
	out.SightLost = !h.HasLineOfSight && hadSight

	hc.Trail.Record(player, dt)

	if !h.IsJumping {
		h.Target = hc.selectTarget(player, &out)
	}

	out.Distance = xzDistance(h.Position, player)
	if !h.IsJumping && hc.tuning.inJumpBand(out.Distance) {
		out.JumpStarted = hc.startJump(player, out.Distance)
	}

	if h.IsJumping {
		out.Landed = hc.integrateJump(dt)
	} else {
		hc.integrateChase(dt)
	}

	if h.IsJumping {
		h.Facing = yawOf(h.JumpDirection)
	} else if dir, ok := xzDirection(h.Position, player); ok {
		h.Facing = yawOf(dir)
	}

	out.Caught = out.Distance < hc.tuning.CatchRadius
	return out
}

// selectTarget picks the point to steer toward and adjusts speed for sight.
func (hc *HunterController) selectTarget(player mgl32.Vec3, out *HunterTick) mgl32.Vec3 {
	h := &hc.Hunter
	if h.HasLineOfSight {
		if hc.tuning.SightSpeed > 0 {
			h.CurrentSpeed = hc.tuning.SightSpeed
		} else {
			h.CurrentSpeed += hc.tuning.SightBonus
		}
		hc.Trail.TrimToRecent(1)
		return player
	}
	if crumb, ok := hc.Trail.Front(); ok {
		out.FollowsTrail = true
		if xzDistance(h.Position, crumb) < hc.tuning.TrailReach {
			hc.Trail.PopFront()
		}
		return crumb
	}
	return player
}

// startJump commits the Hunter to a leap toward where the player is now.
// The direction is never re-aimed mid-flight; moving sideways dodges it.
func (hc *HunterController) startJump(player mgl32.Vec3, dist float32) bool {
	h := &hc.Hunter
	dir, ok := xzDirection(h.Position, player)
	if !ok {
		return false
	}
	h.IsJumping = true
	h.JumpTimer = 0
	h.JumpDirection = dir
	h.JumpSpeed = (dist + hc.tuning.JumpMargin) / h.JumpDuration
	return true
}

// integrateJump moves along the frozen direction and reports a landing.
func (hc *HunterController) integrateJump(dt float32) bool {
	h := &hc.Hunter
	h.JumpTimer += dt
	if h.JumpTimer > h.JumpDuration {
		h.JumpTimer = h.JumpDuration
	}
	step := h.JumpDirection.Mul(h.JumpSpeed * dt)
	h.Position = mgl32.Vec3{h.Position.X() + step.X(), 0, h.Position.Z() + step.Z()}

	t := h.JumpTimer / h.JumpDuration
	h.Position[1] = 4 * hc.tuning.JumpApex * t * (1 - t)

	if h.JumpTimer >= h.JumpDuration {
		h.IsJumping = false
		h.JumpTimer = 0
		h.Position[1] = 0
		return true
	}
	return false
}

// integrateChase steps toward the current target on the ground plane.
func (hc *HunterController) integrateChase(dt float32) {
	h := &hc.Hunter
	h.Position[1] = 0
	dir, ok := xzDirection(h.Position, h.Target)
	if !ok {
		return
	}
	h.Position = h.Position.Add(dir.Mul(h.CurrentSpeed * dt))
}

// xzDistance is the ground-plane distance between a and b.
func xzDistance(a, b mgl32.Vec3) float32 {
	return mgl32.Vec2{b.X() - a.X(), b.Z() - a.Z()}.Len()
}

// xzDirection returns the unit ground-plane vector from a to b.
// The bool is false when the points coincide on the ground plane.
func xzDirection(from, to mgl32.Vec3) (mgl32.Vec3, bool) {
	d := mgl32.Vec3{to.X() - from.X(), 0, to.Z() - from.Z()}
	l := d.Len()
	if l < 1e-6 {
		return mgl32.Vec3{}, false
	}
	return d.Mul(1 / l), true
}

// yawOf returns atan2(x, z) for a direction, the Hunter model's facing.
func yawOf(dir mgl32.Vec3) float32 {
	return float32(math.Atan2(float64(dir.X()), float64(dir.Z())))
}
