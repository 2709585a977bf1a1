package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	playerWalkSpeed   = 20.0 // world units per second
	playerSprintMul   = 1.5
	playerEyeHeight   = 1.8
	playerGravity     = 40.0
	playerJumpImpulse = 15.0
	lookSensitivity   = 0.1 // degrees per input unit
	pitchLimit        = 89.0
	defaultYaw        = -90.0 // looking down -Z
)

// Camera is the pose the rendering layer draws from.
type Camera struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
}

// Player is the first-person avatar. Position is the eye, not the feet.
type Player struct {
	Position  mgl32.Vec3
	Yaw       float32 // degrees
	Pitch     float32 // degrees
	VelocityY float32
	Grounded  bool
}

// NewPlayer places a player at spawn with the default heading.
func NewPlayer(spawn mgl32.Vec3) Player {
	return Player{Position: spawn, Yaw: defaultYaw}
}

// Look turns the view by raw input deltas. Pitch is clamped so the view
// never flips over the vertical.
func (p *Player) Look(dx, dy float32) {
	p.Yaw += dx * lookSensitivity
	p.Pitch += dy * lookSensitivity
	if p.Pitch > pitchLimit {
		p.Pitch = pitchLimit
	}
	if p.Pitch < -pitchLimit {
		p.Pitch = -pitchLimit
	}
}

// Camera derives the view basis from yaw and pitch.
func (p *Player) Camera() Camera {
	yaw := float64(mgl32.DegToRad(p.Yaw))
	pitch := float64(mgl32.DegToRad(p.Pitch))
	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	right := front.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	up := right.Cross(front).Normalize()
	return Camera{Position: p.Position, Forward: front, Right: right, Up: up}
}

// Walk applies one tick of WASD-style movement on the ground plane.
// forward and strafe are in [-1,1]. The whole step is rejected if the
// destination is blocked.
func (p *Player) Walk(forward, strafe float32, sprint bool, dt float32, grid *TileGrid, barrels []Barrel) {
	if forward == 0 && strafe == 0 {
		return
	}
	cam := p.Camera()
	front, okF := xzDirection(mgl32.Vec3{}, cam.Forward)
	right, okR := xzDirection(mgl32.Vec3{}, cam.Right)
	if !okF || !okR {
		return
	}
	speed := float32(playerWalkSpeed) * dt
	if sprint {
		speed *= playerSprintMul
	}
	step := front.Mul(forward * speed).Add(right.Mul(strafe * speed))
	next := mgl32.Vec3{p.Position.X() + step.X(), p.Position.Y(), p.Position.Z() + step.Z()}
	if !CanOccupy(next, grid, barrels) {
		return
	}
	p.Position = next
}

// Jump starts a hop when standing on the floor.
func (p *Player) Jump() {
	if !p.Grounded {
		return
	}
	p.VelocityY = playerJumpImpulse
	p.Grounded = false
}

// ApplyGravity integrates vertical motion and lands the eye at floor+height.
func (p *Player) ApplyGravity(dt float32) {
	p.VelocityY -= playerGravity * dt
	p.Position[1] += p.VelocityY * dt
	if p.Position[1] < playerEyeHeight {
		p.Position[1] = playerEyeHeight
		p.VelocityY = 0
		p.Grounded = true
	}
}
