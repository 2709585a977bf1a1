package client

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	particlesPerBurst = 100
	particleLife      = 1.0
	particleSpread    = 0.5 // spawn jitter radius
	particleSpeed     = 2.0
	particleFade      = 2.0 // alpha lost per second
)

// Particle is one spark of a barrel burst.
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Alpha    float32
	Life     float32
}

// ParticleSystem owns every live spark. Sparks fly in a straight line and
// are dropped when their life runs out.
type ParticleSystem struct {
	particles []Particle
	rng       *rand.Rand
}

// NewParticleSystem creates an empty system. The seed makes bursts
// reproducible in tests.
func NewParticleSystem(seed int64) *ParticleSystem {
	return &ParticleSystem{rng: rand.New(rand.NewSource(seed))}
}

// Burst spawns a full burst around pos. Every spark drifts upward.
func (ps *ParticleSystem) Burst(pos mgl32.Vec3) {
	for i := 0; i < particlesPerBurst; i++ {
		vel := ps.ballRand(particleSpeed)
		vel[1] = float32(math.Abs(float64(vel[1]))) + 1
		ps.particles = append(ps.particles, Particle{
			Position: pos.Add(ps.ballRand(particleSpread)),
			Velocity: vel,
			Alpha:    1,
			Life:     particleLife,
		})
	}
}

// Update ages and moves every spark, then compacts the slice in place.
func (ps *ParticleSystem) Update(dt float32) {
	live := ps.particles[:0]
	for _, p := range ps.particles {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		p.Alpha -= dt * particleFade
		if p.Alpha < 0 {
			p.Alpha = 0
		}
		live = append(live, p)
	}
	ps.particles = live
}

// Clear drops every spark.
func (ps *ParticleSystem) Clear() { ps.particles = ps.particles[:0] }

// Len returns the number of live sparks.
func (ps *ParticleSystem) Len() int { return len(ps.particles) }

// Particles exposes the live sparks for drawing.
func (ps *ParticleSystem) Particles() []Particle { return ps.particles }

// ballRand returns a point uniformly inside a sphere of radius r.
func (ps *ParticleSystem) ballRand(r float32) mgl32.Vec3 {
	for {
		v := mgl32.Vec3{
			ps.rng.Float32()*2 - 1,
			ps.rng.Float32()*2 - 1,
			ps.rng.Float32()*2 - 1,
		}
		if v.LenSqr() <= 1 {
			return v.Mul(r)
		}
	}
}
