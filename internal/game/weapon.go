package game

import "github.com/go-gl/mathgl/mgl32"

const (
	laserDuration  = 0.05 // seconds the laser beam stays on screen
	recoilDuration = 0.2
	recoilKickZ    = 0.3 // backward kick, view units
	recoilKickX    = 4.0 // muzzle climb
	recoilDecay    = 5.0 // recoil timer drain rate
	recoilSpring   = 10.0
)

// Weapon tracks the cosmetic timers of the player's air gun. A new shot is
// only allowed once the previous laser has faded.
type Weapon struct {
	Firing     bool
	LaserTimer float32
	Recoil     float32
	RecoilZ    float32
	RecoilX    float32
}

// TryFire starts the laser and recoil. It returns false while the previous
// laser is still visible.
func (w *Weapon) TryFire() bool {
	if w.Firing {
		return false
	}
	w.Firing = true
	w.LaserTimer = 0
	w.Recoil = recoilDuration
	w.RecoilZ = recoilKickZ
	w.RecoilX = recoilKickX
	return true
}

// Update advances the laser timer and springs recoil back toward rest.
func (w *Weapon) Update(dt float32) {
	if w.Recoil > 0 {
		w.Recoil -= dt * recoilDecay
		if w.Recoil < 0 {
			w.Recoil = 0
		}
		k := mgl32.Clamp(dt*recoilSpring, 0, 1)
		w.RecoilZ += (0 - w.RecoilZ) * k
		w.RecoilX += (0 - w.RecoilX) * k
	} else {
		w.RecoilZ = 0
		w.RecoilX = 0
	}
	if w.Firing {
		w.LaserTimer += dt
		if w.LaserTimer >= laserDuration {
			w.Firing = false
			w.LaserTimer = 0
		}
	}
}

// Reset puts the weapon back at rest.
func (w *Weapon) Reset() { *w = Weapon{} }
