package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// SweepGenerator glides a sine tone from one frequency to another while
// fading out linearly. Used for the shot, jump, land and death cues.
type SweepGenerator struct {
	sr        beep.SampleRate
	from, to  float64
	amplitude float64
	length    int
	pos       int
	phase     float64
}

// NewSweepGenerator creates a sweep lasting d.
func NewSweepGenerator(sr beep.SampleRate, from, to float64, d time.Duration, amplitude float64) *SweepGenerator {
	n := sr.N(d)
	if n < 1 {
		n = 1
	}
	return &SweepGenerator{sr: sr, from: from, to: to, amplitude: amplitude, length: n}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := math.Min(float64(g.pos)/float64(g.length), 1)
		freq := g.from + (g.to-g.from)*p
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}
		sample := g.amplitude * (1 - p) * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// NoiseGenerator produces low-passed white noise with an exponential decay,
// the barrel burst.
type NoiseGenerator struct {
	sr        beep.SampleRate
	amplitude float64
	decay     float64 // per-sample multiplier
	env       float64
	last      float64
	rng       *rand.Rand
}

// NewNoiseGenerator creates a burst that falls to ~1% over d. The seed makes
// the burst reproducible.
func NewNoiseGenerator(sr beep.SampleRate, d time.Duration, amplitude float64, seed int64) *NoiseGenerator {
	n := float64(sr.N(d))
	if n < 1 {
		n = 1
	}
	return &NoiseGenerator{
		sr:        sr,
		amplitude: amplitude,
		decay:     math.Pow(0.01, 1/n),
		env:       1,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (g *NoiseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		white := g.rng.Float64()*2 - 1
		// one-pole low-pass for a duller boom
		g.last += 0.2 * (white - g.last)
		sample := g.amplitude * g.env * g.last
		g.env *= g.decay

		samples[i][0] = sample
		samples[i][1] = sample
	}
	return len(samples), true
}

func (g *NoiseGenerator) Err() error {
	return nil
}
