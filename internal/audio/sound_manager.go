package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Shoot-Or-Die/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Sound names one effect the manager can play.
type Sound uint8

const (
	SoundNone Sound = iota
	SoundShot
	SoundExplosion
	SoundJump
	SoundLand
	SoundDeath
	SoundVictory
)

// soundFor maps a session event to its effect.
func soundFor(kind game.EventKind) Sound {
	switch kind {
	case game.EventShot:
		return SoundShot
	case game.EventBarrelDestroyed:
		return SoundExplosion
	case game.EventJumpStarted:
		return SoundJump
	case game.EventLanded:
		return SoundLand
	case game.EventCaught:
		return SoundDeath
	case game.EventWon:
		return SoundVictory
	default:
		return SoundNone
	}
}

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
	logger      *log.Logger
}

// NewSoundManager creates a new sound manager
func NewSoundManager(logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default()
	}
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2, Volume: -1},
		logger: logger,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	sm.initialized = false
}

// SetMuted silences or restores the master volume.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.volume.Silent = muted
}

// HandleEvents plays the effect for every session event.
func (sm *SoundManager) HandleEvents(events []game.Event) {
	for _, e := range events {
		if s := soundFor(e.Kind); s != SoundNone {
			sm.Play(s)
		}
	}
}

// Play starts one effect. It is a no-op before Initialize.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	streamer, err := buildSound(s)
	if err != nil {
		sm.logger.Warn("failed to build sound", "sound", s, "error", err)
		return
	}
	if streamer == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// buildSound returns a finite streamer for s.
func buildSound(s Sound) (beep.Streamer, error) {
	switch s {
	case SoundShot:
		return beep.Take(sampleRate.N(80*time.Millisecond), NewSweepGenerator(sampleRate, 1400, 300, 80*time.Millisecond, 0.25)), nil
	case SoundExplosion:
		return beep.Take(sampleRate.N(450*time.Millisecond), NewNoiseGenerator(sampleRate, 450*time.Millisecond, 0.5, 1)), nil
	case SoundJump:
		return beep.Take(sampleRate.N(200*time.Millisecond), NewSweepGenerator(sampleRate, 90, 260, 200*time.Millisecond, 0.3)), nil
	case SoundLand:
		return beep.Take(sampleRate.N(120*time.Millisecond), NewSweepGenerator(sampleRate, 120, 40, 120*time.Millisecond, 0.4)), nil
	case SoundDeath:
		return beep.Take(sampleRate.N(700*time.Millisecond), NewSweepGenerator(sampleRate, 440, 55, 700*time.Millisecond, 0.35)), nil
	case SoundVictory:
		return victoryJingle()
	default:
		return nil, nil
	}
}

// victoryJingle is a rising major arpeggio.
func victoryJingle() (beep.Streamer, error) {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		tone, err := generators.SineTone(sampleRate, f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, &effects.Volume{
			Streamer: beep.Take(sampleRate.N(120*time.Millisecond), tone),
			Base:     2,
			Volume:   -2,
		})
	}
	return beep.Seq(parts...), nil
}

func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundExplosion:
		return "explosion"
	case SoundJump:
		return "jump"
	case SoundLand:
		return "land"
	case SoundDeath:
		return "death"
	case SoundVictory:
		return "victory"
	default:
		return "none"
	}
}
