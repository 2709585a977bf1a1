package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// PlayerScript produces the input for one tick of a headless run.
type PlayerScript func(tick int, s *Session) FrameInput

// TestSim is a headless harness around a Session. It mirrors the game loop
// without any renderer and supports scripted player input.
type TestSim struct {
	Session *Session
	SimLog  *SimLog
	Tick    int
	DT      float32

	level  LevelConfig
	rows   []string
	script PlayerScript
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptLevel   simOptionKind = iota // applied before the level is built
	simOptSession                      // applied after the session exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithLevelConfig starts from an existing level description.
func WithLevelConfig(cfg LevelConfig) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.level = cfg
		ts.rows = layoutRows(cfg.Layout)
	}}
}

// WithLayout replaces the level grid.
func WithLayout(rows ...string) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.rows = rows
	}}
}

// WithTuning replaces the Hunter tuning.
func WithTuning(t HunterTuning) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.level.Hunter = t
	}}
}

// WithPlayerSpawn sets the player's eye position at the start of each run.
func WithPlayerSpawn(x, y, z float32) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.level.PlayerSpawn = Point{X: x, Y: y, Z: z}
	}}
}

// WithHunterSpawn sets where the Hunter starts.
func WithHunterSpawn(x, z float32) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.level.HunterSpawn = Point{X: x, Z: z}
	}}
}

// WithFinishZ sets the Z coordinate that wins the run.
func WithFinishZ(z float32) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.level.FinishZ = z
	}}
}

// WithScript drives the player with a scripted input source.
func WithScript(p PlayerScript) SimOption {
	return SimOption{simOptSession, func(ts *TestSim) {
		ts.script = p
	}}
}

// WithTimestep sets the per-tick delta time.
func WithTimestep(dt float32) SimOption {
	return SimOption{simOptSession, func(ts *TestSim) {
		ts.DT = dt
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// NewTestSim builds the level from the level options, then the session,
// then applies the session options.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		DT:     1.0 / 60.0,
		level: LevelConfig{
			Name:        "test",
			TileSize:    DefaultTileSize,
			FinishZ:     1e9,
			PlayerSpawn: Point{X: 8, Y: playerEyeHeight, Z: 8},
			HunterSpawn: Point{X: 4, Z: 4},
			Hunter:      DefaultHunterTuning(),
		},
	}
	for _, o := range opts {
		if o.kind == simOptLevel {
			o.fn(ts)
		}
	}
	grid, err := NewTileGrid(ts.rows, ts.level.TileSize)
	if err != nil {
		return nil, fmt.Errorf("test sim: %w", err)
	}
	lvl := &Level{Config: ts.level, Grid: grid}
	ts.Session = NewSession(lvl, WithSimLog(ts.SimLog))
	for _, o := range opts {
		if o.kind == simOptSession {
			o.fn(ts)
		}
	}
	return ts, nil
}

// Step runs one tick with the scripted (or idle) input.
func (ts *TestSim) Step() {
	var in FrameInput
	if ts.script != nil {
		in = ts.script(ts.Tick, ts.Session)
	}
	ts.Session.Update(ts.DT, in)
	ts.Tick++
}

// RunTicks runs n ticks or until the session leaves StatePlaying.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n && ts.Session.State() == StatePlaying; i++ {
		ts.Step()
	}
}

// RunUntil steps until pred holds or maxTicks elapse. It reports whether
// pred was satisfied.
func (ts *TestSim) RunUntil(pred func(*Session) bool, maxTicks int) bool {
	for i := 0; i < maxTicks; i++ {
		if pred(ts.Session) {
			return true
		}
		ts.Step()
	}
	return pred(ts.Session)
}

// HunterPos returns the Hunter's current position.
func (ts *TestSim) HunterPos() mgl32.Vec3 { return ts.Session.hunter.Hunter.Position }

// Standard scripts used by tests and the headless report.

// ScriptIdle never touches the controls.
func ScriptIdle(int, *Session) FrameInput { return FrameInput{} }

// ScriptStrafe walks forward and flips strafe direction every period ticks.
func ScriptStrafe(period int) PlayerScript {
	if period <= 0 {
		period = 30
	}
	return func(tick int, _ *Session) FrameInput {
		dir := float32(1)
		if (tick/period)%2 == 1 {
			dir = -1
		}
		return FrameInput{MoveForward: 1, MoveRight: dir, Sprint: true}
	}
}

// ScriptSweepFire turns steadily and pulls the trigger every period ticks.
func ScriptSweepFire(period int) PlayerScript {
	if period <= 0 {
		period = 10
	}
	return func(tick int, _ *Session) FrameInput {
		return FrameInput{LookDX: 12, Fire: tick%period == 0}
	}
}
