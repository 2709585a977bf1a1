package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

// maxTickDelta caps one update so a stalled frame cannot tunnel entities.
const maxTickDelta = 0.1

// SessionState is the run's terminal-state machine.
type SessionState uint8

const (
	StatePlaying SessionState = iota
	StateLost
	StateWon
)

func (s SessionState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateLost:
		return "lost"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// EventKind identifies a notification for the presentation layer.
type EventKind uint8

const (
	EventShot EventKind = iota
	EventBarrelDestroyed
	EventJumpStarted
	EventLanded
	EventCaught
	EventWon
	EventRestarted
)

func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventBarrelDestroyed:
		return "barrel_destroyed"
	case EventJumpStarted:
		return "jump_started"
	case EventLanded:
		return "landed"
	case EventCaught:
		return "caught"
	case EventWon:
		return "won"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Event is emitted by Session.Update for renderers, audio and HUDs.
type Event struct {
	Kind  EventKind
	Pos   mgl32.Vec3 // world position of the effect, if any
	Index int        // barrel index for EventBarrelDestroyed
}

// FrameInput is everything the input layer feeds into one update.
// Movement axes are in [-1,1]; look deltas are raw mouse-style units.
type FrameInput struct {
	MoveForward float32
	MoveRight   float32
	LookDX      float32
	LookDY      float32
	Sprint      bool
	Jump        bool
	Fire        bool
	Restart     bool
}

// Session is the whole mutable game state for one level. It is owned by a
// single game loop and is not safe for concurrent use.
type Session struct {
	level   *Level
	grid    *TileGrid
	player  Player
	weapon  Weapon
	hunter  *HunterController
	barrels []Barrel

	state     SessionState
	elapsed   float32
	tick      int
	destroyed int

	events []Event
	simLog *SimLog
	logger *log.Logger
}

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithLogger routes session transitions to a process logger.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithSimLog replaces the session's event log.
func WithSimLog(sl *SimLog) SessionOption {
	return func(s *Session) { s.simLog = sl }
}

// NewSession starts a run on level.
func NewSession(level *Level, opts ...SessionOption) *Session {
	cfg := level.Config
	s := &Session{
		level:  level,
		grid:   level.Grid,
		hunter: NewHunterController(level.Grid, cfg.HunterSpawn.Vec(), cfg.Hunter),
		simLog: NewSimLog(false),
	}
	for _, o := range opts {
		o(s)
	}
	s.reset()
	return s
}

// reset re-initialises every piece of per-run state.
func (s *Session) reset() {
	s.player = NewPlayer(s.level.Config.PlayerSpawn.Vec())
	s.weapon.Reset()
	s.hunter.Reset()
	s.barrels = NewBarrels(s.grid.BarrelCells())
	s.state = StatePlaying
	s.elapsed = 0
	s.destroyed = 0
}

// Restart begins a fresh run on the same level from any state.
func (s *Session) Restart() {
	s.reset()
	s.simLog.Add(s.tick, "--", "session", "restart", s.level.Config.Name, 0)
	s.emit(Event{Kind: EventRestarted})
	if s.logger != nil {
		s.logger.Info("session restarted", "level", s.level.Config.Name)
	}
}

// Update advances the session by one frame. dt is clamped to maxTickDelta.
// Outside StatePlaying only the restart input is honoured.
func (s *Session) Update(dt float32, in FrameInput) {
	if dt > maxTickDelta {
		dt = maxTickDelta
	}
	if dt < 0 {
		dt = 0
	}
	s.tick++
	s.weapon.Update(dt)

	if s.state != StatePlaying {
		if in.Restart {
			s.Restart()
		}
		return
	}
	s.elapsed += dt

	s.player.Look(in.LookDX, in.LookDY)
	s.player.Walk(in.MoveForward, in.MoveRight, in.Sprint, dt, s.grid, s.barrels)
	if in.Jump {
		s.player.Jump()
	}
	if in.Fire {
		s.fire()
	}

	s.tickHunter(dt)
	s.player.ApplyGravity(dt)

	if s.state == StatePlaying && s.player.Position.Z() >= s.level.Config.FinishZ {
		s.state = StateWon
		s.simLog.Add(s.tick, "player", "session", "won", fmt.Sprintf("time=%.2fs", s.elapsed), float64(s.elapsed))
		s.emit(Event{Kind: EventWon, Pos: s.player.Position})
		if s.logger != nil {
			s.logger.Info("victory", "level", s.level.Config.Name, "time", s.elapsed, "barrels", s.destroyed)
		}
	}
}

// tickHunter runs the pursuit controller and records its transitions.
func (s *Session) tickHunter(dt float32) {
	ht := s.hunter.Tick(s.player.Position, dt, s.elapsed)
	h := &s.hunter.Hunter

	if ht.SightGained {
		s.simLog.Add(s.tick, "hunter", "sight", "los_acquired", "", float64(ht.Distance))
	}
	if ht.SightLost {
		s.simLog.Add(s.tick, "hunter", "sight", "los_lost", fmt.Sprintf("trail=%d", s.hunter.Trail.Len()), float64(ht.Distance))
	}
	if ht.JumpStarted {
		s.simLog.Add(s.tick, "hunter", "jump", "jump_start", fmt.Sprintf("d=%.1f", ht.Distance), float64(ht.Distance))
		s.emit(Event{Kind: EventJumpStarted, Pos: h.Position})
	}
	if ht.Landed {
		s.simLog.Add(s.tick, "hunter", "jump", "jump_land", "", 0)
		s.emit(Event{Kind: EventLanded, Pos: h.Position})
	}
	s.simLog.AddVerbose(s.tick, "hunter", "move", "pose",
		fmt.Sprintf("pos=(%.1f,%.1f,%.1f) speed=%.1f mode=%s", h.Position.X(), h.Position.Y(), h.Position.Z(), h.CurrentSpeed, h.Mode()),
		float64(h.CurrentSpeed))

	if ht.Caught {
		s.state = StateLost
		s.simLog.Add(s.tick, "hunter", "session", "caught", fmt.Sprintf("time=%.2fs", s.elapsed), float64(ht.Distance))
		s.emit(Event{Kind: EventCaught, Pos: s.player.Position})
		if s.logger != nil {
			s.logger.Info("player caught", "level", s.level.Config.Name, "time", s.elapsed)
		}
	}
}

// fire resolves one trigger pull along the camera's forward vector.
func (s *Session) fire() {
	if !s.weapon.TryFire() {
		return
	}
	cam := s.player.Camera()
	s.emit(Event{Kind: EventShot, Pos: cam.Position})
	shot := FireAt(cam.Position, cam.Forward, s.barrels, barrelRadius)
	if !shot.Hit {
		s.simLog.AddVerbose(s.tick, "player", "combat", "miss", "", 0)
		return
	}
	s.destroyed++
	s.simLog.Add(s.tick, "player", "combat", "barrel_hit", fmt.Sprintf("index=%d", shot.Index), float64(shot.Index))
	s.emit(Event{Kind: EventBarrelDestroyed, Pos: shot.Point, Index: shot.Index})
	if s.logger != nil {
		s.logger.Debug("barrel destroyed", "index", shot.Index, "destroyed", s.destroyed, "total", len(s.barrels))
	}
}

func (s *Session) emit(e Event) { s.events = append(s.events, e) }

// DrainEvents returns the events emitted since the last call.
func (s *Session) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}

// State returns the session's terminal-state machine value.
func (s *Session) State() SessionState { return s.state }

// Elapsed returns seconds of play in the current run.
func (s *Session) Elapsed() float32 { return s.elapsed }

// Tick returns the number of updates processed.
func (s *Session) Tick() int { return s.tick }

// Level returns the level the session runs on.
func (s *Session) Level() *Level { return s.level }

// Grid returns the level grid.
func (s *Session) Grid() *TileGrid { return s.grid }

// Camera returns the player's current view pose.
func (s *Session) Camera() Camera { return s.player.Camera() }

// Player returns a copy of the player state.
func (s *Session) Player() Player { return s.player }

// Weapon returns a copy of the weapon timers.
func (s *Session) Weapon() Weapon { return s.weapon }

// Hunter returns a copy of the Hunter state.
func (s *Session) Hunter() Hunter { return s.hunter.Hunter }

// Trail returns the Hunter's breadcrumbs, oldest first.
func (s *Session) Trail() []mgl32.Vec3 { return s.hunter.Trail.Points() }

// Barrels returns the barrel records. Callers must not modify them.
func (s *Session) Barrels() []Barrel { return s.barrels }

// BarrelCounts returns how many barrels were destroyed and how many exist.
func (s *Session) BarrelCounts() (destroyed, total int) { return s.destroyed, len(s.barrels) }

// SimLog returns the session's event log.
func (s *Session) SimLog() *SimLog { return s.simLog }

// SetPlayerPose teleports the player. Used by scripted scenarios.
func (s *Session) SetPlayerPose(pos mgl32.Vec3, yaw, pitch float32) {
	s.player.Position = pos
	s.player.Yaw = yaw
	s.player.Pitch = pitch
}

// StatusLine is the title/HUD text for the current state.
func (s *Session) StatusLine() string {
	switch s.state {
	case StateLost:
		return "YOU DIED! Press 'R' to Restart"
	case StateWon:
		return fmt.Sprintf("VICTORY! Time: %.2fs | Press 'R'", s.elapsed)
	default:
		return s.level.Config.Title
	}
}

// Summary is a one-line description of the run for sharing.
func (s *Session) Summary() string {
	return fmt.Sprintf("%s: %s in %.2fs, barrels %d/%d", s.level.Config.Name, s.state, s.elapsed, s.destroyed, len(s.barrels))
}
