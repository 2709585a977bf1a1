package client

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Shoot-Or-Die/internal/audio"
	"github.com/Garsondee/Shoot-Or-Die/internal/game"
	"github.com/Garsondee/Shoot-Or-Die/internal/scores"
)

const (
	screenWidth   = 1280
	screenHeight  = 720
	pixelsPerUnit = 6
	laserRange    = 60 // world units drawn for a shot that hits nothing
	noticeSeconds = 3
)

// Config is everything the client needs to run one level.
type Config struct {
	Level  *game.Level
	Player string
	// Store receives the run when the player wins. Optional.
	Store scores.Store
	// Sound plays event cues. Optional.
	Sound  *audio.SoundManager
	Logger *log.Logger
}

// Client is the top-down ebiten front end for a Session.
type Client struct {
	session *game.Session
	level   *game.Level
	player  string
	store   scores.Store
	sound   *audio.SoundManager
	logger  *log.Logger

	events    *EventLog
	particles *ParticleSystem
	showLog   bool
	muted     bool
	title     string

	// Laser endpoints of the last shot, drawn while the weapon is firing.
	laserFrom mgl32.Vec3
	laserTo   mgl32.Vec3

	submitted bool
	scoreMsgs chan string
	notice    string
	noticeTTL float32

	// Mouse-look state.
	prevCursorX int
	haveCursor  bool

	width  int
	height int
}

// New creates a client with a fresh session on cfg.Level.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	player := cfg.Player
	if player == "" {
		player = "anonymous"
	}
	c := &Client{
		level:     cfg.Level,
		player:    player,
		store:     cfg.Store,
		sound:     cfg.Sound,
		logger:    logger,
		events:    NewEventLog(),
		particles: NewParticleSystem(1),
		showLog:   true,
		scoreMsgs: make(chan string, 4),
		width:     screenWidth,
		height:    screenHeight,
	}
	c.session = game.NewSession(cfg.Level, game.WithLogger(logger))
	c.events.Add(0, "--", fmt.Sprintf("level %s rev %d", cfg.Level.Config.Name, cfg.Level.Config.Revision))
	return c
}

// Session exposes the running session.
func (c *Client) Session() *game.Session { return c.session }

func (c *Client) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	c.handleToggles()

	in := c.readInput()
	c.step(1/float32(ebiten.TPS()), in)

	if title := c.session.StatusLine(); title != c.title {
		c.title = title
		ebiten.SetWindowTitle(title)
	}
	return nil
}

// step advances the session and every presentation system by one frame.
func (c *Client) step(dt float32, in game.FrameInput) {
	c.session.Update(dt, in)
	events := c.session.DrainEvents()
	c.handleEvents(events)
	if c.sound != nil {
		c.sound.HandleEvents(events)
	}
	c.particles.Update(dt)

drain:
	for {
		select {
		case msg := <-c.scoreMsgs:
			c.setNotice(msg)
			c.events.Add(c.session.Tick(), "--", msg)
		default:
			break drain
		}
	}
	if c.noticeTTL > 0 {
		c.noticeTTL -= dt
		if c.noticeTTL <= 0 {
			c.notice = ""
		}
	}
}

func (c *Client) handleEvents(events []game.Event) {
	tick := c.session.Tick()
	for _, e := range events {
		c.events.AddEvent(tick, e)
		switch e.Kind {
		case game.EventShot:
			cam := c.session.Camera()
			c.laserFrom = cam.Position
			c.laserTo = cam.Position.Add(cam.Forward.Mul(laserRange))
		case game.EventBarrelDestroyed:
			c.laserTo = e.Pos
			c.particles.Burst(e.Pos)
		case game.EventWon:
			c.submitScore()
		case game.EventRestarted:
			c.particles.Clear()
			c.submitted = false
		}
	}
}

// submitScore sends a won run to the store once per run, off the game loop.
// The outcome comes back on scoreMsgs.
func (c *Client) submitScore() {
	if c.store == nil || c.submitted {
		return
	}
	c.submitted = true
	destroyed, total := c.session.BarrelCounts()
	rec := scores.NewRecord(c.level.Config.Name, c.player, float64(c.session.Elapsed()), destroyed, total)
	store := c.store
	go func() {
		saved, msg, err := scores.SubmitRun(store, rec)
		if err != nil {
			c.logger.Error("failed to submit score", "level", rec.Level, "error", err)
		} else {
			c.logger.Info("score submitted", "level", saved.Level, "seconds", saved.Seconds, "id", saved.ID)
		}
		c.report(msg)
	}()
}

func (c *Client) report(msg string) {
	select {
	case c.scoreMsgs <- msg:
	default:
	}
}

func (c *Client) setNotice(msg string) {
	c.notice = msg
	c.noticeTTL = noticeSeconds
}

// handleToggles processes the client-only keys (edge-triggered).
func (c *Client) handleToggles() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		c.showLog = !c.showLog
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		c.copySummary()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && c.sound != nil {
		c.muted = !c.muted
		c.sound.SetMuted(c.muted)
		if c.muted {
			c.setNotice("sound off")
		} else {
			c.setNotice("sound on")
		}
	}
}

func (c *Client) copySummary() {
	summary := c.session.Summary()
	if err := clipboard.WriteAll(summary); err != nil {
		c.logger.Warn("clipboard unavailable", "error", err)
		c.setNotice("clipboard unavailable")
		return
	}
	c.setNotice("copied: " + summary)
}

// playWidth is the playfield width left of the log panel.
func (c *Client) playWidth() int {
	if c.showLog {
		return c.width - logPanelWidth
	}
	return c.width
}

func (c *Client) Layout(_, _ int) (int, int) {
	return c.width, c.height
}
