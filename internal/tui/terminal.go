// Package tui is a terminal front end for a Session, drawn with tcell.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Shoot-Or-Die/internal/audio"
	"github.com/Garsondee/Shoot-Or-Die/internal/game"
	"github.com/Garsondee/Shoot-Or-Die/internal/scores"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	noticeFor     = 3 * time.Second
)

// Config is everything the terminal client needs to run one level.
type Config struct {
	Level  *game.Level
	Player string
	Store  scores.Store        // optional
	Sound  *audio.SoundManager // optional
	Logger *log.Logger
}

// Terminal runs a session in a tcell screen.
type Terminal struct {
	screen  tcell.Screen
	session *game.Session
	canvas  *Canvas
	keys    keyState

	player string
	store  scores.Store
	sound  *audio.SoundManager
	logger *log.Logger

	submitted   bool
	scoreMsgs   chan string
	notice      string
	noticeUntil time.Time
}

// New opens the terminal screen and starts a session on cfg.Level.
func New(cfg Config) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newTerminal(screen, cfg), nil
}

func newTerminal(screen tcell.Screen, cfg Config) *Terminal {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	player := cfg.Player
	if player == "" {
		player = "anonymous"
	}
	w, h := screen.Size()
	return &Terminal{
		screen:    screen,
		session:   game.NewSession(cfg.Level, game.WithLogger(logger)),
		canvas:    NewCanvas(w, h),
		player:    player,
		store:     cfg.Store,
		sound:     cfg.Sound,
		logger:    logger,
		scoreMsgs: make(chan string, 4),
	}
}

// Run drives the game until the player quits.
func (t *Terminal) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !t.handleEvent(ev, time.Now()) {
				return
			}

		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			t.update(dt, now)
			t.draw()

		case msg := <-t.scoreMsgs:
			t.setNotice(msg, time.Now())
		}
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

func (t *Terminal) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd := commandFor(ev)
		if cmd.quit {
			return false
		}
		if cmd.copy {
			t.copySummary(now)
		}
		t.keys.apply(cmd, now)

	case *tcell.EventResize:
		w, h := t.screen.Size()
		t.canvas = NewCanvas(w, h)
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) update(dt float32, now time.Time) {
	t.session.Update(dt, t.keys.frame(now))
	events := t.session.DrainEvents()
	for _, e := range events {
		switch e.Kind {
		case game.EventWon:
			t.submitScore()
		case game.EventRestarted:
			t.submitted = false
		}
	}
	if t.sound != nil {
		t.sound.HandleEvents(events)
	}
	if !t.noticeUntil.IsZero() && now.After(t.noticeUntil) {
		t.notice = ""
	}
}

func (t *Terminal) draw() {
	Render(t.canvas, t.session, t.notice)
	for y := 0; y < t.canvas.H; y++ {
		for x := 0; x < t.canvas.W; x++ {
			cell := t.canvas.At(x, y)
			t.screen.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
	t.screen.Show()
}

func (t *Terminal) submitScore() {
	if t.store == nil || t.submitted {
		return
	}
	t.submitted = true
	destroyed, total := t.session.BarrelCounts()
	rec := scores.NewRecord(t.session.Level().Config.Name, t.player, float64(t.session.Elapsed()), destroyed, total)
	store := t.store
	go func() {
		_, msg, err := scores.SubmitRun(store, rec)
		if err != nil {
			t.logger.Error("failed to submit score", "level", rec.Level, "error", err)
		}
		select {
		case t.scoreMsgs <- msg:
		default:
		}
	}()
}

func (t *Terminal) copySummary(now time.Time) {
	summary := t.session.Summary()
	if err := clipboard.WriteAll(summary); err != nil {
		t.logger.Warn("clipboard unavailable", "error", err)
		t.setNotice("clipboard unavailable", now)
		return
	}
	t.setNotice("copied", now)
}

func (t *Terminal) setNotice(msg string, now time.Time) {
	t.notice = msg
	t.noticeUntil = now.Add(noticeFor)
}
