package client

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Shoot-Or-Die/internal/game"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
)

// LogEntry is a single line in the event log.
type LogEntry struct {
	Tick    int
	Source  string // "P" player, "H" hunter, "--" session
	Message string
}

// EventLog is a ring buffer of session events rendered on-screen.
type EventLog struct {
	entries []LogEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]LogEntry, logMaxEntries),
	}
}

// Add appends an entry to the log.
func (el *EventLog) Add(tick int, source, msg string) {
	el.entries[el.head] = LogEntry{
		Tick:    tick,
		Source:  source,
		Message: msg,
	}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// AddEvent records a session event. Shots are not logged; they would
// flood the panel.
func (el *EventLog) AddEvent(tick int, e game.Event) {
	switch e.Kind {
	case game.EventBarrelDestroyed:
		el.Add(tick, "P", fmt.Sprintf("barrel %d down at (%.0f,%.0f)", e.Index, e.Pos.X(), e.Pos.Z()))
	case game.EventJumpStarted:
		el.Add(tick, "H", fmt.Sprintf("leaps from (%.0f,%.0f)", e.Pos.X(), e.Pos.Z()))
	case game.EventLanded:
		el.Add(tick, "H", "lands")
	case game.EventCaught:
		el.Add(tick, "H", "caught the player")
	case game.EventWon:
		el.Add(tick, "P", "crossed the finish line")
	case game.EventRestarted:
		el.Add(tick, "--", "restart")
	}
}

// Len returns the number of stored entries.
func (el *EventLog) Len() int { return el.count }

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []LogEntry {
	result := make([]LogEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Draw renders the log panel on the right side of the screen.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	// Panel background.
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 14, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 80, G: 65, B: 40, A: 255}, false)

	// Title bar.
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 32, G: 26, B: 18, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENT LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 90, G: 75, B: 45, A: 200}, false)

	entries := el.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}

	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 45, G: 36, B: 24, A: 160}, false)
		}

		var dotCol color.RGBA
		switch e.Source {
		case "H":
			dotCol = color.RGBA{R: 210, G: 60, B: 50, A: 255}
		case "P":
			dotCol = color.RGBA{R: 70, G: 120, B: 220, A: 255}
		default:
			dotCol = color.RGBA{R: 160, G: 160, B: 160, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, dotCol, false)

		line := fmt.Sprintf("%5d [%s] %s", e.Tick, e.Source, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
