package tui

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Shoot-Or-Die/internal/game"
)

// Terminals report key presses and auto-repeats but never releases, so a
// press counts as held for holdWindow. The window is a little longer than a
// typical auto-repeat interval.
const (
	holdWindow  = 150 * time.Millisecond
	keyTurnRate = 25 // look delta per frame, in mouse units
)

type action uint8

const (
	actForward action = iota
	actBack
	actLeft
	actRight
	actTurnLeft
	actTurnRight
	actJump
	actSprint
	actionCount
)

// command is what one key event asks for.
type command struct {
	actions []action
	fire    bool
	restart bool
	copy    bool
	quit    bool
}

// commandFor decodes a key event. Upper-case movement letters (shift held)
// also sprint.
func commandFor(ev *tcell.EventKey) command {
	return commandForKey(ev.Key(), ev.Rune())
}

func commandForKey(key tcell.Key, r rune) command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return command{quit: true}
	case tcell.KeyUp:
		return command{actions: []action{actForward}}
	case tcell.KeyDown:
		return command{actions: []action{actBack}}
	case tcell.KeyLeft:
		return command{actions: []action{actTurnLeft}}
	case tcell.KeyRight:
		return command{actions: []action{actTurnRight}}
	case tcell.KeyRune:
	default:
		return command{}
	}

	var cmd command
	if unicode.IsUpper(r) {
		cmd.actions = append(cmd.actions, actSprint)
	}
	switch unicode.ToLower(r) {
	case 'w':
		cmd.actions = append(cmd.actions, actForward)
	case 's':
		cmd.actions = append(cmd.actions, actBack)
	case 'a':
		cmd.actions = append(cmd.actions, actLeft)
	case 'd':
		cmd.actions = append(cmd.actions, actRight)
	case 'q':
		cmd.actions = append(cmd.actions, actTurnLeft)
	case 'e':
		cmd.actions = append(cmd.actions, actTurnRight)
	case 'f':
		return command{fire: true}
	case ' ':
		cmd.actions = append(cmd.actions, actJump)
	case 'r':
		return command{restart: true}
	case 'c':
		return command{copy: true}
	default:
		return command{}
	}
	return cmd
}

// keyState turns discrete key events into per-frame held input.
type keyState struct {
	heldUntil [actionCount]time.Time
	fire      bool
	restart   bool
}

func (k *keyState) apply(cmd command, now time.Time) {
	for _, a := range cmd.actions {
		k.heldUntil[a] = now.Add(holdWindow)
	}
	if cmd.fire {
		k.fire = true
	}
	if cmd.restart {
		k.restart = true
	}
}

func (k *keyState) held(a action, now time.Time) bool {
	return now.Before(k.heldUntil[a])
}

// frame builds the input for one update. Fire and restart requests are
// consumed, so auto-repeat of a held key fires once per repeat event.
func (k *keyState) frame(now time.Time) game.FrameInput {
	var in game.FrameInput
	if k.held(actForward, now) {
		in.MoveForward++
	}
	if k.held(actBack, now) {
		in.MoveForward--
	}
	if k.held(actRight, now) {
		in.MoveRight++
	}
	if k.held(actLeft, now) {
		in.MoveRight--
	}
	if k.held(actTurnLeft, now) {
		in.LookDX -= keyTurnRate
	}
	if k.held(actTurnRight, now) {
		in.LookDX += keyTurnRate
	}
	in.Fire = k.fire
	k.fire = false
	in.Jump = k.held(actJump, now)
	in.Sprint = k.held(actSprint, now)
	in.Restart = k.restart
	k.restart = false
	return in
}
