package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Shoot-Or-Die/internal/game"
)

const tinyLevel = `
name: tiny
tile_size: 4
finish_z: 100
player_spawn: {x: 8, y: 1.8, z: 8}
hunter_spawn: {x: 24, y: 0, z: 8}
layout: |
  ########
  #......#
  #...B..#
  #......#
  ########
`

func tinySession(t *testing.T) *game.Session {
	t.Helper()
	lvl, err := game.ParseLevel([]byte(tinyLevel))
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}
	return game.NewSession(lvl)
}

func TestCanvas_SetAndText(t *testing.T) {
	c := NewCanvas(5, 2)
	c.Set(-1, 0, 'x', tcell.StyleDefault)
	c.Set(5, 0, 'x', tcell.StyleDefault)
	c.Set(0, 2, 'x', tcell.StyleDefault)
	if c.Row(0) != "     " {
		t.Fatalf("out-of-range writes should be dropped, got %q", c.Row(0))
	}
	c.Text(3, 1, "abc", tcell.StyleDefault)
	if c.Row(1) != "   ab" {
		t.Fatalf("expected clipped text, got %q", c.Row(1))
	}
	if got := c.At(9, 9); got.Ch != 0 {
		t.Fatalf("expected zero cell outside the canvas, got %q", got.Ch)
	}
}

func TestRender_PlacesEntities(t *testing.T) {
	s := tinySession(t)
	c := NewCanvas(40, 12)
	Render(c, s, "")

	// Player cell (2,2) sits at the map centre: x=20, y=(12-3)/2+2.
	if got := c.At(20, 6).Ch; got != '@' {
		t.Fatalf("expected player at (20,6), got %q\n%s", got, dump(c))
	}
	if got := c.At(21, 6).Ch; got != '^' {
		t.Fatalf("expected the player facing up, got %q", got)
	}
	if got := c.At(24, 6).Ch; got != 'o' {
		t.Fatalf("expected the barrel at (24,6), got %q\n%s", got, dump(c))
	}
	if got := c.At(28, 6).Ch; got != 'H' {
		t.Fatalf("expected the hunter at (28,6), got %q\n%s", got, dump(c))
	}
	if got := c.At(16, 6).Ch; got != '█' {
		t.Fatalf("expected a wall at (16,6), got %q", got)
	}
	if !strings.HasPrefix(c.Row(0), "tiny") {
		t.Fatalf("expected the level title on the status row, got %q", c.Row(0))
	}
	if !strings.Contains(c.Row(1), "barrels 0/1") {
		t.Fatalf("expected barrel counts on the HUD, got %q", c.Row(1))
	}
}

func TestRender_LaserAfterShot(t *testing.T) {
	s := tinySession(t)
	s.Update(1.0/60, game.FrameInput{Fire: true})
	if !s.Weapon().Firing {
		t.Fatal("expected the weapon to fire")
	}
	c := NewCanvas(40, 12)
	Render(c, s, "")
	if got := c.At(20, 5).Ch; got != '*' {
		t.Fatalf("expected the laser above the player, got %q\n%s", got, dump(c))
	}
	if got := c.At(20, 4).Ch; got != '█' {
		t.Fatalf("expected the laser to stop at the wall, got %q", got)
	}
}

func TestRender_DestroyedBarrelHidden(t *testing.T) {
	s := tinySession(t)
	s.SetPlayerPose(s.Player().Position, 0, 0) // face +X, down the row at the barrel
	s.Update(1.0/60, game.FrameInput{Fire: true})
	if d, _ := s.BarrelCounts(); d != 1 {
		t.Fatalf("expected the barrel destroyed, got %d", d)
	}
	c := NewCanvas(40, 12)
	Render(c, s, "")
	if got := c.At(24, 6).Ch; got == 'o' {
		t.Fatal("destroyed barrel should not be drawn")
	}
}

func TestHeadingGlyph(t *testing.T) {
	cases := map[float32]rune{-90: '^', 0: '>', 90: 'v', 180: '<', 270: '^', -180: '<', 400: '>'}
	for yaw, want := range cases {
		if got := headingGlyph(yaw); got != want {
			t.Errorf("yaw %.0f: got %q, want %q", yaw, got, want)
		}
	}
}

func TestCommandForKey(t *testing.T) {
	cmd := commandForKey(tcell.KeyRune, 'W')
	if len(cmd.actions) != 2 || cmd.actions[0] != actSprint || cmd.actions[1] != actForward {
		t.Fatalf("expected sprint+forward, got %v", cmd.actions)
	}
	if cmd := commandForKey(tcell.KeyRune, 'f'); !cmd.fire || len(cmd.actions) != 0 {
		t.Fatalf("expected f to fire once, got %+v", cmd)
	}
	if cmd := commandForKey(tcell.KeyRune, 'r'); !cmd.restart {
		t.Fatal("expected r to restart")
	}
	if cmd := commandForKey(tcell.KeyEscape, 0); !cmd.quit {
		t.Fatal("expected escape to quit")
	}
	if cmd := commandForKey(tcell.KeyRune, ' '); len(cmd.actions) != 1 || cmd.actions[0] != actJump {
		t.Fatalf("expected space to jump, got %v", cmd.actions)
	}
	if cmd := commandForKey(tcell.KeyRune, 'z'); len(cmd.actions) != 0 || cmd.restart || cmd.quit || cmd.copy {
		t.Fatalf("expected an unbound key to do nothing, got %+v", cmd)
	}
}

func TestKeyState_HoldWindow(t *testing.T) {
	var ks keyState
	t0 := time.Unix(1000, 0)
	ks.apply(command{actions: []action{actForward, actTurnRight}}, t0)

	in := ks.frame(t0.Add(100 * time.Millisecond))
	if in.MoveForward != 1 || in.LookDX != keyTurnRate {
		t.Fatalf("expected held forward and turn, got %+v", in)
	}
	in = ks.frame(t0.Add(holdWindow + time.Millisecond))
	if in.MoveForward != 0 || in.LookDX != 0 {
		t.Fatalf("expected release after the hold window, got %+v", in)
	}
}

func TestKeyState_RestartConsumed(t *testing.T) {
	var ks keyState
	now := time.Unix(1000, 0)
	ks.apply(command{restart: true}, now)
	if !ks.frame(now).Restart {
		t.Fatal("expected restart on the next frame")
	}
	if ks.frame(now).Restart {
		t.Fatal("restart should fire once")
	}
}

func TestKeyState_OnePressOneShot(t *testing.T) {
	s := tinySession(t)
	s.SetPlayerPose(s.Player().Position, 0, 0)
	var ks keyState
	now := time.Unix(1000, 0)
	ks.apply(commandForKey(tcell.KeyRune, 'f'), now)

	shots := 0
	for i := 0; i < 9; i++ {
		in := ks.frame(now.Add(time.Duration(i) * 16 * time.Millisecond))
		if i > 0 && in.Fire {
			t.Fatalf("frame %d: fire should be consumed by the first frame", i)
		}
		s.Update(0.016, in)
		for _, e := range s.DrainEvents() {
			if e.Kind == game.EventShot {
				shots++
			}
		}
	}
	if shots != 1 {
		t.Fatalf("expected one shot for one key press, got %d", shots)
	}
	if d, _ := s.BarrelCounts(); d != 1 {
		t.Fatalf("expected the barrel destroyed, got %d", d)
	}
}

func dump(c *Canvas) string {
	var sb strings.Builder
	for y := 0; y < c.H; y++ {
		sb.WriteString(c.Row(y))
		sb.WriteByte('\n')
	}
	return sb.String()
}
