package client

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Shoot-Or-Die/internal/game"
)

// keyTurnRate is the look delta Q/E add per frame, in mouse units.
const keyTurnRate = 25

// readInput samples the keyboard and mouse into one FrameInput.
// Pitch is never changed: it cannot be seen from above and a tilted gun
// would shoot over the barrels.
func (c *Client) readInput() game.FrameInput {
	var in game.FrameInput

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveForward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveForward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveRight++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveRight--
	}
	in.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	// One shot per click or key press; holding does not auto-fire.
	in.Fire = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeyF)
	in.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)

	mx, _ := ebiten.CursorPosition()
	if c.haveCursor {
		in.LookDX = float32(mx - c.prevCursorX)
	}
	c.prevCursorX = mx
	c.haveCursor = true

	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.LookDX -= keyTurnRate
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		in.LookDX += keyTurnRate
	}
	return in
}
