// Package player owns the flight-mode ship: input-driven movement with
// bounds clamping, banking hysteresis, invincibility blink, and the thrust
// trail effect.
package player

import (
	"github.com/stardrift-dev/stardrift/internal/core"
	"github.com/stardrift-dev/stardrift/internal/game/sprites"
)

// Movement tuning. Focus mode halves the speed for precise dodging.
const (
	SpeedNormal = 2
	SpeedFocus  = 1

	StartX = 112
	StartY = 176

	MinX = 0
	MaxX = 224
	MinY = 16 // top rows reserved for the HUD
	MaxY = 192
)

// bankReturnDelay holds the tilt for a few frames after release so brief
// taps do not flicker the sprite.
const bankReturnDelay = 4

// Bank is the ship's visual tilt.
type Bank uint8

const (
	BankIdle Bank = iota
	BankLeft
	BankRight
)

// Ship is the player entity. Exported fields are read by the collision
// pass and the renderer.
type Ship struct {
	X, Y            int
	Visible         bool
	InvincibleTimer int
	ComboFlash      int // frames of palette flash while a combo runs

	bank        Bank
	bankTimer   int
	trailToggle bool
	hitEdge     bool

	table     *sprites.Table
	shipSlot  int
	trailSlot int
}

// New places the ship at the start position bound to the first two slots
// of its range: the hull, then the thrust trail.
func New(t *sprites.Table, r sprites.Range) *Ship {
	s := &Ship{table: t, shipSlot: r.Slot(0), trailSlot: r.Slot(1)}
	s.Reset()
	return s
}

// Reset returns the ship to the spawn point with no timers running.
func (s *Ship) Reset() {
	s.X = StartX
	s.Y = StartY
	s.Visible = true
	s.InvincibleTimer = 0
	s.ComboFlash = 0
	s.bank = BankIdle
	s.bankTimer = 0
	s.hitEdge = false
}

// HandleInput applies one frame of movement. Diagonal movement drops the
// speed by one to approximate vector normalization, and the position is
// clamped to the playfield afterward.
func (s *Ship) HandleInput(in core.InputFrame) {
	speed := SpeedNormal
	if in.IsHeld(core.ActionFocus) {
		speed = SpeedFocus
	}
	vert := in.IsHeld(core.ActionUp) || in.IsHeld(core.ActionDown)
	horiz := in.IsHeld(core.ActionLeft) || in.IsHeld(core.ActionRight)
	if vert && horiz && speed > 1 {
		speed--
	}

	if in.IsHeld(core.ActionUp) {
		s.Y -= speed
	}
	if in.IsHeld(core.ActionDown) {
		s.Y += speed
	}

	movingH := false
	if in.IsHeld(core.ActionLeft) {
		s.X -= speed
		movingH = true
		s.bank = BankLeft
		s.bankTimer = bankReturnDelay
	}
	if in.IsHeld(core.ActionRight) {
		s.X += speed
		movingH = true
		s.bank = BankRight
		s.bankTimer = bankReturnDelay
	}
	if !movingH {
		if s.bankTimer > 0 {
			s.bankTimer--
		} else {
			s.bank = BankIdle
		}
	}

	s.hitEdge = false
	if s.X < MinX {
		s.X, s.hitEdge = MinX, true
	}
	if s.X > MaxX {
		s.X, s.hitEdge = MaxX, true
	}
	if s.Y < MinY {
		s.Y, s.hitEdge = MinY, true
	}
	if s.Y > MaxY {
		s.Y, s.hitEdge = MaxY, true
	}
}

// HitEdge reports whether the last HandleInput clamped against a bound.
// The renderer dips the brightness for a frame as feedback.
func (s *Ship) HitEdge() bool {
	return s.hitEdge
}

// Bank reports the current tilt for the renderer.
func (s *Ship) Bank() Bank {
	return s.bank
}

// Update ticks invincibility and the combo flash. During invincibility the
// ship blinks on a 4-frame cycle.
func (s *Ship) Update() {
	if s.InvincibleTimer > 0 {
		s.InvincibleTimer--
		s.Visible = (s.InvincibleTimer>>2)&1 == 1
	} else {
		s.Visible = true
	}
	if s.ComboFlash > 0 {
		s.ComboFlash--
	}
	s.trailToggle = !s.trailToggle
}

// MakeInvincible starts the post-hit mercy window.
func (s *Ship) MakeInvincible(frames int) {
	s.InvincibleTimer = frames
}

// SetPosition moves the ship directly, for scripted repositioning after a
// battle or zone change.
func (s *Ship) SetPosition(x, y int) {
	s.X = x
	s.Y = y
}

// Hide takes the ship off the field during battles and menus.
func (s *Ship) Hide() {
	s.Visible = false
	s.table.Hide(s.shipSlot)
	s.table.Hide(s.trailSlot)
}

// Show restores the ship after a transition.
func (s *Ship) Show() {
	s.Visible = true
}

// Render writes the hull and trail slots. Banking flips the hull glyph;
// the trail flickers every other frame, held steady while banking, and is
// hidden through the invincibility blink.
func (s *Ship) Render() {
	if !s.Visible {
		s.table.Hide(s.shipSlot)
		s.table.Hide(s.trailSlot)
		return
	}

	color := core.ColorBrightWhite
	if s.ComboFlash > 0 && s.ComboFlash&1 == 1 {
		color = core.ColorBrightYellow
	}
	s.table.Set(s.shipSlot, s.X, s.Y, glyphFor(s.bank), color)
	if s.bank == BankLeft {
		s.table.Slot(s.shipSlot).HFlip = true
	} else {
		s.table.Slot(s.shipSlot).HFlip = false
	}

	trailVisible := s.trailToggle || s.bank != BankIdle
	if s.InvincibleTimer == 0 && trailVisible {
		s.table.Set(s.trailSlot, s.X, s.Y+8, '.', core.ColorOrange)
	} else {
		s.table.Hide(s.trailSlot)
	}
}

func glyphFor(b Bank) rune {
	switch b {
	case BankLeft:
		return '<'
	case BankRight:
		return '>'
	}
	return 'A'
}
