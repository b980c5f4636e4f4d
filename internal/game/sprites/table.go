// Package sprites owns the draw-slot table: a fixed array of hardware-style
// object slots that every visual subsystem writes into, and a generic sprite
// pool for short-lived visual effects. Slots are partitioned among subsystems
// at construction time; no two subsystems ever touch the same slot.
package sprites

import "github.com/stardrift-dev/stardrift/internal/core"

// NumSlots is the size of the draw-slot table.
const NumSlots = 128

// PixelsPerCell maps virtual playfield pixels to terminal cells.
const PixelsPerCell = 8

// Slot is one hardware-style draw record. An entity owns its slot for its
// whole pool lifetime; ownership is assigned at pool init and never moves.
type Slot struct {
	X, Y   int // top-left position in playfield pixels
	Glyph  rune
	Color  core.Color
	HFlip  bool
	Hidden bool
}

// Range is a contiguous slice of the slot table handed to one subsystem.
type Range struct {
	Base  int
	Count int
}

// Slot returns the absolute table index for the i-th slot of the range.
func (r Range) Slot(i int) int {
	return r.Base + i
}

// Partition is the construction-time slot ownership map. Keeping it a value
// handed to each subsystem (rather than scattered numeric offsets) makes the
// no-shared-slot invariant visible in one place.
type Partition struct {
	Player        Range
	PlayerBullets Range
	Enemies       Range
	EnemyBullets  Range
	Effects       Range
	UI            Range
}

// DefaultPartition mirrors the classic object-table split: the player first,
// then projectiles, enemies, and a tail of effect/UI slots.
func DefaultPartition() Partition {
	return Partition{
		Player:        Range{Base: 0, Count: 4},
		PlayerBullets: Range{Base: 4, Count: 16},
		Enemies:       Range{Base: 20, Count: 20},
		EnemyBullets:  Range{Base: 40, Count: 16},
		Effects:       Range{Base: 56, Count: 16},
		UI:            Range{Base: 72, Count: 8},
	}
}

// Table is the shared draw-slot array plus the single presentation pass that
// flattens it onto a screen buffer.
type Table struct {
	slots [NumSlots]Slot
}

// NewTable returns a table with every slot hidden.
func NewTable() *Table {
	t := &Table{}
	t.HideAll()
	return t
}

// Slot returns a pointer to slot i. Out-of-range indices are clamped to 0
// rather than panicking; a wrong index is a wiring bug, not a reason to
// crash mid-frame.
func (t *Table) Slot(i int) *Slot {
	if i < 0 || i >= NumSlots {
		i = 0
	}
	return &t.slots[i]
}

// Set writes a slot's full attributes and marks it visible.
func (t *Table) Set(i, x, y int, glyph rune, color core.Color) {
	s := t.Slot(i)
	s.X, s.Y = x, y
	s.Glyph = glyph
	s.Color = color
	s.Hidden = false
}

// Hide marks slot i invisible without clearing its other attributes.
func (t *Table) Hide(i int) {
	t.Slot(i).Hidden = true
}

// Show marks slot i visible again.
func (t *Table) Show(i int) {
	t.Slot(i).Hidden = false
}

// HideRange hides every slot in r.
func (t *Table) HideRange(r Range) {
	for i := 0; i < r.Count; i++ {
		t.Hide(r.Slot(i))
	}
}

// HideAll hides the entire table.
func (t *Table) HideAll() {
	for i := range t.slots {
		t.slots[i].Hidden = true
	}
}

// Compose stamps every visible slot onto dst, converting playfield pixels to
// cells. Slots are walked in index order, so later ranges draw over earlier
// ones. Brightness below 2 blanks the output entirely (the force-blank
// equivalent); the caller is expected to gate HUD text the same way.
func (t *Table) Compose(dst *core.Screen, brightness int) {
	if brightness < 2 {
		return
	}
	for i := range t.slots {
		s := &t.slots[i]
		if s.Hidden {
			continue
		}
		dst.Set(s.X/PixelsPerCell, s.Y/PixelsPerCell, s.Glyph)
	}
}
