package sprites

import (
	"testing"

	"github.com/stardrift-dev/stardrift/internal/core"
)

func testPool() (*Table, *Pool) {
	t := NewTable()
	return t, NewPool(t, Range{Base: 56, Count: 4})
}

func TestPoolCapacity(t *testing.T) {
	_, p := testPool()
	for i := 0; i < 4; i++ {
		if !p.Spawn(10, 10, 0, 0, []rune{'*'}, 0, 30, core.ColorYellow) {
			t.Fatalf("spawn %d failed with free capacity", i)
		}
	}
	if p.Spawn(10, 10, 0, 0, []rune{'*'}, 0, 30, core.ColorYellow) {
		t.Error("spawn on a full pool must be a silent no-op returning false")
	}
	if got := p.ActiveCount(); got != 4 {
		t.Errorf("ActiveCount = %d, want 4", got)
	}
}

func TestPoolFreeThenAlloc(t *testing.T) {
	_, p := testPool()
	p.Spawn(0, 0, 0, 0, []rune{'*'}, 0, 1, core.ColorWhite)
	p.Update() // ttl hits zero, effect frees
	if got := p.ActiveCount(); got != 0 {
		t.Fatalf("ActiveCount after expiry = %d, want 0", got)
	}
	if !p.Spawn(0, 0, 0, 0, []rune{'*'}, 0, 5, core.ColorWhite) {
		t.Error("freed slot should be reallocatable")
	}
}

func TestPoolExpiredSlotHidden(t *testing.T) {
	tbl, p := testPool()
	p.Spawn(16, 16, 0, 0, []rune{'*'}, 0, 1, core.ColorWhite)
	p.Render()
	if tbl.Slot(56).Hidden {
		t.Fatal("live effect slot should be visible after Render")
	}
	p.Update()
	if !tbl.Slot(56).Hidden {
		t.Error("expired effect must hide its slot immediately, not wait for Render")
	}
}

func TestPoolMotion(t *testing.T) {
	_, p := testPool()
	p.Spawn(0, 0, core.FixedOne, core.FixedHalf, []rune{'.'}, 0, 100, core.ColorWhite)
	for i := 0; i < 10; i++ {
		p.Update()
	}
	e := &p.effects[0]
	if e.x != 10 {
		t.Errorf("x after 10 frames at 1.0 px/f = %d, want 10", e.x)
	}
	if e.y != 5 {
		t.Errorf("y after 10 frames at 0.5 px/f = %d, want 5", e.y)
	}
}

func TestComposeBrightnessBlank(t *testing.T) {
	tbl := NewTable()
	tbl.Set(0, 8, 8, 'A', core.ColorWhite)
	scr := core.NewScreen(32, 28)
	tbl.Compose(scr, 0)
	if scr.Get(1, 1) != ' ' {
		t.Error("brightness 0 must blank the composed output")
	}
	tbl.Compose(scr, 15)
	if scr.Get(1, 1) != 'A' {
		t.Error("visible slot not composed at full brightness")
	}
}
