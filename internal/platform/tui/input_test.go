package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stardrift-dev/stardrift/internal/core"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestActionsForMapsMovement(t *testing.T) {
	k := DefaultKeyMap()

	cases := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{keyRunes("w"), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{keyRunes("a"), core.ActionLeft},
		{keyRunes("d"), core.ActionRight},
		{keyRunes("x"), core.ActionFocus},
		{keyRunes("p"), core.ActionPause},
	}
	for _, tc := range cases {
		if got := k.actionsFor(tc.msg); got != tc.want {
			t.Errorf("actionsFor(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestFireKeyAlsoConfirms(t *testing.T) {
	k := DefaultKeyMap()

	got := k.actionsFor(keyRunes("z"))
	if got&core.ActionFire == 0 || got&core.ActionConfirm == 0 {
		t.Errorf("z = %v, want fire and confirm both set", got)
	}

	if got := k.actionsFor(tea.KeyMsg{Type: tea.KeyEnter}); got != core.ActionConfirm {
		t.Errorf("enter = %v, want confirm only", got)
	}
}

func TestHeldActionDecaysAfterHoldTicks(t *testing.T) {
	in := newInputState()
	in.stamp(core.ActionFire)

	f := in.frame()
	if !f.WasPressed(core.ActionFire) {
		t.Fatal("first frame should report a fire press edge")
	}
	for i := 1; i < holdTicks; i++ {
		if f = in.frame(); !f.IsHeld(core.ActionFire) {
			t.Fatalf("frame %d: fire should still read held", i+1)
		}
		if f.WasPressed(core.ActionFire) {
			t.Fatalf("frame %d: fire must not re-press while held", i+1)
		}
	}
	if f = in.frame(); f.IsHeld(core.ActionFire) {
		t.Error("fire should decay once the hold window expires")
	}
	if !f.WasReleased(core.ActionFire) {
		t.Error("decay should report a release edge")
	}
}

func TestRepeatRefreshesHold(t *testing.T) {
	in := newInputState()
	in.stamp(core.ActionLeft)
	for i := 0; i < holdTicks-1; i++ {
		in.frame()
	}

	// A key repeat just before expiry keeps the hold alive.
	in.stamp(core.ActionLeft)
	f := in.frame()
	if !f.IsHeld(core.ActionLeft) || f.WasPressed(core.ActionLeft) {
		t.Errorf("refreshed hold = %+v, want held with no new press edge", f)
	}
}

func TestTapLastsOneFrame(t *testing.T) {
	in := newInputState()
	in.stamp(core.ActionConfirm)

	if f := in.frame(); !f.WasPressed(core.ActionConfirm) {
		t.Fatal("tap should press on the next frame")
	}
	if f := in.frame(); f.IsHeld(core.ActionConfirm) {
		t.Error("tap should not persist past one frame")
	}

	// A second tap lands as a fresh press edge.
	in.stamp(core.ActionConfirm)
	if f := in.frame(); !f.WasPressed(core.ActionConfirm) {
		t.Error("second tap should produce its own press edge")
	}
}

func TestClearDropsPendingInput(t *testing.T) {
	in := newInputState()
	in.stamp(core.ActionFire | core.ActionConfirm)
	in.clear()

	if f := in.frame(); f.Held != 0 || f.Pressed != 0 || f.Released != 0 {
		t.Errorf("frame after clear = %+v, want empty", f)
	}
}
