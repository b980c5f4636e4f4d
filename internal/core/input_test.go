package core

import "testing"

func TestInputTrackerEdges(t *testing.T) {
	var tr InputTracker

	f := tr.Frame(ActionFire)
	if !f.WasPressed(ActionFire) {
		t.Error("first frame with Fire held should report a press")
	}
	if !f.IsHeld(ActionFire) {
		t.Error("Fire should be held")
	}

	f = tr.Frame(ActionFire)
	if f.WasPressed(ActionFire) {
		t.Error("second frame should not re-report the press")
	}
	if !f.IsHeld(ActionFire) {
		t.Error("Fire should still be held")
	}

	f = tr.Frame(0)
	if !f.WasReleased(ActionFire) {
		t.Error("releasing Fire should report a falling edge")
	}
	if f.IsHeld(ActionFire) {
		t.Error("Fire should no longer be held")
	}
}

func TestInputTrackerIndependentBits(t *testing.T) {
	var tr InputTracker
	tr.Frame(ActionUp | ActionLeft)
	f := tr.Frame(ActionUp | ActionFire)

	if !f.WasPressed(ActionFire) {
		t.Error("Fire press missed")
	}
	if f.WasPressed(ActionUp) {
		t.Error("Up was already held, must not re-report press")
	}
	if !f.WasReleased(ActionLeft) {
		t.Error("Left release missed")
	}
}
