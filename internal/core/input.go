package core

// Action is a semantic game action, abstracted from physical key presses.
// Actions are bit flags so a frame's input state packs into a single mask,
// which keeps held/pressed/released edge tracking cheap to store and compare.
type Action uint16

const (
	ActionUp Action = 1 << iota
	ActionDown
	ActionLeft
	ActionRight
	ActionFire       // primary weapon
	ActionFocus      // slow precision movement while held
	ActionWeaponNext // cycle weapon forward
	ActionWeaponPrev // cycle weapon backward
	ActionConfirm    // menu select / advance dialog
	ActionCancel     // menu back / open item sub-menu in battle
	ActionPause
	ActionRestart
	ActionQuit
)

// String returns a human-readable name for a single action flag.
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionFocus:
		return "Focus"
	case ActionWeaponNext:
		return "WeaponNext"
	case ActionWeaponPrev:
		return "WeaponPrev"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the decoded input state for one simulation tick. The platform
// layer owns key-to-action mapping and edge detection; game logic only ever
// sees these three masks.
type InputFrame struct {
	Held     Action // actions currently down
	Pressed  Action // actions that went down this tick (rising edge)
	Released Action // actions that went up this tick (falling edge)
}

// IsHeld reports whether every bit of a is in the held mask.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held&a == a
}

// WasPressed reports whether a went down this tick.
func (f InputFrame) WasPressed(a Action) bool {
	return f.Pressed&a == a
}

// WasReleased reports whether a went up this tick.
func (f InputFrame) WasReleased(a Action) bool {
	return f.Released&a == a
}

// InputTracker derives per-tick edge masks from successive held states.
// The platform feeds it raw held masks; Frame() emits the InputFrame that
// games consume.
type InputTracker struct {
	prev Action
}

// Frame computes pressed/released edges against the previous tick's held
// mask and advances the tracker.
func (t *InputTracker) Frame(held Action) InputFrame {
	f := InputFrame{
		Held:     held,
		Pressed:  held &^ t.prev,
		Released: t.prev &^ held,
	}
	t.prev = held
	return f
}

// Reset forgets the previous held state, so the next Frame reports all held
// actions as freshly pressed.
func (t *InputTracker) Reset() {
	t.prev = 0
}
