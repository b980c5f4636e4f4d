package tui

import (
	"github.com/stardrift-dev/stardrift/internal/core"
)

// Terminals report key repeats, never key-up events, so a held key arrives
// as a stream of presses. Movement and fire are armed for holdTicks frames
// per press so the repeat stream reads as a continuous hold; everything
// else is a tap held for exactly one tick, giving menus a clean press edge
// on every keystroke.
const holdTicks = 10

// holdActions are the bindings where the player genuinely holds the key.
const holdActions = core.ActionUp | core.ActionDown | core.ActionLeft |
	core.ActionRight | core.ActionFire | core.ActionFocus

// inputState assembles per-tick input frames from bubbletea key events.
type inputState struct {
	timers  map[core.Action]int
	taps    core.Action
	tracker core.InputTracker
}

func newInputState() *inputState {
	return &inputState{timers: make(map[core.Action]int)}
}

// stamp arms every action bit in mask.
func (s *inputState) stamp(mask core.Action) {
	s.taps |= mask &^ holdActions
	for bit := core.Action(1); bit != 0 && bit <= mask; bit <<= 1 {
		if mask&holdActions&bit != 0 {
			s.timers[bit] = holdTicks
		}
	}
}

// frame emits the input frame for one simulation tick, decaying the hold
// timers and consuming queued taps.
func (s *inputState) frame() core.InputFrame {
	held := s.taps
	s.taps = 0
	for bit, t := range s.timers {
		if t <= 0 {
			continue
		}
		held |= bit
		s.timers[bit] = t - 1
	}
	return s.tracker.Frame(held)
}

// clear drops all held state, for transitions that should not leak input.
func (s *inputState) clear() {
	s.taps = 0
	for bit := range s.timers {
		delete(s.timers, bit)
	}
	s.tracker.Reset()
}
