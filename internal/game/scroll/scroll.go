// Package scroll drives the vertical auto-scroll: two background layers (the
// far layer at half speed for parallax depth), a cumulative distance counter,
// and a table of distance triggers that fire zone events as the player
// advances.
package scroll

import (
	"fmt"

	"github.com/stardrift-dev/stardrift/internal/core"
)

// Scroll speeds in 8.8 fixed-point pixels per frame.
const (
	SpeedStop   core.Fixed = 0
	SpeedSlow   core.Fixed = 0x40
	SpeedNormal core.Fixed = 0x100
	SpeedFast   core.Fixed = 0x200
)

// MaxTriggers caps the per-zone trigger table.
const MaxTriggers = 24

// ErrTriggerTableFull is returned when a zone registers more triggers than
// the table holds. Zone setup treats this as a scripting bug and logs it.
var ErrTriggerTableFull = fmt.Errorf("scroll: trigger table full (max %d)", MaxTriggers)

// TriggerFn fires once when cumulative scroll distance crosses a threshold.
// It runs inside Update, so it may register spawns, change speed, or raise a
// dialog request.
type TriggerFn func()

type trigger struct {
	distance int
	fn       TriggerFn
	fired    bool
}

// Scroller holds scroll position, speed transition state, and the trigger
// table. Positions advance during Update; the committed values read by the
// renderer only change in Commit, so a frame never shows a half-updated pair
// of layers.
type Scroller struct {
	yFP        core.Fixed // near layer position, 8.8
	parallaxFP core.Fixed // far layer, half speed
	speed      core.Fixed
	target     core.Fixed
	transition bool

	distSub    core.Fixed // sub-pixel distance remainder
	distPixels int        // cumulative whole pixels since Reset

	bgY, parallaxY         int // staged this frame
	committedY, committedP int // visible to the renderer
	dirty                  bool

	triggers  []trigger
	remaining int
}

// New returns a stopped scroller with an empty trigger table.
func New() *Scroller {
	s := &Scroller{}
	s.Reset()
	return s
}

// Reset zeroes positions, speed, and distance, and drops all triggers.
func (s *Scroller) Reset() {
	*s = Scroller{dirty: true}
}

// SetSpeed changes speed immediately, cancelling any transition in progress.
func (s *Scroller) SetSpeed(speed core.Fixed) {
	s.speed = speed
	s.target = speed
	s.transition = false
}

// Speed returns the current speed in 8.8 fixed-point.
func (s *Scroller) Speed() core.Fixed {
	return s.speed
}

// TransitionSpeed begins an ease-out glide toward target: each frame closes
// 25% of the remaining gap, with a minimum step of 1 so the curve converges
// instead of approaching asymptotically. instant skips the glide.
func (s *Scroller) TransitionSpeed(target core.Fixed, instant bool) {
	if instant {
		s.SetSpeed(target)
		return
	}
	s.target = target
	s.transition = true
}

// Update advances the transition, both layer positions, and the distance
// counter, then fires any triggers whose thresholds the new distance has
// reached. Triggers are checked in registration order.
func (s *Scroller) Update() {
	if s.transition {
		diff := s.target - s.speed
		switch {
		case diff > 0:
			step := diff >> 2
			if step < 1 {
				step = 1
			}
			s.speed += step
			if s.speed >= s.target {
				s.speed = s.target
				s.transition = false
			}
		case diff < 0:
			step := (-diff) >> 2
			if step < 1 {
				step = 1
			}
			s.speed -= step
			if s.speed <= s.target {
				s.speed = s.target
				s.transition = false
			}
		default:
			s.transition = false
		}
	}

	if s.speed == 0 {
		return
	}

	s.yFP += s.speed
	s.parallaxFP += s.speed >> 1

	s.distSub += s.speed
	s.distPixels += int(s.distSub >> 8)
	s.distSub &= 0xFF

	s.bgY = int(s.yFP.Whole())
	s.parallaxY = int(s.parallaxFP.Whole())
	s.dirty = true

	for i := range s.triggers {
		if s.remaining == 0 {
			break
		}
		t := &s.triggers[i]
		if t.fired || t.fn == nil {
			continue
		}
		if s.distPixels >= t.distance {
			t.fired = true
			s.remaining--
			t.fn()
		}
	}
}

// Commit publishes the staged layer positions to the renderer. Called once
// per frame after all simulation, mirroring a retrace-window register write;
// skipped when nothing moved.
func (s *Scroller) Commit() {
	if !s.dirty {
		return
	}
	s.committedY = s.bgY
	s.committedP = s.parallaxY
	s.dirty = false
}

// BackgroundY returns the committed near-layer offset in pixels.
func (s *Scroller) BackgroundY() int {
	return s.committedY
}

// ParallaxY returns the committed far-layer offset in pixels.
func (s *Scroller) ParallaxY() int {
	return s.committedP
}

// Distance returns total whole pixels scrolled since Reset.
func (s *Scroller) Distance() int {
	return s.distPixels
}

// AddTrigger registers a distance trigger. Triggers fire in registration
// order; registering them in ascending distance order keeps zone scripts
// readable but is not required.
func (s *Scroller) AddTrigger(distPixels int, fn TriggerFn) error {
	if len(s.triggers) >= MaxTriggers {
		return ErrTriggerTableFull
	}
	s.triggers = append(s.triggers, trigger{distance: distPixels, fn: fn})
	s.remaining++
	return nil
}

// ClearTriggers empties the trigger table. Used when loading a new zone.
func (s *Scroller) ClearTriggers() {
	s.triggers = s.triggers[:0]
	s.remaining = 0
}

// ResetTriggers re-arms every trigger without removing it, for zone retry.
func (s *Scroller) ResetTriggers() {
	for i := range s.triggers {
		s.triggers[i].fired = false
	}
	s.remaining = len(s.triggers)
}

// ResetDistance zeroes the distance counter without touching triggers or
// layer positions. Used with ResetTriggers when a zone restarts.
func (s *Scroller) ResetDistance() {
	s.distPixels = 0
	s.distSub = 0
}
