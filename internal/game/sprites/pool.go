package sprites

import "github.com/stardrift-dev/stardrift/internal/core"

// Effect is one generic pooled visual: a drifting glyph animation with a
// bounded lifetime. Used for explosion puffs, thrust trails, and score
// sparkles; it never participates in collision.
type Effect struct {
	active     bool
	x, y       int
	ax, ay     core.Accumulator
	vx, vy     core.Fixed
	frames     []rune
	frameIdx   int
	frameTimer int
	frameRate  int
	ttl        int
	color      core.Color
	slot       int
}

// Pool is a fixed-capacity effect pool bound to one slot range.
type Pool struct {
	table   *Table
	rng     Range
	effects []Effect
}

// NewPool builds an effect pool over the given slot range.
func NewPool(t *Table, r Range) *Pool {
	p := &Pool{table: t, rng: r, effects: make([]Effect, r.Count)}
	p.Init()
	return p
}

// Init deactivates every effect and pre-assigns permanent slot handles.
func (p *Pool) Init() {
	for i := range p.effects {
		p.effects[i] = Effect{slot: p.rng.Slot(i)}
		p.table.Hide(p.rng.Slot(i))
	}
}

// Spawn allocates the first free effect. A full pool silently drops the
// request and reports false; effects are decorative, so this is never an
// error.
func (p *Pool) Spawn(x, y int, vx, vy core.Fixed, frames []rune, frameRate, ttl int, color core.Color) bool {
	if len(frames) == 0 || ttl <= 0 {
		return false
	}
	for i := range p.effects {
		e := &p.effects[i]
		if e.active {
			continue
		}
		slot := e.slot
		*e = Effect{
			active:    true,
			x:         x,
			y:         y,
			vx:        vx,
			vy:        vy,
			frames:    frames,
			frameRate: frameRate,
			ttl:       ttl,
			color:     color,
			slot:      slot,
		}
		return true
	}
	return false
}

// Update advances movement, animation frames, and lifetimes.
func (p *Pool) Update() {
	for i := range p.effects {
		e := &p.effects[i]
		if !e.active {
			continue
		}
		e.ttl--
		if e.ttl <= 0 {
			e.active = false
			p.table.Hide(e.slot)
			continue
		}
		e.x += e.ax.Add(e.vx)
		e.y += e.ay.Add(e.vy)
		if e.frameRate > 0 {
			e.frameTimer++
			if e.frameTimer >= e.frameRate {
				e.frameTimer = 0
				e.frameIdx++
				if e.frameIdx >= len(e.frames) {
					e.frameIdx = 0
				}
			}
		}
	}
}

// Render writes every live effect to its slot and hides the rest.
func (p *Pool) Render() {
	for i := range p.effects {
		e := &p.effects[i]
		if !e.active {
			p.table.Hide(e.slot)
			continue
		}
		p.table.Set(e.slot, e.x, e.y, e.frames[e.frameIdx], e.color)
	}
}

// ActiveCount reports how many effects are live, for tests and debug HUD.
func (p *Pool) ActiveCount() int {
	n := 0
	for i := range p.effects {
		if p.effects[i].active {
			n++
		}
	}
	return n
}

// Clear deactivates everything, hiding the slots immediately.
func (p *Pool) Clear() {
	for i := range p.effects {
		p.effects[i].active = false
		p.table.Hide(p.effects[i].slot)
	}
}
