// Package enemy manages the hostile ship pool: archetype stat templates,
// per-frame AI movement, firing, damage states, and the per-zone wave
// scripts that spawn formations at scroll distances.
package enemy

import (
	"github.com/stardrift-dev/stardrift/internal/core"
	"github.com/stardrift-dev/stardrift/internal/game/bullet"
	"github.com/stardrift-dev/stardrift/internal/game/sfx"
	"github.com/stardrift-dev/stardrift/internal/game/sprites"
)

// MaxEnemies caps simultaneous hostiles; the pool never grows.
const MaxEnemies = 8

// Type indexes the archetype table.
type Type uint8

const (
	Scout Type = iota // linear, fast, fragile
	Fighter           // sine weave, mid tier
	Heavy             // hover and strafe, tanky
	Elite             // chases the player
	TypeCount
)

// Pattern selects the per-frame movement behavior.
type Pattern uint8

const (
	PatternLinear Pattern = iota
	PatternSine
	PatternSwoop
	PatternHover
	PatternChase
)

// State is the entity lifecycle.
type State uint8

const (
	StateInactive State = iota
	StateActive
	StateDying
)

// TypeDef is the stat template for one archetype.
type TypeDef struct {
	MaxHP         int
	Speed         int // whole pixels per frame, downward
	FireRate      int // frames between shots, 0 = never fires
	Pattern       Pattern
	Score         int
	ContactDamage int
}

var typeDefs = [TypeCount]TypeDef{
	Scout:   {MaxHP: 10, Speed: 2, FireRate: 90, Pattern: PatternLinear, Score: 100, ContactDamage: 10},
	Fighter: {MaxHP: 20, Speed: 1, FireRate: 60, Pattern: PatternSine, Score: 200, ContactDamage: 15},
	Heavy:   {MaxHP: 40, Speed: 1, FireRate: 45, Pattern: PatternHover, Score: 350, ContactDamage: 20},
	Elite:   {MaxHP: 30, Speed: 2, FireRate: 50, Pattern: PatternChase, Score: 500, ContactDamage: 20},
}

// TypeDefFor returns the archetype template, clamping bad values to Scout.
func TypeDefFor(t Type) TypeDef {
	if t >= TypeCount {
		t = Scout
	}
	return typeDefs[t]
}

// sineTable drives the Fighter weave: one period sampled at 16 points,
// +/-7 pixel amplitude, advanced one step every 4 frames.
var sineTable = [16]int{0, 3, 5, 7, 7, 7, 5, 3, 0, -3, -5, -7, -7, -7, -5, -3}

// Enemy is one pooled hostile. Exported fields are read by the collision
// pass.
type Enemy struct {
	State  State
	X, Y   int
	Type   Type
	HP     int
	Age    int  // frames since spawn, for the speed-kill bonus
	Golden bool // rare variant: double HP, triple score, guaranteed drop
	Shield bool // absorbs one hit
	Hazard bool // invulnerable debris, contact damage only

	vx, vy     core.Fixed
	fireTimer  int
	aiState    int
	aiTimer    int
	aiCenterX  int // sine oscillation center, fixed at spawn
	flashTimer int
	slot       int
}

// Hooks let the pool report events to systems it must not depend on.
type Hooks struct {
	// OnSpawn fires once per spawned enemy, for wave-clear tracking.
	OnSpawn func()
	// OnEscape awards partial score when an enemy exits the bottom edge.
	OnEscape func(score int)
	// OnBonusZone starts a double-score window.
	OnBonusZone func()
	// OnZoneEnd fires at the zone-end slowdown trigger.
	OnZoneEnd func()
}

// Pool holds the hostiles plus the wave-pressure state used for the
// adaptive fire rate.
type Pool struct {
	Hooks Hooks

	enemies     [MaxEnemies]Enemy
	table       *sprites.Table
	bullets     *bullet.Pool
	sounds      *sfx.Queue
	zone        int
	frame       int
	waveCount   int
	waveFrame   int // last frame a wave spawned, for dedup
	activeCount int

	// Difficulty scaling in eighths; 8 is stock.
	hpEighths   int
	fireEighths int
}

// NewPool binds the enemy pool to its slot range, projectile pool, and
// sound queue.
func NewPool(t *sprites.Table, r sprites.Range, bullets *bullet.Pool, sounds *sfx.Queue) *Pool {
	p := &Pool{table: t, bullets: bullets, sounds: sounds, waveFrame: -1, hpEighths: 8, fireEighths: 8}
	for i := range p.enemies {
		p.enemies[i].slot = r.Slot(i)
	}
	return p
}

// SetZone selects the HP scaling tier for subsequent spawns.
func (p *Pool) SetZone(zone int) {
	p.zone = zone
}

// SetTuning applies a difficulty preset to subsequent spawns. Both factors
// are in eighths: 8 keeps stock stats, lower hpEighths softens enemies, and
// higher fireEighths stretches the interval between their shots.
func (p *Pool) SetTuning(hpEighths, fireEighths int) {
	if hpEighths < 1 {
		hpEighths = 1
	}
	if fireEighths < 1 {
		fireEighths = 1
	}
	p.hpEighths = hpEighths
	p.fireEighths = fireEighths
}

// fireInterval scales a base fire interval by the active tuning, floored so
// tuned enemies never machine-gun.
func (p *Pool) fireInterval(rate int) int {
	if p.fireEighths != 8 {
		rate = rate * p.fireEighths >> 3
		if rate < 8 {
			rate = 8
		}
	}
	return rate
}

// Spawn activates one enemy at (x, y). Later zones scale HP up (+50% in
// zone 1, +100% from zone 2), and a 1-in-16 roll promotes the spawn to the
// golden variant. Returns nil when the pool is full.
func (p *Pool) Spawn(t Type, x, y int) *Enemy {
	if t >= TypeCount {
		return nil
	}

	// Multiple spawns on the same frame count as one wave.
	if p.frame != p.waveFrame {
		p.waveFrame = p.frame
		if p.waveCount < 255 {
			p.waveCount++
		}
	}

	for i := range p.enemies {
		e := &p.enemies[i]
		if e.State != StateInactive {
			continue
		}
		def := typeDefs[t]
		slot := e.slot
		*e = Enemy{
			State:     StateActive,
			X:         x,
			Y:         y,
			Type:      t,
			HP:        def.MaxHP,
			vy:        core.FixedFromInt(def.Speed),
			fireTimer: def.FireRate,
			aiCenterX: x,
			// Brief spawn-in blink.
			flashTimer: 4,
			slot:       slot,
		}
		switch {
		case p.zone == 1:
			e.HP += def.MaxHP >> 1
		case p.zone >= 2:
			e.HP += def.MaxHP
		}
		if p.hpEighths != 8 {
			e.HP = e.HP * p.hpEighths >> 3
			if e.HP < 1 {
				e.HP = 1
			}
		}
		if e.fireTimer > 0 {
			e.fireTimer = p.fireInterval(e.fireTimer)
		}
		// Sustained pressure: waves past the eighth fire 12.5% faster.
		if p.waveCount >= 8 && e.fireTimer > 8 {
			e.fireTimer -= e.fireTimer >> 3
		}
		if t == Heavy {
			e.Shield = true
		}
		if (p.frame & 0x0F) == 0x07 {
			e.Golden = true
			e.HP <<= 1
			e.flashTimer = 255 // permanent blink marks the variant
		}
		if p.Hooks.OnSpawn != nil {
			p.Hooks.OnSpawn()
		}
		return e
	}
	return nil
}

// SpawnWave places count enemies starting at (startX, startY) with uniform
// spacing. Diagonal formations use a nonzero spacingY.
func (p *Pool) SpawnWave(t Type, count, startX, startY, spacingX, spacingY int) {
	x, y := startX, startY
	for ; count > 0; count-- {
		p.Spawn(t, x, y)
		x += spacingX
		y += spacingY
	}
}

// SpawnVFormation places five enemies in a V: point, wings, far wings.
func (p *Pool) SpawnVFormation(t Type, centerX, topY int) {
	p.Spawn(t, centerX, topY)
	p.Spawn(t, centerX-30, topY-20)
	p.Spawn(t, centerX+30, topY-20)
	p.Spawn(t, centerX-60, topY-40)
	p.Spawn(t, centerX+60, topY-40)
}

// SpawnFromLeft enters an enemy from the left edge. Linear types start
// off-screen with a rightward drift; other patterns spawn at the visible
// edge and let their AI take over.
func (p *Pool) SpawnFromLeft(t Type, y int) {
	if TypeDefFor(t).Pattern == PatternLinear {
		if e := p.Spawn(t, -24, y); e != nil {
			e.vx = 0x180 // 1.5 px/frame right
		}
		return
	}
	p.Spawn(t, 24, y)
}

// SpawnFromRight mirrors SpawnFromLeft.
func (p *Pool) SpawnFromRight(t Type, y int) {
	if TypeDefFor(t).Pattern == PatternLinear {
		if e := p.Spawn(t, 264, y); e != nil {
			e.vx = -0x180
		}
		return
	}
	p.Spawn(t, 200, y)
}

// aiUpdate moves one enemy according to its pattern.
func (p *Pool) aiUpdate(e *Enemy, def TypeDef, playerX int) {
	dy := int(e.vy.Whole())
	dx := int(e.vx.Whole())

	switch def.Pattern {
	case PatternLinear:
		e.Y += dy
		e.X += dx

	case PatternSine:
		e.Y += dy
		e.aiTimer++
		e.X = e.aiCenterX + sineTable[(e.aiTimer>>2)&0x0F]

	case PatternSwoop:
		// Side entry that decelerates laterally into a straight fall.
		e.aiTimer++
		e.Y += dy
		e.X += dx
		if e.aiTimer > 30 && e.aiTimer&7 == 0 {
			switch {
			case e.vx > 0x40:
				e.vx -= 0x40
			case e.vx < -0x40:
				e.vx += 0x40
			default:
				e.vx = 0
			}
		}

	case PatternHover:
		// Descend to the guard line, then patrol between the edges.
		if e.aiState == 0 {
			e.Y += dy
			if e.Y >= 60 {
				e.Y = 60
				e.aiState = 1
				e.vy = 0
				e.vx = core.FixedOne
			}
		} else {
			e.X += dx
			if e.X <= 16 {
				e.X = 16
				e.vx = core.FixedOne
			} else if e.X >= 224 {
				e.X = 224
				e.vx = -core.FixedOne
			}
		}

	case PatternChase:
		// Track the player at ~0.5 px/frame with a deadzone so an aligned
		// chaser does not jitter.
		e.Y += dy
		e.aiTimer++
		if e.aiTimer&1 == 1 {
			if playerX > e.X+4 {
				e.X++
			} else if playerX < e.X-4 {
				e.X--
			}
		}
	}
}

// Update runs one frame for the whole pool: death animations, AI movement,
// off-screen removal, and firing. Hover and chase types fire aimed shots
// at the player; everything else fires straight down.
func (p *Pool) Update(frame, playerX, playerY int) {
	p.frame = frame
	active := 0

	for i := range p.enemies {
		e := &p.enemies[i]
		switch e.State {
		case StateInactive:
			continue
		case StateDying:
			e.flashTimer--
			if e.flashTimer <= 0 {
				e.State = StateInactive
				p.table.Hide(e.slot)
			}
			continue
		}

		active++
		def := typeDefs[e.Type]
		if e.Age < 255 {
			e.Age++
		}

		p.aiUpdate(e, def, playerX)

		// Generous margins let an enemy leave fully before removal. A
		// natural bottom exit pays out a quarter of its score.
		if e.Y > 240 || e.Y < -48 || e.X < -48 || e.X > 288 {
			if e.Y > 240 && p.Hooks.OnEscape != nil {
				p.Hooks.OnEscape(def.Score >> 2)
			}
			e.State = StateInactive
			p.table.Hide(e.slot)
			active--
			continue
		}

		if def.FireRate > 0 {
			// Telegraph: blink for 3 frames before the shot.
			if e.fireTimer == 3 && e.flashTimer == 0 {
				e.flashTimer = 3
			}
			e.fireTimer--
			if e.fireTimer == 0 {
				e.fireTimer = p.fireInterval(def.FireRate)
				if def.Pattern == PatternHover || def.Pattern == PatternChase {
					p.bullets.EnemyFireAimed(e.X+8, e.Y+32, playerX+16, playerY+16)
				} else {
					p.bullets.EnemyFireDown(e.X+8, e.Y+24)
				}
			}
		}

		if e.flashTimer > 0 {
			e.flashTimer--
		}
	}
	p.activeCount = active
}

// Damage applies a hit. Shields absorb one bullet outright; hazards are
// handled by the caller and never reach here. Reports true on a kill, in
// which case the enemy enters its blink-out, longer for quick kills and
// for kills landed mid-flash.
func (p *Pool) Damage(e *Enemy, damage int) bool {
	if e.Shield {
		e.Shield = false
		e.flashTimer = 6
		p.sounds.Push(sfx.Hit)
		return false
	}
	if e.HP <= damage {
		e.HP = 0
		e.State = StateDying
		if e.Age < 90 {
			if e.flashTimer > 0 {
				e.flashTimer = 16
			} else {
				e.flashTimer = 12
			}
		} else {
			if e.flashTimer > 0 {
				e.flashTimer = 14
			} else {
				e.flashTimer = 10
			}
		}
		p.sounds.Push(sfx.Explosion)
		return true
	}
	e.HP -= damage
	e.flashTimer = 6
	p.sounds.Push(sfx.Hit)
	return false
}

// SetFlash starts a damage blink without applying damage. The collision
// pass uses it for evasions.
func (e *Enemy) SetFlash(frames int) {
	e.flashTimer = frames
}

// Deactivate removes an enemy immediately, for contact kills and battle
// handoffs.
func (p *Pool) Deactivate(e *Enemy) {
	e.State = StateInactive
	p.table.Hide(e.slot)
}

// KillAll clears the field instantly, skipping death animations. Used on
// zone and battle transitions.
func (p *Pool) KillAll() {
	for i := range p.enemies {
		p.enemies[i].State = StateInactive
		p.table.Hide(p.enemies[i].slot)
	}
	p.activeCount = 0
}

// Render writes enemy slots: damage blink hides odd flash frames, dying
// enemies shudder sideways while blinking out.
func (p *Pool) Render() {
	for i := range p.enemies {
		e := &p.enemies[i]
		switch e.State {
		case StateInactive:
			p.table.Hide(e.slot)
			continue
		case StateDying:
			if e.flashTimer&1 == 1 || offScreen(e) {
				p.table.Hide(e.slot)
				continue
			}
			shake := -2
			if e.flashTimer&2 != 0 {
				shake = 2
			}
			p.table.Set(e.slot, e.X+shake, e.Y, glyphFor(e), colorFor(e))
			continue
		}
		if e.flashTimer > 0 && e.flashTimer&1 == 1 {
			p.table.Hide(e.slot)
			continue
		}
		if offScreen(e) {
			p.table.Hide(e.slot)
			continue
		}
		p.table.Set(e.slot, e.X, e.Y, glyphFor(e), colorFor(e))
	}
}

func offScreen(e *Enemy) bool {
	return e.Y < -32 || e.Y > 224 || e.X < -32 || e.X > 256
}

func glyphFor(e *Enemy) rune {
	if e.Hazard {
		return 'o'
	}
	switch e.Type {
	case Scout:
		return 'v'
	case Fighter:
		return 'w'
	case Heavy:
		return 'M'
	case Elite:
		return 'Y'
	}
	return '?'
}

func colorFor(e *Enemy) core.Color {
	if e.Golden {
		return core.ColorYellow
	}
	if e.Hazard {
		return core.ColorGray
	}
	switch e.Type {
	case Scout:
		return core.ColorGreen
	case Fighter:
		return core.ColorCyan
	case Heavy:
		return core.ColorBlue
	case Elite:
		return core.ColorRed
	}
	return core.ColorWhite
}

// Enemies exposes the pool for the collision pass.
func (p *Pool) Enemies() []Enemy {
	return p.enemies[:]
}

// ActiveCount reports live enemies as of the last Update. The boss spawner
// waits for this to reach zero.
func (p *Pool) ActiveCount() int {
	return p.activeCount
}
