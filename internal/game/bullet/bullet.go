// Package bullet owns the projectile pool and the player weapon state.
//
// The pool is split into a player region and an enemy region so one side
// running hot can never starve the other. Velocities are 8.8 fixed-point
// with per-bullet sub-pixel accumulators, so fractional speeds move
// smoothly instead of stair-stepping.
package bullet

import (
	"github.com/stardrift-dev/stardrift/internal/core"
	"github.com/stardrift-dev/stardrift/internal/game/sfx"
	"github.com/stardrift-dev/stardrift/internal/game/sprites"
)

// Pool capacities. The regions are fixed at init and never rebalance.
const (
	MaxPlayerBullets = 16
	MaxEnemyBullets  = 8
	MaxBullets       = MaxPlayerBullets + MaxEnemyBullets
)

// Owner tags which side fired a bullet.
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// Type identifies the projectile kind for collision hitbox selection.
type Type uint8

const (
	TypeSingle Type = iota
	TypeSpread
	TypeLaser
	TypeEnemyStraight
	TypeEnemyAimed
)

// Weapon is the player's selected armament.
type Weapon uint8

const (
	WeaponSingle Weapon = iota
	WeaponSpread
	WeaponLaser
	WeaponCount
)

func (w Weapon) String() string {
	switch w {
	case WeaponSingle:
		return "PULSE"
	case WeaponSpread:
		return "SPREAD"
	case WeaponLaser:
		return "LANCE"
	}
	return "?"
}

// Fire cooldowns in frames between shots.
const (
	fireRateSingle = 8
	fireRateSpread = 12
	fireRateLaser  = 13
)

// Velocities, 8.8 fixed-point. Negative Y is upward.
const (
	speedSingleVY  core.Fixed = -4 * core.FixedOne
	speedSpreadVY  core.Fixed = -3 * core.FixedOne
	speedSpreadVX  core.Fixed = core.FixedOne
	speedLaserVY   core.Fixed = -2 * core.FixedOne
	speedEnemyVY   core.Fixed = 2 * core.FixedOne
	speedAimed     core.Fixed = 0x180 // 1.5 px/frame total
	halfSpeedAimed            = int(speedAimed >> 1)
)

// Damage per hit. Spread trades per-bullet damage for coverage; the lance
// compensates its slow rate with weight.
const (
	DamageSingle = 10
	DamageSpread = 6
	DamageLaser  = 25
	DamageEnemy  = 15
)

// Momentum: holding fire this long trims 25% off the cooldown.
const momentumHoldFrames = 30

// Playfield cull bounds, with margin for the projectile's own size.
const (
	cullMargin = 16
	cullMaxY   = 240
	cullMaxX   = 272
)

// Bullet is one pooled projectile. Exported fields are read by the
// collision pass.
type Bullet struct {
	Active bool
	X, Y   int
	Type   Type
	Owner  Owner
	Damage int

	vx, vy core.Fixed
	ax, ay core.Accumulator
	slot   int
}

// WeaponState tracks the selection, cooldown, and the two damage ramps:
// per-weapon mastery kills and the rapid-fire hold counter.
type WeaponState struct {
	Current  Weapon
	Cooldown int

	fireHold int
	kills    [WeaponCount]int
}

// Pool holds all projectiles plus the weapon state, bound to two draw-slot
// ranges.
type Pool struct {
	Weapon WeaponState

	bullets     [MaxBullets]Bullet
	table       *sprites.Table
	sounds      *sfx.Queue
	activeCount int
}

// NewPool binds a projectile pool to its slot ranges and sound queue.
func NewPool(t *sprites.Table, player, enemy sprites.Range, sounds *sfx.Queue) *Pool {
	p := &Pool{table: t, sounds: sounds}
	for i := range p.bullets {
		if i < MaxPlayerBullets {
			p.bullets[i].slot = player.Slot(i)
		} else {
			p.bullets[i].slot = enemy.Slot(i - MaxPlayerBullets)
		}
	}
	p.Reset()
	return p
}

// Reset deactivates every bullet and restores the default weapon.
func (p *Pool) Reset() {
	p.ClearAll()
	p.Weapon = WeaponState{}
}

// alloc claims the first free slot in the owner's region.
func (p *Pool) alloc(owner Owner) *Bullet {
	start, end := 0, MaxPlayerBullets
	if owner == OwnerEnemy {
		start, end = MaxPlayerBullets, MaxBullets
	}
	for i := start; i < end; i++ {
		if !p.bullets[i].Active {
			return &p.bullets[i]
		}
	}
	return nil
}

// spawn fills in a bullet from the owner's region. A full region drops the
// shot silently.
func (p *Pool) spawn(x, y int, vx, vy core.Fixed, typ Type, owner Owner, damage int) {
	b := p.alloc(owner)
	if b == nil {
		return
	}
	slot := b.slot
	*b = Bullet{
		Active: true,
		X:      x,
		Y:      y,
		Type:   typ,
		Owner:  owner,
		Damage: damage,
		vx:     vx,
		vy:     vy,
		slot:   slot,
	}
}

// PlayerFire shoots the current weapon from the ship at (playerX, playerY),
// if the cooldown allows. Damage includes the mastery bonus; holding fire
// past the momentum threshold shortens the next cooldown by a quarter.
func (p *Pool) PlayerFire(playerX, playerY int) {
	if p.Weapon.Cooldown > 0 {
		return
	}
	if p.Weapon.fireHold < 255 {
		p.Weapon.fireHold++
	}

	// Muzzle sits at the center-top of the ship sprite.
	cx := playerX + 8
	cy := playerY - 4

	p.sounds.Push(sfx.PlayerShoot)

	var cooldown int
	switch p.Weapon.Current {
	case WeaponSingle:
		dmg := DamageSingle + p.MasteryBonus(WeaponSingle)
		p.spawn(cx, cy, 0, speedSingleVY, TypeSingle, OwnerPlayer, dmg)
		cooldown = fireRateSingle
	case WeaponSpread:
		dmg := DamageSpread + p.MasteryBonus(WeaponSpread)
		p.spawn(cx, cy, 0, speedSpreadVY, TypeSpread, OwnerPlayer, dmg)
		p.spawn(cx-4, cy, -speedSpreadVX, speedSpreadVY, TypeSpread, OwnerPlayer, dmg)
		p.spawn(cx+4, cy, speedSpreadVX, speedSpreadVY, TypeSpread, OwnerPlayer, dmg)
		cooldown = fireRateSpread
	default:
		dmg := DamageLaser + p.MasteryBonus(WeaponLaser)
		p.spawn(cx, cy, 0, speedLaserVY, TypeLaser, OwnerPlayer, dmg)
		cooldown = fireRateLaser
	}

	if p.Weapon.fireHold > momentumHoldFrames {
		cooldown -= cooldown >> 2
	}
	p.Weapon.Cooldown = cooldown
}

// EnemyFireDown drops a straight bullet from an enemy at (ex, ey).
func (p *Pool) EnemyFireDown(ex, ey int) {
	p.sounds.Push(sfx.EnemyShoot)
	p.spawn(ex, ey+8, 0, speedEnemyVY, TypeEnemyStraight, OwnerEnemy, DamageEnemy)
}

// recipLUT[d] approximates 256/d, saturated to 255. Index 0 is unused.
var recipLUT = [128]uint8{
	255, 255, 128, 85, 64, 51, 42, 36,
	32, 28, 25, 23, 21, 19, 18, 17,
	16, 15, 14, 13, 12, 12, 11, 11,
	10, 10, 9, 9, 9, 8, 8, 8,
	8, 7, 7, 7, 7, 6, 6, 6,
	6, 6, 6, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 3,
	4, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2,
}

// EnemyFireAimed shoots toward (targetX, targetY) using reciprocal-table
// normalization: halve the direction components until both fit the table
// domain, then scale by the dominant axis reciprocal. The result is an
// approximate unit vector at the aimed speed with about 2% magnitude error.
func (p *Pool) EnemyFireAimed(ex, ey, targetX, targetY int) {
	dx := targetX - ex
	dy := targetY - ey

	absDX := dx
	if absDX < 0 {
		absDX = -absDX
	}
	absDY := dy
	if absDY < 0 {
		absDY = -absDY
	}
	maxD := absDX
	if absDY > maxD {
		maxD = absDY
	}

	for absDX > 127 || absDY > 127 {
		dx >>= 1
		dy >>= 1
		absDX >>= 1
		absDY >>= 1
		maxD >>= 1
	}
	if maxD == 0 {
		maxD = 1
	}

	inv := int(recipLUT[maxD])
	vx := core.Fixed((dx*halfSpeedAimed*inv)>>8) << 1
	vy := core.Fixed((dy*halfSpeedAimed*inv)>>8) << 1

	p.sounds.Push(sfx.EnemyShoot)
	p.spawn(ex, ey, vx, vy, TypeEnemyAimed, OwnerEnemy, DamageEnemy)
}

// Update moves every bullet, culls the ones that leave the playfield
// margin, and ticks the fire cooldown.
func (p *Pool) Update() {
	if p.Weapon.Cooldown > 0 {
		p.Weapon.Cooldown--
	}

	active := 0
	for i := range p.bullets {
		b := &p.bullets[i]
		if !b.Active {
			continue
		}
		b.X += b.ax.Add(b.vx)
		b.Y += b.ay.Add(b.vy)
		if b.Y < -cullMargin || b.Y > cullMaxY || b.X < -cullMargin || b.X > cullMaxX {
			b.Active = false
			continue
		}
		active++
	}
	p.activeCount = active
}

// Render writes bullet slots, hiding inactive entries so no stale glyph
// lingers.
func (p *Pool) Render() {
	for i := range p.bullets {
		b := &p.bullets[i]
		if !b.Active {
			p.table.Hide(b.slot)
			continue
		}
		p.table.Set(b.slot, b.X, b.Y, glyphFor(b.Type), colorFor(b.Type))
	}
}

func glyphFor(t Type) rune {
	switch t {
	case TypeSingle:
		return '|'
	case TypeSpread:
		return '^'
	case TypeLaser:
		return '#'
	}
	return '*'
}

func colorFor(t Type) core.Color {
	switch t {
	case TypeSingle, TypeSpread:
		return core.ColorCyan
	case TypeLaser:
		return core.ColorMagenta
	}
	return core.ColorRed
}

// ClearAll deactivates every bullet. Used on scene transitions.
func (p *Pool) ClearAll() {
	for i := range p.bullets {
		p.bullets[i].Active = false
		p.bullets[i].ax.Reset()
		p.bullets[i].ay.Reset()
	}
	p.activeCount = 0
}

// NextWeapon cycles forward through the armament, clearing the cooldown so
// switching carries no delay penalty.
func (p *Pool) NextWeapon() {
	p.Weapon.Current++
	if p.Weapon.Current >= WeaponCount {
		p.Weapon.Current = 0
	}
	p.Weapon.Cooldown = 0
}

// PrevWeapon cycles backward.
func (p *Pool) PrevWeapon() {
	if p.Weapon.Current == 0 {
		p.Weapon.Current = WeaponCount - 1
	} else {
		p.Weapon.Current--
	}
	p.Weapon.Cooldown = 0
}

// MasteryBonus is the flat damage bonus earned by kills with a weapon:
// +1 at 10 kills, +2 at 25, +3 at 50.
func (p *Pool) MasteryBonus(w Weapon) int {
	if w >= WeaponCount {
		return 0
	}
	kills := p.Weapon.kills[w]
	switch {
	case kills >= 50:
		return 3
	case kills >= 25:
		return 2
	case kills >= 10:
		return 1
	}
	return 0
}

// AddWeaponKill credits a kill to the current weapon. Called by the
// collision pass on enemy destruction.
func (p *Pool) AddWeaponKill() {
	w := p.Weapon.Current
	if w < WeaponCount && p.Weapon.kills[w] < 0xFFFF {
		p.Weapon.kills[w]++
	}
}

// WeaponKills reports the mastery counters, for save data and the HUD.
func (p *Pool) WeaponKills() [WeaponCount]int {
	return p.Weapon.kills
}

// SetWeaponKills restores mastery counters from save data.
func (p *Pool) SetWeaponKills(kills [WeaponCount]int) {
	p.Weapon.kills = kills
}

// ResetMomentum clears the rapid-fire hold counter. Called when the fire
// button is released.
func (p *Pool) ResetMomentum() {
	p.Weapon.fireHold = 0
}

// Bullets exposes the pool for the collision pass.
func (p *Pool) Bullets() []Bullet {
	return p.bullets[:]
}

// ActiveCount reports live bullets as of the last Update.
func (p *Pool) ActiveCount() int {
	return p.activeCount
}
