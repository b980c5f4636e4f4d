// Package collision runs the three per-frame overlap passes (player shots
// against enemies, enemy shots against the ship, hull contact) and owns
// the flight score: combo multipliers, kill streaks, grazes, and the wave
// and milestone bonuses that hang off kills.
package collision

import (
	"github.com/stardrift-dev/stardrift/internal/core"
	"github.com/stardrift-dev/stardrift/internal/game/bullet"
	"github.com/stardrift-dev/stardrift/internal/game/enemy"
	"github.com/stardrift-dev/stardrift/internal/game/player"
	"github.com/stardrift-dev/stardrift/internal/game/rpg"
	"github.com/stardrift-dev/stardrift/internal/game/sfx"
)

// Hitboxes are smaller than the sprites they guard; the offsets center
// them on the visual. Bullets get a tight core box, the lance a wider one.
var (
	hbPlayer = hitbox{8, 8, 16, 16}
	hbEnemy  = hitbox{4, 4, 24, 24}
	hbBullet = hitbox{4, 4, 8, 8}
	hbLaser  = hitbox{2, 2, 12, 12}
	// Graze detection runs against a box 6 px fatter than the player's on
	// every side.
	hbGraze = hitbox{2, 2, 28, 28}
)

type hitbox struct {
	offX, offY, w, h int
}

func (h hitbox) at(x, y int) core.Rect {
	return core.Rect{X: x + h.offX, Y: y + h.offY, W: h.w, H: h.h}
}

// MaxScore is the display cap; all additions saturate against it.
const MaxScore = 0xFFFF

// GrazeScore pays out per bullet that brushes the graze box without
// connecting.
const GrazeScore = 25

// Hooks are the outward edges of the collision pass.
type Hooks struct {
	// OnBattleTrigger hands a contact with a fighter-class or better
	// enemy to the battle layer.
	OnBattleTrigger func(t enemy.Type, golden bool)
	// OnFlash requests a one-frame brightness pulse.
	OnFlash func()
	// OnPlayerHit fires when an enemy shot or hull contact lands, for the
	// no-damage zone bonus bookkeeping.
	OnPlayerHit func()
}

// Tracker is the flight scoring state.
type Tracker struct {
	Score       int
	ScreenShake int
	MaxCombo    int

	comboCount        int
	comboTimer        int
	comboMultiplier   int
	comboDisplayTimer int
	killStreak        int
	bonusTimer        int

	weaponComboBuf [3]int
	weaponComboIdx int

	waveEnemyCount int
	waveKillCount  int
	waveTimer      int
}

// System wires the collision passes to the pools and the progression
// layer.
type System struct {
	Tracker Tracker
	Hooks   Hooks

	bullets *bullet.Pool
	enemies *enemy.Pool
	ship    *player.Ship
	stats   *rpg.Stats
	inv     *rpg.Inventory
	sounds  *sfx.Queue

	grazeMask uint8
}

// New builds the collision system over the live pools.
func New(bullets *bullet.Pool, enemies *enemy.Pool, ship *player.Ship, stats *rpg.Stats, inv *rpg.Inventory, sounds *sfx.Queue) *System {
	s := &System{bullets: bullets, enemies: enemies, ship: ship, stats: stats, inv: inv, sounds: sounds}
	s.Reset()
	return s
}

// Reset zeroes the scoring state for a new run.
func (s *System) Reset() {
	s.Tracker = Tracker{weaponComboBuf: [3]int{-1, -1, -1}}
}

// AddScore adds points with saturation at the display cap.
func (s *System) AddScore(points int) {
	s.Tracker.Score += points
	if s.Tracker.Score > MaxScore {
		s.Tracker.Score = MaxScore
	}
}

// NoteWaveSpawn counts a spawned enemy toward the wave-clear bonus and
// restarts its 5-second window. Wired to the enemy pool's spawn hook.
func (s *System) NoteWaveSpawn() {
	s.Tracker.waveEnemyCount++
	s.Tracker.waveTimer = 300
}

// StartBonusWindow opens a 120-frame double-score period.
func (s *System) StartBonusWindow() {
	s.Tracker.bonusTimer = 120
	s.sounds.Push(sfx.LevelUp)
}

// ComboCount reports the current chain length for the HUD.
func (s *System) ComboCount() int {
	return s.Tracker.comboCount
}

// ComboMultiplier reports the active multiplier, 0 when no chain runs.
func (s *System) ComboMultiplier() int {
	return s.Tracker.comboMultiplier
}

// ComboVisible reports whether the HUD should show the multiplier.
func (s *System) ComboVisible() bool {
	return s.Tracker.comboDisplayTimer > 0
}

// BonusActive reports whether the double-score window is open.
func (s *System) BonusActive() bool {
	return s.Tracker.bonusTimer > 0
}

// CheckAll runs one frame of collision. Timer decay happens first, then
// the three overlap passes. Enemy bullets are always tested because they
// outlive their spawners.
func (s *System) CheckAll(frame int) {
	t := &s.Tracker

	if t.comboTimer > 0 {
		t.comboTimer--
		if t.comboTimer == 0 {
			// Long chains get a grace window at 1x instead of a hard drop.
			if t.comboCount >= 5 && t.comboMultiplier > 1 {
				t.comboMultiplier = 1
				t.comboTimer = 30
			} else {
				t.comboCount = 0
				t.comboMultiplier = 0
			}
		}
	}
	if t.comboDisplayTimer > 0 {
		t.comboDisplayTimer--
	}
	if t.bonusTimer > 0 {
		t.bonusTimer--
	}
	if t.waveTimer > 0 {
		t.waveTimer--
		if t.waveTimer == 0 {
			t.waveEnemyCount = 0
			t.waveKillCount = 0
		}
	}
	if t.ScreenShake > 0 {
		t.ScreenShake--
	}

	s.checkPlayerBulletsVsEnemies(frame)
	s.checkPlayerVsEnemies()
	s.checkEnemyBulletsVsPlayer()
}

func (s *System) checkPlayerBulletsVsEnemies(frame int) {
	bullets := s.bullets.Bullets()
	enemies := s.enemies.Enemies()

	for bi := range bullets {
		b := &bullets[bi]
		if !b.Active || b.Owner != bullet.OwnerPlayer {
			continue
		}
		if b.Y < -8 || b.Y > 232 || b.X < -8 || b.X > 264 {
			continue
		}

		bh := hbBullet
		if b.Type == bullet.TypeLaser {
			bh = hbLaser
		}
		bbox := bh.at(b.X, b.Y)

		for ei := range enemies {
			e := &enemies[ei]
			if e.State != enemy.StateActive || e.Hazard {
				continue
			}
			if !bbox.Intersects(hbEnemy.at(e.X, e.Y)) {
				continue
			}

			b.Active = false

			// Elites slip roughly a fifth of incoming shots.
			if e.Type == enemy.Elite && frame&4 == 0 && !e.Shield {
				e.SetFlash(3)
				break
			}

			overkill := 0
			if b.Damage > e.HP && !e.Shield {
				overkill = (b.Damage - e.HP) * 10
			}

			if s.enemies.Damage(e, b.Damage) {
				s.scoreKill(e, overkill, frame)
			}
			break
		}
	}
}

// scoreKill applies every bonus that hangs off a destroyed enemy.
func (s *System) scoreKill(e *enemy.Enemy, overkill, frame int) {
	t := &s.Tracker
	base := enemy.TypeDefFor(e.Type).Score

	if e.Golden {
		base *= 3
		// Half of golden kills grant a mercy shield.
		if frame&1 == 0 {
			s.ship.MakeInvincible(60)
			s.sounds.Push(sfx.Heal)
		}
	}
	if e.Age < 90 {
		base <<= 1
	}

	t.comboCount++
	mult := t.comboCount
	if mult > 4 {
		mult = 4
	}
	t.comboMultiplier = mult
	// The window shrinks as the multiplier climbs: 52/44/36/36 frames.
	t.comboTimer = 60 - mult<<3
	if t.comboTimer < 36 {
		t.comboTimer = 36
	}
	t.comboDisplayTimer = 30
	if mult >= 2 {
		s.ship.ComboFlash = 6
	}

	add := base * mult

	// Every 5 kills without taking a hit adds +25%, up to +100%.
	t.killStreak++
	if streakBonus := min4(t.killStreak / 5); streakBonus > 0 {
		add += (add >> 2) * streakBonus
	}

	add += overkill
	if t.bonusTimer > 0 {
		add <<= 1
	}
	s.AddScore(add)

	switch t.comboCount {
	case 5:
		s.comboMilestone(500)
	case 10:
		s.comboMilestone(1500)
	case 15:
		s.comboMilestone(5000)
	}

	s.stats.TotalKills++
	switch s.stats.TotalKills {
	case 10:
		s.killMilestone(rpg.ItemRepairKitS)
	case 25:
		s.killMilestone(rpg.ItemRepairKitL)
	case 50:
		s.killMilestone(rpg.ItemSPCharge)
	case 100:
		s.killMilestone(rpg.ItemFullRestore)
	}

	if t.comboCount > t.MaxCombo {
		t.MaxCombo = t.comboCount
	}

	s.bullets.AddWeaponKill()

	// Landing kills with all three weapons inside a 3-kill window pays the
	// full-arsenal bonus once.
	t.weaponComboBuf[t.weaponComboIdx] = int(s.bullets.Weapon.Current)
	t.weaponComboIdx++
	if t.weaponComboIdx >= 3 {
		t.weaponComboIdx = 0
	}
	buf := t.weaponComboBuf
	if buf[0] != buf[1] && buf[1] != buf[2] && buf[0] != buf[2] && buf[0] >= 0 && buf[1] >= 0 && buf[2] >= 0 {
		s.AddScore(1000)
		s.sounds.Push(sfx.LevelUp)
		w := int(s.bullets.Weapon.Current)
		t.weaponComboBuf = [3]int{w, w, w}
	}

	// Wiping a wave of 3+ inside its window pays a burst bonus.
	t.waveKillCount++
	if t.waveKillCount >= t.waveEnemyCount && t.waveEnemyCount >= 3 && t.waveTimer > 0 {
		s.AddScore(500)
		s.sounds.Push(sfx.LevelUp)
		t.ScreenShake = 4
		t.waveEnemyCount = 0
		t.waveKillCount = 0
		t.waveTimer = 0
	}

	// Each kill defuses one enemy bullet in flight.
	ebs := s.bullets.Bullets()
	for i := range ebs {
		if ebs[i].Active && ebs[i].Owner == bullet.OwnerEnemy {
			ebs[i].Active = false
			break
		}
	}

	if t.comboCount >= 3 && s.Hooks.OnFlash != nil {
		s.Hooks.OnFlash()
	}
}

func (s *System) comboMilestone(bonus int) {
	s.AddScore(bonus)
	s.sounds.Push(sfx.LevelUp)
	if s.stats.SP < s.stats.MaxSP {
		s.stats.SP++
	}
}

func (s *System) killMilestone(item rpg.Item) {
	if s.inv.Add(item, 1) == rpg.AddConverted {
		s.stats.AddCredits(rpg.FullBagCredits)
	}
	s.sounds.Push(sfx.LevelUp)
	if s.Hooks.OnFlash != nil {
		s.Hooks.OnFlash()
	}
}

func (s *System) checkEnemyBulletsVsPlayer() {
	if s.ship.InvincibleTimer > 0 || !s.ship.Visible {
		return
	}

	pbox := hbPlayer.at(s.ship.X, s.ship.Y)
	gbox := hbGraze.at(s.ship.X, s.ship.Y)
	bullets := s.bullets.Bullets()
	s.grazeMask = 0

	for bi := range bullets {
		b := &bullets[bi]
		if !b.Active || b.Owner != bullet.OwnerEnemy {
			continue
		}
		if b.Y < -8 || b.Y > 232 {
			continue
		}

		bbox := hbBullet.at(b.X, b.Y)
		if bbox.Intersects(pbox) {
			b.Active = false
			s.sounds.Push(sfx.Hit)
			s.ship.MakeInvincible(120)
			s.Tracker.ScreenShake = 6
			s.Tracker.killStreak = 0
			if s.Hooks.OnPlayerHit != nil {
				s.Hooks.OnPlayerHit()
			}
			break // one hit per frame
		}

		// Near miss inside the graze box pays out once per bullet.
		bit := uint8(1) << uint(bi%8)
		if s.grazeMask&bit == 0 && bbox.Intersects(gbox) {
			s.grazeMask |= bit
			s.AddScore(GrazeScore)
		}
	}
}

func (s *System) checkPlayerVsEnemies() {
	if s.ship.InvincibleTimer > 0 || !s.ship.Visible {
		return
	}

	pbox := hbPlayer.at(s.ship.X, s.ship.Y)
	enemies := s.enemies.Enemies()

	for ei := range enemies {
		e := &enemies[ei]
		if e.State != enemy.StateActive {
			continue
		}
		if !pbox.Intersects(hbEnemy.at(e.X, e.Y)) {
			continue
		}

		s.Tracker.killStreak = 0
		if s.Hooks.OnPlayerHit != nil {
			s.Hooks.OnPlayerHit()
		}

		if e.Type >= enemy.Fighter {
			// Fighter-class and up: ramming starts a boarding action.
			if s.Hooks.OnBattleTrigger != nil {
				s.Hooks.OnBattleTrigger(e.Type, e.Golden)
			}
			s.enemies.Deactivate(e)
		} else {
			// Scouts shatter on the hull.
			s.ship.MakeInvincible(120)
			s.AddScore(enemy.TypeDefFor(e.Type).Score)
			s.Tracker.ScreenShake = 6
			s.sounds.Push(sfx.Hit)
			s.enemies.Deactivate(e)
		}
		break // one contact per frame
	}
}

func min4(v int) int {
	if v > 4 {
		return 4
	}
	return v
}
