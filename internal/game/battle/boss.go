package battle

import (
	"fmt"

	"github.com/stardrift-dev/stardrift/internal/game/bullet"
	"github.com/stardrift-dev/stardrift/internal/game/rpg"
	"github.com/stardrift-dev/stardrift/internal/game/sfx"
)

// Boss AI phases, entered at HP thresholds and never left.
type bossPhase uint8

const (
	bossPhaseNormal bossPhase = iota
	bossPhaseEnraged
	bossPhaseDesperate
)

type bossDef struct {
	hp, atk, def, spd, sp int
	xp                    int
	drop                  rpg.Item
	name                  string
	weakness              bullet.Weapon
}

// bossDefs holds the three zone bosses. Drops are guaranteed, and each
// boss folds to a different weapon so the player has a reason to switch.
var bossDefs = [3]bossDef{
	{120, 18, 10, 8, 3, 100, rpg.ItemRepairKitL, "COMMANDER", bullet.WeaponLaser},
	{200, 22, 18, 6, 4, 200, rpg.ItemSPCharge, "CRUISER", bullet.WeaponSpread},
	{350, 30, 22, 12, 6, 400, rpg.ItemFullRestore, "FLAGSHIP", bullet.WeaponSingle},
}

// bossState is the boss-only runtime riding alongside the generic enemy
// combatant.
type bossState struct {
	zone            int
	name            string
	phase           bossPhase
	charging        bool
	chargeBonus     int
	turnsSinceHeal  int
	xpPhasesAwarded int
	dropItem        rpg.Item
}

func (b *bossState) setup(zone int) bossDef {
	if zone < 0 || zone >= len(bossDefs) {
		zone = 0
	}
	def := bossDefs[zone]
	*b = bossState{zone: zone, name: def.name, dropItem: def.drop}
	return def
}

// BossName returns the active boss's display name, empty outside boss
// battles.
func (e *Engine) BossName() string {
	if !e.IsBoss {
		return ""
	}
	return e.boss.name
}

// BossDesperate reports the final phase, for the flickering sprite cue.
func (e *Engine) BossDesperate() bool {
	return e.IsBoss && e.boss.phase == bossPhaseDesperate
}

// updateBossPhase moves the AI phase forward on HP thresholds and applies
// the per-4-turn pressure ramp. Runs at the top of every boss turn.
func (e *Engine) updateBossPhase(frame int) {
	old := e.boss.phase
	quarter := e.Enemy.MaxHP >> 2

	switch {
	case e.Enemy.HP <= quarter:
		e.boss.phase = bossPhaseDesperate
	case e.Enemy.HP <= quarter<<1:
		e.boss.phase = bossPhaseEnraged
	default:
		e.boss.phase = bossPhaseNormal
	}

	if e.boss.phase > old {
		if e.boss.phase == bossPhaseEnraged {
			// Estimate turns until the desperate phase at ~10 HP a turn.
			est := (e.Enemy.HP - quarter) / 10
			if est < 1 {
				est = 1
			}
			if est > 9 {
				est = 9
			}
			e.Message = fmt.Sprintf("POWERS UP! ~%dT", est)

			if e.boss.xpPhasesAwarded < 1 {
				e.stats.AddXP(e.XPGained >> 2)
				e.boss.xpPhasesAwarded = 1
			}
		} else {
			// Entering the last phase lashes out immediately.
			revenge := 15
			if e.Player.Defending {
				revenge >>= 1
			}
			e.Player.HP -= revenge
			if e.Player.HP < 1 {
				e.Player.HP = 1
			}
			e.LastDamage = revenge
			e.Message = "REVENGE STRIKE!"

			if e.boss.xpPhasesAwarded < 2 {
				e.stats.AddXP(e.XPGained >> 2)
				e.boss.xpPhasesAwarded = 2
			}
		}
		e.sounds.Push(sfx.Explosion)
		e.brightness = 15
		// Phase shield: the player guards through the transition burst.
		e.Player.Defending = true
	}

	// Turtling is punished: +2 ATK every fourth turn, capped.
	if e.Turn&3 == 0 && e.Turn > 0 {
		maxATK := bossDefs[e.boss.zone].atk + 20
		if e.Enemy.ATK < maxATK {
			e.Enemy.ATK += 2
			if e.Enemy.ATK > maxATK {
				e.Enemy.ATK = maxATK
			}
			e.Message = e.boss.name + " POWER SURGES!"
		}
	}
}

// chooseBossAction picks a move from the phase's weighted table. A charge
// held from last turn always releases as a heavy strike.
func (e *Engine) chooseBossAction(frame int) Action {
	if e.boss.charging {
		e.boss.charging = false
		return actionBossHeavy
	}
	e.boss.turnsSinceHeal++

	r := (frame*7 + e.Turn*13) & 0x0F
	canHeal := e.boss.turnsSinceHeal >= 3
	hasSP := e.Enemy.SP > 0

	switch e.boss.phase {
	case bossPhaseNormal:
		switch {
		case r < 6:
			return ActionAttack
		case r < 9 && hasSP:
			return ActionSpecial
		case r < 11:
			return actionBossHeavy
		case r < 13:
			return ActionDefend
		}
		return ActionAttack

	case bossPhaseEnraged:
		switch {
		case r < 4:
			return ActionAttack
		case r < 7 && hasSP:
			return actionBossMulti
		case r < 10:
			return actionBossHeavy
		case r < 12 && hasSP:
			return ActionSpecial
		case r < 14 && canHeal:
			return actionBossRepair
		}
		return ActionAttack

	default: // desperate
		switch {
		case r < 3 && hasSP:
			return actionBossDrain
		case r < 5:
			return actionBossCharge
		case r < 8 && hasSP:
			return actionBossMulti
		case r < 11:
			return actionBossHeavy
		case r < 13 && canHeal:
			return actionBossRepair
		}
		return ActionAttack
	}
}

// resolveBossAction applies the boss-only attacks. The shared damage
// formula supplies the base; each attack shapes it.
func (e *Engine) resolveBossAction(action Action, frame int) {
	def := e.Player.DEF
	if e.Player.Defending {
		def <<= 1
	}
	base := damage(e.Enemy.ATK, def, frame)

	switch action {
	case actionBossHeavy:
		dmg := base << 1
		if e.boss.chargeBonus > 0 {
			dmg += e.boss.chargeBonus
			e.boss.chargeBonus = 0
		}
		e.applyDamage(&e.Player, dmg)
		e.Message = e.boss.name + " STRIKES!"
		e.sounds.Push(sfx.Hit)

	case actionBossMulti:
		hits := 2 + frame&1
		perHit := (base * 3) >> 2
		if perHit < 1 {
			perHit = 1
		}
		total := 0
		for h := 0; h < hits; h++ {
			e.Player.HP -= perHit
			if e.Player.HP < 0 {
				e.Player.HP = 0
			}
			total += perHit
		}
		e.LastDamage = total
		e.Message = fmt.Sprintf("%s FIRE x%d!", e.boss.name, hits)
		e.sounds.Push(sfx.Hit)
		if e.Enemy.SP > 0 {
			e.Enemy.SP--
		}

	case actionBossDrain:
		heal := base >> 1
		if heal < 1 {
			heal = 1
		}
		e.applyDamage(&e.Player, base)
		e.Enemy.HP += heal
		if e.Enemy.HP > e.Enemy.MaxHP {
			e.Enemy.HP = e.Enemy.MaxHP
		}
		e.Message = e.boss.name + " DRAINS!"
		e.sounds.Push(sfx.Hit)
		if e.Enemy.SP > 0 {
			e.Enemy.SP--
		}

	case actionBossCharge:
		e.boss.charging = true
		e.boss.chargeBonus = base
		e.LastDamage = 0
		e.Message = e.boss.name + " CHARGES!"
		e.sounds.Push(sfx.EnemyShoot)

	case actionBossRepair:
		heal := e.Enemy.MaxHP>>3 + e.Enemy.MaxHP>>4
		if heal < 1 {
			heal = 1
		}
		e.Enemy.HP += heal
		if e.Enemy.HP > e.Enemy.MaxHP {
			e.Enemy.HP = e.Enemy.MaxHP
		}
		e.LastDamage = 0
		e.boss.turnsSinceHeal = 0
		e.Message = e.boss.name + " REPAIRS!"
		e.sounds.Push(sfx.Heal)
	}
}
