package battle

import (
	"testing"

	"github.com/stardrift-dev/stardrift/internal/game/bullet"
	"github.com/stardrift-dev/stardrift/internal/game/rpg"
)

func TestBossSetup(t *testing.T) {
	e := testEngine()
	e.StartBoss(0, 0, bullet.WeaponSingle)

	if !e.IsBoss || e.BossName() != "COMMANDER" {
		t.Fatalf("boss = %q (boss=%v), want COMMANDER", e.BossName(), e.IsBoss)
	}
	if e.Enemy.HP != 120 || e.Enemy.ATK != 18 || e.Enemy.DEF != 10 {
		t.Errorf("commander sheet = %+v", e.Enemy)
	}
	if e.XPGained != 100 {
		t.Errorf("XP = %d, want 100", e.XPGained)
	}
}

func TestBossWeaknessStripsArmor(t *testing.T) {
	e := testEngine()
	e.StartBoss(0, 0, bullet.WeaponLaser) // commander folds to the lance

	if e.Enemy.DEF != 6 {
		t.Errorf("DEF = %d, want 10-4", e.Enemy.DEF)
	}

	e.StartBoss(0, 0, bullet.WeaponSpread)
	if e.Enemy.DEF != 10 {
		t.Errorf("DEF = %d, wrong weapon must not strip armor", e.Enemy.DEF)
	}
}

func TestBossPhaseTransitions(t *testing.T) {
	e := testEngine()
	e.StartBoss(2, 2, bullet.WeaponSingle) // flagship, 350 HP

	e.Enemy.HP = 170 // under 50%
	e.updateBossPhase(0)
	if e.boss.phase != bossPhaseEnraged {
		t.Fatalf("phase = %v, want enraged", e.boss.phase)
	}
	// A quarter of the XP pays out at the transition.
	if e.stats.XP != e.XPGained>>2 {
		t.Errorf("partial XP = %d, want %d", e.stats.XP, e.XPGained>>2)
	}
	if !e.Player.Defending {
		t.Error("phase shield must raise the player's guard")
	}

	e.Enemy.HP = 80 // under 25%
	hpBefore := e.Player.HP
	e.updateBossPhase(0)
	if e.boss.phase != bossPhaseDesperate || !e.BossDesperate() {
		t.Fatalf("phase = %v, want desperate", e.boss.phase)
	}
	// Revenge strike, halved through the phase shield.
	if hpBefore-e.Player.HP != 7 {
		t.Errorf("revenge took %d, want 7 while defending", hpBefore-e.Player.HP)
	}
	if e.boss.xpPhasesAwarded != 2 {
		t.Errorf("phases awarded = %d, want 2", e.boss.xpPhasesAwarded)
	}
}

func TestBossTurnSurge(t *testing.T) {
	e := testEngine()
	e.StartBoss(0, 0, bullet.WeaponSingle)
	base := e.Enemy.ATK

	e.Turn = 4
	e.updateBossPhase(0)
	if e.Enemy.ATK != base+2 {
		t.Errorf("ATK = %d, want +2 on turn 4", e.Enemy.ATK)
	}

	// The surge caps at the table ATK plus 20.
	e.Enemy.ATK = bossDefs[0].atk + 20
	e.Turn = 8
	e.updateBossPhase(0)
	if e.Enemy.ATK != bossDefs[0].atk+20 {
		t.Errorf("ATK = %d, want capped", e.Enemy.ATK)
	}
}

func TestBossChargeCombo(t *testing.T) {
	e := testEngine()
	e.StartBoss(0, 0, bullet.WeaponSingle)

	e.resolveBossAction(actionBossCharge, 0)
	if !e.boss.charging || e.boss.chargeBonus == 0 {
		t.Fatal("charge must store a bonus for next turn")
	}
	if e.LastDamage != 0 {
		t.Error("charging deals no damage")
	}

	// The held charge auto-releases as a heavy strike.
	if got := e.chooseBossAction(0); got != actionBossHeavy {
		t.Fatalf("action = %v, want the heavy release", got)
	}

	bonus := e.boss.chargeBonus
	base := damage(e.Enemy.ATK, e.Player.DEF, 0)
	e.resolveBossAction(actionBossHeavy, 0)
	if e.LastDamage != base<<1+bonus {
		t.Errorf("heavy damage = %d, want %d", e.LastDamage, base<<1+bonus)
	}
	if e.boss.chargeBonus != 0 {
		t.Error("the stored charge is spent on release")
	}
}

func TestBossMultiHitParity(t *testing.T) {
	e := testEngine()
	e.StartBoss(0, 0, bullet.WeaponSingle)

	base := damage(e.Enemy.ATK, e.Player.DEF, 0)
	perHit := (base * 3) >> 2
	e.resolveBossAction(actionBossMulti, 0) // even frame: 2 hits
	if e.LastDamage != perHit*2 {
		t.Errorf("even-frame volley = %d, want %d", e.LastDamage, perHit*2)
	}

	e.Player.HP = e.Player.MaxHP
	base = damage(e.Enemy.ATK, e.Player.DEF, 1)
	perHit = (base * 3) >> 2
	e.resolveBossAction(actionBossMulti, 1) // odd frame: 3 hits
	if e.LastDamage != perHit*3 {
		t.Errorf("odd-frame volley = %d, want %d", e.LastDamage, perHit*3)
	}
}

func TestBossDrainHeals(t *testing.T) {
	e := testEngine()
	e.StartBoss(1, 1, bullet.WeaponSingle) // cruiser
	e.Enemy.HP = 100
	e.Enemy.SP = 2

	base := damage(e.Enemy.ATK, e.Player.DEF, 0)
	e.resolveBossAction(actionBossDrain, 0)

	if e.LastDamage != base {
		t.Errorf("drain damage = %d, want %d", e.LastDamage, base)
	}
	if e.Enemy.HP != 100+base>>1 {
		t.Errorf("boss HP = %d, want healed by half the damage", e.Enemy.HP)
	}
	if e.Enemy.SP != 1 {
		t.Errorf("SP = %d, drain costs 1", e.Enemy.SP)
	}
}

func TestBossRepairCooldown(t *testing.T) {
	e := testEngine()
	e.StartBoss(1, 1, bullet.WeaponSingle)
	e.Enemy.HP = 50

	e.resolveBossAction(actionBossRepair, 0)

	want := 50 + e.Enemy.MaxHP>>3 + e.Enemy.MaxHP>>4
	if e.Enemy.HP != want {
		t.Errorf("HP after repair = %d, want %d", e.Enemy.HP, want)
	}
	if e.boss.turnsSinceHeal != 0 {
		t.Error("repair must restart its cooldown")
	}
}

func TestBossVictoryPaysScoreBonus(t *testing.T) {
	e := testEngine()
	var scored int
	e.Hooks.OnScore = func(points int) { scored += points }
	e.StartBoss(0, 0, bullet.WeaponSingle)
	skipIntro(e)

	e.Enemy.HP = 0
	e.State = StateResolve
	e.animTimer = 0
	e.Update(5, noInput())
	if e.State != StateVictory {
		t.Fatalf("state = %v, want victory", e.State)
	}
	if e.DropItem != rpg.ItemRepairKitL {
		t.Errorf("drop = %v, the commander's drop is guaranteed", e.DropItem)
	}

	e.animTimer = 0
	e.Update(5, noInput())

	// 2000 boss bonus plus tripled XP (100 doubled by the turn-1 bonus).
	if scored != 2000+600 {
		t.Errorf("score paid = %d, want 2600", scored)
	}
}
