// Package battle runs the turn-based boarding actions that interrupt
// flight when the ship rams a fighter-class enemy or reaches a zone boss.
// The engine is a frame-driven state machine: INIT, alternating turns with
// short action and resolve delays, then VICTORY, DEFEAT, or a flee. All
// presentation happens elsewhere; the engine exposes its message line,
// menus, and combatant sheets as plain fields.
package battle

import (
	"fmt"

	"github.com/stardrift-dev/stardrift/internal/core"
	"github.com/stardrift-dev/stardrift/internal/game/bullet"
	"github.com/stardrift-dev/stardrift/internal/game/enemy"
	"github.com/stardrift-dev/stardrift/internal/game/rpg"
	"github.com/stardrift-dev/stardrift/internal/game/sfx"
)

// PilotName is the callsign shown in battle messages.
const PilotName = "KAI"

// State identifies the engine's current phase.
type State uint8

const (
	StateNone State = iota
	StateInit
	StatePlayerTurn
	StatePlayerAct
	StateEnemyTurn
	StateEnemyAct
	StateResolve
	StateItemSelect
	StateVictory
	StateLevelUp
	StateDefeat
	StateExit
)

// Action is a menu entry. The fourth slot doubles as FLEE in normal
// battles and ITEM in boss battles, where running is not an option.
type Action uint8

const (
	ActionAttack Action = iota
	ActionSpecial
	ActionDefend
	ActionItem
	ActionCount
)

// Boss-only actions start above the menu range.
const (
	actionBossHeavy Action = 10 + iota
	actionBossMulti
	actionBossDrain
	actionBossCharge
	actionBossRepair
)

// Outcome reports how a finished battle ended.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeFled
)

// Display timers in frames.
const (
	introDelay   = 60
	actDelay     = 15
	resolveDelay = 30
	bannerDelay  = 90
	fleeDelay    = 30
)

// Combatant is one side of the fight. The player copy is seeded from the
// persistent sheet on Start and synced back when the battle ends; item
// boosts applied mid-battle are deliberately not persisted.
type Combatant struct {
	HP, MaxHP  int
	ATK, DEF   int
	SPD        int
	SP, MaxSP  int
	Defending  bool
	IsPlayer   bool
	PoisonTurn int
}

// battleStats holds each archetype's turn-based stat block, separate from
// the flight-mode definitions. HP, ATK, DEF, SPD, SP.
var battleStats = [4][5]int{
	{30, 8, 3, 5, 0},
	{60, 14, 8, 10, 2},
	{100, 20, 15, 6, 3},
	{80, 18, 10, 14, 4},
}

// xpAwards per archetype, before zone and turn bonuses.
var xpAwards = [4]int{15, 30, 50, 75}

var enemyNames = [4]string{"SCOUT", "FIGHTER", "CRUISER", "ELITE"}

// poisonDamage per ticking turn; defending removes an extra turn.
const poisonDamage = 3

// ItemChoice is one row of the in-battle item sub-menu.
type ItemChoice struct {
	Item rpg.Item
	Qty  int
}

// Hooks are the engine's outward edges.
type Hooks struct {
	// OnScore pays flight score from battle results.
	OnScore func(points int)
}

// Engine is the live battle. Exported fields feed the battle screen
// renderer directly.
type Engine struct {
	State     State
	Outcome   Outcome
	Player    Combatant
	Enemy     Combatant
	EnemyType enemy.Type
	IsBoss    bool

	Turn       int
	MenuCursor int
	Message    string
	LastDamage int // negative values are heals
	XPGained   int
	LeveledTo  int
	DropItem   rpg.Item

	ItemCursor  int
	ItemChoices []ItemChoice

	Hooks Hooks

	stats  *rpg.Stats
	inv    *rpg.Inventory
	sounds *sfx.Queue

	boss bossState
	zone int

	animTimer      int
	playerAction   Action
	enemyAction    Action
	lastActorEnemy bool
	defendCarry    bool
	enemyEnraged   bool
	enemyBaseATK   int
	fleeAttempts   int
	attackStreak   int
	brightness     int
}

// NewEngine wires the battle layer to the persistent progression state.
func NewEngine(stats *rpg.Stats, inv *rpg.Inventory, sounds *sfx.Queue) *Engine {
	return &Engine{stats: stats, inv: inv, sounds: sounds, brightness: 15}
}

// Active reports whether a battle is running.
func (e *Engine) Active() bool { return e.State != StateNone }

// Brightness is the screen level the renderer should compose at, 0-15.
// The engine pulses it during level-up and defeat banners.
func (e *Engine) Brightness() int { return e.brightness }

// EnemyName is the opponent's display name for the battle screen.
func (e *Engine) EnemyName() string {
	if e.IsBoss {
		return e.boss.name
	}
	return enemyNames[e.EnemyType]
}

// Start opens a battle against a normal enemy. The active weapon grants a
// stat lean: the pulse cannon +2 ATK, the lance +4 ATK, the spread +3 DEF.
func (e *Engine) Start(t enemy.Type, zone int, weapon bullet.Weapon) {
	e.begin(zone, weapon)

	if t >= enemy.TypeCount {
		t = enemy.Scout
	}
	e.EnemyType = t
	row := battleStats[t]
	e.Enemy = Combatant{
		HP: row[0], MaxHP: row[0],
		ATK: row[1], DEF: row[2], SPD: row[3],
		SP: row[4], MaxSP: row[4],
	}

	e.XPGained = xpAwards[t]
	switch {
	case zone == 1:
		e.XPGained += e.XPGained >> 1
	case zone >= 2:
		e.XPGained += e.XPGained>>1 + e.XPGained>>2
	}

	// Later zones field tougher crews.
	switch {
	case zone == 1:
		e.Enemy.HP += e.Enemy.HP >> 2
		e.Enemy.MaxHP = e.Enemy.HP
		e.Enemy.ATK += e.Enemy.ATK >> 2
	case zone >= 2:
		e.Enemy.HP += e.Enemy.HP >> 1
		e.Enemy.MaxHP = e.Enemy.HP
		e.Enemy.ATK += e.Enemy.ATK >> 1
	}

	e.finishStart(zone)
}

// StartBoss opens the zone-end boss battle.
func (e *Engine) StartBoss(bossZone, zone int, weapon bullet.Weapon) {
	e.begin(zone, weapon)
	e.IsBoss = true
	e.EnemyType = enemy.Scout // battle sprite slot; the name comes from the boss table

	def := e.boss.setup(bossZone)
	e.Enemy = Combatant{
		HP: def.hp, MaxHP: def.hp,
		ATK: def.atk, DEF: def.def, SPD: def.spd,
		SP: def.sp, MaxSP: def.sp,
	}
	e.XPGained = def.xp

	// Matching the boss's weakness with the equipped weapon strips armor.
	if weapon == def.weakness {
		e.Enemy.DEF -= 4
		if e.Enemy.DEF < 0 {
			e.Enemy.DEF = 0
		}
	}

	e.finishStart(zone)
}

func (e *Engine) begin(zone int, weapon bullet.Weapon) {
	e.State = StateInit
	e.Outcome = OutcomeNone
	e.Turn = 1
	e.MenuCursor = 0
	e.LastDamage = 0
	e.LeveledTo = 0
	e.DropItem = rpg.ItemNone
	e.IsBoss = false
	e.lastActorEnemy = false
	e.defendCarry = false
	e.enemyEnraged = false
	e.fleeAttempts = 0
	e.attackStreak = 0
	e.brightness = 15
	e.zone = zone

	e.Player = Combatant{
		HP: e.stats.HP, MaxHP: e.stats.MaxHP,
		ATK: e.stats.ATK, DEF: e.stats.DEF, SPD: e.stats.SPD,
		SP: e.stats.SP, MaxSP: e.stats.MaxSP,
		IsPlayer: true,
	}
	switch weapon {
	case bullet.WeaponSingle:
		e.Player.ATK += 2
	case bullet.WeaponLaser:
		e.Player.ATK += 4
	case bullet.WeaponSpread:
		e.Player.DEF += 3
	}
}

func (e *Engine) finishStart(zone int) {
	// Repeated defeats soften the opposition a little.
	if e.stats.DifficultyAssist() {
		e.Enemy.ATK -= e.Enemy.ATK >> 3
	}
	e.enemyBaseATK = e.Enemy.ATK

	encounters := [3]string{"DEBRIS ENCOUNTER!", "ASTEROID AMBUSH!", "FLAGSHIP ASSAULT!"}
	zi := zone
	if zi < 0 || zi >= len(encounters) {
		zi = 0
	}
	e.Message = encounters[zi]
	e.animTimer = introDelay
}

// damage applies the core formula: ATK squared over ATK plus DEF, with a
// 0-3 frame-counter variance and a floor of 1. At equal stats it works
// out to roughly half the attacker's ATK.
func damage(atk, def, frame int) int {
	den := atk + def
	if den < 1 {
		den = 1
	}
	d := atk * atk / den
	d += frame & 3
	if d < 1 {
		d = 1
	}
	return d
}

func damageVs(attacker, defender *Combatant, frame int) int {
	def := defender.DEF
	if defender.Defending {
		def <<= 1
	}
	return damage(attacker.ATK, def, frame)
}

// critRoll gives player attacks a SPD-scaled crit chance, about 1.5% per
// point of SPD.
func critRoll(spd, frame int) bool {
	return (frame*31)&0xFF < spd<<2
}

func (e *Engine) enemyMsg(action string) string {
	return enemyNames[e.EnemyType] + " " + action
}

// resolve applies one combatant's action to the target.
func (e *Engine) resolve(actor, target *Combatant, action Action, frame int) {
	switch action {
	case ActionSpecial:
		if actor.SP > 0 {
			actor.SP--
			dmg := damageVs(actor, target, frame)

			// Cornered pilots hit twice as hard.
			if actor.IsPlayer && actor.HP < actor.MaxHP>>2 {
				dmg <<= 1
				e.Message = "DESPERATION!"
				e.sounds.Push(sfx.Explosion)
				e.applyDamage(target, dmg)
				return
			}

			dmg += dmg >> 1
			if actor.IsPlayer {
				if critRoll(actor.SPD, frame) {
					dmg += dmg >> 1
					e.Message = "CRIT SPECIAL!"
				} else {
					e.Message = PilotName + " SPECIAL!"
				}
			} else {
				e.Message = e.enemyMsg("SPECIAL!")
			}
			e.applyDamage(target, dmg)
			return
		}
		// Out of SP: the turn downgrades to a plain attack.
		fallthrough

	case ActionAttack:
		dmg := damageVs(actor, target, frame)

		// Three straight attacks sharpen the fourth.
		if actor.IsPlayer && e.attackStreak >= 3 {
			dmg += dmg >> 2
			e.attackStreak = 0
		}

		if actor.IsPlayer {
			if critRoll(actor.SPD, frame) {
				dmg += dmg >> 1
				e.Message = "CRITICAL!"
				e.sounds.Push(sfx.Explosion)
			} else {
				e.Message = PilotName + " ATTACKS!"
				e.sounds.Push(sfx.Hit)
			}
		} else {
			e.Message = e.enemyMsg("ATTACKS!")
			e.sounds.Push(sfx.Hit)
		}
		e.applyDamage(target, dmg)

		// A held guard can answer back or intercept supplies.
		if target.Defending && !actor.IsPlayer {
			if frame&7 < 3 {
				counter := dmg>>1 + dmg>>2
				if counter < 1 {
					counter = 1
				}
				actor.HP -= counter
				if actor.HP < 0 {
					actor.HP = 0
				}
				e.Message = "COUNTER!"
				e.sounds.Push(sfx.Hit)
			}
			if frame&7 == 0 {
				e.inv.Add(rpg.ItemRepairKitS, 1)
				e.Message = "INTERCEPTED!"
				e.sounds.Push(sfx.Heal)
			}
		}

		// Guarding through a heavy blow recovers SP.
		if target.Defending && target.IsPlayer {
			raw := damage(actor.ATK, target.DEF, frame)
			if raw > 25 && e.Player.SP < e.Player.MaxSP {
				e.Player.SP++
				e.Message = "SP RECOVERED!"
			}
		}

		// Elite crews coat their rounds.
		if !actor.IsPlayer && e.EnemyType == enemy.Elite && !e.IsBoss {
			if frame&3 == 0 && target.PoisonTurn == 0 {
				target.PoisonTurn = 3
				e.Message = "POISONED!"
			}
			if e.zone >= 2 && frame&3 == 0 && e.stats.SP > 0 {
				e.stats.SP--
				e.Player.SP = e.stats.SP
				e.Message = "SP DRAINED!"
			}
		}

	case ActionDefend:
		actor.Defending = true
		e.LastDamage = 0
		switch {
		case actor.IsPlayer && actor.PoisonTurn > 0:
			actor.PoisonTurn--
			e.Message = "DETOX -1T!"
		case actor.IsPlayer:
			e.Message = PilotName + " DEFENDS!"
		default:
			e.Message = e.enemyMsg("DEFENDS!")
		}

	default:
		if action >= actionBossHeavy && e.IsBoss {
			e.resolveBossAction(action, frame)
		}
	}
}

func (e *Engine) applyDamage(target *Combatant, dmg int) {
	target.HP -= dmg
	if target.HP < 0 {
		target.HP = 0
	}
	e.LastDamage = dmg
}

// chooseEnemyAction picks the enemy's move from a per-archetype weighted
// table. The roll mixes the frame counter with the turn number so the
// same frame offset does not repeat a choice every turn.
func (e *Engine) chooseEnemyAction(frame int) Action {
	r := (frame + e.Turn<<3) & 0x0F
	lowHP := e.Enemy.HP < e.Enemy.MaxHP>>2

	switch e.EnemyType {
	case enemy.Scout:
		// Aggressive: attack, special only as a spender.
		if r < 12 {
			return ActionAttack
		}
		if e.Enemy.SP > 0 {
			return ActionSpecial
		}
		return ActionAttack

	case enemy.Heavy:
		// Defensive: guards often, saves specials for low HP.
		if lowHP {
			if r < 6 && e.Enemy.SP > 0 {
				return ActionSpecial
			}
			if r < 10 {
				return ActionDefend
			}
			return ActionAttack
		}
		if r < 6 {
			return ActionAttack
		}
		if r < 10 {
			return ActionDefend
		}
		if e.Enemy.SP > 0 {
			return ActionSpecial
		}
		return ActionAttack

	case enemy.Elite:
		if r < 6 && e.Enemy.SP > 0 {
			return ActionSpecial
		}
		if r < 12 {
			return ActionAttack
		}
		return ActionDefend

	default:
		// Fighter: balanced, cautious when low.
		if lowHP {
			if r < 4 && e.Enemy.SP > 0 {
				return ActionSpecial
			}
			if r < 8 {
				return ActionDefend
			}
			return ActionAttack
		}
		if r < 10 {
			return ActionAttack
		}
		if r < 13 && e.Enemy.SP > 0 {
			return ActionSpecial
		}
		return ActionDefend
	}
}

// buildItemMenu scans the bag for up to four usable stacks.
func (e *Engine) buildItemMenu() {
	e.ItemChoices = e.ItemChoices[:0]
	for _, s := range e.inv.Slots() {
		if len(e.ItemChoices) >= 4 {
			break
		}
		if s.Item != rpg.ItemNone && s.Qty > 0 {
			e.ItemChoices = append(e.ItemChoices, ItemChoice{Item: s.Item, Qty: s.Qty})
		}
	}
}

// useItem applies one consumable to the player mid-battle. Stat boosts
// last until the battle ends.
func (e *Engine) useItem(item rpg.Item) {
	e.sounds.Push(sfx.Heal)

	switch item {
	case rpg.ItemRepairKitS, rpg.ItemRepairKitL:
		effect := item.Effect()
		if item == rpg.ItemRepairKitS {
			// The small kit scales with pilot level.
			effect = 30 + e.stats.Level*3
		}
		if e.Player.HP < e.Player.MaxHP>>2 {
			effect += effect >> 2
			e.Message = "CRITICAL HEAL!"
		} else {
			e.Message = PilotName + " HEALS!"
		}
		e.Player.HP += effect
		if e.Player.HP > e.Player.MaxHP {
			e.Player.HP = e.Player.MaxHP
		}
		e.LastDamage = -effect

	case rpg.ItemSPCharge:
		e.Player.SP += item.Effect()
		if e.Player.SP > e.Player.MaxSP {
			e.Player.SP = e.Player.MaxSP
		}
		e.LastDamage = 0
		e.Message = "SP RESTORED!"

	case rpg.ItemATKBoost:
		e.Player.ATK += item.Effect()
		e.LastDamage = 0
		e.Message = "ATK UP!"

	case rpg.ItemDEFBoost:
		e.Player.DEF += item.Effect()
		e.LastDamage = 0
		e.Message = "DEF UP!"

	case rpg.ItemFullRestore:
		e.Player.HP = e.Player.MaxHP
		e.Player.SP = e.Player.MaxSP
		e.LastDamage = -e.Player.MaxHP
		e.Message = "FULLY HEALED!"
	}
}

// tickPoison runs the start-of-turn poison drain. It never kills.
func (e *Engine) tickPoison() bool {
	if e.Player.PoisonTurn == 0 {
		return false
	}
	e.Player.HP -= poisonDamage
	if e.Player.HP < 1 {
		e.Player.HP = 1
	}
	e.Player.PoisonTurn--
	if e.Player.PoisonTurn > 0 {
		e.Message = fmt.Sprintf("POISON -3(%d)", e.Player.PoisonTurn)
	} else {
		e.Message = "POISON -3HP!"
	}
	return true
}

func (e *Engine) enterPlayerTurn() {
	e.State = StatePlayerTurn
	e.brightness = 15
	if !e.tickPoison() {
		if e.defendCarry {
			e.Message = "STANCE HELD!"
		} else {
			e.Message = "YOUR TURN"
		}
	}
}

func (e *Engine) tryFlee(frame int) {
	threshold := 85
	if e.Player.SPD > 10 {
		threshold += (e.Player.SPD - 10) * 15
	}
	if penalty := e.fleeAttempts << 4; penalty >= threshold {
		threshold = 10
	} else {
		threshold -= penalty
	}
	if (frame*31)&0xFF < threshold {
		e.Message = "ESCAPED!"
		e.sounds.Push(sfx.MenuSelect)
		e.Outcome = OutcomeFled
		e.animTimer = fleeDelay
		e.State = StateExit
		return
	}
	e.fleeAttempts++
	e.Message = "FAILED TO FLEE!"
	e.sounds.Push(sfx.Hit)
	e.State = StateEnemyTurn
}

func (e *Engine) openItemMenu() {
	e.buildItemMenu()
	if len(e.ItemChoices) == 0 {
		e.Message = "NO ITEMS!"
		return
	}
	e.ItemCursor = 0
	e.Message = "USE ITEM:"
	e.State = StateItemSelect
}

// Update advances the battle one frame. Reports false once the battle has
// fully ended; the caller then reads Outcome.
func (e *Engine) Update(frame int, in core.InputFrame) bool {
	if e.State == StateNone {
		return false
	}

	switch e.State {
	case StateInit:
		if e.animTimer > 0 {
			e.animTimer--
			return true
		}
		e.Player.Defending = false
		e.Enemy.Defending = false
		// Turn order by SPD, ties to the player.
		if e.Player.SPD >= e.Enemy.SPD {
			e.enterPlayerTurn()
		} else {
			e.State = StateEnemyTurn
		}

	case StatePlayerTurn:
		if in.WasPressed(core.ActionUp) && e.MenuCursor > 0 {
			e.MenuCursor--
			e.sounds.Push(sfx.MenuMove)
		}
		if in.WasPressed(core.ActionDown) && e.MenuCursor < int(ActionCount)-1 {
			e.MenuCursor++
			e.sounds.Push(sfx.MenuMove)
		}
		if in.WasPressed(core.ActionConfirm) {
			cursor := Action(e.MenuCursor)
			switch {
			case cursor == ActionSpecial && e.Player.SP == 0:
				e.Message = "NO SP!"
				e.sounds.Push(sfx.Hit)
			case cursor == ActionItem && !e.IsBoss:
				// Slot four is FLEE outside boss fights.
				e.tryFlee(frame)
			case cursor == ActionItem:
				e.openItemMenu()
			default:
				e.sounds.Push(sfx.MenuSelect)
				e.playerAction = cursor
				e.animTimer = actDelay
				e.State = StatePlayerAct
			}
		}
		if in.WasPressed(core.ActionCancel) && !e.IsBoss {
			e.openItemMenu()
		}

	case StatePlayerAct:
		if e.animTimer > 0 {
			e.animTimer--
			return true
		}
		if !e.defendCarry {
			e.Player.Defending = false
		}
		e.defendCarry = false
		if e.playerAction == ActionAttack {
			e.attackStreak++
		} else {
			e.attackStreak = 0
		}
		e.resolve(&e.Player, &e.Enemy, e.playerAction, frame)
		e.animTimer = resolveDelay
		e.lastActorEnemy = false
		e.State = StateResolve

	case StateEnemyTurn:
		// A cornered crew fights harder, once.
		if !e.IsBoss && !e.enemyEnraged && e.Enemy.HP < e.Enemy.MaxHP>>2 {
			e.Enemy.ATK += 4
			e.enemyEnraged = true
			e.Message = e.enemyMsg("ENRAGED!")
		}
		if e.IsBoss {
			e.updateBossPhase(frame)
			e.enemyAction = e.chooseBossAction(frame)
		} else {
			e.enemyAction = e.chooseEnemyAction(frame)
		}
		// Drawn-out fights ramp enemy pressure.
		if e.Turn > 8 {
			bonus := e.Turn - 8
			if bonus > 5 {
				bonus = 5
			}
			e.Enemy.ATK = e.enemyBaseATK + bonus
			if e.Turn == 9 {
				e.Message = "ENEMY STRONGER!"
			}
		}
		e.Enemy.Defending = false
		e.animTimer = actDelay
		e.State = StateEnemyAct

	case StateEnemyAct:
		if e.animTimer > 0 {
			e.animTimer--
			return true
		}
		e.resolve(&e.Enemy, &e.Player, e.enemyAction, frame)
		e.animTimer = resolveDelay
		e.lastActorEnemy = true
		e.State = StateResolve

	case StateResolve:
		if e.animTimer > 0 {
			e.animTimer--
			return true
		}
		if e.Enemy.HP <= 0 {
			if e.IsBoss {
				e.DropItem = e.boss.dropItem
			} else {
				e.DropItem = e.inv.RollDrop(int(e.EnemyType), frame)
			}
			if e.DropItem != rpg.ItemNone {
				e.inv.Add(e.DropItem, 1)
			}
			e.State = StateVictory
			e.Message = "VICTORY!"
			e.animTimer = bannerDelay
			return true
		}
		if e.Player.HP <= 0 {
			e.State = StateDefeat
			e.Message = "DEFEATED..."
			e.animTimer = bannerDelay
			return true
		}
		if !e.lastActorEnemy {
			e.State = StateEnemyTurn
		} else {
			e.Turn++
			e.defendCarry = e.Player.Defending && e.Enemy.Defending
			e.enterPlayerTurn()
		}

	case StateItemSelect:
		if in.WasPressed(core.ActionUp) && e.ItemCursor > 0 {
			e.ItemCursor--
			e.sounds.Push(sfx.MenuMove)
		}
		if in.WasPressed(core.ActionDown) && e.ItemCursor < len(e.ItemChoices)-1 {
			e.ItemCursor++
			e.sounds.Push(sfx.MenuMove)
		}
		if in.WasPressed(core.ActionConfirm) && len(e.ItemChoices) > 0 {
			item := e.ItemChoices[e.ItemCursor].Item
			e.useItem(item)
			e.inv.Remove(item, 1)
			e.Player.Defending = false
			e.animTimer = resolveDelay
			e.lastActorEnemy = false
			e.State = StateResolve
		}
		if in.WasPressed(core.ActionCancel) {
			e.State = StatePlayerTurn
			e.Message = "YOUR TURN"
		}

	case StateVictory:
		if e.animTimer > 0 {
			e.animTimer--
			return true
		}
		e.settleVictory()

	case StateLevelUp:
		// Quick brightness pulse two frames into the banner.
		switch e.animTimer {
		case 88:
			e.brightness = 8
		case 86:
			e.brightness = 15
		}
		if e.animTimer > 0 {
			e.animTimer--
			return true
		}
		e.State = StateExit

	case StateDefeat:
		if e.animTimer > 0 {
			switch e.animTimer & 7 {
			case 0:
				e.brightness = 8
			case 4:
				e.brightness = 15
			}
			e.animTimer--
			return true
		}
		// No write-back on a loss: the persistent sheet keeps its
		// pre-battle HP/SP and records the death as streak bookkeeping.
		e.stats.NoteDefeat()
		e.stats.WinStreak = 0
		e.Outcome = OutcomeDefeat
		e.State = StateExit

	case StateExit:
		if e.animTimer > 0 {
			e.animTimer--
			return true
		}
		e.brightness = 15
		e.State = StateNone
		return false
	}

	return true
}

// settleVictory syncs the surviving sheet back, pays XP with its bonuses,
// and decides whether a level-up banner follows.
func (e *Engine) settleVictory() {
	e.stats.HP = e.Player.HP
	e.stats.SP = e.Player.SP
	e.stats.TotalKills++

	// A breather after every win: about 6% of max HP back.
	recovery := e.stats.MaxHP >> 4
	if recovery < 1 {
		recovery = 1
	}
	e.stats.HP += recovery
	if e.stats.HP > e.stats.MaxHP {
		e.stats.HP = e.stats.MaxHP
	}

	if e.stats.WinStreak < 5 {
		e.stats.WinStreak++
	}

	// Credits track the base award before bonuses.
	e.stats.AddCredits(e.XPGained)

	// Fast wins pay extra: three turns doubles the XP.
	switch {
	case e.Turn <= 3:
		e.XPGained <<= 1
	case e.Turn <= 4:
		e.XPGained += e.XPGained>>1 + e.XPGained>>2
	case e.Turn <= 5:
		e.XPGained += e.XPGained >> 1
	}

	if e.stats.CatchUpBonus(e.zone) {
		e.XPGained += e.XPGained >> 1
	}

	if e.Hooks.OnScore != nil {
		if e.IsBoss {
			bonuses := [3]int{2000, 5000, 10000}
			bz := e.boss.zone
			if bz < 0 || bz >= len(bonuses) {
				bz = 0
			}
			e.Hooks.OnScore(bonuses[bz])
		}
		e.Hooks.OnScore(e.XPGained * 3)
	}

	if e.stats.WinStreak > 0 {
		e.XPGained += (e.XPGained >> 3) * e.stats.WinStreak
	}

	// Bosses paid part of their XP at phase transitions already.
	if e.IsBoss {
		switch {
		case e.boss.xpPhasesAwarded >= 2:
			e.XPGained >>= 1
		case e.boss.xpPhasesAwarded >= 1:
			e.XPGained -= e.XPGained >> 2
		}
	}

	e.Outcome = OutcomeVictory
	if e.stats.AddXP(e.XPGained) {
		// Level-up fully healed the persistent sheet; mirror it.
		e.Player.HP = e.stats.HP
		e.Player.MaxHP = e.stats.MaxHP
		e.Player.SP = e.stats.SP
		e.Player.MaxSP = e.stats.MaxSP
		e.LeveledTo = e.stats.Level
		e.Message = fmt.Sprintf("LEVEL %d!", e.stats.Level)
		e.sounds.Push(sfx.LevelUp)
		e.brightness = 15
		e.animTimer = bannerDelay
		e.State = StateLevelUp
	} else {
		e.State = StateExit
	}
}
