// Package game is the top-level campaign state machine: title, flight,
// dialog, battle, game over, and victory, plus the zone advance ledger
// between them. The World owns every flight subsystem and wires their hooks
// together; the platform layer drives it one Step per frame and composes
// the Render output.
package game

import (
	"github.com/stardrift-dev/stardrift/internal/core"
	"github.com/stardrift-dev/stardrift/internal/game/battle"
	"github.com/stardrift-dev/stardrift/internal/game/bullet"
	"github.com/stardrift-dev/stardrift/internal/game/collision"
	"github.com/stardrift-dev/stardrift/internal/game/enemy"
	"github.com/stardrift-dev/stardrift/internal/game/player"
	"github.com/stardrift-dev/stardrift/internal/game/rpg"
	"github.com/stardrift-dev/stardrift/internal/game/scroll"
	"github.com/stardrift-dev/stardrift/internal/game/sfx"
	"github.com/stardrift-dev/stardrift/internal/game/sprites"
	"github.com/stardrift-dev/stardrift/internal/game/story"
)

// State is the campaign's master mode.
type State uint8

const (
	StateTitle State = iota
	StateSplash
	StateFlight
	StateDialog
	StateBattle
	StateGameOver
	StateVictory
)

// BossTriggerDistance is the scroll distance that cues the zone boss,
// registered after all wave and story triggers.
const BossTriggerDistance = 4800

// postBattleMercy is the invincibility window after any overlay closes, so
// spawns during the transition cannot land a cheap hit.
const postBattleMercy = 120

// pausePulse is the dimmed breathing curve shown while paused.
var pausePulse = [16]int{7, 7, 8, 8, 9, 9, 10, 10, 10, 10, 9, 9, 8, 8, 7, 7}

// rankThresholds per zone: score needed for S, A, B, C. Below the last is D.
var rankThresholds = [enemy.ZoneCount][4]int{
	{5000, 3000, 1500, 500},
	{8000, 5000, 2500, 1000},
	{12000, 8000, 4000, 1500},
}

// RankLetter maps a stored rank value (4=S .. 0=D) to its letter.
func RankLetter(rank int) byte {
	letters := [5]byte{'D', 'C', 'B', 'A', 'S'}
	if rank < 0 || rank > 4 {
		rank = 0
	}
	return letters[rank]
}

func rankFor(zone, score int) int {
	if zone < 0 || zone >= enemy.ZoneCount {
		zone = 0
	}
	for i, want := range rankThresholds[zone] {
		if score >= want {
			return 4 - i
		}
	}
	return 0
}

type pendingBattle struct {
	active bool
	boss   bool
	foe    enemy.Type
	golden bool
}

// World is the whole campaign. Exported subsystem fields feed the renderer
// and tests; the platform treats the World as Step plus Render.
type World struct {
	State State
	Frame int

	Table     *sprites.Table
	Sounds    *sfx.Queue
	Scroll    *scroll.Scroller
	Bullets   *bullet.Pool
	Enemies   *enemy.Pool
	Ship      *player.Ship
	Stats     *rpg.Stats
	Inv       *rpg.Inventory
	Collision *collision.System
	Battle    *battle.Engine
	Dialog    *story.Dialog
	Story     story.Director

	Zone         int
	ZonesCleared int
	Paused       bool
	StartZone    int // zone a fresh campaign opens in; nonzero for practice runs
	MercyFrames  int // invincibility window after an overlay closes
	PlayTime     int // seconds in flight, battle, and dialog
	HighScore    int
	ZoneRanks    [enemy.ZoneCount]int

	saver      Saver
	hasSave    bool
	savedLevel int
	savedZone  int

	frameCounter   int
	zoneNoDamage   bool
	zoneStartScore int
	pending        pendingBattle

	brightness int
	fadeTarget int
	afterFade  func()

	titlePhase  int // 0 = press start, 1 = menu
	titleCursor int
	titleScroll int

	splashTimer int

	goCursor int

	victoryKills       int
	victoryScore       int
	victoryTargetKills int
	victoryTargetScore int
	victoryDone        bool

	weaponFlash int
	comboFlash  bool
}

// NewWorld builds and wires every subsystem and lands on the title screen.
// saver may be nil; the campaign then runs without checkpoints.
func NewWorld(saver Saver) *World {
	table := sprites.NewTable()
	part := sprites.DefaultPartition()
	sounds := &sfx.Queue{}
	sc := scroll.New()
	bullets := bullet.NewPool(table, part.PlayerBullets, part.EnemyBullets, sounds)
	enemies := enemy.NewPool(table, part.Enemies, bullets, sounds)
	ship := player.New(table, part.Player)
	stats := rpg.NewStats()
	inv := rpg.NewInventory()
	col := collision.New(bullets, enemies, ship, stats, inv, sounds)

	w := &World{
		Table:       table,
		Sounds:      sounds,
		Scroll:      sc,
		Bullets:     bullets,
		Enemies:     enemies,
		Ship:        ship,
		Stats:       stats,
		Inv:         inv,
		Collision:   col,
		Battle:      battle.NewEngine(stats, inv, sounds),
		Dialog:      story.NewDialog(sounds),
		MercyFrames: postBattleMercy,
		saver:       saver,
	}

	enemies.Hooks.OnSpawn = col.NoteWaveSpawn
	enemies.Hooks.OnEscape = col.AddScore
	enemies.Hooks.OnBonusZone = col.StartBonusWindow
	enemies.Hooks.OnZoneEnd = func() { sounds.Push(sfx.BossAlert) }
	col.Hooks.OnBattleTrigger = func(t enemy.Type, golden bool) {
		w.pending = pendingBattle{active: true, foe: t, golden: golden}
	}
	col.Hooks.OnFlash = func() { w.comboFlash = true }
	col.Hooks.OnPlayerHit = func() { w.zoneNoDamage = false }
	w.Battle.Hooks.OnScore = col.AddScore

	w.enterTitle()
	return w
}

// Brightness is the composite level the renderer should use, 0-15. Battles
// drive their own pulses.
func (w *World) Brightness() int {
	if w.State == StateBattle {
		return w.Battle.Brightness()
	}
	return w.brightness
}

// fadeTo starts a one-level-per-frame brightness ramp. then runs when the
// ramp lands; gameplay is held for the duration, mirroring a blocking fade
// without blocking.
func (w *World) fadeTo(level int, then func()) {
	w.fadeTarget = level
	w.afterFade = then
}

// stepFade advances a running ramp. The world is held only while a
// transition callback is pending; plain fade-ins run under gameplay.
func (w *World) stepFade() bool {
	if w.brightness != w.fadeTarget {
		if w.brightness < w.fadeTarget {
			w.brightness++
		} else {
			w.brightness--
		}
	}
	if w.brightness != w.fadeTarget {
		return w.afterFade != nil
	}
	if w.afterFade != nil {
		f := w.afterFade
		w.afterFade = nil
		f()
		return true
	}
	return false
}

// Step advances the campaign one frame.
func (w *World) Step(in core.InputFrame) {
	w.Frame++
	w.comboFlash = false

	if w.stepFade() {
		w.Scroll.Commit()
		return
	}

	switch w.State {
	case StateTitle:
		w.stepTitle(in)
	case StateSplash:
		w.stepSplash()
	case StateFlight:
		w.stepFlight(in)
	case StateDialog:
		w.stepDialog(in)
	case StateBattle:
		w.stepBattle(in)
	case StateGameOver:
		w.stepGameOver(in)
	case StateVictory:
		w.stepVictory(in)
	default:
		// An impossible state value falls back to the title screen.
		w.enterTitle()
	}

	w.tickPlayTime()
	w.Scroll.Commit()
}

func (w *World) tickPlayTime() {
	switch w.State {
	case StateFlight, StateBattle, StateDialog:
		if w.Paused {
			return
		}
		w.frameCounter++
		if w.frameCounter >= 60 {
			w.frameCounter = 0
			if w.PlayTime < 0xFFFF {
				w.PlayTime++
			}
		}
	}
}

/*=== Title ===*/

func (w *World) enterTitle() {
	w.State = StateTitle
	w.Paused = false
	w.titlePhase = 0
	w.titleCursor = 0
	w.titleScroll = 0
	w.refreshSaveInfo()
	w.fadeTo(15, nil)
}

func (w *World) refreshSaveInfo() {
	w.hasSave = false
	if w.saver == nil {
		return
	}
	d, err := w.saver.Load()
	if err != nil {
		return
	}
	if err := d.Validate(); err != nil {
		return
	}
	w.hasSave = true
	w.savedLevel = d.Level
	w.savedZone = d.Zone
}

func (w *World) stepTitle(in core.InputFrame) {
	w.titleScroll++

	if w.titlePhase == 0 {
		if in.WasPressed(core.ActionConfirm) || in.WasPressed(core.ActionPause) {
			w.Sounds.Push(sfx.MenuSelect)
			w.titlePhase = 1
		}
		return
	}

	if in.WasPressed(core.ActionUp) && w.titleCursor > 0 {
		w.titleCursor--
		w.Sounds.Push(sfx.MenuMove)
	}
	if in.WasPressed(core.ActionDown) && w.titleCursor < 1 && w.hasSave {
		w.titleCursor++
		w.Sounds.Push(sfx.MenuMove)
	}

	if in.WasPressed(core.ActionConfirm) || in.WasPressed(core.ActionPause) {
		w.Sounds.Push(sfx.MenuSelect)
		if w.titleCursor == 1 && w.hasSave {
			w.fadeTo(0, w.continueGame)
		} else {
			w.fadeTo(0, w.newGame)
		}
	}
}

func (w *World) newGame() {
	w.Stats.Reset()
	w.Inv.Reset()
	w.Collision.Reset()
	w.Bullets.Reset()
	w.Story = story.Director{}
	w.Zone = enemy.ZoneDebris
	if w.StartZone > 0 && w.StartZone < enemy.ZoneCount {
		w.Zone = w.StartZone
	}
	w.ZonesCleared = 0
	w.PlayTime = 0
	w.frameCounter = 0
	w.ZoneRanks = [enemy.ZoneCount]int{}
	w.enterSplash()
}

func (w *World) continueGame() {
	d, err := w.saver.Load()
	if err != nil || d.Validate() != nil {
		// The save vanished between the menu and the load; start fresh.
		w.newGame()
		return
	}
	w.restore(d)
	w.enterFlight()
}

/*=== Zone splash ===*/

// Splash pacing: reveal at 2 frames per letter, then hold.
const splashHoldFrames = 30

func (w *World) enterSplash() {
	w.State = StateSplash
	w.splashTimer = 0
	w.fadeTo(15, nil)
}

// SplashReveal returns how many letters of the zone name are showing.
func (w *World) SplashReveal() int {
	n := w.splashTimer >> 1
	if max := len(enemy.ZoneName(w.Zone)); n > max {
		n = max
	}
	return n
}

func (w *World) stepSplash() {
	w.splashTimer++
	if w.splashTimer >= len(enemy.ZoneName(w.Zone))*2+splashHoldFrames {
		w.fadeTo(0, w.enterFlight)
	}
}

/*=== Flight ===*/

func (w *World) enterFlight() {
	w.Table.HideAll()
	w.Scroll.Reset()
	w.Bullets.ClearAll()
	w.Bullets.Weapon.Cooldown = 0
	w.Enemies.KillAll()
	w.Enemies.SetZone(w.Zone)
	w.Ship.Reset()

	// Trigger registration order matters: wave script first, then story
	// cues, then the boss at the end of the shared table.
	w.Enemies.SetupZoneTriggers(w.Zone, w.Scroll)
	w.Story.RegisterTriggers(w.Zone, w.Scroll)
	_ = w.Scroll.AddTrigger(BossTriggerDistance, func() {
		w.pending = pendingBattle{active: true, boss: true}
	})

	w.Stats.ResetRegenCounter()
	w.setZoneScrollSpeed()

	w.State = StateFlight
	w.Paused = false
	w.pending = pendingBattle{}
	w.zoneNoDamage = true
	w.zoneStartScore = w.Collision.Tracker.Score

	w.autosave()
	w.fadeTo(15, nil)
}

func (w *World) setZoneScrollSpeed() {
	if w.Zone == enemy.ZoneFlagship {
		w.Scroll.SetSpeed(scroll.SpeedFast)
	} else {
		w.Scroll.SetSpeed(scroll.SpeedNormal)
	}
}

func (w *World) autosave() {
	if w.saver == nil {
		return
	}
	d := w.snapshot()
	if err := w.saver.Save(d); err == nil {
		w.hasSave = true
		w.savedLevel = d.Level
		w.savedZone = d.Zone
		w.HighScore = d.HighScore
	}
}

func (w *World) togglePause() {
	if w.Paused {
		w.Paused = false
		w.brightness = 15
		w.fadeTarget = 15
		w.Sounds.Push(sfx.MenuSelect)
	} else {
		w.Paused = true
		w.brightness = 8
		w.fadeTarget = 8
		w.Sounds.Push(sfx.MenuMove)
	}
}

func (w *World) stepFlight(in core.InputFrame) {
	if in.WasPressed(core.ActionPause) {
		w.togglePause()
		return
	}
	if w.Paused {
		w.brightness = pausePulse[(w.Frame>>2)&0x0F]
		w.fadeTarget = w.brightness
		return
	}

	w.Scroll.Update()
	w.Ship.HandleInput(in)
	w.Ship.Update()
	w.Stats.RegenSP()

	if in.IsHeld(core.ActionFire) {
		w.Bullets.PlayerFire(w.Ship.X, w.Ship.Y)
	} else if in.WasReleased(core.ActionFire) {
		w.Bullets.ResetMomentum()
	}
	if in.WasPressed(core.ActionWeaponNext) {
		w.Bullets.NextWeapon()
		w.weaponFlash = 3
	}
	if in.WasPressed(core.ActionWeaponPrev) {
		w.Bullets.PrevWeapon()
		w.weaponFlash = 3
	}

	w.Bullets.Update()
	w.Enemies.Update(w.Frame, w.Ship.X, w.Ship.Y)
	w.Collision.CheckAll(w.Frame)

	// Overlay priority: story scenes first, then battles. A boss cue and
	// a story cue on the same frame plays the scene and keeps the boss
	// pending.
	if w.Story.Pending() {
		script := w.Story.TakePending()
		w.fadeTo(0, func() {
			w.haltFlight()
			w.Dialog.Open(script)
			w.State = StateDialog
			w.fadeTo(15, nil)
		})
		return
	}
	if w.pending.active {
		p := w.pending
		w.pending = pendingBattle{}
		w.fadeTo(0, func() {
			w.haltFlight()
			if p.boss {
				w.Battle.StartBoss(w.Zone, w.Zone, w.Bullets.Weapon.Current)
			} else {
				w.Battle.Start(p.foe, w.Zone, w.Bullets.Weapon.Current)
				if p.golden {
					// Golden crews carry double salvage.
					w.Battle.XPGained <<= 1
				}
			}
			w.State = StateBattle
		})
		return
	}

	w.Ship.Render()
	w.Bullets.Render()
	w.Enemies.Render()

	if w.weaponFlash > 0 {
		w.weaponFlash--
		if w.weaponFlash > 0 {
			w.brightness = 13
		} else {
			w.brightness = 15
		}
		w.fadeTarget = w.brightness
	}
}

// haltFlight is the shared shutdown before any overlay: scroll stops,
// projectiles and enemies clear, and the ship leaves the field.
func (w *World) haltFlight() {
	w.Scroll.SetSpeed(scroll.SpeedStop)
	w.Bullets.ClearAll()
	w.Enemies.KillAll()
	w.Ship.Hide()
}

// resumeFlight restores the field after a dialog or survivable battle.
func (w *World) resumeFlight() {
	w.Ship.Show()
	w.Ship.MakeInvincible(w.MercyFrames)
	w.Bullets.Weapon.Cooldown = 0
	w.Bullets.ResetMomentum()
	w.setZoneScrollSpeed()
	w.State = StateFlight
	w.brightness = 15
	w.fadeTarget = 15
}

/*=== Dialog ===*/

func (w *World) stepDialog(in core.InputFrame) {
	if w.Dialog.Update(in) {
		return
	}
	w.fadeTo(0, func() {
		w.resumeFlight()
		w.brightness = 0
		w.fadeTo(15, nil)
	})
}

/*=== Battle ===*/

func (w *World) stepBattle(in core.InputFrame) {
	if w.Battle.Update(w.Frame, in) {
		return
	}

	switch {
	case w.Battle.Outcome == battle.OutcomeDefeat:
		w.fadeTo(0, w.enterGameOver)
	case w.Battle.IsBoss && w.Battle.Outcome == battle.OutcomeVictory:
		w.fadeTo(0, w.advanceZone)
	default:
		// Normal victory or a successful flee returns to flight.
		w.fadeTo(0, func() {
			w.resumeFlight()
			w.brightness = 0
			w.fadeTo(15, nil)
		})
	}
}

/*=== Zone advance ===*/

// advanceZone settles a cleared zone: the no-damage bonus, the score rank,
// a half heal, and credit conversion, then the next zone or the victory
// screen.
func (w *World) advanceZone() {
	zone := w.Zone

	if w.zoneNoDamage {
		w.Stats.AddXP(50)
		w.Inv.Add(rpg.ItemFullRestore, 1)
		w.Sounds.Push(sfx.LevelUp)
	}

	zoneScore := w.Collision.Tracker.Score - w.zoneStartScore
	if zone >= 0 && zone < enemy.ZoneCount {
		w.ZoneRanks[zone] = rankFor(zone, zoneScore)
	}

	missing := w.Stats.MaxHP - w.Stats.HP
	w.Stats.HP += missing >> 1

	if w.Stats.Credits > 0 {
		w.Collision.AddScore(w.Stats.Credits << 1)
		w.Stats.Credits = 0
		w.Sounds.Push(sfx.MenuSelect)
	}

	w.ZonesCleared++
	switch zone {
	case enemy.ZoneDebris:
		w.Story.Flags |= story.FlagZone1Clear
	case enemy.ZoneAsteroid:
		w.Story.Flags |= story.FlagZone2Clear
	}

	if zone >= enemy.ZoneCount-1 {
		w.enterVictory()
		return
	}
	w.Zone++
	w.enterSplash()
}

/*=== Game over ===*/

func (w *World) enterGameOver() {
	w.State = StateGameOver
	w.goCursor = 0
	w.fadeTo(15, nil)
}

func (w *World) stepGameOver(in core.InputFrame) {
	if in.WasPressed(core.ActionUp) && w.goCursor > 0 {
		w.goCursor--
		w.Sounds.Push(sfx.MenuMove)
	}
	if in.WasPressed(core.ActionDown) && w.goCursor < 1 {
		w.goCursor++
		w.Sounds.Push(sfx.MenuMove)
	}

	if in.WasPressed(core.ActionConfirm) || in.WasPressed(core.ActionPause) {
		w.Sounds.Push(sfx.MenuSelect)
		if w.goCursor == 0 {
			// Retry keeps all progression; only HP and SP refill.
			w.Stats.HP = w.Stats.MaxHP
			w.Stats.SP = w.Stats.MaxSP
			w.fadeTo(0, w.enterFlight)
		} else {
			w.fadeTo(0, func() {
				w.Stats.Reset()
				w.Inv.Reset()
				w.enterTitle()
			})
		}
	}
}

/*=== Victory ===*/

func (w *World) enterVictory() {
	w.State = StateVictory
	w.victoryKills = 0
	w.victoryScore = 0
	w.victoryTargetKills = w.Stats.TotalKills
	w.victoryTargetScore = w.Collision.Tracker.Score
	w.victoryDone = false

	// The campaign is complete; CONTINUE must not offer a finished run.
	if w.saver != nil {
		if err := w.saver.Erase(); err == nil {
			w.hasSave = false
		}
	}

	w.fadeTo(15, nil)
}

// VictoryCounts reports the count-up display values for the renderer.
func (w *World) VictoryCounts() (kills, score int) {
	return w.victoryKills, w.victoryScore
}

func (w *World) stepVictory(in core.InputFrame) {
	if !w.victoryDone {
		changed := false
		if w.victoryKills < w.victoryTargetKills {
			w.victoryKills++
			changed = true
		}
		if w.victoryScore < w.victoryTargetScore {
			w.victoryScore += 5
			if w.victoryScore > w.victoryTargetScore {
				w.victoryScore = w.victoryTargetScore
			}
			changed = true
		}
		if changed {
			pulse := 13 + (w.victoryKills+w.victoryScore)&3
			if pulse > 15 {
				pulse = 15
			}
			w.brightness = pulse
			w.fadeTarget = pulse
		} else {
			w.victoryDone = true
			w.brightness = 15
			w.fadeTarget = 15
		}
	}

	if in.WasPressed(core.ActionPause) || in.WasPressed(core.ActionConfirm) {
		w.Sounds.Push(sfx.MenuSelect)
		w.fadeTo(0, func() {
			w.Stats.Reset()
			w.Inv.Reset()
			w.enterTitle()
		})
	}
}
