package game

import (
	"errors"
	"fmt"

	"github.com/stardrift-dev/stardrift/internal/game/bullet"
	"github.com/stardrift-dev/stardrift/internal/game/enemy"
	"github.com/stardrift-dev/stardrift/internal/game/rpg"
	"github.com/stardrift-dev/stardrift/internal/game/story"
)

// ErrNoSave reports that no campaign save exists. The title screen uses it
// to gate the CONTINUE option.
var ErrNoSave = errors.New("game: no save data")

// SaveData is one campaign checkpoint, written on every zone entry and
// erased when the campaign is completed. The persistence layer stores it
// opaquely; all validation happens here.
type SaveData struct {
	Level   int
	XP      int
	MaxHP   int
	HP      int
	ATK     int
	DEF     int
	SPD     int
	MaxSP   int
	SP      int
	Credits int

	TotalKills int
	WinStreak  int

	Bag [rpg.InvSize]rpg.Slot

	Zone         int
	ZonesCleared int
	StoryFlags   story.Flags
	PlayTime     int // seconds

	WeaponKills [bullet.WeaponCount]int
	HighScore   int
	MaxCombo    int
	ZoneRanks   [enemy.ZoneCount]int
}

// Saver persists campaign checkpoints. Load returns ErrNoSave when the
// backing store holds no valid save.
type Saver interface {
	Save(SaveData) error
	Load() (SaveData, error)
	Erase() error
}

// Validate rejects saves that no clamping can make sensible. Recoverable
// oddities (HP above max, stale item IDs) are fixed by Sanitize instead.
func (d *SaveData) Validate() error {
	if d.Level < 1 || d.Level > rpg.MaxLevel {
		return fmt.Errorf("game: save level %d out of range", d.Level)
	}
	if d.MaxHP < 1 {
		return fmt.Errorf("game: save max HP %d out of range", d.MaxHP)
	}
	return nil
}

// Sanitize clamps fields that stat changes between versions can push out
// of range.
func (d *SaveData) Sanitize() {
	if d.HP > d.MaxHP {
		d.HP = d.MaxHP
	}
	if d.HP < 1 {
		d.HP = 1
	}
	if d.SP > d.MaxSP {
		d.SP = d.MaxSP
	}
	if d.SP < 0 {
		d.SP = 0
	}
	if d.Zone < 0 || d.Zone >= enemy.ZoneCount {
		d.Zone = 0
	}
	if d.ZonesCleared < 0 || d.ZonesCleared > enemy.ZoneCount {
		d.ZonesCleared = 0
	}
	if d.WinStreak > 5 {
		d.WinStreak = 5
	}
	for i := range d.Bag {
		if d.Bag[i].Item >= rpg.ItemCount {
			d.Bag[i] = rpg.Slot{}
		}
		if d.Bag[i].Qty > rpg.MaxStack {
			d.Bag[i].Qty = rpg.MaxStack
		}
		if d.Bag[i].Qty < 0 {
			d.Bag[i].Qty = 0
		}
	}
}

// snapshot packs the live campaign into a checkpoint.
func (w *World) snapshot() SaveData {
	d := SaveData{
		Level:   w.Stats.Level,
		XP:      w.Stats.XP,
		MaxHP:   w.Stats.MaxHP,
		HP:      w.Stats.HP,
		ATK:     w.Stats.ATK,
		DEF:     w.Stats.DEF,
		SPD:     w.Stats.SPD,
		MaxSP:   w.Stats.MaxSP,
		SP:      w.Stats.SP,
		Credits: w.Stats.Credits,

		TotalKills: w.Stats.TotalKills,
		WinStreak:  w.Stats.WinStreak,

		Zone:         w.Zone,
		ZonesCleared: w.ZonesCleared,
		StoryFlags:   w.Story.Flags,
		PlayTime:     w.PlayTime,

		MaxCombo:  w.Collision.Tracker.MaxCombo,
		ZoneRanks: w.ZoneRanks,
		HighScore: w.HighScore,
	}
	copy(d.Bag[:], w.Inv.Slots())
	d.WeaponKills = w.Bullets.WeaponKills()

	if w.Collision.Tracker.Score > d.HighScore {
		d.HighScore = w.Collision.Tracker.Score
	}
	return d
}

// restore unpacks a checkpoint into the live campaign. The XP-to-next
// field is recomputed rather than stored, and the drop pity timer restarts
// so a loaded run is never owed an immediate drop.
func (w *World) restore(d SaveData) {
	d.Sanitize()

	w.Stats.Level = d.Level
	w.Stats.XP = d.XP
	w.Stats.MaxHP = d.MaxHP
	w.Stats.HP = d.HP
	w.Stats.ATK = d.ATK
	w.Stats.DEF = d.DEF
	w.Stats.SPD = d.SPD
	w.Stats.MaxSP = d.MaxSP
	w.Stats.SP = d.SP
	w.Stats.Credits = d.Credits
	w.Stats.TotalKills = d.TotalKills
	w.Stats.WinStreak = d.WinStreak
	if w.Stats.Level < rpg.MaxLevel {
		w.Stats.XPToNext = rpg.XPForLevel(w.Stats.Level) - w.Stats.XP
	} else {
		w.Stats.XPToNext = 0
	}

	w.Inv.Reset()
	for i, s := range d.Bag {
		w.Inv.SetSlot(i, s)
	}
	w.Inv.ResetPityTimer()

	w.Zone = d.Zone
	w.ZonesCleared = d.ZonesCleared
	w.Story.Flags = d.StoryFlags
	w.PlayTime = d.PlayTime
	w.Bullets.SetWeaponKills(d.WeaponKills)
	w.Collision.Tracker.MaxCombo = d.MaxCombo
	w.ZoneRanks = d.ZoneRanks
	w.HighScore = d.HighScore
}
