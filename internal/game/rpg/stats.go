// Package rpg carries the pilot's persistent progression: level and stat
// growth, experience thresholds, the defeat-streak tracker, and the
// consumable inventory with its loot table.
package rpg

// Level progression bounds and level-1 base stats.
const (
	MaxLevel = 10

	BaseHP  = 80
	BaseATK = 12
	BaseDEF = 6
	BaseSPD = 10
	BaseSP  = 2
)

// xpTable[n] is the cumulative XP needed to leave level n. The sentinel at
// the end stops the level-up loop at the cap without a bounds check.
var xpTable = [MaxLevel + 1]int{
	0, 30, 80, 160, 280, 450, 680, 1000, 1400, 2000, 0xFFFF,
}

// growthTable[i] holds the bonuses applied when reaching level i+2:
// HP, ATK, DEF, SPD, max SP. SP only grows every other level so specials
// stay scarce.
var growthTable = [MaxLevel - 1][5]int{
	{15, 2, 1, 1, 0},
	{15, 2, 2, 1, 1},
	{20, 3, 2, 1, 0},
	{20, 3, 2, 2, 1},
	{25, 3, 3, 1, 0},
	{25, 4, 3, 2, 1},
	{30, 4, 3, 1, 0},
	{30, 5, 4, 2, 1},
	{35, 5, 4, 2, 1},
}

// Stats is the pilot's RPG sheet. Exported fields are read by the battle
// layer, the HUD, and the save codec.
type Stats struct {
	Level    int
	XP       int
	XPToNext int
	HP       int
	MaxHP    int
	ATK      int
	DEF      int
	SPD      int
	SP       int
	MaxSP    int
	Credits  int

	TotalKills   int
	DefeatStreak int
	WinStreak    int

	regenCounter int
}

// NewStats returns a fresh level-1 sheet.
func NewStats() *Stats {
	s := &Stats{}
	s.Reset()
	return s
}

// Reset restores the level-1 starting state.
func (s *Stats) Reset() {
	*s = Stats{
		Level:    1,
		XPToNext: xpTable[1],
		HP:       BaseHP,
		MaxHP:    BaseHP,
		ATK:      BaseATK,
		DEF:      BaseDEF,
		SPD:      BaseSPD,
		SP:       BaseSP,
		MaxSP:    BaseSP,
	}
}

// applyLevelUp adds the growth row for the just-reached level and fully
// heals, rewarding the fight that earned it.
func (s *Stats) applyLevelUp() {
	if s.Level < 2 || s.Level > MaxLevel {
		return
	}
	row := growthTable[s.Level-2]
	s.MaxHP += row[0]
	s.ATK += row[1]
	s.DEF += row[2]
	s.SPD += row[3]
	s.MaxSP += row[4]
	s.HP = s.MaxHP
	s.SP = s.MaxSP
}

// AddXP awards experience and processes level-ups, including multi-level
// jumps from large boss awards. Reports whether at least one level was
// gained. Victory also clears the defeat streak.
func (s *Stats) AddXP(xp int) bool {
	s.XP += xp
	if s.XP > 0xFFFF {
		s.XP = 0xFFFF
	}
	s.DefeatStreak = 0

	leveled := false
	for s.Level < MaxLevel && s.XP >= xpTable[s.Level] {
		s.Level++
		s.applyLevelUp()
		leveled = true
	}

	if s.Level < MaxLevel {
		s.XPToNext = xpTable[s.Level] - s.XP
	} else {
		s.XPToNext = 0
	}
	return leveled
}

// NoteDefeat records a lost battle for the assist tracker. HP and SP are
// left alone: the sheet keeps its pre-battle values and the loss itself is
// the penalty.
func (s *Stats) NoteDefeat() {
	if s.DefeatStreak < 255 {
		s.DefeatStreak++
	}
}

// XPForLevel returns the cumulative XP threshold for a level, for the save
// codec to rebuild XPToNext.
func XPForLevel(level int) int {
	if level < 0 || level > MaxLevel {
		return 0xFFFF
	}
	return xpTable[level]
}

// RegenSP ticks passive flight-mode regeneration: 1 SP every 600 frames.
func (s *Stats) RegenSP() {
	s.regenCounter++
	if s.regenCounter >= 600 {
		s.regenCounter = 0
		if s.SP < s.MaxSP {
			s.SP++
		}
	}
}

// ResetRegenCounter restarts the regen window, called on zone entry.
func (s *Stats) ResetRegenCounter() {
	s.regenCounter = 0
}

// CatchUpBonus reports whether the pilot is under-leveled for the zone
// (expected floor is zone*3+1); battles then pay extra XP.
func (s *Stats) CatchUpBonus(zone int) bool {
	return s.Level < zone*3+1
}

// DifficultyAssist reports whether two consecutive defeats have triggered
// the assist; the battle layer trims enemy ATK by 12.5% while it holds.
func (s *Stats) DifficultyAssist() bool {
	return s.DefeatStreak >= 2
}

// AddCredits adds salvage credits, saturating at the 16-bit cap the save
// format uses.
func (s *Stats) AddCredits(n int) {
	s.Credits += n
	if s.Credits > 0xFFFF {
		s.Credits = 0xFFFF
	}
}
