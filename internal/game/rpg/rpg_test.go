package rpg

import "testing"

func TestLevelUpGrowth(t *testing.T) {
	s := NewStats()
	if !s.AddXP(30) {
		t.Fatal("30 XP should reach level 2")
	}
	if s.Level != 2 {
		t.Fatalf("level = %d, want 2", s.Level)
	}
	if s.MaxHP != 95 || s.ATK != 14 || s.DEF != 7 || s.SPD != 11 || s.MaxSP != 2 {
		t.Errorf("level 2 stats = HP%d ATK%d DEF%d SPD%d SP%d, want HP95 ATK14 DEF7 SPD11 SP2",
			s.MaxHP, s.ATK, s.DEF, s.SPD, s.MaxSP)
	}
	if s.HP != s.MaxHP || s.SP != s.MaxSP {
		t.Error("level up must fully heal")
	}
}

func TestMultiLevelJump(t *testing.T) {
	s := NewStats()
	s.AddXP(200) // past the 30 and 80 and 160 thresholds
	if s.Level != 4 {
		t.Errorf("level after 200 XP = %d, want 4", s.Level)
	}
	if s.MaxHP != 130 || s.ATK != 19 || s.DEF != 11 {
		t.Errorf("level 4 stats = HP%d ATK%d DEF%d, want HP130 ATK19 DEF11", s.MaxHP, s.ATK, s.DEF)
	}
}

func TestLevelCap(t *testing.T) {
	s := NewStats()
	s.AddXP(50000)
	if s.Level != MaxLevel {
		t.Errorf("level = %d, want capped at %d", s.Level, MaxLevel)
	}
	if s.MaxHP != 295 || s.ATK != 43 || s.DEF != 30 || s.SPD != 23 || s.MaxSP != 7 {
		t.Errorf("max level stats = HP%d ATK%d DEF%d SPD%d SP%d, want HP295 ATK43 DEF30 SPD23 SP7",
			s.MaxHP, s.ATK, s.DEF, s.SPD, s.MaxSP)
	}
	if s.XPToNext != 0 {
		t.Errorf("XPToNext at cap = %d, want 0", s.XPToNext)
	}
	s.AddXP(70000)
	if s.XP != 0xFFFF {
		t.Errorf("XP = %d, want saturated at 0xFFFF", s.XP)
	}
}

func TestNoteDefeatLeavesSheetAlone(t *testing.T) {
	s := NewStats()
	s.HP = 55
	s.SP = 1

	s.NoteDefeat()

	if s.HP != 55 || s.SP != 1 {
		t.Errorf("HP/SP after defeat = %d/%d, want 55/1 untouched", s.HP, s.SP)
	}
	if s.DefeatStreak != 1 {
		t.Errorf("defeat streak = %d, want 1", s.DefeatStreak)
	}
}

func TestDifficultyAssist(t *testing.T) {
	s := NewStats()
	s.NoteDefeat()
	if s.DifficultyAssist() {
		t.Error("assist after one defeat, want two")
	}
	s.NoteDefeat()
	if !s.DifficultyAssist() {
		t.Error("assist should arm after two defeats")
	}
	s.AddXP(5)
	if s.DifficultyAssist() {
		t.Error("a win must clear the defeat streak")
	}
}

func TestSPRegen(t *testing.T) {
	s := NewStats()
	s.SP = 0
	for i := 0; i < 600; i++ {
		s.RegenSP()
	}
	if s.SP != 1 {
		t.Errorf("SP after 600 frames = %d, want 1", s.SP)
	}
	s.SP = s.MaxSP
	for i := 0; i < 600; i++ {
		s.RegenSP()
	}
	if s.SP != s.MaxSP {
		t.Error("regen must not exceed max SP")
	}
}

func TestCatchUpBonus(t *testing.T) {
	s := NewStats()
	if s.CatchUpBonus(0) {
		t.Error("level 1 in zone 0 is on pace")
	}
	if !s.CatchUpBonus(1) {
		t.Error("level 1 in zone 1 is under-leveled (expected 4+)")
	}
}

func TestInventoryStacking(t *testing.T) {
	inv := NewInventory()
	if got := inv.Count(ItemRepairKitS); got != 2 {
		t.Fatalf("starter kits = %d, want 2", got)
	}
	inv.Add(ItemRepairKitS, 5)
	if got := inv.Count(ItemRepairKitS); got != 7 {
		t.Errorf("stack = %d, want 7", got)
	}
	inv.Add(ItemRepairKitS, 5)
	if got := inv.Count(ItemRepairKitS); got != MaxStack {
		t.Errorf("stack = %d, want capped at %d", got, MaxStack)
	}
}

func TestInventoryCompaction(t *testing.T) {
	inv := NewInventory()
	inv.Add(ItemSPCharge, 1)
	inv.Add(ItemATKBoost, 1)
	if !inv.Remove(ItemSPCharge, 1) {
		t.Fatal("Remove failed on a held item")
	}
	slots := inv.Slots()
	if slots[0].Item != ItemRepairKitS || slots[1].Item != ItemATKBoost {
		t.Errorf("slots not compacted: %v %v", slots[0].Item, slots[1].Item)
	}
	if slots[2].Item != ItemNone {
		t.Errorf("slot 2 = %v, want empty", slots[2].Item)
	}
}

func TestInventoryFullConversion(t *testing.T) {
	inv := NewInventory()
	items := []Item{ItemRepairKitL, ItemSPCharge, ItemATKBoost, ItemDEFBoost, ItemFullRestore}
	for _, it := range items {
		inv.Add(it, 1)
	}
	// Bag now holds 6 distinct stacks; fill the last two slots.
	inv.Slots()[6] = Slot{Item: ItemRepairKitS, Qty: 1}
	inv.Slots()[7] = Slot{Item: ItemRepairKitS, Qty: 1}

	// The bag is full but repair kits can still stack.
	if got := inv.Add(ItemRepairKitS, 1); got != AddStored {
		t.Errorf("stackable add to full bag = %v, want stored", got)
	}

	// A bag with no matching stack and no free slot converts the drop.
	inv2 := &Inventory{}
	for i := 0; i < InvSize; i++ {
		inv2.SetSlot(i, Slot{Item: ItemSPCharge, Qty: MaxStack})
	}
	if got := inv2.Add(ItemRepairKitL, 1); got != AddConverted {
		t.Errorf("add to full bag = %v, want converted to credits", got)
	}
}

func TestLootPityTimer(t *testing.T) {
	inv := NewInventory()
	// Frame 0 with scout: roll = 0 -> drop. Pick frames that miss:
	// roll = (frame*31)&0xFF >= 77.
	missFrame := 0
	for f := 1; f < 256; f++ {
		if (f*31)&0xFF >= 77 {
			missFrame = f
			break
		}
	}
	for i := 0; i < 2; i++ {
		if got := inv.RollDrop(0, missFrame); got != ItemNone {
			t.Fatalf("expected miss on frame %d, got %v", missFrame, got)
		}
	}
	// Third consecutive miss triggers the pity drop.
	if got := inv.RollDrop(0, missFrame); got != ItemRepairKitS {
		t.Errorf("pity drop = %v, want small repair kit", got)
	}
}

func TestLootTableHitsByType(t *testing.T) {
	inv := NewInventory()
	// Frame chosen so (frame*31 + type*17) & 0xFF lands in each type's
	// first bracket.
	if got := inv.RollDrop(0, 0); got != ItemRepairKitS {
		t.Errorf("scout roll 0 = %v, want small kit", got)
	}
	inv.ResetPityTimer()
	if got := inv.RollDrop(2, 0); got != ItemRepairKitL {
		t.Errorf("heavy roll 34 = %v, want large kit", got)
	}
}
