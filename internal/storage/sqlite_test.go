package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stardrift-dev/stardrift/internal/game"
	"github.com/stardrift-dev/stardrift/internal/game/rpg"
	"github.com/stardrift-dev/stardrift/internal/game/story"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestLoadWithoutSave(t *testing.T) {
	store := openStore(t)

	_, err := store.Load()
	if !errors.Is(err, game.ErrNoSave) {
		t.Errorf("Load() on empty slot = %v, want ErrNoSave", err)
	}
}

func TestCampaignRoundTrip(t *testing.T) {
	store := openStore(t)

	d := game.SaveData{
		Level: 5, XP: 320, MaxHP: 150, HP: 88,
		ATK: 20, DEF: 13, SPD: 15, MaxSP: 4, SP: 3, Credits: 42,
		TotalKills: 61, WinStreak: 3,
		Zone: 2, ZonesCleared: 2,
		StoryFlags: story.FlagIntroSeen | story.FlagTwistSeen,
		PlayTime:   777,
		HighScore:  12345, MaxCombo: 8,
	}
	d.Bag[0] = rpg.Slot{Item: rpg.ItemRepairKitS, Qty: 2}
	d.Bag[3] = rpg.Slot{Item: rpg.ItemSPCharge, Qty: 1}
	d.WeaponKills[1] = 17
	d.ZoneRanks[0] = 4
	d.ZoneRanks[1] = 2

	if err := store.Save(d); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got != d {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, d)
	}
}

func TestSaveReplacesPrevious(t *testing.T) {
	store := openStore(t)

	first := game.SaveData{Level: 2, MaxHP: 95, HP: 95, Zone: 0}
	second := game.SaveData{Level: 6, MaxHP: 170, HP: 120, Zone: 2}
	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.Level != 6 || got.Zone != 2 {
		t.Errorf("loaded level=%d zone=%d, want the replacement", got.Level, got.Zone)
	}
}

func TestEraseEmptiesSlot(t *testing.T) {
	store := openStore(t)

	if err := store.Save(game.SaveData{Level: 3, MaxHP: 110, HP: 110}); err != nil {
		t.Fatal(err)
	}
	if err := store.Erase(); err != nil {
		t.Fatalf("Erase() failed: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, game.ErrNoSave) {
		t.Errorf("Load() after erase = %v, want ErrNoSave", err)
	}
}

func TestInvalidRowReadsAsNoSave(t *testing.T) {
	store := openStore(t)

	// A zero Level fails validation; the slot must read as absent.
	if err := store.Save(game.SaveData{Level: 0, MaxHP: 80, HP: 80}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); !errors.Is(err, game.ErrNoSave) {
		t.Errorf("Load() of invalid row = %v, want ErrNoSave", err)
	}
}

func TestRunHistory(t *testing.T) {
	store := openStore(t)

	runs := []RunRecord{
		{Outcome: OutcomeDefeat, Score: 1200, Level: 3, ZonesCleared: 1, PlayTime: 240, MaxCombo: 4},
		{Outcome: OutcomeVictory, Score: 9800, Level: 8, ZonesCleared: 3, PlayTime: 1510, MaxCombo: 11},
		{Outcome: OutcomeDefeat, Score: 4400, Level: 5, ZonesCleared: 2, PlayTime: 680, MaxCombo: 7},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopRuns returned %d records, want 2", len(top))
	}
	if top[0].Score != 9800 || top[1].Score != 4400 {
		t.Errorf("top scores = %d, %d; want descending order", top[0].Score, top[1].Score)
	}
	if top[0].Outcome != OutcomeVictory {
		t.Errorf("best run outcome = %q, want victory", top[0].Outcome)
	}

	best, err := store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 9800 {
		t.Errorf("best score = %d, want 9800", best)
	}

	recent, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("RecentRuns returned %d records, want all 3", len(recent))
	}
}

func TestBestScoreEmptyHistory(t *testing.T) {
	store := openStore(t)

	best, err := store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("best score = %d on empty history, want 0", best)
	}
}

func TestBagCodecKeepsSlotPositions(t *testing.T) {
	var bag [rpg.InvSize]rpg.Slot
	bag[2] = rpg.Slot{Item: rpg.ItemFullRestore, Qty: 9}
	bag[7] = rpg.Slot{Item: rpg.ItemRepairKitL, Qty: 1}

	if got := decodeBag(encodeBag(bag)); got != bag {
		t.Errorf("bag codec mismatch:\n got %+v\nwant %+v", got, bag)
	}
}
