// Package storage provides SQLite-based persistence: the single campaign
// checkpoint slot and the finished-run history behind the scores command.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/stardrift-dev/stardrift/internal/game"
	"github.com/stardrift-dev/stardrift/internal/game/rpg"
	"github.com/stardrift-dev/stardrift/internal/game/story"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished campaign attempt.
type RunRecord struct {
	ID           int64
	Outcome      string // "victory" or "defeat"
	Score        int
	Level        int
	ZonesCleared int
	PlayTime     int // seconds
	MaxCombo     int
	CreatedAt    time.Time
}

// Run outcome values.
const (
	OutcomeVictory = "victory"
	OutcomeDefeat  = "defeat"
)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS campaign (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			level INTEGER NOT NULL,
			xp INTEGER NOT NULL,
			max_hp INTEGER NOT NULL,
			hp INTEGER NOT NULL,
			atk INTEGER NOT NULL,
			def INTEGER NOT NULL,
			spd INTEGER NOT NULL,
			max_sp INTEGER NOT NULL,
			sp INTEGER NOT NULL,
			credits INTEGER NOT NULL,
			total_kills INTEGER NOT NULL,
			win_streak INTEGER NOT NULL,
			bag TEXT NOT NULL DEFAULT '',
			zone INTEGER NOT NULL,
			zones_cleared INTEGER NOT NULL,
			story_flags INTEGER NOT NULL,
			play_time INTEGER NOT NULL,
			weapon_kills TEXT NOT NULL DEFAULT '',
			high_score INTEGER NOT NULL,
			max_combo INTEGER NOT NULL,
			zone_ranks TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			zones_cleared INTEGER NOT NULL,
			play_time INTEGER NOT NULL,
			max_combo INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes the campaign checkpoint, replacing any previous one. The
// single-row constraint keeps exactly one save slot.
func (s *Store) Save(d game.SaveData) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO campaign
		 (id, level, xp, max_hp, hp, atk, def, spd, max_sp, sp, credits,
		  total_kills, win_streak, bag, zone, zones_cleared, story_flags,
		  play_time, weapon_kills, high_score, max_combo, zone_ranks, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		d.Level, d.XP, d.MaxHP, d.HP, d.ATK, d.DEF, d.SPD, d.MaxSP, d.SP, d.Credits,
		d.TotalKills, d.WinStreak, encodeBag(d.Bag), d.Zone, d.ZonesCleared, int(d.StoryFlags),
		d.PlayTime, encodeInts(d.WeaponKills[:]), d.HighScore, d.MaxCombo, encodeInts(d.ZoneRanks[:]),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save campaign: %w", err)
	}
	return nil
}

// Load reads the campaign checkpoint. Returns game.ErrNoSave when the slot
// is empty or fails validation.
func (s *Store) Load() (game.SaveData, error) {
	var d game.SaveData
	var bag, weaponKills, zoneRanks string
	var flags int

	err := s.db.QueryRow(
		`SELECT level, xp, max_hp, hp, atk, def, spd, max_sp, sp, credits,
		        total_kills, win_streak, bag, zone, zones_cleared, story_flags,
		        play_time, weapon_kills, high_score, max_combo, zone_ranks
		 FROM campaign WHERE id = 1`,
	).Scan(
		&d.Level, &d.XP, &d.MaxHP, &d.HP, &d.ATK, &d.DEF, &d.SPD, &d.MaxSP, &d.SP, &d.Credits,
		&d.TotalKills, &d.WinStreak, &bag, &d.Zone, &d.ZonesCleared, &flags,
		&d.PlayTime, &weaponKills, &d.HighScore, &d.MaxCombo, &zoneRanks,
	)
	if err == sql.ErrNoRows {
		return d, game.ErrNoSave
	}
	if err != nil {
		return d, fmt.Errorf("storage: cannot load campaign: %w", err)
	}

	d.StoryFlags = story.Flags(flags)
	d.Bag = decodeBag(bag)
	decodeInts(weaponKills, d.WeaponKills[:])
	decodeInts(zoneRanks, d.ZoneRanks[:])

	// A row that no longer validates is treated as absent rather than
	// crashing the title screen.
	if err := d.Validate(); err != nil {
		return game.SaveData{}, game.ErrNoSave
	}
	return d, nil
}

// Erase removes the campaign checkpoint.
func (s *Store) Erase() error {
	if _, err := s.db.Exec("DELETE FROM campaign WHERE id = 1"); err != nil {
		return fmt.Errorf("storage: cannot erase campaign: %w", err)
	}
	return nil
}

// Ensure Store satisfies the game's persistence interface.
var _ game.Saver = (*Store)(nil)

// RecordRun appends a finished campaign attempt to the history.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (outcome, score, level, zones_cleared, play_time, max_combo)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Outcome, r.Score, r.Level, r.ZonesCleared, r.PlayTime, r.MaxCombo,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the best N runs ordered by score descending.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, outcome, score, level, zones_cleared, play_time, max_combo, created_at
		 FROM runs ORDER BY score DESC LIMIT ?`, limit)
}

// RecentRuns retrieves the most recent N runs.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, outcome, score, level, zones_cleared, play_time, max_combo, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
}

func (s *Store) queryRuns(query string, limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Outcome, &r.Score, &r.Level, &r.ZonesCleared,
			&r.PlayTime, &r.MaxCombo, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// BestScore returns the highest run score, 0 when no runs exist.
func (s *Store) BestScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// parseTime handles both time.Time and string datetime values the driver
// may hand back.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// encodeBag packs inventory slots as "item:qty,..." with empty slots kept
// positionally, so the bag layout survives the round trip.
func encodeBag(bag [rpg.InvSize]rpg.Slot) string {
	parts := make([]string, len(bag))
	for i, slot := range bag {
		parts[i] = strconv.Itoa(int(slot.Item)) + ":" + strconv.Itoa(slot.Qty)
	}
	return strings.Join(parts, ",")
}

func decodeBag(s string) [rpg.InvSize]rpg.Slot {
	var bag [rpg.InvSize]rpg.Slot
	for i, part := range strings.Split(s, ",") {
		if i >= len(bag) {
			break
		}
		item, qty, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		id, err1 := strconv.Atoi(item)
		n, err2 := strconv.Atoi(qty)
		if err1 != nil || err2 != nil {
			continue
		}
		bag[i] = rpg.Slot{Item: rpg.Item(id), Qty: n}
	}
	return bag
}

// encodeInts joins a fixed-size tally as "a,b,c".
func encodeInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func decodeInts(s string, dst []int) {
	for i, part := range strings.Split(s, ",") {
		if i >= len(dst) {
			break
		}
		if v, err := strconv.Atoi(part); err == nil {
			dst[i] = v
		}
	}
}
