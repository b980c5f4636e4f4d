// Package config provides YAML-based configuration for the platform:
// display rate, difficulty preset, save storage, and the SSH server.
package config

import "fmt"

// Config is the full platform configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Game    GameConfig    `yaml:"game"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

// DisplayConfig controls the terminal presentation.
type DisplayConfig struct {
	FPS int `yaml:"fps"` // simulation and redraw rate
}

// GameConfig holds gameplay-facing settings. StartZone skips ahead for
// practice runs and is normally left at zero.
type GameConfig struct {
	Difficulty DifficultyPreset `yaml:"difficulty"`
	StartZone  int              `yaml:"start_zone,omitempty"`
}

// ServerConfig configures the SSH server for the serve command.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// StorageConfig locates the save database. An empty path falls back to
// ~/.stardrift/stardrift.db.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Tuning is the integer scaling a preset applies to the simulation. HP and
// fire-interval factors are in eighths (8 = stock) so the fixed-point core
// never sees a float.
type Tuning struct {
	EnemyHPEighths  int // enemy HP multiplier
	FireRateEighths int // enemy fire interval multiplier; lower fires faster
	MercyFrames     int // invincibility window after an overlay closes
}

// TuningForPreset maps a preset to its simulation scaling.
func TuningForPreset(preset DifficultyPreset) Tuning {
	switch preset {
	case DifficultyEasy:
		return Tuning{EnemyHPEighths: 6, FireRateEighths: 10, MercyFrames: 180}
	case DifficultyHard:
		return Tuning{EnemyHPEighths: 10, FireRateEighths: 7, MercyFrames: 60}
	default:
		return Tuning{EnemyHPEighths: 8, FireRateEighths: 8, MercyFrames: 120}
	}
}

// Validate rejects configurations the platform cannot run with.
func (c *Config) Validate() error {
	if c.Display.FPS < 10 || c.Display.FPS > 120 {
		return fmt.Errorf("config: fps %d out of range (10-120)", c.Display.FPS)
	}
	switch c.Game.Difficulty {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
	default:
		return fmt.Errorf("config: unknown difficulty %q", c.Game.Difficulty)
	}
	if c.Game.StartZone < 0 || c.Game.StartZone > 2 {
		return fmt.Errorf("config: start zone %d out of range (0-2)", c.Game.StartZone)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Server.Port)
	}
	return nil
}
