package config

import (
	_ "embed"
)

//go:embed defaults/stardrift.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration, used when no file is
// found and as the fallback if the embedded YAML fails to parse.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{FPS: 60},
		Game:    GameConfig{Difficulty: DifficultyNormal},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        23234,
			HostKeyPath: ".ssh/stardrift_ed25519",
		},
	}
}
