package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load resolves the configuration.
// Search order: customPath -> $STARDRIFT_CONFIG -> ./stardrift.yaml ->
// ~/.config/stardrift/config.yaml -> embedded default.
// An explicitly named file that is missing or invalid is an error; files
// found by searching are skipped silently when unreadable.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		return loadFile(customPath)
	}
	if envPath := os.Getenv("STARDRIFT_CONFIG"); envPath != "" {
		return loadFile(envPath)
	}

	for _, path := range []string{"stardrift.yaml", userConfigPath()} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := DefaultConfig()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			continue
		}
		if err := cfg.Validate(); err != nil {
			continue
		}
		return cfg, nil
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns ~/.config/stardrift/config.yaml, or empty when the
// home directory is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "stardrift", "config.yaml")
}

// DatabasePath resolves the save database location: the configured path, or
// ~/.stardrift/stardrift.db, or a working-directory fallback.
func (c *Config) DatabasePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "stardrift.db"
	}
	return filepath.Join(home, ".stardrift", "stardrift.db")
}
