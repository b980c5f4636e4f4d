package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	body := []byte("display:\n  fps: 30\ngame:\n  difficulty: hard\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.FPS != 30 {
		t.Errorf("fps = %d, want 30", cfg.Display.FPS)
	}
	if cfg.Game.Difficulty != DifficultyHard {
		t.Errorf("difficulty = %q, want hard", cfg.Game.Difficulty)
	}
	// Unset sections keep their defaults.
	if cfg.Server.Port != 23234 {
		t.Errorf("port = %d, want the default", cfg.Server.Port)
	}
}

func TestLoadExplicitPathMissingIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("a named file that does not exist must fail")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yaml")
	if err := os.WriteFile(path, []byte("display:\n  fps: 45\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STARDRIFT_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.FPS != 45 {
		t.Errorf("fps = %d, want the env-pointed file", cfg.Display.FPS)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fps too low", func(c *Config) { c.Display.FPS = 5 }},
		{"fps too high", func(c *Config) { c.Display.FPS = 500 }},
		{"unknown difficulty", func(c *Config) { c.Game.Difficulty = "brutal" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if cfg.Validate() == nil {
				t.Error("invalid config passed validation")
			}
		})
	}

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

func TestTuningForPreset(t *testing.T) {
	if got := TuningForPreset(DifficultyNormal); got.EnemyHPEighths != 8 || got.FireRateEighths != 8 {
		t.Errorf("normal tuning = %+v, want stock", got)
	}
	easy := TuningForPreset(DifficultyEasy)
	hard := TuningForPreset(DifficultyHard)
	if easy.EnemyHPEighths >= hard.EnemyHPEighths {
		t.Error("easy enemies must be softer than hard ones")
	}
	if easy.FireRateEighths <= hard.FireRateEighths {
		t.Error("easy enemies must fire slower than hard ones")
	}
	if easy.MercyFrames <= hard.MercyFrames {
		t.Error("easy must grant the longer mercy window")
	}
	if got := TuningForPreset("unknown"); got != TuningForPreset(DifficultyNormal) {
		t.Error("unknown presets fall back to normal")
	}
}
