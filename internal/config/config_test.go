package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultFlappyConfig() {
		t.Errorf("embedded YAML differs from DefaultFlappyConfig():\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := []byte("pipes:\n  gap: 180\nscoring:\n  score_ceiling: 0\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Pipes.Gap != 180 {
		t.Errorf("Pipes.Gap = %v, expected 180", cfg.Pipes.Gap)
	}
	if cfg.Scoring.ScoreCeiling != 0 {
		t.Errorf("ScoreCeiling = %d, expected 0", cfg.Scoring.ScoreCeiling)
	}
	// Untouched keys keep defaults
	if cfg.Bird.SpawnX != 230 || cfg.Pipes.Velocity != 5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("pipes:\n  velocity: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFlappy(path)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if cfgErr.Field != "pipes.velocity" {
		t.Errorf("Field = %q, expected pipes.velocity", cfgErr.Field)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*FlappyConfig)
		field string
	}{
		{"zero width", func(c *FlappyConfig) { c.Playfield.Width = 0 }, "playfield.width"},
		{"downward jump", func(c *FlappyConfig) { c.Bird.JumpVelocity = 3 }, "bird.jump_velocity"},
		{"inverted gap range", func(c *FlappyConfig) { c.Pipes.MaxGapY = c.Pipes.MinGapY }, "pipes.max_gap_y"},
		{"spawn behind bird", func(c *FlappyConfig) { c.Pipes.SpawnX = 100 }, "pipes.spawn_x"},
		{"floor below playfield", func(c *FlappyConfig) { c.Playfield.FloorY = 900 }, "playfield.floor_y"},
		{"negative ceiling", func(c *FlappyConfig) { c.Scoring.ScoreCeiling = -1 }, "scoring.score_ceiling"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mod(&cfg)
			err := cfg.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("Field = %q, expected %q", cfgErr.Field, tc.field)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyFixed {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("expected error for unknown preset")
	}

	cfg := DefaultFlappyConfig()
	ApplyPreset(&cfg, DifficultyEasy)
	if cfg.Pipes.Gap <= DefaultFlappyConfig().Pipes.Gap {
		t.Error("easy preset should widen the gap")
	}

	cfg = DefaultFlappyConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg != DefaultFlappyConfig() {
		t.Error("fixed preset should not modify the config")
	}
}
