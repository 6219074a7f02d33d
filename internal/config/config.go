// Package config provides YAML-based configuration loading and validation
// for the flappy simulation, its trainer and the terminal front end.
package config

import "fmt"

// FlappyConfig contains every tunable of the simulation and its tooling.
type FlappyConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Bird      BirdConfig      `yaml:"bird"`
	Pipes     PipesConfig     `yaml:"pipes"`
	Floor     FloorConfig     `yaml:"floor"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Sprites   SpritesConfig   `yaml:"sprites"`
	Debug     DebugConfig     `yaml:"debug"`
	Training  TrainingConfig  `yaml:"training"`
}

// PlayfieldConfig defines the playfield geometry in pixels.
type PlayfieldConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	FloorY         float64 `yaml:"floor_y"`
	TopBound       float64 `yaml:"top_bound"`       // Birds above this are out of bounds
	FloorTolerance float64 `yaml:"floor_tolerance"` // Sprite pixels allowed to sink into the floor
}

// BirdConfig defines the flight dynamics.
type BirdConfig struct {
	SpawnX               float64 `yaml:"spawn_x"`
	SpawnY               float64 `yaml:"spawn_y"`
	Acceleration         float64 `yaml:"acceleration"`
	JumpVelocity         float64 `yaml:"jump_velocity"`
	TerminalDisplacement float64 `yaml:"terminal_displacement"`
	RiseBoost            float64 `yaml:"rise_boost"`
	MaxRotation          float64 `yaml:"max_rotation"`
	MinRotation          float64 `yaml:"min_rotation"`
	RotationVelocity     float64 `yaml:"rotation_velocity"`
	TiltLift             float64 `yaml:"tilt_lift"`
	AnimationTicks       int     `yaml:"animation_ticks"`
}

// PipesConfig defines obstacle generation and scrolling.
type PipesConfig struct {
	Gap         float64 `yaml:"gap"`
	Velocity    float64 `yaml:"velocity"`
	FirstSpawnX float64 `yaml:"first_spawn_x"`
	SpawnX      float64 `yaml:"spawn_x"`
	MinGapY     int     `yaml:"min_gap_y"`
	MaxGapY     int     `yaml:"max_gap_y"` // Exclusive
}

// FloorConfig defines the scrolling ground.
type FloorConfig struct {
	Velocity float64 `yaml:"velocity"`
}

// ScoringConfig defines fitness accounting and round termination.
type ScoringConfig struct {
	SurvivalReward   float64 `yaml:"survival_reward"`
	PassBonus        float64 `yaml:"pass_bonus"`
	CollisionPenalty float64 `yaml:"collision_penalty"`
	JumpThreshold    float64 `yaml:"jump_threshold"`
	ScoreCeiling     int     `yaml:"score_ceiling"` // 0 disables
}

// SpritesConfig points at optional PNG overrides for the silhouettes.
type SpritesConfig struct {
	Dir string `yaml:"dir"`
}

// DebugConfig gates debug-only rendering.
type DebugConfig struct {
	DrawLines bool `yaml:"draw_lines"`
}

// TrainingConfig defines the neuroevolution run.
type TrainingConfig struct {
	Generations int    `yaml:"generations"`
	NeatOptions string `yaml:"neat_options"` // goNEAT YAML options; embedded defaults when empty
	Parallel    bool   `yaml:"parallel"`     // Evaluate decisions concurrently within a tick
	Seed        int64  `yaml:"seed"`         // 0 means time-based
}

// ConfigError reports a missing or invalid tunable.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

// Validate checks that the configuration describes a playable simulation.
func (c FlappyConfig) Validate() error {
	positive := []struct {
		field string
		value float64
	}{
		{"playfield.width", float64(c.Playfield.Width)},
		{"playfield.height", float64(c.Playfield.Height)},
		{"playfield.floor_y", c.Playfield.FloorY},
		{"bird.acceleration", c.Bird.Acceleration},
		{"bird.terminal_displacement", c.Bird.TerminalDisplacement},
		{"bird.animation_ticks", float64(c.Bird.AnimationTicks)},
		{"pipes.gap", c.Pipes.Gap},
		{"pipes.velocity", c.Pipes.Velocity},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &ConfigError{Field: p.field, Reason: fmt.Sprintf("must be positive, got %v", p.value)}
		}
	}

	if c.Bird.JumpVelocity >= 0 {
		return &ConfigError{Field: "bird.jump_velocity", Reason: "must be negative (upwards)"}
	}
	if c.Bird.MinRotation > c.Bird.MaxRotation {
		return &ConfigError{Field: "bird.min_rotation", Reason: "must not exceed max_rotation"}
	}
	if c.Playfield.FloorY > float64(c.Playfield.Height) {
		return &ConfigError{Field: "playfield.floor_y", Reason: "must lie inside the playfield"}
	}
	if c.Pipes.MaxGapY <= c.Pipes.MinGapY {
		return &ConfigError{Field: "pipes.max_gap_y", Reason: "must be greater than min_gap_y"}
	}
	if c.Pipes.FirstSpawnX <= c.Bird.SpawnX || c.Pipes.SpawnX <= c.Bird.SpawnX {
		return &ConfigError{Field: "pipes.spawn_x", Reason: "obstacles must spawn ahead of the bird"}
	}
	if c.Scoring.ScoreCeiling < 0 {
		return &ConfigError{Field: "scoring.score_ceiling", Reason: "must not be negative"}
	}
	if c.Training.Generations < 0 {
		return &ConfigError{Field: "training.generations", Reason: "must not be negative"}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level for human play.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", &ConfigError{Field: "difficulty", Reason: fmt.Sprintf("unknown preset %q", s)}
	}
}
