package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration. The numbers
// reproduce the classic 600x800 flappy layout at a fixed timestep.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Playfield: PlayfieldConfig{
			Width:          600,
			Height:         800,
			FloorY:         730,
			TopBound:       -50,
			FloorTolerance: 10,
		},
		Bird: BirdConfig{
			SpawnX:               230,
			SpawnY:               350,
			Acceleration:         3,
			JumpVelocity:         -10.5,
			TerminalDisplacement: 16,
			RiseBoost:            2,
			MaxRotation:          25,
			MinRotation:          -90,
			RotationVelocity:     20,
			TiltLift:             50,
			AnimationTicks:       5,
		},
		Pipes: PipesConfig{
			Gap:         160,
			Velocity:    5,
			FirstSpawnX: 700,
			SpawnX:      600,
			MinGapY:     50,
			MaxGapY:     450,
		},
		Floor: FloorConfig{
			Velocity: 5,
		},
		Scoring: ScoringConfig{
			SurvivalReward:   0.1,
			PassBonus:        5,
			CollisionPenalty: 1,
			JumpThreshold:    0.5,
			ScoreCeiling:     25,
		},
		Training: TrainingConfig{
			Generations: 50,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
