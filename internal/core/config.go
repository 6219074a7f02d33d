package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second; pacing only, physics is fixed-step
	Seed     int64 // RNG seed for deterministic obstacle placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game as seen by the platform.
type GameState struct {
	Score      int  // Obstacles passed
	GameOver   bool // Whether the round has ended
	Paused     bool
	Generation int // Training generation, 0 outside training
	Alive      int // Active entities
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
