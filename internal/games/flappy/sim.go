package flappy

import (
	"context"

	"github.com/vovakirdan/flappy-evo/internal/config"
	"github.com/vovakirdan/flappy-evo/internal/policy"
)

// Simulator creates and drives rounds. It holds only immutable settings and
// may be shared by several rounds.
type Simulator struct {
	cfg      config.FlappyConfig
	sprites  *Sprites
	kin      Kinematics
	collider Collider

	// Parallel evaluates decisions concurrently within a tick. Results are
	// applied in spawn order either way.
	Parallel bool
}

// NewSimulator creates a simulator. A nil sprite set selects the built-in art.
func NewSimulator(cfg config.FlappyConfig, sprites *Sprites) *Simulator {
	if sprites == nil {
		sprites = DefaultSprites()
	}
	return &Simulator{
		cfg:      cfg,
		sprites:  sprites,
		kin:      NewKinematics(cfg.Bird),
		collider: NewCollider(sprites),
		Parallel: cfg.Training.Parallel,
	}
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() config.FlappyConfig { return s.cfg }

// Sprites returns the sprite set used for collision tests.
func (s *Simulator) Sprites() *Sprites { return s.sprites }

// NewRound spawns one bird per decider and the first obstacle. Agent IDs
// are the decider indices. The same seed always yields the same obstacles.
func (s *Simulator) NewRound(deciders []policy.Decider, seed int64, generation int) *Round {
	return newRound(s, deciders, seed, generation)
}

// Run steps the round until it ends or ctx is cancelled. Cancellation is
// checked between ticks only. The observer, if any, sees every tick.
func (s *Simulator) Run(ctx context.Context, r *Round, obs Observer) (RoundResult, error) {
	for !r.Over() {
		if err := ctx.Err(); err != nil {
			return r.Result(), err
		}
		events := r.Step()
		if obs != nil {
			obs.Observe(r.Snapshot(), events)
		}
	}
	return r.Result(), nil
}
