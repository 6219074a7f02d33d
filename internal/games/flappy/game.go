// Package flappy implements the deterministic flappy simulation: bird
// kinematics, obstacle generation, a scrolling floor, pixel-mask collision
// and the round controller that drives any number of birds at once.
//
// A single-bird wrapper registers the simulation as a playable game.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/flappy-evo/internal/config"
	"github.com/vovakirdan/flappy-evo/internal/core"
	"github.com/vovakirdan/flappy-evo/internal/policy"
	"github.com/vovakirdan/flappy-evo/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select the
// configuration as written.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyFixed
	}
	difficultyPreset = p
}

// Game runs a one-bird round as an interactive game.
type Game struct {
	id      string
	title   string
	decider policy.Decider
	human   *policy.Human // Non-nil when a player steers the bird

	sim      *Simulator
	round    *Round
	renderer *Renderer
	paused   bool
	runtime  core.RuntimeConfig

	loaded    *config.FlappyConfig // Last config read without error
	configErr error
}

// New creates the player-controlled game.
func New() *Game {
	h := &policy.Human{}
	return &Game{id: "flappy", title: "Flappy Bird", decider: h, human: h}
}

// NewAgentGame creates a game whose bird is steered by d.
func NewAgentGame(id, title string, d policy.Decider) *Game {
	return &Game{id: id, title: title, decider: d}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Autonomous reports whether a controller steers the bird.
func (g *Game) Autonomous() bool {
	return g.human == nil
}

// ConfigErr returns the error from the last config load, if any. The game
// keeps running on the last valid config, or the defaults before one was
// ever read.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadFlappy(configPath)
	g.configErr = err
	switch {
	case err == nil:
		g.loaded = &cfg
	case g.loaded != nil:
		cfg = *g.loaded
	default:
		cfg = config.DefaultFlappyConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	// Interactive rounds last until the bird dies
	cfg.Scoring.ScoreCeiling = 0

	sprites := DefaultSprites()
	if cfg.Sprites.Dir != "" {
		if s, err := LoadSprites(cfg.Sprites.Dir); err == nil {
			sprites = s
		}
	}

	g.sim = NewSimulator(cfg, sprites)
	g.sim.Parallel = false
	g.renderer = NewRenderer(sprites, cfg.Debug)
	g.round = g.sim.NewRound([]policy.Decider{g.decider}, runtime.Seed, 0)
	g.paused = false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.round.Over() {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.human != nil && in.Has(core.ActionJump) {
		g.human.Press()
	}
	g.round.Step()

	return core.StepResult{State: g.State()}
}

// Snapshot returns the renderable state of the current round.
func (g *Game) Snapshot() Snapshot {
	return g.round.Snapshot()
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderer.Render(dst, g.round.Snapshot())

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.round.Over() {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.round.Score()))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.round.Score(),
		GameOver: g.round.Over(),
		Paused:   g.paused,
		Alive:    g.round.Alive(),
	}
}

// Register the games with the registry
func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
	registry.Register("flappy-autopilot", func() registry.Game {
		return NewAgentGame("flappy-autopilot", "Flappy Bird (autopilot)", policy.NewHeuristic())
	})
}
