// Package registry maps game IDs to factories. Games register themselves
// in init(), so the menu, the CLI and the SSH server discover them without
// importing each game by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/flappy-evo/internal/core"
)

// Game is a playable round driven by the platform loop. Implementations
// hold pure simulation state: no terminal, no timers, no storage.
type Game interface {
	// ID is the key used by the CLI and the score table.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new round with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions collected since the
	// previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state. It must not advance the round.
	Render(dst *core.Screen)

	// State reports score, game over, pause, generation and alive count.
	State() core.GameState
}

// Autonomous is implemented by games whose birds are steered by a
// controller rather than the keyboard. The player only watches.
type Autonomous interface {
	Autonomous() bool
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID         string
	Title      string
	Autonomous bool // Steered by a controller, not the player
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory. It panics on a duplicate or empty ID.
func Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if a, ok := g.(Autonomous); ok {
		info.Autonomous = a.Autonomous()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, info: info}
}

// List returns every registered game: player-steered games first, then by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		if a.Autonomous != b.Autonomous {
			if a.Autonomous {
				return 1
			}
			return -1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
