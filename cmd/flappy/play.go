package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-evo/internal/platform/tui"
	"github.com/vovakirdan/flappy-evo/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space/Up   - Flap
  P          - Pause
  R          - Restart (after game over)
  Esc/B      - Back (pauses first)
  Q/Ctrl+C   - Quit
  Ctrl+S     - Save a text screenshot to ~/.flappy/screenshots

Difficulty options:
  easy   - Wider gaps, slower pipes
  normal - The config as written
  hard   - Narrower gaps, faster pipes
  fixed  - The config as written

Examples:
  flappy play flappy
  flappy play flappy --difficulty hard
  flappy play flappy-autopilot
  flappy play flappy --config ./my-flappy.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'flappy list' to see available games", gameID)
	}

	// Fail on a broken config before the screen switches
	if _, err := loadConfig(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger := newLogger()
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, scoreSaver(store), runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
