// flappy runs the flappy simulation in the terminal: play it, evolve
// controllers for it with NEAT, and replay the best of them.
//
// Usage:
//
//	flappy list              - List playable games
//	flappy play <game>       - Play a game
//	flappy menu              - Start menu to pick what to do
//	flappy train             - Evolve a new population
//	flappy replay            - Watch a stored controller
//	flappy scores [game]     - Show high scores and stored controllers
//	flappy serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible rounds
//	--db <path>          - Set database path (default: ~/.flappy/flappy.db)
//	--config <path>      - Custom simulation config YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-evo/internal/config"
	"github.com/vovakirdan/flappy-evo/internal/games/flappy"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", cfgErr)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Evo - play flappy and evolve birds that play it",
	Long: `Flappy Evo is a deterministic flappy simulation with a NEAT trainer.

Available commands:
  list     - Show all playable games
  play     - Play a specific game directly
  menu     - Interactive menu
  train    - Evolve a fresh population of controllers
  replay   - Replay a stored controller
  scores   - View high scores and stored controllers
  serve    - Start SSH server for remote play

Examples:
  flappy play flappy
  flappy train --generations 30 --watch
  flappy replay --id 3
  flappy serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		flappy.SetConfigPath(flagConfig)
		flappy.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second); pacing only")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config seed, or time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/flappy.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
