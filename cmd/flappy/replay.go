package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	flagReplayID int64
	flagHeadless bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a stored controller",
	Long: `Fly a stored controller through a fresh round.

Without --id the best stored controller is used. When no usable
controller exists a new population is trained first.

Examples:
  flappy replay
  flappy replay --id 7
  flappy replay --headless --seed 1`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Int64Var(&flagReplayID, "id", 0, "Controller ID (0 = best)")
	replayCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Simulate without drawing and print the result")
}

func runReplay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	champion, err := loadOrTrain(ctx, cfg, store, logger, flagReplayID, false)
	if err != nil {
		return err
	}

	if !flagHeadless {
		_, err := replayInteractive(champion)
		return err
	}

	res, err := replayHeadless(ctx, cfg, champion)
	if err != nil {
		return err
	}
	outcome := res.Outcomes[0]
	fmt.Printf("Controller #%d: score %d after %d ticks, fitness %.1f (%s)\n",
		champion.ID, res.Score, res.Ticks, outcome.Fitness, outcome.Cause)
	return nil
}
