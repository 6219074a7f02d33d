package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-evo/internal/platform/tui"
	"github.com/vovakirdan/flappy-evo/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an interactive menu",
	Long: `Start in interactive menu mode.

Pick a game to play, train a population while watching it, replay the
best stored controller or browse the hall of fame. Every screen returns
to the menu when it ends.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Hall of fame
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 60`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	rc := runtimeConfig()
	for ctx.Err() == nil {
		res, err := tui.RunMenu(rc, true)
		if err != nil {
			return err
		}
		rc = res.Config
		if res.Quit {
			return nil
		}

		switch res.Kind {
		case tui.MenuScores:
			back, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if err != nil || !back {
				return err
			}

		case tui.MenuTrain:
			if _, err := train(ctx, cfg, store, logger, trainOptions{watch: true}); err != nil && ctx.Err() == nil {
				logger.Error("training failed", "err", err)
			}

		case tui.MenuReplay:
			champion, err := loadOrTrain(ctx, cfg, store, logger, 0, true)
			if err != nil {
				logger.Error("replay failed", "err", err)
				continue
			}
			back, err := replayInteractive(champion)
			if err != nil || !back {
				return err
			}

		case tui.MenuPlay:
			game, err := registry.Create(res.GameID)
			if err != nil {
				return err
			}
			back, err := tui.Run(game, scoreSaver(store), rc)
			if err != nil || !back {
				return err
			}
		}
	}
	return nil
}
