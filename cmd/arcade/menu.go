package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swat-arcade/internal/platform/tui"
	"github.com/vovakirdan/swat-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, left/right to pick a difficulty and
Enter to play. Leaving a game with B or Esc returns to the menu.

Controls:
  Up/Down/j/k    - Navigate menu
  Left/Right/h/l - Change difficulty
  Enter/Space    - Play
  Tab            - High scores
  Q              - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./arcade.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger(logToFile, "menu")
	defer closeLog()
	svc, closeStore := openServices(logger)
	defer closeStore()

	cfg := runtimeConfig()
	player := playerName()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(svc.Scores, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit || (menuResult.GameID == "" && !menuResult.WantsScoreboard) {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(svc.Scores, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil // User quit from scoreboard
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("could not create game", "game", menuResult.GameID, "error", err)
			continue
		}

		gameCfg := cfg
		gameCfg.Difficulty = menuResult.Difficulty
		if flagSeed == 0 {
			gameCfg.Seed = time.Now().UnixNano()
		}

		logger.Info("starting game", "game", menuResult.GameID, "difficulty", gameCfg.Difficulty)
		quit, err := tui.RunGame(game, svc, gameCfg, player)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}
