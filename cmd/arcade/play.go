package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swat-arcade/internal/config"
	"github.com/vovakirdan/swat-arcade/internal/platform/tui"
	"github.com/vovakirdan/swat-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Mouse click      - Swat at the clicked cell / pick a grid cell
  Arrows/WASD/hjkl - Move the crosshair, cursor or ship
  Space            - Swat at the crosshair / pick the cursor cell
  Enter            - Start the round
  P                - Pause
  R                - Play again after the round ended
  B/Esc            - Back
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot to ~/.arcade/screenshots

Difficulty:
  easy, normal, hard - Named presets (first, middle and last choice)
  1..n               - Level number, for games with numbered levels

Games with unlockable levels only accept levels your best score unlocked.

Examples:
  arcade play swat
  arcade play swat_survival --difficulty hard
  arcade play nz --difficulty 2
  arcade play whack --config ./my-whack.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard or a level number")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'arcade list' to see available games", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if flagConfig != "" {
		c, ok := game.(registry.Configurable)
		if !ok {
			return fmt.Errorf("%s does not take a config file", gameID)
		}
		if err := c.LoadConfig(flagConfig); err != nil {
			return err
		}
	}

	logger, closeLog := newLogger(logToFile, gameID)
	defer closeLog()
	svc, closeStore := openServices(logger)
	defer closeStore()

	cfg := runtimeConfig()

	if l, ok := game.(registry.Leveled); ok {
		names := l.Difficulties()
		d, err := config.ParseDifficulty(flagDifficulty, len(names))
		if err != nil {
			return err
		}
		if u, ok := game.(registry.Unlocker); ok {
			unlocked := u.Unlocked(svc.Scores.BestAny(gameID))
			if d >= unlocked {
				if flagDifficulty != "" {
					return fmt.Errorf("%s is locked; %d of %d levels are unlocked by your best score", names[d], unlocked, len(names))
				}
				d = unlocked - 1
			}
		}
		cfg.Difficulty = d
	}

	logger.Info("starting game", "game", gameID, "difficulty", cfg.Difficulty, "seed", cfg.Seed)
	if err := tui.Run(game, svc, cfg, playerName()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
