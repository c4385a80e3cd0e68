package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swat-arcade/internal/config"
	"github.com/vovakirdan/swat-arcade/internal/registry"
)

var flagResetScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game.
Without --difficulty every difficulty that has scores is shown.

Examples:
  arcade scores swat
  arcade scores swat_survival --difficulty hard
  arcade scores nz --difficulty 3
  arcade scores whack --reset`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard or a level number")
	scoresCmd.Flags().BoolVar(&flagResetScores, "reset", false, "Clear the shown lists")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	info, ok := registry.Info(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q; run 'arcade list' to see available games", gameID)
	}

	logger, closeLog := newLogger(logToStderr, "scores")
	defer closeLog()
	svc, closeStore := openServices(logger)
	defer closeStore()
	table := svc.Scores

	difficulties := table.Difficulties(gameID)
	if cmd.Flags().Changed("difficulty") {
		d, err := config.ParseDifficulty(flagDifficulty, max(1, len(info.Difficulties)))
		if err != nil {
			return err
		}
		difficulties = []int{d}
	}

	if flagResetScores {
		for _, d := range difficulties {
			table.Reset(gameID, d)
		}
		fmt.Printf("High scores of %s cleared.\n", info.Title)
		return nil
	}

	fmt.Printf("High Scores - %s\n", info.Title)

	if len(difficulties) == 0 {
		fmt.Println()
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	for _, d := range difficulties {
		fmt.Println()
		if d < len(info.Difficulties) {
			fmt.Printf("[%s]\n", info.Difficulties[d])
		}

		top := table.Top(gameID, d)
		if len(top) == 0 {
			fmt.Println("  No scores recorded yet.")
			continue
		}

		survival := top[0].SurvivalTime > 0
		if survival {
			fmt.Printf("  %-4s  %-8s  %-20s  %-16s  %s\n", "Rank", "Score", "Name", "Date", "Time")
			fmt.Printf("  %-4s  %-8s  %-20s  %-16s  %s\n", "----", "-----", "----", "----", "----")
		} else {
			fmt.Printf("  %-4s  %-8s  %-20s  %s\n", "Rank", "Score", "Name", "Date")
			fmt.Printf("  %-4s  %-8s  %-20s  %s\n", "----", "-----", "----", "----")
		}

		for i, r := range top {
			date := r.Date.Format("2006-01-02 15:04")
			if survival {
				fmt.Printf("  %-4d  %-8d  %-20s  %-16s  %.1fs\n", i+1, r.Score, r.PlayerName, date, r.SurvivalTime)
			} else {
				fmt.Printf("  %-4d  %-8d  %-20s  %s\n", i+1, r.Score, r.PlayerName, date)
			}
		}
	}

	return nil
}
