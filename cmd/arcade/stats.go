package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swat-arcade/internal/registry"
	"github.com/vovakirdan/swat-arcade/internal/storage"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show round statistics",
	Long: `Summarize every finished round stored in the database: rounds played,
best and average score and the longest round per game. With a game
argument the most recent rounds of that game are listed too.

Examples:
  arcade stats
  arcade stats swat_survival --recent 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent rounds to list for a game")
}

func runStats(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		return printGameStats(store, args[0])
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No rounds played yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-22s  %6s  %8s  %8s  %8s  %s\n", "Game", "Rounds", "Best", "Average", "Longest", "Last played")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-22s  %6d  %8d  %8.1f  %8s  %s\n",
			gameTitle(id), st.RoundsCount, st.HighScore, st.AvgScore,
			st.LongestPlay.Round(time.Second), st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printGameStats(store *storage.Store, gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'arcade list' to see available games", gameID)
	}

	st, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n\n", gameTitle(gameID))
	if st.RoundsCount == 0 {
		fmt.Println("No rounds played yet.")
		return nil
	}
	fmt.Printf("  Rounds:  %d\n  Best:    %d\n  Average: %.1f\n  Total:   %d\n  Longest: %s\n",
		st.RoundsCount, st.HighScore, st.AvgScore, st.TotalScore, st.LongestPlay.Round(time.Second))

	rounds, err := store.RecentRounds(gameID, flagRecent)
	if err != nil {
		return err
	}
	info, _ := registry.Info(gameID)
	fmt.Println()
	fmt.Printf("  %-16s  %-10s  %8s  %8s  %s\n", "Date", "Difficulty", "Score", "Time", "Player")
	for _, r := range rounds {
		diff := fmt.Sprint(r.Difficulty)
		if r.Difficulty < len(info.Difficulties) {
			diff = info.Difficulties[r.Difficulty]
		}
		fmt.Printf("  %-16s  %-10s  %8d  %8s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), diff, r.Score, r.Duration.Round(100*time.Millisecond), r.PlayerName)
	}
	return nil
}

func gameTitle(id string) string {
	if info, ok := registry.Info(id); ok {
		return info.Title
	}
	return id
}
