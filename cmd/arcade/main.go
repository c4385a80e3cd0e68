// arcade is a terminal arcade of fly-swatting reflex games.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade stats             - Show round statistics for all games
//	arcade board             - Serve the leaderboard over HTTP
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.arcade/arcade.db)
//	--log-file <path>  - Log file for interactive commands (default: ~/.arcade/arcade.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/swat-arcade/internal/games/nz"
	_ "github.com/vovakirdan/swat-arcade/internal/games/swat"
	_ "github.com/vovakirdan/swat-arcade/internal/games/wingfighter"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Swat Arcade - Swat flies in your terminal",
	Long: `Swat Arcade is a collection of reflex minigames for the terminal:
swat flies with the mouse or a crosshair, survive a growing swarm, hunt
the Z among the Ns, or fly a fighter through falling enemies.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  stats    - View round statistics
  board    - Serve the leaderboard as JSON over HTTP

Examples:
  arcade list
  arcade play swat --difficulty hard
  arcade menu
  arcade serve --ssh :2222
  arcade scores swat_survival --difficulty easy`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/arcade.db", "Path to the arcade database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/arcade.log", "Log file used while the terminal UI runs")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(boardCmd)
}
