package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swat-arcade/internal/platform/web"
)

var flagHTTPAddr string

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Serve the leaderboard over HTTP",
	Long: `Start a read-only HTTP server exposing the high scores as JSON.

Endpoints:
  GET /api/games                        - Registered games and difficulties
  GET /api/scores/{game}                - Every list of a game
  GET /api/scores/{game}/{difficulty}   - One list (easy, normal, hard or a level number)
  GET /api/stats                        - Round statistics
  GET /healthz                          - Liveness probe

The table is read once at startup, so restart the board to pick up new
scores.

Examples:
  arcade board
  arcade board --http :9090`,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&flagHTTPAddr, "http", web.DefaultConfig().Address, "HTTP server address (host:port)")
}

func runBoard(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger(logToStderr, "arcade-web")
	defer closeLog()
	svc, closeStore := openServices(logger)
	defer closeStore()

	cfg := web.DefaultConfig()
	cfg.Address = flagHTTPAddr

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving leaderboard on %s\n", cfg.Address)
	return web.NewServer(cfg, svc.Scores, svc.Store, logger).ListenAndServe(ctx)
}
