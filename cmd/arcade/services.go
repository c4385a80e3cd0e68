package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/swat-arcade/internal/core"
	"github.com/vovakirdan/swat-arcade/internal/platform/tui"
	"github.com/vovakirdan/swat-arcade/internal/scores"
	"github.com/vovakirdan/swat-arcade/internal/storage"
)

// logTarget selects where a command writes its log.
type logTarget int

const (
	logToFile   logTarget = iota // the terminal belongs to the UI
	logToStderr                  // servers and plain-output commands
)

// newLogger creates the structured logger for a command. A log file that
// cannot be opened silences logging rather than corrupting the UI.
func newLogger(target logTarget, prefix string) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closeLog := func() {}

	if target == logToFile {
		w = io.Discard
		if path := expandHome(flagLogFile); path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
				if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
					w = f
					closeLog = func() { f.Close() }
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeLog
}

// openServices opens the database and loads the high-score table.
// Without a database the arcade still runs with an in-memory table.
func openServices(logger *log.Logger) (tui.Services, func()) {
	svc := tui.Services{Logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores will not be saved", "path", flagDBPath, "error", err)
		svc.Scores = scores.NewTable(nil, logger)
		return svc, func() {}
	}

	svc.Store = store
	svc.Scores = scores.NewTable(store, logger)
	svc.Scores.Load()

	return svc, func() {
		if err := store.Close(); err != nil {
			logger.Error("could not close database", "error", err)
		}
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// playerName is the default name offered in the high-score prompt.
func playerName() string {
	for _, v := range []string{"ARCADE_PLAYER", "USER", "USERNAME"} {
		if name := strings.TrimSpace(os.Getenv(v)); name != "" {
			return name
		}
	}
	return scores.DefaultName
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, path[1:])
}
