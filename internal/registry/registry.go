// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/swat-arcade/internal/core"
)

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "swat", "nz").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Fly Swatter").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and whenever the player picks another difficulty.
	// The RuntimeConfig provides screen dimensions, RNG seed and difficulty.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Swat, Pause, etc.)
	// and taps on screen cells.
	// Returns the result of this tick including current game state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Configurable is implemented by games that read a YAML configuration.
// LoadConfig replaces the default configuration with the file at path.
type Configurable interface {
	LoadConfig(path string) error
}

// Leveled is implemented by games with selectable difficulties.
// The difficulty index in core.RuntimeConfig refers to this list.
type Leveled interface {
	Difficulties() []string
}

// Unlocker is implemented by games whose difficulties unlock with the
// player's best score. Unlocked returns how many are selectable for best;
// SetBest tells the game the best score on record before a round.
type Unlocker interface {
	Unlocked(best int) int
	SetBest(best int)
}

// Resizable is implemented by games that can adapt to a new screen size
// without restarting the round.
type Resizable interface {
	Resize(w, h int)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Difficulties []string `json:"difficulties,omitempty"`
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title and difficulties by creating a temporary instance
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if l, ok := g.(Leveled); ok {
		info.Difficulties = l.Difficulties()
	}
	infos[id] = info
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Info returns the metadata of a registered game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
