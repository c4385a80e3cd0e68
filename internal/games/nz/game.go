// Package nz implements N vs Z: find the single Z in a grid of Ns before
// the clock runs out. Each find adds time and rebuilds the grid; each miss
// costs time. Larger grids unlock as the best score grows.
package nz

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/swat-arcade/internal/config"
	"github.com/vovakirdan/swat-arcade/internal/core"
	"github.com/vovakirdan/swat-arcade/internal/registry"
	"github.com/vovakirdan/swat-arcade/internal/sim"
)

const (
	minWidth  = 24
	minHeight = 12
)

// Glyphs drawn for the N cells. From decoyGrid up, mirrored Ns are mixed in.
var nGlyphs = []rune{'N', 'И'}

const decoyGrid = 5

// Game implements the N vs Z letter hunt.
type Game struct {
	cfg      config.NZConfig
	rng      *rand.Rand
	round    *sim.Round
	field    sim.Field
	tickDur  time.Duration
	level    int
	unlocked int
	best     int

	score   int
	found   int
	misses  int
	grid    int
	cells   []rune
	zIndex  int
	cursor  int
	shownAt time.Duration

	message      string
	messageColor core.Color

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a new N vs Z game.
func New() *Game {
	cfg, _ := config.LoadNZ("")
	return &Game{cfg: cfg, unlocked: 1}
}

func init() {
	registry.Register("nz", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "nz"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "N vs Z"
}

// LoadConfig replaces the configuration with the YAML file at path.
func (g *Game) LoadConfig(path string) error {
	cfg, err := config.LoadNZ(path)
	if err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

// Difficulties returns the level names.
func (g *Game) Difficulties() []string {
	names := make([]string, 0, len(g.cfg.Levels))
	for _, l := range g.cfg.Levels {
		names = append(names, l.Name)
	}
	if len(names) == 0 {
		names = append(names, g.cfg.Level(0).Name)
	}
	return names
}

// Unlocked returns how many levels a best score opens.
func (g *Game) Unlocked(best int) int {
	return g.cfg.Unlocked(best)
}

// SetBest records the best score on file, unlocking levels.
func (g *Game) SetBest(best int) {
	g.best = best
	g.unlocked = max(g.unlocked, g.cfg.Unlocked(best))
}

// Reset builds a fresh idle round on the selected level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickDur = cfg.TickDuration()
	g.level = core.Clamp(cfg.Difficulty, 0, len(g.Difficulties())-1)
	g.unlocked = max(g.unlocked, g.cfg.Unlocked(g.best), g.level+1)
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	rc := g.cfg.Round
	rc.TimeLimit = g.cfg.Level(g.level).TimeLimit
	g.round = sim.NewRound(rc, sim.Hooks{
		Reset: g.clearRound,
		Begin: func(r *sim.Round) { g.newGrid(r.Now()) },
	})
	g.clearRound()
	g.cursor = 0
}

// Resize adapts the layout to a new screen size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.field = sim.NewField(w, h, g.cfg.Field)
	g.tooSmall = w < minWidth || h < minHeight
}

func (g *Game) clearRound() {
	g.score = 0
	g.found = 0
	g.misses = 0
	g.cells = nil
	g.message = ""
}

// selectLevel changes the level while idle, within the unlocked range.
func (g *Game) selectLevel(i int) {
	g.level = core.Clamp(i, 0, g.unlocked-1)
	g.round.SetTimeLimit(g.cfg.Level(g.level).TimeLimit)
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch g.round.Status() {
	case sim.StatusIdle:
		switch {
		case in.Has(core.ActionLeft):
			g.selectLevel(g.level - 1)
		case in.Has(core.ActionRight):
			g.selectLevel(g.level + 1)
		}
		if in.Has(core.ActionStart) || in.Has(core.ActionSwat) || len(in.Taps) > 0 {
			g.round.Start()
		}
		return core.StepResult{State: g.State()}
	case sim.StatusEnded:
		if in.Has(core.ActionRestart) || in.Has(core.ActionStart) {
			g.round.Restart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.round.TogglePause()
	}
	g.round.Advance(g.tickDur)

	if g.round.Playing() && !g.round.Paused() {
		g.moveCursor(in)
		if in.Has(core.ActionSwat) || in.Has(core.ActionStart) {
			g.pick(g.cursor)
		}
		for _, t := range in.Taps {
			if !g.round.Playing() {
				break
			}
			if i, ok := g.CellAt(t.X, t.Y); ok {
				g.pick(i)
			}
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	if g.grid == 0 {
		return
	}
	row, col := g.cursor/g.grid, g.cursor%g.grid
	switch {
	case in.Has(core.ActionLeft):
		col--
	case in.Has(core.ActionRight):
		col++
	}
	switch {
	case in.Has(core.ActionUp):
		row--
	case in.Has(core.ActionDown):
		row++
	}
	row = core.Clamp(row, 0, g.grid-1)
	col = core.Clamp(col, 0, g.grid-1)
	g.cursor = row*g.grid + col
}

// pick resolves a choice of cell i.
func (g *Game) pick(i int) {
	if i < 0 || i >= len(g.cells) {
		return
	}
	now := g.round.Now()

	if i != g.zIndex {
		g.misses++
		g.flash(fmt.Sprintf("Wrong! -%ds", int(g.cfg.MissPenalty/time.Second)), core.ColorNegative)
		g.round.AddTime(-g.cfg.MissPenalty)
		return
	}

	points := g.FindScore(now - g.shownAt)
	g.score += points
	g.found++
	g.round.AddTime(g.cfg.TimeBonus)
	g.flash(fmt.Sprintf("Found Z! +%ds  +%d", int(g.cfg.TimeBonus/time.Second), points), core.ColorBonus)

	if n := g.cfg.Unlocked(g.score); n > g.unlocked {
		g.unlocked = n
		g.flash(g.cfg.Level(n-1).Name+" unlocked!", core.ColorAccent)
	}
	g.newGrid(now)
}

// FindScore returns the points for finding the Z after taken:
// base × (1 + remaining/limit) × grid²/9, floored.
func (g *Game) FindScore(taken time.Duration) int {
	lvl := g.cfg.Level(g.level)
	speed := 1.0
	if lvl.TimeLimit > 0 {
		remaining := max(0, lvl.TimeLimit-taken)
		speed += float64(remaining) / float64(lvl.TimeLimit)
	}
	gridFactor := float64(lvl.Grid*lvl.Grid) / 9
	return int(math.Floor(float64(lvl.BaseScore) * speed * gridFactor))
}

func (g *Game) newGrid(now time.Duration) {
	lvl := g.cfg.Level(g.level)
	g.grid = max(1, lvl.Grid)
	n := g.grid * g.grid
	g.cells = make([]rune, n)
	for i := range g.cells {
		g.cells[i] = nGlyphs[0]
		if g.grid >= decoyGrid {
			g.cells[i] = nGlyphs[g.rng.Intn(len(nGlyphs))]
		}
	}
	g.zIndex = g.rng.Intn(n)
	g.cells[g.zIndex] = 'Z'
	g.cursor = core.Clamp(g.cursor, 0, n-1)
	g.shownAt = now
}

func (g *Game) flash(msg string, c core.Color) {
	g.message = msg
	g.messageColor = c
	if !g.round.Playing() || g.cfg.FlashTime <= 0 {
		return
	}
	g.round.Scheduler().After("message", g.cfg.FlashTime, func(time.Duration) {
		if g.message == msg {
			g.message = ""
		}
	})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:      g.score,
		Difficulty: g.level,
		Elapsed:    g.round.Elapsed(),
		GameOver:   g.round.Status() == sim.StatusEnded,
		Paused:     g.round.Paused() || g.tooSmall,
	}
}
