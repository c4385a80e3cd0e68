// Package swat implements the fly-swatting minigames: the classic timed
// round, the survival swarm and whack-a-fly. All three run the shared
// sim.Swarm and differ only in configuration.
package swat

import (
	"math"
	"time"

	"github.com/vovakirdan/swat-arcade/internal/config"
	"github.com/vovakirdan/swat-arcade/internal/core"
	"github.com/vovakirdan/swat-arcade/internal/registry"
	"github.com/vovakirdan/swat-arcade/internal/sim"
)

// Mode selects which swatting game a Game plays.
type Mode string

const (
	ModeClassic  Mode = "swat"
	ModeSurvival Mode = "swat_survival"
	ModeWhack    Mode = "whack"
)

// Minimum screen size for a playable field.
const (
	minWidth  = 30
	minHeight = 12
)

var loaders = map[Mode]func(string) (config.SwatConfig, error){
	ModeClassic:  config.LoadSwat,
	ModeSurvival: config.LoadSurvival,
	ModeWhack:    config.LoadWhack,
}

// Game implements a fly-swatting round on top of sim.Swarm.
type Game struct {
	mode       Mode
	cfg        config.SwatConfig
	difficulty int
	tickDur    time.Duration
	tick       uint64

	round *sim.Round
	swarm *sim.Swarm

	// Keyboard crosshair, in screen cells
	crossX int
	crossY int

	last     sim.HitResult
	lastAt   time.Duration
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a classic Fly Swatter game.
func New() *Game {
	return newMode(ModeClassic)
}

// NewSurvival creates a Fly Swarm survival game.
func NewSurvival() *Game {
	return newMode(ModeSurvival)
}

// NewWhack creates a Whack-a-Fly game.
func NewWhack() *Game {
	return newMode(ModeWhack)
}

func newMode(m Mode) *Game {
	// Without an explicit path the loader always falls back to a default.
	cfg, _ := loaders[m]("")
	return &Game{mode: m, cfg: cfg}
}

func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeSurvival), func() registry.Game {
		return NewSurvival()
	})
	registry.Register(string(ModeWhack), func() registry.Game {
		return NewWhack()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeSurvival:
		return "Fly Swarm (Survival)"
	case ModeWhack:
		return "Whack-a-Fly"
	default:
		return "Fly Swatter"
	}
}

// LoadConfig replaces the configuration with the YAML file at path.
func (g *Game) LoadConfig(path string) error {
	cfg, err := loaders[g.mode](path)
	if err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

// Config returns the active configuration.
func (g *Game) Config() config.SwatConfig {
	return g.cfg
}

// Difficulties returns the selectable difficulty names.
func (g *Game) Difficulties() []string {
	names := make([]string, 0, len(g.cfg.Difficulties))
	for _, d := range g.cfg.Difficulties {
		names = append(names, d.Name)
	}
	if len(names) == 0 {
		names = append(names, "normal")
	}
	return names
}

// Reset builds a fresh idle round for the configured difficulty.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickDur = cfg.TickDuration()
	g.difficulty = core.Clamp(cfg.Difficulty, 0, len(g.Difficulties())-1)
	g.tick = 0
	g.last = sim.HitResult{}
	g.lastAt = 0
	g.tooSmall = g.screenW < minWidth || g.screenH < minHeight

	field := sim.NewField(g.screenW, g.screenH, g.cfg.Swarm.Field)
	swarm := sim.NewSwarm(g.cfg.SwarmFor(g.difficulty), field, cfg.Seed)
	swarm.SetBonus(g.hitBonus)
	g.swarm = swarm
	g.round = sim.NewRound(g.cfg.RoundFor(g.difficulty), sim.Hooks{
		Reset: swarm.Reset,
		Begin: swarm.Attach,
		End:   func(*sim.Round) { swarm.Clear() },
	})

	c := field.Center()
	g.crossX, g.crossY = int(c.X), int(c.Y)
}

// Resize adapts the field to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minWidth || h < minHeight
	if g.swarm == nil {
		return
	}
	field := sim.NewField(w, h, g.cfg.Swarm.Field)
	g.swarm.SetField(field)
	g.clampCrosshair()
}

// hitBonus adds the configured time and speed bonuses to a hit.
func (g *Game) hitBonus(e sim.Entity) int {
	s := g.cfg.Scoring
	bonus := 0
	if s.TimeBonusDivisor > 0 && !g.round.Survival() {
		bonus += int(g.round.TimeLeft()/time.Second) / s.TimeBonusDivisor
	}
	if s.SpeedBonus > 0 {
		bonus += int(math.Floor(e.Speed * s.SpeedBonus))
	}
	return bonus
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	switch g.round.Status() {
	case sim.StatusIdle:
		if in.Has(core.ActionStart) || in.Has(core.ActionSwat) || len(in.Taps) > 0 {
			g.round.Start()
		}
		return core.StepResult{State: g.State()}
	case sim.StatusEnded:
		if in.Has(core.ActionRestart) || in.Has(core.ActionStart) {
			g.last = sim.HitResult{}
			g.round.Restart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.round.TogglePause()
	}

	// Scheduled work (motion included) runs before taps are resolved.
	g.round.Advance(g.tickDur)

	if g.round.Playing() && !g.round.Paused() {
		g.moveCrosshair(in)
		if in.Has(core.ActionSwat) {
			g.tap(g.crossX, g.crossY)
		}
		for _, t := range in.Taps {
			g.tap(t.X, t.Y)
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCrosshair(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		g.crossX -= 2
	case in.Has(core.ActionRight):
		g.crossX += 2
	}
	switch {
	case in.Has(core.ActionUp):
		g.crossY--
	case in.Has(core.ActionDown):
		g.crossY++
	}
	g.clampCrosshair()
}

func (g *Game) clampCrosshair() {
	safe := g.swarm.Field().Safe()
	g.crossX = core.Clamp(g.crossX, int(safe.MinX), int(safe.MaxX))
	g.crossY = core.Clamp(g.crossY, int(safe.MinY), int(safe.MaxY))
}

// tap resolves a press on screen cell (x, y).
func (g *Game) tap(x, y int) {
	id, ok := g.EntityAt(x, y)
	if !ok {
		return
	}
	res := g.swarm.Resolve(g.round.Status(), id, g.round.Now())
	if res.Hit {
		g.last = res
		g.lastAt = g.round.Now()
	}
}

// EntityAt returns the entity whose hit box covers cell (x, y). When boxes
// overlap the entity closest to the cell wins.
func (g *Game) EntityAt(x, y int) (sim.EntityID, bool) {
	var (
		found bool
		best  sim.EntityID
		bestD = math.MaxFloat64
	)
	for _, e := range g.swarm.Entities() {
		if !hitBox(e).Contains(x, y) {
			continue
		}
		dx := float64(x) - math.Floor(e.Pos.X)
		dy := float64(y) - math.Floor(e.Pos.Y)
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD, found = e.ID, d, true
		}
	}
	return best, found
}

// hitBox pads the sprite by one cell on every side; a single terminal cell
// is too small a target for a moving fly.
func hitBox(e sim.Entity) core.Rect {
	return core.RectAround(e.Pos.X, e.Pos.Y, spriteWidth(e)+2, 3)
}

// Round exposes the round clock.
func (g *Game) Round() *sim.Round {
	return g.round
}

// Swarm exposes the entity simulation.
func (g *Game) Swarm() *sim.Swarm {
	return g.swarm
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:      g.swarm.Score(),
		Difficulty: g.difficulty,
		Elapsed:    g.round.Elapsed(),
		Survival:   g.round.Survival(),
		GameOver:   g.round.Status() == sim.StatusEnded,
		Paused:     g.round.Paused() || g.tooSmall,
	}
}
