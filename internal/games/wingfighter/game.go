// Package wingfighter implements Wing Fighter, a vertical shooter: the ship
// fires automatically while enemies fall from the top of the field. Letting
// an enemy through costs a life.
package wingfighter

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/swat-arcade/internal/config"
	"github.com/vovakirdan/swat-arcade/internal/core"
	"github.com/vovakirdan/swat-arcade/internal/registry"
	"github.com/vovakirdan/swat-arcade/internal/sim"
)

const (
	minWidth  = 30
	minHeight = 12

	motionInterval = time.Second / 60
)

var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

type star struct {
	pos   sim.Vec
	speed float64 // rows per second
}

// Game implements Wing Fighter.
type Game struct {
	cfg        config.WingConfig
	dm         *config.DifficultyManager
	rng        *rand.Rand
	round      *sim.Round
	field      sim.Field
	tickDur    time.Duration
	difficulty int
	tick       uint64

	score   int
	kills   int
	lives   int
	spawned int
	shipX   int

	nextID     sim.EntityID
	enemies    []sim.Entity
	bullets    []sim.Vec
	explosions []sim.Splat
	splatSeq   uint64
	stars      []star

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a new Wing Fighter game.
func New() *Game {
	cfg, _ := config.LoadWing("")
	return &Game{cfg: cfg}
}

func init() {
	registry.Register("wingfighter", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "wingfighter"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Wing Fighter"
}

// LoadConfig replaces the configuration with the YAML file at path.
func (g *Game) LoadConfig(path string) error {
	cfg, err := config.LoadWing(path)
	if err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

// Difficulties returns the selectable presets.
func (g *Game) Difficulties() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = string(p)
	}
	return names
}

// Reset builds a fresh idle round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickDur = cfg.TickDuration()
	g.difficulty = core.Clamp(cfg.Difficulty, 0, len(presets)-1)
	g.tick = 0

	dc := g.cfg
	config.ApplyWingPreset(&dc, presets[g.difficulty])
	g.dm = config.NewDifficultyManager(dc.Difficulty)

	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.round = sim.NewRound(g.cfg.Round, sim.Hooks{
		Reset: g.clearRound,
		Begin: g.attach,
		End: func(*sim.Round) {
			g.enemies = nil
			g.bullets = nil
		},
	})
	g.clearRound()
}

// Resize adapts the field to a new screen size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.field = sim.NewField(w, h, g.cfg.Field)
	g.tooSmall = w < minWidth || h < minHeight
	g.shipX = g.clampShip(g.shipX)
	g.seedStars()
}

func (g *Game) clearRound() {
	g.score = 0
	g.kills = 0
	g.spawned = 0
	g.lives = max(1, g.cfg.Lives)
	g.enemies = nil
	g.bullets = nil
	g.explosions = nil
	g.shipX = int(g.field.Center().X)
}

func (g *Game) seedStars() {
	if g.rng == nil {
		return
	}
	safe := g.field.Safe()
	g.stars = g.stars[:0]
	for range g.cfg.Stars {
		g.stars = append(g.stars, star{
			pos: sim.Vec{
				X: safe.MinX + g.rng.Float64()*(safe.MaxX-safe.MinX),
				Y: safe.MinY + g.rng.Float64()*(safe.MaxY-safe.MinY),
			},
			speed: 2 + g.rng.Float64()*4,
		})
	}
}

// shipY is the row the ship flies on.
func (g *Game) shipY() int {
	return int(g.field.Safe().MaxY)
}

func (g *Game) clampShip(x int) int {
	safe := g.field.Safe()
	return core.Clamp(x, int(safe.MinX)+1, int(safe.MaxX)-1)
}

// attach registers the playing-time tasks on the round's scheduler.
func (g *Game) attach(r *sim.Round) {
	sched := r.Scheduler()

	sched.Every("motion", sim.Fixed(motionInterval), func(time.Duration) {
		if r.Playing() {
			g.move(r, motionInterval)
		}
	})
	if g.cfg.FireInterval > 0 {
		sched.Every("fire", sim.Fixed(g.cfg.FireInterval), func(time.Duration) {
			if r.Playing() {
				g.fire()
			}
		})
	}
	spawnEvery := func() time.Duration {
		return g.dm.SpawnInterval(g.cfg.SpawnInterval, g.cfg.MinSpawnInterval, g.score, r.Elapsed())
	}
	sched.Every("spawn", spawnEvery, func(now time.Duration) {
		if r.Playing() {
			g.spawn(now)
		}
	})
}

func (g *Game) spawn(now time.Duration) {
	safe := g.field.Safe()
	lo, hi := safe.MinX+1, safe.MaxX-1
	g.nextID++
	g.spawned++
	g.enemies = append(g.enemies, sim.Entity{
		ID:        g.nextID,
		Pos:       sim.Vec{X: math.Floor(lo + g.rng.Float64()*(hi-lo+1)), Y: safe.MinY},
		Dir:       sim.Vec{Y: 1},
		Speed:     g.cfg.EnemySpeed,
		Size:      3,
		CreatedAt: now,
	})
}

// DoubleShot reports whether the ship fires two bullets per volley.
func (g *Game) DoubleShot() bool {
	return g.cfg.DoubleShotAfter > 0 && g.kills >= g.cfg.DoubleShotAfter
}

func (g *Game) fire() {
	y := float64(g.shipY() - 1)
	if g.DoubleShot() {
		g.bullets = append(g.bullets,
			sim.Vec{X: float64(g.shipX - 1), Y: y},
			sim.Vec{X: float64(g.shipX + 1), Y: y})
		return
	}
	g.bullets = append(g.bullets, sim.Vec{X: float64(g.shipX), Y: y})
}

// move advances stars, bullets and enemies by dt, then resolves hits and
// enemies that got past the ship.
func (g *Game) move(r *sim.Round, dt time.Duration) {
	secs := dt.Seconds()
	safe := g.field.Safe()

	for i := range g.stars {
		s := &g.stars[i]
		s.pos.Y += s.speed * secs
		if s.pos.Y > safe.MaxY {
			s.pos.Y = safe.MinY
			s.pos.X = safe.MinX + g.rng.Float64()*(safe.MaxX-safe.MinX)
		}
	}

	bullets := g.bullets[:0]
	for _, b := range g.bullets {
		b.Y -= g.cfg.BulletSpeed * secs
		if b.Y >= safe.MinY {
			bullets = append(bullets, b)
		}
	}
	g.bullets = bullets

	speed := g.dm.Speed(g.cfg.EnemySpeed, g.score, r.Elapsed())
	for i := range g.enemies {
		g.enemies[i].Speed = speed
		g.enemies[i].Pos.Y += speed * secs
	}

	g.collide(r.Now())

	bottom := float64(g.shipY())
	enemies := g.enemies[:0]
	escaped := 0
	for _, e := range g.enemies {
		if e.Pos.Y >= bottom {
			escaped++
			continue
		}
		enemies = append(enemies, e)
	}
	g.enemies = enemies

	if escaped > 0 {
		g.lives = max(0, g.lives-escaped)
		if g.lives == 0 {
			r.End()
		}
	}
}

// collide removes every enemy hit by a bullet along with that bullet.
func (g *Game) collide(now time.Duration) {
	bullets := g.bullets[:0]
	for _, b := range g.bullets {
		hit := -1
		for i, e := range g.enemies {
			if math.Abs(b.X-e.Pos.X) <= 1 && math.Abs(b.Y-e.Pos.Y) < 1 {
				hit = i
				break
			}
		}
		if hit < 0 {
			bullets = append(bullets, b)
			continue
		}
		e := g.enemies[hit]
		g.enemies = append(g.enemies[:hit], g.enemies[hit+1:]...)
		g.kills++
		g.score += g.cfg.KillPoints
		g.explode(e, now)
	}
	g.bullets = bullets
}

func (g *Game) explode(e sim.Entity, now time.Duration) {
	g.splatSeq++
	sp := sim.Splat{ID: g.splatSeq, Pos: e.Pos, Variant: e.Variant, CreatedAt: now}
	g.explosions = append(g.explosions, sp)
	if g.cfg.ExplosionDuration <= 0 {
		return
	}
	g.round.Scheduler().After("explosion", g.cfg.ExplosionDuration, func(time.Duration) {
		for i, x := range g.explosions {
			if x.ID == sp.ID {
				g.explosions = append(g.explosions[:i], g.explosions[i+1:]...)
				return
			}
		}
	})
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
			g.round.Restart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.round.TogglePause()
	}
	g.round.Advance(g.tickDur)

	if g.round.Playing() && !g.round.Paused() {
		step := max(1, g.cfg.ShipStep)
		switch {
		case in.Has(core.ActionLeft):
			g.shipX = g.clampShip(g.shipX - step)
		case in.Has(core.ActionRight):
			g.shipX = g.clampShip(g.shipX + step)
		}
		// The ship follows the pointer.
		for _, t := range in.Taps {
			g.shipX = g.clampShip(t.X)
		}
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:      g.score,
		Difficulty: g.difficulty,
		Elapsed:    g.round.Elapsed(),
		Survival:   g.round.Survival(),
		GameOver:   g.round.Status() == sim.StatusEnded,
		Paused:     g.round.Paused() || g.tooSmall,
	}
}
