// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"time"

	"github.com/vovakirdan/swat-arcade/internal/sim"
)

// SwatConfig contains all configuration for a fly-swatting game
// (classic, survival and whack-a-fly share this shape).
type SwatConfig struct {
	Round        sim.RoundConfig  `yaml:"round"`
	Difficulties []SwatDifficulty `yaml:"difficulties"`
	Swarm        sim.SwarmConfig  `yaml:"swarm"`
	Scoring      SwatScoring      `yaml:"scoring"`
}

// SwatDifficulty is one selectable difficulty of a swatting game.
type SwatDifficulty struct {
	Name       string        `yaml:"name"`
	TimeLimit  time.Duration `yaml:"time_limit"`  // 0 plays until the swarm ceiling
	Flies      int           `yaml:"flies"`       // population floor
	Initial    int           `yaml:"initial"`     // population at round start, 0 means Flies
	Extra      int           `yaml:"extra"`       // headroom above the floor for spawned extras
	Ceiling    int           `yaml:"ceiling"`     // survival only: population that ends the round
	SpeedScale float64       `yaml:"speed_scale"` // multiplies the swarm speed range
}

// SwatScoring holds per-hit bonuses on top of the variant points.
type SwatScoring struct {
	TimeBonusDivisor int     `yaml:"time_bonus_divisor"` // adds timeLeft/divisor per hit, 0 disables
	SpeedBonus       float64 `yaml:"speed_bonus"`        // adds floor(speed*factor) per hit
}

// Difficulty returns the difficulty at index i, clamped to the list.
func (c SwatConfig) Difficulty(i int) SwatDifficulty {
	if len(c.Difficulties) == 0 {
		return SwatDifficulty{Name: "normal", Flies: c.Swarm.Spawn.Min}
	}
	return c.Difficulties[clampIndex(i, len(c.Difficulties))]
}

// SwarmFor returns the swarm configuration with difficulty i applied.
func (c SwatConfig) SwarmFor(i int) sim.SwarmConfig {
	d := c.Difficulty(i)
	s := c.Swarm
	if d.Flies > 0 {
		s.Spawn.Min = d.Flies
		s.Spawn.Initial = d.Flies
		s.Spawn.Max = d.Flies + d.Extra
	}
	if d.Initial > 0 {
		s.Spawn.Initial = d.Initial
	}
	if d.Ceiling > 0 {
		s.Ceiling = d.Ceiling
		s.Spawn.Max = 0
	}
	if d.SpeedScale > 0 {
		s.Spawn.SpeedMin *= d.SpeedScale
		s.Spawn.SpeedMax *= d.SpeedScale
	}
	return s
}

// RoundFor returns the round clock configuration for difficulty i.
func (c SwatConfig) RoundFor(i int) sim.RoundConfig {
	r := c.Round
	r.TimeLimit = c.Difficulty(i).TimeLimit
	return r
}

// NZConfig contains all configuration for the N vs Z letter hunt.
type NZConfig struct {
	Round       sim.RoundConfig `yaml:"round"`
	Field       sim.FieldConfig `yaml:"field"`
	Levels      []NZLevel       `yaml:"levels"`
	TimeBonus   time.Duration   `yaml:"time_bonus"`   // added when the Z is found
	MissPenalty time.Duration   `yaml:"miss_penalty"` // removed on a wrong pick
	FlashTime   time.Duration   `yaml:"flash_time"`   // how long feedback messages stay
}

// NZLevel is one grid level.
type NZLevel struct {
	Name      string        `yaml:"name"`
	Grid      int           `yaml:"grid"`
	TimeLimit time.Duration `yaml:"time_limit"`
	BaseScore int           `yaml:"base_score"`
	UnlockAt  int           `yaml:"unlock_at"` // best score required to select the level
}

// Level returns the level at index i, clamped to the list.
func (c NZConfig) Level(i int) NZLevel {
	if len(c.Levels) == 0 {
		return NZLevel{Name: "Level 1", Grid: 3, TimeLimit: 20 * time.Second, BaseScore: 50}
	}
	return c.Levels[clampIndex(i, len(c.Levels))]
}

// Unlocked returns how many levels are available for a best score.
// The first level is always available.
func (c NZConfig) Unlocked(best int) int {
	n := 0
	for _, l := range c.Levels {
		if best >= l.UnlockAt {
			n++
		}
	}
	return max(1, n)
}

// WingConfig contains all configuration for Wing Fighter.
type WingConfig struct {
	Round             sim.RoundConfig  `yaml:"round"`
	Field             sim.FieldConfig  `yaml:"field"`
	Lives             int              `yaml:"lives"`
	ShipStep          int              `yaml:"ship_step"`     // cells per key press
	FireInterval      time.Duration    `yaml:"fire_interval"` // auto-fire period
	BulletSpeed       float64          `yaml:"bullet_speed"`  // rows per second
	EnemySpeed        float64          `yaml:"enemy_speed"`   // rows per second at level 0
	SpawnInterval     time.Duration    `yaml:"spawn_interval"`
	MinSpawnInterval  time.Duration    `yaml:"min_spawn_interval"`
	KillPoints        int              `yaml:"kill_points"`
	DoubleShotAfter   int              `yaml:"double_shot_after"` // kills before the double shot
	ExplosionDuration time.Duration    `yaml:"explosion_duration"`
	Stars             int              `yaml:"stars"`
	Difficulty        DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to speed at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction"`  // fraction of the spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IndexForPreset maps a preset to a difficulty index among n choices:
// easy is the first, hard the last, normal the middle one.
func IndexForPreset(preset DifficultyPreset, n int) int {
	if n <= 1 {
		return 0
	}
	switch preset {
	case DifficultyEasy:
		return 0
	case DifficultyHard:
		return n - 1
	default:
		return n / 2
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
