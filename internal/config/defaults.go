package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/swat-arcade/internal/sim"
)

//go:embed defaults/swat.yaml
var defaultSwatYAML []byte

//go:embed defaults/swat_survival.yaml
var defaultSurvivalYAML []byte

//go:embed defaults/whack.yaml
var defaultWhackYAML []byte

//go:embed defaults/nz.yaml
var defaultNZYAML []byte

//go:embed defaults/wingfighter.yaml
var defaultWingYAML []byte

func defaultCombo() sim.ComboConfig {
	return sim.ComboConfig{
		Enabled:       true,
		Window:        time.Second,
		Step:          0.5,
		MaxMultiplier: 4,
		Milestones: []sim.Milestone{
			{At: 3, Message: "GOOD!"},
			{At: 5, Message: "GREAT!"},
			{At: 8, Message: "AMAZING!"},
		},
	}
}

func allPatterns() []sim.Pattern {
	return []sim.Pattern{sim.PatternStraight, sim.PatternZigzag, sim.PatternCircular, sim.PatternHover}
}

// DefaultSwatConfig returns the default classic Fly Swatter configuration.
func DefaultSwatConfig() SwatConfig {
	return SwatConfig{
		Round: sim.RoundConfig{Countdown: 3},
		Difficulties: []SwatDifficulty{
			{Name: "easy", TimeLimit: 60 * time.Second, Flies: 5, Extra: 3, SpeedScale: 0.8},
			{Name: "normal", TimeLimit: 30 * time.Second, Flies: 7, Extra: 3, SpeedScale: 1.0},
			{Name: "hard", TimeLimit: 20 * time.Second, Flies: 10, Extra: 4, SpeedScale: 1.3},
		},
		Swarm: sim.SwarmConfig{
			Field: sim.FieldConfig{Header: 2, Footer: 1, Margin: 1},
			Spawn: sim.SpawnConfig{
				Interval:     1500 * time.Millisecond,
				MinInterval:  600 * time.Millisecond,
				Acceleration: 0.99,
				SpeedMin:     0.08,
				SpeedMax:     0.2,
				Patterns:     allPatterns(),
				BonusTTL:     4 * time.Second,
				NegativeTTL:  5 * time.Second,
				Mix: sim.Mix{
					BonusWeight:     0.2,
					NegativeWeight:  0.2,
					NormalFloor:     0.6,
					BonusCeiling:    0.2,
					NegativeCeiling: 0.2,
				},
			},
			Size: sim.SizeRange{Min: 1, Max: 1},
			Motion: sim.MotionConfig{
				Interval:         16 * time.Millisecond,
				StepScale:        1.0,
				PatternIntensity: 0.05,
				Damping:          0.95,
				CenterPull:       0.01,
			},
			Combo:           defaultCombo(),
			Points:          sim.Points{Normal: 1, Bonus: 3, Negative: -2},
			Replenish:       true,
			SplatDuration:   time.Second,
			MessageDuration: time.Second,
			ExpiryInterval:  250 * time.Millisecond,
		},
	}
}

// DefaultSurvivalConfig returns the default Fly Swarm survival configuration.
func DefaultSurvivalConfig() SwatConfig {
	cfg := DefaultSwatConfig()
	cfg.Difficulties = []SwatDifficulty{
		{Name: "easy", Flies: 3, Ceiling: 18, SpeedScale: 0.8},
		{Name: "normal", Flies: 4, Ceiling: 15, SpeedScale: 1.0},
		{Name: "hard", Flies: 5, Ceiling: 12, SpeedScale: 1.3},
	}
	cfg.Swarm.Spawn.Interval = 2 * time.Second
	cfg.Swarm.Spawn.MinInterval = 400 * time.Millisecond
	cfg.Swarm.Spawn.Acceleration = 0.97
	cfg.Swarm.Spawn.Mix.BonusWeight = 0.15
	cfg.Swarm.Spawn.Mix.NegativeWeight = 0.15
	cfg.Swarm.Motion.Damping = 0.9
	cfg.Swarm.Motion.CenterPull = 0.015
	cfg.Swarm.Replenish = false
	return cfg
}

// DefaultWhackConfig returns the default Whack-a-Fly configuration.
func DefaultWhackConfig() SwatConfig {
	return SwatConfig{
		Round: sim.RoundConfig{Countdown: 3},
		Difficulties: []SwatDifficulty{
			{Name: "normal", TimeLimit: 45 * time.Second, Flies: 2, Initial: 3, Extra: 4, SpeedScale: 1.0},
		},
		Swarm: sim.SwarmConfig{
			Field: sim.FieldConfig{Header: 2, Footer: 1, Margin: 1},
			Spawn: sim.SpawnConfig{
				Interval:     2 * time.Second,
				MinInterval:  500 * time.Millisecond,
				Acceleration: 0.9,
				SpeedMin:     0.1,
				SpeedMax:     0.18,
				Patterns:     allPatterns(),
				FromEdges:    true,
				CenterBias:   0.7,
			},
			Size: sim.SizeRange{Min: 1, Max: 3, Rate: 0.02, Animated: true},
			Motion: sim.MotionConfig{
				Interval:         16 * time.Millisecond,
				StepScale:        1.0,
				PatternIntensity: 0.08,
				Padding:          0.5,
				Damping:          1.0,
			},
			Points:        sim.Points{Normal: 1},
			SplatDuration: time.Second,
		},
		Scoring: SwatScoring{TimeBonusDivisor: 10, SpeedBonus: 10},
	}
}

// DefaultNZConfig returns the default N vs Z configuration.
func DefaultNZConfig() NZConfig {
	return NZConfig{
		Round:       sim.RoundConfig{Countdown: 3},
		Field:       sim.FieldConfig{Header: 2, Footer: 1, Margin: 1},
		TimeBonus:   time.Second,
		MissPenalty: 3 * time.Second,
		FlashTime:   time.Second,
		Levels: []NZLevel{
			{Name: "Level 1", Grid: 3, TimeLimit: 20 * time.Second, BaseScore: 50, UnlockAt: 0},
			{Name: "Level 2", Grid: 4, TimeLimit: 15 * time.Second, BaseScore: 100, UnlockAt: 1000},
			{Name: "Level 3", Grid: 5, TimeLimit: 12 * time.Second, BaseScore: 150, UnlockAt: 3000},
			{Name: "Level 4", Grid: 6, TimeLimit: 10 * time.Second, BaseScore: 200, UnlockAt: 6000},
			{Name: "Level 5", Grid: 7, TimeLimit: 8 * time.Second, BaseScore: 300, UnlockAt: 10000},
			{Name: "Master", Grid: 8, TimeLimit: 6 * time.Second, BaseScore: 500, UnlockAt: 15000},
		},
	}
}

// DefaultWingConfig returns the default Wing Fighter configuration.
func DefaultWingConfig() WingConfig {
	return WingConfig{
		Round:             sim.RoundConfig{Countdown: 3},
		Field:             sim.FieldConfig{Header: 2, Footer: 1},
		Lives:             3,
		ShipStep:          2,
		FireInterval:      200 * time.Millisecond,
		BulletSpeed:       30,
		EnemySpeed:        4,
		SpawnInterval:     2 * time.Second,
		MinSpawnInterval:  500 * time.Millisecond,
		KillPoints:        100,
		DoubleShotAfter:   5,
		ExplosionDuration: 400 * time.Millisecond,
		Stars:             40,
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: "time", MaxAt: 120},
			Scaling:      ScalingConfig{SpeedMultiplier: 1.5, SpawnReduction: 0.7},
		},
	}
}
