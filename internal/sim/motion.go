package sim

import (
	"math"
	"time"
)

// MotionConfig parametrizes the motion updater.
type MotionConfig struct {
	Interval         time.Duration `yaml:"interval"`          // motion tick period
	StepScale        float64       `yaml:"step_scale"`        // cells per unit speed per tick
	PatternIntensity float64       `yaml:"pattern_intensity"` // overlay amplitude in cells
	Padding          float64       `yaml:"padding"`           // extra gap kept from the safe edge
	Damping          float64       `yaml:"damping"`           // reflected component factor, 1 is elastic
	CenterPull       float64       `yaml:"center_pull"`       // weight of the pull toward center
}

// Move advances e by one motion tick at simulated time now. The entity
// always ends inside the safe area inset by its half-size and the padding,
// and its direction stays a unit vector.
func Move(e *Entity, f Field, cfg MotionConfig, sizes SizeRange, now time.Duration) {
	t := now.Seconds()
	var offset Vec
	switch e.Pattern {
	case PatternZigzag:
		a := t*1.2 + e.Phase
		offset = Vec{X: math.Sin(a), Y: math.Cos(a)}.Scale(cfg.PatternIntensity)
	case PatternCircular:
		a := t*0.8 + e.Phase
		offset = Vec{X: math.Sin(a), Y: math.Cos(a)}.Scale(2 * cfg.PatternIntensity)
	case PatternHover:
		if math.Sin(t*0.5+e.Phase) > 0.7 {
			return
		}
	}

	if sizes.Animated && e.Growth != 0 {
		e.Size += e.Growth * sizes.Rate
		if e.Size >= sizes.Max {
			e.Size, e.Growth = sizes.Max, -1
		} else if e.Size <= sizes.Min {
			e.Size, e.Growth = sizes.Min, 1
		}
	}

	center := f.Center()
	if cfg.CenterPull > 0 {
		if toCenter, ok := center.Sub(e.Pos).Normalize(); ok {
			e.Dir = e.Dir.Add(toCenter.Scale(cfg.CenterPull))
		}
	}

	next := e.Pos.Add(e.Dir.Scale(e.Speed * cfg.StepScale)).Add(offset)

	damping := cfg.Damping
	if damping <= 0 || damping > 1 {
		damping = 1
	}
	box := f.Safe().Inset(e.Size/2 + cfg.Padding)
	if next.X < box.MinX {
		next.X = box.MinX
		e.Dir.X = math.Abs(e.Dir.X) * damping
	} else if next.X > box.MaxX {
		next.X = box.MaxX
		e.Dir.X = -math.Abs(e.Dir.X) * damping
	}
	if next.Y < box.MinY {
		next.Y = box.MinY
		e.Dir.Y = math.Abs(e.Dir.Y) * damping
	} else if next.Y > box.MaxY {
		next.Y = box.MaxY
		e.Dir.Y = -math.Abs(e.Dir.Y) * damping
	}
	e.Pos = next

	if dir, ok := e.Dir.Normalize(); ok {
		e.Dir = dir
	} else if dir, ok := center.Sub(e.Pos).Normalize(); ok {
		e.Dir = dir
	} else {
		e.Dir = Vec{X: 1}
	}
}
