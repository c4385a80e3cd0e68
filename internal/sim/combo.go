package sim

import (
	"math"
	"time"
)

// Milestone is a combo count that triggers a feedback message.
type Milestone struct {
	At      int    `yaml:"at"`
	Message string `yaml:"message"`
}

// ComboConfig parametrizes combo scoring.
type ComboConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Window        time.Duration `yaml:"window"`
	Step          float64       `yaml:"step"`
	MaxMultiplier float64       `yaml:"max_multiplier"`
	Milestones    []Milestone   `yaml:"milestones"`
}

// Combo tracks consecutive hits landing within the window.
type Combo struct {
	cfg     ComboConfig
	count   int
	mult    float64
	lastHit time.Duration
}

// NewCombo creates a combo tracker at baseline.
func NewCombo(cfg ComboConfig) Combo {
	return Combo{cfg: cfg, mult: 1}
}

// Hit registers a successful hit at now and returns the multiplier to apply,
// the running count and a milestone message ("" when none was crossed).
func (c *Combo) Hit(now time.Duration) (float64, int, string) {
	if !c.cfg.Enabled {
		return 1, 0, ""
	}
	if c.count > 0 && now-c.lastHit < c.cfg.Window {
		c.count++
	} else {
		c.count = 1
	}
	c.lastHit = now

	c.mult = 1 + c.cfg.Step*float64(c.count-1)
	if c.cfg.MaxMultiplier >= 1 {
		c.mult = math.Min(c.mult, c.cfg.MaxMultiplier)
	}

	msg := ""
	for _, m := range c.cfg.Milestones {
		if m.At == c.count {
			msg = m.Message
		}
	}
	return c.mult, c.count, msg
}

// Break resets the combo to baseline.
func (c *Combo) Break() {
	c.count = 0
	c.mult = 1
}

// Count returns the current combo length.
func (c *Combo) Count() int {
	return c.count
}

// Multiplier returns the multiplier applied to the last hit.
func (c *Combo) Multiplier() float64 {
	return c.mult
}
