package sim

import (
	"math"
	"math/rand"
	"time"
)

// Mix is the variant distribution policy. Weights drive the random draw;
// the floor and ceilings bound the realized share over a round and
// self-correct the next pick when violated.
type Mix struct {
	BonusWeight     float64 `yaml:"bonus_weight"`
	NegativeWeight  float64 `yaml:"negative_weight"`
	NormalFloor     float64 `yaml:"normal_floor"`
	BonusCeiling    float64 `yaml:"bonus_ceiling"`
	NegativeCeiling float64 `yaml:"negative_ceiling"`
}

// SizeRange bounds an entity's size. When Animated is set entities grow
// and shrink between Min and Max by Rate cells per motion tick.
type SizeRange struct {
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Rate     float64 `yaml:"rate"`
	Animated bool    `yaml:"animated"`
}

// SpawnConfig parametrizes a Spawner.
type SpawnConfig struct {
	Min          int           `yaml:"min"`
	Max          int           `yaml:"max"`
	Initial      int           `yaml:"initial"`
	Interval     time.Duration `yaml:"interval"`
	MinInterval  time.Duration `yaml:"min_interval"`
	Acceleration float64       `yaml:"acceleration"` // interval factor per elapsed second
	SpeedMin     float64       `yaml:"speed_min"`
	SpeedMax     float64       `yaml:"speed_max"`
	Patterns     []Pattern     `yaml:"patterns"`
	FromEdges    bool          `yaml:"from_edges"`
	CenterBias   float64       `yaml:"center_bias"` // 0 uniform target, 1 dead center
	BonusTTL     time.Duration `yaml:"bonus_ttl"`
	NegativeTTL  time.Duration `yaml:"negative_ttl"`
	Mix          Mix           `yaml:"mix"`
}

// Spawner creates entities and tracks the variant distribution of the
// current round.
type Spawner struct {
	cfg    SpawnConfig
	sizes  SizeRange
	field  Field
	rng    *rand.Rand
	nextID EntityID
	counts [variantCount]int
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg SpawnConfig, sizes SizeRange, field Field, rng *rand.Rand) *Spawner {
	return &Spawner{cfg: cfg, sizes: sizes, field: field, rng: rng}
}

// Reset clears the round distribution. IDs keep increasing.
func (s *Spawner) Reset() {
	s.counts = [variantCount]int{}
}

// SetField updates the play area used for new spawns.
func (s *Spawner) SetField(f Field) {
	s.field = f
}

// Counts returns how many entities of each variant were spawned this round.
func (s *Spawner) Counts() (normal, bonus, negative int) {
	return s.counts[VariantNormal], s.counts[VariantBonus], s.counts[VariantNegative]
}

// Interval returns the spawn interval after elapsed round time.
func (s *Spawner) Interval(elapsed time.Duration) time.Duration {
	d := s.cfg.Interval
	if d <= 0 {
		return 0
	}
	if a := s.cfg.Acceleration; a > 0 && a < 1 {
		d = time.Duration(float64(d) * math.Pow(a, elapsed.Seconds()))
	}
	if d < s.cfg.MinInterval {
		d = s.cfg.MinInterval
	}
	return d
}

// Deficit returns how many entities are missing below the floor.
func (s *Spawner) Deficit(population int) int {
	return max(0, s.cfg.Min-population)
}

// HasRoom reports whether one more entity fits under the ceiling.
func (s *Spawner) HasRoom(population int) bool {
	return s.cfg.Max <= 0 || population < s.cfg.Max
}

// PickVariant draws a variant from the weights, forcing normal whenever
// the draw would break the floor or a ceiling.
func (s *Spawner) PickVariant() Variant {
	m := s.cfg.Mix
	r := s.rng.Float64()
	v := VariantNormal
	switch {
	case r < m.BonusWeight:
		v = VariantBonus
	case r < m.BonusWeight+m.NegativeWeight:
		v = VariantNegative
	}
	if v == VariantNormal {
		return v
	}

	total := float64(s.counts[VariantNormal] + s.counts[VariantBonus] + s.counts[VariantNegative] + 1)
	ceiling := m.BonusCeiling
	if v == VariantNegative {
		ceiling = m.NegativeCeiling
	}
	if float64(s.counts[v]+1)/total > ceiling {
		return VariantNormal
	}
	if float64(s.counts[VariantNormal])/total < m.NormalFloor {
		return VariantNormal
	}
	return v
}

// Spawn creates an entity of variant v at time now and counts it.
func (s *Spawner) Spawn(v Variant, now time.Duration) Entity {
	s.nextID++
	s.counts[v]++

	e := Entity{
		ID:        s.nextID,
		Variant:   v,
		CreatedAt: now,
		Speed:     s.cfg.SpeedMin + s.rng.Float64()*math.Max(0, s.cfg.SpeedMax-s.cfg.SpeedMin),
		Phase:     s.rng.Float64() * 2 * math.Pi,
		Size:      s.sizes.Min + s.rng.Float64()*math.Max(0, s.sizes.Max-s.sizes.Min),
	}
	if n := len(s.cfg.Patterns); n > 0 {
		e.Pattern = s.cfg.Patterns[s.rng.Intn(n)]
	}
	if s.sizes.Animated {
		e.Growth = 1
		if s.rng.Intn(2) == 0 {
			e.Growth = -1
		}
	}
	switch v {
	case VariantBonus:
		e.TTL = s.cfg.BonusTTL
	case VariantNegative:
		e.TTL = s.cfg.NegativeTTL
	}

	box := s.field.Safe().Inset(e.Size / 2)
	if s.cfg.FromEdges {
		e.Pos, e.Dir = s.edgeEntry(box)
	} else {
		e.Pos = Vec{
			X: box.MinX + s.rng.Float64()*(box.MaxX-box.MinX),
			Y: box.MinY + s.rng.Float64()*(box.MaxY-box.MinY),
		}
		e.Dir = s.randomDir()
	}
	return e
}

func (s *Spawner) randomDir() Vec {
	a := s.rng.Float64() * 2 * math.Pi
	return Vec{X: math.Cos(a), Y: math.Sin(a)}
}

// edgeEntry places an entity on a random edge of box aimed at a target
// pulled toward the center by CenterBias.
func (s *Spawner) edgeEntry(box Box) (Vec, Vec) {
	w, h := box.MaxX-box.MinX, box.MaxY-box.MinY
	var pos Vec
	switch s.rng.Intn(4) {
	case 0:
		pos = Vec{X: box.MinX + s.rng.Float64()*w, Y: box.MinY}
	case 1:
		pos = Vec{X: box.MaxX, Y: box.MinY + s.rng.Float64()*h}
	case 2:
		pos = Vec{X: box.MinX + s.rng.Float64()*w, Y: box.MaxY}
	default:
		pos = Vec{X: box.MinX, Y: box.MinY + s.rng.Float64()*h}
	}

	bias := math.Max(0, math.Min(1, s.cfg.CenterBias))
	target := Vec{
		X: box.MinX + s.rng.Float64()*w*(1-bias) + w*0.5*bias,
		Y: box.MinY + s.rng.Float64()*h*(1-bias) + h*0.5*bias,
	}
	dir, ok := target.Sub(pos).Normalize()
	if !ok {
		dir = s.randomDir()
	}
	return pos, dir
}
