package sim

import (
	"math"
	"math/rand"
	"time"
)

// Points holds the base value of each variant.
type Points struct {
	Normal   int `yaml:"normal"`
	Bonus    int `yaml:"bonus"`
	Negative int `yaml:"negative"`
}

// For returns the base value of v.
func (p Points) For(v Variant) int {
	switch v {
	case VariantBonus:
		return p.Bonus
	case VariantNegative:
		return p.Negative
	default:
		return p.Normal
	}
}

// SwarmConfig is the full parametrization of one swatting game.
type SwarmConfig struct {
	Field           FieldConfig   `yaml:"field"`
	Spawn           SpawnConfig   `yaml:"spawn"`
	Size            SizeRange     `yaml:"size"`
	Motion          MotionConfig  `yaml:"motion"`
	Combo           ComboConfig   `yaml:"combo"`
	Points          Points        `yaml:"points"`
	Replenish       bool          `yaml:"replenish"`        // normal hits respawn immediately
	Ceiling         int           `yaml:"ceiling"`          // population that ends a survival round, 0 disables
	SplatDuration   time.Duration `yaml:"splat_duration"`
	MessageDuration time.Duration `yaml:"message_duration"`
	ExpiryInterval  time.Duration `yaml:"expiry_interval"`
}

// HitResult describes the outcome of a resolved tap.
type HitResult struct {
	Hit        bool
	Entity     Entity
	Points     int
	Multiplier float64
	Combo      int
	Message    string
}

// Swarm is the shared entity simulation: population, motion, hit
// resolution, splats and the running score.
type Swarm struct {
	cfg      SwarmConfig
	field    Field
	rng      *rand.Rand
	spawner  *Spawner
	combo    Combo
	entities []Entity
	splats   []Splat
	splatSeq uint64
	score    int
	hits     int
	message  string
	sched    *Scheduler
	bonus    func(Entity) int
}

// NewSwarm creates an empty swarm on field f.
func NewSwarm(cfg SwarmConfig, f Field, seed int64) *Swarm {
	rng := rand.New(rand.NewSource(seed))
	return &Swarm{
		cfg:     cfg,
		field:   f,
		rng:     rng,
		spawner: NewSpawner(cfg.Spawn, cfg.Size, f, rng),
		combo:   NewCombo(cfg.Combo),
	}
}

// Config returns the swarm configuration.
func (s *Swarm) Config() SwarmConfig { return s.cfg }

// Field returns the current play area.
func (s *Swarm) Field() Field { return s.field }

// Spawner returns the swarm's spawner.
func (s *Swarm) Spawner() *Spawner { return s.spawner }

// Entities returns the live entities. The slice must not be modified.
func (s *Swarm) Entities() []Entity { return s.entities }

// Splats returns the visible splats.
func (s *Swarm) Splats() []Splat { return s.splats }

// Len returns the live population.
func (s *Swarm) Len() int { return len(s.entities) }

// Score returns the running score.
func (s *Swarm) Score() int { return s.score }

// Hits returns the number of resolved hits this round.
func (s *Swarm) Hits() int { return s.hits }

// Message returns the current combo feedback message, if any.
func (s *Swarm) Message() string { return s.message }

// Combo returns the current combo count and multiplier.
func (s *Swarm) Combo() (int, float64) {
	return s.combo.Count(), s.combo.Multiplier()
}

// SetBonus installs a per-hit bonus added to the base value of normal and
// bonus variants before the combo multiplier.
func (s *Swarm) SetBonus(fn func(Entity) int) {
	s.bonus = fn
}

// Find returns the live entity with the given id.
func (s *Swarm) Find(id EntityID) (Entity, bool) {
	if i := s.index(id); i >= 0 {
		return s.entities[i], true
	}
	return Entity{}, false
}

// Reset clears entities, splats, score and combo for a new round.
func (s *Swarm) Reset() {
	s.Clear()
	s.score = 0
	s.hits = 0
	s.message = ""
	s.combo.Break()
	s.spawner.Reset()
	s.sched = nil
}

// Clear removes every entity and splat.
func (s *Swarm) Clear() {
	s.entities = s.entities[:0]
	s.splats = s.splats[:0]
}

// SetField changes the play area and pulls every entity back inside it.
func (s *Swarm) SetField(f Field) {
	s.field = f
	s.spawner.SetField(f)
	for i := range s.entities {
		e := &s.entities[i]
		e.Pos = f.Safe().Inset(e.Size/2 + s.cfg.Motion.Padding).Clamp(e.Pos)
	}
}

// Populate spawns n normal entities.
func (s *Swarm) Populate(n int, now time.Duration) {
	for i := 0; i < n && s.spawner.HasRoom(len(s.entities)); i++ {
		s.entities = append(s.entities, s.spawner.Spawn(VariantNormal, now))
	}
}

// TopUp spawns normal entities until the population floor is met and
// returns how many were added.
func (s *Swarm) TopUp(now time.Duration) int {
	n := s.spawner.Deficit(len(s.entities))
	before := len(s.entities)
	s.Populate(n, now)
	return len(s.entities) - before
}

// SpawnTick is the periodic spawn check: top up to the floor, then add one
// entity of a drawn variant if the ceiling allows.
func (s *Swarm) SpawnTick(now time.Duration) int {
	added := s.TopUp(now)
	if s.spawner.HasRoom(len(s.entities)) {
		s.entities = append(s.entities, s.spawner.Spawn(s.spawner.PickVariant(), now))
		added++
	}
	return added
}

// Move runs one motion tick on every entity.
func (s *Swarm) Move(now time.Duration) {
	for i := range s.entities {
		Move(&s.entities[i], s.field, s.cfg.Motion, s.cfg.Size, now)
	}
}

// Expire removes entities whose TTL ran out, tops the population back up
// and returns the number removed.
func (s *Swarm) Expire(now time.Duration) int {
	kept := s.entities[:0]
	for _, e := range s.entities {
		if !e.Expired(now) {
			kept = append(kept, e)
		}
	}
	removed := len(s.entities) - len(kept)
	s.entities = kept
	if removed > 0 {
		s.TopUp(now)
	}
	return removed
}

// AtCeiling reports whether a survival ceiling is configured and reached.
func (s *Swarm) AtCeiling() bool {
	return s.cfg.Ceiling > 0 && len(s.entities) >= s.cfg.Ceiling
}

// Resolve applies a tap on entity id. Taps outside playing and taps on
// entities that no longer exist are ignored.
func (s *Swarm) Resolve(status Status, id EntityID, now time.Duration) HitResult {
	if status != StatusPlaying {
		return HitResult{}
	}
	i := s.index(id)
	if i < 0 {
		return HitResult{}
	}
	e := s.entities[i]
	s.entities = append(s.entities[:i], s.entities[i+1:]...)

	base := s.cfg.Points.For(e.Variant)
	res := HitResult{Hit: true, Entity: e, Multiplier: 1}
	if e.Variant == VariantNegative {
		s.combo.Break()
	} else {
		if s.bonus != nil {
			base += s.bonus(e)
		}
		res.Multiplier, res.Combo, res.Message = s.combo.Hit(now)
	}
	res.Points = int(math.Round(float64(base) * res.Multiplier))
	s.score += res.Points
	s.hits++

	s.addSplat(e, now)
	if res.Message != "" {
		s.showMessage(res.Message)
	}
	if e.Variant == VariantNormal && s.cfg.Replenish && s.spawner.HasRoom(len(s.entities)) {
		s.entities = append(s.entities, s.spawner.Spawn(VariantNormal, now))
	}
	s.TopUp(now)
	return res
}

// Attach registers the swarm's periodic work on a round entering playing:
// initial population, motion, spawning, expiry and the survival ceiling.
func (s *Swarm) Attach(r *Round) {
	sched := r.Scheduler()
	s.sched = sched
	now := sched.Now()

	initial := s.cfg.Spawn.Initial
	if initial <= 0 {
		initial = s.cfg.Spawn.Min
	}
	s.Populate(initial, now)

	motion := s.cfg.Motion.Interval
	if motion <= 0 {
		motion = time.Second / 60
	}
	sched.Every("motion", Fixed(motion), func(now time.Duration) {
		if r.Playing() {
			s.Move(now)
		}
	})

	if s.cfg.Spawn.Interval > 0 {
		interval := func() time.Duration { return s.spawner.Interval(r.Elapsed()) }
		sched.Every("spawn", interval, func(now time.Duration) {
			if !r.Playing() {
				return
			}
			s.SpawnTick(now)
			if s.AtCeiling() {
				r.End()
			}
		})
	}

	if s.cfg.ExpiryInterval > 0 {
		sched.Every("expire", Fixed(s.cfg.ExpiryInterval), func(now time.Duration) {
			if r.Playing() {
				s.Expire(now)
			}
		})
	}
}

func (s *Swarm) addSplat(e Entity, now time.Duration) {
	s.splatSeq++
	sp := Splat{ID: s.splatSeq, Pos: e.Pos, Variant: e.Variant, CreatedAt: now}
	s.splats = append(s.splats, sp)
	if s.sched == nil || s.cfg.SplatDuration <= 0 {
		return
	}
	s.sched.After("splat", s.cfg.SplatDuration, func(time.Duration) {
		s.removeSplat(sp.ID)
	})
}

func (s *Swarm) removeSplat(id uint64) {
	for i, sp := range s.splats {
		if sp.ID == id {
			s.splats = append(s.splats[:i], s.splats[i+1:]...)
			return
		}
	}
}

func (s *Swarm) showMessage(msg string) {
	s.message = msg
	if s.sched == nil || s.cfg.MessageDuration <= 0 {
		return
	}
	s.sched.After("message", s.cfg.MessageDuration, func(time.Duration) {
		if s.message == msg {
			s.message = ""
		}
	})
}

func (s *Swarm) index(id EntityID) int {
	for i, e := range s.entities {
		if e.ID == id {
			return i
		}
	}
	return -1
}
