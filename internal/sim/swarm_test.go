package sim

import (
	"testing"
	"time"
)

func testSwarmConfig() SwarmConfig {
	return SwarmConfig{
		Field: FieldConfig{Header: 2, Footer: 1, Margin: 1},
		Spawn: SpawnConfig{
			Min:         7,
			Max:         10,
			Initial:     7,
			Interval:    time.Second,
			MinInterval: 300 * time.Millisecond,
			SpeedMin:    0.5,
			SpeedMax:    1.5,
			Patterns:    []Pattern{PatternStraight, PatternZigzag, PatternCircular, PatternHover},
			BonusTTL:    3 * time.Second,
			NegativeTTL: 3 * time.Second,
			Mix:         testMix(),
		},
		Size:            SizeRange{Min: 1, Max: 2},
		Motion:          MotionConfig{Interval: 16 * time.Millisecond, StepScale: 0.3, PatternIntensity: 0.2, Padding: 0.5, Damping: 0.9, CenterPull: 0.02},
		Combo:           testCombo(),
		Points:          Points{Normal: 1, Bonus: 3, Negative: -2},
		Replenish:       true,
		SplatDuration:   500 * time.Millisecond,
		MessageDuration: time.Second,
		ExpiryInterval:  250 * time.Millisecond,
	}
}

// newTestRound wires a swarm to a 30 second round the way the fly games do.
func newTestRound(cfg SwarmConfig, limit time.Duration) (*Round, *Swarm) {
	s := NewSwarm(cfg, NewField(80, 24, cfg.Field), 42)
	r := NewRound(RoundConfig{Countdown: 3, TimeLimit: limit}, Hooks{
		Reset: s.Reset,
		Begin: s.Attach,
	})
	return r, s
}

func TestInitialPopulationReplenishedOnHit(t *testing.T) {
	r, s := newTestRound(testSwarmConfig(), 30*time.Second)
	r.Start()
	r.Advance(3 * time.Second)

	if r.Status() != StatusPlaying {
		t.Fatalf("status = %v, want playing", r.Status())
	}
	if s.Len() != 7 {
		t.Fatalf("population = %d after countdown, want 7", s.Len())
	}
	for _, e := range s.Entities() {
		if e.Variant != VariantNormal {
			t.Fatalf("initial entity %d is %v", e.ID, e.Variant)
		}
	}

	target := s.Entities()[0].ID
	res := s.Resolve(r.Status(), target, r.Now())
	if !res.Hit {
		t.Fatal("tap should hit")
	}
	if s.Len() != 7 {
		t.Errorf("population = %d after hit, want 7 (replenished)", s.Len())
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
	if _, ok := s.Find(target); ok {
		t.Error("hit entity still present")
	}
	if len(s.Splats()) != 1 || s.Splats()[0].Variant != VariantNormal {
		t.Errorf("expected one normal splat, got %+v", s.Splats())
	}
}

func TestNegativeHitNotReplenished(t *testing.T) {
	r, s := newTestRound(testSwarmConfig(), 30*time.Second)
	r.Start()
	r.Advance(3 * time.Second)

	s.score = 5
	neg := s.spawner.Spawn(VariantNegative, r.Now())
	s.entities = append(s.entities, neg)
	before := s.Len()

	res := s.Resolve(r.Status(), neg.ID, r.Now())

	if res.Points != -2 {
		t.Errorf("points = %d, want -2", res.Points)
	}
	if s.Score() != 3 {
		t.Errorf("score = %d, want 3", s.Score())
	}
	if s.Len() != before-1 {
		t.Errorf("population = %d, want %d (no replenish)", s.Len(), before-1)
	}
	if _, ok := s.Find(neg.ID); ok {
		t.Error("negative entity still present")
	}
}

func TestComboWithinWindow(t *testing.T) {
	r, s := newTestRound(testSwarmConfig(), 30*time.Second)
	r.Start()
	r.Advance(3 * time.Second)

	first := s.Resolve(r.Status(), s.Entities()[0].ID, r.Now())
	r.Advance(400 * time.Millisecond)
	second := s.Resolve(r.Status(), s.Entities()[0].ID, r.Now())

	if !first.Hit || !second.Hit {
		t.Fatal("both taps should hit")
	}
	if second.Combo != 2 {
		t.Errorf("combo = %d, want 2", second.Combo)
	}
	if second.Multiplier < 1.5 {
		t.Errorf("multiplier = %f, want >= 1.5", second.Multiplier)
	}
	if second.Points != 2 {
		t.Errorf("points = %d, want 1 x 1.5 rounded = 2", second.Points)
	}
}

func TestTimeUpFreezesSimulation(t *testing.T) {
	r, s := newTestRound(testSwarmConfig(), 2*time.Second)
	r.Start()
	r.Advance(3 * time.Second)

	tick := time.Second / 60
	ticks := 0
	for r.Status() == StatusPlaying {
		r.Advance(tick)
		ticks++
		if ticks > 200 {
			t.Fatal("round never ended")
		}
	}
	if r.Status() != StatusEnded {
		t.Fatalf("status = %v, want ended", r.Status())
	}
	if r.TimeLeft() != 0 {
		t.Errorf("TimeLeft = %v, want 0", r.TimeLeft())
	}

	frozen := append([]Entity(nil), s.Entities()...)
	n, b, neg := s.Spawner().Counts()
	spawned := n + b + neg

	r.Advance(5 * time.Second)
	r.Scheduler().Advance(5 * time.Second)

	if s.Len() != len(frozen) {
		t.Fatalf("population changed after end: %d -> %d", len(frozen), s.Len())
	}
	for i, e := range s.Entities() {
		if e.Pos != frozen[i].Pos {
			t.Errorf("entity %d moved after end", e.ID)
		}
	}
	n, b, neg = s.Spawner().Counts()
	if n+b+neg != spawned {
		t.Errorf("spawns after end: %d -> %d", spawned, n+b+neg)
	}
	if res := s.Resolve(r.Status(), s.Entities()[0].ID, r.Now()); res.Hit {
		t.Error("taps after end should be ignored")
	}
}

func TestResolveIgnoresStaleAndIdle(t *testing.T) {
	r, s := newTestRound(testSwarmConfig(), 30*time.Second)
	r.Start()

	// Still counting down.
	s.Populate(1, r.Now())
	if res := s.Resolve(r.Status(), s.Entities()[0].ID, r.Now()); res.Hit {
		t.Error("tap during countdown should be ignored")
	}

	r.Advance(3 * time.Second)
	id := s.Entities()[0].ID
	s.Resolve(r.Status(), id, r.Now())
	score := s.Score()
	if res := s.Resolve(r.Status(), id, r.Now()); res.Hit {
		t.Error("second tap on the same id should be a no-op")
	}
	if s.Score() != score {
		t.Errorf("stale tap changed score %d -> %d", score, s.Score())
	}
}

func TestSwarmSplatAndMessageExpire(t *testing.T) {
	r, s := newTestRound(testSwarmConfig(), 30*time.Second)
	r.Start()
	r.Advance(3 * time.Second)

	for i := 0; i < 3; i++ {
		s.Resolve(r.Status(), s.Entities()[0].ID, r.Now())
		r.Advance(100 * time.Millisecond)
	}
	if s.Message() != "GOOD!" {
		t.Errorf("message = %q after 3 quick hits, want GOOD!", s.Message())
	}
	if len(s.Splats()) != 3 {
		t.Errorf("splats = %d, want 3", len(s.Splats()))
	}

	r.Advance(time.Second)
	if len(s.Splats()) != 0 {
		t.Errorf("splats should expire, %d left", len(s.Splats()))
	}
	if s.Message() != "" {
		t.Errorf("message should clear, got %q", s.Message())
	}
}

func TestSwarmPopulationBounds(t *testing.T) {
	r, s := newTestRound(testSwarmConfig(), time.Minute)
	r.Start()
	r.Advance(3 * time.Second)

	safe := s.Field().Safe()
	for i := 0; i < 60*40; i++ {
		r.Advance(time.Second / 60)
		if i%45 == 0 && s.Len() > 0 {
			s.Resolve(r.Status(), s.Entities()[s.Len()-1].ID, r.Now())
		}
		if s.Len() < 7 || s.Len() > 10 {
			t.Fatalf("tick %d: population %d outside [7,10]", i, s.Len())
		}
		for _, e := range s.Entities() {
			if !safe.Contains(e.Pos) {
				t.Fatalf("tick %d: entity %d outside safe area", i, e.ID)
			}
		}
	}
}

func TestSwarmSurvivalCeiling(t *testing.T) {
	cfg := testSwarmConfig()
	cfg.Spawn.Min = 3
	cfg.Spawn.Initial = 3
	cfg.Spawn.Max = 0
	cfg.Spawn.Interval = 500 * time.Millisecond
	cfg.Spawn.Mix = Mix{NormalFloor: 1}
	cfg.Ceiling = 6

	r, s := newTestRound(cfg, 0)
	r.Start()
	r.Advance(3 * time.Second)
	r.Advance(10 * time.Second)

	if r.Status() != StatusEnded {
		t.Fatalf("status = %v, want ended at the ceiling", r.Status())
	}
	if s.Len() != 6 {
		t.Errorf("population = %d, want 6", s.Len())
	}
	if r.Elapsed() != 1500*time.Millisecond {
		t.Errorf("survived %v, want 1.5s", r.Elapsed())
	}
}

func TestSwarmBonusHook(t *testing.T) {
	cfg := testSwarmConfig()
	cfg.Combo.Enabled = false
	r, s := newTestRound(cfg, 30*time.Second)
	s.SetBonus(func(Entity) int { return 2 })
	r.Start()
	r.Advance(3 * time.Second)

	res := s.Resolve(r.Status(), s.Entities()[0].ID, r.Now())
	if res.Points != 3 {
		t.Errorf("points = %d, want 1 base + 2 bonus", res.Points)
	}
}

func TestSwarmDeterminism(t *testing.T) {
	run := func() []Entity {
		r, s := newTestRound(testSwarmConfig(), 30*time.Second)
		r.Start()
		for i := 0; i < 600; i++ {
			r.Advance(time.Second / 60)
			if i%30 == 0 && s.Len() > 0 && r.Playing() {
				s.Resolve(r.Status(), s.Entities()[0].ID, r.Now())
			}
		}
		return append([]Entity(nil), s.Entities()...)
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("populations differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entity %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
