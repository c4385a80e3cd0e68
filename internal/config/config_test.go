package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		name     string
		embedded []byte
		decode   func([]byte) (any, error)
		want     any
	}{
		{"swat", defaultSwatYAML, decodeAs[SwatConfig], DefaultSwatConfig()},
		{"swat_survival", defaultSurvivalYAML, decodeAs[SwatConfig], DefaultSurvivalConfig()},
		{"whack", defaultWhackYAML, decodeAs[SwatConfig], DefaultWhackConfig()},
		{"nz", defaultNZYAML, decodeAs[NZConfig], DefaultNZConfig()},
		{"wingfighter", defaultWingYAML, decodeAs[WingConfig], DefaultWingConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.decode(tt.embedded)
			if err != nil {
				t.Fatalf("embedded %s.yaml does not parse: %v", tt.name, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("embedded %s.yaml differs from hardcoded default:\n got %+v\nwant %+v", tt.name, got, tt.want)
			}
		})
	}
}

func decodeAs[T any](data []byte) (any, error) {
	var cfg T
	err := yaml.Unmarshal(data, &cfg)
	return cfg, err
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swat.yaml")
	data := []byte(`
round:
  countdown: 1
difficulties:
  - name: quick
    time_limit: 5s
    flies: 2
swarm:
  spawn:
    patterns: [zigzag]
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSwat(path)
	if err != nil {
		t.Fatalf("LoadSwat() failed: %v", err)
	}
	if cfg.Round.Countdown != 1 {
		t.Errorf("Countdown = %d, want 1", cfg.Round.Countdown)
	}
	if d := cfg.Difficulty(0); d.Name != "quick" || d.TimeLimit != 5*time.Second {
		t.Errorf("Difficulty(0) = %+v", d)
	}
	if len(cfg.Swarm.Spawn.Patterns) != 1 || cfg.Swarm.Spawn.Patterns[0].String() != "zigzag" {
		t.Errorf("Patterns = %v", cfg.Swarm.Spawn.Patterns)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadNZ(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("levels: [\n"), 0o644)
	if _, err := LoadNZ(bad); err == nil {
		t.Error("malformed custom config should be an error")
	}

	unknown := filepath.Join(t.TempDir(), "pattern.yaml")
	os.WriteFile(unknown, []byte("swarm:\n  spawn:\n    patterns: [spiral]\n"), 0o644)
	if _, err := LoadSwat(unknown); err == nil {
		t.Error("unknown pattern name should be an error")
	}
}

func TestSwarmForDifficulty(t *testing.T) {
	cfg := DefaultSwatConfig()

	tests := []struct {
		index    int
		min, max int
		limit    time.Duration
	}{
		{0, 5, 8, 60 * time.Second},
		{1, 7, 10, 30 * time.Second},
		{2, 10, 14, 20 * time.Second},
		{99, 10, 14, 20 * time.Second}, // clamped to hard
		{-1, 5, 8, 60 * time.Second},   // clamped to easy
	}
	for _, tt := range tests {
		s := cfg.SwarmFor(tt.index)
		if s.Spawn.Min != tt.min || s.Spawn.Initial != tt.min || s.Spawn.Max != tt.max {
			t.Errorf("SwarmFor(%d) population = %d/%d/%d, want %d/%d/%d",
				tt.index, s.Spawn.Min, s.Spawn.Initial, s.Spawn.Max, tt.min, tt.min, tt.max)
		}
		if r := cfg.RoundFor(tt.index); r.TimeLimit != tt.limit || r.Countdown != 3 {
			t.Errorf("RoundFor(%d) = %+v", tt.index, r)
		}
	}

	// Speed scaling must not leak into the shared config.
	hard := cfg.SwarmFor(2)
	if hard.Spawn.SpeedMax <= cfg.Swarm.Spawn.SpeedMax {
		t.Errorf("hard speed %f should exceed base %f", hard.Spawn.SpeedMax, cfg.Swarm.Spawn.SpeedMax)
	}
	if again := cfg.SwarmFor(1); again.Spawn.SpeedMax != cfg.Swarm.Spawn.SpeedMax {
		t.Errorf("normal speed changed to %f", again.Spawn.SpeedMax)
	}
}

func TestSurvivalHasNoClock(t *testing.T) {
	cfg := DefaultSurvivalConfig()
	for i := range cfg.Difficulties {
		if cfg.RoundFor(i).TimeLimit != 0 {
			t.Errorf("difficulty %d has a time limit", i)
		}
		s := cfg.SwarmFor(i)
		if s.Ceiling == 0 || s.Spawn.Max != 0 {
			t.Errorf("difficulty %d: ceiling %d max %d", i, s.Ceiling, s.Spawn.Max)
		}
	}
}

func TestWhackPopulation(t *testing.T) {
	s := DefaultWhackConfig().SwarmFor(0)
	if s.Spawn.Min != 2 || s.Spawn.Initial != 3 || s.Spawn.Max != 6 {
		t.Errorf("whack population = %d/%d/%d, want 2/3/6", s.Spawn.Min, s.Spawn.Initial, s.Spawn.Max)
	}
}

func TestNZUnlocked(t *testing.T) {
	cfg := DefaultNZConfig()
	tests := []struct {
		best int
		want int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{5999, 3},
		{15000, 6},
		{99999, 6},
	}
	for _, tt := range tests {
		if got := cfg.Unlocked(tt.best); got != tt.want {
			t.Errorf("Unlocked(%d) = %d, want %d", tt.best, got, tt.want)
		}
	}
	if l := cfg.Level(10); l.Name != "Master" {
		t.Errorf("Level(10) = %s, want Master", l.Name)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		n       int
		want    int
		wantErr bool
	}{
		{"", 3, 1, false},
		{"easy", 3, 0, false},
		{"Normal", 3, 1, false},
		{"hard", 3, 2, false},
		{"hard", 1, 0, false},
		{"4", 6, 3, false},
		{"0", 6, 0, true},
		{"7", 6, 0, true},
		{"insane", 3, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in, tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q, %d) err = %v, wantErr %v", tt.in, tt.n, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDifficulty(%q, %d) = %d, want %d", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultWingConfig().Difficulty
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0, 0); got != 0 {
		t.Errorf("Level at start = %f, want 0", got)
	}
	if got := dm.Level(0, 60*time.Second); got != 0.5 {
		t.Errorf("Level at 60s = %f, want 0.5", got)
	}
	if got := dm.Level(0, 10*time.Minute); got != 1 {
		t.Errorf("Level is capped at 1, got %f", got)
	}

	base, floor := 2*time.Second, 500*time.Millisecond
	if got := dm.SpawnInterval(base, floor, 0, 0); got != base {
		t.Errorf("SpawnInterval at start = %v, want %v", got, base)
	}
	if got := dm.SpawnInterval(base, floor, 0, 10*time.Minute); got != 600*time.Millisecond {
		t.Errorf("SpawnInterval at max = %v, want 600ms", got)
	}
	if got := dm.Speed(4, 0, 10*time.Minute); got != 10 {
		t.Errorf("Speed at max = %f, want 10", got)
	}
}

func TestApplyWingPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		start  float64
	}{
		{DifficultyEasy, 0},
		{DifficultyNormal, 0.3},
		{DifficultyHard, 0.7},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			wc := DefaultWingConfig()
			ApplyWingPreset(&wc, tt.preset)
			dm := NewDifficultyManager(wc.Difficulty)
			if !dm.IsEnabled() {
				t.Fatal("preset should keep the configured progression")
			}
			if got := dm.Level(0, 0); math.Abs(got-tt.start) > 1e-9 {
				t.Errorf("Level at start = %f, want %f", got, tt.start)
			}
			if got := dm.Level(0, 10*time.Minute); math.Abs(got-1) > 1e-9 {
				t.Errorf("Level at max = %f, want 1", got)
			}
		})
	}
}

func TestApplyWingPresetProgressionOff(t *testing.T) {
	wc := DefaultWingConfig()
	wc.Difficulty.Enabled = false
	ApplyWingPreset(&wc, DifficultyHard)
	dm := NewDifficultyManager(wc.Difficulty)

	if dm.IsEnabled() {
		t.Fatal("progression should stay off")
	}
	if got := dm.Level(500, time.Hour); got != 0.7 {
		t.Errorf("Level with progression off = %f, want the preset's 0.7", got)
	}
}
