package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// load resolves a game configuration.
// Search order: customPath -> ~/.arcade/configs/<name>.yaml -> ./configs/<name>.yaml
// -> embedded default -> hardcoded default.
// Only an explicit customPath that cannot be read or parsed is an error.
func load[T any](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := name + ".yaml"
	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var fromFile T
		if err := yaml.Unmarshal(data, &fromFile); err == nil {
			return fromFile, nil
		}
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadSwat loads the classic Fly Swatter configuration.
func LoadSwat(customPath string) (SwatConfig, error) {
	return load("swat", customPath, defaultSwatYAML, DefaultSwatConfig)
}

// LoadSurvival loads the Fly Swarm survival configuration.
func LoadSurvival(customPath string) (SwatConfig, error) {
	return load("swat_survival", customPath, defaultSurvivalYAML, DefaultSurvivalConfig)
}

// LoadWhack loads the Whack-a-Fly configuration.
func LoadWhack(customPath string) (SwatConfig, error) {
	return load("whack", customPath, defaultWhackYAML, DefaultWhackConfig)
}

// LoadNZ loads the N vs Z configuration.
func LoadNZ(customPath string) (NZConfig, error) {
	return load("nz", customPath, defaultNZYAML, DefaultNZConfig)
}

// LoadWing loads the Wing Fighter configuration.
func LoadWing(customPath string) (WingConfig, error) {
	return load("wingfighter", customPath, defaultWingYAML, DefaultWingConfig)
}

// ApplyWingPreset sets the starting level for a difficulty preset.
// Progression stays as configured; with difficulty.enabled off the round
// holds at the preset's level.
func ApplyWingPreset(cfg *WingConfig, preset DifficultyPreset) {
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// ParseDifficulty turns a --difficulty value into an index among n choices.
// It accepts a preset name (easy, normal, hard) or a 1-based level number.
func ParseDifficulty(s string, n int) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return IndexForPreset(DifficultyNormal, n), nil
	}
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return IndexForPreset(DifficultyPreset(s), n), nil
	}
	level, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or a level number)", s)
	}
	if level < 1 || level > n {
		return 0, fmt.Errorf("config: level %d out of range 1-%d", level, n)
	}
	return level - 1, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
