package config

import (
	"math"
	"time"
)

// scaledMs converts a base cadence in milliseconds to a duration, shortened
// by the difficulty level: base / (1 + level*factor).
func scaledMs(ms int, d DifficultyConfig) time.Duration {
	base := time.Duration(ms) * time.Millisecond
	factor := 1 + clampF(d.InitialLevel, 0, 1)*math.Max(d.SpeedFactor, 0)
	return time.Duration(float64(base) / factor).Round(time.Millisecond)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

func applyDifficulty(d *DifficultyConfig, preset DifficultyPreset) {
	d.Progression = !IsFixedPreset(preset)
	d.InitialLevel = InitialLevelForPreset(preset)
}

// ApplyChasePreset modifies the config based on a difficulty preset.
func ApplyChasePreset(cfg *ChaseConfig, preset DifficultyPreset) {
	applyDifficulty(&cfg.Difficulty, preset)
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Timing.PowerMs = 10000
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Timing.PowerMs = 4000
	}
}

// ApplyStackingPreset modifies the config based on a difficulty preset.
func ApplyStackingPreset(cfg *StackingConfig, preset DifficultyPreset) {
	applyDifficulty(&cfg.Difficulty, preset)
}

// ApplyGrowthPreset modifies the config based on a difficulty preset.
func ApplyGrowthPreset(cfg *GrowthConfig, preset DifficultyPreset) {
	applyDifficulty(&cfg.Difficulty, preset)
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 3
	case DifficultyHard:
		cfg.Gameplay.Lives = 1
	}
}
