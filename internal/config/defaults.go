package config

import (
	_ "embed"

	"github.com/vovakirdan/arcadesim/internal/engine"
)

//go:embed defaults/chase.yaml
var defaultChaseYAML []byte

//go:embed defaults/stacking.yaml
var defaultStackingYAML []byte

//go:embed defaults/growth.yaml
var defaultGrowthYAML []byte

// DefaultChaseConfig returns the default maze chase configuration.
func DefaultChaseConfig() ChaseConfig {
	return ChaseConfig{
		Board: ChaseBoard{
			Layout:   append([]string(nil), engine.DefaultMaze...),
			TileSize: 40,
			Epsilon:  3,
		},
		Timing: ChaseTiming{
			PlayerMs:  150,
			PursuerMs: 180,
			EvaderMs:  200,
			PowerMs:   7000,
		},
		Scoring: ChaseScoring{
			Collectible: 10,
			Power:       50,
			Capture:     200,
			Evader:      100,
		},
		Gameplay: Gameplay{Lives: 3},
		Difficulty: DifficultyConfig{
			Progression: true,
			SpeedFactor: 0.5,
		},
	}
}

// DefaultStackingConfig returns the default falling-block configuration.
func DefaultStackingConfig() StackingConfig {
	return StackingConfig{
		Board: StackingBoard{Cols: 10, Rows: 20},
		Gravity: StackingGravity{
			BaseMs:        1000,
			StepMs:        100,
			MinMs:         100,
			LinesPerLevel: 10,
		},
		Scoring: StackingScoring{Lines: []int{0, 100, 300, 500, 800}},
		Difficulty: DifficultyConfig{
			Progression: true,
			SpeedFactor: 1.0,
		},
	}
}

// DefaultGrowthConfig returns the default snake configuration.
func DefaultGrowthConfig() GrowthConfig {
	return GrowthConfig{
		Board: GrowthBoard{
			Width:       20,
			Height:      20,
			StartLength: 3,
		},
		Timing: GrowthTiming{
			BaseMs: 150,
			StepMs: 2,
			MinMs:  50,
		},
		Scoring:  GrowthScoring{Food: 10},
		Gameplay: Gameplay{Lives: 1},
		Difficulty: DifficultyConfig{
			Progression: true,
			SpeedFactor: 0.5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a mode.
func GetDefaultYAML(mode engine.Mode) []byte {
	switch mode {
	case engine.ModeChase:
		return defaultChaseYAML
	case engine.ModeStacking:
		return defaultStackingYAML
	case engine.ModeGrowth:
		return defaultGrowthYAML
	default:
		return nil
	}
}
