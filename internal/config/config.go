// Package config provides YAML-based mode configuration loading and
// difficulty presets for the simulation engine.
package config

// ChaseConfig contains all configuration for the maze chase mode.
type ChaseConfig struct {
	Board      ChaseBoard       `yaml:"board"`
	Timing     ChaseTiming      `yaml:"timing"`
	Scoring    ChaseScoring     `yaml:"scoring"`
	Gameplay   Gameplay         `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ChaseBoard defines the maze and its motion geometry.
type ChaseBoard struct {
	Layout   []string `yaml:"layout"`
	TileSize float64  `yaml:"tile_size"`
	Epsilon  float64  `yaml:"epsilon"` // Centre snap tolerance, same units as tile_size
}

// ChaseTiming defines move cadences, in milliseconds per tile.
type ChaseTiming struct {
	PlayerMs  int `yaml:"player_ms"`
	PursuerMs int `yaml:"pursuer_ms"`
	EvaderMs  int `yaml:"evader_ms"`
	PowerMs   int `yaml:"power_ms"`
}

// ChaseScoring defines points per event.
type ChaseScoring struct {
	Collectible int `yaml:"collectible"`
	Power       int `yaml:"power"`
	Capture     int `yaml:"capture"`
	Evader      int `yaml:"evader"`
}

// StackingConfig contains all configuration for the falling-block mode.
type StackingConfig struct {
	Board      StackingBoard    `yaml:"board"`
	Gravity    StackingGravity  `yaml:"gravity"`
	Scoring    StackingScoring  `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// StackingBoard defines the well size.
type StackingBoard struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// StackingGravity defines the drop curve: base - (level-1)*step, floored at min.
type StackingGravity struct {
	BaseMs        int `yaml:"base_ms"`
	StepMs        int `yaml:"step_ms"`
	MinMs         int `yaml:"min_ms"`
	LinesPerLevel int `yaml:"lines_per_level"`
}

// StackingScoring defines points by rows cleared at once.
type StackingScoring struct {
	Lines []int `yaml:"lines"`
}

// GrowthConfig contains all configuration for the snake mode.
type GrowthConfig struct {
	Board      GrowthBoard      `yaml:"board"`
	Timing     GrowthTiming     `yaml:"timing"`
	Scoring    GrowthScoring    `yaml:"scoring"`
	Gameplay   Gameplay         `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GrowthBoard defines the field and the snake.
type GrowthBoard struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	StartLength  int `yaml:"start_length"`
	TargetLength int `yaml:"target_length"` // 0 = endless
}

// GrowthTiming defines the move cadence: base - eaten*step, floored at min.
type GrowthTiming struct {
	BaseMs int `yaml:"base_ms"`
	StepMs int `yaml:"step_ms"`
	MinMs  int `yaml:"min_ms"`
}

// GrowthScoring defines points per food.
type GrowthScoring struct {
	Food int `yaml:"food"`
}

// Gameplay holds settings shared by modes with lives.
type Gameplay struct {
	Lives int `yaml:"lives"`
}

// DifficultyConfig scales the mode's cadences.
type DifficultyConfig struct {
	Progression  bool    `yaml:"progression"`   // Speed up with level or food eaten
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	SpeedFactor  float64 `yaml:"speed_factor"`  // Speed gain at initial_level 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the valid presets.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. The empty string means no preset,
// leaving the file's difficulty block in effect.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", errorf("unknown difficulty %q", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
