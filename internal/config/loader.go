package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/motion"
)

// LoadChase loads maze chase configuration.
// Search order: customPath -> ~/.arcade/configs/chase.yaml -> ./configs/chase.yaml -> embedded default
func LoadChase(customPath string) (ChaseConfig, error) {
	return load(engine.ModeChase, customPath, DefaultChaseConfig)
}

// LoadStacking loads falling-block configuration.
// Search order: customPath -> ~/.arcade/configs/stacking.yaml -> ./configs/stacking.yaml -> embedded default
func LoadStacking(customPath string) (StackingConfig, error) {
	return load(engine.ModeStacking, customPath, DefaultStackingConfig)
}

// LoadGrowth loads snake configuration.
// Search order: customPath -> ~/.arcade/configs/growth.yaml -> ./configs/growth.yaml -> embedded default
func LoadGrowth(customPath string) (GrowthConfig, error) {
	return load(engine.ModeGrowth, customPath, DefaultGrowthConfig)
}

func load[T any](mode engine.Mode, customPath string, fallback func() T) (T, error) {
	var cfg T
	filename := mode.String() + ".yaml"

	// Try custom path first
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

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(GetDefaultYAML(mode), &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

func motionParams(b ChaseBoard) motion.Params {
	p := motion.DefaultParams()
	if b.TileSize > 0 {
		p.TileSize = b.TileSize
	}
	if b.Epsilon > 0 {
		p.Epsilon = b.Epsilon
	}
	return p
}

// Engine converts the file format into engine settings.
func (c ChaseConfig) Engine() engine.ChaseConfig {
	d := c.Difficulty
	return engine.ChaseConfig{
		Layout:          c.Board.Layout,
		Motion:          motionParams(c.Board),
		PlayerInterval:  scaledMs(c.Timing.PlayerMs, d),
		PursuerInterval: scaledMs(c.Timing.PursuerMs, d),
		EvaderInterval:  scaledMs(c.Timing.EvaderMs, d),
		PowerDuration:   time.Duration(c.Timing.PowerMs) * time.Millisecond,
		CollectScore:    c.Scoring.Collectible,
		PowerScore:      c.Scoring.Power,
		CaptureScore:    c.Scoring.Capture,
		EvaderScore:     c.Scoring.Evader,
	}
}

// Engine converts the file format into engine settings.
func (c StackingConfig) Engine() engine.StackingConfig {
	d := c.Difficulty
	step := time.Duration(c.Gravity.StepMs) * time.Millisecond
	if !d.Progression {
		step = 0
	}
	return engine.StackingConfig{
		Cols:          c.Board.Cols,
		Rows:          c.Board.Rows,
		GravityBase:   scaledMs(c.Gravity.BaseMs, d),
		GravityStep:   step,
		GravityMin:    time.Duration(c.Gravity.MinMs) * time.Millisecond,
		LinesPerLevel: c.Gravity.LinesPerLevel,
		LineScores:    c.Scoring.Lines,
	}
}

// Engine converts the file format into engine settings.
func (c GrowthConfig) Engine() engine.GrowthConfig {
	d := c.Difficulty
	step := time.Duration(c.Timing.StepMs) * time.Millisecond
	if !d.Progression {
		step = 0
	}
	return engine.GrowthConfig{
		Width:        c.Board.Width,
		Height:       c.Board.Height,
		StartLength:  c.Board.StartLength,
		BaseInterval: scaledMs(c.Timing.BaseMs, d),
		IntervalStep: step,
		MinInterval:  time.Duration(c.Timing.MinMs) * time.Millisecond,
		FoodScore:    c.Scoring.Food,
		TargetLength: c.Board.TargetLength,
	}
}

// Options selects what Build loads.
type Options struct {
	Mode   engine.Mode
	Path   string // Custom config file, empty for the search order
	Preset DifficultyPreset
	Seed   int64
}

// Build loads the mode's file, applies the preset if one is given and returns
// an engine configuration ready for engine.New.
func Build(opts Options) (engine.Config, error) {
	cfg := engine.DefaultConfig(opts.Mode)
	cfg.Seed = opts.Seed
	preset := opts.Preset

	switch opts.Mode {
	case engine.ModeChase:
		c, err := LoadChase(opts.Path)
		if err != nil {
			return cfg, err
		}
		if preset != "" {
			ApplyChasePreset(&c, preset)
		}
		cfg.Chase = c.Engine()
		cfg.Lives = c.Gameplay.Lives
	case engine.ModeStacking:
		c, err := LoadStacking(opts.Path)
		if err != nil {
			return cfg, err
		}
		if preset != "" {
			ApplyStackingPreset(&c, preset)
		}
		cfg.Stacking = c.Engine()
	case engine.ModeGrowth:
		c, err := LoadGrowth(opts.Path)
		if err != nil {
			return cfg, err
		}
		if preset != "" {
			ApplyGrowthPreset(&c, preset)
		}
		cfg.Growth = c.Engine()
		cfg.Lives = c.Gameplay.Lives
	default:
		return cfg, errorf("unknown mode %v", opts.Mode)
	}
	return cfg, nil
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("config: "+format, args...)
}
