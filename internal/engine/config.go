package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/arcadesim/internal/motion"
)

// Mode selects the rule set a Machine runs.
type Mode int

const (
	ModeChase    Mode = iota // Maze chase: collect everything, avoid pursuers
	ModeStacking             // Falling blocks, clear rows
	ModeGrowth               // Growing snake, eat food
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeChase, ModeStacking, ModeGrowth}

// String returns the mode identifier used in configs and on the command line.
func (m Mode) String() string {
	switch m {
	case ModeChase:
		return "chase"
	case ModeStacking:
		return "stacking"
	case ModeGrowth:
		return "growth"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode identifier back to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("engine: unknown mode %q", s)
}

// DefaultMaze is the chase layout used when none is configured.
var DefaultMaze = []string{
	"###################",
	"#P.......#........#",
	"#o##.###.#.###.##o#",
	"#.##.###.#.###.##.#",
	"#.................#",
	"#.##.#.#####.#.##.#",
	"#....#...#...#....#",
	"####.### # ###.####",
	"####.#       #.####",
	"####.# ##G## #.####",
	"    .  #GEG#  .    ",
	"####.# ##### #.####",
	"####.#       #.####",
	"####.# ##### #.####",
	"#........#........#",
	"#.##.###.#.###.##.#",
	"#o.#...........#.o#",
	"##.#.#.#####.#.#.##",
	"#....#...#...#....#",
	"#.######.#.######.#",
	"#.................#",
	"###################",
}

// ChaseConfig tunes the maze chase mode.
type ChaseConfig struct {
	Layout          []string
	Motion          motion.Params
	PlayerInterval  time.Duration // Time to cross one tile
	PursuerInterval time.Duration
	EvaderInterval  time.Duration
	PowerDuration   time.Duration
	CollectScore    int
	PowerScore      int
	CaptureScore    int
	EvaderScore     int
}

// StackingConfig tunes the falling-block mode.
type StackingConfig struct {
	Cols          int
	Rows          int
	GravityBase   time.Duration // Drop interval at level 1
	GravityStep   time.Duration // Speed-up per level
	GravityMin    time.Duration
	LinesPerLevel int
	LineScores    []int // Indexed by rows cleared at once
}

// GrowthConfig tunes the snake mode.
type GrowthConfig struct {
	Width        int
	Height       int
	StartLength  int
	BaseInterval time.Duration
	IntervalStep time.Duration // Speed-up per food eaten
	MinInterval  time.Duration
	FoodScore    int
	TargetLength int // 0 means endless
}

// Config is everything a Machine needs at construction.
type Config struct {
	Mode       Mode
	Seed       int64
	Lives      int
	MaxCatchUp int // Move steps a single timer may fire per Advance

	Chase    ChaseConfig
	Stacking StackingConfig
	Growth   GrowthConfig
}

// DefaultConfig returns the stock settings for mode.
func DefaultConfig(mode Mode) Config {
	cfg := Config{
		Mode:       mode,
		Seed:       1,
		Lives:      3,
		MaxCatchUp: 8,
		Chase: ChaseConfig{
			Layout:          DefaultMaze,
			Motion:          motion.DefaultParams(),
			PlayerInterval:  150 * time.Millisecond,
			PursuerInterval: 180 * time.Millisecond,
			EvaderInterval:  200 * time.Millisecond,
			PowerDuration:   7 * time.Second,
			CollectScore:    10,
			PowerScore:      50,
			CaptureScore:    200,
			EvaderScore:     100,
		},
		Stacking: StackingConfig{
			Cols:          10,
			Rows:          20,
			GravityBase:   time.Second,
			GravityStep:   100 * time.Millisecond,
			GravityMin:    100 * time.Millisecond,
			LinesPerLevel: 10,
			LineScores:    []int{0, 100, 300, 500, 800},
		},
		Growth: GrowthConfig{
			Width:        20,
			Height:       20,
			StartLength:  3,
			BaseInterval: 150 * time.Millisecond,
			IntervalStep: 2 * time.Millisecond,
			MinInterval:  50 * time.Millisecond,
			FoodScore:    10,
		},
	}
	if mode != ModeChase {
		cfg.Lives = 1
	}
	return cfg
}

// withDefaults fills zero fields from DefaultConfig so partial configs work.
func (c Config) withDefaults() Config {
	d := DefaultConfig(c.Mode)
	if c.Lives <= 0 {
		c.Lives = d.Lives
	}
	if c.MaxCatchUp <= 0 {
		c.MaxCatchUp = d.MaxCatchUp
	}

	ch, dc := &c.Chase, d.Chase
	if len(ch.Layout) == 0 {
		ch.Layout = dc.Layout
	}
	if ch.Motion.TileSize <= 0 {
		ch.Motion.TileSize = dc.Motion.TileSize
	}
	if ch.Motion.Epsilon <= 0 {
		ch.Motion.Epsilon = dc.Motion.Epsilon
	}
	setDuration(&ch.PlayerInterval, dc.PlayerInterval)
	setDuration(&ch.PursuerInterval, dc.PursuerInterval)
	setDuration(&ch.EvaderInterval, dc.EvaderInterval)
	setDuration(&ch.PowerDuration, dc.PowerDuration)
	setInt(&ch.CollectScore, dc.CollectScore)
	setInt(&ch.PowerScore, dc.PowerScore)
	setInt(&ch.CaptureScore, dc.CaptureScore)
	setInt(&ch.EvaderScore, dc.EvaderScore)

	st, ds := &c.Stacking, d.Stacking
	setInt(&st.Cols, ds.Cols)
	setInt(&st.Rows, ds.Rows)
	setDuration(&st.GravityBase, ds.GravityBase)
	setDuration(&st.GravityMin, ds.GravityMin)
	if st.GravityStep < 0 {
		st.GravityStep = 0
	}
	setInt(&st.LinesPerLevel, ds.LinesPerLevel)
	if len(st.LineScores) == 0 {
		st.LineScores = ds.LineScores
	}

	gr, dg := &c.Growth, d.Growth
	setInt(&gr.Width, dg.Width)
	setInt(&gr.Height, dg.Height)
	setInt(&gr.StartLength, dg.StartLength)
	setDuration(&gr.BaseInterval, dg.BaseInterval)
	setDuration(&gr.MinInterval, dg.MinInterval)
	if gr.IntervalStep < 0 {
		gr.IntervalStep = 0
	}
	setInt(&gr.FoodScore, dg.FoodScore)
	return c
}

func setDuration(v *time.Duration, def time.Duration) {
	if *v <= 0 {
		*v = def
	}
}

func setInt(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
