package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/arcadesim/internal/engine"
)

// isolate keeps user and local config directories out of the search order.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	isolate(t)

	chase, err := LoadChase("")
	if err != nil {
		t.Fatalf("LoadChase() failed: %v", err)
	}
	if !reflect.DeepEqual(chase, DefaultChaseConfig()) {
		t.Errorf("chase.yaml = %+v\nexpected %+v", chase, DefaultChaseConfig())
	}

	stacking, err := LoadStacking("")
	if err != nil {
		t.Fatalf("LoadStacking() failed: %v", err)
	}
	if !reflect.DeepEqual(stacking, DefaultStackingConfig()) {
		t.Errorf("stacking.yaml = %+v\nexpected %+v", stacking, DefaultStackingConfig())
	}

	growth, err := LoadGrowth("")
	if err != nil {
		t.Fatalf("LoadGrowth() failed: %v", err)
	}
	if !reflect.DeepEqual(growth, DefaultGrowthConfig()) {
		t.Errorf("growth.yaml = %+v\nexpected %+v", growth, DefaultGrowthConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "mine.yaml")
	data := "board:\n  width: 12\n  height: 8\n  start_length: 3\ntiming:\n  base_ms: 200\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGrowth(path)
	if err != nil {
		t.Fatalf("LoadGrowth() failed: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Board.Height != 8 || cfg.Timing.BaseMs != 200 {
		t.Errorf("loaded %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)
	if _, err := LoadChase(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadChase() should fail on a missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadChase(bad); err == nil {
		t.Error("LoadChase() should fail on malformed YAML")
	}
}

func TestLocalConfigsDirectory(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("configs/stacking.yaml", []byte("board:\n  cols: 8\n  rows: 16\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadStacking("")
	if err != nil {
		t.Fatalf("LoadStacking() failed: %v", err)
	}
	if cfg.Board.Cols != 8 || cfg.Board.Rows != 16 {
		t.Errorf("board = %+v, expected 8x16 from ./configs", cfg.Board)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"normal", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestScaledMs(t *testing.T) {
	tests := []struct {
		ms     int
		level  float64
		factor float64
		want   time.Duration
	}{
		{150, 0, 0.5, 150 * time.Millisecond},
		{150, 1, 0.5, 100 * time.Millisecond},
		{1000, 0.3, 1.0, 769 * time.Millisecond},
		{150, 5, 0.5, 100 * time.Millisecond}, // level clamped to 1
	}
	for _, tc := range tests {
		d := DifficultyConfig{InitialLevel: tc.level, SpeedFactor: tc.factor}
		if got := scaledMs(tc.ms, d); got != tc.want {
			t.Errorf("scaledMs(%d, %v, %v) = %v, expected %v", tc.ms, tc.level, tc.factor, got, tc.want)
		}
	}
}

func TestBuild(t *testing.T) {
	isolate(t)

	tests := []struct {
		name  string
		opts  Options
		check func(t *testing.T, cfg engine.Config)
	}{
		{
			name: "chase easy",
			opts: Options{Mode: engine.ModeChase, Preset: DifficultyEasy, Seed: 7},
			check: func(t *testing.T, cfg engine.Config) {
				if cfg.Lives != 5 || cfg.Seed != 7 {
					t.Errorf("lives %d seed %d", cfg.Lives, cfg.Seed)
				}
				if cfg.Chase.PlayerInterval != 150*time.Millisecond {
					t.Errorf("player interval = %v", cfg.Chase.PlayerInterval)
				}
				if cfg.Chase.PowerDuration != 10*time.Second {
					t.Errorf("power = %v", cfg.Chase.PowerDuration)
				}
			},
		},
		{
			name: "chase without preset",
			opts: Options{Mode: engine.ModeChase},
			check: func(t *testing.T, cfg engine.Config) {
				if cfg.Chase.PlayerInterval != 150*time.Millisecond {
					t.Errorf("player interval = %v, expected 150ms", cfg.Chase.PlayerInterval)
				}
				if cfg.Chase.PursuerInterval != 180*time.Millisecond {
					t.Errorf("pursuer interval = %v, expected 180ms", cfg.Chase.PursuerInterval)
				}
				if cfg.Lives != 3 {
					t.Errorf("lives = %d", cfg.Lives)
				}
			},
		},
		{
			name: "chase normal",
			opts: Options{Mode: engine.ModeChase, Preset: DifficultyNormal},
			check: func(t *testing.T, cfg engine.Config) {
				if cfg.Chase.PlayerInterval != 130*time.Millisecond {
					t.Errorf("player interval = %v, expected 130ms", cfg.Chase.PlayerInterval)
				}
				if cfg.Lives != 3 {
					t.Errorf("lives = %d", cfg.Lives)
				}
			},
		},
		{
			name: "stacking without preset",
			opts: Options{Mode: engine.ModeStacking},
			check: func(t *testing.T, cfg engine.Config) {
				if cfg.Stacking.GravityBase != time.Second {
					t.Errorf("gravity base = %v, expected 1s", cfg.Stacking.GravityBase)
				}
				if cfg.Stacking.GravityStep != 100*time.Millisecond {
					t.Errorf("gravity step = %v, expected 100ms", cfg.Stacking.GravityStep)
				}
			},
		},
		{
			name: "growth without preset",
			opts: Options{Mode: engine.ModeGrowth},
			check: func(t *testing.T, cfg engine.Config) {
				if cfg.Growth.BaseInterval != 150*time.Millisecond {
					t.Errorf("base interval = %v, expected 150ms", cfg.Growth.BaseInterval)
				}
			},
		},
		{
			name: "stacking fixed",
			opts: Options{Mode: engine.ModeStacking, Preset: DifficultyFixed},
			check: func(t *testing.T, cfg engine.Config) {
				if cfg.Stacking.GravityStep != 0 {
					t.Errorf("fixed preset should stop the speed-up, step = %v", cfg.Stacking.GravityStep)
				}
				if cfg.Stacking.GravityBase != time.Second {
					t.Errorf("gravity base = %v", cfg.Stacking.GravityBase)
				}
			},
		},
		{
			name: "growth hard",
			opts: Options{Mode: engine.ModeGrowth, Preset: DifficultyHard},
			check: func(t *testing.T, cfg engine.Config) {
				if cfg.Lives != 1 || cfg.Growth.Width != 20 {
					t.Errorf("lives %d width %d", cfg.Lives, cfg.Growth.Width)
				}
				if cfg.Growth.BaseInterval >= 150*time.Millisecond {
					t.Errorf("hard should be faster, base = %v", cfg.Growth.BaseInterval)
				}
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Build(tc.opts)
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			tc.check(t, cfg)
			if _, err := engine.New(cfg); err != nil {
				t.Errorf("engine.New() rejected the built config: %v", err)
			}
		})
	}
}

func TestBuildHonoursFileDifficulty(t *testing.T) {
	isolate(t)

	tests := []struct {
		name     string
		yaml     string
		preset   DifficultyPreset
		wantBase time.Duration
		wantStep time.Duration
	}{
		{
			name:     "progression off",
			yaml:     "difficulty:\n  progression: false\n  initial_level: 0\n  speed_factor: 1.0\n",
			wantBase: time.Second,
			wantStep: 0,
		},
		{
			name:     "raised initial level",
			yaml:     "difficulty:\n  progression: true\n  initial_level: 0.3\n  speed_factor: 1.0\n",
			wantBase: 769 * time.Millisecond,
			wantStep: 100 * time.Millisecond,
		},
		{
			name:     "preset overrides the file",
			yaml:     "difficulty:\n  progression: false\n  initial_level: 0\n  speed_factor: 1.0\n",
			preset:   DifficultyEasy,
			wantBase: time.Second,
			wantStep: 100 * time.Millisecond,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base := string(GetDefaultYAML(engine.ModeStacking))
			base = base[:strings.Index(base, "difficulty:")]
			path := filepath.Join(t.TempDir(), "stacking.yaml")
			if err := os.WriteFile(path, []byte(base+tc.yaml), 0o644); err != nil {
				t.Fatalf("WriteFile() failed: %v", err)
			}
			cfg, err := Build(Options{Mode: engine.ModeStacking, Path: path, Preset: tc.preset})
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			if cfg.Stacking.GravityBase != tc.wantBase {
				t.Errorf("gravity base = %v, expected %v", cfg.Stacking.GravityBase, tc.wantBase)
			}
			if cfg.Stacking.GravityStep != tc.wantStep {
				t.Errorf("gravity step = %v, expected %v", cfg.Stacking.GravityStep, tc.wantStep)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/x.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvMetricsAddr, "")

	env := FromEnv()
	if env.DBPath != "/tmp/x.db" || env.LogLevel != "debug" {
		t.Errorf("FromEnv() = %+v", env)
	}
	if got := Or(env.MetricsAddr, ":9090"); got != ":9090" {
		t.Errorf("Or() = %q, expected the default", got)
	}
}
