package replay

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/engine"
)

// session drives a recorder with pseudo-random input for n frames.
func session(t *testing.T, mode engine.Mode, seed int64, n int) *Recorder {
	t.Helper()
	cfg := engine.DefaultConfig(mode)
	cfg.Seed = seed
	m, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}

	r := NewRecorder(m)
	r.Start()
	input := rand.New(rand.NewSource(seed + 1))
	for i := 0; i < n; i++ {
		switch input.Intn(10) {
		case 0:
			r.HandleInput(core.DirectionInput(core.DirectionPriority[input.Intn(4)]))
		case 1:
			r.HandleInput(core.ActionInput(core.ActionRotate))
		case 2:
			if r.Machine().Status().Ended() {
				r.HandleInput(core.RestartInput())
				r.Start()
			}
		}
		r.Advance(time.Duration(10+input.Intn(25)) * time.Millisecond)
	}
	return r
}

func TestPlayReproducesGame(t *testing.T) {
	for _, mode := range engine.Modes {
		t.Run(mode.String(), func(t *testing.T) {
			r := session(t, mode, 42, 2000)

			m, err := Play(r.Log())
			if err != nil {
				t.Fatalf("Play() failed: %v", err)
			}
			got, want := m.State(), r.State()
			if !reflect.DeepEqual(got, want) {
				t.Errorf("replayed state differs: score %d/%d tick %d/%d status %v/%v",
					got.Score, want.Score, got.Tick, want.Tick, got.Status, want.Status)
			}
		})
	}
}

func TestRecorderSkipsNoOps(t *testing.T) {
	m, err := engine.New(engine.DefaultConfig(engine.ModeGrowth))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRecorder(m)

	r.Advance(10 * time.Millisecond) // idle
	r.HandleInput(core.Input{})      // malformed
	if r.Len() != 0 {
		t.Fatalf("recorded %d steps before start", r.Len())
	}

	r.Start()
	r.Start()
	r.Advance(0)
	r.Advance(-time.Millisecond)
	r.Advance(16 * time.Millisecond)

	log := r.Log()
	want := []Step{
		{Kind: StepStart},
		{Kind: StepAdvance, DT: 16 * time.Millisecond},
	}
	if !reflect.DeepEqual(log.Steps, want) {
		t.Errorf("steps = %+v, expected %+v", log.Steps, want)
	}
	if log.Duration() != 16*time.Millisecond {
		t.Errorf("Duration() = %v", log.Duration())
	}
	if log.Mode() != engine.ModeGrowth {
		t.Errorf("Mode() = %v", log.Mode())
	}
}

func TestLogIsACopy(t *testing.T) {
	r := session(t, engine.ModeStacking, 3, 10)
	l := r.Log()
	n := len(l.Steps)
	r.Advance(16 * time.Millisecond)
	if len(l.Steps) != n {
		t.Error("Log() shares its slice with the recorder")
	}
}

func TestConfigSurvivesEncoding(t *testing.T) {
	r := session(t, engine.ModeChase, 7, 600)
	l := r.Log()

	data, err := EncodeConfig(l.Config)
	if err != nil {
		t.Fatalf("EncodeConfig() failed: %v", err)
	}
	cfg, err := DecodeConfig(data)
	if err != nil {
		t.Fatalf("DecodeConfig() failed: %v", err)
	}
	if cfg.Seed != l.Config.Seed || cfg.Chase.PlayerInterval != l.Config.Chase.PlayerInterval {
		t.Errorf("decoded %+v", cfg)
	}

	l.Config = cfg
	m, err := Play(l)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if got, want := m.State(), r.State(); got.Score != want.Score || got.Tick != want.Tick {
		t.Errorf("score %d tick %d, expected score %d tick %d", got.Score, got.Tick, want.Score, want.Tick)
	}
}

func TestPlayRejectsUnknownStep(t *testing.T) {
	l := Log{Config: engine.DefaultConfig(engine.ModeGrowth), Steps: []Step{{Kind: 99}}}
	if _, err := Play(l); err == nil {
		t.Error("Play() should fail on an unknown step kind")
	}
}
