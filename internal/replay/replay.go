// Package replay records the calls a host makes on an engine.Machine and
// plays them back. The machine is deterministic for a given configuration
// and seed, so a recorded game re-simulates to exactly the same state.
package replay

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/engine"
)

// StepKind is the machine call a Step stands for.
type StepKind uint8

const (
	StepStart StepKind = iota + 1
	StepInput
	StepAdvance
)

// String returns a human-readable name for the step kind.
func (k StepKind) String() string {
	switch k {
	case StepStart:
		return "start"
	case StepInput:
		return "input"
	case StepAdvance:
		return "advance"
	default:
		return "unknown"
	}
}

// Step is one recorded call.
type Step struct {
	Kind  StepKind
	DT    time.Duration // StepAdvance
	Input core.Input    // StepInput
}

// Log is a complete recording.
type Log struct {
	Config engine.Config
	Steps  []Step
}

// Mode returns the recorded game mode.
func (l Log) Mode() engine.Mode {
	return l.Config.Mode
}

// Duration returns the total simulated time in the log.
func (l Log) Duration() time.Duration {
	var d time.Duration
	for _, s := range l.Steps {
		if s.Kind == StepAdvance {
			d += s.DT
		}
	}
	return d
}

// Recorder wraps a Machine and logs every call that changes it. It has the
// same single-goroutine contract as the machine.
type Recorder struct {
	m   *engine.Machine
	log Log
}

// NewRecorder starts an empty recording of m. The machine should be fresh:
// calls made before wrapping are not in the log.
func NewRecorder(m *engine.Machine) *Recorder {
	return &Recorder{m: m, log: Log{Config: m.Config()}}
}

// Machine returns the wrapped machine.
func (r *Recorder) Machine() *engine.Machine {
	return r.m
}

// Start starts the machine.
func (r *Recorder) Start() {
	if r.m.Status() == engine.StatusIdle {
		r.log.Steps = append(r.log.Steps, Step{Kind: StepStart})
	}
	r.m.Start()
}

// HandleInput forwards one host event.
func (r *Recorder) HandleInput(in core.Input) {
	if in.Valid() {
		r.log.Steps = append(r.log.Steps, Step{Kind: StepInput, Input: in})
	}
	r.m.HandleInput(in)
}

// Advance forwards simulated time. Calls the machine ignores are not logged.
func (r *Recorder) Advance(dt time.Duration) {
	if r.m.Status() == engine.StatusRunning && dt > 0 {
		r.log.Steps = append(r.log.Steps, Step{Kind: StepAdvance, DT: dt})
	}
	r.m.Advance(dt)
}

// State returns the machine's snapshot.
func (r *Recorder) State() engine.State {
	return r.m.State()
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(r.log.Steps)
}

// Log returns a copy of the recording so far.
func (r *Recorder) Log() Log {
	l := r.log
	l.Steps = append([]Step(nil), r.log.Steps...)
	return l
}

// Play builds a machine from the log's configuration and applies every step.
func Play(l Log, opts ...engine.Option) (*engine.Machine, error) {
	m, err := engine.New(l.Config, opts...)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	for i, s := range l.Steps {
		switch s.Kind {
		case StepStart:
			m.Start()
		case StepInput:
			m.HandleInput(s.Input)
		case StepAdvance:
			m.Advance(s.DT)
		default:
			return nil, fmt.Errorf("replay: step %d: unknown kind %d", i, s.Kind)
		}
	}
	return m, nil
}

// EncodeConfig serialises a machine configuration for storage.
func EncodeConfig(cfg engine.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot encode config: %w", err)
	}
	return data, nil
}

// DecodeConfig is the inverse of EncodeConfig.
func DecodeConfig(data []byte) (engine.Config, error) {
	var cfg engine.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("replay: cannot decode config: %w", err)
	}
	return cfg, nil
}
