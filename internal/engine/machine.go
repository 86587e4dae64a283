// Package engine runs the arcade simulation: one state machine, three rule
// sets (chase, stacking, growth) sharing its lifecycle, timers and scoring.
//
// A Machine is driven from a single goroutine. Hosts feed it input with
// HandleInput, time with Advance, and read it with State.
package engine

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcadesim/internal/core"
)

// rules is the behaviour that differs between modes.
type rules interface {
	// reset rebuilds the board and actors for a fresh game.
	reset(m *Machine) error
	// input buffers an in-game event for the next tick.
	input(m *Machine, in core.Input)
	// advance simulates dt of running time.
	advance(m *Machine, dt time.Duration)
	// snapshot copies mode state into s.
	snapshot(s *State)
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger reports status transitions to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		m.log = l
	}
}

// Machine is the game state machine.
type Machine struct {
	cfg   Config
	rules rules
	log   *log.Logger

	seed    int64
	rng     *rand.Rand
	status  Status
	score   int
	lives   int
	level   int
	lines   int
	tick    uint64
	elapsed time.Duration

	out  outcomes
	cues []string
}

// New builds a machine in the Idle state. It fails only on a configuration
// the selected mode cannot use, such as a layout without a player.
func New(cfg Config, opts ...Option) (*Machine, error) {
	cfg = cfg.withDefaults()
	m := &Machine{cfg: cfg, seed: cfg.Seed}
	for _, opt := range opts {
		opt(m)
	}

	switch cfg.Mode {
	case ModeChase:
		m.rules = &chaseRules{}
	case ModeStacking:
		m.rules = &stackRules{}
	case ModeGrowth:
		m.rules = &growthRules{}
	default:
		return nil, errorf("unknown mode %d", cfg.Mode)
	}

	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// Config returns the effective configuration.
func (m *Machine) Config() Config {
	return m.cfg
}

// Status returns the lifecycle state.
func (m *Machine) Status() Status {
	return m.status
}

// Start moves an Idle machine to Running. It does nothing in other states.
func (m *Machine) Start() {
	if m.status == StatusIdle {
		m.setStatus(StatusRunning)
	}
}

// HandleInput accepts one host event. Malformed events and events that make
// no sense in the current state are dropped silently. In-game events are
// buffered and take effect on the next Advance.
func (m *Machine) HandleInput(in core.Input) {
	if !in.Valid() {
		return
	}
	switch in.Kind {
	case core.InputPause:
		switch m.status {
		case StatusRunning:
			m.setStatus(StatusPaused)
		case StatusPaused:
			m.setStatus(StatusRunning)
		}
	case core.InputRestart:
		if m.status.Ended() {
			m.restart()
		}
	default:
		if m.status == StatusRunning {
			m.rules.input(m, in)
		}
	}
}

// Advance simulates dt of game time. It is a no-op unless the machine is
// Running and dt is positive.
func (m *Machine) Advance(dt time.Duration) {
	if m.status != StatusRunning || dt <= 0 {
		return
	}
	m.out = outcomes{}
	m.cues = nil
	m.tick++
	m.elapsed += dt
	m.rules.advance(m, dt)
}

// State returns a deep copy of the current state.
func (m *Machine) State() State {
	s := State{
		Mode:     m.cfg.Mode,
		Status:   m.status,
		Score:    m.score,
		Lives:    m.lives,
		Level:    m.level,
		Lines:    m.lines,
		Tick:     m.tick,
		Elapsed:  m.elapsed,
		Outcomes: m.out.list(),
		Cues:     append([]string(nil), m.cues...),
	}
	m.rules.snapshot(&s)
	return s
}

// reset rebuilds everything from the current seed.
func (m *Machine) reset() error {
	m.rng = rand.New(rand.NewSource(m.seed))
	m.status = StatusIdle
	m.score = 0
	m.lives = m.cfg.Lives
	m.level = 1
	m.lines = 0
	m.tick = 0
	m.elapsed = 0
	m.out = outcomes{}
	m.cues = nil
	return m.rules.reset(m)
}

// restart starts a new game with a seed drawn from the old game's generator,
// so a sequence of games is still reproducible from the first seed.
func (m *Machine) restart() {
	m.seed = m.rng.Int63()
	if err := m.reset(); err != nil {
		// The config already built one game, so this does not happen.
		m.status = StatusLost
		return
	}
	m.logStatus(StatusIdle)
}

func (m *Machine) setStatus(s Status) {
	if m.status == s {
		return
	}
	m.status = s
	m.logStatus(s)
}

func (m *Machine) logStatus(s Status) {
	if m.log != nil {
		m.log.Debug("status", "mode", m.cfg.Mode, "status", s, "tick", m.tick, "score", m.score)
	}
}

func (m *Machine) running() bool {
	return m.status == StatusRunning
}

func (m *Machine) addScore(delta int) {
	if delta == 0 {
		return
	}
	m.score += delta
	m.out.scored = true
	m.out.delta += delta
}

// loseLife takes a life and ends the game on the last one. It returns the
// lives left.
func (m *Machine) loseLife() int {
	if m.lives > 0 {
		m.lives--
	}
	m.out.lifeLost = true
	m.out.lives = m.lives
	m.cue(CueDeath)
	if m.lives == 0 {
		m.lose()
	}
	return m.lives
}

func (m *Machine) lose() {
	if !m.running() {
		return
	}
	m.out.over = true
	m.cue(CueGameOver)
	m.setStatus(StatusLost)
}

func (m *Machine) win() {
	if !m.running() {
		return
	}
	m.out.won = true
	m.cue(CueWin)
	m.setStatus(StatusWon)
}

func (m *Machine) cue(c string) {
	for _, have := range m.cues {
		if have == c {
			return
		}
	}
	m.cues = append(m.cues, c)
}
