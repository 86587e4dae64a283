package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcadesim/internal/clock"
	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/metrics"
	"github.com/vovakirdan/arcadesim/internal/registry"
	"github.com/vovakirdan/arcadesim/internal/replay"
	"github.com/vovakirdan/arcadesim/internal/storage"
)

// maxSubsteps caps fixed steps per frame after a stall.
const maxSubsteps = 4

// Options are the host services shared by every game a program runs.
// All fields are optional.
type Options struct {
	FPS     int
	Store   *storage.Store   // Finished games are saved as replays
	Metrics *metrics.Metrics // Session and advance instrumentation
	Logger  *log.Logger      // Machine and clock debug output
	Player  string           // Recorded with saved replays

	// FixedStep, when positive, simulates whole steps of this size instead
	// of one variable step per frame.
	FixedStep time.Duration

	// AllowBack lets esc/b leave a paused or finished game for the menu.
	AllowBack bool
}

// GameModel is the Bubble Tea model for one game. Frames come from the
// simulation clock through tea.Tick; input goes through a replay recorder
// so every finished game can be stored and re-simulated.
type GameModel struct {
	info    registry.ModeInfo
	opts    Options
	rec     *replay.Recorder
	clk     *clock.Clock
	sched   *frameScheduler
	session *metrics.Session
	frame   *frameLog
	screen  *core.Screen
	keys    GameKeyMap
	help    help.Model
	state   engine.State

	savedID    int64
	saved      bool
	quitting   bool
	backToMenu bool
}

// NewGameModel builds a game in the Idle state for the given configuration.
func NewGameModel(info registry.ModeInfo, cfg engine.Config, opts Options) (GameModel, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var engineOpts []engine.Option
	if opts.Logger != nil {
		engineOpts = append(engineOpts, engine.WithLogger(opts.Logger))
	}
	machine, err := engine.New(cfg, engineOpts...)
	if err != nil {
		return GameModel{}, fmt.Errorf("tui: %w", err)
	}

	rec := replay.NewRecorder(machine)
	session := opts.Metrics.Begin(cfg.Mode)
	sched := newFrameScheduler(opts.FPS)
	frame := &frameLog{}
	observe := stepObserver{next: session.Wrap(rec), after: func() {
		st := rec.State()
		session.Observe(st)
		frame.record(st)
	}}

	var clockOpts []clock.Option
	if opts.Logger != nil {
		clockOpts = append(clockOpts, clock.WithLogger(opts.Logger))
	}
	if opts.FixedStep > 0 {
		clockOpts = append(clockOpts, clock.WithFixedStep(opts.FixedStep, maxSubsteps))
	}

	return GameModel{
		info:    info,
		opts:    opts,
		rec:     rec,
		clk:     clock.New(observe, sched, clockOpts...),
		sched:   sched,
		session: session,
		frame:   frame,
		screen:  core.NewScreen(80, 24),
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
		state:   rec.State(),
	}, nil
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	m.clk.Start()
	return m.sched.flush()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.sched.deliver(msg)
		m.refresh()
		return m, m.sched.flush()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	status := m.rec.Machine().Status()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stop()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.opts.AllowBack && (status == engine.StatusPaused || status.Ended()) {
			m.stop()
			m.backToMenu = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Start),
		status == engine.StatusIdle && key.Matches(msg, m.keys.HardDrop):
		m.rec.Start()

	case key.Matches(msg, m.keys.Restart):
		if status.Ended() {
			m.rec.HandleInput(core.RestartInput())
			m.rec.Start()
			*m.frame = frameLog{}
			m.saved = false
			m.savedID = 0
		}

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	default:
		if in, ok := m.keys.InputFor(msg); ok {
			m.rec.HandleInput(in)
		}
	}

	m.refresh()
	return m, nil
}

// refresh pulls a new snapshot and saves the replay once a game ends.
// Outcomes and cues cover every tick since the previous refresh.
func (m *GameModel) refresh() {
	m.state = m.rec.State()
	if outcomes, cues, ok := m.frame.take(); ok {
		m.state.Outcomes = outcomes
		m.state.Cues = cues
	}

	if m.state.Status.Ended() && !m.saved {
		m.saved = true
		if m.opts.Store != nil {
			id, err := m.opts.Store.SaveReplay(m.opts.Player, m.rec.Log(), m.state)
			if err != nil {
				if m.opts.Logger != nil {
					m.opts.Logger.Warn("could not save replay", "error", err)
				}
				return
			}
			m.savedID = id
		}
	}
}

// stop releases the frame loop and the metrics session.
func (m *GameModel) stop() {
	m.clk.Stop()
	m.session.End()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	DrawState(m.screen, m.state, m.info.Title)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.info.ID, timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

var (
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	savedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	DrawState(m.screen, m.state, m.info.Title)
	footer := m.help.View(m.keys)
	if m.savedID > 0 && m.state.Status.Ended() {
		footer = savedStyle.Render(fmt.Sprintf("saved as replay #%d  ", m.savedID)) + footer
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

// State returns the latest snapshot shown.
func (m GameModel) State() engine.State {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the terminal until the user quits.
func Run(info registry.ModeInfo, cfg engine.Config, opts Options) error {
	model, err := NewGameModel(info, cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if gm, ok := final.(GameModel); ok {
		gm.stop()
	}
	return err
}
