package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/registry"
)

// ConfigFunc builds the engine configuration for a chosen mode.
type ConfigFunc func(info registry.ModeInfo) (engine.Config, error)

// DefaultConfigFunc uses the engine's stock settings with a fresh seed.
func DefaultConfigFunc(info registry.ModeInfo) (engine.Config, error) {
	return engine.DefaultConfig(info.Mode), nil
}

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full arcade session flow: menu -> game -> menu,
// with the replay board one key away. It is the top-level model for SSH
// sessions and for `arcade play` without a mode.
type SessionModel struct {
	opts      Options
	configure ConfigFunc
	width     int
	height    int
	screen    screenKind
	menu      MenuModel
	game      *GameModel
	scores    ScoreboardModel
	quitting  bool
	slot      *gameSlot
}

// gameSlot is shared by every copy of a SessionModel so the live game can
// be stopped after the program has exited.
type gameSlot struct {
	game *GameModel
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options, configure ConfigFunc, width, height int) SessionModel {
	if configure == nil {
		configure = DefaultConfigFunc
	}
	opts.AllowBack = true
	return SessionModel{
		opts:      opts,
		configure: configure,
		width:     width,
		height:    height,
		menu:      NewMenuModel(opts.Store, width, height),
		slot:      &gameSlot{},
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.opts.Store, m.width, m.height)
		m.screen = screenScores
		return m, nil
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.startGame(*selected)
	}

	return m, cmd
}

func (m SessionModel) startGame(info registry.ModeInfo) (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.opts.Store, m.width, m.height)

	cfg, err := m.configure(info)
	if err == nil {
		var game GameModel
		game, err = NewGameModel(info, cfg, m.opts)
		if err == nil {
			m.game = &game
			m.screen = screenGame
			sized, _ := game.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
			if gm, ok := sized.(GameModel); ok {
				m.game = &gm
			}
			m.slot.game = m.game
			return m, m.game.Init()
		}
	}

	if m.opts.Logger != nil {
		m.opts.Logger.Warn("could not start game", "mode", info.ID, "error", err)
	}
	m.menu.notice = "Could not start " + info.Title + ": " + err.Error()
	return m, nil
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.slot.game = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.opts.Store, m.width, m.height)
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScores handles updates when the replay board is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.opts.Store, m.width, m.height)
		return m, nil // drop the board's own quit command
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Shutdown stops a running game, if any. It must not race with Update, so
// call it once the program has finished.
func (m SessionModel) Shutdown() {
	if m.slot.game != nil {
		m.slot.game.stop()
		m.slot.game = nil
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(opts Options, configure ConfigFunc, width, height int) error {
	p := tea.NewProgram(NewSessionModel(opts, configure, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Shutdown()
	}
	return err
}
