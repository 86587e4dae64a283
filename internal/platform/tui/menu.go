package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcadesim/internal/registry"
	"github.com/vovakirdan/arcadesim/internal/storage"
)

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items          []registry.ModeInfo
	best           map[string]int
	cursor         int
	width          int
	height         int
	keys           MenuKeyMap
	help           help.Model
	notice         string // Shown under the list, e.g. a failed game start
	quitting       bool
	selected       *registry.ModeInfo
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The store is optional and only
// supplies best scores.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	items := registry.List()
	best := make(map[string]int, len(items))
	if store != nil {
		for _, it := range items {
			if high, err := store.HighScore(it.ID); err == nil {
				best[it.ID] = high
			}
		}
	}

	return MenuModel{
		items:  items,
		best:   best,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  A R C A D E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = menuPickStyle
		}

		line := fmt.Sprintf("%s%-16s", cursor, item.Title)
		if high := m.best[item.ID]; high > 0 {
			line += fmt.Sprintf(" best %d", high)
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		item := m.items[m.cursor]
		b.WriteString("\n")
		b.WriteString(centerText(menuDimStyle.Render(item.Description), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(menuDimStyle.Render(item.Controls), m.width))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.notice, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected mode, or nil if none selected.
func (m MenuModel) Selected() *registry.ModeInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the replay board.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width. Styled text is measured by
// its printed width.
func centerText(text string, width int) string {
	visible := lipgloss.Width(text)
	if visible >= width {
		return text
	}
	padding := (width - visible) / 2
	return strings.Repeat(" ", padding) + text
}
