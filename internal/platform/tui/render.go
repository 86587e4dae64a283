package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/grid"
	"github.com/vovakirdan/arcadesim/internal/motion"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Board cells are two columns wide so tiles look square in a terminal.
const cellW = 2

// boardTop is the first screen row below the header.
const boardTop = 2

// DrawState draws a snapshot into dst: a header line, the mode's board and,
// when the game is not running, a status banner over the board.
func DrawState(dst *core.Screen, st engine.State, title string) {
	dst.Clear()
	drawHeader(dst, st, title)

	var area core.Rect
	switch st.Mode {
	case engine.ModeChase:
		area = drawChase(dst, st)
	case engine.ModeStacking:
		area = drawStacking(dst, st)
	case engine.ModeGrowth:
		area = drawGrowth(dst, st)
	}

	if msg := banner(st.Status); msg != "" {
		y := area.Y + area.H/2
		x := area.X + (area.W-len([]rune(msg)))/2
		dst.DrawTextColored(x, y, msg, core.ColorBrightWhite)
	}
}

func drawHeader(dst *core.Screen, st engine.State, title string) {
	left := fmt.Sprintf("%s  Score %d", title, st.Score)
	switch st.Mode {
	case engine.ModeStacking:
		left += fmt.Sprintf("  Level %d  Lines %d", st.Level, st.Lines)
	default:
		left += fmt.Sprintf("  Lives %d", st.Lives)
	}
	if st.Mode == engine.ModeChase && st.Power > 0 {
		left += fmt.Sprintf("  Power %.1fs", st.Power.Seconds())
	}
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	if len(st.Cues) > 0 {
		cue := "♪ " + strings.Join(st.Cues, " ")
		dst.DrawTextColored(dst.Width()-len([]rune(cue))-1, 0, cue, core.ColorGray)
	}
}

func banner(s engine.Status) string {
	switch s {
	case engine.StatusIdle:
		return " Press Enter to start "
	case engine.StatusPaused:
		return " PAUSED "
	case engine.StatusWon:
		return " YOU WIN! r to restart "
	case engine.StatusLost:
		return " GAME OVER  r to restart "
	default:
		return ""
	}
}

// origin centres a board of w x h screen cells below the header.
func origin(dst *core.Screen, w int) int {
	return max(0, (dst.Width()-w)/2)
}

func drawChase(dst *core.Screen, st engine.State) core.Rect {
	g := st.Grid
	if g == nil {
		return core.Rect{}
	}
	ox := origin(dst, g.Width()*cellW)
	area := core.NewRect(ox, boardTop, g.Width()*cellW, g.Height())

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			sx, sy := ox+x*cellW, boardTop+y
			switch g.KindAt(x, y) {
			case grid.Wall:
				dst.SetColored(sx, sy, '█', core.ColorBlue)
				dst.SetColored(sx+1, sy, '█', core.ColorBlue)
			case grid.Collectible:
				dst.SetColored(sx, sy, '·', core.ColorWhite)
			case grid.PowerCollectible:
				dst.SetColored(sx, sy, '●', core.ColorBrightWhite)
			}
		}
	}

	// Player last so it stays visible on contact.
	for i := len(st.Entities) - 1; i >= 0; i-- {
		e := st.Entities[i]
		r, c := entityGlyph(e, st.Power > 0)
		dst.SetColored(ox+e.Tile.X*cellW, boardTop+e.Tile.Y, r, c)
	}
	return area
}

func entityGlyph(e motion.Entity, powered bool) (rune, core.Color) {
	switch e.Role {
	case motion.RolePlayer:
		return 'C', core.ColorBrightYellow
	case motion.RoleEvader:
		return '$', e.Color
	default:
		if powered {
			return 'M', core.ColorBrightBlue
		}
		return 'M', e.Color
	}
}

func drawStacking(dst *core.Screen, st engine.State) core.Rect {
	rows := len(st.Board)
	if rows == 0 {
		return core.Rect{}
	}
	cols := len(st.Board[0])
	w := cols*cellW + 2
	ox := origin(dst, w)
	box := core.NewRect(ox, boardTop, w, rows+2)
	dst.DrawBox(box, core.ColorGray)

	fill := func(x, y int, c core.Color) {
		if y < 0 {
			return
		}
		sx, sy := ox+1+x*cellW, boardTop+1+y
		dst.SetColored(sx, sy, '█', c)
		dst.SetColored(sx+1, sy, '█', c)
	}

	for y, row := range st.Board {
		for x, c := range row {
			if c != core.ColorDefault {
				fill(x, y, c)
			}
		}
	}
	if st.Piece != nil {
		for _, p := range st.Piece.Absolute() {
			fill(p.X, p.Y, st.Piece.Color)
		}
	}
	return box
}

func drawGrowth(dst *core.Screen, st engine.State) core.Rect {
	g := st.Grid
	if g == nil {
		return core.Rect{}
	}
	w := g.Width()*cellW + 2
	ox := origin(dst, w)
	box := core.NewRect(ox, boardTop, w, g.Height()+2)
	dst.DrawBox(box, core.ColorGray)

	if st.Food != nil {
		dst.SetColored(ox+1+st.Food.X*cellW, boardTop+1+st.Food.Y, '●', core.ColorRed)
	}
	for i := len(st.Snake) - 1; i >= 0; i-- {
		p := st.Snake[i]
		c := core.ColorGreen
		if i == 0 {
			c = core.ColorBrightGreen
		}
		sx, sy := ox+1+p.X*cellW, boardTop+1+p.Y
		dst.SetColored(sx, sy, '█', c)
		dst.SetColored(sx+1, sy, '█', c)
	}
	return box
}
