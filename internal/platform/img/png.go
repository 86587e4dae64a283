// Package img draws simulation snapshots as raster images.
package img

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/grid"
	"github.com/vovakirdan/arcadesim/internal/motion"
)

// DefaultTile is the edge of one board cell in pixels.
const DefaultTile = 16

const headerH = 20

// Options control image rendering.
type Options struct {
	Tile   int           // Pixels per cell
	Motion motion.Params // Geometry used to place entities between tiles
}

func (o Options) withDefaults() Options {
	if o.Tile <= 0 {
		o.Tile = DefaultTile
	}
	if o.Motion.TileSize <= 0 {
		o.Motion = motion.DefaultParams()
	}
	return o
}

var (
	background = color.RGBA{12, 12, 28, 255}
	frameColor = color.RGBA{60, 60, 75, 255}
	headerText = color.RGBA{240, 240, 240, 255}
)

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {200, 200, 200, 255},
	core.ColorRed:           {205, 49, 49, 255},
	core.ColorGreen:         {13, 188, 121, 255},
	core.ColorYellow:        {229, 229, 16, 255},
	core.ColorBlue:          {36, 114, 200, 255},
	core.ColorMagenta:       {188, 63, 188, 255},
	core.ColorCyan:          {17, 168, 205, 255},
	core.ColorWhite:         {229, 229, 229, 255},
	core.ColorBrightRed:     {241, 76, 76, 255},
	core.ColorBrightGreen:   {35, 209, 139, 255},
	core.ColorBrightYellow:  {245, 245, 67, 255},
	core.ColorBrightBlue:    {59, 142, 234, 255},
	core.ColorBrightMagenta: {214, 112, 214, 255},
	core.ColorBrightCyan:    {41, 184, 219, 255},
	core.ColorBrightWhite:   {255, 255, 255, 255},
	core.ColorOrange:        {255, 135, 0, 255},
	core.ColorGray:          {138, 138, 138, 255},
}

func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorDefault]
}

// Render draws st into a new image. The board fills the image below a
// one-line header with the score.
func Render(st engine.State, opts Options) image.Image {
	opts = opts.withDefaults()
	cols, rows := boardSize(st)
	t := float64(opts.Tile)

	dc := gg.NewContext(max(1, cols*opts.Tile), headerH+max(1, rows*opts.Tile))
	dc.SetColor(background)
	dc.Clear()

	dc.SetColor(headerText)
	dc.DrawString(header(st), 4, headerH-6)

	dc.Push()
	dc.Translate(0, headerH)
	switch st.Mode {
	case engine.ModeChase:
		drawChase(dc, st, t, opts.Motion)
	case engine.ModeStacking:
		drawStacking(dc, st, t)
	case engine.ModeGrowth:
		drawGrowth(dc, st, t)
	}
	dc.Pop()

	if msg := overlay(st.Status); msg != "" {
		w, h := float64(dc.Width()), float64(dc.Height())
		dc.SetColor(color.RGBA{0, 0, 0, 160})
		dc.DrawRectangle(0, h/2-14, w, 28)
		dc.Fill()
		dc.SetColor(headerText)
		dc.DrawStringAnchored(msg, w/2, h/2, 0.5, 0.5)
	}
	return dc.Image()
}

// EncodePNG writes the rendered snapshot to w.
func EncodePNG(w io.Writer, st engine.State, opts Options) error {
	dc := gg.NewContextForImage(Render(st, opts))
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("img: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the rendered snapshot to path.
func SavePNG(path string, st engine.State, opts Options) error {
	if err := gg.SavePNG(path, Render(st, opts)); err != nil {
		return fmt.Errorf("img: save %s: %w", path, err)
	}
	return nil
}

func boardSize(st engine.State) (cols, rows int) {
	switch st.Mode {
	case engine.ModeStacking:
		if len(st.Board) > 0 {
			return len(st.Board[0]), len(st.Board)
		}
	default:
		if st.Grid != nil {
			return st.Grid.Width(), st.Grid.Height()
		}
	}
	return 0, 0
}

func header(st engine.State) string {
	s := fmt.Sprintf("%s  score %d", st.Mode, st.Score)
	if st.Mode == engine.ModeStacking {
		return s + fmt.Sprintf("  level %d", st.Level)
	}
	return s + fmt.Sprintf("  lives %d", st.Lives)
}

func overlay(s engine.Status) string {
	switch s {
	case engine.StatusPaused:
		return "PAUSED"
	case engine.StatusWon:
		return "YOU WIN"
	case engine.StatusLost:
		return "GAME OVER"
	}
	return ""
}

func fillCell(dc *gg.Context, x, y int, t float64, c color.Color) {
	dc.SetColor(c)
	dc.DrawRectangle(float64(x)*t+1, float64(y)*t+1, t-2, t-2)
	dc.Fill()
}

func drawChase(dc *gg.Context, st engine.State, t float64, p motion.Params) {
	g := st.Grid
	if g == nil {
		return
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cx, cy := (float64(x)+0.5)*t, (float64(y)+0.5)*t
			switch g.KindAt(x, y) {
			case grid.Wall:
				dc.SetColor(rgba(core.ColorBlue))
				dc.DrawRectangle(float64(x)*t, float64(y)*t, t, t)
				dc.Fill()
			case grid.Collectible:
				dc.SetColor(rgba(core.ColorWhite))
				dc.DrawCircle(cx, cy, t/8)
				dc.Fill()
			case grid.PowerCollectible:
				dc.SetColor(rgba(core.ColorBrightWhite))
				dc.DrawCircle(cx, cy, t/4)
				dc.Fill()
			}
		}
	}

	scale := t / p.TileSize
	for i := len(st.Entities) - 1; i >= 0; i-- {
		e := st.Entities[i]
		pos := e.Position(p)
		c := rgba(e.Color)
		switch {
		case e.Role == motion.RolePlayer:
			c = rgba(core.ColorBrightYellow)
		case e.Role == motion.RolePursuer && st.Power > 0:
			c = rgba(core.ColorBrightBlue)
		}
		dc.SetColor(c)
		dc.DrawCircle(pos.X*scale, pos.Y*scale, t*0.45)
		dc.Fill()
	}
}

func drawStacking(dc *gg.Context, st engine.State, t float64) {
	if len(st.Board) == 0 {
		return
	}
	for y, row := range st.Board {
		for x, c := range row {
			if c != core.ColorDefault {
				fillCell(dc, x, y, t, rgba(c))
			}
		}
	}
	if st.Piece != nil {
		for _, pt := range st.Piece.Absolute() {
			if pt.Y >= 0 {
				fillCell(dc, pt.X, pt.Y, t, rgba(st.Piece.Color))
			}
		}
	}
	dc.SetColor(frameColor)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, float64(len(st.Board[0]))*t-1, float64(len(st.Board))*t-1)
	dc.Stroke()
}

func drawGrowth(dc *gg.Context, st engine.State, t float64) {
	if st.Grid == nil {
		return
	}
	dc.SetColor(frameColor)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, float64(st.Grid.Width())*t-1, float64(st.Grid.Height())*t-1)
	dc.Stroke()

	if st.Food != nil {
		dc.SetColor(rgba(core.ColorRed))
		dc.DrawCircle((float64(st.Food.X)+0.5)*t, (float64(st.Food.Y)+0.5)*t, t*0.4)
		dc.Fill()
	}
	for i := len(st.Snake) - 1; i >= 0; i-- {
		c := rgba(core.ColorGreen)
		if i == 0 {
			c = rgba(core.ColorBrightGreen)
		}
		fillCell(dc, st.Snake[i].X, st.Snake[i].Y, t, c)
	}
}
