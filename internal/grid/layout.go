package grid

import "github.com/vovakirdan/arcadesim/internal/core"

// Layout characters:
//
//	#  wall
//	.  collectible
//	o  power collectible
//	   (space) empty floor
//	P  player spawn (empty floor)
//	G  pursuer spawn (empty floor)
//	E  evader spawn (empty floor)
//
// Rows shorter than the widest row are padded with walls.

// Weights sets the score value of each collectible kind when parsing.
type Weights struct {
	Collectible int
	Power       int
}

// Markers holds the spawn tiles found while parsing a layout.
type Markers struct {
	Player   []core.Point
	Pursuers []core.Point
	Evaders  []core.Point
}

// Parse builds a grid from an ASCII layout.
func Parse(rows []string, w Weights) (*Grid, Markers, error) {
	var m Markers
	if len(rows) == 0 {
		return nil, m, errorf("empty layout")
	}

	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}
	if width == 0 {
		return nil, m, errorf("layout has no columns")
	}

	g := New(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		for x := 0; x < width; x++ {
			if x >= len(runes) {
				g.Set(x, y, Cell{Kind: Wall})
				continue
			}
			p := core.Pt(x, y)
			switch runes[x] {
			case '#':
				g.Set(x, y, Cell{Kind: Wall})
			case '.':
				g.Set(x, y, Cell{Kind: Collectible, Weight: w.Collectible})
			case 'o':
				g.Set(x, y, Cell{Kind: PowerCollectible, Weight: w.Power})
			case ' ':
			case 'P':
				m.Player = append(m.Player, p)
			case 'G':
				m.Pursuers = append(m.Pursuers, p)
			case 'E':
				m.Evaders = append(m.Evaders, p)
			default:
				return nil, m, errorf("unknown cell %q at %v", runes[x], p)
			}
		}
	}
	return g, m, nil
}
