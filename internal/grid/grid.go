// Package grid implements the fixed-shape tile board the simulation runs on.
//
// A Grid never changes shape after construction. The only mutation allowed is
// turning a collectible cell into an empty one. Coordinates outside the grid
// behave as walls, so callers never need bounds checks of their own.
package grid

import (
	"fmt"

	"github.com/vovakirdan/arcadesim/internal/core"
)

// Kind is the semantic type of a cell.
type Kind uint8

const (
	Empty Kind = iota
	Wall
	Collectible
	PowerCollectible
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Collectible:
		return "collectible"
	case PowerCollectible:
		return "power"
	default:
		return "unknown"
	}
}

// Cell is a single grid cell. Weight is the score value of a collectible.
type Cell struct {
	Kind   Kind
	Weight int
}

// IsCollectible reports whether the cell holds anything the player can pick up.
func (c Cell) IsCollectible() bool {
	return c.Kind == Collectible || c.Kind == PowerCollectible
}

// Grid is a rectangular board stored in row-major order: index = y*W + x.
type Grid struct {
	w, h      int
	cells     []Cell
	remaining int
}

// New creates a grid of the given size with every cell empty.
func New(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{w: w, h: h, cells: make([]Cell, w*h)}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// CellAt returns the cell at (x, y). Out-of-range coordinates fail closed to
// a wall; this is the edge policy, not an error.
func (g *Grid) CellAt(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{Kind: Wall}
	}
	return g.cells[y*g.w+x]
}

// KindAt is shorthand for CellAt(x, y).Kind.
func (g *Grid) KindAt(x, y int) Kind {
	return g.CellAt(x, y).Kind
}

// IsPassable reports whether an entity may occupy (x, y).
func (g *Grid) IsPassable(x, y int) bool {
	return g.CellAt(x, y).Kind != Wall
}

// Passable is IsPassable for a point.
func (g *Grid) Passable(p core.Point) bool {
	return g.IsPassable(p.X, p.Y)
}

// Set replaces the cell at (x, y). It is meant for building boards; the
// collectible counter is kept in sync. Out-of-range writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	i := y*g.w + x
	if g.cells[i].IsCollectible() {
		g.remaining--
	}
	if c.IsCollectible() {
		g.remaining++
	}
	g.cells[i] = c
}

// RemoveCollectible turns a collectible cell into an empty one and returns its
// weight. ok is false when the cell held no collectible.
func (g *Grid) RemoveCollectible(x, y int) (weight int, ok bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	i := y*g.w + x
	c := g.cells[i]
	if !c.IsCollectible() {
		return 0, false
	}
	g.cells[i] = Cell{Kind: Empty}
	g.remaining--
	return c.Weight, true
}

// Remaining returns the number of collectibles still on the board.
func (g *Grid) Remaining() int {
	return g.remaining
}

// PassableCells returns every passable coordinate, ordered by row then column.
func (g *Grid) PassableCells() []core.Point {
	out := make([]core.Point, 0, len(g.cells))
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if g.cells[y*g.w+x].Kind != Wall {
				out = append(out, core.Pt(x, y))
			}
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{w: g.w, h: g.h, cells: cells, remaining: g.remaining}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.w != other.w || g.h != other.h {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid with the layout characters understood by Parse.
func (g *Grid) String() string {
	b := make([]byte, 0, (g.w+1)*g.h)
	for y := 0; y < g.h; y++ {
		if y > 0 {
			b = append(b, '\n')
		}
		for x := 0; x < g.w; x++ {
			b = append(b, kindRune(g.cells[y*g.w+x].Kind))
		}
	}
	return string(b)
}

func kindRune(k Kind) byte {
	switch k {
	case Wall:
		return '#'
	case Collectible:
		return '.'
	case PowerCollectible:
		return 'o'
	default:
		return ' '
	}
}

// errorf keeps the package prefix consistent.
func errorf(format string, args ...any) error {
	return fmt.Errorf("grid: "+format, args...)
}
