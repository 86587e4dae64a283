package spawn

import (
	"math/rand"

	"github.com/vovakirdan/arcadesim/internal/core"
)

// Shape indexes the piece catalogue.
type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeL
	ShapeJ
	ShapeS
	ShapeZ
	shapeCount
)

var shapeNames = [shapeCount]string{"I", "O", "T", "L", "J", "S", "Z"}

// String returns the conventional letter for the shape.
func (s Shape) String() string {
	if s < 0 || s >= shapeCount {
		return "?"
	}
	return shapeNames[s]
}

// catalogue rows: '#' is a filled cell.
var catalogue = [shapeCount][]string{
	ShapeI: {"####"},
	ShapeO: {"##", "##"},
	ShapeT: {".#.", "###"},
	ShapeL: {"#..", "###"},
	ShapeJ: {"..#", "###"},
	ShapeS: {".##", "##."},
	ShapeZ: {"##.", ".##"},
}

var shapeColors = [shapeCount]core.Color{
	ShapeI: core.ColorCyan,
	ShapeO: core.ColorYellow,
	ShapeT: core.ColorMagenta,
	ShapeL: core.ColorOrange,
	ShapeJ: core.ColorBlue,
	ShapeS: core.ColorGreen,
	ShapeZ: core.ColorRed,
}

// Piece is a falling block: cell offsets relative to Origin.
type Piece struct {
	Shape  Shape
	Cells  []core.Point
	Origin core.Point
	Color  core.Color
}

// NewPiece builds shape s at the origin (0, 0).
func NewPiece(s Shape) Piece {
	rows := catalogue[s]
	var cells []core.Point
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				cells = append(cells, core.Pt(x, y))
			}
		}
	}
	return Piece{Shape: s, Cells: cells, Color: shapeColors[s]}
}

// NextPiece draws a shape uniformly and places it centred on row 0 of a well
// cols wide.
func NextPiece(rng *rand.Rand, cols int) Piece {
	p := NewPiece(Shape(rng.Intn(int(shapeCount))))
	p.Origin = core.Pt(cols/2-p.Width()/2, 0)
	return p
}

// Width returns the number of columns the piece spans.
func (p Piece) Width() int {
	w := 0
	for _, c := range p.Cells {
		if c.X+1 > w {
			w = c.X + 1
		}
	}
	return w
}

// Height returns the number of rows the piece spans.
func (p Piece) Height() int {
	h := 0
	for _, c := range p.Cells {
		if c.Y+1 > h {
			h = c.Y + 1
		}
	}
	return h
}

// Absolute returns the board coordinates the piece covers.
func (p Piece) Absolute() []core.Point {
	out := make([]core.Point, len(p.Cells))
	for i, c := range p.Cells {
		out[i] = p.Origin.Add(c)
	}
	return out
}

// Moved returns a copy shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.Cells = append([]core.Point(nil), p.Cells...)
	p.Origin = p.Origin.Add(core.Pt(dx, dy))
	return p
}

// Rotated returns a copy turned 90° clockwise inside its bounding box.
func (p Piece) Rotated() Piece {
	h := p.Height()
	cells := make([]core.Point, len(p.Cells))
	for i, c := range p.Cells {
		cells[i] = core.Pt(h-1-c.Y, c.X)
	}
	p.Cells = cells
	return p
}

// Clone returns a deep copy.
func (p Piece) Clone() Piece {
	p.Cells = append([]core.Point(nil), p.Cells...)
	return p
}
