package core

// Direction is the canonical movement direction. Hosts map physical keys
// (arrows, WASD, ...) onto these four values.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirLeft
	DirDown
	DirRight
)

// DirectionPriority is the fixed tie-break order used wherever several
// directions score equally.
var DirectionPriority = [4]Direction{DirUp, DirLeft, DirDown, DirRight}

// Delta returns the unit tile offset for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction. DirNone is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Valid reports whether d is one of the four movement directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirNone:
		return "none"
	default:
		return "unknown"
	}
}
