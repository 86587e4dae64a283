package motion

import (
	"time"

	"github.com/vovakirdan/arcadesim/internal/core"
)

// passabler is the slice of the grid API motion needs.
type passabler interface {
	Passable(p core.Point) bool
}

// maxSegments bounds the work done for one call regardless of speed * dt.
const maxSegments = 64

// ProposeMove returns the entity after travelling Speed*dt along its
// direction. The input is not modified.
//
// Turning is only evaluated at a tile centre: the buffered NextDir is taken
// when its target tile is passable, otherwise the entity keeps its direction.
// When the current direction is blocked as well the entity stops exactly on
// the centre. An entity never enters a wall tile.
func ProposeMove(e Entity, g passabler, p Params, dt time.Duration) Entity {
	dist := e.Speed * dt.Seconds()
	half := p.TileSize / 2
	e.Prev = e.Tile

	for seg := 0; seg < maxSegments; seg++ {
		if e.Centered(p) {
			e.Offset = Vec{}
			if e.NextDir.Valid() && g.Passable(e.Tile.Step(e.NextDir)) {
				e.Dir = e.NextDir
			}
			if !e.Dir.Valid() || !g.Passable(e.Tile.Step(e.Dir)) {
				return e
			}
		}
		if dist <= 0 {
			return e
		}

		along := e.Offset.along(e.Dir)
		if along < 0 {
			// Approaching the centre of the current tile.
			need := -along
			if dist < need {
				e.Offset = e.Offset.plus(e.Dir, dist)
				return e
			}
			e.Offset = Vec{}
			dist -= need
			continue
		}

		// Past the centre, heading for the boundary with the next tile. The
		// next tile was checked when the entity left the centre.
		toEdge := half - along
		if dist < toEdge {
			e.Offset = e.Offset.plus(e.Dir, dist)
			return e
		}
		e.Tile = e.Tile.Step(e.Dir)
		e.Offset = Vec{}.plus(e.Dir, -half)
		dist -= toEdge
	}
	return e
}
