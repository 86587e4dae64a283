// Package motion moves grid actors with tile-quantised, direction-buffered
// motion and picks directions for computer-controlled roles.
package motion

import (
	"math"

	"github.com/vovakirdan/arcadesim/internal/core"
)

// Role decides how an entity is controlled and how collisions treat it.
type Role int

const (
	RolePlayer  Role = iota // Steered by input
	RolePursuer             // Chases the player
	RoleEvader              // Runs from the player
)

// String returns a human-readable name for the role.
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RolePursuer:
		return "pursuer"
	case RoleEvader:
		return "evader"
	default:
		return "unknown"
	}
}

// Vec is a sub-tile offset in world units.
type Vec struct {
	X, Y float64
}

// Params are the geometry constants shared by every entity on a board.
type Params struct {
	TileSize float64 // World units per tile
	Epsilon  float64 // Max distance from the tile centre that still counts as centred
}

// DefaultParams snaps within 3 units of a 40-unit tile.
func DefaultParams() Params {
	return Params{TileSize: 40, Epsilon: 3}
}

// Entity is a single actor on the grid. Tile is the quantised position and
// Offset the continuous displacement from that tile's centre, used by hosts
// for smooth drawing.
type Entity struct {
	ID      int
	Role    Role
	Tile    core.Point
	Offset  Vec
	Dir     core.Direction
	NextDir core.Direction
	Speed   float64 // World units per second
	Spawn   core.Point
	Color   core.Color

	// Prev is the tile occupied before the most recent move step.
	Prev core.Point
}

// Centered reports whether the entity is close enough to its tile centre to
// change direction.
func (e Entity) Centered(p Params) bool {
	return math.Abs(e.Offset.X) <= p.Epsilon && math.Abs(e.Offset.Y) <= p.Epsilon
}

// Position returns the continuous world position of the entity's centre.
func (e Entity) Position(p Params) Vec {
	return Vec{
		X: (float64(e.Tile.X)+0.5)*p.TileSize + e.Offset.X,
		Y: (float64(e.Tile.Y)+0.5)*p.TileSize + e.Offset.Y,
	}
}

// Respawn puts the entity back on its spawn tile, centred and facing dir.
func (e *Entity) Respawn(dir core.Direction) {
	e.Tile = e.Spawn
	e.Prev = e.Spawn
	e.Offset = Vec{}
	e.Dir = dir
	e.NextDir = dir
}

// along projects the offset onto direction d.
func (v Vec) along(d core.Direction) float64 {
	dx, dy := d.Delta()
	return v.X*float64(dx) + v.Y*float64(dy)
}

func (v Vec) plus(d core.Direction, dist float64) Vec {
	dx, dy := d.Delta()
	return Vec{X: v.X + float64(dx)*dist, Y: v.Y + float64(dy)*dist}
}
