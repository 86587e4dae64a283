package motion

import "github.com/vovakirdan/arcadesim/internal/core"

// Steer picks the direction a computer-controlled entity should take from its
// current tile. A pursuer (flee == false) minimises the Manhattan distance
// from the next tile to target; a fleeing entity maximises it. Ties go to the
// first direction in core.DirectionPriority. Reversing is only allowed when
// it is the sole legal move. DirNone is returned when the entity is boxed in.
func Steer(e Entity, g passabler, target core.Point, flee bool) core.Direction {
	back := e.Dir.Opposite()

	best := core.DirNone
	bestDist := 0
	for _, d := range core.DirectionPriority {
		if d == back && e.Dir.Valid() {
			continue
		}
		next := e.Tile.Step(d)
		if !g.Passable(next) {
			continue
		}
		dist := next.Manhattan(target)
		if best == core.DirNone || (!flee && dist < bestDist) || (flee && dist > bestDist) {
			best = d
			bestDist = dist
		}
	}

	if best == core.DirNone && back.Valid() && g.Passable(e.Tile.Step(back)) {
		return back
	}
	return best
}
