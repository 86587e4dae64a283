// Package spawn places new things on the board: collectibles and food on free
// cells, and falling pieces at the top of the stacking well. Every random
// choice goes through an injected *rand.Rand so runs can be replayed.
package spawn

import (
	"math/rand"

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/grid"
)

// MaxAttempts bounds the random probes before falling back to a full scan.
const MaxAttempts = 64

// NextCell picks a passable cell not in occupied, uniformly at random.
// ok is false when every passable cell is taken.
func NextCell(g *grid.Grid, occupied map[core.Point]bool, rng *rand.Rand) (core.Point, bool) {
	w, h := g.Width(), g.Height()
	if w == 0 || h == 0 {
		return core.Point{}, false
	}

	// Rejection sampling keeps the draw uniform over free cells.
	for i := 0; i < MaxAttempts; i++ {
		p := core.Pt(rng.Intn(w), rng.Intn(h))
		if g.Passable(p) && !occupied[p] {
			return p, true
		}
	}

	free := make([]core.Point, 0, w*h)
	for _, p := range g.PassableCells() {
		if !occupied[p] {
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return core.Point{}, false
	}
	return free[rng.Intn(len(free))], true
}
