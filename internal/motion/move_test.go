package motion

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/grid"
)

func parseGrid(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	g, _, err := grid.Parse(rows, grid.Weights{Collectible: 10, Power: 50})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return g
}

// oneTilePer returns the speed that covers one 40-unit tile per interval.
func oneTilePer(d time.Duration) float64 {
	return DefaultParams().TileSize / d.Seconds()
}

func TestProposeMoveOneTilePerInterval(t *testing.T) {
	g := parseGrid(t,
		"#######",
		"#     #",
		"#######",
	)
	step := 150 * time.Millisecond
	e := Entity{Tile: core.Pt(1, 1), Dir: core.DirRight, NextDir: core.DirRight, Speed: oneTilePer(step)}

	for want := 2; want <= 5; want++ {
		e = ProposeMove(e, g, DefaultParams(), step)
		if e.Tile != core.Pt(want, 1) {
			t.Fatalf("after %d steps tile = %v, expected (%d,1)", want-1, e.Tile, want)
		}
		if !e.Centered(DefaultParams()) {
			t.Fatalf("entity should land on a tile centre, offset %+v", e.Offset)
		}
	}

	// Next step is into the wall: the entity stops on the centre.
	e = ProposeMove(e, g, DefaultParams(), step)
	if e.Tile != core.Pt(5, 1) || e.Offset != (Vec{}) {
		t.Errorf("blocked entity = %v %+v, expected stopped at (5,1)", e.Tile, e.Offset)
	}
}

func TestProposeMoveSubTile(t *testing.T) {
	g := parseGrid(t, "#    #")
	e := Entity{Tile: core.Pt(1, 0), Dir: core.DirRight, Speed: 100}

	e = ProposeMove(e, g, DefaultParams(), 100*time.Millisecond) // 10 units
	if e.Tile != core.Pt(1, 0) || e.Offset.X != 10 {
		t.Fatalf("after 10 units: tile %v offset %+v", e.Tile, e.Offset)
	}

	e = ProposeMove(e, g, DefaultParams(), 150*time.Millisecond) // 15 more, crosses the edge at 20
	if e.Tile != core.Pt(2, 0) {
		t.Fatalf("tile = %v, expected (2,0)", e.Tile)
	}
	if math.Abs(e.Offset.X+15) > 1e-9 {
		t.Errorf("offset = %+v, expected -15 from the new centre", e.Offset)
	}
	if e.Prev != core.Pt(1, 0) {
		t.Errorf("Prev = %v, expected (1,0)", e.Prev)
	}
}

func TestProposeMoveBufferedTurn(t *testing.T) {
	g := parseGrid(t,
		"#####",
		"#   #",
		"### #",
		"#####",
	)
	step := 100 * time.Millisecond
	e := Entity{Tile: core.Pt(1, 1), Dir: core.DirRight, NextDir: core.DirDown, Speed: oneTilePer(step)}

	// Down is blocked at (1,1) and (2,1): the turn stays buffered.
	e = ProposeMove(e, g, DefaultParams(), step)
	if e.Tile != core.Pt(2, 1) || e.Dir != core.DirRight {
		t.Fatalf("step 1: %v dir %v", e.Tile, e.Dir)
	}
	e = ProposeMove(e, g, DefaultParams(), step)
	if e.Tile != core.Pt(3, 1) || e.NextDir != core.DirDown {
		t.Fatalf("step 2: %v next %v", e.Tile, e.NextDir)
	}
	// At (3,1) down opens up and is taken.
	e = ProposeMove(e, g, DefaultParams(), step)
	if e.Tile != core.Pt(3, 2) || e.Dir != core.DirDown {
		t.Errorf("step 3: %v dir %v, expected (3,2) down", e.Tile, e.Dir)
	}
}

func TestProposeMoveTurnOnlyAtCentre(t *testing.T) {
	g := parseGrid(t,
		"#####",
		"#   #",
		"#   #",
		"#####",
	)
	e := Entity{Tile: core.Pt(1, 1), Offset: Vec{X: 10}, Dir: core.DirRight, NextDir: core.DirDown, Speed: 100}

	e = ProposeMove(e, g, DefaultParams(), 50*time.Millisecond) // 5 units
	if e.Dir != core.DirRight || e.Offset.Y != 0 {
		t.Errorf("turned away from centre: dir %v offset %+v", e.Dir, e.Offset)
	}
}

func TestProposeMoveStopsWhenBoxedIn(t *testing.T) {
	g := parseGrid(t, "###", "# #", "###")
	e := Entity{Tile: core.Pt(1, 1), Dir: core.DirUp, NextDir: core.DirLeft, Speed: 1000}

	got := ProposeMove(e, g, DefaultParams(), time.Second)
	if got.Tile != e.Tile || got.Offset != (Vec{}) {
		t.Errorf("boxed-in entity moved to %v %+v", got.Tile, got.Offset)
	}
}

func TestProposeMoveNeverEntersWall(t *testing.T) {
	g := parseGrid(t,
		"##########",
		"#    #   #",
		"# ##   # #",
		"#    #   #",
		"##########",
	)
	dirs := []core.Direction{core.DirRight, core.DirDown, core.DirLeft, core.DirUp}
	e := Entity{Tile: core.Pt(1, 1), Dir: core.DirRight, Speed: 170}

	for i := 0; i < 500; i++ {
		e.NextDir = dirs[(i/7)%len(dirs)]
		e = ProposeMove(e, g, DefaultParams(), time.Duration(5+i%40)*time.Millisecond)
		if !g.Passable(e.Tile) {
			t.Fatalf("iteration %d: entity inside wall at %v", i, e.Tile)
		}
	}
}

func TestProposeMoveDoesNotMutateInput(t *testing.T) {
	g := parseGrid(t, "#   #")
	e := Entity{Tile: core.Pt(1, 0), Dir: core.DirRight, Speed: 400}
	_ = ProposeMove(e, g, DefaultParams(), 100*time.Millisecond)
	if e.Tile != core.Pt(1, 0) || e.Offset != (Vec{}) {
		t.Error("ProposeMove must not modify its argument")
	}
}
