package engine

import (
	"time"

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/grid"
	"github.com/vovakirdan/arcadesim/internal/spawn"
)

// growthRules is the snake mode. The board is open floor; its edges are
// walls through the grid's out-of-range policy.
type growthRules struct {
	cfg   GrowthConfig
	grid  *grid.Grid
	snake []core.Point // Head first
	dir   core.Direction
	next  core.Direction
	grow  int
	food  core.Point
	fed   bool
	eaten int
	move  interval
}

func (g *growthRules) reset(m *Machine) error {
	g.cfg = m.cfg.Growth
	if g.cfg.StartLength > g.cfg.Width/2 {
		return errorf("growth board %dx%d too small for a snake of %d",
			g.cfg.Width, g.cfg.Height, g.cfg.StartLength)
	}
	g.grid = grid.New(g.cfg.Width, g.cfg.Height)
	g.eaten = 0
	g.move = newInterval(g.cfg.BaseInterval, m.cfg.MaxCatchUp)
	g.place()
	g.spawnFood(m)
	return nil
}

// place lays the snake out horizontally, head to the right, on the middle row.
func (g *growthRules) place() {
	x, y := g.cfg.Width/4, g.cfg.Height/2
	g.snake = g.snake[:0]
	for i := g.cfg.StartLength - 1; i >= 0; i-- {
		g.snake = append(g.snake, core.Pt(x+i, y))
	}
	g.dir = core.DirRight
	g.next = core.DirRight
	g.grow = 0
}

// input buffers a turn. Reversing onto the neck is ignored.
func (g *growthRules) input(_ *Machine, in core.Input) {
	if in.Kind != core.InputDirection {
		return
	}
	if in.Dir == g.dir.Opposite() {
		return
	}
	g.next = in.Dir
}

func (g *growthRules) advance(m *Machine, dt time.Duration) {
	g.move.add(dt)
	for m.running() && g.move.next() {
		g.step(m)
	}
}

func (g *growthRules) step(m *Machine) {
	g.dir = g.next
	head := g.snake[0].Step(g.dir)

	if !g.grid.Passable(head) || g.bites(head) {
		if m.loseLife() > 0 {
			g.place()
			g.spawnFood(m)
		}
		return
	}

	g.snake = append(g.snake, core.Point{})
	copy(g.snake[1:], g.snake)
	g.snake[0] = head
	if g.grow > 0 {
		g.grow--
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	if g.fed && head == g.food {
		g.eaten++
		g.grow++
		m.addScore(g.cfg.FoodScore)
		m.cue(CueEat)
		g.move.set(g.interval())
		if g.cfg.TargetLength > 0 && len(g.snake)+g.grow >= g.cfg.TargetLength {
			m.win()
			return
		}
		g.spawnFood(m)
	}
}

// bites reports whether head runs into the body. The tail is exempt when it
// moves away this step.
func (g *growthRules) bites(head core.Point) bool {
	body := g.snake
	if g.grow == 0 {
		body = body[:len(body)-1]
	}
	for _, p := range body {
		if p == head {
			return true
		}
	}
	return false
}

func (g *growthRules) interval() time.Duration {
	d := g.cfg.BaseInterval - time.Duration(g.eaten)*g.cfg.IntervalStep
	if d < g.cfg.MinInterval {
		d = g.cfg.MinInterval
	}
	return d
}

// spawnFood puts food on a free cell. A board with no room left ends the game.
func (g *growthRules) spawnFood(m *Machine) {
	occupied := make(map[core.Point]bool, len(g.snake))
	for _, p := range g.snake {
		occupied[p] = true
	}
	p, ok := spawn.NextCell(g.grid, occupied, m.rng)
	g.food, g.fed = p, ok
	if !ok {
		m.lose()
	}
}

func (g *growthRules) snapshot(s *State) {
	s.Grid = g.grid.Clone()
	s.Snake = append([]core.Point(nil), g.snake...)
	if g.fed {
		f := g.food
		s.Food = &f
	}
}
