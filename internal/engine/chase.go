package engine

import (
	"time"

	"github.com/vovakirdan/arcadesim/internal/collision"
	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/grid"
	"github.com/vovakirdan/arcadesim/internal/motion"
)

// Colours handed to pursuers in spawn order.
var pursuerColors = []core.Color{core.ColorRed, core.ColorMagenta, core.ColorCyan, core.ColorOrange}

// chaseRules is the maze mode: the player clears collectibles while
// pursuers hunt it and evaders run from it.
type chaseRules struct {
	cfg      ChaseConfig
	grid     *grid.Grid
	entities []motion.Entity // Player first

	wantDir core.Direction // Input buffer, consumed but never cleared
	power   time.Duration

	player, pursuers, evaders interval
}

func (c *chaseRules) reset(m *Machine) error {
	c.cfg = m.cfg.Chase
	g, marks, err := grid.Parse(c.cfg.Layout, grid.Weights{
		Collectible: c.cfg.CollectScore,
		Power:       c.cfg.PowerScore,
	})
	if err != nil {
		return errorf("chase layout: %w", err)
	}
	if len(marks.Player) != 1 {
		return errorf("chase layout needs exactly one player, found %d", len(marks.Player))
	}
	if g.Remaining() == 0 {
		return errorf("chase layout has no collectibles")
	}
	c.grid = g

	c.entities = c.entities[:0]
	add := func(role motion.Role, at core.Point, every time.Duration, color core.Color) {
		c.entities = append(c.entities, motion.Entity{
			ID:    len(c.entities),
			Role:  role,
			Tile:  at,
			Prev:  at,
			Spawn: at,
			Speed: c.cfg.Motion.TileSize / every.Seconds(),
			Color: color,
		})
	}
	add(motion.RolePlayer, marks.Player[0], c.cfg.PlayerInterval, core.ColorBrightYellow)
	for i, p := range marks.Pursuers {
		add(motion.RolePursuer, p, c.cfg.PursuerInterval, pursuerColors[i%len(pursuerColors)])
	}
	for _, p := range marks.Evaders {
		add(motion.RoleEvader, p, c.cfg.EvaderInterval, core.ColorBrightGreen)
	}
	c.respawn()

	c.power = 0
	c.player = newInterval(c.cfg.PlayerInterval, m.cfg.MaxCatchUp)
	c.pursuers = newInterval(c.cfg.PursuerInterval, m.cfg.MaxCatchUp)
	c.evaders = newInterval(c.cfg.EvaderInterval, m.cfg.MaxCatchUp)
	return nil
}

// respawn sends every actor home. The player starts out heading right.
func (c *chaseRules) respawn() {
	for i := range c.entities {
		e := &c.entities[i]
		if e.Role == motion.RolePlayer {
			e.Respawn(core.DirRight)
		} else {
			e.Respawn(core.DirNone)
		}
	}
	c.wantDir = core.DirRight
}

func (c *chaseRules) input(_ *Machine, in core.Input) {
	if in.Kind == core.InputDirection {
		c.wantDir = in.Dir
	}
}

func (c *chaseRules) advance(m *Machine, dt time.Duration) {
	powered := c.power > 0

	c.player.add(dt)
	c.pursuers.add(dt)
	c.evaders.add(dt)

	// Interleave the role cadences until none is due.
	for m.running() {
		moved := false
		if c.player.next() {
			c.stepRole(m, motion.RolePlayer, c.cfg.PlayerInterval)
			moved = true
		}
		if m.running() && c.pursuers.next() {
			c.stepRole(m, motion.RolePursuer, c.cfg.PursuerInterval)
			moved = true
		}
		if m.running() && c.evaders.next() {
			c.stepRole(m, motion.RoleEvader, c.cfg.EvaderInterval)
			moved = true
		}
		if !moved {
			break
		}
	}

	// Power granted during this tick runs from the next one.
	if powered && c.power > 0 {
		c.power -= dt
		if c.power < 0 {
			c.power = 0
		}
	}
}

// stepRole moves every entity with role by one cadence step, then resolves
// collisions.
func (c *chaseRules) stepRole(m *Machine, role motion.Role, step time.Duration) {
	player := c.entities[0]
	for i := range c.entities {
		e := &c.entities[i]
		e.Prev = e.Tile
		if e.Role != role {
			continue
		}
		switch role {
		case motion.RolePlayer:
			e.NextDir = c.wantDir
		case motion.RolePursuer, motion.RoleEvader:
			if e.Centered(c.cfg.Motion) {
				flee := role == motion.RoleEvader || c.power > 0
				if d := motion.Steer(*e, c.grid, player.Tile, flee); d != core.DirNone {
					e.Dir = d
					e.NextDir = d
				}
			}
		}
		*e = motion.ProposeMove(*e, c.grid, c.cfg.Motion, step)
	}
	c.resolve(m)
}

func (c *chaseRules) resolve(m *Machine) {
	w := collision.World{Grid: c.grid, Entities: c.entities, Invulnerable: c.power > 0}
	for _, ev := range collision.Resolve(&w) {
		if !m.running() {
			return
		}
		switch ev.Kind {
		case collision.Collected:
			m.addScore(ev.Weight)
			if ev.Power {
				c.power = c.cfg.PowerDuration
				m.cue(CuePower)
			} else {
				m.cue(CueChomp)
			}
		case collision.BoardCleared:
			m.win()
		case collision.PursuerCaptured:
			m.addScore(c.cfg.CaptureScore)
			m.cue(CueCapture)
		case collision.EvaderCaught:
			m.addScore(c.cfg.EvaderScore)
			m.cue(CueCapture)
		case collision.PlayerHit:
			if m.loseLife() > 0 {
				c.respawn()
				c.power = 0
			}
			return
		}
	}
}

func (c *chaseRules) snapshot(s *State) {
	s.Grid = c.grid.Clone()
	s.Entities = append([]motion.Entity(nil), c.entities...)
	s.Power = c.power
}
