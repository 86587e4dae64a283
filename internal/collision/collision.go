// Package collision classifies what happened after entities moved: pickups
// against the board and contacts between entities.
package collision

import (
	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/grid"
	"github.com/vovakirdan/arcadesim/internal/motion"
)

// Kind identifies a collision event.
type Kind int

const (
	Collected       Kind = iota // Player took a collectible
	BoardCleared                // The last collectible is gone
	PlayerHit                   // Player touched a pursuer while vulnerable
	PursuerCaptured             // Player touched a pursuer while invulnerable
	EvaderCaught                // Player touched an evader
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Collected:
		return "collected"
	case BoardCleared:
		return "board-cleared"
	case PlayerHit:
		return "player-hit"
	case PursuerCaptured:
		return "pursuer-captured"
	case EvaderCaught:
		return "evader-caught"
	default:
		return "unknown"
	}
}

// Event is one classified collision.
type Event struct {
	Kind     Kind
	EntityID int        // Player for pickups and hits, the other entity for captures
	Tile     core.Point // Where it happened
	Weight   int        // Score weight of a collected cell
	Power    bool       // Collected cell was a power collectible
}

// World is the slice of simulation state the resolver looks at. Grid and
// Entities are borrowed from the caller and updated in place: collected cells
// are emptied and captured entities are sent back to their spawn tile.
type World struct {
	Grid         *grid.Grid
	Entities     []motion.Entity
	Invulnerable bool
}

// Resolve evaluates pickups first, then entity contacts, so a pickup and a
// hit on the same step are both reported. At most one PlayerHit is reported
// per call.
func Resolve(w *World) []Event {
	var events []Event
	if w == nil || w.Grid == nil {
		return events
	}

	for i := range w.Entities {
		p := &w.Entities[i]
		if p.Role != motion.RolePlayer {
			continue
		}
		events = appendPickup(events, w.Grid, p)
	}

	hit := false
	for i := range w.Entities {
		p := &w.Entities[i]
		if p.Role != motion.RolePlayer {
			continue
		}
		for j := range w.Entities {
			o := &w.Entities[j]
			if o.Role == motion.RolePlayer || !Touching(*p, *o) {
				continue
			}
			switch {
			case o.Role == motion.RoleEvader:
				events = append(events, Event{Kind: EvaderCaught, EntityID: o.ID, Tile: o.Tile})
				o.Respawn(o.Dir)
			case w.Invulnerable:
				events = append(events, Event{Kind: PursuerCaptured, EntityID: o.ID, Tile: o.Tile})
				o.Respawn(core.DirNone)
			case !hit:
				events = append(events, Event{Kind: PlayerHit, EntityID: p.ID, Tile: p.Tile})
				hit = true
			}
		}
	}
	return events
}

func appendPickup(events []Event, g *grid.Grid, p *motion.Entity) []Event {
	kind := g.KindAt(p.Tile.X, p.Tile.Y)
	weight, ok := g.RemoveCollectible(p.Tile.X, p.Tile.Y)
	if !ok {
		return events
	}
	events = append(events, Event{
		Kind:     Collected,
		EntityID: p.ID,
		Tile:     p.Tile,
		Weight:   weight,
		Power:    kind == grid.PowerCollectible,
	})
	if g.Remaining() == 0 {
		events = append(events, Event{Kind: BoardCleared, EntityID: p.ID, Tile: p.Tile})
	}
	return events
}

// Touching reports whether two entities share a tile or passed through each
// other by swapping tiles during the last move step.
func Touching(a, b motion.Entity) bool {
	if a.Tile == b.Tile {
		return true
	}
	return a.Tile != a.Prev && a.Prev == b.Tile && b.Prev == a.Tile
}

// Count returns how many events of kind k are in events.
func Count(events []Event, k Kind) int {
	n := 0
	for _, e := range events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
