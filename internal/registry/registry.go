// Package registry lists the playable modes. Commands and menus discover
// modes here instead of hardcoding them, and accept the classic game names
// as aliases.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/arcadesim/internal/engine"
)

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	// ID is the command-line name (e.g., "chase").
	ID string

	// Title is the display name.
	Title string

	// Description is a one-line summary for listings.
	Description string

	// Controls describes the keys the mode reacts to.
	Controls string

	// Aliases are alternative names accepted by Lookup.
	Aliases []string

	Mode engine.Mode
}

var (
	modes   = make(map[string]ModeInfo)
	aliases = make(map[string]string)
	mu      sync.RWMutex
)

func init() {
	Register(ModeInfo{
		ID:          engine.ModeChase.String(),
		Title:       "Maze Chase",
		Description: "Clear the maze of dots while pursuers hunt you. Power pellets turn the tables.",
		Controls:    "arrows/WASD steer",
		Aliases:     []string{"pacman", "maze"},
		Mode:        engine.ModeChase,
	})
	Register(ModeInfo{
		ID:          engine.ModeStacking.String(),
		Title:       "Block Stacking",
		Description: "Fit falling pieces into full rows before the well overflows.",
		Controls:    "←/→ shift, ↓ drop, ↑ rotate, space hard drop",
		Aliases:     []string{"tetris", "blocks"},
		Mode:        engine.ModeStacking,
	})
	Register(ModeInfo{
		ID:          engine.ModeGrowth.String(),
		Title:       "Snake",
		Description: "Eat food to grow longer. Don't hit the walls or yourself.",
		Controls:    "arrows/WASD steer",
		Aliases:     []string{"snake"},
		Mode:        engine.ModeGrowth,
	})
}

// Register adds a mode to the registry.
// Panics if the ID or one of the aliases is already taken.
func Register(info ModeInfo) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[info.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	for _, a := range info.Aliases {
		if _, exists := aliases[a]; exists {
			panic(fmt.Sprintf("registry: alias %q already registered", a))
		}
	}

	modes[info.ID] = info
	for _, a := range info.Aliases {
		aliases[a] = info.ID
	}
}

// List returns all registered modes, sorted by engine mode order.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for _, info := range modes {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Mode != result[j].Mode {
			return result[i].Mode < result[j].Mode
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup finds a mode by ID or alias.
// Returns an error if the name is not registered.
func Lookup(name string) (ModeInfo, error) {
	mu.RLock()
	defer mu.RUnlock()

	if id, ok := aliases[name]; ok {
		name = id
	}
	info, ok := modes[name]
	if !ok {
		return ModeInfo{}, fmt.Errorf("registry: unknown mode %q", name)
	}
	return info, nil
}
