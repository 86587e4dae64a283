package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcadesim/internal/registry"
	"github.com/vovakirdan/arcadesim/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered mode with its aliases and, when a database exists, play statistics.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	// Stats are optional; list works without a database.
	var stats map[string]*storage.ModeStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.AllModeStats()
		store.Close()
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
		maxTitleLen = max(maxTitleLen, len(m.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %-6s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Games", "Best")
	fmt.Printf("  %-*s  %-*s  %-6s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----", "----")

	for _, m := range modes {
		games, best := "-", "-"
		if s, ok := stats[m.ID]; ok && s.Games > 0 {
			games = fmt.Sprintf("%d", s.Games)
			best = fmt.Sprintf("%d", s.HighScore)
		}
		fmt.Printf("  %-*s  %-*s  %-6s  %s\n", maxIDLen, m.ID, maxTitleLen, m.Title, games, best)
	}

	fmt.Println()
	for _, m := range modes {
		fmt.Printf("  %s: %s\n", m.ID, m.Description)
		if len(m.Aliases) > 0 {
			fmt.Printf("    aliases: %v\n", m.Aliases)
		}
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a mode.")
}
