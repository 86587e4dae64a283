package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcadesim/internal/platform/tui"
	"github.com/vovakirdan/arcadesim/internal/registry"
	"github.com/vovakirdan/arcadesim/internal/storage"
)

var (
	flagTop   bool
	flagLimit int
	flagPlain bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays [mode]",
	Short: "Browse recorded games",
	Long: `List recorded games, newest first, or the best ones with --top.

On a terminal without a mode argument this opens the interactive replay
board; use --plain to print a list instead.

Examples:
  arcade replays
  arcade replays chase --top
  arcade replays --plain --limit 50`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagTop, "top", false, "Order by score instead of date")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of replays to list")
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a list even on a terminal")
}

func runReplays(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) == 1 {
		info, err := registry.Lookup(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available modes.")
			os.Exit(1)
		}
		mode = info.ID
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if mode == "" && !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := terminalSize()
		entry, picked, err := tui.RunScoreboard(store, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		if picked {
			if err := replayGame(store, entry.ID); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
		return
	}

	var entries []storage.ReplayEntry
	if flagTop {
		entries, err = store.TopReplays(mode, flagLimit)
	} else {
		entries, err = store.RecentReplays(mode, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		return
	}

	if len(entries) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Finish a game with 'arcade play <mode>' to record one.")
		return
	}

	fmt.Printf("  %-6s  %-8s  %-8s  %-6s  %-8s  %-10s  %s\n", "ID", "Mode", "Score", "Result", "Time", "Player", "Date")
	fmt.Printf("  %-6s  %-8s  %-8s  %-6s  %-8s  %-10s  %s\n", "--", "----", "-----", "------", "----", "------", "----")
	for _, e := range entries {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-6d  %-8s  %-8d  %-6s  %-8s  %-10s  %s\n",
			e.ID, e.Mode, e.Score, e.Status, e.Duration.Round(100*time.Millisecond), player,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'arcade replay <id>' to re-simulate a game.")
}
