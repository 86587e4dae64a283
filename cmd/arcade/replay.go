package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/logging"
	"github.com/vovakirdan/arcadesim/internal/platform/img"
	"github.com/vovakirdan/arcadesim/internal/replay"
	"github.com/vovakirdan/arcadesim/internal/storage"
)

var (
	flagPNG    string
	flagTile   int
	flagDelete bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded game",
	Long: `Load a recorded game, run it again from its seed and inputs, and
print the final state. The result is checked against the stored score.

Examples:
  arcade replay 12
  arcade replay 12 --png final.png --tile 24
  arcade replay 12 --delete`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagPNG, "png", "", "Write the final state as a PNG image")
	replayCmd.Flags().IntVar(&flagTile, "tile", img.DefaultTile, "Pixels per board cell for --png")
	replayCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the replay instead of running it")
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening replay database: %w", err)
	}
	defer store.Close()

	if flagDelete {
		if err := store.DeleteReplay(id); err != nil {
			return err
		}
		fmt.Printf("Deleted replay #%d\n", id)
		return nil
	}

	return replayGame(store, id)
}

// replayGame re-simulates a stored game and prints its final state.
func replayGame(store *storage.Store, id int64) error {
	entry, rlog, err := store.Replay(id)
	if err != nil {
		return fmt.Errorf("loading replay: %w", err)
	}
	if entry == nil {
		return fmt.Errorf("replay #%d not found", id)
	}

	logger := logging.New("replay")
	logger.Debug("re-simulating", "id", id, "mode", entry.Mode, "steps", len(rlog.Steps))

	m, err := replay.Play(*rlog, engine.WithLogger(logger))
	if err != nil {
		return err
	}
	st := m.State()
	printState(entry, st)

	if flagPNG != "" {
		opts := img.Options{Tile: flagTile, Motion: rlog.Config.Chase.Motion}
		if err := img.SavePNG(flagPNG, st, opts); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", flagPNG)
	}

	if st.Score != entry.Score || st.Tick != entry.Ticks {
		return fmt.Errorf("replay #%d diverged: score %d (stored %d), ticks %d (stored %d)",
			id, st.Score, entry.Score, st.Tick, entry.Ticks)
	}
	return nil
}

func printState(entry *storage.ReplayEntry, st engine.State) {
	fmt.Printf("Replay #%d  %s  seed %d  player %s\n", entry.ID, entry.Mode, entry.Seed, entry.Player)
	fmt.Printf("  Status:  %s\n", st.Status)
	fmt.Printf("  Score:   %d\n", st.Score)
	switch st.Mode {
	case engine.ModeStacking:
		fmt.Printf("  Level:   %d\n", st.Level)
		fmt.Printf("  Lines:   %d\n", st.Lines)
	case engine.ModeGrowth:
		fmt.Printf("  Lives:   %d\n", st.Lives)
		fmt.Printf("  Length:  %d\n", len(st.Snake))
	default:
		fmt.Printf("  Lives:   %d\n", st.Lives)
		if st.Grid != nil {
			fmt.Printf("  Left:    %d\n", st.Grid.Remaining())
		}
	}
	fmt.Printf("  Ticks:   %d\n", st.Tick)
	fmt.Printf("  Time:    %s\n", st.Elapsed)
	fmt.Printf("  Steps:   %d\n", entry.Steps)

	if len(st.Outcomes) > 0 {
		kinds := make([]string, len(st.Outcomes))
		for i, o := range st.Outcomes {
			kinds[i] = o.Kind.String()
		}
		fmt.Printf("  Last:    %s\n", strings.Join(kinds, ", "))
	}
}
