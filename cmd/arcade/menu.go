package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/platform/tui"
	"github.com/vovakirdan/arcadesim/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a mode picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
Pause a game or finish it, then press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Best replays
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30 --difficulty easy
  arcade menu --db ./arcade.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := sessionLogger()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	opts := tui.Options{
		FPS:    flagFPS,
		Store:  store,
		Logger: logger,
		Player: currentUser(),

		FixedStep: time.Duration(flagStepMs) * time.Millisecond,
	}
	configure := func(info registry.ModeInfo) (engine.Config, error) {
		return buildConfig(info, "")
	}

	if err := tui.RunSession(opts, configure, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
