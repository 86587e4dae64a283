package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcadesim/internal/config"
	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/platform/tui"
	"github.com/vovakirdan/arcadesim/internal/registry"
	"github.com/vovakirdan/arcadesim/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Arrows/WASD  - Steer (chase, growth) or shift / soft drop (stacking)
  Up/W or X    - Rotate (stacking)
  Space        - Hard drop (stacking)
  Enter        - Start
  P            - Pause
  R            - Restart (after the game ended)
  Ctrl+S       - Text screenshot to ~/.arcade/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slow start, speeds up with progress
  normal - Moderate start, speeds up with progress
  (none) - Use the config file's difficulty block
  hard   - Fast start, fewer lives
  fixed  - No progression

Examples:
  arcade play chase
  arcade play tetris --difficulty hard
  arcade play snake --seed 42
  arcade play chase --config ./my-maze.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom mode config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) {
	info, err := registry.Lookup(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available modes.")
		os.Exit(1)
	}

	cfg, err := buildConfig(info, flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := sessionLogger()
	store := openStore()

	runErr := tui.Run(info, cfg, tui.Options{
		FPS:    flagFPS,
		Store:  store,
		Logger: logger,
		Player: currentUser(),

		FixedStep: time.Duration(flagStepMs) * time.Millisecond,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// buildConfig resolves a mode's engine settings from config files, the
// difficulty preset and the global seed.
func buildConfig(info registry.ModeInfo, path string) (engine.Config, error) {
	preset, err := config.ParsePreset(config.Or(flagDifficulty, env.Difficulty))
	if err != nil {
		return engine.Config{}, err
	}
	return config.Build(config.Options{
		Mode:   info.Mode,
		Path:   path,
		Preset: preset,
		Seed:   flagSeed,
	})
}

// openStore opens the replay database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		return nil
	}
	return store
}

func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func currentUser() string {
	return config.Or(os.Getenv("USER"), os.Getenv("USERNAME"))
}
