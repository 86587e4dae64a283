// arcade runs discrete-time arcade simulations in the terminal.
//
// Usage:
//
//	arcade list              - List available modes
//	arcade play <mode>       - Play a mode
//	arcade menu              - Pick modes interactively
//	arcade serve             - Start SSH server for remote play
//	arcade replays [mode]    - Browse recorded games
//	arcade replay <id>       - Re-simulate a recorded game
//
// Global flags:
//
//	--fps <rate>        - Set frame rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/arcade.db)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs of terminal sessions to a file
//	--fixed-step <ms>   - Simulate in fixed steps instead of per frame
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcadesim/internal/config"
	"github.com/vovakirdan/arcadesim/internal/logging"
)

const defaultDBPath = "~/.arcade/arcade.db"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
	flagStepMs   int

	env config.Env
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load(".env")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade simulations in your terminal",
	Long: `Arcade runs three classic game modes on one simulation engine:
a maze chase, falling-block stacking and a growing snake.
Every finished game is recorded and can be replayed exactly.

Available commands:
  list     - Show all modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  replays  - Browse recorded games
  replay   - Re-simulate a recorded game

Environment (also read from ./.env):
  ARCADE_DB            Database path
  ARCADE_LOG_LEVEL     Log level
  ARCADE_DIFFICULTY    Default difficulty preset
  ARCADE_SSH_ADDR      SSH listen address for serve
  ARCADE_METRICS_ADDR  Metrics listen address for serve

Examples:
  arcade list
  arcade play chase
  arcade menu
  arcade serve --ssh :2222 --metrics :9090
  arcade replay 12 --png final.png`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		env = config.FromEnv()
		flagDBPath = config.Or(flagDBPath, config.Or(env.DBPath, defaultDBPath))
		return logging.SetLevel(config.Or(flagLogLevel, env.LogLevel))
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to replay database (default "+defaultDBPath+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for terminal sessions")
	rootCmd.PersistentFlags().IntVar(&flagStepMs, "fixed-step", 0, "Simulate fixed steps of this many ms (0 = one step per frame)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// sessionLogger returns a logger for a full-screen session. The terminal
// belongs to the game, so logs go to --log-file or nowhere.
func sessionLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return logging.Discard(), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logging.NewWriter(f, "arcade"), func() { f.Close() }
}
