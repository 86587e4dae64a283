package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcadesim/internal/config"
	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/logging"
	"github.com/vovakirdan/arcadesim/internal/metrics"
	"github.com/vovakirdan/arcadesim/internal/platform/tui"
	"github.com/vovakirdan/arcadesim/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
	flagRatePerMin  float64
	flagRateBurst   int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a mode picker menu and its
own simulation. Finished games are stored as replays on the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Metrics:
  With --metrics (or ARCADE_METRICS_ADDR) an HTTP server exposes
  /metrics for Prometheus and /healthz.

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --host-key ./my_host_key  # Use specific host key
  arcade serve --metrics :9090           # Also serve Prometheus metrics

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Metrics HTTP address, empty to disable")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for every session")
	serveCmd.Flags().Float64Var(&flagRatePerMin, "rate", tui.DefaultRateLimitConfig.PerMinute, "New sessions per minute per address")
	serveCmd.Flags().IntVar(&flagRateBurst, "burst", tui.DefaultRateLimitConfig.Burst, "Sessions per address before throttling")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := logging.New("arcade")

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = config.Or(flagSSHAddr, config.Or(env.SSHAddr, cfg.Address))
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.FPS = flagFPS
	cfg.FixedStep = time.Duration(flagStepMs) * time.Millisecond
	cfg.RateLimit.PerMinute = flagRatePerMin
	cfg.RateLimit.Burst = flagRateBurst
	cfg.Configure = func(info registry.ModeInfo) (engine.Config, error) {
		return buildConfig(info, "")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if addr := config.Or(flagMetricsAddr, env.MetricsAddr); addr != "" {
		cfg.Metrics = metrics.New()
		router := metrics.NewRouter(cfg.Metrics, logger)
		go func() {
			if err := metrics.Serve(ctx, addr, router, logger); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting arcade SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
