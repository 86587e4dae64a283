package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/arcadesim/internal/logging"
	"github.com/vovakirdan/arcadesim/internal/metrics"
	"github.com/vovakirdan/arcadesim/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the replay database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// FPS is the frame rate of every session.
	FPS int

	// FixedStep switches sessions to fixed simulation steps when positive.
	FixedStep time.Duration

	// RateLimit throttles new sessions per remote address.
	RateLimit RateLimitConfig

	// Metrics is optional instrumentation shared by all sessions.
	Metrics *metrics.Metrics

	// Configure builds each game's engine settings.
	Configure ConfigFunc
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/arcade.db",
		IdleTimeout: 30 * time.Minute,
		FPS:         DefaultFPS,
		RateLimit:   DefaultRateLimitConfig,
	}
}

// SSHServer wraps a Wish SSH server for the arcade.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	limiter *SessionLimiter
	logger  *log.Logger

	// Shutdown funcs of live session models, keyed by ssh.Session.
	models sync.Map
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := logging.New("arcade-ssh")

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		limiter: NewSessionLimiter(cfg.RateLimit),
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.close()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.close()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.cleanupMiddleware,
			srv.rateLimitMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.close()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		s.config.Metrics.RecordRejected("no_pty")
		return nil, nil
	}

	opts := Options{
		FPS:     s.config.FPS,
		Store:   s.store,
		Metrics: s.config.Metrics,
		Logger:  s.logger.WithPrefix("arcade-ssh " + sshSession.User()),
		Player:  sshSession.User(),

		FixedStep: s.config.FixedStep,
	}
	model := NewSessionModel(opts, s.config.Configure, pty.Window.Width, pty.Window.Height)
	s.models.Store(sshSession, model.Shutdown)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// rateLimitMiddleware refuses sessions from addresses that reconnect too fast.
func (s *SSHServer) rateLimitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		if !s.limiter.Allow(sshSession.RemoteAddr()) {
			s.logger.Warn("session rate limited",
				"user", sshSession.User(),
				"remote", sshSession.RemoteAddr().String(),
			)
			s.config.Metrics.RecordRejected("rate_limit")
			wish.Fatalln(sshSession, "Too many sessions, try again in a minute.")
			return
		}
		next(sshSession)
	}
}

// cleanupMiddleware stops a game left running when the client disconnects.
func (s *SSHServer) cleanupMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)
		if shutdown, ok := s.models.LoadAndDelete(sshSession); ok {
			shutdown.(func())()
		}
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.close()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) close() {
	s.limiter.Stop()
	if s.store != nil {
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
