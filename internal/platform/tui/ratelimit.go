package tui

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures per-address admission of new sessions.
type RateLimitConfig struct {
	PerMinute       float64       // New sessions allowed per minute per address
	Burst           int           // Sessions allowed at once before throttling
	CleanupInterval time.Duration // How often to forget idle addresses
}

// DefaultRateLimitConfig allows a reconnect every 10 seconds with a small burst.
var DefaultRateLimitConfig = RateLimitConfig{
	PerMinute:       6,
	Burst:           3,
	CleanupInterval: 5 * time.Minute,
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // Unix nanoseconds
}

// SessionLimiter rate-limits new sessions per remote address.
type SessionLimiter struct {
	limiters sync.Map // map[string]*limiterEntry
	config   RateLimitConfig
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once

	rejected atomic.Uint64
	allowed  atomic.Uint64
}

// NewSessionLimiter creates a limiter and starts its cleanup loop.
func NewSessionLimiter(cfg RateLimitConfig) *SessionLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultRateLimitConfig.CleanupInterval
	}
	sl := &SessionLimiter{
		config:   cfg,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	go sl.cleanupLoop()
	return sl
}

// Stop ends the cleanup loop.
func (sl *SessionLimiter) Stop() {
	sl.stopOnce.Do(func() {
		close(sl.stopChan)
	})
}

func (sl *SessionLimiter) entry(host string) *limiterEntry {
	if e, ok := sl.limiters.Load(host); ok {
		return e.(*limiterEntry)
	}
	e := &limiterEntry{
		limiter: rate.NewLimiter(rate.Limit(sl.config.PerMinute/60), sl.config.Burst),
	}
	actual, _ := sl.limiters.LoadOrStore(host, e)
	return actual.(*limiterEntry)
}

// Allow reports whether a new session from addr may start.
func (sl *SessionLimiter) Allow(addr net.Addr) bool {
	now := sl.now()
	e := sl.entry(hostOf(addr))
	e.lastSeen.Store(now.UnixNano())
	if e.limiter.AllowN(now, 1) {
		sl.allowed.Add(1)
		return true
	}
	sl.rejected.Add(1)
	return false
}

// Stats returns how many sessions were allowed and rejected.
func (sl *SessionLimiter) Stats() (allowed, rejected uint64) {
	return sl.allowed.Load(), sl.rejected.Load()
}

func (sl *SessionLimiter) cleanupLoop() {
	ticker := time.NewTicker(sl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sl.stopChan:
			return
		case <-ticker.C:
			sl.cleanup()
		}
	}
}

// cleanup forgets addresses idle for two cleanup intervals.
func (sl *SessionLimiter) cleanup() {
	cutoff := sl.now().Add(-2 * sl.config.CleanupInterval).UnixNano()
	sl.limiters.Range(func(key, value any) bool {
		if value.(*limiterEntry).lastSeen.Load() < cutoff {
			sl.limiters.Delete(key)
		}
		return true
	})
}

func hostOf(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
