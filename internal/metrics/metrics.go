// Package metrics exposes Prometheus instrumentation for running games:
// how long each Advance takes, which outcomes the games produce and how many
// sessions are live. Label values are bounded to modes and outcome kinds.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/arcadesim/internal/clock"
	"github.com/vovakirdan/arcadesim/internal/engine"
)

// Metrics owns a registry and the arcade collectors registered on it.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	advanceDuration  *prometheus.HistogramVec
	ticks            *prometheus.CounterVec
	outcomes         *prometheus.CounterVec
	sessionsActive   prometheus.Gauge
	sessionsRejected *prometheus.CounterVec
}

// New creates a registry with the arcade metrics plus the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		advanceDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arcade_advance_duration_seconds",
			Help:    "Wall time spent in one Advance call",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"mode"}),
		ticks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_ticks_total",
			Help: "Simulated ticks",
		}, []string{"mode"}),
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_outcomes_total",
			Help: "Outcomes reported by the simulation",
		}, []string{"mode", "kind"}),
		sessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "arcade_sessions_active",
			Help: "Games currently being played",
		}),
		sessionsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arcade_sessions_rejected_total",
			Help: "Sessions refused before a game started",
		}, []string{"reason"}), // Bounded: "rate_limit", "no_pty"
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// RecordRejected counts a refused session.
func (m *Metrics) RecordRejected(reason string) {
	if m == nil {
		return
	}
	m.sessionsRejected.WithLabelValues(reason).Inc()
}

// Session tracks one game for the active-sessions gauge and outcome counters.
// A nil *Session is valid and records nothing.
type Session struct {
	m        *Metrics
	mode     string
	lastTick uint64
	ended    bool
}

// Begin counts a new live session.
func (m *Metrics) Begin(mode engine.Mode) *Session {
	if m == nil {
		return nil
	}
	m.sessionsActive.Inc()
	return &Session{m: m, mode: mode.String()}
}

// End releases the session. Extra calls do nothing.
func (s *Session) End() {
	if s == nil || s.ended {
		return
	}
	s.ended = true
	s.m.sessionsActive.Dec()
}

// Observe counts the outcomes of the snapshot's tick. Each tick is counted
// once no matter how often it is observed.
func (s *Session) Observe(st engine.State) {
	if s == nil || st.Tick == s.lastTick {
		return
	}
	if st.Tick > s.lastTick {
		s.m.ticks.WithLabelValues(s.mode).Add(float64(st.Tick - s.lastTick))
	}
	s.lastTick = st.Tick
	for _, o := range st.Outcomes {
		s.m.outcomes.WithLabelValues(s.mode, o.Kind.String()).Inc()
	}
}

// Wrap times every Advance call made on next.
func (s *Session) Wrap(next clock.Advancer) clock.Advancer {
	if s == nil {
		return next
	}
	return &timedAdvancer{next: next, hist: s.m.advanceDuration.WithLabelValues(s.mode)}
}

type timedAdvancer struct {
	next clock.Advancer
	hist prometheus.Observer
}

func (t *timedAdvancer) Advance(dt time.Duration) {
	start := time.Now()
	t.next.Advance(dt)
	t.hist.Observe(time.Since(start).Seconds())
}
