// Package clock turns host frame callbacks into simulation time.
//
// The host owns the frame primitive (a terminal tick, a timer, a test
// driver) and exposes it as a Scheduler. The Clock measures the gap between
// frames, clamps it, and hands it to the simulation once per frame.
package clock

import (
	"time"

	"github.com/charmbracelet/log"
)

// DefaultMaxStep bounds the time simulated for a single frame.
const DefaultMaxStep = 33 * time.Millisecond

// Advancer is anything that consumes simulation time.
type Advancer interface {
	Advance(dt time.Duration)
}

// Handle identifies a pending frame request.
type Handle uint64

// Scheduler is the host's frame primitive. Request arranges for fn to be
// called once with the frame timestamp; Cancel withdraws a request that has
// not fired yet.
type Scheduler interface {
	Request(fn func(ts time.Time)) Handle
	Cancel(h Handle)
}

// Option configures a Clock.
type Option func(*Clock)

// WithMaxStep sets the per-frame clamp.
func WithMaxStep(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.maxStep = d
		}
	}
}

// WithFixedStep switches to whole fixed steps: each frame's clamped time is
// accumulated and simulated in steps of size step, at most maxSubsteps per
// frame. Leftover time below one step carries to the next frame.
func WithFixedStep(step time.Duration, maxSubsteps int) Option {
	return func(c *Clock) {
		if step > 0 {
			c.fixedStep = step
			c.maxSubsteps = max(1, maxSubsteps)
		}
	}
}

// WithLogger reports clamped stalls at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *Clock) {
		c.log = l
	}
}

// Clock drives an Advancer from host frames. It is used from the host's
// frame goroutine only.
type Clock struct {
	target Advancer
	sched  Scheduler
	log    *log.Logger

	maxStep     time.Duration
	fixedStep   time.Duration
	maxSubsteps int
	acc         time.Duration

	last    time.Time
	seen    bool
	pending Handle
	waiting bool
	started bool
	stopped bool
	frames  uint64
}

// New creates a stopped clock.
func New(target Advancer, sched Scheduler, opts ...Option) *Clock {
	c := &Clock{target: target, sched: sched, maxStep: DefaultMaxStep}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start requests the first frame. Calling it again, or after Stop, does
// nothing.
func (c *Clock) Start() {
	if c.started || c.stopped {
		return
	}
	c.started = true
	c.request()
}

// OnFrame is the frame callback. The first frame only sets the reference
// time. Later frames advance the target by the clamped gap and request the
// next frame.
func (c *Clock) OnFrame(ts time.Time) {
	if c.stopped {
		return
	}
	c.waiting = false

	var dt time.Duration
	if c.seen {
		dt = ts.Sub(c.last)
	}
	c.last = ts
	c.seen = true

	if dt < 0 {
		dt = 0
	}
	if dt > c.maxStep {
		if c.log != nil {
			c.log.Debug("frame gap clamped", "gap", dt, "max", c.maxStep)
		}
		dt = c.maxStep
	}

	c.frames++
	c.step(dt)

	if !c.stopped {
		c.request()
	}
}

func (c *Clock) step(dt time.Duration) {
	if c.fixedStep <= 0 {
		c.target.Advance(dt)
		return
	}
	c.acc += dt
	for n := 0; c.acc >= c.fixedStep; n++ {
		if n == c.maxSubsteps {
			c.acc %= c.fixedStep
			return
		}
		c.target.Advance(c.fixedStep)
		c.acc -= c.fixedStep
	}
}

// Stop cancels the pending frame request. No Advance call happens after
// Stop returns.
func (c *Clock) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	if c.waiting {
		c.sched.Cancel(c.pending)
		c.waiting = false
	}
}

// Running reports whether the clock has started and not been stopped.
func (c *Clock) Running() bool {
	return c.started && !c.stopped
}

// Frames returns how many frames have been processed.
func (c *Clock) Frames() uint64 {
	return c.frames
}

func (c *Clock) request() {
	c.pending = c.sched.Request(c.OnFrame)
	c.waiting = true
}
