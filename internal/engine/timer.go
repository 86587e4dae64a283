package engine

import (
	"fmt"
	"time"
)

// interval is a cadence accumulator. Firing subtracts the interval and keeps
// the remainder so long runs do not drift.
type interval struct {
	every time.Duration
	acc   time.Duration
	fired int
	limit int
}

func newInterval(every time.Duration, limit int) interval {
	return interval{every: every, limit: limit}
}

// add accumulates dt and opens a new firing window.
func (t *interval) add(dt time.Duration) {
	t.acc += dt
	t.fired = 0
}

// next reports whether the timer is due again in the current window. Once
// the window's firing limit is hit, the backlog beyond one interval is
// dropped.
func (t *interval) next() bool {
	if t.every <= 0 || t.acc < t.every {
		return false
	}
	if t.fired >= t.limit {
		t.acc %= t.every
		return false
	}
	t.acc -= t.every
	t.fired++
	return true
}

// set changes the cadence without touching the accumulated time.
func (t *interval) set(every time.Duration) {
	t.every = every
}

func (t *interval) reset() {
	t.acc = 0
	t.fired = 0
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("engine: "+format, args...)
}
