package clock

import (
	"testing"
	"time"
)

type recorder struct {
	steps []time.Duration
}

func (r *recorder) Advance(dt time.Duration) {
	r.steps = append(r.steps, dt)
}

func (r *recorder) total() time.Duration {
	var sum time.Duration
	for _, d := range r.steps {
		sum += d
	}
	return sum
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestClockAdvancesOncePerFrame(t *testing.T) {
	sched := NewManualScheduler()
	rec := &recorder{}
	c := New(rec, sched)
	c.Start()

	if sched.Pending() != 1 {
		t.Fatalf("Start() left %d pending requests, expected 1", sched.Pending())
	}

	frames := []int{0, 16, 32, 50}
	for _, ms := range frames {
		if n := sched.Fire(at(ms)); n != 1 {
			t.Fatalf("frame at %dms ran %d callbacks", ms, n)
		}
	}

	want := []time.Duration{0, 16 * time.Millisecond, 16 * time.Millisecond, 18 * time.Millisecond}
	if len(rec.steps) != len(want) {
		t.Fatalf("Advance called %d times, expected %d", len(rec.steps), len(want))
	}
	for i := range want {
		if rec.steps[i] != want[i] {
			t.Errorf("step %d = %v, expected %v", i, rec.steps[i], want[i])
		}
	}
	if c.Frames() != 4 {
		t.Errorf("Frames() = %d, expected 4", c.Frames())
	}
}

func TestClockClampsTimestamps(t *testing.T) {
	tests := []struct {
		name string
		from int
		to   int
		want time.Duration
	}{
		{"normal", 0, 20, 20 * time.Millisecond},
		{"stall", 0, 5000, DefaultMaxStep},
		{"backwards", 100, 40, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sched := NewManualScheduler()
			rec := &recorder{}
			c := New(rec, sched)
			c.Start()
			sched.Fire(at(tc.from))
			sched.Fire(at(tc.to))

			if got := rec.steps[len(rec.steps)-1]; got != tc.want {
				t.Errorf("dt = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestClockCustomMaxStep(t *testing.T) {
	sched := NewManualScheduler()
	rec := &recorder{}
	c := New(rec, sched, WithMaxStep(100*time.Millisecond))
	c.Start()
	sched.Fire(at(0))
	sched.Fire(at(250))

	if got := rec.steps[1]; got != 100*time.Millisecond {
		t.Errorf("dt = %v, expected 100ms", got)
	}
}

func TestClockStopCancels(t *testing.T) {
	sched := NewManualScheduler()
	rec := &recorder{}
	c := New(rec, sched)
	c.Start()
	sched.Fire(at(0))
	sched.Fire(at(16))

	c.Stop()
	if sched.Pending() != 0 {
		t.Fatalf("Stop() left %d pending requests", sched.Pending())
	}
	if c.Running() {
		t.Error("Running() should be false after Stop()")
	}

	calls := len(rec.steps)
	c.OnFrame(at(32))
	sched.Fire(at(48))
	if len(rec.steps) != calls {
		t.Errorf("Advance called after Stop(): %d calls, expected %d", len(rec.steps), calls)
	}
	if sched.Pending() != 0 {
		t.Error("a stopped clock must not request frames")
	}

	c.Start()
	if sched.Pending() != 0 {
		t.Error("Start() after Stop() must not restart the clock")
	}
}

// stopper stops its clock from inside Advance.
type stopper struct {
	c     *Clock
	calls int
}

func (s *stopper) Advance(time.Duration) {
	s.calls++
	s.c.Stop()
}

func TestClockStopDuringFrame(t *testing.T) {
	sched := NewManualScheduler()
	s := &stopper{}
	s.c = New(s, sched)
	s.c.Start()
	sched.Fire(at(0))

	if sched.Pending() != 0 {
		t.Errorf("clock stopped mid-frame still requested %d frames", sched.Pending())
	}
	if s.calls != 1 {
		t.Errorf("Advance calls = %d, expected 1", s.calls)
	}
}

func TestClockFixedStep(t *testing.T) {
	sched := NewManualScheduler()
	rec := &recorder{}
	c := New(rec, sched, WithFixedStep(10*time.Millisecond, 3))
	c.Start()

	sched.Fire(at(0))
	if len(rec.steps) != 0 {
		t.Fatalf("first frame simulated %v", rec.steps)
	}

	sched.Fire(at(25)) // two steps, 5ms carried
	if len(rec.steps) != 2 {
		t.Fatalf("steps = %d, expected 2", len(rec.steps))
	}
	sched.Fire(at(30)) // 5+5 = one step
	if len(rec.steps) != 3 {
		t.Fatalf("steps = %d, expected 3", len(rec.steps))
	}

	// 33ms clamp, three steps max, the rest dropped.
	sched.Fire(at(1000))
	if len(rec.steps) != 6 {
		t.Fatalf("steps = %d, expected 6", len(rec.steps))
	}
	for i, d := range rec.steps {
		if d != 10*time.Millisecond {
			t.Errorf("step %d = %v, expected 10ms", i, d)
		}
	}
	if c.acc >= 10*time.Millisecond {
		t.Errorf("carried %v, expected less than one step", c.acc)
	}
}

func TestClockTotalMatchesWallTime(t *testing.T) {
	sched := NewManualScheduler()
	rec := &recorder{}
	c := New(rec, sched)
	c.Start()
	for ms := 0; ms <= 1000; ms += 20 {
		sched.Fire(at(ms))
	}
	if rec.total() != time.Second {
		t.Errorf("simulated %v, expected 1s", rec.total())
	}
}

func TestManualSchedulerOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []int
	s.Request(func(time.Time) { order = append(order, 1) })
	h := s.Request(func(time.Time) { order = append(order, 2) })
	s.Request(func(time.Time) {
		order = append(order, 3)
		s.Request(func(time.Time) { order = append(order, 4) })
	})
	s.Cancel(h)

	if n := s.Fire(t0); n != 2 {
		t.Errorf("Fire() = %d, expected 2", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("order = %v, expected [1 3]", order)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", s.Pending())
	}
}
