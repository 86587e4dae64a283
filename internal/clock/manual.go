package clock

import (
	"sort"
	"time"
)

// ManualScheduler is a Scheduler driven by explicit Fire calls. Headless
// runs and tests use it in place of a real frame source.
type ManualScheduler struct {
	next    Handle
	pending map[Handle]func(time.Time)
}

// NewManualScheduler returns an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[Handle]func(time.Time))}
}

// Request implements Scheduler.
func (s *ManualScheduler) Request(fn func(time.Time)) Handle {
	s.next++
	s.pending[s.next] = fn
	return s.next
}

// Cancel implements Scheduler.
func (s *ManualScheduler) Cancel(h Handle) {
	delete(s.pending, h)
}

// Pending returns the number of outstanding requests.
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

// Fire runs every request outstanding at the time of the call, oldest
// first, and returns how many ran. Requests made by the callbacks wait for
// the next Fire.
func (s *ManualScheduler) Fire(ts time.Time) int {
	handles := make([]Handle, 0, len(s.pending))
	for h := range s.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	n := 0
	for _, h := range handles {
		fn, ok := s.pending[h]
		if !ok {
			continue
		}
		delete(s.pending, h)
		fn(ts)
		n++
	}
	return n
}
