// Package tui hosts arcade simulations in a Bubble Tea program, locally or
// over SSH. The simulation clock asks for frames through a scheduler backed
// by tea.Tick, so every Advance runs inside the program's Update loop.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcadesim/internal/clock"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// FrameMsg delivers one frame request back to the model.
type FrameMsg struct {
	Source uint64 // Scheduler that issued the request
	Handle clock.Handle
	Time   time.Time
}

var schedulerIDs atomic.Uint64

// frameScheduler implements clock.Scheduler on top of tea.Tick. Requests are
// queued as commands and returned to Bubble Tea by flush. A cancelled
// request's message still arrives but finds nothing to run.
type frameScheduler struct {
	id       uint64
	interval time.Duration
	next     clock.Handle
	pending  map[clock.Handle]func(time.Time)
	queued   []tea.Cmd
}

func newFrameScheduler(fps int) *frameScheduler {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &frameScheduler{
		id:       schedulerIDs.Add(1),
		interval: time.Second / time.Duration(fps),
		pending:  make(map[clock.Handle]func(time.Time)),
	}
}

// Request implements clock.Scheduler.
func (s *frameScheduler) Request(fn func(time.Time)) clock.Handle {
	s.next++
	h, id := s.next, s.id
	s.pending[h] = fn
	s.queued = append(s.queued, tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return FrameMsg{Source: id, Handle: h, Time: t}
	}))
	return h
}

// Cancel implements clock.Scheduler.
func (s *frameScheduler) Cancel(h clock.Handle) {
	delete(s.pending, h)
}

// deliver runs the request a FrameMsg belongs to, if it is still pending.
// Messages from other schedulers, such as a previous game's, are ignored.
func (s *frameScheduler) deliver(msg FrameMsg) bool {
	if msg.Source != s.id {
		return false
	}
	fn, ok := s.pending[msg.Handle]
	if !ok {
		return false
	}
	delete(s.pending, msg.Handle)
	fn(msg.Time)
	return true
}

// flush hands queued tick commands to Bubble Tea.
func (s *frameScheduler) flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
