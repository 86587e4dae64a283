package tui

import (
	"time"

	"github.com/vovakirdan/arcadesim/internal/clock"
	"github.com/vovakirdan/arcadesim/internal/engine"
)

// stepObserver calls after once every Advance it forwards returns.
type stepObserver struct {
	next  clock.Advancer
	after func()
}

func (s stepObserver) Advance(dt time.Duration) {
	s.next.Advance(dt)
	s.after()
}

// frameLog gathers the outcomes and cues of every tick simulated since the
// last frame was shown. With a fixed step one frame may hold several ticks.
type frameLog struct {
	tick     uint64
	ticks    int
	outcomes []engine.Outcome
	cues     []string
}

// record adds a snapshot's tick results. A tick is only recorded once.
func (f *frameLog) record(st engine.State) {
	if st.Tick == f.tick {
		return
	}
	f.tick = st.Tick
	f.ticks++
	f.outcomes = mergeOutcomes(f.outcomes, st.Outcomes)
	for _, c := range st.Cues {
		f.cues = appendCue(f.cues, c)
	}
}

// take returns what was gathered and starts a new frame. ok is false when
// no tick ran.
func (f *frameLog) take() (outcomes []engine.Outcome, cues []string, ok bool) {
	outcomes, cues, ok = f.outcomes, f.cues, f.ticks > 0
	f.ticks = 0
	f.outcomes = nil
	f.cues = nil
	return outcomes, cues, ok
}

// mergeOutcomes folds src into dst keeping one outcome per kind. Score deltas
// add up; other kinds keep the latest value.
func mergeOutcomes(dst, src []engine.Outcome) []engine.Outcome {
next:
	for _, o := range src {
		for i := range dst {
			if dst[i].Kind != o.Kind {
				continue
			}
			if o.Kind == engine.ScoreChanged {
				dst[i].Value += o.Value
			} else {
				dst[i].Value = o.Value
			}
			continue next
		}
		dst = append(dst, o)
	}
	return dst
}

func appendCue(cues []string, c string) []string {
	for _, have := range cues {
		if have == c {
			return cues
		}
	}
	return append(cues, c)
}
