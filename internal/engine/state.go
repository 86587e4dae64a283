package engine

import (
	"time"

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/grid"
	"github.com/vovakirdan/arcadesim/internal/motion"
	"github.com/vovakirdan/arcadesim/internal/spawn"
)

// Status is the lifecycle state of a Machine.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusWon
	StatusLost
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Ended reports whether the game is over, either way.
func (s Status) Ended() bool {
	return s == StatusWon || s == StatusLost
}

// OutcomeKind identifies a host-visible notification.
type OutcomeKind int

const (
	ScoreChanged OutcomeKind = iota // Value is the score delta
	LifeLost                        // Value is the lives remaining
	GameOver
	GameWon
)

// String returns a human-readable name for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case ScoreChanged:
		return "score"
	case LifeLost:
		return "life-lost"
	case GameOver:
		return "game-over"
	case GameWon:
		return "game-won"
	default:
		return "unknown"
	}
}

// Outcome is one notification produced by a tick.
type Outcome struct {
	Kind  OutcomeKind
	Value int
}

// Sound cues. Hosts may play them or ignore them.
const (
	CueChomp    = "chomp"
	CuePower    = "power"
	CueCapture  = "capture"
	CueDeath    = "death"
	CueRotate   = "rotate"
	CueLock     = "lock"
	CueClear    = "clear"
	CueEat      = "eat"
	CueGameOver = "gameover"
	CueWin      = "win"
)

// State is a snapshot of a Machine. Every field is a private copy: the
// machine never touches a State after handing it out.
type State struct {
	Mode    Mode
	Status  Status
	Score   int
	Lives   int
	Level   int
	Lines   int
	Tick    uint64        // Advance calls that simulated time
	Elapsed time.Duration // Simulated running time

	// Chase
	Grid     *grid.Grid
	Entities []motion.Entity
	Power    time.Duration // Remaining invulnerability

	// Stacking
	Board [][]core.Color // Settled cells, ColorDefault is empty
	Piece *spawn.Piece

	// Growth
	Snake []core.Point // Head first
	Food  *core.Point

	// Produced by the most recent tick.
	Outcomes []Outcome
	Cues     []string
}

// Has reports whether the last tick produced an outcome of kind k.
func (s State) Has(k OutcomeKind) bool {
	_, ok := s.Outcome(k)
	return ok
}

// Outcome returns the last tick's outcome of kind k.
func (s State) Outcome(k OutcomeKind) (Outcome, bool) {
	for _, o := range s.Outcomes {
		if o.Kind == k {
			return o, true
		}
	}
	return Outcome{}, false
}

// outcomes aggregates a tick's results so each kind is reported at most once.
type outcomes struct {
	scored   bool
	delta    int
	lifeLost bool
	lives    int
	over     bool
	won      bool
}

func (o *outcomes) list() []Outcome {
	var out []Outcome
	if o.scored {
		out = append(out, Outcome{Kind: ScoreChanged, Value: o.delta})
	}
	if o.lifeLost {
		out = append(out, Outcome{Kind: LifeLost, Value: o.lives})
	}
	if o.over {
		out = append(out, Outcome{Kind: GameOver})
	}
	if o.won {
		out = append(out, Outcome{Kind: GameWon})
	}
	return out
}

func cloneBoard(b [][]core.Color) [][]core.Color {
	if b == nil {
		return nil
	}
	out := make([][]core.Color, len(b))
	for i, row := range b {
		out[i] = append([]core.Color(nil), row...)
	}
	return out
}
