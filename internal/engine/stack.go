package engine

import (
	"time"

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/spawn"
)

// maxPending caps the queued stacking moves between two ticks.
const maxPending = 16

// stackRules is the falling-block mode.
type stackRules struct {
	cfg     StackingConfig
	board   [][]core.Color
	piece   spawn.Piece
	active  bool
	gravity interval
	pending []core.Input
}

func (s *stackRules) reset(m *Machine) error {
	s.cfg = m.cfg.Stacking
	s.board = make([][]core.Color, s.cfg.Rows)
	for y := range s.board {
		s.board[y] = make([]core.Color, s.cfg.Cols)
	}
	s.pending = s.pending[:0]
	s.gravity = newInterval(s.gravityInterval(1), m.cfg.MaxCatchUp)
	s.active = false
	s.spawn(m)
	return nil
}

// gravityInterval is the drop cadence for level, never below GravityMin.
func (s *stackRules) gravityInterval(level int) time.Duration {
	d := s.cfg.GravityBase - time.Duration(level-1)*s.cfg.GravityStep
	if d < s.cfg.GravityMin {
		d = s.cfg.GravityMin
	}
	return d
}

// input queues discrete moves; each key press acts once.
func (s *stackRules) input(_ *Machine, in core.Input) {
	if len(s.pending) < maxPending {
		s.pending = append(s.pending, in)
	}
}

func (s *stackRules) advance(m *Machine, dt time.Duration) {
	for _, in := range s.pending {
		if !m.running() {
			break
		}
		s.apply(m, in)
	}
	s.pending = s.pending[:0]

	s.gravity.add(dt)
	for m.running() && s.gravity.next() {
		s.drop(m)
	}
}

func (s *stackRules) apply(m *Machine, in core.Input) {
	switch {
	case in.Kind == core.InputDirection && in.Dir == core.DirLeft:
		s.shift(-1)
	case in.Kind == core.InputDirection && in.Dir == core.DirRight:
		s.shift(1)
	case in.Kind == core.InputDirection && in.Dir == core.DirDown:
		s.drop(m)
	case in.Kind == core.InputDirection && in.Dir == core.DirUp,
		in.Kind == core.InputAction && in.Action == core.ActionRotate:
		s.rotate(m)
	case in.Kind == core.InputAction && in.Action == core.ActionHardDrop:
		s.hardDrop(m)
	}
}

func (s *stackRules) shift(dx int) {
	if next := s.piece.Moved(dx, 0); s.fits(next) {
		s.piece = next
	}
}

// rotate turns the piece clockwise, or leaves it alone if the turn collides.
func (s *stackRules) rotate(m *Machine) {
	if next := s.piece.Rotated(); s.fits(next) {
		s.piece = next
		m.cue(CueRotate)
	}
}

// drop moves the piece down one row, locking it when it cannot go further.
func (s *stackRules) drop(m *Machine) {
	if next := s.piece.Moved(0, 1); s.fits(next) {
		s.piece = next
		return
	}
	s.lock(m)
}

func (s *stackRules) hardDrop(m *Machine) {
	for {
		next := s.piece.Moved(0, 1)
		if !s.fits(next) {
			break
		}
		s.piece = next
	}
	s.lock(m)
}

// fits reports whether every cell of p is inside the well and on an empty
// cell. Cells above the top row are allowed.
func (s *stackRules) fits(p spawn.Piece) bool {
	for _, c := range p.Absolute() {
		if c.X < 0 || c.X >= s.cfg.Cols || c.Y >= s.cfg.Rows {
			return false
		}
		if c.Y >= 0 && s.board[c.Y][c.X] != core.ColorDefault {
			return false
		}
	}
	return true
}

// lock merges the piece into the board, clears full rows and spawns the next.
func (s *stackRules) lock(m *Machine) {
	for _, c := range s.piece.Absolute() {
		if c.Y >= 0 && c.Y < s.cfg.Rows && c.X >= 0 && c.X < s.cfg.Cols {
			s.board[c.Y][c.X] = s.piece.Color
		}
	}
	s.active = false

	cleared := compactRows(s.board)
	if cleared > 0 {
		idx := cleared
		if idx >= len(s.cfg.LineScores) {
			idx = len(s.cfg.LineScores) - 1
		}
		m.addScore(s.cfg.LineScores[idx])
		m.lines += cleared
		m.level = m.lines/s.cfg.LinesPerLevel + 1
		s.gravity.set(s.gravityInterval(m.level))
		m.cue(CueClear)
	} else {
		m.cue(CueLock)
	}
	s.spawn(m)
}

// spawn draws the next piece. A piece that overlaps the settled board at
// its spawn position ends the game.
func (s *stackRules) spawn(m *Machine) {
	p := spawn.NextPiece(m.rng, s.cfg.Cols)
	s.piece = p
	if !s.fits(p) {
		m.lose()
		return
	}
	s.active = true
}

func (s *stackRules) snapshot(st *State) {
	st.Board = cloneBoard(s.board)
	if s.active {
		p := s.piece.Clone()
		st.Piece = &p
	}
}

// compactRows removes every full row in one bottom-to-top pass and shifts
// the rows above down. It returns how many rows were removed.
func compactRows(board [][]core.Color) int {
	write := len(board) - 1
	for read := len(board) - 1; read >= 0; read-- {
		if rowFull(board[read]) {
			continue
		}
		if write != read {
			copy(board[write], board[read])
		}
		write--
	}
	cleared := write + 1
	for y := 0; y <= write; y++ {
		for x := range board[y] {
			board[y][x] = core.ColorDefault
		}
	}
	return cleared
}

func rowFull(row []core.Color) bool {
	for _, c := range row {
		if c == core.ColorDefault {
			return false
		}
	}
	return len(row) > 0
}
