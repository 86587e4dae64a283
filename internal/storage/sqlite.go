// Package storage provides SQLite-based persistence for recorded games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcadesim/internal/core"
	"github.com/vovakirdan/arcadesim/internal/engine"
	"github.com/vovakirdan/arcadesim/internal/replay"
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayEntry is the summary row of one recorded game.
type ReplayEntry struct {
	ID        int64
	Mode      string
	Player    string
	Seed      int64
	Score     int
	Status    string
	Ticks     uint64
	Duration  time.Duration // Simulated time
	Steps     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			config TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_mode ON replays(mode);
		CREATE INDEX IF NOT EXISTS idx_replays_top ON replays(mode, score DESC);

		CREATE TABLE IF NOT EXISTS replay_steps (
			replay_id INTEGER NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			kind INTEGER NOT NULL,
			dt_ns INTEGER NOT NULL DEFAULT 0,
			input_kind INTEGER NOT NULL DEFAULT 0,
			dir INTEGER NOT NULL DEFAULT 0,
			action INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (replay_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a recording together with the final state it produced.
// Returns the ID of the inserted replay.
func (s *Store) SaveReplay(player string, log replay.Log, final engine.State) (int64, error) {
	cfg, err := replay.EncodeConfig(log.Config)
	if err != nil {
		return 0, fmt.Errorf("storage: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	res, err := tx.Exec(
		`INSERT INTO replays (mode, player, seed, config, score, status, ticks, duration_ms, steps)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.Mode().String(),
		player,
		log.Config.Seed,
		string(cfg),
		final.Score,
		final.Status.String(),
		int64(final.Tick),
		log.Duration().Milliseconds(),
		len(log.Steps),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO replay_steps (replay_id, seq, kind, dt_ns, input_kind, dir, action)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare step insert: %w", err)
	}
	defer stmt.Close()

	for i, step := range log.Steps {
		if _, err := stmt.Exec(id, i, int(step.Kind), int64(step.DT),
			int(step.Input.Kind), int(step.Input.Dir), int(step.Input.Action)); err != nil {
			return 0, fmt.Errorf("storage: cannot save step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

const replayColumns = `id, mode, player, seed, score, status, ticks, duration_ms, steps, created_at`

// RecentReplays returns the newest replays, optionally filtered by mode.
func (s *Store) RecentReplays(mode string, limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+replayColumns+`
		 FROM replays
		 WHERE ? = '' OR mode = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	return scanReplays(rows)
}

// TopReplays returns the best-scoring replays of a mode.
// Results are ordered by score descending.
func (s *Store) TopReplays(mode string, limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+replayColumns+`
		 FROM replays
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	return scanReplays(rows)
}

// Replay loads a recording by ID. Returns nil without error when no replay
// has that ID.
func (s *Store) Replay(id int64) (*ReplayEntry, *replay.Log, error) {
	var (
		e         ReplayEntry
		cfgText   string
		createdAt any
		durMs     int64
		ticks     int64
	)
	err := s.db.QueryRow(
		`SELECT id, mode, player, seed, score, status, ticks, duration_ms, steps, created_at, config
		 FROM replays WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Mode, &e.Player, &e.Seed, &e.Score, &e.Status, &ticks, &durMs, &e.Steps, &createdAt, &cfgText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	e.Ticks = uint64(ticks)
	e.Duration = time.Duration(durMs) * time.Millisecond
	e.CreatedAt = parseTime(createdAt)

	cfg, err := replay.DecodeConfig([]byte(cfgText))
	if err != nil {
		return nil, nil, fmt.Errorf("storage: replay %d: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT kind, dt_ns, input_kind, dir, action
		 FROM replay_steps
		 WHERE replay_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: cannot query steps: %w", err)
	}
	defer rows.Close()

	log := &replay.Log{Config: cfg, Steps: make([]replay.Step, 0, e.Steps)}
	for rows.Next() {
		var kind, inKind, dir, action int
		var dt int64
		if err := rows.Scan(&kind, &dt, &inKind, &dir, &action); err != nil {
			return nil, nil, fmt.Errorf("storage: cannot scan step: %w", err)
		}
		log.Steps = append(log.Steps, replay.Step{
			Kind: replay.StepKind(kind),
			DT:   time.Duration(dt),
			Input: core.Input{
				Kind:   core.InputKind(inKind),
				Dir:    core.Direction(dir),
				Action: core.Action(action),
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &e, log, nil
}

// DeleteReplay removes a replay and its steps.
func (s *Store) DeleteReplay(id int64) error {
	if _, err := s.db.Exec("DELETE FROM replay_steps WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete steps: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	return nil
}

// HighScore returns the highest recorded score for the given mode.
// Returns 0 if no replays exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM replays WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode       string
	Games      int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// AllModeStats retrieves statistics for every mode that has replays.
func (s *Store) AllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM replays
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var st ModeStats
		var lastPlayed any
		if err := rows.Scan(&st.Mode, &st.Games, &st.HighScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Mode] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

func scanReplays(rows *sql.Rows) ([]ReplayEntry, error) {
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		var e ReplayEntry
		var createdAt any
		var durMs, ticks int64
		if err := rows.Scan(&e.ID, &e.Mode, &e.Player, &e.Seed, &e.Score, &e.Status,
			&ticks, &durMs, &e.Steps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.Duration = time.Duration(durMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
