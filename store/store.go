// Package store persists generation runs, labelled samples and generator
// checkpoints in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"splendor/synthetic"
)

var ErrNotFound = errors.New("not found")

// Run describes one data generation job.
type Run struct {
	ID        string    `json:"id"`
	Seed      uint64    `json:"seed"`
	Players   int       `json:"players"`
	Encoder   string    `json:"encoder"`
	MoveLimit int       `json:"move_limit"`
	MaxDepth  int       `json:"max_depth"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and writes serial.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			players INTEGER NOT NULL,
			encoder TEXT NOT NULL,
			move_limit INTEGER NOT NULL,
			max_depth INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			state BLOB NOT NULL,
			label INTEGER NOT NULL,
			n_moves INTEGER NOT NULL,
			rng BLOB NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
		`CREATE TABLE IF NOT EXISTS checkpoints (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			samples INTEGER NOT NULL,
			rng BLOB NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_run_id ON samples(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_checkpoints_run_id ON checkpoints(run_id, id DESC)`,
	}
	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// CreateRun assigns a new ID to run and saves it.
func (s *Store) CreateRun(run *Run) error {
	run.ID = uuid.NewString()
	run.CreatedAt = time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, seed, players, encoder, move_limit, max_depth, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, int64(run.Seed), run.Players, run.Encoder, run.MoveLimit, run.MaxDepth, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

func (s *Store) GetRun(id string) (*Run, error) {
	var run Run
	var seed int64
	err := s.db.QueryRow(
		`SELECT id, seed, players, encoder, move_limit, max_depth, created_at FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &seed, &run.Players, &run.Encoder, &run.MoveLimit, &run.MaxDepth, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.Seed = uint64(seed)
	return &run, nil
}

// SaveSamples appends samples to a run in a single transaction.
func (s *Store) SaveSamples(runID string, samples []synthetic.Sample) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO samples (run_id, state, label, n_moves, rng) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, sample := range samples {
		if _, err := stmt.Exec(runID, sample.State, sample.Label, sample.Moves, sample.Snapshot); err != nil {
			return fmt.Errorf("failed to save sample: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit samples: %w", err)
	}
	return nil
}

// LoadSamples returns the samples of a run in insertion order.
func (s *Store) LoadSamples(runID string) ([]synthetic.Sample, error) {
	rows, err := s.db.Query(`SELECT state, label, n_moves, rng FROM samples WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []synthetic.Sample
	for rows.Next() {
		var sample synthetic.Sample
		if err := rows.Scan(&sample.State, &sample.Label, &sample.Moves, &sample.Snapshot); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}
	return samples, nil
}

func (s *Store) CountSamples(runID string) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM samples WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count samples: %w", err)
	}
	return n, nil
}

// SaveCheckpoint records the generator state after samples were produced.
func (s *Store) SaveCheckpoint(runID string, samples int, snapshot []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO checkpoints (run_id, samples, rng, created_at) VALUES (?, ?, ?, ?)`,
		runID, samples, snapshot, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// LatestCheckpoint returns the most recent generator state of a run and
// the number of samples produced before it.
func (s *Store) LatestCheckpoint(runID string) ([]byte, int, error) {
	var snapshot []byte
	var samples int
	err := s.db.QueryRow(
		`SELECT rng, samples FROM checkpoints WHERE run_id = ? ORDER BY id DESC LIMIT 1`, runID,
	).Scan(&snapshot, &samples)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("checkpoint of run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	return snapshot, samples, nil
}
