// Package history records training runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS training_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL UNIQUE,
    dataset TEXT NOT NULL,
    artifact TEXT NOT NULL,
    accuracy REAL NOT NULL,
    macro_f1 REAL NOT NULL,
    train_rows INTEGER NOT NULL,
    test_rows INTEGER NOT NULL,
    labels TEXT NOT NULL,
    trained_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_training_runs_trained_at ON training_runs (trained_at);
`

// Run is one recorded training run. Accuracy is a percentage.
type Run struct {
	ID        int64     `json:"id" yaml:"id"`
	RunID     string    `json:"run_id" yaml:"run_id"`
	Dataset   string    `json:"dataset" yaml:"dataset"`
	Artifact  string    `json:"artifact" yaml:"artifact"`
	Accuracy  float64   `json:"accuracy" yaml:"accuracy"`
	MacroF1   float64   `json:"macro_f1" yaml:"macro_f1"`
	TrainRows int       `json:"train_rows" yaml:"train_rows"`
	TestRows  int       `json:"test_rows" yaml:"test_rows"`
	Labels    []string  `json:"labels" yaml:"labels"`
	TrainedAt time.Time `json:"trained_at" yaml:"trained_at"`
}

// Store persists training runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts run and returns its row id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	labels, err := json.Marshal(run.Labels)
	if err != nil {
		return 0, fmt.Errorf("encode labels: %w", err)
	}
	if run.TrainedAt.IsZero() {
		run.TrainedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
        INSERT INTO training_runs (run_id, dataset, artifact, accuracy, macro_f1, train_rows, test_rows, labels, trained_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Dataset, run.Artifact, run.Accuracy, run.MacroF1,
		run.TrainRows, run.TestRows, string(labels), run.TrainedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert training run: %w", err)
	}

	return res.LastInsertId()
}

// List returns up to limit runs, newest first. A non-positive limit returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `
        SELECT id, run_id, dataset, artifact, accuracy, macro_f1, train_rows, test_rows, labels, trained_at
        FROM training_runs
        ORDER BY trained_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query training runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var run Run
		var labels string
		if err := rows.Scan(&run.ID, &run.RunID, &run.Dataset, &run.Artifact, &run.Accuracy, &run.MacroF1,
			&run.TrainRows, &run.TestRows, &labels, &run.TrainedAt); err != nil {
			return nil, fmt.Errorf("scan training run: %w", err)
		}
		if err := json.Unmarshal([]byte(labels), &run.Labels); err != nil {
			return nil, fmt.Errorf("decode labels of run %s: %w", run.RunID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
