// Package history records completed benchmark runs in a local SQLite
// database so past matrix runs can be listed and located.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Entry is one recorded (suite, architecture) run.
type Entry struct {
	ID         int64     `json:"id"`
	Machine    string    `json:"machine"`
	Suite      string    `json:"suite"`
	ResultPath string    `json:"result_path"`
	Benchmarks int       `json:"benchmarks"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists run entries in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the history database and applies
// migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		machine TEXT NOT NULL,
		suite TEXT NOT NULL,
		result_path TEXT NOT NULL,
		benchmarks INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record saves one completed run.
func (s *Store) Record(machine, suite, resultPath string, benchmarks int) error {
	query := `INSERT INTO runs (machine, suite, result_path, benchmarks, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, machine, suite, resultPath, benchmarks, time.Now())
	return err
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	query := `SELECT id, machine, suite, result_path, benchmarks, created_at
		FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Machine, &e.Suite, &e.ResultPath, &e.Benchmarks, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
