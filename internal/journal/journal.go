// Package journal keeps a local audit log of provisioning runs. It is a
// record for the operator, nothing more: idempotence decisions always come
// from the native scheduler, never from this database.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS operations (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  at DATETIME NOT NULL,
  action TEXT NOT NULL,
  kind TEXT NOT NULL DEFAULT '',
  clock TEXT NOT NULL DEFAULT '',
  success INTEGER NOT NULL,
  message TEXT NOT NULL DEFAULT ''
);
`

// Entry is one completed or failed provisioning run.
type Entry struct {
	ID      int64
	At      time.Time
	Action  string
	Kind    string
	Clock   string
	Success bool
	Message string
}

// Store is the sqlite-backed journal.
type Store struct {
	db *sql.DB
}

// DefaultPath places the journal under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "offtimer", "journal.db"), nil
}

// Open creates the database (and its directory) if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append records one run.
func (s *Store) Append(e Entry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO operations (at, action, kind, clock, success, message) VALUES (?, ?, ?, ?, ?, ?)`,
		at.UTC().Format(time.RFC3339), e.Action, e.Kind, e.Clock, boolInt(e.Success), e.Message,
	)
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, at, action, kind, clock, success, message FROM operations ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		var success int
		if err := rows.Scan(&e.ID, &at, &e.Action, &e.Kind, &e.Clock, &success, &e.Message); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if stamp, err := time.Parse(time.RFC3339, at); err == nil {
			e.At = stamp
		}
		e.Success = success != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear empties the journal.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM operations`); err != nil {
		return fmt.Errorf("clear journal: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
