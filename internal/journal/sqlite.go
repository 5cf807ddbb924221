// Package journal records history mutations in a local sqlite database.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Store struct {
	db   *sql.DB
	path string
}

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id     TEXT PRIMARY KEY,
		at     DATETIME NOT NULL,
		action TEXT NOT NULL,
		entry  TEXT NOT NULL DEFAULT '',
		bytes  INTEGER NOT NULL DEFAULT 0,
		count  INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_events_at ON events(at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores ev, filling in ID and At when they are empty.
func (s *Store) Record(ev Event) (*Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	ev.At = ev.At.UTC()

	_, err := s.db.Exec(
		"INSERT INTO events (id, at, action, entry, bytes, count) VALUES (?, ?, ?, ?, ?, ?)",
		ev.ID, ev.At, string(ev.Action), ev.Entry, ev.Bytes, ev.Count,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &ev, nil
}

// List returns up to limit events, newest first.
func (s *Store) List(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		"SELECT id, at, action, entry, bytes, count FROM events ORDER BY at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.At, &ev.Action, &ev.Entry, &ev.Bytes, &ev.Count); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count)
	return count, err
}

// Forget deletes events recorded before t and returns how many went away.
func (s *Store) Forget(before time.Time) (int, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE at < ?", before.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
