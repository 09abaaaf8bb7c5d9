package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// Store is the client-local state: small preferences (tutorial flag,
// persisted auth tokens) and first-page list snapshots used for instant
// paint before revalidation.
type Store struct {
	db *sql.DB
}

var localDB *sql.DB

// NewLocalStore opens (once per process) the DuckDB file under the user
// config directory.
func NewLocalStore() (*Store, error) {
	if localDB == nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(home, ".config", "leitor")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		db, err := InitDuckDB(filepath.Join(dir, "leitor.db"))
		if err != nil {
			return nil, err
		}
		localDB = db
	}
	return &Store{db: localDB}, nil
}

// NewStore wraps an already-open database, used by tests.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func InitDuckDB(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prefs (
			key VARCHAR PRIMARY KEY,
			value VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			view_key VARCHAR PRIMARY KEY,
			payload VARCHAR NOT NULL,
			saved_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Close releases the database. The process-wide handle reopens on the
// next NewLocalStore call.
func (s *Store) Close() error {
	if s.db == localDB {
		localDB = nil
	}
	return s.db.Close()
}

func (s *Store) GetPref(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) SetPref(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO prefs (key, value) VALUES (?, ?)`, key, value)
	return err
}

func (s *Store) DeletePref(key string) error {
	_, err := s.db.Exec(`DELETE FROM prefs WHERE key = ?`, key)
	return err
}

const tutorialPref = "reader.tutorial_shown"

// TutorialSeen reports whether the one-time reader tutorial was already
// dismissed. Read failures count as not seen.
func (s *Store) TutorialSeen() bool {
	v, ok, err := s.GetPref(tutorialPref)
	return err == nil && ok && v == "1"
}

func (s *Store) MarkTutorialSeen() error {
	return s.SetPref(tutorialPref, "1")
}

// SaveSnapshot stores the accumulated first page of a list view,
// overwriting whatever was there.
func (s *Store) SaveSnapshot(viewKey string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO snapshots (view_key, payload, saved_at) VALUES (?, ?, ?)`,
		viewKey, string(payload), time.Now())
	return err
}

func (s *Store) LoadSnapshot(viewKey string) ([]byte, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM snapshots WHERE view_key = ?`, viewKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(payload), true, nil
}
