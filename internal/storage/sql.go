package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQL is a Store backed by a single key-value table. SQLite is used for local
// installs; PostgreSQL is used when a DATABASE_URL is provided.
type SQL struct {
	db *sqlx.DB
}

// Open connects to the database and ensures the kv table exists. When
// databaseURL is empty a SQLite file is created under dataDir.
func Open(dataDir, databaseURL string) (*SQL, error) {
	var db *sqlx.DB
	var err error

	if databaseURL != "" {
		db, err = sqlx.Connect("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}

		dbPath := filepath.Join(dataDir, "lingobot.db")
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &SQL{db: db}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create kv table: %v", err)
	}
	return nil
}

// Get returns the value stored under key, or ok=false if the key is absent
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	query := "SELECT value FROM kv WHERE key = ?"
	if s.db.DriverName() == "postgres" {
		query = "SELECT value FROM kv WHERE key = $1"
	}

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %v", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (s *SQL) Set(ctx context.Context, key, value string) error {
	var query string
	if s.db.DriverName() == "postgres" {
		query = `
			INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		`
	} else {
		query = `
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`
	}

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %v", key, err)
	}
	return nil
}

// Remove deletes the key. Removing an absent key is not an error.
func (s *SQL) Remove(ctx context.Context, key string) error {
	query := "DELETE FROM kv WHERE key = ?"
	if s.db.DriverName() == "postgres" {
		query = "DELETE FROM kv WHERE key = $1"
	}

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to remove key %s: %v", key, err)
	}
	return nil
}

// Clear deletes every key
func (s *SQL) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv"); err != nil {
		return fmt.Errorf("failed to clear store: %v", err)
	}
	return nil
}
