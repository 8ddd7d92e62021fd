// Package prefs persists display preferences across restarts in a
// small embedded SQLite database.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/overcastlabs/weather-dash/internal/domain"
)

// prefsKey is the fixed key the single preferences blob lives under.
const prefsKey = "weatherAppPreferences"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Store reads and writes the preferences blob. Malformed or missing
// stored data falls back to defaults rather than failing: preferences
// are never worth breaking startup over.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the preferences database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open preferences db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init preferences schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Load returns the stored preferences, or defaults when nothing valid
// is stored.
func (s *Store) Load(ctx context.Context) domain.Preferences {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, prefsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultPreferences()
	}
	if err != nil {
		s.logger.Warn("reading preferences failed, using defaults", "error", err)
		return domain.DefaultPreferences()
	}

	var p domain.Preferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("stored preferences are malformed, using defaults", "error", err)
		return domain.DefaultPreferences()
	}
	unit, err := domain.ParseUnit(string(p.Unit))
	if err != nil {
		s.logger.Warn("stored preferences carry an unknown unit, using defaults", "unit", p.Unit)
		return domain.DefaultPreferences()
	}
	p.Unit = unit
	return p
}

// Save writes the preferences blob, replacing any previous value.
func (s *Store) Save(ctx context.Context, p domain.Preferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		prefsKey, string(raw))
	if err != nil {
		return fmt.Errorf("store preferences: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
