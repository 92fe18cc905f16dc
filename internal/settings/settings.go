// package settings persists small key-value application state (theme choice,
// search history) in the catalog database.
//
// Reads are forgiving: a missing or corrupt entry falls back to the zero value
// without raising, so startup never fails on bad persisted state.
package settings

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// Storage keys. Each piece of persisted state lives under its own key.
const (
	KeyTheme         = "theme"
	KeySearchHistory = "search_history"
)

// Store reads and writes the settings table.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// New creates a settings store backed by the given database.
func New(db *sql.DB, logger *log.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Get returns the raw value stored under key, and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		s.logger.Warn("failed to read setting", "key", key, "err", err)
		return "", false
	}
	return value, true
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// Theme returns the persisted theme name, or empty when unset.
func (s *Store) Theme() string {
	value, _ := s.Get(KeyTheme)
	return value
}

// SetTheme persists the theme selection.
func (s *Store) SetTheme(name string) error {
	return s.Set(KeyTheme, name)
}

// SearchHistory returns the persisted search terms, most recent first.
// Corrupt JSON falls back to an empty history.
func (s *Store) SearchHistory() []string {
	value, ok := s.Get(KeySearchHistory)
	if !ok {
		return nil
	}

	var history []string
	if err := json.Unmarshal([]byte(value), &history); err != nil {
		s.logger.Warn("discarding corrupt search history", "err", err)
		return nil
	}
	return history
}

// SetSearchHistory persists the search terms verbatim.
func (s *Store) SetSearchHistory(history []string) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode search history: %w", err)
	}
	return s.Set(KeySearchHistory, string(data))
}
