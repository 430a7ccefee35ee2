package storage

// settings.go contains SQLiteStore methods for the key/value settings table.
// The settings layer uses this to persist pointer sensitivity and monitor
// resolution so they survive host restarts.

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveSetting stores a single setting value under the given key.
// Uses INSERT OR REPLACE so repeated saves overwrite the previous value.
func (s *SQLiteStore) SaveSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const query = `
		INSERT OR REPLACE INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.Exec(query, key, value, time.Now().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}

	return nil
}

// GetSetting returns the stored value for a key.
// Returns "", false if the key has never been saved.
func (s *SQLiteStore) GetSetting(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}

	return value, true, nil
}
