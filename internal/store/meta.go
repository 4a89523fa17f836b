package store

import (
	"database/sql"
	"fmt"
)

// MetaStore holds small one-off flags, currently just whether the welcome
// overlay has been shown.
type MetaStore struct {
	db *DB
}

const welcomeShownKey = "welcome_shown"

func NewMetaStore(db *DB) *MetaStore {
	return &MetaStore{db: db}
}

// WelcomeShown reports whether the one-time welcome flag is set.
func (s *MetaStore) WelcomeShown() (bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, welcomeShownKey).Scan(&v)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read welcome flag: %w", err)
	}
	return v == "1", nil
}

// MarkWelcomeShown sets the one-time welcome flag. Idempotent.
func (s *MetaStore) MarkWelcomeShown() error {
	_, err := s.db.Exec(`
		INSERT INTO meta (key, value) VALUES (?, '1')
		ON CONFLICT(key) DO UPDATE SET value = '1'
	`, welcomeShownKey)
	if err != nil {
		return fmt.Errorf("set welcome flag: %w", err)
	}
	return nil
}
