// Package store persists whole-document application state in SQLite:
// the catalog snapshot and the column-visibility configuration, each
// serialized as one JSON value under a fixed key. Every write replaces
// the whole document inside a transaction, so a half-updated catalog
// is never observable. Unreadable persisted state degrades to the
// empty value instead of failing, keeping the application usable.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mkanno/shelfq/internal/catalog"
	"github.com/mkanno/shelfq/internal/db"
	"github.com/mkanno/shelfq/internal/domain"
	"github.com/mkanno/shelfq/internal/events"
)

// Storage keys for the whole-document values.
const (
	KeyCatalog = "catalog"
	KeyColumns = "columns"
)

// Store wraps the database with catalog-level load/save operations.
type Store struct {
	db     *db.DB
	events *events.Writer
	log    zerolog.Logger
}

// New creates a Store over an opened database.
func New(database *db.DB, log zerolog.Logger) *Store {
	return &Store{
		db:     database,
		events: events.NewWriter(database.DB),
		log:    log,
	}
}

// DB returns the underlying database connection.
func (s *Store) DB() *db.DB {
	return s.db
}

// Events exposes the event log for read access.
func (s *Store) Events() *events.Writer {
	return s.events
}

// LoadCatalog reads the persisted catalog snapshot. A missing key
// yields an empty catalog. Corrupt persisted state is logged and
// recovered as an empty catalog; it is never a blocking error.
func (s *Store) LoadCatalog() *catalog.Catalog {
	raw, ok, err := s.get(KeyCatalog)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read persisted catalog; starting empty")
		return catalog.New()
	}
	if !ok {
		return catalog.New()
	}

	var c catalog.Catalog
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		s.log.Warn().Err(err).Msg("persisted catalog is corrupt; starting empty")
		return catalog.New()
	}
	return &c
}

// SaveCatalog replaces the persisted catalog snapshot and records a
// mutation event, in one transaction.
func (s *Store) SaveCatalog(c *catalog.Catalog, eventType string, payload interface{}) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsert(tx, KeyCatalog, string(data)); err != nil {
		return err
	}
	if eventType != "" {
		if err := s.events.Log(tx, eventType, payload); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadColumns reads the column-visibility configuration. Missing or
// corrupt state degrades to nil (callers fall back to defaults).
func (s *Store) LoadColumns() []domain.Column {
	raw, ok, err := s.get(KeyColumns)
	if err != nil || !ok {
		return nil
	}
	var cols []domain.Column
	if err := json.Unmarshal([]byte(raw), &cols); err != nil {
		s.log.Warn().Err(err).Msg("persisted column config is corrupt; using defaults")
		return nil
	}
	return cols
}

// SaveColumns replaces the persisted column configuration.
func (s *Store) SaveColumns(cols []domain.Column) error {
	data, err := json.Marshal(cols)
	if err != nil {
		return fmt.Errorf("failed to encode column config: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsert(tx, KeyColumns, string(data)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func upsert(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}
