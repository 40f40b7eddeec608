// Package events writes catalog mutation events to the event log.
package events

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Writer handles writing events to the event log
type Writer struct {
	db *sql.DB
}

// NewWriter creates a new event writer
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// Log writes one event inside the given transaction. The payload is
// JSON-encoded; a nil payload stores NULL.
func (w *Writer) Log(tx *sql.Tx, eventType string, payload interface{}) error {
	var p interface{}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode event payload: %w", err)
		}
		p = string(data)
	}

	executor := w.getExecutor(tx)
	if _, err := executor.Exec(
		"INSERT INTO event_log (event_type, payload) VALUES (?, ?)", eventType, p,
	); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// Event is one row of the event log.
type Event struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	Payload   string    `json:"payload,omitempty"`
}

// Recent returns the most recent events, newest first.
func (w *Writer) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := w.db.Query(
		"SELECT id, timestamp, event_type, COALESCE(payload, '') FROM event_log ORDER BY id DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query event log: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.EventType, &e.Payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, ts); perr == nil {
			e.Timestamp = t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func (w *Writer) getExecutor(tx *sql.Tx) executor {
	if tx != nil {
		return tx
	}
	return w.db
}
