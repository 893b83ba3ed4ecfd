// Package logging records gameplay events to a local SQLite database. The
// log is an append-only audit trail of what the resolvers did: combat turns,
// trades, crafts, saves and narration calls.
package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Event is one recorded gameplay event. Payload holds the event's structured
// detail as JSON.
type Event struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Payload   string    `json:"payload"`
}

// EventLogger writes events for one play session.
type EventLogger struct {
	db        *sql.DB
	sessionID string
}

func NewEventLogger(path, sessionID string) (*EventLogger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open event database: %w", err)
	}

	logger := &EventLogger{db: db, sessionID: sessionID}
	if err := logger.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create event tables: %w", err)
	}
	return logger, nil
}

func (l *EventLogger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		session_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);
	`

	_, err := l.db.Exec(schema)
	return err
}

// Log records one event. payload may be any JSON-marshalable value or nil.
func (l *EventLogger) Log(kind, message string, payload interface{}) error {
	encoded := "{}"
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal event payload: %w", err)
		}
		encoded = string(raw)
	}

	_, err := l.db.Exec(`
		INSERT INTO events (session_id, kind, message, payload)
		VALUES (?, ?, ?, ?)
	`, l.sessionID, kind, message, encoded)
	return err
}

// Recent returns up to limit events for this session, newest first.
func (l *EventLogger) Recent(limit int) ([]Event, error) {
	rows, err := l.db.Query(`
		SELECT id, timestamp, session_id, kind, message, payload
		FROM events
		WHERE session_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, l.sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.SessionID, &e.Kind, &e.Message, &e.Payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (l *EventLogger) Close() error {
	return l.db.Close()
}
