// Package journal persists display lifecycle events to a local sqlite
// database for post-mortem diagnosis: state transitions, ownership
// revocations, allocation failures. Writes are queued so recording never
// blocks the display path.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver for database/sql
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite for cross-platform compatibility
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS display_events (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	ts     TEXT NOT NULL,
	kind   TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_display_events_ts ON display_events(ts);
`

// Event is one recorded display lifecycle event.
type Event struct {
	ID     int64     `json:"id"`
	Time   time.Time `json:"time"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail,omitempty"`
}

type pendingEvent struct {
	ts     time.Time
	kind   string
	detail string
}

// Journal records events into sqlite through a buffered queue. If the
// queue fills, events are dropped rather than stalling the caller.
type Journal struct {
	db    *sql.DB
	log   zerolog.Logger
	queue chan pendingEvent
	done  chan struct{}
}

// Open opens (creating if needed) the journal database at path.
func Open(path string, log zerolog.Logger) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	j := &Journal{
		db:    db,
		log:   log.With().Str("component", "journal").Logger(),
		queue: make(chan pendingEvent, 64),
		done:  make(chan struct{}),
	}
	go j.processQueue()
	return j, nil
}

// Record queues an event for persistence. Never blocks; on a full queue
// the event is dropped and counted in the log.
func (j *Journal) Record(kind, detail string) {
	select {
	case j.queue <- pendingEvent{ts: time.Now().UTC(), kind: kind, detail: detail}:
	default:
		j.log.Warn().Str("kind", kind).Msg("journal queue full, dropping event")
	}
}

func (j *Journal) processQueue() {
	defer close(j.done)
	for ev := range j.queue {
		if _, err := j.db.Exec(
			"INSERT INTO display_events (ts, kind, detail) VALUES (?, ?, ?)",
			ev.ts.Format(time.RFC3339Nano), ev.kind, ev.detail,
		); err != nil {
			j.log.Warn().Err(err).Str("kind", ev.kind).Msg("failed to persist journal event")
		}
	}
}

// Tail returns the most recent events, newest first.
func (j *Journal) Tail(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx,
		"SELECT id, ts, kind, detail FROM display_events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var ts string
		if err := rows.Scan(&ev.ID, &ts, &ev.Kind, &ev.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		if parsed, perr := time.Parse(time.RFC3339Nano, ts); perr == nil {
			ev.Time = parsed
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Close flushes queued events and closes the database.
func (j *Journal) Close() error {
	close(j.queue)
	select {
	case <-j.done:
	case <-time.After(2 * time.Second):
		j.log.Warn().Msg("timed out waiting for journal flush")
	}
	return j.db.Close()
}
