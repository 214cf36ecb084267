package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/huandu/go-sqlbuilder"
)

// Playback outcomes
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// Event is one recorded playback attempt.
type Event struct {
	ID             int64
	Timestamp      time.Time
	Path           string
	Channels       int
	SampleRate     int
	BitsPerSample  int
	Volume         int
	BytesDelivered int64
	Duration       time.Duration
	Outcome        string
	Error          string
}

// QueryFilter narrows Recent results.
type QueryFilter struct {
	Path    string // Filter by exact source path
	Outcome string // Filter by outcome (completed/failed/cancelled)
	Limit   int    // Maximum results (default 20)
}

// Recorder persists playback events to a SQLite database.
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a recorder over an open history database.
func NewRecorder(db *sql.DB) *Recorder {
	slog.Debug("creating new history recorder")
	return &Recorder{db: db}
}

// Record inserts one playback event.
func (r *Recorder) Record(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	ib := sqlbuilder.NewInsertBuilder()
	ib.InsertInto("playback_events")
	ib.Cols("timestamp", "path", "channels", "sample_rate", "bits_per_sample",
		"volume", "bytes_delivered", "duration_ms", "outcome", "error")
	ib.Values(event.Timestamp.Unix(), event.Path, event.Channels, event.SampleRate,
		event.BitsPerSample, event.Volume, event.BytesDelivered,
		event.Duration.Milliseconds(), event.Outcome, event.Error)

	query, args := ib.Build()

	if _, err := r.db.Exec(query, args...); err != nil {
		slog.Error("failed to record playback event", "path", event.Path, "error", err)
		return fmt.Errorf("failed to record playback event: %w", err)
	}

	slog.Debug("playback event recorded",
		"path", event.Path,
		"outcome", event.Outcome,
		"bytes_delivered", event.BytesDelivered)

	return nil
}

// Recent returns events matching the filter, newest first.
func (r *Recorder) Recent(filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("id", "timestamp", "path", "channels", "sample_rate", "bits_per_sample",
		"volume", "bytes_delivered", "duration_ms", "outcome", "error")
	sb.From("playback_events")

	if filter.Path != "" {
		sb.Where(sb.Equal("path", filter.Path))
	}
	if filter.Outcome != "" {
		sb.Where(sb.Equal("outcome", filter.Outcome))
	}

	sb.OrderBy("timestamp").Desc()
	sb.Limit(limit)

	query, args := sb.Build()
	slog.Debug("querying playback history", "query", query, "limit", limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		slog.Error("history query failed", "error", err)
		return nil, fmt.Errorf("history query failed: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		var timestamp int64
		var durationMS int64
		var errText sql.NullString

		err = rows.Scan(&event.ID, &timestamp, &event.Path, &event.Channels,
			&event.SampleRate, &event.BitsPerSample, &event.Volume,
			&event.BytesDelivered, &durationMS, &event.Outcome, &errText)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}

		event.Timestamp = time.Unix(timestamp, 0)
		event.Duration = time.Duration(durationMS) * time.Millisecond
		event.Error = errText.String
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history row iteration failed: %w", err)
	}

	slog.Debug("playback history queried", "results", len(events))
	return events, nil
}
