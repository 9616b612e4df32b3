package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/theirongolddev/smokesense/internal/model"
)

const logColumns = `id, timestamp, mood, activity,
	location_latitude, location_longitude, location_address,
	notes, trigger_tags, synced, created_at, updated_at`

// InsertLog writes a new event. The store owns CreatedAt and UpdatedAt and
// overwrites whatever the caller set. Fails with ErrDuplicateID if the id
// is already present.
func (s *Store) InsertLog(ev *model.LogEvent) error {
	var exists int
	err := s.db.QueryRow(`SELECT 1 FROM cigarette_logs WHERE id = ?`, ev.ID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("insert log %q: %w", ev.ID, ErrDuplicateID)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("insert log %q: %w", ev.ID, err)
	}

	tags, err := encodeTags(ev.TriggerTags)
	if err != nil {
		return fmt.Errorf("insert log %q: %w", ev.ID, err)
	}

	now := time.Now().UnixMilli()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	var lat, lng, addr any
	if ev.Location != nil {
		lat = ev.Location.Latitude
		lng = ev.Location.Longitude
		addr = nullString(ev.Location.Address)
	}

	_, err = s.db.Exec(`INSERT INTO cigarette_logs
		(id, timestamp, mood, activity,
		 location_latitude, location_longitude, location_address,
		 notes, trigger_tags, synced, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Timestamp, nullString(ev.Mood), nullString(ev.Activity),
		lat, lng, addr,
		nullString(ev.Notes), tags, boolInt(ev.Synced), ev.CreatedAt, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert log %q: %w", ev.ID, err)
	}
	return nil
}

// UpdateLog replaces the full record for ev.ID and refreshes UpdatedAt.
// The id itself is never rewritten. Fails with ErrNotFound if absent.
func (s *Store) UpdateLog(ev *model.LogEvent) error {
	tags, err := encodeTags(ev.TriggerTags)
	if err != nil {
		return fmt.Errorf("update log %q: %w", ev.ID, err)
	}

	ev.UpdatedAt = time.Now().UnixMilli()

	var lat, lng, addr any
	if ev.Location != nil {
		lat = ev.Location.Latitude
		lng = ev.Location.Longitude
		addr = nullString(ev.Location.Address)
	}

	res, err := s.db.Exec(`UPDATE cigarette_logs SET
		timestamp = ?, mood = ?, activity = ?,
		location_latitude = ?, location_longitude = ?, location_address = ?,
		notes = ?, trigger_tags = ?, synced = ?, updated_at = ?
		WHERE id = ?`,
		ev.Timestamp, nullString(ev.Mood), nullString(ev.Activity),
		lat, lng, addr,
		nullString(ev.Notes), tags, boolInt(ev.Synced), ev.UpdatedAt,
		ev.ID,
	)
	if err != nil {
		return fmt.Errorf("update log %q: %w", ev.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update log %q: %w", ev.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update log %q: %w", ev.ID, ErrNotFound)
	}
	return nil
}

// GetLogByID returns the event or nil when the id is unknown.
func (s *Store) GetLogByID(id string) (*model.LogEvent, error) {
	row := s.db.QueryRow(`SELECT `+logColumns+` FROM cigarette_logs WHERE id = ?`, id)
	ev, err := scanLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get log %q: %w", id, err)
	}
	return ev, nil
}

// ListLogs returns events ordered by timestamp descending. Equal timestamps
// order by id so pagination stays deterministic. limit <= 0 means no limit.
func (s *Store) ListLogs(limit, offset int) ([]model.LogEvent, error) {
	query := `SELECT ` + logColumns + ` FROM cigarette_logs ORDER BY timestamp DESC, id ASC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	} else if offset > 0 {
		query += ` LIMIT -1`
	}
	if offset > 0 {
		query += ` OFFSET ?`
		args = append(args, offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return collectLogs(rows)
}

// LogsByDateRange returns events with start <= timestamp <= end, newest
// first. Both bounds are inclusive epoch milliseconds.
func (s *Store) LogsByDateRange(start, end int64) ([]model.LogEvent, error) {
	rows, err := s.db.Query(`SELECT `+logColumns+` FROM cigarette_logs
		WHERE timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp DESC, id ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("logs by date range: %w", err)
	}
	return collectLogs(rows)
}

// CountLogs returns the total number of events.
func (s *Store) CountLogs() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM cigarette_logs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count logs: %w", err)
	}
	return count, nil
}

// CountLogsInRange counts events with start <= timestamp <= end.
func (s *Store) CountLogsInRange(start, end int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM cigarette_logs
		WHERE timestamp >= ? AND timestamp <= ?`, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count logs in range: %w", err)
	}
	return count, nil
}

// UnsyncedLogs returns all events not yet accepted by the remote, oldest
// first so a replay preserves causal order.
func (s *Store) UnsyncedLogs() ([]model.LogEvent, error) {
	rows, err := s.db.Query(`SELECT ` + logColumns + ` FROM cigarette_logs
		WHERE synced = 0 ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("unsynced logs: %w", err)
	}
	return collectLogs(rows)
}

// CountUnsyncedLogs counts events not yet accepted by the remote.
func (s *Store) CountUnsyncedLogs() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM cigarette_logs WHERE synced = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unsynced logs: %w", err)
	}
	return count, nil
}

// MarkLogSynced flags the event as accepted by the remote. Idempotent;
// a no-op for unknown or already-synced ids.
func (s *Store) MarkLogSynced(id string) error {
	_, err := s.db.Exec(`UPDATE cigarette_logs SET synced = 1, updated_at = ? WHERE id = ?`,
		time.Now().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("mark log %q synced: %w", id, err)
	}
	return nil
}

// DeleteLog removes the event. Fails with ErrNotFound for unknown ids.
func (s *Store) DeleteLog(id string) error {
	res, err := s.db.Exec(`DELETE FROM cigarette_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete log %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete log %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete log %q: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteLogsByDateRange hard-deletes events with start <= timestamp <= end
// and returns how many were removed.
func (s *Store) DeleteLogsByDateRange(start, end int64) (int, error) {
	res, err := s.db.Exec(`DELETE FROM cigarette_logs WHERE timestamp >= ? AND timestamp <= ?`,
		start, end)
	if err != nil {
		return 0, fmt.Errorf("delete logs by date range: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete logs by date range: %w", err)
	}
	return int(n), nil
}

// DateCount is an event count for one local calendar date (YYYY-MM-DD).
type DateCount struct {
	Day   string
	Count int
}

// CountsByDate groups events in [start, end] by local calendar date.
// Dates with no events are absent; densification is the analytics
// engine's job.
func (s *Store) CountsByDate(start, end int64) ([]DateCount, error) {
	rows, err := s.db.Query(`SELECT
		strftime('%Y-%m-%d', timestamp / 1000, 'unixepoch', 'localtime') AS day,
		COUNT(*) AS count
		FROM cigarette_logs
		WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY day ORDER BY day ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("counts by date: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []DateCount
	for rows.Next() {
		var dc DateCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

// TagCount is an event count for one mood or activity value.
type TagCount struct {
	Tag   string
	Count int
}

// MoodDistribution groups events in [start, end] that carry a mood,
// most frequent first.
func (s *Store) MoodDistribution(start, end int64) ([]TagCount, error) {
	return s.tagDistribution("mood", start, end)
}

// ActivityDistribution groups events in [start, end] that carry an
// activity, most frequent first.
func (s *Store) ActivityDistribution(start, end int64) ([]TagCount, error) {
	return s.tagDistribution("activity", start, end)
}

func (s *Store) tagDistribution(column string, start, end int64) ([]TagCount, error) {
	// column is one of the two constants above, never user input.
	rows, err := s.db.Query(`SELECT `+column+`, COUNT(*) AS count
		FROM cigarette_logs
		WHERE timestamp >= ? AND timestamp <= ? AND `+column+` IS NOT NULL
		GROUP BY `+column+` ORDER BY count DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s distribution: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var counts []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// HourCount is an event count for one local hour of day.
type HourCount struct {
	Hour  int
	Count int
}

// HourlyDistribution groups events in [start, end] by local hour of day.
// Only hours with at least one event appear.
func (s *Store) HourlyDistribution(start, end int64) ([]HourCount, error) {
	rows, err := s.db.Query(`SELECT
		CAST(strftime('%H', timestamp / 1000, 'unixepoch', 'localtime') AS INTEGER) AS hour,
		COUNT(*) AS count
		FROM cigarette_logs
		WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY hour ORDER BY hour ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("hourly distribution: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []HourCount
	for rows.Next() {
		var hc HourCount
		if err := rows.Scan(&hc.Hour, &hc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, hc)
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanLog decodes one row into a LogEvent. Any malformed stored value is a
// DecodeError, never silently coerced.
func scanLog(row rowScanner) (*model.LogEvent, error) {
	var ev model.LogEvent
	var mood, activity, addr, notes, tags sql.NullString
	var lat, lng sql.NullFloat64
	var synced int

	err := row.Scan(&ev.ID, &ev.Timestamp, &mood, &activity,
		&lat, &lng, &addr,
		&notes, &tags, &synced, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		return nil, err
	}

	ev.Mood = mood.String
	ev.Activity = activity.String
	ev.Notes = notes.String
	ev.Synced = synced != 0

	if lat.Valid != lng.Valid {
		return nil, &DecodeError{ID: ev.ID, Field: "location", Err: fmt.Errorf("latitude/longitude pair incomplete")}
	}
	if lat.Valid {
		ev.Location = &model.Location{
			Latitude:  lat.Float64,
			Longitude: lng.Float64,
			Address:   addr.String,
		}
	}

	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &ev.TriggerTags); err != nil {
			return nil, &DecodeError{ID: ev.ID, Field: "trigger_tags", Err: err}
		}
	}

	return &ev, nil
}

func collectLogs(rows *sql.Rows) ([]model.LogEvent, error) {
	defer func() { _ = rows.Close() }()

	var events []model.LogEvent
	for rows.Next() {
		ev, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func encodeTags(tags []string) (any, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encoding trigger tags: %w", err)
	}
	return string(data), nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
