// Package model defines domain types for smokesense logs and analytics.
package model

import "time"

// Location is an optional geotag attached to a log event.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Address   string  `json:"address,omitempty"`
}

// LogEvent is one recorded cigarette. Immutable once synced, mutable until
// then. All timestamps are epoch milliseconds; the store owns CreatedAt and
// UpdatedAt.
type LogEvent struct {
	ID          string    `json:"id"`
	Timestamp   int64     `json:"timestamp"`
	Mood        string    `json:"mood,omitempty"`
	Activity    string    `json:"activity,omitempty"`
	Location    *Location `json:"location,omitempty"`
	Notes       string    `json:"notes,omitempty" validate:"max=1000"`
	TriggerTags []string  `json:"triggerTags,omitempty"`
	Synced      bool      `json:"synced"`
	CreatedAt   int64     `json:"createdAt"`
	UpdatedAt   int64     `json:"updatedAt"`
}

// Time returns the event timestamp as a time.Time in the local zone.
func (e *LogEvent) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
