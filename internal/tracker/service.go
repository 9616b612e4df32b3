// Package tracker is the write-side API over the event store: create,
// update, read and delete log events, with validation before any write and
// sync scheduling after every successful one.
package tracker

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/smokesense/internal/budget"
	"github.com/theirongolddev/smokesense/internal/model"
	"github.com/theirongolddev/smokesense/internal/store"
)

// clockSkewTolerance is how far into the future a caller-supplied
// timestamp may sit before it is rejected.
const clockSkewTolerance = time.Minute

// SyncScheduler arms the outbox after a local write. Scheduling never
// blocks the write path.
type SyncScheduler interface {
	Schedule(immediate bool) error
}

// CreateLogInput is the caller-facing shape of a new log event.
// A zero Timestamp means "now".
type CreateLogInput struct {
	Timestamp   int64
	Mood        string
	Activity    string
	Location    *model.Location
	Notes       string
	TriggerTags []string
}

// UpdateLogInput carries partial changes; nil fields keep the stored value.
type UpdateLogInput struct {
	Timestamp   *int64
	Mood        *string
	Activity    *string
	Location    *model.Location
	Notes       *string
	TriggerTags []string
}

// Service exposes log operations to the presentation layer.
type Service struct {
	store    *store.Store
	sync     SyncScheduler
	log      *zap.Logger
	validate *validator.Validate
}

// NewService returns a log service. sched may be nil when sync is disabled.
func NewService(st *store.Store, sched SyncScheduler, log *zap.Logger) *Service {
	return &Service{
		store:    st,
		sync:     sched,
		log:      log,
		validate: validator.New(),
	}
}

// CreateLog validates the input, writes a new unsynced event and schedules
// a sync. The generated id is client-side: epoch millis plus a random
// suffix.
func (s *Service) CreateLog(input CreateLogInput) (*model.LogEvent, error) {
	now := time.Now()

	ts := input.Timestamp
	if ts == 0 {
		ts = now.UnixMilli()
	}

	ev := &model.LogEvent{
		ID:          newLogID(now),
		Timestamp:   ts,
		Mood:        input.Mood,
		Activity:    input.Activity,
		Location:    input.Location,
		Notes:       input.Notes,
		TriggerTags: input.TriggerTags,
		Synced:      false,
	}

	if err := s.validateEvent(ev, now); err != nil {
		return nil, err
	}

	if err := s.store.InsertLog(ev); err != nil {
		return nil, err
	}

	s.log.Debug("log created", zap.String("id", ev.ID))
	s.scheduleSync()
	return ev, nil
}

// UpdateLog applies a partial update to an existing event. The event goes
// back to unsynced so the outbox replays it.
func (s *Service) UpdateLog(id string, input UpdateLogInput) (*model.LogEvent, error) {
	now := time.Now()

	ev, err := s.store.GetLogByID(id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, fmt.Errorf("update log %q: %w", id, store.ErrNotFound)
	}

	if input.Timestamp != nil {
		ev.Timestamp = *input.Timestamp
	}
	if input.Mood != nil {
		ev.Mood = *input.Mood
	}
	if input.Activity != nil {
		ev.Activity = *input.Activity
	}
	if input.Location != nil {
		ev.Location = input.Location
	}
	if input.Notes != nil {
		ev.Notes = *input.Notes
	}
	if input.TriggerTags != nil {
		ev.TriggerTags = input.TriggerTags
	}
	ev.Synced = false

	if err := s.validateEvent(ev, now); err != nil {
		return nil, err
	}

	if err := s.store.UpdateLog(ev); err != nil {
		return nil, err
	}

	s.log.Debug("log updated", zap.String("id", ev.ID))
	s.scheduleSync()
	return ev, nil
}

// GetLog returns the event or nil when the id is unknown.
func (s *Service) GetLog(id string) (*model.LogEvent, error) {
	return s.store.GetLogByID(id)
}

// AllLogs returns events newest first. limit <= 0 means no limit.
func (s *Service) AllLogs(limit, offset int) ([]model.LogEvent, error) {
	return s.store.ListLogs(limit, offset)
}

// TodayLogs returns events from the local calendar day.
func (s *Service) TodayLogs() ([]model.LogEvent, error) {
	start, end := budget.DayBounds(time.Now())
	return s.store.LogsByDateRange(start, end)
}

// LogsByDateRange returns events in the inclusive millisecond range.
func (s *Service) LogsByDateRange(start, end int64) ([]model.LogEvent, error) {
	return s.store.LogsByDateRange(start, end)
}

// DeleteLog hard-deletes one event. A deleted event cannot be un-synced
// retroactively; sync is outbound-only.
func (s *Service) DeleteLog(id string) error {
	return s.store.DeleteLog(id)
}

func (s *Service) scheduleSync() {
	if s.sync == nil {
		return
	}
	if err := s.sync.Schedule(false); err != nil {
		s.log.Warn("scheduling sync", zap.Error(err))
	}
}

func newLogID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
