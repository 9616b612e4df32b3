// Package budget computes and mutates the user's daily quota.
package budget

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/smokesense/internal/model"
	"github.com/theirongolddev/smokesense/internal/store"
)

const settingKey = "budget"

// ErrInvalidLimit indicates a non-positive daily limit.
var ErrInvalidLimit = errors.New("daily limit must be a positive integer")

// Tracker derives budget status from the event store and the persisted
// limit record.
type Tracker struct {
	store *store.Store
}

// New returns a tracker over the given store.
func New(st *store.Store) *Tracker {
	return &Tracker{store: st}
}

// Get returns the budget record, or nil when none has been set. A missing
// budget is a distinct state from a zero limit; zero limits are rejected
// at write time.
func (t *Tracker) Get() (*model.Budget, error) {
	raw, ok, err := t.store.GetSetting(settingKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	var b model.Budget
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding budget record: %w", err)
	}
	if b.DailyLimit <= 0 {
		return nil, fmt.Errorf("decoding budget record: %w", ErrInvalidLimit)
	}
	return &b, nil
}

// SetLimit creates the budget record or replaces the limit in place.
// CreatedAt is fixed at first creation; UpdatedAt refreshes on every call.
func (t *Tracker) SetLimit(n int) (*model.Budget, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	existing, err := t.Get()
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	b := model.Budget{DailyLimit: n, CreatedAt: now, UpdatedAt: now}
	if existing != nil {
		b.CreatedAt = existing.CreatedAt
	}

	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding budget record: %w", err)
	}
	if err := t.store.SetSetting(settingKey, string(data)); err != nil {
		return nil, err
	}
	return &b, nil
}

// Clear removes the budget record. Log events are untouched.
func (t *Tracker) Clear() error {
	return t.store.DeleteSetting(settingKey)
}

// Status computes the derived budget status, or nil when no budget is set.
// Day bounds are the device-local calendar day at call time, so a status
// computed just before local midnight is stale immediately after.
func (t *Tracker) Status() (*model.BudgetStatus, error) {
	b, err := t.Get()
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	count, err := t.TodayCount()
	if err != nil {
		return nil, err
	}

	percentage := float64(count) / float64(b.DailyLimit) * 100
	if percentage > 100 {
		percentage = 100
	}
	remaining := b.DailyLimit - count
	if remaining < 0 {
		remaining = 0
	}

	return &model.BudgetStatus{
		Budget:     *b,
		TodayCount: count,
		Percentage: percentage,
		Remaining:  remaining,
	}, nil
}

// IsOverBudget reports whether today's count has reached the daily limit.
// False when no budget is set.
func (t *Tracker) IsOverBudget() (bool, error) {
	status, err := t.Status()
	if err != nil {
		return false, err
	}
	if status == nil {
		return false, nil
	}
	return status.TodayCount >= status.Budget.DailyLimit, nil
}

// TodayCount counts events logged today in the local timezone.
func (t *Tracker) TodayCount() (int, error) {
	start, end := DayBounds(time.Now())
	return t.store.CountLogsInRange(start, end)
}

// DayBounds returns the inclusive epoch-millisecond bounds of the local
// calendar day containing ts.
func DayBounds(ts time.Time) (start, end int64) {
	local := ts.Local()
	s := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	e := s.Add(24*time.Hour - time.Millisecond)
	return s.UnixMilli(), e.UnixMilli()
}
