// Package analytics derives read-only aggregates from the event store:
// trend series, trigger breakdowns, time-of-day patterns and forward
// projections. Nothing here mutates state.
package analytics

import (
	"sort"
	"time"

	"github.com/theirongolddev/smokesense/internal/model"
	"github.com/theirongolddev/smokesense/internal/store"
)

// Engine aggregates over a lookback window of whole local calendar days.
type Engine struct {
	store *store.Store
}

// New returns an engine over the given store.
func New(st *store.Store) *Engine {
	return &Engine{store: st}
}

// DailyTrend returns one entry per calendar date in the trailing window,
// today included, gap-filled with zero for dates without events. The
// grouped store query alone omits empty dates; densification happens here.
func (e *Engine) DailyTrend(days int) ([]model.DailyCount, error) {
	if days < 1 {
		days = 1
	}
	now := time.Now()
	start, end := windowBounds(days, now)

	counts, err := e.store.CountsByDate(start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]int, len(counts))
	for _, dc := range counts {
		byDay[dc.Day] = dc.Count
	}

	trend := make([]model.DailyCount, 0, days)
	day := startOfDay(now).AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		trend = append(trend, model.DailyCount{
			Date:  day,
			Count: byDay[day.Format("2006-01-02")],
		})
		day = day.AddDate(0, 0, 1)
	}
	return trend, nil
}

// MoodTriggers breaks down events carrying a mood over the trailing
// window, most frequent first. Percentage is relative to all mood-tagged
// events in the window. Trend compares against the window of equal length
// immediately before.
func (e *Engine) MoodTriggers(days int) ([]model.TriggerAnalysis, error) {
	return e.triggers(e.store.MoodDistribution, days)
}

// ActivityTriggers is MoodTriggers for the activity tag.
func (e *Engine) ActivityTriggers(days int) ([]model.TriggerAnalysis, error) {
	return e.triggers(e.store.ActivityDistribution, days)
}

func (e *Engine) triggers(distribution func(start, end int64) ([]store.TagCount, error), days int) ([]model.TriggerAnalysis, error) {
	if days < 1 {
		days = 1
	}
	now := time.Now()
	start, end := windowBounds(days, now)

	current, err := distribution(start, end)
	if err != nil {
		return nil, err
	}

	prevStart, prevEnd := previousWindow(days, now)
	previous, err := distribution(prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	prevCounts := make(map[string]int, len(previous))
	for _, tc := range previous {
		prevCounts[tc.Tag] = tc.Count
	}

	total := 0
	for _, tc := range current {
		total += tc.Count
	}

	analyses := make([]model.TriggerAnalysis, 0, len(current))
	for _, tc := range current {
		pct := 0.0
		if total > 0 {
			pct = float64(tc.Count) / float64(total) * 100
		}
		analyses = append(analyses, model.TriggerAnalysis{
			Trigger:    tc.Tag,
			Frequency:  tc.Count,
			Percentage: pct,
			Trend:      trendOf(tc.Count, prevCounts[tc.Tag]),
		})
	}
	return analyses, nil
}

// HourlyPattern returns the mean events per day for each hour of day that
// has at least one event in the window. The divisor is the requested
// window length, not the number of days with data, so sparse history
// still reads as "per calendar day over the full window".
func (e *Engine) HourlyPattern(days int) ([]model.TimePattern, error) {
	if days < 1 {
		days = 1
	}
	now := time.Now()
	start, end := windowBounds(days, now)

	counts, err := e.store.HourlyDistribution(start, end)
	if err != nil {
		return nil, err
	}

	patterns := make([]model.TimePattern, 0, len(counts))
	for _, hc := range counts {
		patterns = append(patterns, model.TimePattern{
			Hour:         hc.Hour,
			AverageCount: float64(hc.Count) / float64(days),
		})
	}
	return patterns, nil
}

// PeakHour returns the hour of day with the most events in the window.
// ok is false when the window holds no events.
func (e *Engine) PeakHour(days int) (hour int, ok bool, err error) {
	if days < 1 {
		days = 1
	}
	now := time.Now()
	start, end := windowBounds(days, now)

	counts, err := e.store.HourlyDistribution(start, end)
	if err != nil {
		return 0, false, err
	}

	best := -1
	for _, hc := range counts {
		if best == -1 || hc.Count > best {
			best = hc.Count
			hour = hc.Hour
		}
	}
	return hour, best != -1, nil
}

// WeeklySummary aggregates the trailing seven days against the seven
// before: totals, top triggers, peak day and hour, and percent change.
func (e *Engine) WeeklySummary() (*model.WeeklySummary, error) {
	now := time.Now()
	start, end := windowBounds(7, now)
	prevStart, prevEnd := previousWindow(7, now)

	total, err := e.store.CountLogsInRange(start, end)
	if err != nil {
		return nil, err
	}
	prevTotal, err := e.store.CountLogsInRange(prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	days, err := e.store.CountsByDate(start, end)
	if err != nil {
		return nil, err
	}
	var peakDay time.Time
	peakCount := -1
	for _, dc := range days {
		if dc.Count > peakCount {
			if d, perr := time.ParseInLocation("2006-01-02", dc.Day, time.Local); perr == nil {
				peakDay = d
				peakCount = dc.Count
			}
		}
	}

	peakHour, _, err := e.PeakHour(7)
	if err != nil {
		return nil, err
	}

	moods, err := e.MoodTriggers(7)
	if err != nil {
		return nil, err
	}
	activities, err := e.ActivityTriggers(7)
	if err != nil {
		return nil, err
	}
	top := append(append([]model.TriggerAnalysis{}, moods...), activities...)
	sort.Slice(top, func(i, j int) bool { return top[i].Frequency > top[j].Frequency })
	if len(top) > 3 {
		top = top[:3]
	}

	change := 0.0
	if prevTotal > 0 {
		change = float64(total-prevTotal) / float64(prevTotal) * 100
	}

	return &model.WeeklySummary{
		WeekStart:          startOfDay(now).AddDate(0, 0, -6),
		WeekEnd:            startOfDay(now),
		TotalCount:         total,
		DailyAverage:       float64(total) / 7,
		TopTriggers:        top,
		PeakDay:            peakDay,
		PeakHour:           peakHour,
		ComparedToLastWeek: change,
	}, nil
}

// windowBounds returns the inclusive millisecond bounds of the trailing
// window of whole local calendar days ending today.
func windowBounds(days int, now time.Time) (start, end int64) {
	s := startOfDay(now).AddDate(0, 0, -(days - 1))
	e := startOfDay(now).Add(24*time.Hour - time.Millisecond)
	return s.UnixMilli(), e.UnixMilli()
}

// previousWindow returns the window of equal length immediately before the
// current one.
func previousWindow(days int, now time.Time) (start, end int64) {
	s := startOfDay(now).AddDate(0, 0, -(2*days - 1))
	e := startOfDay(now).AddDate(0, 0, -(days - 1)).Add(-time.Millisecond)
	return s.UnixMilli(), e.UnixMilli()
}

func startOfDay(ts time.Time) time.Time {
	local := ts.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

func trendOf(current, previous int) model.Trend {
	switch {
	case current > previous:
		return model.TrendIncreasing
	case current < previous:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}
