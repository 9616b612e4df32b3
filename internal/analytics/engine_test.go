package analytics

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/smokesense/internal/model"
	"github.com/theirongolddev/smokesense/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "smokesense.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return New(st), st
}

var seedSeq int

func seed(t *testing.T, st *store.Store, ts time.Time, mood, activity string) {
	t.Helper()
	seedSeq++
	ev := &model.LogEvent{
		ID:        fmt.Sprintf("seed-%d", seedSeq),
		Timestamp: ts.UnixMilli(),
		Mood:      mood,
		Activity:  activity,
	}
	if err := st.InsertLog(ev); err != nil {
		t.Fatal(err)
	}
}

// noon returns today's local noon shifted back the given number of days.
// Noon keeps seeded events inside their calendar day regardless of when
// the test runs.
func noon(daysAgo int) time.Time {
	now := time.Now()
	d := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.Local)
	return d.AddDate(0, 0, -daysAgo)
}

func TestDailyTrend_GapFilled(t *testing.T) {
	e, st := newTestEngine(t)

	seed(t, st, noon(0), "", "")
	seed(t, st, noon(0), "", "")
	seed(t, st, noon(3), "", "")

	trend, err := e.DailyTrend(7)
	if err != nil {
		t.Fatalf("DailyTrend: %v", err)
	}
	if len(trend) != 7 {
		t.Fatalf("len = %d, want exactly 7 entries", len(trend))
	}

	last := trend[len(trend)-1]
	if last.Count != 2 {
		t.Errorf("today count = %d, want 2", last.Count)
	}
	if trend[len(trend)-4].Count != 1 {
		t.Errorf("3 days ago count = %d, want 1", trend[len(trend)-4].Count)
	}

	zeros := 0
	for _, dc := range trend {
		if dc.Count == 0 {
			zeros++
		}
	}
	if zeros != 5 {
		t.Errorf("zero-filled days = %d, want 5", zeros)
	}

	for i := 1; i < len(trend); i++ {
		if !trend[i].Date.After(trend[i-1].Date) {
			t.Fatal("trend not in ascending date order")
		}
	}
}

func TestMoodTriggers_PercentagesAndTrend(t *testing.T) {
	e, st := newTestEngine(t)

	seed(t, st, noon(0), "stressed", "")
	seed(t, st, noon(1), "stressed", "")
	seed(t, st, noon(2), "bored", "")
	seed(t, st, noon(3), "", "") // untagged, excluded from the total

	// Previous window: bored appeared more often than now.
	seed(t, st, noon(8), "bored", "")
	seed(t, st, noon(9), "bored", "")

	triggers, err := e.MoodTriggers(7)
	if err != nil {
		t.Fatalf("MoodTriggers: %v", err)
	}
	if len(triggers) != 2 {
		t.Fatalf("len = %d, want 2", len(triggers))
	}

	top := triggers[0]
	if top.Trigger != "stressed" || top.Frequency != 2 {
		t.Fatalf("top = %+v, want stressed x2", top)
	}
	if diff := top.Percentage - 100.0*2/3; diff > 0.01 || diff < -0.01 {
		t.Errorf("Percentage = %v, want 66.67", top.Percentage)
	}
	if top.Trend != model.TrendIncreasing {
		t.Errorf("stressed trend = %s, want increasing", top.Trend)
	}

	if triggers[1].Trigger != "bored" || triggers[1].Trend != model.TrendDecreasing {
		t.Errorf("bored = %+v, want decreasing", triggers[1])
	}
}

func TestHourlyPattern_DividesByWindowLength(t *testing.T) {
	e, st := newTestEngine(t)

	// Three events in the same hour today.
	base := noon(0)
	for i := 0; i < 3; i++ {
		seed(t, st, base.Add(time.Duration(i)*time.Minute), "", "")
	}

	pattern, err := e.HourlyPattern(6)
	if err != nil {
		t.Fatalf("HourlyPattern: %v", err)
	}
	if len(pattern) != 1 {
		t.Fatalf("len = %d, want 1 (only hours with data)", len(pattern))
	}
	if pattern[0].Hour != 12 {
		t.Errorf("Hour = %d, want 12", pattern[0].Hour)
	}
	if pattern[0].AverageCount != 0.5 {
		t.Errorf("AverageCount = %v, want 3/6 = 0.5", pattern[0].AverageCount)
	}
}

func TestPeakHour(t *testing.T) {
	e, st := newTestEngine(t)

	if _, ok, err := e.PeakHour(7); err != nil || ok {
		t.Fatalf("PeakHour on empty store: ok=%t err=%v, want no result", ok, err)
	}

	seed(t, st, noon(0), "", "")
	seed(t, st, noon(0).Add(-3*time.Hour), "", "")
	seed(t, st, noon(0).Add(-3*time.Hour).Add(time.Minute), "", "")

	hour, ok, err := e.PeakHour(7)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || hour != 9 {
		t.Fatalf("PeakHour = %d ok=%t, want 9", hour, ok)
	}
}

func TestWeeklySummary(t *testing.T) {
	e, st := newTestEngine(t)

	for i := 0; i < 4; i++ {
		seed(t, st, noon(i), "stressed", "break")
	}
	// Last week: double the volume, so this week reads as a 50% drop.
	for i := 7; i < 14; i++ {
		seed(t, st, noon(i), "bored", "")
	}
	seed(t, st, noon(8).Add(time.Hour), "bored", "")

	summary, err := e.WeeklySummary()
	if err != nil {
		t.Fatalf("WeeklySummary: %v", err)
	}
	if summary.TotalCount != 4 {
		t.Errorf("TotalCount = %d, want 4", summary.TotalCount)
	}
	if summary.DailyAverage != 4.0/7 {
		t.Errorf("DailyAverage = %v", summary.DailyAverage)
	}
	if summary.ComparedToLastWeek != -50 {
		t.Errorf("ComparedToLastWeek = %v, want -50", summary.ComparedToLastWeek)
	}
	if len(summary.TopTriggers) == 0 || summary.TopTriggers[0].Frequency != 4 {
		t.Errorf("TopTriggers = %+v", summary.TopTriggers)
	}
	if summary.PeakHour != 12 {
		t.Errorf("PeakHour = %d, want 12", summary.PeakHour)
	}
}

func TestReductionPlan(t *testing.T) {
	e, st := newTestEngine(t)

	for i := 0; i < 5; i++ {
		seed(t, st, noon(i), "stressed", "break")
	}

	plan, err := e.ReductionPlan(10, 20)
	if err != nil {
		t.Fatalf("ReductionPlan: %v", err)
	}
	if plan.DailyTarget != 8 {
		t.Errorf("DailyTarget = %d, want 8", plan.DailyTarget)
	}
	if plan.WeeklyTarget != 56 {
		t.Errorf("WeeklyTarget = %d, want 56", plan.WeeklyTarget)
	}
	if len(plan.Suggestions) != 4 {
		t.Errorf("Suggestions = %d, want capped at 4", len(plan.Suggestions))
	}
}

func TestReductionPlan_TargetFloorsAtOne(t *testing.T) {
	e, _ := newTestEngine(t)

	plan, err := e.ReductionPlan(0.5, 90)
	if err != nil {
		t.Fatal(err)
	}
	if plan.DailyTarget != 1 {
		t.Errorf("DailyTarget = %d, want floor of 1", plan.DailyTarget)
	}
}

func TestTrendOf(t *testing.T) {
	cases := []struct {
		current, previous int
		want              model.Trend
	}{
		{5, 3, model.TrendIncreasing},
		{2, 4, model.TrendDecreasing},
		{3, 3, model.TrendStable},
		{1, 0, model.TrendIncreasing},
	}
	for _, tc := range cases {
		if got := trendOf(tc.current, tc.previous); got != tc.want {
			t.Errorf("trendOf(%d, %d) = %s, want %s", tc.current, tc.previous, got, tc.want)
		}
	}
}
