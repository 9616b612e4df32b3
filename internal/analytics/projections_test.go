package analytics

import (
	"testing"

	"github.com/theirongolddev/smokesense/internal/model"
)

func TestProjections_CurrentRate(t *testing.T) {
	got := Projections(2, 5, nil)

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4 timeframes", len(got))
	}

	month := got[0]
	if month.Timeframe != "month" || month.Days != 30 {
		t.Fatalf("first = %+v, want month/30", month)
	}
	if month.CurrentRate.Cigarettes != 60 {
		t.Errorf("Cigarettes = %d, want 60", month.CurrentRate.Cigarettes)
	}
	if month.CurrentRate.Cost != 300 {
		t.Errorf("Cost = %v, want 300", month.CurrentRate.Cost)
	}
	if month.CurrentRate.TimeSpent != 420 {
		t.Errorf("TimeSpent = %d, want 420 minutes", month.CurrentRate.TimeSpent)
	}
	if month.ReducedRate != nil {
		t.Error("ReducedRate set without a reduced average")
	}

	year := got[2]
	if year.CurrentRate.Cigarettes != 730 {
		t.Errorf("year Cigarettes = %d, want 730", year.CurrentRate.Cigarettes)
	}
}

func TestProjections_RoundsBeforeDeriving(t *testing.T) {
	// 1.5/day over 30 days is 45 exactly; 1.51 rounds to 45 too, and cost
	// must follow the rounded count.
	got := Projections(1.51, 1, nil)
	month := got[0]
	if month.CurrentRate.Cigarettes != 45 {
		t.Fatalf("Cigarettes = %d, want 45", month.CurrentRate.Cigarettes)
	}
	if month.CurrentRate.Cost != 45 {
		t.Errorf("Cost = %v, want 45 (derived from rounded count)", month.CurrentRate.Cost)
	}
}

func TestProjections_ReducedSavings(t *testing.T) {
	reduced := 1.0
	got := Projections(2, 5, &reduced)

	month := got[0]
	if month.ReducedRate == nil {
		t.Fatal("ReducedRate missing")
	}
	if month.ReducedRate.Cigarettes != 30 {
		t.Errorf("reduced Cigarettes = %d, want 30", month.ReducedRate.Cigarettes)
	}
	if month.ReducedRate.Savings != 150 {
		t.Errorf("Savings = %v, want 150", month.ReducedRate.Savings)
	}
}

func TestInsightMessages_Thresholds(t *testing.T) {
	mood := &model.TriggerAnalysis{Trigger: "stressed", Percentage: 45}
	activity := &model.TriggerAnalysis{Trigger: "break", Percentage: 30}

	got := InsightMessages(mood, activity, 14)
	if len(got) != 3 {
		t.Fatalf("len = %d, want mood + activity + peak hour", len(got))
	}
	if got[len(got)-1] != "Your peak smoking time is around 2 PM." {
		t.Errorf("peak message = %q", got[len(got)-1])
	}

	// At the threshold the message is suppressed; strictly-greater wins.
	mood.Percentage = 30
	activity.Percentage = 25
	got = InsightMessages(mood, activity, 0)
	if len(got) != 1 {
		t.Fatalf("len = %d, want only the peak-hour message", len(got))
	}
	if got[0] != "Your peak smoking time is around 12 AM." {
		t.Errorf("peak message = %q", got[0])
	}

	got = InsightMessages(nil, nil, 9)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 with nil triggers", len(got))
	}
}

func TestInsightMessages_UnknownTriggerSkipped(t *testing.T) {
	mood := &model.TriggerAnalysis{Trigger: "melancholy", Percentage: 90}
	got := InsightMessages(mood, nil, 8)
	if len(got) != 1 {
		t.Fatalf("len = %d, unknown mood should produce no message", len(got))
	}
}

func TestStreak(t *testing.T) {
	trend := []model.DailyCount{
		{Date: noon(4), Count: 9},
		{Date: noon(3), Count: 2},
		{Date: noon(2), Count: 3},
		{Date: noon(1), Count: 1},
		{Date: noon(0), Count: 0},
	}
	if got := Streak(trend, 3); got != 4 {
		t.Errorf("Streak = %d, want 4 (broken by the 9-count day)", got)
	}
	if got := Streak(trend, 0); got != 1 {
		t.Errorf("Streak limit 0 = %d, want 1", got)
	}
	if got := Streak(nil, 5); got != 0 {
		t.Errorf("Streak(nil) = %d, want 0", got)
	}
}
