package model

import "time"

// Trend is the direction of a trigger's frequency versus the previous
// window of equal length.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// TriggerAnalysis is one mood or activity value seen in the lookback
// window. Percentage is relative to all tagged events in that window.
type TriggerAnalysis struct {
	Trigger    string
	Frequency  int
	Percentage float64
	Trend      Trend
}

// TimePattern is the mean events per calendar day for one hour of day.
type TimePattern struct {
	Hour         int
	AverageCount float64
}

// DailyCount is the event count for one calendar date.
type DailyCount struct {
	Date  time.Time
	Count int
}

// RateBlock holds projected consumption for one timeframe.
// TimeSpent is in minutes.
type RateBlock struct {
	Cigarettes int
	Cost       float64
	TimeSpent  int
}

// ReducedRate is the parallel projection at a reduced daily average,
// with the cost saved versus the current rate.
type ReducedRate struct {
	RateBlock
	Savings float64
}

// Projection is a forward financial/time projection for one timeframe.
type Projection struct {
	Timeframe   string
	Days        int
	CurrentRate RateBlock
	ReducedRate *ReducedRate
}

// WeeklySummary aggregates the trailing seven days.
type WeeklySummary struct {
	WeekStart          time.Time
	WeekEnd            time.Time
	TotalCount         int
	DailyAverage       float64
	TopTriggers        []TriggerAnalysis
	PeakDay            time.Time
	PeakHour           int
	ComparedToLastWeek float64
}

// ReductionPlan holds targets and suggestions for cutting down.
type ReductionPlan struct {
	DailyTarget  int
	WeeklyTarget int
	Suggestions  []string
}
