package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/theirongolddev/smokesense/internal/model"
)

var moodSuggestions = map[string]string{
	"stressed": "Try a breathing exercise when feeling stressed instead of reaching for a cigarette.",
	"bored":    "Keep your hands busy with a stress ball or fidget toy during idle moments.",
	"social":   "In social situations, try holding a drink or snack instead.",
	"anxious":  "Practice the 4-7-8 breathing technique when anxiety triggers the urge.",
}

var activitySuggestions = map[string]string{
	"break":     "Replace one break cigarette with a short walk instead.",
	"afterMeal": "After meals, try chewing gum or having a mint.",
	"morning":   "Delay your first cigarette by 30 minutes each week.",
	"commute":   "Keep gum or mints in your car for the commute.",
}

// ReductionPlan derives daily and weekly targets from a percentage
// reduction goal, with suggestions driven by the top triggers of the last
// two weeks. At most four suggestions are returned.
func (e *Engine) ReductionPlan(currentDailyAverage, targetReductionPct float64) (*model.ReductionPlan, error) {
	moods, err := e.MoodTriggers(14)
	if err != nil {
		return nil, err
	}
	activities, err := e.ActivityTriggers(14)
	if err != nil {
		return nil, err
	}

	dailyTarget := int(math.Round(currentDailyAverage * (1 - targetReductionPct/100)))
	if dailyTarget < 1 {
		dailyTarget = 1
	}

	var suggestions []string
	if len(moods) > 0 && moods[0].Percentage > 25 {
		if msg, ok := moodSuggestions[moods[0].Trigger]; ok {
			suggestions = append(suggestions, msg)
		}
	}
	if len(activities) > 0 && activities[0].Percentage > 25 {
		if msg, ok := activitySuggestions[activities[0].Trigger]; ok {
			suggestions = append(suggestions, msg)
		}
	}
	suggestions = append(suggestions,
		fmt.Sprintf("Start by reducing to %d cigarettes per day this week.", dailyTarget),
		"Track your progress — awareness is the first step to change.",
	)
	if len(suggestions) > 4 {
		suggestions = suggestions[:4]
	}

	return &model.ReductionPlan{
		DailyTarget:  dailyTarget,
		WeeklyTarget: dailyTarget * 7,
		Suggestions:  suggestions,
	}, nil
}

// Streak counts the consecutive most-recent days at or under the daily
// limit. Pure function over an already-fetched trend series.
func Streak(dailyCounts []model.DailyCount, limit int) int {
	sorted := make([]model.DailyCount, len(dailyCounts))
	copy(sorted, dailyCounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	streak := 0
	for _, dc := range sorted {
		if dc.Count > limit {
			break
		}
		streak++
	}
	return streak
}
