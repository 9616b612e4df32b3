package analytics

import (
	"fmt"

	"github.com/theirongolddev/smokesense/internal/model"
)

var moodInsights = map[string]string{
	"stressed": "You tend to smoke more when feeling stressed. Consider trying a breathing exercise next time.",
	"bored":    "Boredom seems to be a trigger for you. Perhaps a short walk or game could help.",
	"social":   "Social situations often lead to smoking for you. That's okay — just being aware helps.",
	"anxious":  "Anxiety appears to trigger smoking. Gentle awareness can help you find alternatives over time.",
}

var activityInsights = map[string]string{
	"break":     "Work breaks are a common trigger. Maybe try a different relaxation ritual.",
	"afterMeal": "Post-meal smoking is a habit for many. A short walk could be a nice alternative.",
	"morning":   "Morning routines often include cigarettes. Consider replacing with a warm drink.",
}

// InsightMessages builds human-readable observations from the top triggers
// and the peak hour. A mood message appears only above 30% share, an
// activity message only above 25%, and the peak-hour message is always
// appended last. Pure function, no I/O.
func InsightMessages(topMood, topActivity *model.TriggerAnalysis, peakHour int) []string {
	var insights []string

	if topMood != nil && topMood.Percentage > 30 {
		if msg, ok := moodInsights[topMood.Trigger]; ok {
			insights = append(insights, msg)
		}
	}

	if topActivity != nil && topActivity.Percentage > 25 {
		if msg, ok := activityInsights[topActivity.Trigger]; ok {
			insights = append(insights, msg)
		}
	}

	insights = append(insights, fmt.Sprintf("Your peak smoking time is around %s.", hourLabel(peakHour)))
	return insights
}

func hourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}
