package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/analytics"
	"github.com/theirongolddev/smokesense/internal/cli"
	"github.com/theirongolddev/smokesense/internal/model"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Personalized observations about your smoking",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	days := a.days()
	moods, err := a.stats.MoodTriggers(days)
	if err != nil {
		return err
	}
	activities, err := a.stats.ActivityTriggers(days)
	if err != nil {
		return err
	}
	peak, ok, err := a.stats.PeakHour(days)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("\n  Not enough data yet. Log a few cigarettes first.")
		return nil
	}

	var topMood, topActivity *model.TriggerAnalysis
	if len(moods) > 0 {
		topMood = &moods[0]
	}
	if len(activities) > 0 {
		topActivity = &activities[0]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("INSIGHTS  Last %dd", days)))
	fmt.Println()
	for _, msg := range analytics.InsightMessages(topMood, topActivity, peak) {
		fmt.Printf("  • %s\n", msg)
	}
	fmt.Println()
	return nil
}
