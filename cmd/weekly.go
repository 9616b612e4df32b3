package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/cli"
)

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Summary of the trailing seven days",
	RunE:  runWeekly,
}

func init() {
	rootCmd.AddCommand(weeklyCmd)
}

func runWeekly(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.stats.WeeklySummary()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WEEK OF %s", summary.WeekStart.Format("Jan 2"))))
	fmt.Println()
	fmt.Printf("  Total: %s (%.1f/day)\n",
		cli.FormatCount(summary.TotalCount), summary.DailyAverage)

	change := cli.FormatSignedPercent(summary.ComparedToLastWeek)
	if summary.ComparedToLastWeek > 0 {
		change = cli.Warn(change)
	} else if summary.ComparedToLastWeek < 0 {
		change = cli.Good(change)
	}
	fmt.Printf("  vs last week: %s\n", change)

	if summary.TotalCount > 0 {
		fmt.Printf("  Peak day: %s\n", summary.PeakDay.Format("Monday Jan 2"))
		fmt.Printf("  Peak hour: %s\n", cli.FormatHour(summary.PeakHour))
	}

	if len(summary.TopTriggers) > 0 {
		fmt.Println("\n  Top triggers:")
		for _, t := range summary.TopTriggers {
			fmt.Printf("    %-12s %s\n", t.Trigger, cli.FormatCount(t.Frequency))
		}
	}
	fmt.Println()
	return nil
}
