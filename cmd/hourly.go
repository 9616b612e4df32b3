package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/cli"
)

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Average cigarettes per hour of day",
	RunE:  runHourly,
}

func init() {
	rootCmd.AddCommand(hourlyCmd)
}

func runHourly(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	days := a.days()
	pattern, err := a.stats.HourlyPattern(days)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HOURLY PATTERN  Last %dd", days)))
	fmt.Println()

	if len(pattern) == 0 {
		fmt.Println("  No data for the selected period.")
		return nil
	}

	max := 0.0
	for _, p := range pattern {
		if p.AverageCount > max {
			max = p.AverageCount
		}
	}

	for _, p := range pattern {
		fmt.Printf("%s %5.2f\n",
			cli.RenderHorizontalBar(cli.FormatHour(p.Hour), p.AverageCount, max, 30),
			p.AverageCount)
	}

	if hour, ok, err := a.stats.PeakHour(days); err != nil {
		return err
	} else if ok {
		fmt.Printf("\n  Peak hour: %s\n", cli.FormatHour(hour))
	}
	return nil
}
