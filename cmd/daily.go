package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/cli"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily count table with trend sparkline",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	days := a.days()
	trend, err := a.stats.DailyTrend(days)
	if err != nil {
		return err
	}

	total := 0
	values := make([]float64, 0, len(trend))
	rows := make([][]string, 0, len(trend))
	for _, d := range trend {
		total += d.Count
		values = append(values, float64(d.Count))
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			d.Date.Format("Mon"),
			cli.FormatCount(d.Count),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY COUNTS  Last %dd", days)))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderSparkline(values))
	fmt.Printf("  Total %s, avg %.1f/day\n\n",
		cli.FormatCount(total), float64(total)/float64(days))

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Count"},
		Rows:    rows,
	}))
	return nil
}
