package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/analytics"
	"github.com/theirongolddev/smokesense/internal/cli"
)

var flagCostsReduced float64

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Project money and time spent smoking",
	Long:  "Project cigarettes, cost and time over a month, quarter, year and five years, based on your recent daily average.",
	RunE:  runCosts,
}

func init() {
	costsCmd.Flags().Float64VarP(&flagCostsReduced, "reduced", "r", 0, "Also project at this reduced daily average")
	rootCmd.AddCommand(costsCmd)
}

func runCosts(cmd *cobra.Command, _ []string) error {
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
	for _, d := range trend {
		total += d.Count
	}
	dailyAverage := float64(total) / float64(days)

	var reduced *float64
	if cmd.Flags().Changed("reduced") {
		reduced = &flagCostsReduced
	}

	price := a.cfg.Financial.PricePerCigarette()
	currency := a.cfg.Financial.Currency
	projections := analytics.Projections(dailyAverage, price, reduced)

	fmt.Println()
	fmt.Println(cli.RenderTitle("COST PROJECTIONS"))
	fmt.Println()
	fmt.Printf("  Based on %.1f/day at %s each\n\n",
		dailyAverage, cli.FormatCost(currency, price))

	headers := []string{"Timeframe", "Cigarettes", "Cost", "Time"}
	if reduced != nil {
		headers = append(headers, "At target", "Savings")
	}

	rows := make([][]string, 0, len(projections))
	for _, p := range projections {
		row := []string{
			p.Timeframe,
			cli.FormatCount(p.CurrentRate.Cigarettes),
			cli.FormatCost(currency, p.CurrentRate.Cost),
			cli.FormatMinutes(p.CurrentRate.TimeSpent),
		}
		if p.ReducedRate != nil {
			row = append(row,
				cli.FormatCost(currency, p.ReducedRate.Cost),
				cli.FormatCost(currency, p.ReducedRate.Savings),
			)
		}
		rows = append(rows, row)
	}

	fmt.Print(cli.RenderTable(cli.Table{Headers: headers, Rows: rows}))
	return nil
}
