package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/cli"
)

var flagPlanTarget float64

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a reduction plan from your recent habits",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().Float64VarP(&flagPlanTarget, "target", "t", 20, "Reduction target in percent")
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
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

	if dailyAverage == 0 {
		fmt.Println("\n  Nothing logged recently, nothing to cut.")
		return nil
	}

	plan, err := a.stats.ReductionPlan(dailyAverage, flagPlanTarget)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REDUCTION PLAN  -%.0f%%", flagPlanTarget)))
	fmt.Println()
	fmt.Printf("  Current: %.1f/day\n", dailyAverage)
	fmt.Printf("  Target:  %d/day (%d/week)\n", plan.DailyTarget, plan.WeeklyTarget)

	if len(plan.Suggestions) > 0 {
		fmt.Println("\n  Suggestions:")
		for _, s := range plan.Suggestions {
			fmt.Printf("    • %s\n", s)
		}
	}
	fmt.Println()
	return nil
}
