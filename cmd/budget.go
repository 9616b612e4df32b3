package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/analytics"
	"github.com/theirongolddev/smokesense/internal/cli"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage the daily cigarette limit",
	RunE:  runBudgetStatus,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <limit>",
	Short: "Set the daily limit",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

var budgetStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's progress against the limit",
	RunE:  runBudgetStatus,
}

var budgetClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the daily limit",
	RunE:  runBudgetClear,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetStatusCmd, budgetClearCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	limit, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("limit must be an integer, got %q", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.budget.SetLimit(limit)
	if err != nil {
		return err
	}
	fmt.Printf("  Daily limit set to %d.\n", b.DailyLimit)
	return nil
}

func runBudgetStatus(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	status, err := a.budget.Status()
	if err != nil {
		return err
	}
	if status == nil {
		fmt.Println("\n  No daily budget set. Try: smokesense budget set 10")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("DAILY BUDGET"))
	fmt.Println()
	fmt.Printf("  %s  %s used\n",
		cli.RenderBudgetBar(status.TodayCount, status.Budget.DailyLimit, 30),
		cli.FormatPercent(status.Percentage))
	if status.TodayCount >= status.Budget.DailyLimit {
		fmt.Println("  " + cli.Bad("Over the limit for today."))
	} else {
		fmt.Printf("  %d remaining today\n", status.Remaining)
	}

	trend, err := a.stats.DailyTrend(a.days())
	if err != nil {
		return err
	}
	if streak := analytics.Streak(trend, status.Budget.DailyLimit); streak > 0 {
		fmt.Printf("  %s\n", cli.Good(fmt.Sprintf("%d day(s) within budget", streak)))
	}
	fmt.Println()
	return nil
}

func runBudgetClear(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.budget.Clear(); err != nil {
		return err
	}
	fmt.Println("  Daily limit cleared.")
	return nil
}
