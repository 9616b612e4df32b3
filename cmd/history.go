package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/cli"
	"github.com/theirongolddev/smokesense/internal/model"
)

var (
	flagHistLimit  int
	flagHistOffset int
	flagHistToday  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List logged cigarettes",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistLimit, "limit", "l", 20, "Max rows (-1 for all)")
	historyCmd.Flags().IntVar(&flagHistOffset, "offset", 0, "Rows to skip")
	historyCmd.Flags().BoolVar(&flagHistToday, "today", false, "Only today's logs")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var events []model.LogEvent
	if flagHistToday {
		events, err = a.logs.TodayLogs()
	} else {
		events, err = a.logs.AllLogs(flagHistLimit, flagHistOffset)
	}
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("\n  Nothing logged yet.")
		return nil
	}

	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		synced := ""
		if ev.Synced {
			synced = "✓"
		}
		rows = append(rows, []string{
			ev.ID,
			cli.FormatTimestamp(ev.Timestamp),
			ev.Mood,
			ev.Activity,
			strings.Join(ev.TriggerTags, ","),
			synced,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "When", "Mood", "Activity", "Tags", "Synced"},
		Rows:    rows,
	}))
	return nil
}
