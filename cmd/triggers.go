package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/cli"
	"github.com/theirongolddev/smokesense/internal/model"
)

var triggersCmd = &cobra.Command{
	Use:   "triggers",
	Short: "Mood and activity trigger breakdown",
	RunE:  runTriggers,
}

func init() {
	rootCmd.AddCommand(triggersCmd)
}

func runTriggers(_ *cobra.Command, _ []string) error {
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

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TRIGGERS  Last %dd", days)))
	fmt.Println()

	printTriggerTable("By mood", moods)
	fmt.Println()
	printTriggerTable("By activity", activities)
	return nil
}

func printTriggerTable(title string, triggers []model.TriggerAnalysis) {
	if len(triggers) == 0 {
		fmt.Printf("  %s: %s\n", title, cli.Muted("no tagged logs"))
		return
	}

	rows := make([][]string, 0, len(triggers))
	for _, t := range triggers {
		rows = append(rows, []string{
			t.Trigger,
			cli.FormatCount(t.Frequency),
			cli.FormatPercent(t.Percentage),
			trendGlyph(t.Trend),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Trigger", "Count", "Share", "Trend"},
		Rows:    rows,
	}))
}

func trendGlyph(t model.Trend) string {
	switch t {
	case model.TrendIncreasing:
		return "↑"
	case model.TrendDecreasing:
		return "↓"
	default:
		return "→"
	}
}
