package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/cli"
	"github.com/theirongolddev/smokesense/internal/model"
	"github.com/theirongolddev/smokesense/internal/tracker"
)

var (
	flagLogMood     string
	flagLogActivity string
	flagLogNotes    string
	flagLogTags     []string
	flagLogAt       string
	flagLogLat      float64
	flagLogLng      float64
	flagLogAddress  string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a cigarette",
	Long:  "Record a cigarette with optional mood, activity, location and notes.",
	RunE:  runLog,
}

func init() {
	logCmd.Flags().StringVarP(&flagLogMood, "mood", "m", "", "Mood when smoking (stressed, bored, social, anxious, ...)")
	logCmd.Flags().StringVarP(&flagLogActivity, "activity", "a", "", "Activity context (break, afterMeal, morning, ...)")
	logCmd.Flags().StringVar(&flagLogNotes, "notes", "", "Free-form notes")
	logCmd.Flags().StringSliceVarP(&flagLogTags, "tag", "t", nil, "Trigger tags (repeatable)")
	logCmd.Flags().StringVar(&flagLogAt, "at", "", "Backfill time (RFC3339 or 2006-01-02 15:04)")
	logCmd.Flags().Float64Var(&flagLogLat, "lat", 0, "Latitude")
	logCmd.Flags().Float64Var(&flagLogLng, "lng", 0, "Longitude")
	logCmd.Flags().StringVar(&flagLogAddress, "address", "", "Location label")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	input := tracker.CreateLogInput{
		Mood:        flagLogMood,
		Activity:    flagLogActivity,
		Notes:       flagLogNotes,
		TriggerTags: flagLogTags,
	}

	if flagLogAt != "" {
		at, err := parseWhen(flagLogAt)
		if err != nil {
			return err
		}
		input.Timestamp = at.UnixMilli()
	}

	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
		input.Location = &model.Location{
			Latitude:  flagLogLat,
			Longitude: flagLogLng,
			Address:   flagLogAddress,
		}
	}

	ev, err := a.logs.CreateLog(input)
	if err != nil {
		return err
	}

	fmt.Printf("  Logged #%s at %s\n", ev.ID, cli.FormatTimestamp(ev.Timestamp))

	status, err := a.budget.Status()
	if err != nil {
		return err
	}
	if status != nil {
		fmt.Printf("  %s\n", cli.RenderBudgetBar(status.TodayCount, status.Budget.DailyLimit, 20))
		if status.TodayCount >= status.Budget.DailyLimit {
			fmt.Println("  " + cli.Bad("That puts you over today's limit."))
		}
	}
	return nil
}

func parseWhen(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want RFC3339 or 2006-01-02 15:04)", s)
}
