package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/store"
)

var (
	flagDeleteFrom string
	flagDeleteTo   string
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a log, or a date range with --from/--to",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().StringVar(&flagDeleteFrom, "from", "", "Range start (2006-01-02)")
	deleteCmd.Flags().StringVar(&flagDeleteTo, "to", "", "Range end, inclusive (2006-01-02)")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if flagDeleteFrom != "" || flagDeleteTo != "" {
		if len(args) > 0 {
			return errors.New("pass either an id or --from/--to, not both")
		}
		if flagDeleteFrom == "" || flagDeleteTo == "" {
			return errors.New("--from and --to are both required for range deletes")
		}

		from, err := parseWhen(flagDeleteFrom)
		if err != nil {
			return err
		}
		to, err := parseWhen(flagDeleteTo)
		if err != nil {
			return err
		}
		// --to names a day, so include the whole of it.
		end := to.AddDate(0, 0, 1).UnixMilli() - 1

		n, err := a.store.DeleteLogsByDateRange(from.UnixMilli(), end)
		if err != nil {
			return err
		}
		fmt.Printf("  Deleted %d log(s).\n", n)
		return nil
	}

	if len(args) == 0 {
		return errors.New("an id or --from/--to is required")
	}

	if err := a.logs.DeleteLog(args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no log with id %s", args[0])
		}
		return err
	}
	fmt.Printf("  Deleted %s.\n", args[0])
	return nil
}
