package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/cli"
	"github.com/theirongolddev/smokesense/internal/config"
	"github.com/theirongolddev/smokesense/internal/daemon"
)

var (
	flagSyncWatch bool
	flagSyncAddr  string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push unsynced logs to the configured endpoint",
	RunE:  runSync,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pending logs and last sync time",
	RunE:  runSyncStatus,
}

func init() {
	syncCmd.Flags().BoolVarP(&flagSyncWatch, "watch", "w", false, "Keep running and sync on the configured interval")
	syncCmd.Flags().StringVar(&flagSyncAddr, "addr", "", "Status API listen address in watch mode")
	syncCmd.AddCommand(syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
}

func runSync(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if flagSyncWatch {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		watcher := daemon.New(daemon.Config{
			Interval: a.cfg.Sync.Interval(),
			Addr:     flagSyncAddr,
		}, a.sync, a.log)

		fmt.Printf("  Watching, syncing every %s. Ctrl-C to stop.\n", a.cfg.Sync.Interval())
		return watcher.Run(ctx)
	}

	before, err := a.sync.UnsyncedCount()
	if err != nil {
		return err
	}
	if before == 0 {
		fmt.Println("  Everything is synced.")
		return nil
	}

	if err := a.sync.Drain(context.Background()); err != nil {
		return err
	}

	after, err := a.sync.UnsyncedCount()
	if err != nil {
		return err
	}
	fmt.Printf("  Synced %d log(s), %d still pending.\n", before-after, after)
	return nil
}

func runSyncStatus(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pending, err := a.sync.UnsyncedCount()
	if err != nil {
		return err
	}

	endpoint := config.SyncEndpoint(a.cfg)
	if endpoint == "" {
		fmt.Println("\n  Mode: local-only (no sync endpoint configured)")
	} else {
		fmt.Printf("\n  Endpoint: %s\n", endpoint)
	}
	fmt.Printf("  Pending: %d log(s)\n", pending)

	if last, ok, err := a.sync.LastSync(); err != nil {
		return err
	} else if ok {
		fmt.Printf("  Last sync: %s (%s)\n", last.Format("Jan 2 15:04"), cli.FormatRelative(last))
	} else {
		fmt.Println("  Last sync: never")
	}
	fmt.Println()
	return nil
}
