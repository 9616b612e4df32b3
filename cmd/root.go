// Package cmd wires the smokesense commands together.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/smokesense/internal/analytics"
	"github.com/theirongolddev/smokesense/internal/budget"
	"github.com/theirongolddev/smokesense/internal/cli"
	"github.com/theirongolddev/smokesense/internal/config"
	"github.com/theirongolddev/smokesense/internal/logger"
	"github.com/theirongolddev/smokesense/internal/outbox"
	"github.com/theirongolddev/smokesense/internal/store"
	"github.com/theirongolddev/smokesense/internal/tracker"
)

var (
	flagDays  int
	flagDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "smokesense",
	Short: "Local-first cigarette tracker",
	Long:  "Track cigarettes, watch your daily budget, and see what triggers you.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Time window in days (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Verbose logging")
}

// app holds every component a command might need. Commands build one
// via newApp and must Close it when done.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	store  *store.Store
	logs   *tracker.Service
	budget *budget.Tracker
	stats  *analytics.Engine
	sync   *outbox.Outbox
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(flagDebug || cfg.Logging.Debug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(config.DBPath(cfg))
	if err != nil {
		logger.Sync(log)
		return nil, fmt.Errorf("open store: %w", err)
	}

	client := outbox.NewClient(config.SyncEndpoint(cfg), config.SyncAPIKey(cfg), cfg.Sync.Timeout())
	ob := outbox.New(st, client, cfg.Sync.Interval(), log)

	return &app{
		cfg:    cfg,
		log:    log,
		store:  st,
		logs:   tracker.NewService(st, ob, log),
		budget: budget.New(st),
		stats:  analytics.New(st),
		sync:   ob,
	}, nil
}

func (a *app) Close() {
	a.sync.Stop()
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing store", zap.Error(err))
	}
	logger.Sync(a.log)
}

// days resolves the --days flag against the configured default.
func (a *app) days() int {
	if flagDays > 0 {
		return flagDays
	}
	return a.cfg.General.DefaultDays
}

func runOverview(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	today, err := a.logs.TodayLogs()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SMOKESENSE"))
	fmt.Println()
	fmt.Printf("  Today: %s cigarettes\n", cli.FormatCount(len(today)))

	status, err := a.budget.Status()
	if err != nil {
		return err
	}
	if status != nil {
		fmt.Printf("  Budget: %s  %s\n",
			cli.RenderBudgetBar(status.TodayCount, status.Budget.DailyLimit, 20),
			cli.FormatPercent(status.Percentage))
		if status.TodayCount >= status.Budget.DailyLimit {
			fmt.Println("  " + cli.Bad("Over your daily limit."))
		} else {
			fmt.Printf("  %s remaining today\n", cli.FormatCount(status.Remaining))
		}
	} else {
		fmt.Println("  " + cli.Muted("No daily budget set. Try: smokesense budget set 10"))
	}

	pending, err := a.sync.UnsyncedCount()
	if err != nil {
		return err
	}
	if pending > 0 {
		fmt.Printf("  %s\n", cli.Muted(fmt.Sprintf("%d log(s) waiting to sync", pending)))
	}

	if len(today) > 0 {
		last := today[0]
		fmt.Printf("  Last logged %s\n", cli.Muted(cli.FormatRelative(last.Time())))
	}

	fmt.Println()
	return nil
}
