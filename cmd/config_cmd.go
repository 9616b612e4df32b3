package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/smokesense/internal/cli"
	"github.com/theirongolddev/smokesense/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println()
	if config.Exists() {
		fmt.Printf("  Config: %s\n", config.ConfigPath())
	} else {
		fmt.Printf("  Config: %s %s\n", config.ConfigPath(), cli.Muted("(not written, using defaults)"))
	}
	fmt.Printf("  Database: %s\n\n", config.DBPath(cfg))

	rows := [][]string{
		{"general.default_days", fmt.Sprintf("%d", cfg.General.DefaultDays)},
		{"sync.endpoint", orNone(config.SyncEndpoint(cfg))},
		{"sync.interval_minutes", fmt.Sprintf("%d", cfg.Sync.IntervalMinutes)},
		{"sync.timeout_seconds", fmt.Sprintf("%d", cfg.Sync.TimeoutSeconds)},
		{"financial.price_per_pack", fmt.Sprintf("%.2f", cfg.Financial.PricePerPack)},
		{"financial.cigarettes_per_pack", fmt.Sprintf("%d", cfg.Financial.CigarettesPerPack)},
		{"financial.currency", cfg.Financial.Currency},
		{"logging.debug", fmt.Sprintf("%t", cfg.Logging.Debug)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Key", "Value"},
		Rows:    rows,
	}))
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists() {
		return fmt.Errorf("config already exists at %s", config.ConfigPath())
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", config.ConfigPath())
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
