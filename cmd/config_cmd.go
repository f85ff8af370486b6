// Package cmd implements the paydash CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/paydash/internal/config"
	"github.com/theirongolddev/paydash/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	timeout := cfg.Timeout()
	if flagTimeout > 0 {
		timeout = flagTimeout
	}

	fmt.Println("  [API]")
	fmt.Printf("    Base URL: %s (from %s)\n", config.ResolveBaseURL(flagAPIURL, cfg), config.BaseURLSource(flagAPIURL, cfg))
	fmt.Printf("    Timeout:  %s\n", timeout)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto-refresh:     %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Refresh interval: %s\n", cfg.RefreshInterval())
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:        %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval:       %ds\n", cfg.Daemon.IntervalSec)
	fmt.Printf("    Record history: %v (%s)\n", cfg.Daemon.RecordHistory, store.DefaultPath())
	fmt.Println()

	fmt.Println("  Run `paydash setup` to reconfigure.")
	return nil
}
