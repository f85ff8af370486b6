package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/paydash/internal/config"
	"github.com/theirongolddev/paydash/internal/tui"
	"github.com/theirongolddev/paydash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	flagTUIRoute   string
	flagTUILogFile string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&flagTUIRoute, "route", "/", "Initial route: / or /cardholders")
	tuiCmd.Flags().StringVar(&flagTUILogFile, "log-file", filepath.Join(config.CacheDir(), "tui.log"), "Log file (stderr would corrupt the screen)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	theme.SetActive(cfg.Appearance.Theme)

	if err := os.MkdirAll(filepath.Dir(flagTUILogFile), 0o750); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	//nolint:gosec // log path is configured by the local user
	logf, err := os.OpenFile(flagTUILogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	client, err := newClient(cfg, newLogger(logf))
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(client, flagTUIRoute)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
