package tui

import (
	"errors"
	"strings"

	"github.com/theirongolddev/paydash/internal/api"
	"github.com/theirongolddev/paydash/internal/config"
	"github.com/theirongolddev/paydash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// SetupValues holds what the setup form collects.
type SetupValues struct {
	BaseURL     string
	Theme       string
	AutoRefresh bool
}

// SetupValuesFrom seeds the form with the current config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	base := cfg.API.BaseURL
	if base == "" {
		base = config.DefaultBaseURL
	}
	th := cfg.Appearance.Theme
	if th == "" {
		th = theme.FlexokiDark.Name
	}
	return SetupValues{BaseURL: base, Theme: th, AutoRefresh: cfg.TUI.AutoRefresh}
}

// Apply writes the collected values into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(v.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = config.DefaultBaseURL
	}
	cfg.Appearance.Theme = v.Theme
	cfg.TUI.AutoRefresh = v.AutoRefresh
}

// SetupForm builds the first-run form. It is used both inline in the TUI
// and standalone by `paydash setup`.
func SetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to paydash").
				Description("Point the dashboard at your payments API.\nSettings are saved to "+config.Path()),
			huh.NewInput().
				Title("API base URL").
				Description("Cardholders, transactions and merchants are read from here.").
				Placeholder(config.DefaultBaseURL).
				Value(&vals.BaseURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil // keeps the default
					}
					if err := api.ValidateBaseURL(s); err != nil {
						return errors.New("enter an http(s) URL")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Auto-refresh the dashboard?").
				Affirmative("Yes").
				Negative("No").
				Value(&vals.AutoRefresh),
		),
	).WithTheme(huh.ThemeDracula())
}

func newSetupForm(baseURL string, vals *SetupValues) *huh.Form {
	*vals = SetupValuesFrom(loadConfigOrDefault())
	if vals.BaseURL == config.DefaultBaseURL && baseURL != "" {
		vals.BaseURL = baseURL
	}
	return SetupForm(vals).WithShowHelp(false)
}

func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()
	a.setupVals.Apply(&cfg)
	theme.SetActive(cfg.Appearance.Theme)
	return config.Save(cfg)
}

// applySetup saves the setup answers and puts them into effect. A changed
// base URL swaps the client and starts a new fetch round against it.
func (a *App) applySetup() tea.Cmd {
	_ = a.saveSetupConfig()
	a.autoRefresh = a.setupVals.AutoRefresh

	base := strings.TrimRight(strings.TrimSpace(a.setupVals.BaseURL), "/")
	if base == "" || base == a.client.BaseURL() || api.ValidateBaseURL(base) != nil {
		return nil
	}
	a.client = a.client.WithBaseURL(base)
	return tea.Batch(a.startRefresh(), a.spinner.Tick)
}
