package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/theirongolddev/paydash/internal/api"
	"github.com/theirongolddev/paydash/internal/cli"
	"github.com/theirongolddev/paydash/internal/config"
	"github.com/theirongolddev/paydash/internal/model"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var (
	flagAPIURL  string
	flagTimeout time.Duration
	flagQuiet   bool
	flagVerbose bool
	flagJSON    bool
)

const renderWidth = 80

var rootCmd = &cobra.Command{
	Use:          "paydash",
	Short:        "Visa payment dashboard CLI",
	Long:         "Fetch cardholders, transactions and merchant revenue from the payments API and summarize them.",
	SilenceUsage: true,
	RunE:         runDashboard,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Payments API base URL (overrides env and config)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout (default from config, 10s)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log requests at debug level")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print raw JSON instead of tables")
}

// loadConfigOrDefault loads config, returning defaults on error.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// logLevel maps --quiet / --verbose onto a slog level.
func logLevel() slog.Level {
	switch {
	case flagVerbose:
		return slog.LevelDebug
	case flagQuiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel()}))
}

// newClient builds the API client from flags, env and config.
func newClient(cfg config.Config, logger *slog.Logger) (*api.Client, error) {
	base := config.ResolveBaseURL(flagAPIURL, cfg)
	if err := api.ValidateBaseURL(base); err != nil {
		return nil, fmt.Errorf("%s (from %s): %w", base, config.BaseURLSource(flagAPIURL, cfg), err)
	}

	timeout := cfg.Timeout()
	if flagTimeout > 0 {
		timeout = flagTimeout
	}

	return api.NewClient(base,
		api.WithTimeout(timeout),
		api.WithLogger(logger),
	), nil
}

// prepare is the common prologue of the fetching commands.
func prepare() (config.Config, *api.Client, error) {
	cfg := loadConfigOrDefault()
	client, err := newClient(cfg, newLogger(os.Stderr))
	if err != nil {
		return cfg, nil, err
	}
	return cfg, client, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// dashboardJSON is the --json shape of the dashboard: the failed list is
// passed through as the backend returned it.
type dashboardJSON struct {
	model.Dashboard
	FailedTransactions []json.RawMessage  `json:"failed_transactions"`
	Trend              []model.TrendPoint `json:"trend"`
}

func runDashboard(_ *cobra.Command, _ []string) error {
	_, client, err := prepare()
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Fetching from %s...\n", client.BaseURL())
	}
	d := client.FetchAll(context.Background())

	if flagJSON {
		failed := d.Failed
		if failed == nil {
			failed = []json.RawMessage{}
		}
		return printJSON(dashboardJSON{
			Dashboard:          d,
			FailedTransactions: failed,
			Trend:              model.TrendSeries(d.Transactions),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderDashboard(d, renderWidth))
	fmt.Println()
	return nil
}
