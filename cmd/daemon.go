package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/theirongolddev/paydash/internal/cli"
	"github.com/theirongolddev/paydash/internal/config"
	"github.com/theirongolddev/paydash/internal/daemon"
	"github.com/theirongolddev/paydash/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var (
	flagDaemonAddr         string
	flagDaemonInterval     time.Duration
	flagDaemonDetach       bool
	flagDaemonStateFile    string
	flagDaemonLogFile      string
	flagDaemonEventsBuffer int
	flagDaemonNoHistory    bool
	flagDaemonChild        bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Poll the payments API in the background and serve HTTP/SSE endpoints",
	RunE:  runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running poller and its latest dashboard summary",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running poller",
	RunE:  runDaemonStop,
}

func init() {
	defaults := config.DefaultConfig()

	pf := daemonCmd.PersistentFlags()
	pf.StringVar(&flagDaemonAddr, "addr", defaults.Daemon.Addr, "HTTP listen address (default from config)")
	pf.DurationVar(&flagDaemonInterval, "interval", time.Duration(defaults.Daemon.IntervalSec)*time.Second, "Polling interval, min 2s (default from config)")
	pf.StringVar(&flagDaemonStateFile, "state-file", filepath.Join(config.CacheDir(), "paydashd.json"), "Runtime state file (pid, address, backend)")
	pf.StringVar(&flagDaemonLogFile, "log-file", filepath.Join(config.CacheDir(), "paydashd.log"), "Log file for detached mode")
	pf.IntVar(&flagDaemonEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	f := daemonCmd.Flags()
	f.BoolVar(&flagDaemonNoHistory, "no-history", false, "Do not record snapshots to the history database")
	f.BoolVar(&flagDaemonDetach, "detach", false, "Run the poller as a background process")
	f.BoolVar(&flagDaemonChild, "child", false, "Internal: mark detached child process")
	_ = f.MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd, daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

// runtimeState is what a running poller publishes about itself.
type runtimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	BaseURL   string    `json:"base_url"`
	History   string    `json:"history,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// runtimeFile is the JSON file a running poller owns. Its presence with a
// live pid means a poller is up.
type runtimeFile string

func (f runtimeFile) read() (runtimeState, error) {
	var st runtimeState
	//nolint:gosec // state path is configured by the local user
	data, err := os.ReadFile(string(f))
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("reading %s: %w", f, err)
	}
	if st.PID <= 0 {
		return st, fmt.Errorf("reading %s: invalid pid %d", f, st.PID)
	}
	return st, nil
}

func (f runtimeFile) write(st runtimeState) error {
	if err := os.MkdirAll(filepath.Dir(string(f)), 0o750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(string(f), append(data, '\n'), 0o600)
}

func (f runtimeFile) remove() { _ = os.Remove(string(f)) }

// running returns the state of a live poller. A file left behind by a dead
// process is removed and reported as not running.
func (f runtimeFile) running() (runtimeState, bool, error) {
	st, err := f.read()
	switch {
	case errors.Is(err, os.ErrNotExist):
		return st, false, nil
	case err != nil:
		return st, false, err
	case !pidAlive(st.PID):
		f.remove()
		return st, false, nil
	}
	return st, true, nil
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	if flagDaemonDetach && flagDaemonChild {
		return errors.New("--detach and --child are mutually exclusive")
	}

	state := runtimeFile(flagDaemonStateFile)
	if st, up, err := state.running(); err != nil {
		return err
	} else if up {
		return fmt.Errorf("poller already running (pid %d, http://%s)", st.PID, st.Addr)
	}

	if flagDaemonDetach {
		pid, err := spawnDetached(withoutDetach(os.Args[1:]), flagDaemonLogFile)
		if err != nil {
			return err
		}
		fmt.Printf("  Started poller (pid %d)\n", pid)
		fmt.Printf("  Status: paydash daemon status --state-file %s\n", flagDaemonStateFile)
		fmt.Printf("  Log: %s\n", flagDaemonLogFile)
		return nil
	}

	return runDaemonForeground(cmd, state)
}

// spawnDetached re-executes paydash with args plus --child, with output
// appended to logPath.
func spawnDetached(args []string, logPath string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("resolve executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return 0, fmt.Errorf("create log directory: %w", err)
	}
	//nolint:gosec // log path is configured by the local user
	logf, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return 0, fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, append(args, "--child")...) //nolint:gosec // re-executes the current binary
	child.Stdout = logf
	child.Stderr = logf
	child.Env = os.Environ()
	if err := child.Start(); err != nil {
		return 0, fmt.Errorf("start detached poller: %w", err)
	}
	return child.Process.Pid, nil
}

func runDaemonForeground(cmd *cobra.Command, state runtimeFile) error {
	cfg := loadConfigOrDefault()
	addr := flagDaemonAddr
	if !cmd.Flags().Changed("addr") && cfg.Daemon.Addr != "" {
		addr = cfg.Daemon.Addr
	}
	interval := flagDaemonInterval
	if !cmd.Flags().Changed("interval") && cfg.Daemon.IntervalSec > 0 {
		interval = time.Duration(cfg.Daemon.IntervalSec) * time.Second
	}

	logger := newLogger(os.Stderr)
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	svcCfg := daemon.Config{
		BaseURL:      client.BaseURL(),
		Interval:     interval,
		Addr:         addr,
		EventsBuffer: flagDaemonEventsBuffer,
		Logger:       logger,
	}

	st := runtimeState{
		PID:       os.Getpid(),
		Addr:      addr,
		BaseURL:   client.BaseURL(),
		StartedAt: time.Now(),
	}

	if cfg.Daemon.RecordHistory && !flagDaemonNoHistory {
		h, err := store.Open(store.DefaultPath())
		if err != nil {
			logger.Warn("history disabled", slog.String("error", err.Error()))
		} else {
			defer func() { _ = h.Close() }()
			svcCfg.Recorder = h
			st.History = store.DefaultPath()
		}
	}

	if err := state.write(st); err != nil {
		return err
	}
	defer state.remove()

	fmt.Printf("  Polling %s every %s\n", st.BaseURL, interval)
	fmt.Printf("  Serving http://%s/v1/dashboard\n", addr)
	if st.History != "" {
		fmt.Printf("  Recording history to %s\n", st.History)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := daemon.New(svcCfg, client).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runDaemonStatus(_ *cobra.Command, _ []string) error {
	st, up, err := runtimeFile(flagDaemonStateFile).running()
	if err != nil {
		return err
	}
	if !up {
		fmt.Println("  Poller: not running")
		return nil
	}

	rows := [][]string{
		{"PID", strconv.Itoa(st.PID)},
		{"Address", "http://" + st.Addr},
		{"Backend", st.BaseURL},
		{"Up since", st.StartedAt.Local().Format(time.RFC3339)},
		{"History", orDash(st.History)},
	}

	live, err := fetchDaemonStatus(st.Addr)
	if err != nil {
		rows = append(rows, []string{"API", err.Error()})
	} else {
		lastPoll := "pending"
		if !live.LastPollAt.IsZero() {
			lastPoll = cli.FormatAge(live.LastPollAt, time.Now())
		}
		rows = append(rows,
			[]string{"---"},
			[]string{"Last poll", lastPoll},
			[]string{"Polls", cli.FormatNumber(live.PollCount)},
			[]string{"Cardholders", cli.FormatNumber(int64(live.Summary.Cardholders))},
			[]string{"Transactions", cli.FormatNumber(int64(live.Summary.Transactions))},
			[]string{"Volume", cli.FormatMoney(live.Summary.Volume)},
			[]string{"Failed", cli.FormatNumber(int64(live.Summary.Failed))},
			[]string{"Subscribers", strconv.Itoa(live.SubscriberCount)},
		)
		if live.LastError != "" {
			rows = append(rows, []string{"Last error", live.LastError})
		}
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Poller",
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

// fetchDaemonStatus reads /v1/status from a running poller.
func fetchDaemonStatus(addr string) (daemon.Status, error) {
	var st daemon.Status

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/v1/status", nil)
	if err != nil {
		return st, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return st, fmt.Errorf("unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return st, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("malformed status: %w", err)
	}
	return st, nil
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	state := runtimeFile(flagDaemonStateFile)
	st, up, err := state.running()
	if err != nil {
		return err
	}
	if !up {
		return errors.New("poller is not running")
	}

	proc, err := os.FindProcess(st.PID)
	if err != nil {
		return fmt.Errorf("find poller process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal poller: %w", err)
	}

	ticker := time.NewTicker(150 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(8 * time.Second)
	for {
		select {
		case <-ticker.C:
			if !pidAlive(st.PID) {
				state.remove()
				fmt.Printf("  Stopped poller (pid %d)\n", st.PID)
				return nil
			}
		case <-timeout:
			return fmt.Errorf("poller (pid %d) did not exit in time", st.PID)
		}
	}
}

// withoutDetach drops --detach so the child runs in the foreground.
func withoutDetach(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

// pidAlive reports whether a process with pid exists. EPERM means it exists
// but belongs to another user.
func pidAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
