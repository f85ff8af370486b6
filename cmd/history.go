package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/paydash/internal/cli"
	"github.com/theirongolddev/paydash/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit int
	flagHistoryPrune int
	flagHistoryDB    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show snapshot history recorded by the daemon",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 20, "Number of snapshots to show")
	historyCmd.Flags().IntVar(&flagHistoryPrune, "prune", -1, "Keep only the newest N snapshots")
	historyCmd.Flags().StringVar(&flagHistoryDB, "db", store.DefaultPath(), "History database path")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	h, err := store.Open(flagHistoryDB)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = h.Close() }()

	if flagHistoryPrune >= 0 {
		removed, err := h.Prune(flagHistoryPrune)
		if err != nil {
			return err
		}
		fmt.Printf("  Pruned %d snapshots, kept %d\n", removed, flagHistoryPrune)
		return nil
	}

	snaps, err := h.Recent(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if flagJSON {
		return printJSON(snaps)
	}

	total, err := h.Count()
	if err != nil {
		return err
	}

	fmt.Println()
	if len(snaps) == 0 {
		fmt.Print(cli.RenderPlaceholder("No snapshots yet. Start `paydash daemon` to record history."))
		fmt.Println()
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(snaps))
	series := make([]float64, len(snaps))
	for i, s := range snaps {
		rows = append(rows, []string{
			s.At.Local().Format("Jan 02 15:04:05"),
			cli.FormatAge(s.At, now),
			cli.FormatNumber(int64(s.Cardholders)),
			cli.FormatNumber(int64(s.Transactions)),
			cli.FormatNumber(int64(s.Failed)),
			cli.FormatNumber(int64(s.Merchants)),
			cli.FormatMoney(s.Volume),
		})
		// Oldest on the left.
		series[len(snaps)-1-i] = float64(s.Transactions)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Snapshot History (%d of %d)", len(snaps), total),
		Headers: []string{"Taken", "Age", "Cardholders", "Transactions", "Failed", "Merchants", "Volume"},
		Rows:    rows,
	}))
	fmt.Printf("\n  Transactions  %s\n", cli.RenderSparkline(series))
	if len(snaps) > 1 {
		newest, oldest := snaps[0], snaps[len(snaps)-1]
		fmt.Printf("  Change        %s transactions, %s failed\n",
			cli.FormatDelta(newest.Transactions-oldest.Transactions),
			cli.FormatDelta(newest.Failed-oldest.Failed))
	}
	fmt.Println()
	return nil
}
