package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/paydash/internal/cli"
	"github.com/theirongolddev/paydash/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagTxFailed bool
	flagTxLimit  int
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "List transactions with status and currency",
	RunE:    runTransactions,
}

func init() {
	transactionsCmd.Flags().BoolVar(&flagTxFailed, "failed", false, "Show only failed transactions")
	transactionsCmd.Flags().IntVarP(&flagTxLimit, "limit", "l", 50, "Maximum rows to print (0 = all)")
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(_ *cobra.Command, _ []string) error {
	_, client, err := prepare()
	if err != nil {
		return err
	}
	ctx := context.Background()

	var txs []model.Transaction
	title := "Transactions"
	if flagTxFailed {
		raw := client.FetchFailedTransactions(ctx)
		if flagJSON {
			return printJSON(raw)
		}
		txs = decodeFailed(raw)
		title = "Failed Transactions"
	} else {
		txs = client.FetchTransactions(ctx)
		if flagJSON {
			return printJSON(txs)
		}
	}

	fmt.Println()
	if len(txs) == 0 {
		fmt.Print(cli.RenderPlaceholder("No transaction data available."))
		fmt.Println()
		return nil
	}

	shown := txs
	if flagTxLimit > 0 && len(shown) > flagTxLimit {
		shown = shown[:flagTxLimit]
	}

	var total float64
	for _, tx := range txs {
		total += tx.Amount.Float64()
	}

	rows := make([][]string, 0, len(shown))
	for _, tx := range shown {
		rows = append(rows, []string{
			orDash(tx.ID.String()),
			orDash(tx.CardID.String()),
			orDash(tx.MerchantID.String()),
			cli.FormatMoney(tx.Amount.Float64()),
			orDash(tx.Currency),
			orDash(tx.Status),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%s (%s, total %s)", title, cli.FormatNumber(int64(len(txs))), cli.FormatMoney(total)),
		Headers: []string{"ID", "Card", "Merchant", "Amount", "Currency", "Status"},
		Rows:    rows,
	}))
	if len(shown) < len(txs) {
		fmt.Printf("  showing %d of %d, use --limit 0 for all\n", len(shown), len(txs))
	}
	fmt.Println()
	return nil
}

// decodeFailed reads what it can of the failed list; entries that are not
// transaction objects still count but render with zero fields.
func decodeFailed(raw []json.RawMessage) []model.Transaction {
	txs := make([]model.Transaction, len(raw))
	for i, r := range raw {
		_ = json.Unmarshal(r, &txs[i])
	}
	return txs
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
