package tui

import (
	"context"
	"encoding/json"
	"time"

	"github.com/theirongolddev/paydash/internal/api"
	"github.com/theirongolddev/paydash/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchCount is the number of independent fetches in one refresh round.
const fetchCount = 4

// CardholdersMsg carries the result of the cardholders fetch.
type CardholdersMsg struct {
	Cardholders []model.Cardholder
}

// TransactionsMsg carries the result of the transactions fetch.
type TransactionsMsg struct {
	Transactions []model.Transaction
}

// TopMerchantsMsg carries the result of the top-merchants fetch.
type TopMerchantsMsg struct {
	Merchants []model.MerchantSummary
}

// FailedTransactionsMsg carries the result of the failed-transactions fetch.
type FailedTransactionsMsg struct {
	Failed []json.RawMessage
}

// fetchAllCmd starts the four fetches as separate commands. Each delivers
// its own message, so the dashboard fills in whatever order they finish.
// Fetch failures are masked by the client as empty slices.
func fetchAllCmd(c *api.Client) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			return CardholdersMsg{Cardholders: c.FetchCardholders(context.Background())}
		},
		func() tea.Msg {
			return TransactionsMsg{Transactions: c.FetchTransactions(context.Background())}
		},
		func() tea.Msg {
			return TopMerchantsMsg{Merchants: c.FetchTopMerchants(context.Background())}
		},
		func() tea.Msg {
			return FailedTransactionsMsg{Failed: c.FetchFailedTransactions(context.Background())}
		},
	)
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
