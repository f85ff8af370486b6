package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Dashboard is one snapshot of everything the dashboard page displays.
// Each collection is populated independently; an empty slice means the
// corresponding fetch returned nothing or failed.
type Dashboard struct {
	Cardholders  []Cardholder      `json:"cardholders"`
	Transactions []Transaction     `json:"transactions"`
	TopMerchants []MerchantSummary `json:"top_merchants"`
	Failed       []json.RawMessage `json:"-"`
	FetchedAt    time.Time         `json:"fetched_at"`
}

// FailedCount is the number of transactions the backend classifies as failed.
func (d Dashboard) FailedCount() int {
	return len(d.Failed)
}

// TrendPoint is one point of the transactions trend chart.
type TrendPoint struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// TrendSeries maps transactions, in backend order, to chart points named
// "Tx 1", "Tx 2", ...
func TrendSeries(txs []Transaction) []TrendPoint {
	points := make([]TrendPoint, len(txs))
	for i, tx := range txs {
		points[i] = TrendPoint{
			Name:   "Tx " + strconv.Itoa(i+1),
			Amount: tx.Amount.Float64(),
		}
	}
	return points
}

// Summary holds the headline counts of a dashboard snapshot.
type Summary struct {
	At           time.Time `json:"at"`
	Cardholders  int       `json:"cardholders"`
	Transactions int       `json:"transactions"`
	Failed       int       `json:"failed"`
	Merchants    int       `json:"merchants"`
	Volume       float64   `json:"volume"`
}

// Summarize computes the headline counts for d.
func Summarize(d Dashboard) Summary {
	var volume float64
	for _, tx := range d.Transactions {
		volume += tx.Amount.Float64()
	}
	return Summary{
		At:           d.FetchedAt,
		Cardholders:  len(d.Cardholders),
		Transactions: len(d.Transactions),
		Failed:       d.FailedCount(),
		Merchants:    len(d.TopMerchants),
		Volume:       volume,
	}
}
