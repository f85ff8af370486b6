package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendSeries_StringAndNumberAmounts(t *testing.T) {
	var txs []Transaction
	require.NoError(t, json.Unmarshal([]byte(`[{"amount":"10.5"},{"amount":20}]`), &txs))

	got := TrendSeries(txs)
	want := []TrendPoint{
		{Name: "Tx 1", Amount: 10.5},
		{Name: "Tx 2", Amount: 20},
	}
	assert.Equal(t, want, got)
}

func TestTrendSeries_Empty(t *testing.T) {
	got := TrendSeries(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAmount_FallsBackToZero(t *testing.T) {
	cases := map[string]string{
		"null":        `{"amount":null}`,
		"missing":     `{}`,
		"empty":       `{"amount":""}`,
		"not numeric": `{"amount":"abc"}`,
		"bool":        `{"amount":true}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var tx Transaction
			require.NoError(t, json.Unmarshal([]byte(body), &tx))
			assert.Equal(t, 0.0, tx.Amount.Float64())
		})
	}
}

func TestAmount_NumericPrefix(t *testing.T) {
	cases := map[string]float64{
		`"10.5abc"`:   10.5,
		`" 12 USD"`:   12,
		`".5"`:        0.5,
		`"5."`:        5,
		`"-3.25"`:     -3.25,
		`"+7"`:        7,
		`"1e3 units"`: 1000,
		`"$10"`:       0,
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			var tx Transaction
			require.NoError(t, json.Unmarshal([]byte(`{"amount":`+raw+`}`), &tx))
			assert.InDelta(t, want, tx.Amount.Float64(), 1e-9)
		})
	}
}

func TestID_NumberOrString(t *testing.T) {
	var chs []Cardholder
	require.NoError(t, json.Unmarshal([]byte(
		`[{"cardholder_id":"C-001"},{"cardholder_id":42},{"cardholder_id":null},{}]`), &chs))
	require.Len(t, chs, 4)
	assert.Equal(t, ID("C-001"), chs[0].ID)
	assert.Equal(t, ID("42"), chs[1].ID)
	assert.Empty(t, chs[2].ID)
	assert.Empty(t, chs[3].ID)

	out, err := json.Marshal([]ID{"42", "C-001"})
	require.NoError(t, err)
	assert.JSONEq(t, `[42,"C-001"]`, string(out))
}

func TestMerchantSummary_RevenueFromString(t *testing.T) {
	var ms []MerchantSummary
	require.NoError(t, json.Unmarshal([]byte(`[{"merchant_name":"Acme","total_revenue":"1234.567"}]`), &ms))
	require.Len(t, ms, 1)
	assert.Equal(t, "Acme", ms[0].Name)
	assert.InDelta(t, 1234.567, ms[0].TotalRevenue.Float64(), 1e-9)
}

func TestSummarize(t *testing.T) {
	d := Dashboard{
		Cardholders:  []Cardholder{{ID: "1"}, {ID: "2"}},
		Transactions: []Transaction{{Amount: 10.5}, {Amount: 20}},
		TopMerchants: []MerchantSummary{{Name: "Acme"}},
		Failed:       []json.RawMessage{json.RawMessage(`{}`)},
	}
	s := Summarize(d)
	assert.Equal(t, 2, s.Cardholders)
	assert.Equal(t, 2, s.Transactions)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Merchants)
	assert.InDelta(t, 30.5, s.Volume, 1e-9)
}

func TestCardholderFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Cardholder{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Cardholder{FirstName: "Ada"}.FullName())
}
