package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/theirongolddev/paydash/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestRenderDashboard_Empty(t *testing.T) {
	out := ansi.Strip(RenderDashboard(model.Dashboard{}, 80))

	assert.Contains(t, out, "Visa Payment Dashboard")
	assert.Regexp(t, `Total Cardholders\s*│\s*0\s*│`, out)
	assert.Regexp(t, `Total Transactions\s*│\s*0\s*│`, out)
	assert.Regexp(t, `Failed Transactions\s*│\s*0\s*│`, out)
	assert.Contains(t, out, "No merchant data available.")
	assert.Contains(t, out, "No transaction data available.")
}

func TestRenderDashboard_Populated(t *testing.T) {
	d := model.Dashboard{
		Cardholders:  []model.Cardholder{{ID: "1"}, {ID: "2"}, {ID: "3"}},
		Transactions: []model.Transaction{{Amount: 10.5}, {Amount: 20}},
		TopMerchants: []model.MerchantSummary{
			{Name: "Acme Corp", TotalRevenue: 1500},
			{Name: "Globex", TotalRevenue: 99.999},
		},
		Failed: []json.RawMessage{json.RawMessage(`{}`)},
	}
	out := ansi.Strip(RenderDashboard(d, 80))

	assert.Regexp(t, `Total Cardholders\s*│\s*3\s*│`, out)
	assert.Regexp(t, `Total Transactions\s*│\s*2\s*│`, out)
	assert.Regexp(t, `Failed Transactions\s*│\s*1\s*│`, out)
	assert.Regexp(t, `Acme Corp\s*│\s*\$1500\.00`, out)
	assert.Regexp(t, `Globex\s*│\s*\$100\.00`, out)
	assert.NotContains(t, out, "No merchant data available.")

	assert.Contains(t, out, "Tx 1")
	assert.Contains(t, out, "Tx 2")
	assert.Contains(t, out, "$10.50")
	assert.Contains(t, out, "$20.00")
	assert.NotContains(t, out, "No transaction data available.")
}

func TestRenderTrend_SparklineForLongSeries(t *testing.T) {
	points := make([]model.TrendPoint, maxTrendBars+5)
	for i := range points {
		points[i] = model.TrendPoint{Name: "Tx", Amount: float64(i)}
	}
	out := ansi.Strip(RenderTrend(points, 80))
	assert.Contains(t, out, "35 transactions")
	assert.Contains(t, out, "█")
}

func TestRenderCardholders(t *testing.T) {
	empty := ansi.Strip(RenderCardholders(nil))
	assert.Contains(t, empty, "Cardholders List")
	assert.Contains(t, empty, "(0)")
	assert.NotContains(t, empty, "•")

	out := ansi.Strip(RenderCardholders([]model.Cardholder{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
	}))
	assert.Contains(t, out, "Ada Lovelace - ada@example.com")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("empty sparkline = %q", got)
	}
	if got := RenderSparkline([]float64{0, 1}); got != "▁█" {
		t.Errorf("sparkline = %q, want ▁█", got)
	}
}

func TestPadLabel(t *testing.T) {
	assert.Equal(t, "Acme  ", PadLabel("Acme", 6))
	assert.Equal(t, "Café  ", PadLabel("Café", 6))

	cut := PadLabel(strings.Repeat("é", 30), 10)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, strings.Repeat("é", 9)+"…", cut)
	assert.Equal(t, 10, lipgloss.Width(cut))

	assert.Empty(t, PadLabel("x", 0))
}

func TestRenderHorizontalBar_AlignsNonASCII(t *testing.T) {
	ascii := ansi.Strip(RenderHorizontalBar("Acme", 8, 10, 10, 10))
	accented := ansi.Strip(RenderHorizontalBar("Crêperie", 8, 10, 10, 10))

	assert.Equal(t, lipgloss.Width(ascii), lipgloss.Width(accented))
	assert.True(t, utf8.ValidString(accented))
}

func TestRenderTable_PadsByDisplayWidth(t *testing.T) {
	out := ansi.Strip(RenderTable(Table{
		Headers: []string{"Merchant", "Revenue"},
		Rows: [][]string{
			{"Acme", "$1.00"},
			{"Café Noir", "$2.00"},
		},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, line := range lines[1:] {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(line), "line %q", line)
	}
}
