package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/paydash/internal/cli"
	"github.com/theirongolddev/paydash/internal/model"
	"github.com/theirongolddev/paydash/internal/tui/components"
	"github.com/theirongolddev/paydash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	tabDashboard = iota
	tabCardholders
)

const trendChartHeight = 10

func (a App) renderDashboardPage(cw int) string {
	t := theme.Active
	d := a.dash
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center).
		Render("Visa Payment Dashboard"))
	b.WriteString("\n")

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total Cardholders", Value: cli.FormatNumber(int64(len(d.Cardholders))), Color: t.Cardholders},
		{Label: "Total Transactions", Value: cli.FormatNumber(int64(len(d.Transactions))), Color: t.Transactions},
		{Label: "Failed Transactions", Value: cli.FormatNumber(int64(d.FailedCount())), Color: t.Failed},
	}, cw))
	b.WriteString("\n")

	thirds := components.LayoutRow(cw, 3)
	leftW := thirds[0]
	rightW := cw - leftW

	merchantsText := merchantsBody(d.TopMerchants, components.CardInnerWidth(leftW))
	trendText := trendBody(model.TrendSeries(d.Transactions), components.CardInnerWidth(rightW))

	// Equalize card heights so the row reads as one band.
	bodyH := max(lipgloss.Height(merchantsText), lipgloss.Height(trendText))
	merchants := components.ContentCard("Top Merchants", padHeight(merchantsText, bodyH), leftW)
	trend := components.ContentCard("Transactions Trend", padHeight(trendText, bodyH), rightW)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, merchants, trend))
	return b.String()
}

// merchantsBody lists each merchant with its revenue, right aligned.
func merchantsBody(merchants []model.MerchantSummary, innerW int) string {
	if len(merchants) == 0 {
		return components.Placeholder("No merchant data available.", innerW)
	}

	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	moneyStyle := lipgloss.NewStyle().Foreground(t.Money).Bold(true)

	lines := make([]string, 0, len(merchants))
	for _, m := range merchants {
		revenue := cli.FormatMoney(m.TotalRevenue.Float64())
		nameW := max(1, innerW-len(revenue)-1)
		name := truncStr(m.Name, nameW)
		gap := max(1, innerW-lipgloss.Width(name)-len(revenue))
		lines = append(lines, nameStyle.Render(name)+strings.Repeat(" ", gap)+moneyStyle.Render(revenue))
	}
	return strings.Join(lines, "\n")
}

// trendBody draws the transactions bar chart with a caption.
func trendBody(points []model.TrendPoint, innerW int) string {
	if len(points) == 0 {
		return components.Placeholder("No transaction data available.", innerW)
	}

	values := make([]float64, len(points))
	labels := make([]string, len(points))
	total := 0.0
	for i, p := range points {
		values[i] = p.Amount
		labels[i] = p.Name
		total += p.Amount
	}

	t := theme.Active
	caption := lipgloss.NewStyle().Foreground(t.TextMuted).Render(
		fmt.Sprintf("%d transactions · total %s", len(points), cli.FormatMoney(total)))

	return components.BarChart(values, labels, t.Transactions, innerW, trendChartHeight) + "\n" + caption
}
