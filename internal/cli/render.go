package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/paydash/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	moneyStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	barStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	// Calculate column widths
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			if w := lipgloss.Width(h); w > widths[i] {
				widths[i] = w
			}
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i >= numCols {
					continue
				}
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var b strings.Builder

	// Title above table if present
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	// Top border
	b.WriteString(dimStyle.Render("╭"))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < numCols-1 {
			b.WriteString(dimStyle.Render("┬"))
		}
	}
	b.WriteString(dimStyle.Render("╮"))
	b.WriteString("\n")

	// Header row
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			w := widths[i]
			padded := " " + PadLabel(h, w) + " "
			b.WriteString(headerStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")

		// Header separator
		b.WriteString(dimStyle.Render("├"))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("┼"))
			}
		}
		b.WriteString(dimStyle.Render("┤"))
		b.WriteString("\n")
	}

	// Data rows
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			// Separator row
			b.WriteString(dimStyle.Render("├"))
			for i, w := range widths {
				b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
				if i < numCols-1 {
					b.WriteString(dimStyle.Render("┼"))
				}
			}
			b.WriteString(dimStyle.Render("┤"))
			b.WriteString("\n")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			w := widths[i]
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			// Right-align numeric columns (all except first)
			var padded string
			if i == 0 {
				padded = " " + PadLabel(cell, w) + " "
			} else {
				padded = " " + padLeft(cell, w) + " "
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	// Bottom border
	b.WriteString(dimStyle.Render("╰"))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < numCols-1 {
			b.WriteString(dimStyle.Render("┴"))
		}
	}
	b.WriteString(dimStyle.Render("╯"))
	b.WriteString("\n")

	return b.String()
}

// RenderPlaceholder renders a dim "no data" line.
func RenderPlaceholder(msg string) string {
	return "  " + mutedStyle.Render(msg) + "\n"
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders one labeled bar scaled against maxValue.
// The label is cut to labelW display columns and padded to that width.
func RenderHorizontalBar(label string, labelW int, value, maxValue float64, maxWidth int) string {
	barLen := 0
	if maxValue > 0 {
		barLen = int(value / maxValue * float64(maxWidth))
	}
	if barLen < 0 {
		barLen = 0
	}
	return fmt.Sprintf("  %s %s %s",
		mutedStyle.Render(PadLabel(label, labelW)),
		barStyle.Render(strings.Repeat("█", barLen)),
		moneyStyle.Render(FormatMoney(value)))
}

// PadLabel truncates s to w display columns, ending in "…" when cut, and
// pads it with spaces to exactly w columns.
func PadLabel(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "…")
	if pad := w - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func padLeft(s string, w int) string {
	s = ansi.Truncate(s, w, "…")
	if pad := w - lipgloss.Width(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

// maxTrendBars is the point count above which the trend collapses to a sparkline.
const maxTrendBars = 30

// RenderTrend renders the transactions trend, or a placeholder when empty.
func RenderTrend(points []model.TrendPoint, width int) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(headerStyle.Render("Transactions Trend"))
	b.WriteString("\n")

	if len(points) == 0 {
		b.WriteString(RenderPlaceholder("No transaction data available."))
		return b.String()
	}

	values := make([]float64, len(points))
	peak, total := 0.0, 0.0
	labelW := 0
	for i, p := range points {
		values[i] = p.Amount
		total += p.Amount
		if p.Amount > peak {
			peak = p.Amount
		}
		labelW = max(labelW, lipgloss.Width(p.Name))
	}

	if len(points) > maxTrendBars {
		fmt.Fprintf(&b, "  %s\n", barStyle.Render(RenderSparkline(values)))
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(fmt.Sprintf("%d transactions  peak %s  total %s",
			len(points), FormatMoney(peak), FormatCompactMoney(total))))
		return b.String()
	}

	barW := width - labelW - 16
	if barW < 10 {
		barW = 10
	}
	for _, p := range points {
		b.WriteString(RenderHorizontalBar(p.Name, labelW, p.Amount, peak, barW))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderDashboard renders the full dashboard page for non-interactive output.
func RenderDashboard(d model.Dashboard, width int) string {
	var b strings.Builder

	b.WriteString(RenderTitle("Visa Payment Dashboard"))
	b.WriteString("\n\n")

	b.WriteString(RenderTable(Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Cardholders", FormatNumber(int64(len(d.Cardholders)))},
			{"Total Transactions", FormatNumber(int64(len(d.Transactions)))},
			{"Failed Transactions", FormatNumber(int64(d.FailedCount()))},
		},
	}))
	b.WriteString("\n")

	if len(d.TopMerchants) > 0 {
		rows := make([][]string, 0, len(d.TopMerchants))
		for _, m := range d.TopMerchants {
			rows = append(rows, []string{m.Name, FormatMoney(m.TotalRevenue.Float64())})
		}
		b.WriteString(RenderTable(Table{
			Title:   "Top Merchants",
			Headers: []string{"Merchant", "Revenue"},
			Rows:    rows,
		}))
	} else {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render("Top Merchants"))
		b.WriteString("\n")
		b.WriteString(RenderPlaceholder("No merchant data available."))
	}
	b.WriteString("\n")

	b.WriteString(RenderTrend(model.TrendSeries(d.Transactions), width))
	return b.String()
}

// RenderCardholders renders the cardholders list page.
func RenderCardholders(chs []model.Cardholder) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(headerStyle.Render("Cardholders List"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  (%d)", len(chs))))
	b.WriteString("\n")
	for _, c := range chs {
		fmt.Fprintf(&b, "  • %s - %s\n", valueStyle.Render(c.FullName()), mutedStyle.Render(c.Email))
	}
	return b.String()
}
