package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/paydash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3) // UTF-8 block chars are 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

// axisScale is the y-axis layout for a bar chart.
type axisScale struct {
	ceiling   float64
	tickStep  float64
	intervals int
}

// niceScale picks a round tick step so the axis has at most height/2 intervals.
func niceScale(maxVal float64, height int) axisScale {
	if maxVal <= 0 {
		maxVal = 1
	}
	step := chartTickStep(maxVal)
	maxIntervals := max(2, height/2)
	for int(math.Ceil(maxVal/step)) > maxIntervals {
		step *= 2
	}
	ceiling := math.Ceil(maxVal/step) * step
	return axisScale{
		ceiling:   ceiling,
		tickStep:  step,
		intervals: max(1, int(math.Round(ceiling/step))),
	}
}

// sampleSeries reduces values (and labels, when they line up) to n evenly
// spaced points, always keeping the first and last.
func sampleSeries(values []float64, labels []string, n int) ([]float64, []string) {
	if n >= len(values) || n < 2 {
		return values, labels
	}
	sampled := make([]float64, n)
	var sampledLabels []string
	if len(labels) == len(values) {
		sampledLabels = make([]string, n)
	}
	for i := range sampled {
		src := i * (len(values) - 1) / (n - 1)
		sampled[i] = values[src]
		if sampledLabels != nil {
			sampledLabels[i] = labels[src]
		}
	}
	return sampled, sampledLabels
}

// BarChart renders a vertical bar chart with a y-axis and x-axis labels.
// When there are more points than fit at two columns per bar, the series is
// sampled down.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	scale := niceScale(maxVal, height)

	rowsPerTick := max(2, height/scale.intervals)
	chartH := rowsPerTick * scale.intervals

	yLabelW := max(4, len(formatAxisLabel(scale.ceiling))+1)
	tickLabels := make(map[int]string, scale.intervals)
	for i := 1; i <= scale.intervals; i++ {
		tickLabels[i*rowsPerTick] = formatAxisLabel(scale.tickStep * float64(i))
	}

	chartW := max(5, width-yLabelW-1)

	n := len(values)
	gap := 1
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else {
		gap = 0
	}
	if barW < 2 && n > 1 {
		values, labels = sampleSeries(values, labels, max(2, (chartW+1)/3))
		n = len(values)
		barW = 2
	}
	barW = min(barW, 6)
	axisLen := n*barW + max(0, n-1)*gap

	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	peakStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	barStyle := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := scale.ceiling * float64(row) / float64(chartH)
		rowBottom := scale.ceiling * float64(row-1) / float64(chartH)

		style := barStyle
		if float64(row)/float64(chartH) > 0.8 {
			style = peakStyle
		}

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			switch {
			case v >= rowTop:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				idx = max(1, min(idx, 8))
				b.WriteString(style.Render(strings.Repeat(string(partial[idx]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", yLabelW+1))
		b.WriteString(axisStyle.Render(xAxisLabels(labels, barW, gap, axisLen)))
	}

	return b.String()
}

// xAxisLabels lays labels out under their bars, skipping any that would
// overlap the previous one. The last label is always attempted.
func xAxisLabels(labels []string, barW, gap, axisLen int) string {
	buf := []byte(strings.Repeat(" ", axisLen))
	n := len(labels)

	lastEnd := -1
	place := func(i int) {
		lbl := labels[i]
		pos := i * (barW + gap)
		if pos+len(lbl) > axisLen {
			pos = axisLen - len(lbl)
		}
		if pos < 0 || pos <= lastEnd {
			return
		}
		copy(buf[pos:], lbl)
		lastEnd = pos + len(lbl)
	}

	for i := 0; i < n-1; i++ {
		place(i)
	}
	if n > 0 {
		place(n - 1)
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatAxisLabel formats a y-axis tick compactly: 1500 -> "1.5k".
func formatAxisLabel(v float64) string {
	trim := func(x float64, suffix string) string {
		if x == math.Trunc(x) {
			return fmt.Sprintf("%.0f%s", x, suffix)
		}
		return fmt.Sprintf("%.1f%s", x, suffix)
	}
	switch {
	case v >= 1e9:
		return trim(v/1e9, "B")
	case v >= 1e6:
		return trim(v/1e6, "M")
	case v >= 1e3:
		return trim(v/1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
