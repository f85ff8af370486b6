package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/paydash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so styled and unstyled paths are both exercised
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, total := range []int{80, 81, 119, 120} {
		for n := 1; n <= 4; n++ {
			sum := 0
			for _, w := range LayoutRow(total, n) {
				sum += w
			}
			if sum != total {
				t.Fatalf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
	if LayoutRow(80, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Total Cardholders", Value: "0", Color: theme.Active.Cardholders},
		{Label: "Total Transactions", Value: "12"},
		{Label: "Failed Transactions", Value: "3", Color: theme.Active.Failed},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}

	plain := ansi.Strip(row)
	for _, want := range []string{"Total Cardholders", "Total Transactions", "Failed Transactions", "12"} {
		if !strings.Contains(plain, want) {
			t.Errorf("metric row missing %q", want)
		}
	}
}

func TestContentCardTitle(t *testing.T) {
	theme.SetActive("terminal")
	defer theme.SetActive("flexoki-dark")

	card := ansi.Strip(ContentCard("Top Merchants", "Acme  $1.00", 40))
	lines := strings.Split(card, "\n")
	if len(lines) != 4 {
		t.Fatalf("card lines = %d, want 4 (border, title, body, border)", len(lines))
	}
	if !strings.Contains(lines[1], "Top Merchants") {
		t.Errorf("title line = %q", lines[1])
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(60); got != 56 {
		t.Errorf("CardInnerWidth(60) = %d, want 56", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Errorf("CardInnerWidth(5) = %d, want 10 (floor)", got)
	}
}
