package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestNiceScale(t *testing.T) {
	s := niceScale(20, 10)
	if s.ceiling < 20 {
		t.Fatalf("ceiling %.1f below max 20", s.ceiling)
	}
	if s.intervals > 5 {
		t.Fatalf("intervals = %d, want <= height/2", s.intervals)
	}
	if got := niceScale(0, 10).ceiling; got != 1 {
		t.Fatalf("zero max ceiling = %.1f, want 1", got)
	}
}

func TestSampleSeriesKeepsEnds(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	labels := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	got, gotLabels := sampleSeries(values, labels, 4)
	if len(got) != 4 || len(gotLabels) != 4 {
		t.Fatalf("sampled len = %d/%d, want 4", len(got), len(gotLabels))
	}
	if got[0] != 0 || got[3] != 9 {
		t.Fatalf("sampled ends = %.0f..%.0f, want 0..9", got[0], got[3])
	}
	if gotLabels[0] != "a" || gotLabels[3] != "j" {
		t.Fatalf("sampled labels = %v", gotLabels)
	}

	same, _ := sampleSeries(values, nil, 20)
	if len(same) != len(values) {
		t.Fatal("sampling to more points than available should be a no-op")
	}
}

func TestBarChartLabelsAndHeight(t *testing.T) {
	out := ansi.Strip(BarChart([]float64{10.5, 20}, []string{"Tx 1", "Tx 2"}, lipgloss.Color("4"), 40, 8))
	lines := strings.Split(out, "\n")

	last := lines[len(lines)-1]
	if !strings.Contains(last, "Tx 1") || !strings.Contains(last, "Tx 2") {
		t.Fatalf("x-axis labels = %q", last)
	}
	if !strings.Contains(out, "└") {
		t.Fatal("missing x-axis")
	}
	if !strings.Contains(out, "█") {
		t.Fatal("missing bars")
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	out := ansi.Strip(BarChart([]float64{1, 2, 3}, nil, lipgloss.Color("4"), 10, 2))
	if strings.Contains(out, "\n") {
		t.Fatalf("narrow chart should be a one-line sparkline, got %q", out)
	}
}

func TestFormatAxisLabel(t *testing.T) {
	cases := map[float64]string{
		0.5:     "0.50",
		20:      "20",
		1000:    "1k",
		1500:    "1.5k",
		2000000: "2M",
	}
	for in, want := range cases {
		if got := formatAxisLabel(in); got != want {
			t.Errorf("formatAxisLabel(%v) = %q, want %q", in, got, want)
		}
	}
}
