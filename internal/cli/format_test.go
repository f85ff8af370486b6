package cli

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{10.5, "$10.50"},
		{99.999, "$100.00"},
		{1234.567, "$1234.57"},
		{-3, "-$3.00"},
		{1.005, "$1.00"},
		{1.015, "$1.01"},
		{2.675, "$2.67"},
		{0.125, "$0.13"},
		{-0.001, "$0.00"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCompactMoney(t *testing.T) {
	if got := FormatCompactMoney(42); got != "$42.00" {
		t.Errorf("FormatCompactMoney(42) = %q", got)
	}
	if got := FormatCompactMoney(25_000); got != "$25.0K" {
		t.Errorf("FormatCompactMoney(25000) = %q", got)
	}
	if got := FormatCompactMoney(2_500_000); got != "$2.5M" {
		t.Errorf("FormatCompactMoney(2.5M) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if got := FormatAge(time.Time{}, now); got != "never" {
		t.Errorf("zero time = %q, want never", got)
	}
	if got := FormatAge(now.Add(-42*time.Second), now); got != "42s ago" {
		t.Errorf("42s = %q", got)
	}
	if got := FormatAge(now.Add(-5*time.Minute), now); got != "5m ago" {
		t.Errorf("5m = %q", got)
	}
	if got := FormatAge(now.Add(-125*time.Minute), now); got != "2h 5m ago" {
		t.Errorf("125m = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if FormatDelta(3) != "+3" || FormatDelta(-1) != "-1" || FormatDelta(0) != "0" {
		t.Error("FormatDelta sign handling")
	}
}
