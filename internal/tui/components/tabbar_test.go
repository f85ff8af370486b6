package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRouteIdx(t *testing.T) {
	cases := map[string]int{
		"":              0,
		"/":             0,
		"/cardholders":  1,
		"/cardholders/": 1,
		"cardholders":   1,
		"/nope":         0,
	}
	for path, want := range cases {
		if got := RouteIdx(path); got != want {
			t.Errorf("RouteIdx(%q) = %d, want %d", path, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('d'); got != 0 {
		t.Fatalf("d -> %d, want 0", got)
	}
	if got := TabIdxByKey('c'); got != 1 {
		t.Fatalf("c -> %d, want 1", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("z -> %d, want -1", got)
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	for active := range Tabs {
		bar := ansi.Strip(RenderTabBar(active, 200))
		want := 1
		for i, tab := range Tabs {
			if i > 0 {
				want += len(tabSeparator)
			}
			want += TabVisualWidth(tab, i == active)
		}
		if len(bar) != want {
			t.Fatalf("active=%d: rendered %q (%d cols), widths sum to %d", active, bar, len(bar), want)
		}
	}
}

func TestTabAt(t *testing.T) {
	bar := ansi.Strip(RenderTabBar(0, 200))
	x := strings.Index(bar, "[C]")
	if got := TabAt(x, 0); got != 1 {
		t.Fatalf("TabAt(%d) = %d, want 1 (bar %q)", x, got, bar)
	}
	if got := TabAt(1, 0); got != 0 {
		t.Fatalf("TabAt(1) = %d, want 0", got)
	}
	if got := TabAt(0, 0); got != -1 {
		t.Fatalf("TabAt(0) = %d, want -1", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	out := ansi.Strip(RenderStatusBar(100, StatusInfo{Age: "5s ago", BaseURL: "http://x/api"}))
	if !strings.Contains(out, "updated 5s ago") || !strings.Contains(out, "http://x/api") {
		t.Fatalf("status bar = %q", out)
	}

	out = ansi.Strip(RenderStatusBar(100, StatusInfo{Age: "5s ago", Refreshing: true}))
	if !strings.Contains(out, "refreshing") || strings.Contains(out, "updated") {
		t.Fatalf("refreshing status bar = %q", out)
	}
}
