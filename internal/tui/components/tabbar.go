package components

import (
	"strings"

	"github.com/theirongolddev/paydash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one routed page of the dashboard.
type Tab struct {
	Name   string
	Path   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs is the route table. The first entry is the fallback route.
var Tabs = []Tab{
	{Name: "Dashboard", Path: "/", Key: 'd', KeyPos: 0},
	{Name: "Cardholders", Path: "/cardholders", Key: 'c', KeyPos: 0},
}

const tabSeparator = "  "

// RouteIdx resolves a path to a tab index. Unknown paths, including the
// empty path, fall back to the dashboard.
func RouteIdx(path string) int {
	p := strings.TrimSpace(path)
	if p != "/" {
		p = strings.TrimRight(p, "/")
	}
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for i, tab := range Tabs {
		if tab.Path == p {
			return i
		}
	}
	return 0
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabVisualWidth is the rendered width of a tab label. Inactive tabs carry
// the [k] shortcut brackets, active ones do not.
func TabVisualWidth(tab Tab, active bool) int {
	w := len(tab.Name)
	if !active {
		w += 2
		if tab.KeyPos < 0 {
			w++
		}
	}
	return w
}

// TabAt maps an x offset on the tab bar row to a tab index, or -1.
func TabAt(x, activeIdx int) int {
	pos := 1 // leading space
	for i, tab := range Tabs {
		w := TabVisualWidth(tab, i == activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + len(tabSeparator)
	}
	return -1
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Underline(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			parts = append(parts, inactiveStyle.Render(tab.Name[:tab.KeyPos])+
				dimKeyStyle.Render("[")+keyStyle.Render(tab.Name[tab.KeyPos:tab.KeyPos+1])+dimKeyStyle.Render("]")+
				inactiveStyle.Render(tab.Name[tab.KeyPos+1:]))
		} else {
			parts = append(parts, inactiveStyle.Render(tab.Name)+
				dimKeyStyle.Render("[")+keyStyle.Render(string(tab.Key))+dimKeyStyle.Render("]"))
		}
	}

	bar := " " + strings.Join(parts, tabSeparator)
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}
