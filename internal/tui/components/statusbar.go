package components

import (
	"strings"

	"github.com/theirongolddev/paydash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the bottom bar reports about the data source.
type StatusInfo struct {
	Age         string // "" until the first load completes
	Refreshing  bool
	AutoRefresh bool
	BaseURL     string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [r]efresh  [q]uit"
	if info.AutoRefresh {
		left += "  " + lipgloss.NewStyle().Foreground(t.Accent).Render("auto")
	}

	var right []string
	switch {
	case info.Refreshing:
		right = append(right, lipgloss.NewStyle().Foreground(t.AccentBright).Render("refreshing…"))
	case info.Age != "":
		right = append(right, "updated "+info.Age)
	}
	if info.BaseURL != "" {
		right = append(right, lipgloss.NewStyle().Foreground(t.TextDim).Render(info.BaseURL))
	}
	rightStr := strings.Join(right, "  ")
	if rightStr != "" {
		rightStr += " "
	}

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(rightStr))
	if padding == 0 {
		// Too narrow for both sides; keep the key hints.
		return style.MaxWidth(width).Render(left)
	}
	return style.Render(left + strings.Repeat(" ", padding) + rightStr)
}
