// Package theme defines color themes for the paydash TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Selected row
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Focus and loading borders
	TextDim      lipgloss.Color // Hints, placeholders
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color // Active tab, headings
	AccentBright lipgloss.Color // Title, chart peaks

	// Semantic roles for the three summary cards.
	Cardholders  lipgloss.Color
	Transactions lipgloss.Color
	Failed       lipgloss.Color
	Money        lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Cardholders:  lipgloss.Color("#4385BE"),
	Transactions: lipgloss.Color("#879A39"),
	Failed:       lipgloss.Color("#D14D41"),
	Money:        lipgloss.Color("#A3B859"),
}

// VisaNavy uses the card network's navy and gold on a deep blue surface.
var VisaNavy = Theme{
	Name:         "visa-navy",
	Background:   lipgloss.Color("#0B0E2E"),
	Surface:      lipgloss.Color("#141A4A"),
	SurfaceHover: lipgloss.Color("#1F2766"),
	Border:       lipgloss.Color("#2E3880"),
	BorderAccent: lipgloss.Color("#F7B600"),
	TextDim:      lipgloss.Color("#5A639E"),
	TextMuted:    lipgloss.Color("#A3ABDB"),
	TextPrimary:  lipgloss.Color("#F4F6FF"),
	Accent:       lipgloss.Color("#F7B600"),
	AccentBright: lipgloss.Color("#FFD35C"),
	Cardholders:  lipgloss.Color("#5C8DFF"),
	Transactions: lipgloss.Color("#4CC38A"),
	Failed:       lipgloss.Color("#FF5C6C"),
	Money:        lipgloss.Color("#4CC38A"),
}

// TokyoNight is a cool blue/purple theme inspired by Tokyo city lights.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   lipgloss.Color("#1A1B26"),
	Surface:      lipgloss.Color("#24283B"),
	SurfaceHover: lipgloss.Color("#343A52"),
	Border:       lipgloss.Color("#565F89"),
	BorderAccent: lipgloss.Color("#7AA2F7"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FF"),
	Cardholders:  lipgloss.Color("#7AA2F7"),
	Transactions: lipgloss.Color("#9ECE6A"),
	Failed:       lipgloss.Color("#F7768E"),
	Money:        lipgloss.Color("#9ECE6A"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Cardholders:  lipgloss.Color("4"),
	Transactions: lipgloss.Color("2"),
	Failed:       lipgloss.Color("1"),
	Money:        lipgloss.Color("10"),
}

// All available themes.
var All = []Theme{FlexokiDark, VisaNavy, TokyoNight, Terminal}

// Names returns the names of all themes in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
