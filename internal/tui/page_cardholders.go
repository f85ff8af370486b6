package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/paydash/internal/model"
	"github.com/theirongolddev/paydash/internal/tui/components"
	"github.com/theirongolddev/paydash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// cardholdersState holds the cardholders page state.
type cardholdersState struct {
	cursor int
	offset int // scroll offset for the list

	searching   bool
	searchInput textinput.Model
	searchQuery string
}

func newCardholdersState() cardholdersState {
	return cardholdersState{searchInput: newSearchInput()}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "name or email"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (s *cardholdersState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

func (s *cardholdersState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// filterCardholders keeps cardholders whose full name or email contains
// query, case-insensitively.
func filterCardholders(chs []model.Cardholder, query string) []model.Cardholder {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return chs
	}
	out := make([]model.Cardholder, 0, len(chs))
	for _, c := range chs {
		if strings.Contains(strings.ToLower(c.FullName()), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}

func (a App) searchFilteredCardholders() []model.Cardholder {
	return filterCardholders(a.dash.Cardholders, a.holders.searchQuery)
}

// updateCardholdersKey handles list navigation. handled is false for keys
// the page does not own.
func (a App) updateCardholdersKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.searchFilteredCardholders())
	switch key {
	case "/":
		a.holders.searching = true
		a.holders.searchInput = newSearchInput()
		a.holders.searchInput.SetValue(a.holders.searchQuery)
		cmd := a.holders.searchInput.Focus()
		return a, cmd, true
	case "esc":
		if a.holders.searchQuery != "" {
			a.holders.searchQuery = ""
			a.holders.cursor = 0
			a.holders.offset = 0
		}
		return a, nil, true
	case "j", "down":
		a.holders.move(1, n)
		return a, nil, true
	case "k", "up":
		a.holders.move(-1, n)
		return a, nil, true
	case "g":
		a.holders.cursor = 0
		a.holders.offset = 0
		return a, nil, true
	case "G":
		a.holders.cursor = n - 1
		a.holders.clamp(n)
		return a, nil, true
	}
	return a, nil, false
}

// updateCardholderSearch handles key events while in search mode.
func (a App) updateCardholderSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.holders.searchQuery = strings.TrimSpace(a.holders.searchInput.Value())
		a.holders.searching = false
		a.holders.cursor = 0
		a.holders.offset = 0
		return a, nil
	case "esc":
		a.holders.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.holders.searchInput, cmd = a.holders.searchInput.Update(msg)
	return a, cmd
}

func (a App) renderCardholdersPage(cw, h int) string {
	t := theme.Active
	hs := a.holders
	all := a.dash.Cardholders
	list := a.searchFilteredCardholders()

	innerW := components.CardInnerWidth(cw)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	emailStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var body strings.Builder
	switch {
	case hs.searching:
		body.WriteString(hs.searchInput.View())
		body.WriteString("\n")
	case hs.searchQuery != "":
		body.WriteString(dimStyle.Render(fmt.Sprintf("filter: %q  %d of %d  [esc] clear", hs.searchQuery, len(list), len(all))))
		body.WriteString("\n")
	}

	visible := max(3, h-4) // card border (2) + title (1) + hint line (1)
	if hs.searching || hs.searchQuery != "" {
		visible--
	}

	offset := hs.offset
	if hs.cursor < offset {
		offset = hs.cursor
	}
	if hs.cursor >= offset+visible {
		offset = hs.cursor - visible + 1
	}
	end := min(offset+visible, len(list))

	for i := offset; i < end; i++ {
		c := list[i]
		name := c.FullName()
		line := truncStr(name+" - "+c.Email, innerW)
		if i == hs.cursor {
			body.WriteString(selectedStyle.Render(fmt.Sprintf("%-*s", innerW, line)))
		} else if rest, ok := strings.CutPrefix(line, name); ok {
			body.WriteString(rowStyle.Render(name) + emailStyle.Render(rest))
		} else {
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	if len(list) > visible {
		body.WriteString(dimStyle.Render(fmt.Sprintf("%d-%d of %d", offset+1, end, len(list))))
	}

	title := fmt.Sprintf("Cardholders List (%d)", len(all))
	return components.ContentCard(title, strings.TrimRight(body.String(), "\n"), cw)
}
