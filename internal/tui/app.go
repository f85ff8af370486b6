// Package tui provides the interactive Bubble Tea dashboard for paydash.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/paydash/internal/api"
	"github.com/theirongolddev/paydash/internal/cli"
	"github.com/theirongolddev/paydash/internal/config"
	"github.com/theirongolddev/paydash/internal/model"
	"github.com/theirongolddev/paydash/internal/tui/components"
	"github.com/theirongolddev/paydash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// App is the root Bubble Tea model.
type App struct {
	client *api.Client

	// Data. Each collection is replaced by its own fetch message.
	dash    model.Dashboard
	loaded  bool
	pending int // fetches outstanding in the current round

	// Refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	holders cardholdersState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner  spinner.Model
	progress progress.Model
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model opened on route.
func NewApp(client *api.Client, route string) App {
	t := theme.Active
	cfg := loadConfigOrDefault()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	pb := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithoutPercentage(),
		progress.WithWidth(36),
	)

	return App{
		client:          client,
		activeTab:       components.RouteIdx(route),
		pending:         fetchCount,
		needSetup:       !config.Exists(),
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: cfg.RefreshInterval(),
		spinner:         sp,
		progress:        pb,
		holders:         newCardholdersState(),
		setupVals:       &SetupValues{},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		tickCmd(),
		fetchAllCmd(a.client),
	)
}

// startRefresh begins a new fetch round.
func (a *App) startRefresh() tea.Cmd {
	a.refreshing = true
	a.pending = fetchCount
	return fetchAllCmd(a.client)
}

// fetchDone records one completed fetch and finishes the round when it was
// the last one outstanding.
func (a *App) fetchDone() tea.Cmd {
	if a.pending > 0 {
		a.pending--
	}
	if a.pending > 0 {
		return nil
	}

	now := time.Now()
	a.dash.FetchedAt = now
	a.lastRefresh = now
	a.refreshing = false
	a.holders.clamp(len(a.searchFilteredCardholders()))

	if !a.loaded {
		a.loaded = true
		if a.needSetup {
			a.setupForm = newSetupForm(a.client.BaseURL(), a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a.setupForm.Init()
		}
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case CardholdersMsg:
		a.dash.Cardholders = msg.Cardholders
		next := a.fetchDone()
		return a, next

	case TransactionsMsg:
		a.dash.Transactions = msg.Transactions
		next := a.fetchDone()
		return a, next

	case TopMerchantsMsg:
		a.dash.TopMerchants = msg.Merchants
		next := a.fetchDone()
		return a, next

	case FailedTransactionsMsg:
		a.dash.Failed = msg.Failed
		next := a.fetchDone()
		return a, next

	case spinner.TickMsg:
		if !a.loaded || a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing &&
			time.Since(a.lastRefresh) >= a.refreshInterval {
			cmds = append(cmds, a.startRefresh(), a.spinner.Tick)
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		if key == "q" {
			return a, tea.Quit
		}
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Cardholder search intercepts all keys while typing
	if a.activeTab == tabCardholders && a.holders.searching {
		return a.updateCardholderSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == tabCardholders {
		if m, cmd, handled := a.updateCardholdersKey(key); handled {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit

	case "r":
		if !a.refreshing {
			next := a.startRefresh()
			return a, tea.Batch(next, a.spinner.Tick)
		}
		return a, nil

	case "R":
		a.autoRefresh = !a.autoRefresh
		// Persist to config (best-effort, ignore errors)
		cfg := loadConfigOrDefault()
		cfg.TUI.AutoRefresh = a.autoRefresh
		_ = config.Save(cfg)
		return a, nil

	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil

	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if runes := []rune(key); len(runes) == 1 {
		if idx := components.TabIdxByKey(runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabCardholders && !a.holders.searching {
			a.holders.move(-1, len(a.searchFilteredCardholders()))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabCardholders && !a.holders.searching {
			a.holders.move(1, len(a.searchFilteredCardholders()))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := components.TabAt(msg.X, a.activeTab); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.needSetup = false
		a.setupForm = nil
		next := a.applySetup()
		return a, next
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  paydash needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	done := fetchCount - a.pending

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ paydash"))
	b.WriteString(subtitleStyle.Render(" · Visa Payment Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Fetching from " + a.client.BaseURL()))
	b.WriteString("\n\n")
	b.WriteString(a.progress.ViewAs(float64(done) / float64(fetchCount)))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d / %d endpoints", done, fetchCount)))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"d c", "Dashboard / Cardholders"},
			{"← →", "Previous / Next page"},
			{"j k", "Move through cardholders"},
			{"g G", "First / Last cardholder"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"/", "Search cardholders"},
			{"Esc", "Clear search"},
			{"r", "Refresh data"},
			{"R", "Toggle auto-refresh"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-6s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)

	age := ""
	if !a.lastRefresh.IsZero() {
		age = cli.FormatAge(a.lastRefresh, time.Now())
	}
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Age:         age,
		Refreshing:  a.refreshing,
		AutoRefresh: a.autoRefresh,
		BaseURL:     a.client.BaseURL(),
	})

	contentH := max(minContentHeight, a.height-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch a.activeTab {
	case tabCardholders:
		content = a.renderCardholdersPage(cw, contentH)
	default:
		content = a.renderDashboardPage(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
