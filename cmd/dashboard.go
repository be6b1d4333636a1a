package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/services"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Launch interactive dashboard (alias: dash)",
	Long: `Launch a full-screen dashboard of the inventory.

The dashboard shows the status counters, a filterable list of computers
and the selected computer's details and change history.

Keyboard Shortcuts:
  ↑/k ↓/j     Move selection
  g / G       Jump to top / bottom
  /           Search name, brand, model and OS
  s           Cycle status filter
  PgUp/PgDn   Scroll details
  r           Reload from storage
  Esc         Clear search
  ?           Toggle help
  q           Quit`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	m := newDashboardModel(getContext(), listService, statsService)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}

// Dashboard view modes
type viewMode int

const (
	modeList viewMode = iota
	modeSearch
	modeHelp
)

// statusCycle is the order the status filter steps through; "" means all
var statusCycle = []domain.AssetStatus{"", domain.StatusActive, domain.StatusMaintenance, domain.StatusRetired}

type dashboardModel struct {
	ctx      context.Context
	list     *services.ListService
	stats    *services.StatsService
	assets   []domain.Asset // filtered view
	summary  domain.Stats
	cursor   int
	offset   int
	status   int // index into statusCycle
	mode     viewMode
	search   textinput.Model
	details  viewport.Model
	help     help.Model
	keys     keyMap
	width    int
	height   int
	ready    bool
	message  string
	loadedAt time.Time
}

// Key bindings
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Search key.Binding
	Status key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
	Escape key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Search, k.Status, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Search, k.Status, k.Reload},
		{k.Help, k.Escape, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "bottom"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Status: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status filter"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear search"),
	),
}

func newDashboardModel(ctx context.Context, list *services.ListService, stats *services.StatsService) dashboardModel {
	ti := textinput.New()
	ti.Placeholder = "Search computers..."
	ti.CharLimit = 100
	ti.Width = 50

	vp := viewport.New(60, 20)

	m := dashboardModel{
		ctx:     ctx,
		list:    list,
		stats:   stats,
		mode:    modeList,
		search:  ti,
		details: vp,
		help:    help.New(),
		keys:    keys,
	}
	m.refresh()
	return m
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

// refresh re-runs the query and summary and keeps the cursor in range
func (m *dashboardModel) refresh() {
	resp, err := m.list.Execute(m.ctx, services.ListRequest{
		Search: m.search.Value(),
		Status: statusCycle[m.status],
	})
	if err != nil {
		m.message = err.Error()
		return
	}
	m.assets = resp.Assets
	m.summary = m.stats.Execute(m.ctx)
	m.loadedAt = time.Now()

	if m.cursor >= len(m.assets) {
		m.cursor = len(m.assets) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustViewport()
	m.loadDetails()
}

func (m *dashboardModel) loadDetails() {
	if len(m.assets) == 0 {
		m.details.SetContent(ui.StyleSubtle.Render("No computer selected"))
		return
	}
	view, err := m.list.View(m.ctx, m.assets[m.cursor].ID)
	if err != nil {
		m.details.SetContent(ui.FormatError(err.Error()))
		return
	}
	m.details.SetContent(renderAssetView(view, time.Now()))
	m.details.GotoTop()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

		m.details.Width = msg.Width - m.listWidth() - 4
		m.details.Height = m.bodyHeight()
		m.adjustViewport()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeHelp:
			if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
				m.mode = modeList
			}
			return m, nil
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	m.details, cmd = m.details.Update(msg)
	return m, cmd
}

func (m dashboardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.Top):
		m.move(-len(m.assets))

	case key.Matches(msg, m.keys.Bottom):
		m.move(len(m.assets))

	case msg.Type == tea.KeyPgUp:
		m.details.ViewUp()

	case msg.Type == tea.KeyPgDown:
		m.details.ViewDown()

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Status):
		m.status = (m.status + 1) % len(statusCycle)
		m.refresh()

	case key.Matches(msg, m.keys.Reload):
		if inventoryRepo != nil {
			inventoryRepo.Reload(m.ctx)
		}
		m.refresh()
		m.message = "Reloaded"

	case key.Matches(msg, m.keys.Escape):
		m.search.SetValue("")
		m.refresh()

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	}

	return m, nil
}

func (m dashboardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		m.search.Blur()
		m.search.SetValue("")
		m.cursor = 0
		m.refresh()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.mode = modeList
		m.search.Blur()
		return m, nil

	case msg.Type == tea.KeyUp:
		m.move(-1)
		return m, nil

	case msg.Type == tea.KeyDown:
		m.move(1)
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m *dashboardModel) move(delta int) {
	if len(m.assets) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next > len(m.assets)-1 {
		next = len(m.assets) - 1
	}
	if next == m.cursor {
		return
	}
	m.cursor = next
	m.adjustViewport()
	m.loadDetails()
}

func (m dashboardModel) listWidth() int {
	w := m.width * 2 / 5
	if w < 30 {
		w = 30
	}
	return w
}

func (m dashboardModel) bodyHeight() int {
	h := m.height - 10 // header, search bar, footer
	if h < 3 {
		h = 3
	}
	return h
}

func (m *dashboardModel) adjustViewport() {
	listHeight := m.bodyHeight()

	// Scroll down
	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}

	// Scroll up
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "\n  Loading dashboard..."
	}

	if m.mode == modeHelp {
		return m.viewHelp()
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.renderSearchBar())
	s.WriteString("\n")

	list := lipgloss.NewStyle().Width(m.listWidth()).Render(m.renderList())
	details := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Render(m.details.View())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", details))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m dashboardModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	title := titleStyle.Render(ui.IconAsset + " Inventory")
	counters := strings.Join([]string{
		ui.StyleSuccess.Render(fmt.Sprintf("%d active", m.summary.Active)),
		ui.StyleWarning.Render(fmt.Sprintf("%d maintenance", m.summary.Maintenance)),
		ui.StyleMuted.Render(fmt.Sprintf("%d retired", m.summary.Retired)),
		ui.StyleInfo.Render(fmt.Sprintf("%d changes in %dd", m.summary.RecentChanges, domain.RecentWindowDays)),
	}, "  ")

	spacer := m.width - lipgloss.Width(title) - lipgloss.Width(counters) - 1
	if spacer < 1 {
		spacer = 1
	}
	return title + strings.Repeat(" ", spacer) + counters
}

func (m dashboardModel) renderSearchBar() string {
	borderColor := ui.ColorMuted
	if m.mode == modeSearch {
		borderColor = ui.ColorPrimary
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(m.width - 4)

	content := m.search.View()
	if m.mode != modeSearch && m.search.Value() == "" {
		content = ui.StyleMuted.Render("Press / to search...")
	}

	filter := "all"
	if s := statusCycle[m.status]; s != "" {
		filter = ui.FormatStatus(string(s))
	}
	return searchStyle.Render(content + ui.StyleMuted.Render("   status: ") + filter)
}

func (m dashboardModel) renderList() string {
	if len(m.assets) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Padding(1, 2)
		if m.summary.TotalAssets == 0 {
			return emptyStyle.Render("No computers yet. Add one with 'inv add -i'.")
		}
		return emptyStyle.Render("No computers match the current filters.")
	}

	var s strings.Builder
	end := m.offset + m.bodyHeight()
	if end > len(m.assets) {
		end = len(m.assets)
	}

	nameWidth := m.listWidth() - 16
	if nameWidth < 10 {
		nameWidth = 10
	}

	for i := m.offset; i < end; i++ {
		a := m.assets[i]
		cursor := "  "
		nameStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault)
		if i == m.cursor {
			cursor = ui.StylePrimary.Render("▶ ")
			nameStyle = ui.StylePrimary
		}
		name := ui.Truncate(a.Name, nameWidth)
		s.WriteString(fmt.Sprintf("%s%s %s\n",
			cursor,
			padRight(nameStyle.Render(name), nameWidth),
			ui.FormatStatus(string(a.Status)),
		))
	}
	return s.String()
}

func (m dashboardModel) renderFooter() string {
	statusLine := ui.StyleMuted.Render(fmt.Sprintf("%d of %d computers · loaded %s",
		len(m.assets), m.summary.TotalAssets, m.loadedAt.Format("15:04:05")))
	if m.message != "" {
		statusLine = ui.StyleInfo.Render(m.message) + "  " + statusLine
	}

	footerStyle := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1)

	return footerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, statusLine, m.help.View(m.keys)))
}

func (m dashboardModel) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(1, 2)

	h := m.help
	h.ShowAll = true

	return titleStyle.Render("Keyboard Shortcuts") + "\n\n" +
		lipgloss.NewStyle().Padding(0, 2).Render(h.View(m.keys)) + "\n\n" +
		ui.StyleMuted.Render("  Press ? or Esc to return")
}

func padRight(s string, width int) string {
	// Strip ANSI codes to get real length
	realLen := lipgloss.Width(s)
	if realLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-realLen)
}
