package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/floorview/floorview/internal/view"
	"github.com/floorview/floorview/pkg/models"
)

// dashboardKeyMap defines the dashboard's keyboard shortcuts.
type dashboardKeyMap struct {
	Quit     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Team     key.Binding
	Shift    key.Binding
	Product  key.Binding
	Scenario key.Binding
	Mechanic key.Binding
	Refresh  key.Binding
}

var dashboardKeys = dashboardKeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	NextView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	PrevView: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
	Team:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle team")),
	Shift:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle shift")),
	Product:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle product")),
	Scenario: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next scenario")),
	Mechanic: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "next mechanic")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
}

type dashboardModel struct {
	width  int
	height int

	spinner spinner.Model

	// mechanicIdx indexes the worker pool for the mechanic view.
	mechanicIdx int
	mechSched   *models.MechanicSchedule

	loading           bool
	refreshing        bool
	confirmingRefresh bool
	err               error
	notice            string
}

// dataLoadedMsg reports a finished startup or reload sequence.
type dataLoadedMsg struct {
	loaded int
	failed int
	err    error
}

// refreshDoneMsg reports a finished backend recompute plus reload.
type refreshDoneMsg struct {
	loaded int
	err    error
}

// mechanicLoadedMsg carries one mechanic's schedule for the mechanic view.
type mechanicLoadedMsg struct {
	sched *models.MechanicSchedule
	err   error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	filterBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))

	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	nominalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	degradedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	return dashboardModel{
		spinner: sp,
		loading: true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(loadScenarios, m.spinner.Tick)
}

// loadScenarios runs the startup sequence in the background.
func loadScenarios() tea.Msg {
	result, err := Controller.Startup(context.Background())
	if err != nil {
		return dataLoadedMsg{err: err}
	}
	return dataLoadedMsg{loaded: len(result.Loaded), failed: len(result.Failed)}
}

// runRefresh triggers the backend recompute and full reload.
func runRefresh() tea.Msg {
	result, err := Controller.RefreshAll(context.Background())
	if err != nil {
		return refreshDoneMsg{err: err}
	}
	return refreshDoneMsg{loaded: len(result.Loaded)}
}

// loadMechanic fetches one mechanic's schedule for the mechanic view.
func loadMechanic(mechanicID, scenarioID string) tea.Cmd {
	return func() tea.Msg {
		sched, err := Backend.GetMechanicTasks(context.Background(), mechanicID, scenarioID)
		if err != nil {
			return mechanicLoadedMsg{err: err}
		}
		return mechanicLoadedMsg{sched: sched}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.notice = fmt.Sprintf("Loaded %d scenario(s)", msg.loaded)
		if msg.failed > 0 {
			m.notice += fmt.Sprintf(", %d failed", msg.failed)
		}
		return m, m.maybeLoadMechanic()

	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.notice = fmt.Sprintf("Refreshed %d scenario(s)", msg.loaded)
		return m, m.maybeLoadMechanic()

	case mechanicLoadedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("mechanic fetch failed: %v", msg.err)
			return m, nil
		}
		m.mechSched = msg.sched
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending refresh confirmation swallows every key.
	if m.confirmingRefresh {
		m.confirmingRefresh = false
		if msg.String() == "y" {
			m.refreshing = true
			m.notice = ""
			return m, tea.Batch(runRefresh, m.spinner.Tick)
		}
		m.notice = "Refresh cancelled"
		return m, nil
	}

	switch {
	case key.Matches(msg, dashboardKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, dashboardKeys.NextView):
		Store.SetView(stepView(Store.Selection().View, 1))
		return m, m.maybeLoadMechanic()

	case key.Matches(msg, dashboardKeys.PrevView):
		Store.SetView(stepView(Store.Selection().View, -1))
		return m, m.maybeLoadMechanic()

	case key.Matches(msg, dashboardKeys.Team):
		sc := Store.Selected()
		if sc != nil {
			Store.SetTeam(cycleValue(Store.Selection().Team, sc.Teams()))
		}
		return m, nil

	case key.Matches(msg, dashboardKeys.Shift):
		sc := Store.Selected()
		if sc != nil {
			Store.SetShift(cycleValue(Store.Selection().Shift, sc.Shifts()))
		}
		return m, nil

	case key.Matches(msg, dashboardKeys.Product):
		sc := Store.Selected()
		if sc != nil {
			Store.SetProduct(cycleValue(Store.Selection().Product, sc.ProductNames()))
		}
		return m, nil

	case key.Matches(msg, dashboardKeys.Scenario):
		if next := nextScenarioID(); next != "" {
			Controller.SwitchScenario(next)
		}
		return m, m.maybeLoadMechanic()

	case key.Matches(msg, dashboardKeys.Mechanic):
		if len(Cfg.AssignWorkers) > 0 {
			m.mechanicIdx = (m.mechanicIdx + 1) % len(Cfg.AssignWorkers)
		}
		return m, m.maybeLoadMechanic()

	case key.Matches(msg, dashboardKeys.Refresh):
		if m.refreshing {
			m.notice = "Refresh already in progress"
			return m, nil
		}
		if m.err != nil {
			// A failed load retries without the recompute.
			m.err = nil
			m.loading = true
			return m, tea.Batch(loadScenarios, m.spinner.Tick)
		}
		m.confirmingRefresh = true
		return m, nil
	}

	// Number keys jump straight to a view.
	switch msg.String() {
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		Store.SetView(models.Views[idx])
		return m, m.maybeLoadMechanic()
	}

	return m, nil
}

// maybeLoadMechanic fetches the current mechanic's schedule when the
// mechanic view is active.
func (m dashboardModel) maybeLoadMechanic() tea.Cmd {
	sel := Store.Selection()
	if sel.View != models.ViewMechanic || len(Cfg.AssignWorkers) == 0 {
		return nil
	}
	return loadMechanic(Cfg.AssignWorkers[m.mechanicIdx], sel.ScenarioID)
}

// stepView moves delta steps through the view tab order, wrapping.
func stepView(current models.View, delta int) models.View {
	idx := 0
	for i, v := range models.Views {
		if v == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(models.Views)) % len(models.Views)
	return models.Views[idx]
}

// cycleValue steps a filter through "all" followed by the scenario's values.
func cycleValue(current string, values []string) string {
	cycle := append([]string{models.FilterAll}, values...)
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return models.FilterAll
}

// nextScenarioID returns the id after the selected one in load order.
func nextScenarioID() string {
	ids := Store.IDs()
	if len(ids) == 0 {
		return ""
	}
	current := Store.Selection().ScenarioID
	for i, id := range ids {
		if id == current {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sel := Store.Selection()
	title := titleStyle.Render(" Floorview ")
	help := helpStyle.Render("1-4/tab: view | t/s/p: filters | n: scenario | m: mechanic | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  %s Loading scenarios...\n\n%s", title, m.spinner.View(), help)
	}

	if m.err != nil {
		retry := helpStyle.Render("r: retry | q: quit")
		return fmt.Sprintf("%s\n\n  %s\n\n%s",
			title, criticalStyle.Render("Error: "+m.err.Error()), retry)
	}

	tabs := m.renderTabs(sel.View)
	filterBar := filterBarStyle.Render(fmt.Sprintf(
		"scenario: %s | team: %s | shift: %s | product: %s",
		sel.ScenarioID, sel.Team, sel.Shift, sel.Product))

	var body string
	sc := Store.Selected()
	switch sel.View {
	case models.ViewManagement:
		body = m.renderManagement(view.Management(sc, sel))
	case models.ViewMechanic:
		body = m.renderMechanic()
	case models.ViewProject:
		body = m.renderTimeline(view.Timeline(sc, sel))
	default:
		body = m.renderTeamLead(view.TeamLead(sc, sel, time.Now()))
	}

	panelWidth := m.width - 6
	if panelWidth < 40 {
		panelWidth = 40
	}
	body = panelStyle.Width(panelWidth).Render(body)

	status := m.notice
	if m.confirmingRefresh {
		status = "Recompute all scenarios? This may take a while. [y/N]"
	} else if m.refreshing {
		status = m.spinner.View() + " Refreshing..."
	}

	return fmt.Sprintf("%s  %s\n%s\n%s\n%s\n%s",
		title, tabs, filterBar, body, helpStyle.Render(status), help)
}

func (m dashboardModel) renderTabs(active models.View) string {
	labels := map[models.View]string{
		models.ViewTeamLead:   "1 Team Lead",
		models.ViewManagement: "2 Management",
		models.ViewMechanic:   "3 Mechanic",
		models.ViewProject:    "4 Timeline",
	}
	parts := make([]string, 0, len(models.Views))
	for _, v := range models.Views {
		style := tabStyle
		if v == active {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(labels[v]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m dashboardModel) renderTeamLead(tl view.TeamLeadView) string {
	var b strings.Builder
	header := "Team Lead"
	if tl.Degraded {
		header += "  " + degradedStyle.Render("[degraded data]")
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  Capacity %-6d Utilization %-5d Today %-5d Critical %d\n\n",
		tl.Capacity, tl.Utilization, tl.TodayCount, tl.CriticalCount))

	if len(tl.Rows) == 0 {
		b.WriteString("  No tasks match the current filters.")
		return b.String()
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-16s %-18s %-12s %-10s %-8s %5s %-12s",
		"ID", "TYPE", "PRODUCT", "TEAM", "SHIFT", "PRI", "START")))
	b.WriteString("\n")
	for _, row := range tl.Rows {
		line := fmt.Sprintf("  %-16s %-18s %-12s %-10s %-8s %5d %-12s",
			row.ID, row.Type, row.Product, row.Team, row.Shift,
			row.Priority, row.Start.Format("01-02 15:04"))
		if row.Critical {
			line = criticalStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if tl.TotalFiltered > len(tl.Rows) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("\n  showing %d of %d", len(tl.Rows), tl.TotalFiltered)))
	}
	return b.String()
}

func (m dashboardModel) renderManagement(mg view.ManagementView) string {
	var b strings.Builder
	header := "Management"
	if mg.Degraded {
		header += "  " + degradedStyle.Render("[degraded data]")
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  Workforce %-5d Makespan %-4dd On-time %d%%  Avg util %d%%  Max late %dd\n\n",
		mg.Workforce, mg.Makespan, mg.OnTimeRate, mg.AvgUtilization, mg.MaxLateness))

	for _, p := range mg.Products {
		status := string(p.Status)
		switch p.Status {
		case view.StatusLate:
			status = criticalStyle.Render(status)
		case view.StatusAtRisk:
			status = warningStyle.Render(status)
		default:
			status = nominalStyle.Render(status)
		}
		b.WriteString(fmt.Sprintf("  %-14s %-18s %3d%%  %3dd left  %d late part(s), %d rework\n",
			p.Name, status, p.Progress, p.DaysLeft, p.LateParts, p.Rework))
	}

	b.WriteString("\n")
	for _, t := range mg.Teams {
		bar := strings.Repeat("#", t.Percent/5)
		switch t.Band {
		case view.BandCritical:
			bar = criticalStyle.Render(bar)
		case view.BandWarning:
			bar = warningStyle.Render(bar)
		default:
			bar = nominalStyle.Render(bar)
		}
		b.WriteString(fmt.Sprintf("  %-14s %3d%% %s\n", t.Team, t.Percent, bar))
	}
	return b.String()
}

func (m dashboardModel) renderMechanic() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Mechanic"))
	b.WriteString("\n")

	if m.mechSched == nil {
		b.WriteString("  Loading mechanic schedule...")
		return b.String()
	}

	mv := view.Mechanic(m.mechSched)
	b.WriteString(fmt.Sprintf("  %s (shift %s), %d assigned task(s)\n", mv.MechanicID, mv.Shift, mv.AssignedCount))
	if mv.HasWork {
		b.WriteString(fmt.Sprintf("  Estimated completion %s\n\n", mv.EstimatedDone.Format("15:04")))
	} else {
		b.WriteString("  No work assigned.\n")
		return b.String()
	}

	for _, row := range mv.Rows {
		b.WriteString(fmt.Sprintf("  %-16s %-18s %s - %s",
			row.ID, row.Type, row.Start.Format("15:04"), row.End.Format("15:04")))
		if row.Dependencies != "" {
			b.WriteString(dimStyle.Render("  after " + row.Dependencies))
		}
		if row.OnDock != "" {
			b.WriteString(dimStyle.Render("  on dock " + row.OnDock))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m dashboardModel) renderTimeline(rows []view.ChartRow) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Timeline"))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString("  No tasks match the current filters.")
		return b.String()
	}

	span := rows[len(rows)-1].End.Sub(rows[0].Start)
	if span <= 0 {
		span = time.Hour
	}
	chartWidth := m.width - 40
	if chartWidth < 20 {
		chartWidth = 20
	}

	for _, row := range rows {
		offset := int(row.Start.Sub(rows[0].Start) * time.Duration(chartWidth) / span)
		length := int(row.End.Sub(row.Start) * time.Duration(chartWidth) / span)
		if length < 1 {
			length = 1
		}
		if offset+length > chartWidth {
			length = chartWidth - offset
		}
		bar := strings.Repeat(" ", offset) + strings.Repeat("=", length)
		if strings.Contains(row.StyleClass, "critical") {
			bar = criticalStyle.Render(bar)
		} else {
			bar = dimStyle.Render(bar)
		}
		b.WriteString(fmt.Sprintf("  %-24.24s |%s\n", row.Label, bar))
	}
	return b.String()
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard over the scheduling scenarios",
	Long: `Launch the interactive terminal dashboard: four role-specific views over
the loaded scenarios with live filter cycling and refresh.

Switch views with 1-4 or Tab, cycle filters with t/s/p, cycle scenarios
with n, refresh with r, quit with q. Filters persist across view and
scenario switches.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("sync controller not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
