package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	calendardto "exodus/internal/modules/calendar/dto"
	journaldto "exodus/internal/modules/journal/dto"
	progressdomain "exodus/internal/modules/progress/domain"
	seasondto "exodus/internal/modules/season/dto"
	statsdto "exodus/internal/modules/stats/dto"
	"exodus/internal/platform/clock"
	"exodus/internal/ui/components"
	"exodus/internal/ui/theme"
	dayview "exodus/internal/ui/views/day"
	statsview "exodus/internal/ui/views/stats"
)

const bannerDuration = 2 * time.Second

// ─── ports ───────────────────────────────────────────────────────────────────

type SeasonPort interface {
	Overview(ctx context.Context) (seasondto.OverviewOutput, error)
}

type CalendarPort interface {
	Day(ctx context.Context, date time.Time, showCompleted bool) (calendardto.DayOutput, error)
	Mark(ctx context.Context, date time.Time, disciplineID, status string) (calendardto.MarkOutput, error)
	Navigate(ctx context.Context, from time.Time, intent string) (calendardto.NavigateOutput, error)
}

type StatsPort interface {
	Report(ctx context.Context) (statsdto.ReportOutput, error)
}

type JournalPort interface {
	Write(ctx context.Context, date time.Time) (journaldto.WriteOutput, error)
}

type Handlers struct {
	Season   SeasonPort
	Calendar CalendarPort
	Stats    StatsPort
	Journal  JournalPort
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabDay tabID = iota
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Day", "Stats"}

// ─── messages ────────────────────────────────────────────────────────────────

type overviewMsg struct {
	out seasondto.OverviewOutput
	err error
}

type dayLoadedMsg struct {
	out calendardto.DayOutput
	err error
}

type navigatedMsg struct {
	out calendardto.NavigateOutput
	err error
}

type markedMsg struct {
	out calendardto.MarkOutput
	err error
}

type reportMsg struct {
	out statsdto.ReportOutput
	err error
}

type noteWrittenMsg struct {
	out journaldto.WriteOutput
	err error
}

type completionMsg struct {
	event progressdomain.CompletionEvent
	ok    bool
}

type bannerDoneMsg struct{ seq int }

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Fail     key.Binding
	Skip     key.Binding
	Filter   key.Binding
	Today    key.Binding
	DayTab   key.Binding
	StatsTab key.Binding
	Note     key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "completed")),
		Fail:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "failed")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skipped")),
		Filter:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "hide/show completed")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		DayTab:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "day")),
		StatsTab: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "stats")),
		Note:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "journal note")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Complete, k.Fail, k.Filter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Up, k.Down, k.Today},
		{k.Complete, k.Fail, k.Skip, k.Filter, k.Note},
		{k.DayTab, k.StatsTab, k.Palette, k.Help, k.Quit},
	}
}

var paletteHints = []string{
	"goto <YYYY-MM-DD>",
	"today",
	"mark <id> <completed|failed|skipped>",
	"filter",
	"note",
	"stats",
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. The selected date is the only cursor;
// every bound check is delegated to the calendar port.
type Model struct {
	ports       Handlers
	completions <-chan progressdomain.CompletionEvent
	names       map[string]string

	dayView   dayview.Model
	statsView statsview.Model

	activeTab     tabID
	selected      time.Time
	seasonStart   time.Time
	showCompleted bool
	keys          keyMap
	help          help.Model
	showHelp      bool
	palette       components.Palette
	status        string
	banner        string
	bannerSeq     int
	width         int
	height        int
}

func NewModel(ports Handlers, icons map[string]string, completions <-chan progressdomain.CompletionEvent) Model {
	return Model{
		ports:         ports,
		completions:   completions,
		names:         map[string]string{},
		dayView:       dayview.New(icons),
		statsView:     statsview.New(),
		activeTab:     tabDay,
		showCompleted: true,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(paletteHints...),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadOverviewCmd(),
		m.loadDayCmd(time.Time{}),
		m.waitCompletionCmd(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.palette.SetWidth(min(msg.Width-4, 72))
		sz := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		m.dayView, _ = m.dayView.Update(sz)
		m.statsView, _ = m.statsView.Update(sz)
		return m, nil

	case overviewMsg:
		if msg.err != nil {
			m.status = "season: " + msg.err.Error()
		} else {
			m.seasonStart = msg.out.Start
			m.dayView.SetOverview(msg.out)
		}
		return m, nil

	case dayLoadedMsg:
		if msg.err != nil {
			m.status = "day: " + msg.err.Error()
			return m, nil
		}
		m.selected = msg.out.Date
		for _, item := range msg.out.Items {
			m.names[item.ID] = item.Name
		}
		m.dayView.SetDay(msg.out)
		return m, nil

	case navigatedMsg:
		if msg.err != nil {
			m.status = "navigate: " + msg.err.Error()
			return m, nil
		}
		if !msg.out.Moved {
			return m, nil
		}
		return m, m.loadDayCmd(msg.out.Date)

	case markedMsg:
		switch {
		case msg.err != nil:
			m.status = "mark: " + msg.err.Error()
		case !msg.out.Applied:
			m.status = "ignored: " + msg.out.Reason
		case msg.out.PersistError != "":
			m.status = "saved in memory only: " + msg.out.PersistError
		default:
			m.status = fmt.Sprintf("%s marked %s", m.nameOf(msg.out.DisciplineID), msg.out.Status)
		}
		return m, tea.Batch(m.loadDayCmd(m.selected), m.loadOverviewCmd(), m.loadReportCmd())

	case reportMsg:
		m.statsView.SetReport(msg.out, msg.err)
		return m, nil

	case noteWrittenMsg:
		if msg.err != nil {
			m.status = "note: " + msg.err.Error()
		} else {
			m.status = "note written: " + msg.out.Path
		}
		return m, nil

	case completionMsg:
		if !msg.ok {
			return m, nil
		}
		m.bannerSeq++
		m.banner = fmt.Sprintf("✝ %s completed!", m.nameOf(msg.event.DisciplineID))
		seq := m.bannerSeq
		return m, tea.Batch(
			m.waitCompletionCmd(),
			tea.Tick(bannerDuration, func(time.Time) tea.Msg { return bannerDoneMsg{seq: seq} }),
		)

	case bannerDoneMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Palette):
		return m, m.palette.Open()
	case key.Matches(msg, m.keys.DayTab):
		m.activeTab = tabDay
		return m, nil
	case key.Matches(msg, m.keys.StatsTab):
		m.activeTab = tabStats
		return m, m.loadReportCmd()
	}

	if m.activeTab == tabStats {
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Prev):
		return m, m.navigateCmd("previous")
	case key.Matches(msg, m.keys.Next):
		return m, m.navigateCmd("next")
	case key.Matches(msg, m.keys.Today):
		return m, m.loadDayCmd(time.Time{})
	case key.Matches(msg, m.keys.Filter):
		m.showCompleted = !m.showCompleted
		return m, m.loadDayCmd(m.selected)
	case key.Matches(msg, m.keys.Complete):
		return m, m.markSelectedCmd("completed")
	case key.Matches(msg, m.keys.Fail):
		return m, m.markSelectedCmd("failed")
	case key.Matches(msg, m.keys.Skip):
		return m, m.markSelectedCmd("skipped")
	case key.Matches(msg, m.keys.Note):
		return m, m.writeNoteCmd()
	}

	var cmd tea.Cmd
	m.dayView, cmd = m.dayView.Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabStats:
		content = m.statsView.View()
	default:
		content = m.dayView.View()
	}
	if m.banner != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, theme.Banner.Render(m.banner), content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabLabels[i])
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(label)
		} else {
			parts[i] = theme.Muted.Render(label)
		}
	}
	bar := theme.Title.Render("exodus") + "  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette ─────────────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "goto":
		if len(parts) != 2 {
			m.status = "usage: goto <YYYY-MM-DD>"
			return m, nil
		}
		date, err := clock.ParseDate(parts[1])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		day := m.dayView.Day()
		if !day.Today.IsZero() && date.After(day.Today) {
			m.status = "cannot go past today"
			return m, nil
		}
		// Once the season has begun the cursor stays inside [start, today].
		begun := !m.seasonStart.IsZero() && !day.Today.Before(m.seasonStart)
		if begun && date.Before(m.seasonStart) {
			m.status = "cannot go before the season starts"
			return m, nil
		}
		m.activeTab = tabDay
		return m, m.loadDayCmd(date)
	case "today":
		m.activeTab = tabDay
		return m, m.loadDayCmd(time.Time{})
	case "mark":
		if len(parts) != 3 {
			m.status = "usage: mark <id> <completed|failed|skipped>"
			return m, nil
		}
		return m, m.markCmd(parts[1], parts[2])
	case "filter":
		m.showCompleted = !m.showCompleted
		return m, m.loadDayCmd(m.selected)
	case "note":
		return m, m.writeNoteCmd()
	case "stats":
		m.activeTab = tabStats
		return m, m.loadReportCmd()
	default:
		m.status = "unknown command: " + parts[0]
		return m, nil
	}
}

func (m Model) nameOf(id string) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	return id
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) loadOverviewCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Season.Overview(context.Background())
		return overviewMsg{out: out, err: err}
	}
}

func (m Model) loadDayCmd(date time.Time) tea.Cmd {
	show := m.showCompleted
	return func() tea.Msg {
		out, err := m.ports.Calendar.Day(context.Background(), date, show)
		return dayLoadedMsg{out: out, err: err}
	}
}

func (m Model) navigateCmd(intent string) tea.Cmd {
	from := m.selected
	return func() tea.Msg {
		out, err := m.ports.Calendar.Navigate(context.Background(), from, intent)
		return navigatedMsg{out: out, err: err}
	}
}

func (m Model) markSelectedCmd(status string) tea.Cmd {
	item, ok := m.dayView.Selected()
	if !ok {
		return nil
	}
	return m.markCmd(item.ID, status)
}

func (m Model) markCmd(disciplineID, status string) tea.Cmd {
	date := m.selected
	return func() tea.Msg {
		out, err := m.ports.Calendar.Mark(context.Background(), date, disciplineID, status)
		return markedMsg{out: out, err: err}
	}
}

func (m Model) loadReportCmd() tea.Cmd {
	if m.ports.Stats == nil {
		return nil
	}
	return func() tea.Msg {
		out, err := m.ports.Stats.Report(context.Background())
		return reportMsg{out: out, err: err}
	}
}

func (m Model) writeNoteCmd() tea.Cmd {
	if m.ports.Journal == nil {
		return nil
	}
	date := m.selected
	return func() tea.Msg {
		out, err := m.ports.Journal.Write(context.Background(), date)
		return noteWrittenMsg{out: out, err: err}
	}
}

// waitCompletionCmd blocks on the notifier channel; it is re-armed after
// every event.
func (m Model) waitCompletionCmd() tea.Cmd {
	if m.completions == nil {
		return nil
	}
	ch := m.completions
	return func() tea.Msg {
		event, ok := <-ch
		return completionMsg{event: event, ok: ok}
	}
}
