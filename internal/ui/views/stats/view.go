package stats

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "exodus/internal/modules/stats/dto"
	"exodus/internal/ui/theme"
)

type Model struct {
	report statsdto.ReportOutput
	table  table.Model
	err    error
}

func New() Model {
	t := table.New(
		table.WithColumns(columns(28)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.Violet).Bold(true)
	styles.Selected = styles.Selected.Foreground(theme.Gold).Bold(true)
	t.SetStyles(styles)
	return Model{table: t}
}

func columns(nameWidth int) []table.Column {
	return []table.Column{
		{Title: "Discipline", Width: nameWidth},
		{Title: "Done", Width: 5},
		{Title: "Failed", Width: 6},
		{Title: "Skip", Width: 5},
		{Title: "Open", Width: 5},
		{Title: "Rate", Width: 5},
		{Title: "Streak", Width: 7},
		{Title: "Best", Width: 5},
	}
}

func (m *Model) SetReport(report statsdto.ReportOutput, err error) {
	m.err = err
	if err != nil {
		return
	}
	m.report = report
	rows := make([]table.Row, 0, len(report.Disciplines))
	for _, d := range report.Disciplines {
		rows = append(rows, table.Row{
			d.Name,
			strconv.Itoa(d.Completed),
			strconv.Itoa(d.Failed),
			strconv.Itoa(d.Skipped),
			strconv.Itoa(d.Unset),
			fmt.Sprintf("%d%%", d.Rate),
			strconv.Itoa(d.CurrentStreak),
			strconv.Itoa(d.LongestStreak),
		})
	}
	m.table.SetRows(rows)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		nameWidth := max(16, size.Width-60)
		m.table.SetColumns(columns(nameWidth))
		m.table.SetHeight(max(4, size.Height-8))
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Pane.Render(theme.Failed.Render("stats unavailable: " + m.err.Error()))
	}
	if !m.report.Started {
		return theme.Pane.Render(theme.Muted.Render(m.report.SeasonName + " has not started yet."))
	}
	summary := fmt.Sprintf("%s  %s through %s  overall %d%%",
		theme.Title.Render(m.report.SeasonName),
		m.report.From.Format("Jan 2"),
		m.report.Through.Format("Jan 2"),
		m.report.OverallRate)
	return theme.Pane.Render(lipgloss.JoinVertical(lipgloss.Left, summary, "", m.table.View()))
}
