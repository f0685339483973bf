package day

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	calendardto "exodus/internal/modules/calendar/dto"
	seasondto "exodus/internal/modules/season/dto"
	"exodus/internal/ui/theme"
)

// Model renders the selected day and owns the row cursor.
type Model struct {
	day      calendardto.DayOutput
	overview seasondto.OverviewOutput
	icons    map[string]string
	bar      progress.Model
	cursor   int
	width    int
	height   int
}

func New(icons map[string]string) Model {
	bar := progress.New(progress.WithSolidFill(string(theme.Violet)), progress.WithoutPercentage())
	return Model{icons: icons, bar: bar}
}

func (m *Model) SetDay(day calendardto.DayOutput) {
	sameDate := m.day.Date.Equal(day.Date)
	m.day = day
	if !sameDate {
		m.cursor = 0
	}
	m.clampCursor()
}

func (m *Model) SetOverview(overview seasondto.OverviewOutput) {
	m.overview = overview
}

func (m Model) Day() calendardto.DayOutput { return m.day }

// Selected returns the discipline under the cursor.
func (m Model) Selected() (calendardto.DayItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.day.Items) {
		return calendardto.DayItem{}, false
	}
	return m.day.Items[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.day.Items) {
		m.cursor = len(m.day.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(msg.Width-20, 60))
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.day.Items)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.header())
	sb.WriteString("\n\n")

	switch {
	case m.day.Placeholder != "":
		sb.WriteString(theme.Muted.Render(m.day.Placeholder))
	case len(m.day.Items) == 0 && m.day.AllDone:
		sb.WriteString(theme.Completed.Render("All disciplines completed for this day!"))
	case len(m.day.Items) == 0:
		sb.WriteString(theme.Muted.Render("Nothing scheduled."))
	default:
		sb.WriteString(m.list())
	}
	if m.day.Placeholder == "" && !m.day.Editable {
		sb.WriteString("\n\n" + theme.Muted.Render("view only: future dates cannot be marked"))
	}
	return theme.Pane.Render(sb.String())
}

func (m Model) header() string {
	o := m.overview
	var season string
	switch {
	case o.Active:
		season = fmt.Sprintf("%s  day %d of %d  %s %d%%", o.Name, o.DayNumber, o.TotalDays+1, m.bar.ViewAs(float64(o.Percent)/100), o.Percent)
	case o.Finished:
		season = fmt.Sprintf("%s is complete  %s 100%%", o.Name, m.bar.ViewAs(1))
	default:
		season = fmt.Sprintf("%s begins %s  (%d days)", o.Name, o.Start.Format("Monday, January 2"), o.DaysUntilStart)
	}

	prev, next := theme.Muted.Render("‹"), theme.Muted.Render("›")
	if m.day.CanPrevious {
		prev = theme.Hot.Render("‹")
	}
	if m.day.CanNext {
		next = theme.Hot.Render("›")
	}
	label := m.day.Date.Format("Monday, January 2")
	if m.day.IsToday {
		label += theme.Hot.Render("  today")
	}
	filter := "all"
	if !m.day.ShowCompleted {
		filter = "hiding completed"
	}
	nav := fmt.Sprintf("%s %s %s   %s", prev, theme.Title.Render(label), next, theme.Muted.Render(fmt.Sprintf("[%s %d/%d]", filter, m.day.Completed, m.day.Applicable)))
	return lipgloss.JoinVertical(lipgloss.Left, season, nav)
}

func (m Model) list() string {
	lines := make([]string, 0, len(m.day.Items))
	for i, item := range m.day.Items {
		pointer := "  "
		if i == m.cursor {
			pointer = theme.Cursor.Render("> ")
		}
		icon := m.icons[item.ID]
		if icon == "" {
			icon = "•"
		}
		state := "[ ]"
		switch item.Status {
		case "completed":
			state = "[x]"
		case "failed":
			state = "[!]"
		case "skipped":
			state = "[-]"
		}
		line := fmt.Sprintf("%s %s %s", theme.Status(item.Status).Render(state), icon, item.Name)
		lines = append(lines, pointer+line)
	}
	return strings.Join(lines, "\n")
}
