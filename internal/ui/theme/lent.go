package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base    = lipgloss.Color("#1a1425")
	Mantle  = lipgloss.Color("#140f1d")
	Surface = lipgloss.Color("#3b2f52")
	Text    = lipgloss.Color("#e6e0f0")
	Subtext = lipgloss.Color("#a99cbf")
	Violet  = lipgloss.Color("#b48ee8")
	Gold    = lipgloss.Color("#e8c66a")
	Green   = lipgloss.Color("#8fd694")
	Red     = lipgloss.Color("#ef8a8a")
	Slate   = lipgloss.Color("#8aa4c8")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Violet)

	Title = lipgloss.NewStyle().Foreground(Violet).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext)
	Hot   = lipgloss.NewStyle().Foreground(Gold).Bold(true)

	Completed = lipgloss.NewStyle().Foreground(Green)
	Failed    = lipgloss.NewStyle().Foreground(Red)
	Skipped   = lipgloss.NewStyle().Foreground(Slate)
	Cursor    = lipgloss.NewStyle().Foreground(Gold).Bold(true)

	Banner = lipgloss.NewStyle().
		Foreground(Base).
		Background(Gold).
		Bold(true).
		Padding(0, 2)
)

// Status picks the style for a progress status; unset uses the base text.
func Status(status string) lipgloss.Style {
	switch status {
	case "completed":
		return Completed
	case "failed":
		return Failed
	case "skipped":
		return Skipped
	default:
		return lipgloss.NewStyle().Foreground(Text)
	}
}
