package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"exodus/internal/platform/clock"
)

const (
	ProgressStart = "<!-- exodus:progress:start -->"
	ProgressEnd   = "<!-- exodus:progress:end -->"
)

// Entry is one discipline line in the managed progress block.
type Entry struct {
	Name   string
	Status string
}

// RelativePath places a note under YYYY/MM/.
func RelativePath(date time.Time) string {
	date = clock.Date(date)
	return filepath.Join(date.Format("2006"), date.Format("01"), clock.DateKey(date)+".md")
}

// Heading is written once when the note is created.
func Heading(seasonName string, date time.Time, dayNumber int) string {
	return fmt.Sprintf("# %s, day %d (%s)\n", seasonName, dayNumber, date.Format("Monday, January 2"))
}

// ProgressBlock renders one checklist line per entry.
func ProgressBlock(entries []Entry) string {
	if len(entries) == 0 {
		return "_Nothing scheduled._"
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- [%s] %s", mark(e.Status), e.Name)+suffix(e.Status))
	}
	return strings.Join(lines, "\n")
}

func mark(status string) string {
	switch status {
	case "completed":
		return "x"
	case "failed":
		return "!"
	case "skipped":
		return "-"
	default:
		return " "
	}
}

func suffix(status string) string {
	switch status {
	case "failed", "skipped":
		return " (" + status + ")"
	default:
		return ""
	}
}
