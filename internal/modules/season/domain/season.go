package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"exodus/internal/platform/clock"
	apperrors "exodus/internal/platform/errors"
)

// Window is the fixed, inclusive date range over which tracking happens.
type Window struct {
	Name  string
	Start time.Time
	End   time.Time
}

func NewWindow(name string, start, end time.Time) (Window, error) {
	w := Window{Name: strings.TrimSpace(name), Start: clock.Date(start), End: clock.Date(end)}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("%w: season start and end are required", apperrors.ErrInvalidInput)
	}
	if w.TotalDays() <= 0 {
		return fmt.Errorf("%w: season must end after it starts (%s..%s)", apperrors.ErrInvalidInput,
			clock.DateKey(w.Start), clock.DateKey(w.End))
	}
	return nil
}

// TotalDays is the whole-day distance from start to end.
func (w Window) TotalDays() int {
	return clock.DaysBetween(w.Start, w.End)
}

// DaysElapsed is clamped to [0, TotalDays].
func (w Window) DaysElapsed(today time.Time) int {
	today = clock.Date(today)
	switch {
	case today.Before(w.Start):
		return 0
	case today.After(w.End):
		return w.TotalDays()
	default:
		return clock.DaysBetween(w.Start, today)
	}
}

// ProgressPercent rounds half away from zero.
func (w Window) ProgressPercent(today time.Time) int {
	total := w.TotalDays()
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(w.DaysElapsed(today)) / float64(total)))
}

func (w Window) IsActive(today time.Time) bool {
	return w.Contains(today)
}

func (w Window) Contains(date time.Time) bool {
	date = clock.Date(date)
	return !date.Before(w.Start) && !date.After(w.End)
}

func (w Window) DaysUntilStart(today time.Time) int {
	today = clock.Date(today)
	if !today.Before(w.Start) {
		return 0
	}
	return clock.DaysBetween(today, w.Start)
}

// DayNumber is the 1-based position of date inside the season, or 0 outside it.
func (w Window) DayNumber(date time.Time) int {
	if !w.Contains(date) {
		return 0
	}
	return clock.DaysBetween(w.Start, date) + 1
}
