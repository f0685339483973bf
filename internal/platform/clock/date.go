package clock

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for progress keys.
const DateLayout = "2006-01-02"

// Date strips the time of day, keeping the calendar date as seen in t's
// location. The result is midnight UTC so date arithmetic never crosses DST.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DateKey(t time.Time) string {
	return Date(t).Format(DateLayout)
}

func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// DaysBetween counts whole calendar days from a to b (negative when b is
// before a).
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}

func AddDays(t time.Time, days int) time.Time {
	return Date(t).AddDate(0, 0, days)
}

func SameDate(a, b time.Time) bool {
	return Date(a).Equal(Date(b))
}
