package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	apperrors "exodus/internal/platform/errors"
)

// Weekday is the canonical Monday-first day of the week. It is computed from
// the date value and never from formatted text.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

func WeekdayOf(date time.Time) Weekday {
	// time.Weekday is Sunday=0; shift so Monday=0.
	return Weekday((int(date.Weekday()) + 6) % 7)
}

// ParseWeekday accepts full English names or three-letter abbreviations in
// any case.
func ParseWeekday(name string) (Weekday, error) {
	// Casers are stateful, so each call gets its own.
	folder := cases.Fold()
	key := folder.String(strings.TrimSpace(name))
	for i, full := range weekdayNames {
		folded := folder.String(full)
		if key == folded || (len(key) == 3 && strings.HasPrefix(folded, key)) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", apperrors.ErrInvalidInput, name)
}

// WeekdaySet is a bitmask of weekdays.
type WeekdaySet uint8

func NewWeekdaySet(days ...Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

func (s WeekdaySet) Has(d Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Empty() bool {
	return s == 0
}

func (s WeekdaySet) Days() []Weekday {
	out := make([]Weekday, 0, 7)
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s WeekdaySet) Names() []string {
	days := s.Days()
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}
