package domain

import (
	"time"

	"exodus/internal/platform/clock"
)

type Intent int

const (
	NavigatePrevious Intent = iota
	NavigateNext
)

func (i Intent) String() string {
	if i == NavigateNext {
		return "next"
	}
	return "previous"
}

// Bounds fixes the navigable range for one session. Today is captured once
// so the forward boundary does not move while the session is open.
type Bounds struct {
	SeasonStart time.Time
	SeasonEnd   time.Time
	Today       time.Time
}

func NewBounds(start, end, today time.Time) Bounds {
	return Bounds{SeasonStart: clock.Date(start), SeasonEnd: clock.Date(end), Today: clock.Date(today)}
}

func CanNavigateForward(selected, today time.Time) bool {
	return !clock.AddDays(selected, 1).After(clock.Date(today))
}

func CanNavigateBackward(selected, seasonStart time.Time) bool {
	return !clock.AddDays(selected, -1).Before(clock.Date(seasonStart))
}

// Step moves the cursor one day. Requests past either bound leave the cursor
// where it was and report false.
func (b Bounds) Step(selected time.Time, intent Intent) (time.Time, bool) {
	selected = clock.Date(selected)
	switch intent {
	case NavigateNext:
		if CanNavigateForward(selected, b.Today) {
			return clock.AddDays(selected, 1), true
		}
	case NavigatePrevious:
		if CanNavigateBackward(selected, b.SeasonStart) {
			return clock.AddDays(selected, -1), true
		}
	}
	return selected, false
}

func IsToday(date, today time.Time) bool {
	return clock.SameDate(date, today)
}

// Editable reports whether statuses may be set on date: never in the future
// and never outside the season.
func (b Bounds) Editable(date time.Time) bool {
	date = clock.Date(date)
	return !date.After(b.Today) && b.PhaseOf(date) == InSeason
}

func (b Bounds) CanGoForward(selected time.Time) bool {
	return CanNavigateForward(selected, b.Today)
}

func (b Bounds) CanGoBackward(selected time.Time) bool {
	return CanNavigateBackward(selected, b.SeasonStart)
}
