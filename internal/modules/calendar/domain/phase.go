package domain

import (
	"fmt"
	"time"

	"exodus/internal/platform/clock"
)

type Phase string

const (
	BeforeSeason Phase = "before"
	InSeason     Phase = "in"
	AfterSeason  Phase = "after"
)

func (b Bounds) PhaseOf(date time.Time) Phase {
	date = clock.Date(date)
	switch {
	case date.Before(b.SeasonStart):
		return BeforeSeason
	case date.After(b.SeasonEnd):
		return AfterSeason
	default:
		return InSeason
	}
}

// Placeholder is the message shown instead of the discipline list for dates
// outside the season. It is empty in season.
func Placeholder(phase Phase, seasonName string) string {
	if seasonName == "" {
		seasonName = "The season"
	}
	switch phase {
	case BeforeSeason:
		return fmt.Sprintf("%s hasn't started yet for this date.", seasonName)
	case AfterSeason:
		return fmt.Sprintf("%s is complete for this date.", seasonName)
	default:
		return ""
	}
}
