package domain

import (
	"math"
	"time"

	disciplinedomain "exodus/internal/modules/discipline/domain"
	progressdomain "exodus/internal/modules/progress/domain"
	seasondomain "exodus/internal/modules/season/domain"
	"exodus/internal/platform/clock"
)

// Tally counts outcomes for one discipline over the covered days.
type Tally struct {
	DisciplineID  string
	Name          string
	Applicable    int
	Completed     int
	Failed        int
	Skipped       int
	Unset         int
	CurrentStreak int
	LongestStreak int
}

// Rate is completed over applicable days that were not skipped, as a whole
// percentage.
func (t Tally) Rate() int {
	counted := t.Applicable - t.Skipped
	if counted <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(t.Completed) / float64(counted)))
}

// Report covers the season from its first day through the last day that has
// already begun.
type Report struct {
	From    time.Time
	Through time.Time
	Days    int
	Tallies []Tally
}

func (r Report) Totals() Tally {
	var total Tally
	for _, t := range r.Tallies {
		total.Applicable += t.Applicable
		total.Completed += t.Completed
		total.Failed += t.Failed
		total.Skipped += t.Skipped
		total.Unset += t.Unset
	}
	return total
}

// Covered returns the inclusive range of season days up to today. ok is
// false before the season starts.
func Covered(window seasondomain.Window, today time.Time) (from, through time.Time, ok bool) {
	today = clock.Date(today)
	if today.Before(window.Start) {
		return time.Time{}, time.Time{}, false
	}
	through = window.End
	if today.Before(through) {
		through = today
	}
	return window.Start, through, true
}

// Compute tallies every discipline in catalog order. A skipped day neither
// extends nor breaks a streak. Today's unset cell does not break the current
// streak since the day is still open.
func Compute(window seasondomain.Window, catalog disciplinedomain.Catalog, store progressdomain.Store, today time.Time) Report {
	today = clock.Date(today)
	all := catalog.All()
	report := Report{Tallies: make([]Tally, 0, len(all))}
	from, through, ok := Covered(window, today)
	if ok {
		report.From, report.Through = from, through
		report.Days = clock.DaysBetween(from, through) + 1
	}
	for _, d := range all {
		tally := Tally{DisciplineID: d.ID, Name: d.Name}
		if ok {
			fill(&tally, d, store, from, through, today)
		}
		report.Tallies = append(report.Tallies, tally)
	}
	return report
}

func fill(t *Tally, d disciplinedomain.Discipline, store progressdomain.Store, from, through, today time.Time) {
	run := 0
	for day := from; !day.After(through); day = clock.AddDays(day, 1) {
		if !disciplinedomain.IsApplicable(d, day) {
			continue
		}
		t.Applicable++
		status, set := store.StatusOf(day, d.ID)
		switch {
		case !set:
			t.Unset++
			if !day.Equal(today) {
				run = 0
			}
		case status == progressdomain.StatusCompleted:
			t.Completed++
			run++
		case status == progressdomain.StatusFailed:
			t.Failed++
			run = 0
		case status == progressdomain.StatusSkipped:
			t.Skipped++
		}
		if run > t.LongestStreak {
			t.LongestStreak = run
		}
	}
	t.CurrentStreak = run
}
