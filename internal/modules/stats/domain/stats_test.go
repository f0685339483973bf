package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	disciplinedomain "exodus/internal/modules/discipline/domain"
	progressdomain "exodus/internal/modules/progress/domain"
	seasondomain "exodus/internal/modules/season/domain"
	"exodus/internal/modules/stats/domain"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func fixture(t *testing.T) (seasondomain.Window, disciplinedomain.Catalog) {
	t.Helper()
	window, err := seasondomain.NewWindow("Lent 2025", day(3, 5), day(4, 20))
	require.NoError(t, err)
	catalog, err := disciplinedomain.NewCatalog([]disciplinedomain.Discipline{
		{ID: "reading", Name: "Reading", Frequency: disciplinedomain.Daily()},
		{ID: "fast", Name: "Fast", Frequency: disciplinedomain.Weekly(disciplinedomain.Wednesday, disciplinedomain.Friday)},
	})
	require.NoError(t, err)
	return window, catalog
}

func TestComputeBeforeSeasonIsEmpty(t *testing.T) {
	t.Parallel()
	window, catalog := fixture(t)
	report := domain.Compute(window, catalog, progressdomain.NewStore(), day(2, 1))
	assert.Zero(t, report.Days)
	require.Len(t, report.Tallies, 2)
	assert.Zero(t, report.Tallies[0].Applicable)
	assert.Zero(t, report.Tallies[0].Rate())
}

func TestComputeCountsAndStreaks(t *testing.T) {
	t.Parallel()
	window, catalog := fixture(t)
	store := progressdomain.NewStore()
	mark := func(date time.Time, id string, s progressdomain.Status) {
		store = store.With(date, id, s)
	}
	// reading: 5 done, 6 failed, 7 done, 8 skipped, 9 done, 10 unset (today)
	mark(day(3, 5), "reading", progressdomain.StatusCompleted)
	mark(day(3, 6), "reading", progressdomain.StatusFailed)
	mark(day(3, 7), "reading", progressdomain.StatusCompleted)
	mark(day(3, 8), "reading", progressdomain.StatusSkipped)
	mark(day(3, 9), "reading", progressdomain.StatusCompleted)
	// fast applies on 5 (Wed) and 7 (Fri)
	mark(day(3, 5), "fast", progressdomain.StatusCompleted)

	report := domain.Compute(window, catalog, store, day(3, 10))
	assert.Equal(t, 6, report.Days)
	assert.Equal(t, day(3, 10), report.Through)

	reading := report.Tallies[0]
	assert.Equal(t, 6, reading.Applicable)
	assert.Equal(t, 3, reading.Completed)
	assert.Equal(t, 1, reading.Failed)
	assert.Equal(t, 1, reading.Skipped)
	assert.Equal(t, 1, reading.Unset)
	assert.Equal(t, 2, reading.CurrentStreak)
	assert.Equal(t, 2, reading.LongestStreak)
	assert.Equal(t, 60, reading.Rate())

	fast := report.Tallies[1]
	assert.Equal(t, 2, fast.Applicable)
	assert.Equal(t, 1, fast.Completed)
	assert.Equal(t, 1, fast.Unset)
	assert.Equal(t, 0, fast.CurrentStreak)
	assert.Equal(t, 1, fast.LongestStreak)

	totals := report.Totals()
	assert.Equal(t, 8, totals.Applicable)
	assert.Equal(t, 4, totals.Completed)
}

func TestComputeAfterSeasonStopsAtEnd(t *testing.T) {
	t.Parallel()
	window, catalog := fixture(t)
	report := domain.Compute(window, catalog, progressdomain.NewStore(), day(6, 1))
	assert.Equal(t, 47, report.Days)
	assert.Equal(t, day(4, 20), report.Through)
	assert.Equal(t, 47, report.Tallies[0].Applicable)
	assert.Equal(t, 47, report.Tallies[0].Unset)
}
