package bootstrap

import (
	"fmt"

	disciplinedomain "exodus/internal/modules/discipline/domain"
	seasondomain "exodus/internal/modules/season/domain"
	"exodus/internal/platform/clock"
	"exodus/internal/platform/config"
)

// BuildSeason turns the season file into the validated window and catalog.
func BuildSeason(file config.SeasonFile) (seasondomain.Window, disciplinedomain.Catalog, error) {
	start, err := clock.ParseDate(file.Start)
	if err != nil {
		return seasondomain.Window{}, disciplinedomain.Catalog{}, fmt.Errorf("season start: %w", err)
	}
	end, err := clock.ParseDate(file.End)
	if err != nil {
		return seasondomain.Window{}, disciplinedomain.Catalog{}, fmt.Errorf("season end: %w", err)
	}
	window, err := seasondomain.NewWindow(file.Name, start, end)
	if err != nil {
		return seasondomain.Window{}, disciplinedomain.Catalog{}, err
	}

	items := make([]disciplinedomain.Discipline, 0, len(file.Disciplines))
	for _, entry := range file.Disciplines {
		freq, err := frequencyOf(entry)
		if err != nil {
			return seasondomain.Window{}, disciplinedomain.Catalog{}, fmt.Errorf("discipline %q: %w", entry.ID, err)
		}
		items = append(items, disciplinedomain.Discipline{ID: entry.ID, Name: entry.Name, Frequency: freq})
	}
	catalog, err := disciplinedomain.NewCatalog(items)
	if err != nil {
		return seasondomain.Window{}, disciplinedomain.Catalog{}, err
	}
	return window, catalog, nil
}

func frequencyOf(entry config.DisciplineEntry) (disciplinedomain.Frequency, error) {
	kind := disciplinedomain.FrequencyKind(entry.Frequency)
	if err := kind.Validate(); err != nil {
		return disciplinedomain.Frequency{}, err
	}
	days := make([]disciplinedomain.Weekday, 0, len(entry.Days))
	for _, name := range entry.Days {
		d, err := disciplinedomain.ParseWeekday(name)
		if err != nil {
			return disciplinedomain.Frequency{}, err
		}
		days = append(days, d)
	}
	return disciplinedomain.Frequency{Kind: kind, Days: disciplinedomain.NewWeekdaySet(days...)}, nil
}

// SeasonForYear is the built-in catalog moved onto the Lent window of year.
func SeasonForYear(year int) (config.SeasonFile, error) {
	file, err := config.DefaultSeason()
	if err != nil {
		return config.SeasonFile{}, err
	}
	window := seasondomain.LentWindow(year)
	file.Name = window.Name
	file.Start = clock.DateKey(window.Start)
	file.End = clock.DateKey(window.End)
	return file, nil
}
