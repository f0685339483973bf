package usecase

import (
	"context"

	disciplinedomain "exodus/internal/modules/discipline/domain"
	progressdomain "exodus/internal/modules/progress/domain"
	progressin "exodus/internal/modules/progress/port/in"
	seasondomain "exodus/internal/modules/season/domain"
	"exodus/internal/modules/stats/domain"
	"exodus/internal/modules/stats/dto"
	statsin "exodus/internal/modules/stats/port/in"
	"exodus/internal/platform/clock"
)

type Interactor struct {
	window   seasondomain.Window
	catalog  disciplinedomain.Catalog
	progress progressin.Usecase
	clock    clock.Clock
}

func NewInteractor(window seasondomain.Window, catalog disciplinedomain.Catalog, progress progressin.Usecase, clk clock.Clock) statsin.Usecase {
	return &Interactor{window: window, catalog: catalog, progress: progress, clock: clk}
}

func (i *Interactor) Report(ctx context.Context) (dto.ReportOutput, error) {
	snapshot, err := i.progress.Snapshot(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	store := progressdomain.NewStore()
	for day, row := range snapshot.Days {
		converted := make(progressdomain.Row, len(row))
		for id, status := range row {
			converted[id] = progressdomain.Status(status)
		}
		store[day] = converted
	}

	report := domain.Compute(i.window, i.catalog, store, clock.Today(i.clock))
	out := dto.ReportOutput{
		SeasonName:  i.window.Name,
		Started:     report.Days > 0,
		From:        report.From,
		Through:     report.Through,
		Days:        report.Days,
		OverallRate: report.Totals().Rate(),
		Disciplines: make([]dto.DisciplineStats, 0, len(report.Tallies)),
	}
	for _, t := range report.Tallies {
		out.Disciplines = append(out.Disciplines, dto.DisciplineStats{
			ID:            t.DisciplineID,
			Name:          t.Name,
			Applicable:    t.Applicable,
			Completed:     t.Completed,
			Failed:        t.Failed,
			Skipped:       t.Skipped,
			Unset:         t.Unset,
			Rate:          t.Rate(),
			CurrentStreak: t.CurrentStreak,
			LongestStreak: t.LongestStreak,
		})
	}
	return out, nil
}
