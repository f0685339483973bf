package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	disciplinedomain "exodus/internal/modules/discipline/domain"
	"exodus/internal/modules/progress/domain"
	"exodus/internal/modules/progress/dto"
	progressin "exodus/internal/modules/progress/port/in"
	progressout "exodus/internal/modules/progress/port/out"
	"exodus/internal/modules/progress/service"
	seasondomain "exodus/internal/modules/season/domain"
	"exodus/internal/platform/clock"
	apperrors "exodus/internal/platform/errors"
)

type Interactor struct {
	svc      *service.ProgressService
	exporter progressout.GridExporter
	window   seasondomain.Window
	catalog  disciplinedomain.Catalog
}

func NewInteractor(
	svc *service.ProgressService,
	exporter progressout.GridExporter,
	window seasondomain.Window,
	catalog disciplinedomain.Catalog,
) progressin.Usecase {
	return &Interactor{svc: svc, exporter: exporter, window: window, catalog: catalog}
}

func (i *Interactor) Load(ctx context.Context) (dto.LoadOutput, error) {
	store := i.svc.Load(ctx)
	return dto.LoadOutput{Days: len(store), Cells: store.Cells()}, nil
}

func (i *Interactor) Status(_ context.Context, input dto.StatusInput) (dto.StatusOutput, error) {
	status, ok := i.svc.StatusOf(input.Date, input.DisciplineID)
	return dto.StatusOutput{Status: string(status), Set: ok}, nil
}

func (i *Interactor) Row(_ context.Context, input dto.RowInput) (dto.RowOutput, error) {
	date := clock.Date(input.Date)
	row := i.svc.Snapshot().Row(date)
	out := dto.RowOutput{Date: date, Statuses: make(map[string]string, len(row))}
	for id, status := range row {
		out.Statuses[id] = string(status)
	}
	return out, nil
}

func (i *Interactor) Mark(ctx context.Context, input dto.MarkInput) (dto.MarkOutput, error) {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return dto.MarkOutput{}, err
	}
	if _, ok := i.catalog.Find(input.DisciplineID); !ok {
		return dto.MarkOutput{}, fmt.Errorf("%w: discipline %q", apperrors.ErrNotFound, input.DisciplineID)
	}
	result, err := i.svc.Mark(ctx, input.Date, input.DisciplineID, status)
	if err != nil {
		return dto.MarkOutput{}, err
	}
	out := dto.MarkOutput{
		Date:            result.Date,
		DisciplineID:    result.DisciplineID,
		Status:          string(result.Status),
		Previous:        string(result.Previous),
		FirstCompletion: result.FirstCompletion,
	}
	if result.PersistErr != nil {
		out.PersistError = result.PersistErr.Error()
	}
	return out, nil
}

func (i *Interactor) Snapshot(_ context.Context) (dto.SnapshotOutput, error) {
	store := i.svc.Snapshot()
	out := dto.SnapshotOutput{Days: make(map[string]map[string]string, len(store))}
	for day, row := range store {
		statuses := make(map[string]string, len(row))
		for id, status := range row {
			statuses[id] = string(status)
		}
		out.Days[day] = statuses
	}
	return out, nil
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.HistoryEntryOutput, error) {
	entries, err := i.svc.History(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryOutput{
			ID:           e.ID,
			Date:         e.Date,
			DisciplineID: e.DisciplineID,
			Status:       string(e.Status),
			Previous:     string(e.Previous),
			RecordedAt:   e.RecordedAt,
		})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) Restore(ctx context.Context) (dto.LoadOutput, error) {
	store, err := i.svc.Restore(ctx)
	if err != nil {
		return dto.LoadOutput{}, err
	}
	return dto.LoadOutput{Days: len(store), Cells: store.Cells()}, nil
}

// ExportXLSX writes every season day with the status of each discipline that
// applies to it. Inapplicable cells stay blank and unset ones read "-".
func (i *Interactor) ExportXLSX(_ context.Context, input dto.ExportXLSXInput) (dto.ExportXLSXOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return dto.ExportXLSXOutput{}, fmt.Errorf("%w: output path is required", apperrors.ErrInvalidInput)
	}
	if i.exporter == nil {
		return dto.ExportXLSXOutput{}, errors.New("xlsx exporter is not configured")
	}
	grid := BuildGrid(i.window, i.catalog, i.svc.Snapshot())
	if err := i.exporter.Export(input.Path, grid); err != nil {
		return dto.ExportXLSXOutput{}, err
	}
	return dto.ExportXLSXOutput{Path: input.Path, Rows: len(grid.Rows)}, nil
}

func BuildGrid(window seasondomain.Window, catalog disciplinedomain.Catalog, store domain.Store) progressout.Grid {
	all := catalog.All()
	grid := progressout.Grid{Columns: make([]string, 0, len(all))}
	for _, d := range all {
		grid.Columns = append(grid.Columns, d.Name)
	}
	for day := window.Start; !day.After(window.End); day = clock.AddDays(day, 1) {
		row := progressout.GridRow{Date: clock.DateKey(day), Cells: make([]string, len(all))}
		for idx, d := range all {
			if !disciplinedomain.IsApplicable(d, day) {
				continue
			}
			if status, ok := store.StatusOf(day, d.ID); ok {
				row.Cells[idx] = string(status)
			} else {
				row.Cells[idx] = "-"
			}
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}
