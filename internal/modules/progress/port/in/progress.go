package in

import (
	"context"

	"exodus/internal/modules/progress/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.LoadOutput, error)
	Status(ctx context.Context, input dto.StatusInput) (dto.StatusOutput, error)
	Row(ctx context.Context, input dto.RowInput) (dto.RowOutput, error)
	Mark(ctx context.Context, input dto.MarkInput) (dto.MarkOutput, error)
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.HistoryEntryOutput, error)
	Reindex(ctx context.Context) error
	Restore(ctx context.Context) (dto.LoadOutput, error)
	ExportXLSX(ctx context.Context, input dto.ExportXLSXInput) (dto.ExportXLSXOutput, error)
}
