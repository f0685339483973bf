package in

import (
	"context"

	progressdto "exodus/internal/modules/progress/dto"
	progressin "exodus/internal/modules/progress/port/in"
)

// CLIHandler exposes read and maintenance operations only. Marks go through
// the calendar handler, which enforces the editable range.
type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]progressdto.HistoryEntryOutput, error) {
	return h.usecase.History(ctx, progressdto.HistoryInput{Limit: limit})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Restore(ctx context.Context) (progressdto.LoadOutput, error) {
	return h.usecase.Restore(ctx)
}

func (h CLIHandler) ExportXLSX(ctx context.Context, path string) (progressdto.ExportXLSXOutput, error) {
	return h.usecase.ExportXLSX(ctx, progressdto.ExportXLSXInput{Path: path})
}
