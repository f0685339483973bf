package in

import (
	"context"

	"exodus/internal/modules/calendar/dto"
)

type Usecase interface {
	Day(ctx context.Context, input dto.DayInput) (dto.DayOutput, error)
	Mark(ctx context.Context, input dto.MarkInput) (dto.MarkOutput, error)
	Navigate(ctx context.Context, input dto.NavigateInput) (dto.NavigateOutput, error)
	Schedule(ctx context.Context) (dto.ScheduleOutput, error)
	ExportICS(ctx context.Context, input dto.ExportICSInput) (dto.ExportICSOutput, error)
}
