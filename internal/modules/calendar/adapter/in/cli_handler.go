package in

import (
	"context"
	"io"
	"time"

	calendardto "exodus/internal/modules/calendar/dto"
	calendarin "exodus/internal/modules/calendar/port/in"
)

type CLIHandler struct {
	usecase calendarin.Usecase
}

func NewCLIHandler(usecase calendarin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Day(ctx context.Context, date time.Time, showCompleted bool) (calendardto.DayOutput, error) {
	return h.usecase.Day(ctx, calendardto.DayInput{Date: date, ShowCompleted: showCompleted})
}

func (h CLIHandler) Mark(ctx context.Context, date time.Time, disciplineID, status string) (calendardto.MarkOutput, error) {
	return h.usecase.Mark(ctx, calendardto.MarkInput{Date: date, DisciplineID: disciplineID, Status: status})
}

func (h CLIHandler) Navigate(ctx context.Context, from time.Time, intent string) (calendardto.NavigateOutput, error) {
	return h.usecase.Navigate(ctx, calendardto.NavigateInput{From: from, Intent: intent})
}

func (h CLIHandler) Schedule(ctx context.Context) (calendardto.ScheduleOutput, error) {
	return h.usecase.Schedule(ctx)
}

func (h CLIHandler) ExportICS(ctx context.Context, w io.Writer) (calendardto.ExportICSOutput, error) {
	return h.usecase.ExportICS(ctx, calendardto.ExportICSInput{Writer: w})
}
