package in

import (
	"context"
	"time"

	journaldto "exodus/internal/modules/journal/dto"
	journalin "exodus/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Write(ctx context.Context, date time.Time) (journaldto.WriteOutput, error) {
	return h.usecase.Write(ctx, journaldto.WriteInput{Date: date})
}

func (h CLIHandler) Read(ctx context.Context, date time.Time) (journaldto.ReadOutput, error) {
	return h.usecase.Read(ctx, journaldto.ReadInput{Date: date})
}
