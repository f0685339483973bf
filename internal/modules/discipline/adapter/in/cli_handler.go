package in

import (
	"context"
	"time"

	disciplinedto "exodus/internal/modules/discipline/dto"
	disciplinein "exodus/internal/modules/discipline/port/in"
)

type CLIHandler struct {
	usecase disciplinein.Usecase
}

func NewCLIHandler(usecase disciplinein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]disciplinedto.DisciplineOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) ForDate(ctx context.Context, date time.Time) ([]disciplinedto.DisciplineOutput, error) {
	return h.usecase.ForDate(ctx, disciplinedto.ForDateInput{Date: date})
}
