package in

import (
	"context"

	statsdto "exodus/internal/modules/stats/dto"
	statsin "exodus/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Report(ctx context.Context) (statsdto.ReportOutput, error) {
	return h.usecase.Report(ctx)
}
