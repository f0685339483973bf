package in

import (
	"context"

	seasondto "exodus/internal/modules/season/dto"
	seasonin "exodus/internal/modules/season/port/in"
)

type CLIHandler struct {
	usecase seasonin.Usecase
}

func NewCLIHandler(usecase seasonin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Overview(ctx context.Context) (seasondto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}
