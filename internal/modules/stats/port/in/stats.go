package in

import (
	"context"

	"exodus/internal/modules/stats/dto"
)

type Usecase interface {
	Report(ctx context.Context) (dto.ReportOutput, error)
}
