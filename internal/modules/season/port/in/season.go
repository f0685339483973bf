package in

import (
	"context"

	"exodus/internal/modules/season/dto"
)

type Usecase interface {
	Overview(ctx context.Context) (dto.OverviewOutput, error)
}
