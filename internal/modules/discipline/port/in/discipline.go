package in

import (
	"context"

	"exodus/internal/modules/discipline/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.DisciplineOutput, error)
	ForDate(ctx context.Context, input dto.ForDateInput) ([]dto.DisciplineOutput, error)
}
