package in

import (
	"context"

	"exodus/internal/modules/journal/dto"
)

type Usecase interface {
	Write(ctx context.Context, input dto.WriteInput) (dto.WriteOutput, error)
	Read(ctx context.Context, input dto.ReadInput) (dto.ReadOutput, error)
}
