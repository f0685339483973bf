package usecase

import (
	"context"

	"exodus/internal/modules/discipline/domain"
	"exodus/internal/modules/discipline/dto"
	disciplinein "exodus/internal/modules/discipline/port/in"
)

type Interactor struct {
	catalog domain.Catalog
}

func NewInteractor(catalog domain.Catalog) disciplinein.Usecase {
	return &Interactor{catalog: catalog}
}

func (i *Interactor) List(_ context.Context) ([]dto.DisciplineOutput, error) {
	return toOutputs(i.catalog.All()), nil
}

func (i *Interactor) ForDate(_ context.Context, input dto.ForDateInput) ([]dto.DisciplineOutput, error) {
	return toOutputs(i.catalog.Applicable(input.Date)), nil
}

func toOutputs(items []domain.Discipline) []dto.DisciplineOutput {
	out := make([]dto.DisciplineOutput, 0, len(items))
	for _, d := range items {
		out = append(out, dto.DisciplineOutput{
			ID:        d.ID,
			Name:      d.Name,
			Frequency: string(d.Frequency.Kind),
			Days:      d.Frequency.Days.Names(),
		})
	}
	return out
}
