package usecase

import (
	"context"

	"exodus/internal/modules/season/domain"
	"exodus/internal/modules/season/dto"
	seasonin "exodus/internal/modules/season/port/in"
	"exodus/internal/platform/clock"
)

type Interactor struct {
	window domain.Window
	clock  clock.Clock
}

func NewInteractor(window domain.Window, clk clock.Clock) seasonin.Usecase {
	return &Interactor{window: window, clock: clk}
}

// Overview samples the clock on every call; progress follows real time even
// when the navigation bound was captured earlier.
func (i *Interactor) Overview(_ context.Context) (dto.OverviewOutput, error) {
	today := clock.Today(i.clock)
	w := i.window
	return dto.OverviewOutput{
		Name:           w.Name,
		Start:          w.Start,
		End:            w.End,
		Today:          today,
		TotalDays:      w.TotalDays(),
		DaysElapsed:    w.DaysElapsed(today),
		Percent:        w.ProgressPercent(today),
		DayNumber:      w.DayNumber(today),
		Active:         w.IsActive(today),
		Finished:       today.After(w.End),
		DaysUntilStart: w.DaysUntilStart(today),
	}, nil
}
