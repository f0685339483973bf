package usecase

import (
	"context"
	"fmt"

	calendardto "exodus/internal/modules/calendar/dto"
	calendarin "exodus/internal/modules/calendar/port/in"
	"exodus/internal/modules/journal/domain"
	"exodus/internal/modules/journal/dto"
	journalin "exodus/internal/modules/journal/port/in"
	journalout "exodus/internal/modules/journal/port/out"
	seasondomain "exodus/internal/modules/season/domain"
	"exodus/internal/platform/clock"
	apperrors "exodus/internal/platform/errors"
	"exodus/internal/platform/markdown"
)

type Interactor struct {
	window   seasondomain.Window
	calendar calendarin.Usecase
	notes    journalout.NoteStore
}

func NewInteractor(window seasondomain.Window, calendar calendarin.Usecase, notes journalout.NoteStore) journalin.Usecase {
	return &Interactor{window: window, calendar: calendar, notes: notes}
}

// Write creates the day's note or refreshes its frontmatter and progress
// block. Text outside the block and unknown frontmatter keys are kept.
func (i *Interactor) Write(ctx context.Context, input dto.WriteInput) (dto.WriteOutput, error) {
	day, err := i.calendar.Day(ctx, calendardto.DayInput{Date: input.Date, ShowCompleted: true})
	if err != nil {
		return dto.WriteOutput{}, err
	}
	if !i.window.Contains(day.Date) {
		return dto.WriteOutput{}, fmt.Errorf("%w: %s", apperrors.ErrOutOfSeason, clock.DateKey(day.Date))
	}

	existing, found, err := i.notes.Read(ctx, day.Date)
	if err != nil {
		return dto.WriteOutput{}, err
	}
	meta := map[string]any{}
	body := domain.Heading(day.SeasonName, day.Date, day.DayNumber) + "\n"
	if found {
		body, err = markdown.SplitFrontmatter(existing, &meta)
		if err != nil {
			return dto.WriteOutput{}, err
		}
		if meta == nil {
			meta = map[string]any{}
		}
	}

	entries := make([]domain.Entry, 0, len(day.Items))
	for _, item := range day.Items {
		entries = append(entries, domain.Entry{Name: item.Name, Status: item.Status})
	}
	body = markdown.ReplaceManagedBlock(body, domain.ProgressStart, domain.ProgressEnd, domain.ProgressBlock(entries))
	if !found {
		body += "\n## Reflection\n\n"
	}

	meta["date"] = clock.DateKey(day.Date)
	meta["season"] = day.SeasonName
	meta["day"] = day.DayNumber
	meta["percent"] = i.window.ProgressPercent(day.Date)
	meta["completed"] = day.Completed
	meta["scheduled"] = day.Applicable

	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return dto.WriteOutput{}, err
	}
	path, err := i.notes.Write(ctx, day.Date, rendered)
	if err != nil {
		return dto.WriteOutput{}, err
	}
	return dto.WriteOutput{Path: path, Created: !found}, nil
}

// Read returns the stored note; the zero date reads today's.
func (i *Interactor) Read(ctx context.Context, input dto.ReadInput) (dto.ReadOutput, error) {
	date := clock.Date(input.Date)
	if input.Date.IsZero() {
		day, err := i.calendar.Day(ctx, calendardto.DayInput{})
		if err != nil {
			return dto.ReadOutput{}, err
		}
		date = day.Date
	}
	content, found, err := i.notes.Read(ctx, date)
	if err != nil {
		return dto.ReadOutput{}, err
	}
	return dto.ReadOutput{Found: found, Content: content}, nil
}
