package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exodus/internal/modules/calendar/domain"
	"exodus/internal/modules/calendar/dto"
	calendarin "exodus/internal/modules/calendar/port/in"
	disciplinedomain "exodus/internal/modules/discipline/domain"
	progressdomain "exodus/internal/modules/progress/domain"
	progressdto "exodus/internal/modules/progress/dto"
	progressin "exodus/internal/modules/progress/port/in"
	seasondomain "exodus/internal/modules/season/domain"
	"exodus/internal/platform/clock"
	apperrors "exodus/internal/platform/errors"
	"exodus/internal/platform/ics"
)

const icsProductID = "-//exodus//season calendar//EN"

type Interactor struct {
	window   seasondomain.Window
	catalog  disciplinedomain.Catalog
	progress progressin.Usecase
	clock    clock.Clock
	bounds   domain.Bounds
}

// NewInteractor captures today from clk once; every navigation and edit
// check in this session uses that reading.
func NewInteractor(window seasondomain.Window, catalog disciplinedomain.Catalog, progress progressin.Usecase, clk clock.Clock) calendarin.Usecase {
	return &Interactor{
		window:   window,
		catalog:  catalog,
		progress: progress,
		clock:    clk,
		bounds:   domain.NewBounds(window.Start, window.End, clock.Today(clk)),
	}
}

func (i *Interactor) Day(ctx context.Context, input dto.DayInput) (dto.DayOutput, error) {
	date := i.resolve(input.Date)
	phase := i.bounds.PhaseOf(date)
	out := dto.DayOutput{
		SeasonName:    i.window.Name,
		Date:          date,
		Today:         i.bounds.Today,
		IsToday:       domain.IsToday(date, i.bounds.Today),
		DayNumber:     i.window.DayNumber(date),
		Phase:         string(phase),
		Placeholder:   domain.Placeholder(phase, i.window.Name),
		CanPrevious:   i.bounds.CanGoBackward(date),
		CanNext:       i.bounds.CanGoForward(date),
		Editable:      i.bounds.Editable(date),
		ShowCompleted: input.ShowCompleted,
	}
	if phase != domain.InSeason {
		return out, nil
	}

	row, err := i.row(ctx, date)
	if err != nil {
		return dto.DayOutput{}, err
	}
	applicable := i.catalog.Applicable(date)
	out.Applicable = len(applicable)
	for _, d := range applicable {
		if row[d.ID] == progressdomain.StatusCompleted {
			out.Completed++
		}
	}
	out.AllDone = out.Applicable > 0 && out.Completed == out.Applicable

	visible := domain.VisibleDisciplines(i.catalog, date, row, input.ShowCompleted)
	out.Items = make([]dto.DayItem, 0, len(visible))
	for _, d := range visible {
		status, set := row[d.ID]
		out.Items = append(out.Items, dto.DayItem{
			ID:        d.ID,
			Name:      d.Name,
			Frequency: d.Frequency.String(),
			Status:    string(status),
			Set:       set,
		})
	}
	return out, nil
}

func (i *Interactor) row(ctx context.Context, date time.Time) (progressdomain.Row, error) {
	res, err := i.progress.Row(ctx, progressdto.RowInput{Date: date})
	if err != nil {
		return nil, err
	}
	row := make(progressdomain.Row, len(res.Statuses))
	for id, status := range res.Statuses {
		row[id] = progressdomain.Status(status)
	}
	return row, nil
}

// Mark ignores edits on dates that are not editable and on disciplines that
// do not apply to the date; such requests come back with Applied=false.
func (i *Interactor) Mark(ctx context.Context, input dto.MarkInput) (dto.MarkOutput, error) {
	date := i.resolve(input.Date)
	out := dto.MarkOutput{Date: date, DisciplineID: input.DisciplineID}

	d, ok := i.catalog.Find(input.DisciplineID)
	if !ok {
		return dto.MarkOutput{}, fmt.Errorf("%w: discipline %q", apperrors.ErrNotFound, input.DisciplineID)
	}
	if _, err := progressdomain.ParseStatus(input.Status); err != nil {
		return dto.MarkOutput{}, err
	}
	if !i.bounds.Editable(date) {
		if i.bounds.PhaseOf(date) != domain.InSeason {
			out.Reason = apperrors.ErrOutOfSeason.Error()
		} else {
			out.Reason = apperrors.ErrNotEditable.Error()
		}
		return out, nil
	}
	if !disciplinedomain.IsApplicable(d, date) {
		out.Reason = fmt.Sprintf("%s is not scheduled on %s", d.Name, date.Weekday())
		return out, nil
	}

	res, err := i.progress.Mark(ctx, progressdto.MarkInput{Date: date, DisciplineID: d.ID, Status: input.Status})
	if err != nil {
		return dto.MarkOutput{}, err
	}
	out.Applied = true
	out.Status = res.Status
	out.Previous = res.Previous
	out.FirstCompletion = res.FirstCompletion
	out.PersistError = res.PersistError
	return out, nil
}

func (i *Interactor) Navigate(_ context.Context, input dto.NavigateInput) (dto.NavigateOutput, error) {
	intent, err := parseIntent(input.Intent)
	if err != nil {
		return dto.NavigateOutput{}, err
	}
	next, moved := i.bounds.Step(i.resolve(input.From), intent)
	return dto.NavigateOutput{Date: next, Moved: moved}, nil
}

func parseIntent(value string) (domain.Intent, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "previous", "prev", "back":
		return domain.NavigatePrevious, nil
	case "next", "forward":
		return domain.NavigateNext, nil
	default:
		return 0, fmt.Errorf("%w: unknown navigation intent %q", apperrors.ErrInvalidInput, value)
	}
}

// Schedule lists every season day with the disciplines that do not apply
// daily.
func (i *Interactor) Schedule(_ context.Context) (dto.ScheduleOutput, error) {
	out := dto.ScheduleOutput{SeasonName: i.window.Name}
	for day := i.window.Start; !day.After(i.window.End); day = clock.AddDays(day, 1) {
		entry := dto.ScheduleDay{Date: day, DayNumber: i.window.DayNumber(day)}
		for _, d := range i.catalog.Applicable(day) {
			if d.Frequency.Kind == disciplinedomain.FrequencyDaily {
				continue
			}
			entry.Disciplines = append(entry.Disciplines, d.Name)
		}
		out.Days = append(out.Days, entry)
	}
	return out, nil
}

// ExportICS writes one all-day event per scheduled non-daily discipline.
func (i *Interactor) ExportICS(ctx context.Context, input dto.ExportICSInput) (dto.ExportICSOutput, error) {
	if input.Writer == nil {
		return dto.ExportICSOutput{}, fmt.Errorf("%w: writer is required", apperrors.ErrInvalidInput)
	}
	cal := ics.Calendar{
		ProductID: icsProductID,
		Name:      i.window.Name,
		Stamp:     i.clock.Now(),
	}
	for day := i.window.Start; !day.After(i.window.End); day = clock.AddDays(day, 1) {
		for _, d := range i.catalog.Applicable(day) {
			if d.Frequency.Kind == disciplinedomain.FrequencyDaily {
				continue
			}
			cal.Events = append(cal.Events, ics.Event{
				UID:         fmt.Sprintf("%s-%s@exodus", clock.DateKey(day), d.ID),
				Date:        day,
				Summary:     d.Name,
				Description: fmt.Sprintf("Day %d of %s", i.window.DayNumber(day), i.window.Name),
			})
		}
	}
	if err := ctx.Err(); err != nil {
		return dto.ExportICSOutput{}, err
	}
	if err := ics.Write(input.Writer, cal); err != nil {
		return dto.ExportICSOutput{}, err
	}
	return dto.ExportICSOutput{Events: len(cal.Events)}, nil
}

func (i *Interactor) resolve(date time.Time) time.Time {
	if date.IsZero() {
		return i.bounds.Today
	}
	return clock.Date(date)
}
