package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"exodus/internal/modules/calendar/dto"
	calendarin "exodus/internal/modules/calendar/port/in"
	"exodus/internal/modules/calendar/usecase"
	disciplinedomain "exodus/internal/modules/discipline/domain"
	progressadapter "exodus/internal/modules/progress/adapter/out"
	progressdomain "exodus/internal/modules/progress/domain"
	"exodus/internal/modules/progress/service"
	progressusecase "exodus/internal/modules/progress/usecase"
	seasondomain "exodus/internal/modules/season/domain"
	"exodus/internal/platform/clock"
	apperrors "exodus/internal/platform/errors"
	"exodus/internal/platform/id"
)

func date(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

type harness struct {
	uc  calendarin.Usecase
	svc *service.ProgressService
}

func newHarness(t *testing.T, now time.Time) harness {
	t.Helper()
	window, err := seasondomain.NewWindow("Lent 2025", date(3, 5), date(4, 20))
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	catalog, err := disciplinedomain.NewCatalog([]disciplinedomain.Discipline{
		{ID: "reading", Name: "Reading", Frequency: disciplinedomain.Daily()},
		{ID: "exercise", Name: "Exercise", Frequency: disciplinedomain.OnWeekdays(disciplinedomain.Monday, disciplinedomain.Wednesday, disciplinedomain.Friday)},
		{ID: "fast", Name: "Fast", Frequency: disciplinedomain.Weekly(disciplinedomain.Wednesday, disciplinedomain.Friday)},
		{ID: "sunday", Name: "Sunday", Frequency: disciplinedomain.Weekly(disciplinedomain.Sunday)},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	clk := clock.Fixed{At: now}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewProgressService(clk, id.UUIDv7{}, progressadapter.NewFileKeyValueStore(t.TempDir()), nil, nil, logger)
	progress := progressusecase.NewInteractor(svc, nil, window, catalog)
	return harness{uc: usecase.NewInteractor(window, catalog, progress, clk), svc: svc}
}

func TestDayDefaultsToToday(t *testing.T) {
	t.Parallel()
	h := newHarness(t, time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC))
	out, err := h.uc.Day(context.Background(), dto.DayInput{ShowCompleted: true})
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if !out.Date.Equal(date(3, 12)) || !out.IsToday || out.DayNumber != 8 {
		t.Fatalf("unexpected day header %+v", out)
	}
	if out.CanNext || !out.CanPrevious || !out.Editable {
		t.Fatalf("unexpected navigation flags %+v", out)
	}
	if len(out.Items) != 3 || out.Items[0].ID != "reading" || out.Items[2].ID != "fast" {
		t.Fatalf("unexpected wednesday items %+v", out.Items)
	}
}

func TestDayHidesCompletedWhenFiltered(t *testing.T) {
	t.Parallel()
	h := newHarness(t, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	for _, disciplineID := range []string{"reading", "exercise"} {
		if _, err := h.uc.Mark(ctx, dto.MarkInput{DisciplineID: disciplineID, Status: "completed"}); err != nil {
			t.Fatalf("mark %s: %v", disciplineID, err)
		}
	}
	out, err := h.uc.Day(ctx, dto.DayInput{ShowCompleted: false})
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].ID != "fast" || out.AllDone {
		t.Fatalf("unexpected filtered day %+v", out)
	}
	if out.Applicable != 3 || out.Completed != 2 {
		t.Fatalf("unexpected counts %d/%d", out.Completed, out.Applicable)
	}

	if _, err := h.uc.Mark(ctx, dto.MarkInput{DisciplineID: "fast", Status: "completed"}); err != nil {
		t.Fatalf("mark fast: %v", err)
	}
	done, err := h.uc.Day(ctx, dto.DayInput{ShowCompleted: false})
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(done.Items) != 0 || !done.AllDone {
		t.Fatalf("expected all done, got %+v", done)
	}
}

func TestDayOutsideSeasonShowsPlaceholder(t *testing.T) {
	t.Parallel()
	h := newHarness(t, time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC))
	out, err := h.uc.Day(context.Background(), dto.DayInput{})
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if out.Phase != "before" || out.Placeholder != "Lent 2025 hasn't started yet for this date." {
		t.Fatalf("unexpected placeholder %+v", out)
	}
	if out.Items != nil || out.Editable || out.CanPrevious || out.CanNext {
		t.Fatalf("expected inert day, got %+v", out)
	}
}

func TestMarkIgnoresFutureAndUnscheduled(t *testing.T) {
	t.Parallel()
	h := newHarness(t, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	future, err := h.uc.Mark(ctx, dto.MarkInput{Date: date(3, 13), DisciplineID: "reading", Status: "completed"})
	if err != nil {
		t.Fatalf("mark future: %v", err)
	}
	if future.Applied || future.Reason != apperrors.ErrNotEditable.Error() {
		t.Fatalf("expected ignored future mark, got %+v", future)
	}

	before, err := h.uc.Mark(ctx, dto.MarkInput{Date: date(3, 1), DisciplineID: "reading", Status: "completed"})
	if err != nil {
		t.Fatalf("mark before season: %v", err)
	}
	if before.Applied || before.Reason != apperrors.ErrOutOfSeason.Error() {
		t.Fatalf("expected ignored out-of-season mark, got %+v", before)
	}

	// 2025-03-08 is a Saturday
	saturday, err := h.uc.Mark(ctx, dto.MarkInput{Date: date(3, 8), DisciplineID: "exercise", Status: "completed"})
	if err != nil {
		t.Fatalf("mark saturday: %v", err)
	}
	if saturday.Applied {
		t.Fatalf("exercise is not scheduled on saturday")
	}
	if len(h.svc.Snapshot()) != 0 {
		t.Fatalf("ignored marks must not touch the store: %v", h.svc.Snapshot())
	}

	if _, err := h.uc.Mark(ctx, dto.MarkInput{DisciplineID: "yoga", Status: "completed"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkFlipsFailedToCompleted(t *testing.T) {
	t.Parallel()
	h := newHarness(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	if _, err := h.uc.Mark(ctx, dto.MarkInput{DisciplineID: "reading", Status: "failed"}); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	first, err := h.uc.Mark(ctx, dto.MarkInput{DisciplineID: "reading", Status: "completed"})
	if err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if !first.Applied || !first.FirstCompletion || first.Previous != "failed" {
		t.Fatalf("unexpected first completion %+v", first)
	}
	again, err := h.uc.Mark(ctx, dto.MarkInput{DisciplineID: "reading", Status: "completed"})
	if err != nil {
		t.Fatalf("mark again: %v", err)
	}
	if again.FirstCompletion {
		t.Fatalf("repeat completion must not notify")
	}
	if status, _ := h.svc.StatusOf(date(3, 10), "reading"); status != progressdomain.StatusCompleted {
		t.Fatalf("unexpected status %q", status)
	}
}

func TestNavigate(t *testing.T) {
	t.Parallel()
	h := newHarness(t, time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	back, err := h.uc.Navigate(ctx, dto.NavigateInput{Intent: "previous"})
	if err != nil || !back.Moved || !back.Date.Equal(date(3, 5)) {
		t.Fatalf("unexpected back %+v err=%v", back, err)
	}
	stuck, err := h.uc.Navigate(ctx, dto.NavigateInput{From: back.Date, Intent: "previous"})
	if err != nil || stuck.Moved || !stuck.Date.Equal(date(3, 5)) {
		t.Fatalf("unexpected stuck %+v err=%v", stuck, err)
	}
	forward, err := h.uc.Navigate(ctx, dto.NavigateInput{Intent: "next"})
	if err != nil || forward.Moved {
		t.Fatalf("cannot move past today, got %+v err=%v", forward, err)
	}
	if _, err := h.uc.Navigate(ctx, dto.NavigateInput{Intent: "sideways"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid intent, got %v", err)
	}
}

func TestScheduleAndICS(t *testing.T) {
	t.Parallel()
	h := newHarness(t, time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	schedule, err := h.uc.Schedule(ctx)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(schedule.Days) != 47 {
		t.Fatalf("expected 47 season days, got %d", len(schedule.Days))
	}
	ash := schedule.Days[0]
	if strings.Join(ash.Disciplines, ",") != "Exercise,Fast" || ash.DayNumber != 1 {
		t.Fatalf("unexpected ash wednesday %+v", ash)
	}

	var buf bytes.Buffer
	out, err := h.uc.ExportICS(ctx, dto.ExportICSInput{Writer: &buf})
	if err != nil {
		t.Fatalf("export ics: %v", err)
	}
	wednesdays, fridays, mondays, sundays := 7, 7, 6, 7
	want := (wednesdays + fridays + mondays) + (wednesdays + fridays) + sundays
	if out.Events != want {
		t.Fatalf("expected %d events, got %d", want, out.Events)
	}
	body := buf.String()
	if !strings.Contains(body, "UID:2025-03-05-fast@exodus\r\n") || !strings.Contains(body, "X-WR-CALNAME:Lent 2025\r\n") {
		t.Fatalf("unexpected calendar body:\n%s", body)
	}
}
