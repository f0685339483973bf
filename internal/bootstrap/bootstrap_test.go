package bootstrap_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"exodus/internal/bootstrap"
	"exodus/internal/platform/clock"
	"exodus/internal/platform/config"
)

func newApp(t *testing.T, at time.Time) (*bootstrap.App, config.Config) {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := bootstrap.NewWithClock(cfg, logger, clock.Fixed{At: at})
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app, cfg
}

func TestMarkPersistsAndAnnouncesFirstCompletion(t *testing.T) {
	t.Parallel()
	app, cfg := newApp(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	out, err := app.CalendarCLI.Mark(ctx, time.Time{}, "reading", "completed")
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if !out.Applied || !out.FirstCompletion || out.PersistError != "" {
		t.Fatalf("unexpected mark output %+v", out)
	}

	select {
	case event := <-app.Completions.Events():
		if event.DisciplineID != "reading" {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected completion event")
	}

	raw, err := os.ReadFile(filepath.Join(cfg.StateDir, "progressState.json"))
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	if !strings.Contains(string(raw), "2025-03-10") || !strings.Contains(string(raw), "reading") {
		t.Fatalf("state not persisted: %s", raw)
	}

	history, err := app.ProgressCLI.History(ctx, 5)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Status != "completed" {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestProgressSurvivesRestart(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.Fixed{At: time.Date(2025, 3, 12, 20, 0, 0, 0, time.UTC)}

	first, err := bootstrap.NewWithClock(cfg, logger, clk)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := first.CalendarCLI.Mark(context.Background(), time.Time{}, "fast", "failed"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := bootstrap.NewWithClock(cfg, logger, clk)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	day, err := second.CalendarCLI.Day(context.Background(), time.Time{}, true)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	for _, item := range day.Items {
		if item.ID == "fast" {
			if !item.Set || item.Status != "failed" {
				t.Fatalf("fast not restored: %+v", item)
			}
			return
		}
	}
	t.Fatalf("fast not listed on Wednesday: %+v", day.Items)
}

func TestCustomSeasonFileIsUsed(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	season, err := bootstrap.SeasonForYear(2026)
	if err != nil {
		t.Fatalf("season for year: %v", err)
	}
	if err := config.WriteSeason(cfg.SeasonPath, season, false); err != nil {
		t.Fatalf("write season: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := bootstrap.NewWithClock(cfg, logger, clock.Fixed{At: time.Date(2026, 2, 18, 8, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()
	overview, err := app.SeasonCLI.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Name != "Lent 2026" || !overview.Active || overview.DayNumber != 1 {
		t.Fatalf("unexpected overview %+v", overview)
	}
}

func TestSeasonForYear(t *testing.T) {
	t.Parallel()
	season, err := bootstrap.SeasonForYear(2025)
	if err != nil {
		t.Fatalf("season for year: %v", err)
	}
	if season.Start != "2025-03-05" || season.End != "2025-04-20" || season.Name != "Lent 2025" {
		t.Fatalf("unexpected window %s..%s %q", season.Start, season.End, season.Name)
	}
	if len(season.Disciplines) == 0 {
		t.Fatalf("expected built-in disciplines")
	}
}

func TestBuildSeasonRejectsBadInput(t *testing.T) {
	t.Parallel()
	base, err := config.DefaultSeason()
	if err != nil {
		t.Fatalf("default season: %v", err)
	}
	cases := map[string]func(config.SeasonFile) config.SeasonFile{
		"bad start": func(s config.SeasonFile) config.SeasonFile { s.Start = "March 5"; return s },
		"reversed": func(s config.SeasonFile) config.SeasonFile {
			s.Start, s.End = s.End, s.Start
			return s
		},
		"bad frequency": func(s config.SeasonFile) config.SeasonFile {
			s.Disciplines = append([]config.DisciplineEntry(nil), s.Disciplines...)
			s.Disciplines[0].Frequency = "hourly"
			return s
		},
		"bad weekday": func(s config.SeasonFile) config.SeasonFile {
			s.Disciplines = []config.DisciplineEntry{{ID: "x", Name: "X", Frequency: "weekly", Days: []string{"funday"}}}
			return s
		},
	}
	for name, mutate := range cases {
		name, mutate := name, mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := bootstrap.BuildSeason(mutate(base)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestMarksOutsideEditableRangeAreNotRecorded(t *testing.T) {
	t.Parallel()
	app, cfg := newApp(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, date := range []time.Time{
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		out, err := app.CalendarCLI.Mark(ctx, date, "reading", "completed")
		if err != nil {
			t.Fatalf("mark %s: %v", date.Format("2006-01-02"), err)
		}
		if out.Applied || out.Reason == "" {
			t.Fatalf("expected ignored mark on %s, got %+v", date.Format("2006-01-02"), out)
		}
	}

	history, err := app.ProgressCLI.History(ctx, 5)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("ignored marks reached history: %+v", history)
	}
	if _, err := os.Stat(filepath.Join(cfg.StateDir, "progressState.json")); !os.IsNotExist(err) {
		t.Fatalf("ignored marks wrote state: %v", err)
	}
}

func TestRestoreRebuildsLostProgressFile(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.Fixed{At: time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC)}
	ctx := context.Background()

	first, err := bootstrap.NewWithClock(cfg, logger, clk)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := first.CalendarCLI.Mark(ctx, time.Time{}, "fast", "skipped"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if _, err := first.CalendarCLI.Mark(ctx, time.Time{}, "fast", "completed"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfg.StateDir, "progressState.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt state: %v", err)
	}

	second, err := bootstrap.NewWithClock(cfg, logger, clk)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	out, err := second.ProgressCLI.Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if out.Cells != 1 || out.Days != 1 {
		t.Fatalf("unexpected restore output %+v", out)
	}
	day, err := second.CalendarCLI.Day(ctx, time.Time{}, true)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	for _, item := range day.Items {
		if item.ID == "fast" && item.Status != "completed" {
			t.Fatalf("fast restored as %+v", item)
		}
	}
	raw, err := os.ReadFile(filepath.Join(cfg.StateDir, "progressState.json"))
	if err != nil || !strings.Contains(string(raw), `"fast":"completed"`) {
		t.Fatalf("restored state not written: %s %v", raw, err)
	}
}
