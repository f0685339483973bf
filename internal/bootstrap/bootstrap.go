package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	calendarinadapter "exodus/internal/modules/calendar/adapter/in"
	calendarusecase "exodus/internal/modules/calendar/usecase"
	disciplineinadapter "exodus/internal/modules/discipline/adapter/in"
	disciplineusecase "exodus/internal/modules/discipline/usecase"
	journalinadapter "exodus/internal/modules/journal/adapter/in"
	journaloutadapter "exodus/internal/modules/journal/adapter/out"
	journalusecase "exodus/internal/modules/journal/usecase"
	progressinadapter "exodus/internal/modules/progress/adapter/in"
	progressoutadapter "exodus/internal/modules/progress/adapter/out"
	progressservice "exodus/internal/modules/progress/service"
	progressusecase "exodus/internal/modules/progress/usecase"
	seasoninadapter "exodus/internal/modules/season/adapter/in"
	seasonusecase "exodus/internal/modules/season/usecase"
	statsinadapter "exodus/internal/modules/stats/adapter/in"
	statsusecase "exodus/internal/modules/stats/usecase"
	"exodus/internal/platform/clock"
	"exodus/internal/platform/config"
	"exodus/internal/platform/id"
	"exodus/internal/platform/tx"
	uiapp "exodus/internal/ui/app"
)

type App struct {
	SeasonCLI     seasoninadapter.CLIHandler
	DisciplineCLI disciplineinadapter.CLIHandler
	ProgressCLI   progressinadapter.CLIHandler
	CalendarCLI   calendarinadapter.CLIHandler
	StatsCLI      statsinadapter.CLIHandler
	JournalCLI    journalinadapter.CLIHandler

	Icons       map[string]string
	Completions *progressoutadapter.ChannelNotifier

	history *progressoutadapter.SQLiteHistoryProjector
}

// New wires every module against cfg and loads the persisted progress once.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	return NewWithClock(cfg, logger, clock.SystemClock{})
}

func NewWithClock(cfg config.Config, logger *slog.Logger, clk clock.Clock) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	seasonFile, found, err := config.LoadSeason(cfg.SeasonPath)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Debug("season file not found, using built-in season", "path", cfg.SeasonPath)
	}
	window, catalog, err := BuildSeason(seasonFile)
	if err != nil {
		return nil, fmt.Errorf("load season: %w", err)
	}

	history, err := progressoutadapter.NewSQLiteHistoryProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history projector: %w", err)
	}
	completions := progressoutadapter.NewChannelNotifier(8)
	progressSvc := progressservice.NewProgressService(
		clk,
		id.UUIDv7{},
		progressoutadapter.NewFileKeyValueStore(cfg.StateDir),
		history,
		&tx.SerialManager{},
		logger,
		completions,
		progressoutadapter.NewLogNotifier(logger),
	)
	progressUC := progressusecase.NewInteractor(progressSvc, progressoutadapter.XLSXExporter{}, window, catalog)
	if _, err := progressUC.Load(context.Background()); err != nil {
		_ = history.Close()
		return nil, err
	}

	calendarUC := calendarusecase.NewInteractor(window, catalog, progressUC, clk)
	return &App{
		SeasonCLI:     seasoninadapter.NewCLIHandler(seasonusecase.NewInteractor(window, clk)),
		DisciplineCLI: disciplineinadapter.NewCLIHandler(disciplineusecase.NewInteractor(catalog)),
		ProgressCLI:   progressinadapter.NewCLIHandler(progressUC),
		CalendarCLI:   calendarinadapter.NewCLIHandler(calendarUC),
		StatsCLI:      statsinadapter.NewCLIHandler(statsusecase.NewInteractor(window, catalog, progressUC, clk)),
		JournalCLI: journalinadapter.NewCLIHandler(journalusecase.NewInteractor(
			window,
			calendarUC,
			journaloutadapter.NewFileNoteStore(cfg.JournalDir),
		)),
		Icons:       seasonFile.Icons(),
		Completions: completions,
		history:     history,
	}, nil
}

func (a *App) Close() error {
	if a.history == nil {
		return nil
	}
	return a.history.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(uiapp.Handlers{
		Season:   app.SeasonCLI,
		Calendar: app.CalendarCLI,
		Stats:    app.StatsCLI,
		Journal:  app.JournalCLI,
	}, app.Icons, app.Completions.Events())
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
