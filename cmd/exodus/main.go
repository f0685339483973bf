package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"exodus/internal/bootstrap"
	calendardto "exodus/internal/modules/calendar/dto"
	disciplinedto "exodus/internal/modules/discipline/dto"
	"exodus/internal/platform/clock"
	"exodus/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globals struct {
	home    string
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "exodus",
		Short:         "Track Lenten disciplines day by day",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadEnv()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return runTUI(g)
			}
			return printDay(cmd.OutOrStdout(), g, time.Time{}, true)
		},
	}
	root.PersistentFlags().StringVar(&g.home, "home", "", "data directory (default $EXODUS_HOME or ~/exodus)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(newTUICmd(g))
	root.AddCommand(newDayCmd(g))
	root.AddCommand(newMarkCmd(g))
	root.AddCommand(newSeasonCmd(g))
	root.AddCommand(newDisciplinesCmd(g))
	root.AddCommand(newScheduleCmd(g))
	root.AddCommand(newStatsCmd(g))
	root.AddCommand(newHistoryCmd(g))
	root.AddCommand(newReindexCmd(g))
	root.AddCommand(newRestoreCmd(g))
	root.AddCommand(newNoteCmd(g))
	root.AddCommand(newExportCmd(g))
	root.AddCommand(newInitCmd(g))
	return root
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	} else if v := strings.TrimSpace(os.Getenv(config.LogLevelEnv)); v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			level = slog.LevelWarn
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig(g *globals) (config.Config, error) {
	home, err := config.ResolveHome(g.home)
	if err != nil {
		return config.Config{}, err
	}
	return config.New(home)
}

func loadApp(g *globals) (*bootstrap.App, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, newLogger(g.verbose))
}

// parseDateFlag treats the empty string as today.
func parseDateFlag(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return clock.ParseDate(value)
}

func runTUI(g *globals) error {
	app, err := loadApp(g)
	if err != nil {
		return err
	}
	defer app.Close()
	return bootstrap.RunTUI(app)
}

func newTUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(g)
		},
	}
}

func printDay(w io.Writer, g *globals, date time.Time, showCompleted bool) error {
	app, err := loadApp(g)
	if err != nil {
		return err
	}
	defer app.Close()
	day, err := app.CalendarCLI.Day(context.Background(), date, showCompleted)
	if err != nil {
		return err
	}
	writeDay(w, day)
	return nil
}

func writeDay(w io.Writer, day calendardto.DayOutput) {
	header := fmt.Sprintf("%s  %s", day.SeasonName, day.Date.Format("Monday, January 2, 2006"))
	if day.DayNumber > 0 {
		header += fmt.Sprintf("  (day %d)", day.DayNumber)
	}
	if day.IsToday {
		header += "  today"
	}
	_, _ = fmt.Fprintln(w, header)
	if day.Placeholder != "" {
		_, _ = fmt.Fprintln(w, day.Placeholder)
		return
	}
	if day.AllDone && len(day.Items) == 0 {
		_, _ = fmt.Fprintln(w, "All disciplines completed for this day.")
		return
	}
	for _, item := range day.Items {
		mark := " "
		if item.Set {
			mark = statusMark(item.Status)
		}
		_, _ = fmt.Fprintf(w, "[%s] %-28s %s\n", mark, item.Name, item.ID)
	}
	_, _ = fmt.Fprintf(w, "%d/%d completed\n", day.Completed, day.Applicable)
	if !day.Editable {
		_, _ = fmt.Fprintln(w, "(view only)")
	}
}

func statusMark(status string) string {
	switch status {
	case "completed":
		return "x"
	case "failed":
		return "!"
	case "skipped":
		return "-"
	default:
		return " "
	}
}

func newDayCmd(g *globals) *cobra.Command {
	var date string
	var hideCompleted bool
	cmd := &cobra.Command{
		Use:     "day",
		Aliases: []string{"today"},
		Short:   "Show the disciplines for a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDateFlag(date)
			if err != nil {
				return err
			}
			return printDay(cmd.OutOrStdout(), g, d, !hideCompleted)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&hideCompleted, "hide-completed", false, "hide completed disciplines")
	return cmd
}

func newMarkCmd(g *globals) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "mark <discipline-id> <completed|failed|skipped>",
		Short: "Record a status for one discipline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateFlag(date)
			if err != nil {
				return err
			}
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.CalendarCLI.Mark(context.Background(), d, args[0], args[1])
			if err != nil {
				return err
			}
			return writeMark(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	return cmd
}

// writeMark reports a mark. Ignored requests print their reason and are not
// errors; only a failed save is.
func writeMark(w io.Writer, out calendardto.MarkOutput) error {
	if !out.Applied {
		_, _ = fmt.Fprintf(w, "ignored: %s\n", out.Reason)
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s %s on %s\n", out.DisciplineID, out.Status, clock.DateKey(out.Date))
	if out.FirstCompletion {
		_, _ = fmt.Fprintln(w, "✝ well done")
	}
	if out.PersistError != "" {
		return fmt.Errorf("progress not saved: %s", out.PersistError)
	}
	return nil
}

func newSeasonCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "season",
		Short: "Show the season window and overall progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SeasonCLI.Overview(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s: %s to %s\n", out.Name, clock.DateKey(out.Start), clock.DateKey(out.End))
			switch {
			case out.Finished:
				_, _ = fmt.Fprintln(w, "finished")
			case out.Active:
				_, _ = fmt.Fprintf(w, "day %d of %d (%d%%)\n", out.DayNumber, out.TotalDays+1, out.Percent)
			default:
				_, _ = fmt.Fprintf(w, "starts in %d days\n", out.DaysUntilStart)
			}
			return nil
		},
	}
}

func newDisciplinesCmd(g *globals) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "disciplines",
		Short: "List the discipline catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			var items []disciplinedto.DisciplineOutput
			if date == "" {
				items, err = app.DisciplineCLI.List(ctx)
			} else {
				d, perr := clock.ParseDate(date)
				if perr != nil {
					return perr
				}
				items, err = app.DisciplineCLI.ForDate(ctx, d)
			}
			if err != nil {
				return err
			}
			for _, item := range items {
				freq := item.Frequency
				if len(item.Days) > 0 {
					freq += " " + strings.Join(item.Days, ",")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-32s %s\n", item.ID, item.Name, freq)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "only disciplines scheduled on YYYY-MM-DD")
	return cmd
}

func newScheduleCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print every season day with its scheduled disciplines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.CalendarCLI.Schedule(context.Background())
			if err != nil {
				return err
			}
			for _, day := range out.Days {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  day %2d  %d disciplines\n",
					day.Date.Format("Mon 2006-01-02"), day.DayNumber, len(day.Disciplines))
			}
			return nil
		},
	}
}

func newStatsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Completion rates and streaks per discipline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.StatsCLI.Report(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !out.Started {
				_, _ = fmt.Fprintf(w, "%s has not started yet\n", out.SeasonName)
				return nil
			}
			_, _ = fmt.Fprintf(w, "%s: %s to %s, %d days, %d%% overall\n",
				out.SeasonName, clock.DateKey(out.From), clock.DateKey(out.Through), out.Days, out.OverallRate)
			for _, d := range out.Disciplines {
				_, _ = fmt.Fprintf(w, "%-32s %3d/%-3d %3d%%  streak %d (best %d)\n",
					d.Name, d.Completed, d.Applicable, d.Rate, d.CurrentStreak, d.LongestStreak)
			}
			return nil
		},
	}
}

func newHistoryCmd(g *globals) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent status changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			entries, err := app.ProgressCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no history")
				return nil
			}
			for _, e := range entries {
				prev := e.Previous
				if prev == "" {
					prev = "unset"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s: %s -> %s\n",
					e.RecordedAt.Local().Format(time.DateTime), e.Date, e.DisciplineID, prev, e.Status)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries")
	return cmd
}

func newReindexCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the history index from the progress file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ProgressCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex complete")
			return nil
		},
	}
}

func newRestoreCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Rebuild the progress file from the history index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProgressCLI.Restore(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "restored %d cells over %d days\n", out.Cells, out.Days)
			return nil
		},
	}
}

func newNoteCmd(g *globals) *cobra.Command {
	var date string
	var show bool
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Create or refresh the journal note for a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDateFlag(date)
			if err != nil {
				return err
			}
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			if show {
				note, err := app.JournalCLI.Read(context.Background(), d)
				if err != nil {
					return err
				}
				if !note.Found {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no note for this date; run `exodus note` to create it")
					return nil
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), note.Content)
				return nil
			}
			out, err := app.JournalCLI.Write(context.Background(), d)
			if err != nil {
				return err
			}
			verb := "updated"
			if out.Created {
				verb = "created"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, out.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&show, "show", false, "print the note instead of writing it")
	return cmd
}

func newExportCmd(g *globals) *cobra.Command {
	export := &cobra.Command{Use: "export", Short: "Export the season"}

	var icsOut string
	icsCmd := &cobra.Command{
		Use:   "ics",
		Short: "Write weekly disciplines as an iCalendar file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			w := cmd.OutOrStdout()
			if icsOut != "" && icsOut != "-" {
				f, err := os.Create(icsOut)
				if err != nil {
					return fmt.Errorf("create %s: %w", icsOut, err)
				}
				defer f.Close()
				w = f
			}
			out, err := app.CalendarCLI.ExportICS(context.Background(), w)
			if err != nil {
				return err
			}
			if icsOut != "" && icsOut != "-" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d events to %s\n", out.Events, icsOut)
			}
			return nil
		},
	}
	icsCmd.Flags().StringVar(&icsOut, "out", "", "output file (default stdout)")

	var xlsxOut string
	xlsxCmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Write the progress grid as a spreadsheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(g)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProgressCLI.ExportXLSX(context.Background(), xlsxOut)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d days to %s\n", out.Rows, out.Path)
			return nil
		},
	}
	xlsxCmd.Flags().StringVar(&xlsxOut, "out", "exodus.xlsx", "output file")

	export.AddCommand(icsCmd, xlsxCmd)
	return export
}

func newInitCmd(g *globals) *cobra.Command {
	var year int
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write season.yaml for the Lent of a given year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().Year()
			}
			season, err := bootstrap.SeasonForYear(year)
			if err != nil {
				return err
			}
			if err := config.WriteSeason(cfg.SeasonPath, season, force); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s to %s)\n", cfg.SeasonPath, season.Start, season.End)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "season year (default current year)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing season file")
	return cmd
}
