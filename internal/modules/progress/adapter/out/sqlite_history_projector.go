package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"exodus/internal/modules/progress/domain"
	progressout "exodus/internal/modules/progress/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteHistoryProjector struct {
	db *sqlx.DB
}

type eventRow struct {
	ID           string `db:"id"`
	Day          string `db:"day"`
	DisciplineID string `db:"discipline_id"`
	Status       string `db:"status"`
	Previous     string `db:"previous"`
	RecordedAt   string `db:"recorded_at"`
}

// recordedAtLayout keeps every timestamp the same width so that text order
// in recorded_at matches time order.
const recordedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type cellRow struct {
	Day          string `db:"day"`
	DisciplineID string `db:"discipline_id"`
	Status       string `db:"status"`
}

func NewSQLiteHistoryProjector(dbPath string) (*SQLiteHistoryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	projector := &SQLiteHistoryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

var _ progressout.HistoryProjector = (*SQLiteHistoryProjector)(nil)

func (s *SQLiteHistoryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS progress_events (
  id TEXT PRIMARY KEY,
  day TEXT NOT NULL,
  discipline_id TEXT NOT NULL,
  status TEXT NOT NULL,
  previous TEXT NOT NULL DEFAULT '',
  recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_progress_events_recorded ON progress_events(recorded_at);
CREATE TABLE IF NOT EXISTS progress_cells (
  day TEXT NOT NULL,
  discipline_id TEXT NOT NULL,
  status TEXT NOT NULL,
  PRIMARY KEY (day, discipline_id)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create progress tables: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Close() error {
	return s.db.Close()
}

func (s *SQLiteHistoryProjector) Record(ctx context.Context, entry domain.HistoryEntry) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.NamedExecContext(ctx, `
INSERT INTO progress_events (id, day, discipline_id, status, previous, recorded_at)
VALUES (:id, :day, :discipline_id, :status, :previous, :recorded_at)`, eventRow{
		ID:           entry.ID,
		Day:          entry.Date,
		DisciplineID: entry.DisciplineID,
		Status:       string(entry.Status),
		Previous:     string(entry.Previous),
		RecordedAt:   entry.RecordedAt.UTC().Format(recordedAtLayout),
	})
	if err != nil {
		return fmt.Errorf("insert progress event: %w", err)
	}
	if err := upsertCell(ctx, tx, cellRow{Day: entry.Date, DisciplineID: entry.DisciplineID, Status: string(entry.Status)}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// Rebuild replaces the cell table with the snapshot; the event log is kept.
func (s *SQLiteHistoryProjector) Rebuild(ctx context.Context, store domain.Store) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM progress_cells`); err != nil {
		return fmt.Errorf("reset progress cells: %w", err)
	}
	for day, row := range store {
		for disciplineID, status := range row {
			if err := upsertCell(ctx, tx, cellRow{Day: day, DisciplineID: disciplineID, Status: string(status)}); err != nil {
				return err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild tx: %w", err)
	}
	return nil
}

func upsertCell(ctx context.Context, tx *sqlx.Tx, row cellRow) error {
	_, err := tx.NamedExecContext(ctx, `
INSERT INTO progress_cells (day, discipline_id, status)
VALUES (:day, :discipline_id, :status)
ON CONFLICT(day, discipline_id) DO UPDATE SET status=excluded.status`, row)
	if err != nil {
		return fmt.Errorf("upsert progress cell: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	rows := []eventRow{}
	err := s.db.SelectContext(ctx, &rows, `
SELECT id, day, discipline_id, status, previous, recorded_at
FROM progress_events
ORDER BY recorded_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	out := make([]domain.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		recorded, err := time.Parse(time.RFC3339Nano, r.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", r.RecordedAt, err)
		}
		out = append(out, domain.HistoryEntry{
			ID:           r.ID,
			Date:         r.Day,
			DisciplineID: r.DisciplineID,
			Status:       domain.Status(r.Status),
			Previous:     domain.Status(r.Previous),
			RecordedAt:   recorded,
		})
	}
	return out, nil
}

// Cells lists the projected cell table ordered by day and discipline.
func (s *SQLiteHistoryProjector) Cells(ctx context.Context) (domain.Store, error) {
	rows := []cellRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT day, discipline_id, status FROM progress_cells ORDER BY day, discipline_id`); err != nil {
		return nil, fmt.Errorf("query progress cells: %w", err)
	}
	out := domain.NewStore()
	for _, r := range rows {
		if out[r.Day] == nil {
			out[r.Day] = domain.Row{}
		}
		out[r.Day][r.DisciplineID] = domain.Status(r.Status)
	}
	return out, nil
}
