package out

import (
	"context"

	"exodus/internal/modules/progress/domain"
)

// KeyValueStore is the external persistence collaborator.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// HistoryProjector keeps a queryable log of mutations next to the snapshot.
type HistoryProjector interface {
	Record(ctx context.Context, entry domain.HistoryEntry) error
	Rebuild(ctx context.Context, store domain.Store) error
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
	// Cells returns the projected latest status of every cell.
	Cells(ctx context.Context) (domain.Store, error)
}

type CompletionNotifier interface {
	NotifyFirstCompletion(ctx context.Context, event domain.CompletionEvent)
}

// Grid is a date by discipline table ready for export.
type Grid struct {
	Columns []string
	Rows    []GridRow
}

type GridRow struct {
	Date  string
	Cells []string
}

type GridExporter interface {
	Export(path string, grid Grid) error
}
