package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	progressout "exodus/internal/modules/progress/adapter/out"
	"exodus/internal/modules/progress/domain"
)

func TestSQLiteHistoryProjectorRecordAndRecent(t *testing.T) {
	t.Parallel()
	projector, err := progressout.NewSQLiteHistoryProjector(filepath.Join(t.TempDir(), ".exodus", "exodus.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	t.Cleanup(func() { _ = projector.Close() })
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	entries := []domain.HistoryEntry{
		{ID: "e1", Date: "2025-03-10", DisciplineID: "reading", Status: domain.StatusSkipped, RecordedAt: base},
		{ID: "e2", Date: "2025-03-10", DisciplineID: "reading", Status: domain.StatusCompleted, Previous: domain.StatusSkipped, RecordedAt: base.Add(time.Minute)},
		{ID: "e3", Date: "2025-03-11", DisciplineID: "fast", Status: domain.StatusFailed, RecordedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		if err := projector.Record(ctx, e); err != nil {
			t.Fatalf("record %s: %v", e.ID, err)
		}
	}

	recent, err := projector.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "e3" || recent[1].ID != "e2" {
		t.Fatalf("unexpected recent order %+v", recent)
	}
	if recent[1].Previous != domain.StatusSkipped || !recent[1].RecordedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("unexpected entry %+v", recent[1])
	}

	cells, err := projector.Cells(ctx)
	if err != nil {
		t.Fatalf("cells: %v", err)
	}
	want := domain.Store{
		"2025-03-10": {"reading": domain.StatusCompleted},
		"2025-03-11": {"fast": domain.StatusFailed},
	}
	if !cells.Equal(want) {
		t.Fatalf("cells = %v, want %v", cells, want)
	}
}

func TestSQLiteHistoryProjectorRebuild(t *testing.T) {
	t.Parallel()
	projector, err := progressout.NewSQLiteHistoryProjector(filepath.Join(t.TempDir(), "exodus.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	t.Cleanup(func() { _ = projector.Close() })
	ctx := context.Background()

	if err := projector.Record(ctx, domain.HistoryEntry{ID: "stale", Date: "2025-03-05", DisciplineID: "tv", Status: domain.StatusFailed, RecordedAt: time.Now()}); err != nil {
		t.Fatalf("record: %v", err)
	}
	snapshot := domain.Store{"2025-03-06": {"tv": domain.StatusCompleted, "music": domain.StatusSkipped}}
	if err := projector.Rebuild(ctx, snapshot); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	cells, err := projector.Cells(ctx)
	if err != nil {
		t.Fatalf("cells: %v", err)
	}
	if !cells.Equal(snapshot) {
		t.Fatalf("cells = %v, want %v", cells, snapshot)
	}
	recent, err := projector.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("rebuild must keep the event log, got %d events", len(recent))
	}
}

func TestSQLiteHistoryProjectorOrdersWithinOneSecond(t *testing.T) {
	t.Parallel()
	projector, err := progressout.NewSQLiteHistoryProjector(filepath.Join(t.TempDir(), "exodus.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	t.Cleanup(func() { _ = projector.Close() })
	ctx := context.Background()
	second := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	entries := []domain.HistoryEntry{
		{ID: "b", Date: "2025-03-10", DisciplineID: "reading", Status: domain.StatusFailed, RecordedAt: second},
		{ID: "a", Date: "2025-03-10", DisciplineID: "reading", Status: domain.StatusCompleted, Previous: domain.StatusFailed, RecordedAt: second.Add(100 * time.Millisecond)},
	}
	for _, e := range entries {
		if err := projector.Record(ctx, e); err != nil {
			t.Fatalf("record %s: %v", e.ID, err)
		}
	}
	recent, err := projector.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "a" || recent[1].ID != "b" {
		t.Fatalf("unexpected order %+v", recent)
	}
	if !recent[0].RecordedAt.Equal(second.Add(100 * time.Millisecond)) {
		t.Fatalf("recorded_at lost precision: %v", recent[0].RecordedAt)
	}
}
