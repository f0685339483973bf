package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	progressout "exodus/internal/modules/progress/adapter/out"
	apperrors "exodus/internal/platform/errors"
)

func TestFileKeyValueStoreMissingKey(t *testing.T) {
	t.Parallel()
	store := progressout.NewFileKeyValueStore(filepath.Join(t.TempDir(), ".exodus"))
	value, ok, err := store.Get(context.Background(), "progressState")
	if err != nil || ok || value != "" {
		t.Fatalf("expected absent key, got %q %v %v", value, ok, err)
	}
}

func TestFileKeyValueStoreRoundTripAndBackup(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), ".exodus")
	store := progressout.NewFileKeyValueStore(dir)
	ctx := context.Background()

	if err := store.Set(ctx, "progressState", `{"a":1}`); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := store.Set(ctx, "progressState", `{"a":2}`); err != nil {
		t.Fatalf("second set: %v", err)
	}
	value, ok, err := store.Get(ctx, "progressState")
	if err != nil || !ok {
		t.Fatalf("get: %v %v", ok, err)
	}
	if value != `{"a":2}` {
		t.Fatalf("unexpected value %q", value)
	}
	backup, err := os.ReadFile(filepath.Join(dir, "progressState.json.backup"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != `{"a":1}` {
		t.Fatalf("unexpected backup %q", backup)
	}
	if _, err := os.Stat(filepath.Join(dir, "progressState.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file should be gone, stat err=%v", err)
	}
}

func TestFileKeyValueStoreRejectsPathKeys(t *testing.T) {
	t.Parallel()
	store := progressout.NewFileKeyValueStore(t.TempDir())
	err := store.Set(context.Background(), "../escape", "x")
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
