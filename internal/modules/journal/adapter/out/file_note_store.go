package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"exodus/internal/modules/journal/domain"
	journalout "exodus/internal/modules/journal/port/out"
)

type FileNoteStore struct {
	dir string
}

func NewFileNoteStore(journalDir string) journalout.NoteStore {
	return &FileNoteStore{dir: journalDir}
}

func (s *FileNoteStore) Read(_ context.Context, date time.Time) (string, bool, error) {
	content, err := os.ReadFile(filepath.Join(s.dir, domain.RelativePath(date)))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read note: %w", err)
	}
	return string(content), true, nil
}

func (s *FileNoteStore) Write(_ context.Context, date time.Time, content string) (string, error) {
	path := filepath.Join(s.dir, domain.RelativePath(date))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	return path, nil
}
