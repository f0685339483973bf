package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	progressout "exodus/internal/modules/progress/port/out"
	apperrors "exodus/internal/platform/errors"
)

const (
	backupSuffix = ".backup"
	tmpSuffix    = ".tmp"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FileKeyValueStore keeps one JSON document per key under the state dir.
// Writes go to a temp file first and are renamed into place; the previous
// document survives as <key>.json.backup.
type FileKeyValueStore struct {
	dir string
}

func NewFileKeyValueStore(stateDir string) progressout.KeyValueStore {
	return &FileKeyValueStore{dir: stateDir}
}

func (s *FileKeyValueStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: key %q", apperrors.ErrInvalidInput, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileKeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return "", false, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(payload), true, nil
}

func (s *FileKeyValueStore) Set(_ context.Context, key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+backupSuffix); err != nil {
			return fmt.Errorf("backup %s: %w", key, err)
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	payload, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, payload, 0o644)
}
