package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	HomeEnv     = "EXODUS_HOME"
	LogLevelEnv = "EXODUS_LOG_LEVEL"
	stateDir    = ".exodus"
)

type Config struct {
	HomePath   string
	StateDir   string
	DBPath     string
	SeasonPath string
	JournalDir string
}

func New(homePath string) (Config, error) {
	if strings.TrimSpace(homePath) == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	state := filepath.Join(homePath, stateDir)
	return Config{
		HomePath:   homePath,
		StateDir:   state,
		DBPath:     filepath.Join(state, "exodus.db"),
		SeasonPath: filepath.Join(homePath, "season.yaml"),
		JournalDir: filepath.Join(homePath, "journal"),
	}, nil
}

// LoadEnv reads .env files into the process environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ResolveHome picks the flag value, then $EXODUS_HOME, then ~/exodus.
func ResolveHome(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv(HomeEnv)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, "exodus"), nil
}
