package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"exodus/internal/platform/slug"
)

//go:embed default_season.yaml
var defaultSeason []byte

// SeasonFile is the on-disk shape of season.yaml.
type SeasonFile struct {
	Name        string            `yaml:"name"`
	Start       string            `yaml:"start"`
	End         string            `yaml:"end"`
	Disciplines []DisciplineEntry `yaml:"disciplines"`
}

type DisciplineEntry struct {
	ID        string   `yaml:"id,omitempty"`
	Name      string   `yaml:"name"`
	Icon      string   `yaml:"icon,omitempty"`
	Frequency string   `yaml:"frequency"`
	Days      []string `yaml:"days,omitempty"`
}

// DefaultSeason is the built-in Lent 2025 season with the Exodus disciplines.
func DefaultSeason() (SeasonFile, error) {
	return ParseSeason(defaultSeason)
}

// LoadSeason reads path, falling back to the built-in season when the file
// does not exist. found reports which one was used.
func LoadSeason(path string) (season SeasonFile, found bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			season, err = DefaultSeason()
			return season, false, err
		}
		return SeasonFile{}, false, fmt.Errorf("read season file: %w", err)
	}
	season, err = ParseSeason(raw)
	if err != nil {
		return SeasonFile{}, true, fmt.Errorf("%s: %w", path, err)
	}
	return season, true, nil
}

// ParseSeason decodes YAML and normalises text. Names are NFC-normalised and
// entries without an id get one derived from the name.
func ParseSeason(raw []byte) (SeasonFile, error) {
	var season SeasonFile
	if err := yaml.Unmarshal(raw, &season); err != nil {
		return SeasonFile{}, fmt.Errorf("parse season: %w", err)
	}
	season.Name = norm.NFC.String(strings.TrimSpace(season.Name))
	season.Start = strings.TrimSpace(season.Start)
	season.End = strings.TrimSpace(season.End)
	for i := range season.Disciplines {
		d := &season.Disciplines[i]
		d.Name = norm.NFC.String(strings.TrimSpace(d.Name))
		d.ID = norm.NFC.String(strings.TrimSpace(d.ID))
		if d.ID == "" {
			d.ID = slug.Make(d.Name)
		}
		d.Frequency = strings.ToLower(strings.TrimSpace(d.Frequency))
	}
	return season, nil
}

// WriteSeason writes season as YAML, refusing to replace an existing file
// unless overwrite is set.
func WriteSeason(path string, season SeasonFile, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("season file already exists: %s", path)
		}
	}
	raw, err := yaml.Marshal(season)
	if err != nil {
		return fmt.Errorf("marshal season: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create season dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write season file: %w", err)
	}
	return nil
}

// Icons maps discipline ids to their display icon.
func (s SeasonFile) Icons() map[string]string {
	out := make(map[string]string, len(s.Disciplines))
	for _, d := range s.Disciplines {
		if d.Icon != "" {
			out[d.ID] = d.Icon
		}
	}
	return out
}
