package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "exodus/internal/platform/errors"
)

type FrequencyKind string

const (
	FrequencyDaily   FrequencyKind = "daily"
	FrequencyWeekday FrequencyKind = "weekday"
	FrequencyWeekly  FrequencyKind = "weekly"
)

func (k FrequencyKind) Validate() error {
	switch k {
	case FrequencyDaily, FrequencyWeekday, FrequencyWeekly:
		return nil
	default:
		return fmt.Errorf("%w: unsupported frequency %q", apperrors.ErrInvalidInput, string(k))
	}
}

type Frequency struct {
	Kind FrequencyKind
	Days WeekdaySet
}

func Daily() Frequency {
	return Frequency{Kind: FrequencyDaily}
}

func OnWeekdays(days ...Weekday) Frequency {
	return Frequency{Kind: FrequencyWeekday, Days: NewWeekdaySet(days...)}
}

func Weekly(days ...Weekday) Frequency {
	return Frequency{Kind: FrequencyWeekly, Days: NewWeekdaySet(days...)}
}

func (f Frequency) Validate() error {
	if err := f.Kind.Validate(); err != nil {
		return err
	}
	if f.Kind != FrequencyDaily && f.Days.Empty() {
		return fmt.Errorf("%w: %s frequency needs at least one day", apperrors.ErrInvalidInput, f.Kind)
	}
	return nil
}

func (f Frequency) String() string {
	if f.Kind == FrequencyDaily {
		return string(f.Kind)
	}
	return string(f.Kind) + " (" + strings.Join(f.Days.Names(), ", ") + ")"
}

// Discipline carries only what scheduling needs; display decoration stays in
// configuration.
type Discipline struct {
	ID        string
	Name      string
	Frequency Frequency
}

func (d Discipline) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: discipline id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: discipline %q needs a name", apperrors.ErrInvalidInput, d.ID)
	}
	if err := d.Frequency.Validate(); err != nil {
		return fmt.Errorf("discipline %q: %w", d.ID, err)
	}
	return nil
}

// IsApplicable reports whether d is in scope on date.
func IsApplicable(d Discipline, date time.Time) bool {
	switch d.Frequency.Kind {
	case FrequencyDaily:
		return true
	case FrequencyWeekday, FrequencyWeekly:
		return d.Frequency.Days.Has(WeekdayOf(date))
	default:
		return false
	}
}
