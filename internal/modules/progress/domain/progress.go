package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"exodus/internal/platform/clock"
	apperrors "exodus/internal/platform/errors"
)

// StateKey is the persistence key holding the serialized Store.
const StateKey = "progressState"

type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

func (s Status) Validate() error {
	switch s {
	case StatusCompleted, StatusFailed, StatusSkipped:
		return nil
	default:
		return fmt.Errorf("%w: unsupported status %q", apperrors.ErrInvalidInput, string(s))
	}
}

func ParseStatus(value string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Row maps discipline id to status for one date.
type Row map[string]Status

// Store maps ISO date keys to rows. A Store is treated as an immutable value:
// With returns a new Store and never touches the receiver.
type Store map[string]Row

func NewStore() Store {
	return Store{}
}

// StatusOf reports false for a missing date or discipline (unset).
func (s Store) StatusOf(date time.Time, disciplineID string) (Status, bool) {
	row, ok := s[clock.DateKey(date)]
	if !ok {
		return "", false
	}
	status, ok := row[disciplineID]
	return status, ok
}

// Row returns a copy of the statuses recorded for date.
func (s Store) Row(date time.Time) Row {
	src := s[clock.DateKey(date)]
	out := make(Row, len(src))
	for id, status := range src {
		out[id] = status
	}
	return out
}

// With copies the outer map and the touched row only.
func (s Store) With(date time.Time, disciplineID string, status Status) Store {
	key := clock.DateKey(date)
	next := make(Store, len(s)+1)
	for k, row := range s {
		next[k] = row
	}
	row := make(Row, len(s[key])+1)
	for id, st := range s[key] {
		row[id] = st
	}
	row[disciplineID] = status
	next[key] = row
	return next
}

func (s Store) Equal(other Store) bool {
	if len(s) != len(other) {
		return false
	}
	for key, row := range s {
		otherRow, ok := other[key]
		if !ok || len(row) != len(otherRow) {
			return false
		}
		for id, status := range row {
			if otherRow[id] != status {
				return false
			}
		}
	}
	return true
}

// Cells counts recorded (date, discipline) pairs.
func (s Store) Cells() int {
	n := 0
	for _, row := range s {
		n += len(row)
	}
	return n
}

func (s Store) Encode() ([]byte, error) {
	if s == nil {
		s = Store{}
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return payload, nil
}

// Decode rejects anything that is not a date-keyed object of known statuses.
func Decode(payload []byte) (Store, error) {
	raw := map[string]map[string]string{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCorruptState, err)
	}
	out := make(Store, len(raw))
	for key, row := range raw {
		date, err := clock.ParseDate(key)
		if err != nil || clock.DateKey(date) != key {
			return nil, fmt.Errorf("%w: bad date key %q", apperrors.ErrCorruptState, key)
		}
		decoded := make(Row, len(row))
		for id, value := range row {
			status := Status(value)
			if err := status.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %v", apperrors.ErrCorruptState, key, id, err)
			}
			decoded[id] = status
		}
		out[key] = decoded
	}
	return out, nil
}
