package domain

import (
	"time"

	"exodus/internal/platform/clock"
)

// CompletionEvent fires when a cell turns Completed from any other state.
type CompletionEvent struct {
	Date         time.Time
	DisciplineID string
}

// Update is the outcome of setting a single cell.
type Update struct {
	Store       Store
	Previous    Status
	HadPrevious bool
	Event       *CompletionEvent
}

// SetStatus applies one mutation and derives the first-completion event.
func SetStatus(store Store, date time.Time, disciplineID string, status Status) Update {
	prev, had := store.StatusOf(date, disciplineID)
	u := Update{
		Store:       store.With(date, disciplineID, status),
		Previous:    prev,
		HadPrevious: had,
	}
	if status == StatusCompleted && prev != StatusCompleted {
		u.Event = &CompletionEvent{Date: clock.Date(date), DisciplineID: disciplineID}
	}
	return u
}

// HistoryEntry is one recorded mutation.
type HistoryEntry struct {
	ID           string
	Date         string
	DisciplineID string
	Status       Status
	Previous     Status
	RecordedAt   time.Time
}
