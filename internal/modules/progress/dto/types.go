package dto

import "time"

type LoadOutput struct {
	Days  int
	Cells int
}

type StatusInput struct {
	Date         time.Time
	DisciplineID string
}

type StatusOutput struct {
	Status string
	Set    bool
}

type MarkInput struct {
	Date         time.Time
	DisciplineID string
	Status       string
}

type MarkOutput struct {
	Date            time.Time
	DisciplineID    string
	Status          string
	Previous        string
	FirstCompletion bool
	PersistError    string
}

type RowInput struct {
	Date time.Time
}

// RowOutput maps discipline id to status for one date.
type RowOutput struct {
	Date     time.Time
	Statuses map[string]string
}

type SnapshotOutput struct {
	Days map[string]map[string]string
}

type HistoryInput struct {
	Limit int
}

type HistoryEntryOutput struct {
	ID           string
	Date         string
	DisciplineID string
	Status       string
	Previous     string
	RecordedAt   time.Time
}

type ExportXLSXInput struct {
	Path string
}

type ExportXLSXOutput struct {
	Path string
	Rows int
}
