package dto

import (
	"io"
	"time"
)

// DayInput selects a date; the zero Date means the session's today.
type DayInput struct {
	Date          time.Time
	ShowCompleted bool
}

type DayItem struct {
	ID        string
	Name      string
	Frequency string
	Status    string
	Set       bool
}

type DayOutput struct {
	SeasonName    string
	Date          time.Time
	Today         time.Time
	IsToday       bool
	DayNumber     int
	Phase         string
	Placeholder   string
	CanPrevious   bool
	CanNext       bool
	Editable      bool
	ShowCompleted bool
	Items         []DayItem
	Applicable    int
	Completed     int
	AllDone       bool
}

type MarkInput struct {
	Date         time.Time
	DisciplineID string
	Status       string
}

// MarkOutput reports Applied=false with a Reason when the request was
// ignored because the date or discipline cannot be edited.
type MarkOutput struct {
	Applied         bool
	Reason          string
	Date            time.Time
	DisciplineID    string
	Status          string
	Previous        string
	FirstCompletion bool
	PersistError    string
}

type NavigateInput struct {
	From   time.Time
	Intent string
}

type NavigateOutput struct {
	Date  time.Time
	Moved bool
}

type ScheduleDay struct {
	Date        time.Time
	DayNumber   int
	Disciplines []string
}

type ScheduleOutput struct {
	SeasonName string
	Days       []ScheduleDay
}

type ExportICSInput struct {
	Writer io.Writer
}

type ExportICSOutput struct {
	Events int
}
