package dto

import "time"

type OverviewOutput struct {
	Name           string
	Start          time.Time
	End            time.Time
	Today          time.Time
	TotalDays      int
	DaysElapsed    int
	Percent        int
	DayNumber      int
	Active         bool
	Finished       bool
	DaysUntilStart int
}
