package dto

import "time"

type DisciplineStats struct {
	ID            string
	Name          string
	Applicable    int
	Completed     int
	Failed        int
	Skipped       int
	Unset         int
	Rate          int
	CurrentStreak int
	LongestStreak int
}

type ReportOutput struct {
	SeasonName  string
	Started     bool
	From        time.Time
	Through     time.Time
	Days        int
	OverallRate int
	Disciplines []DisciplineStats
}
