package dto

import "time"

type DisciplineOutput struct {
	ID        string
	Name      string
	Frequency string
	Days      []string
}

type ForDateInput struct {
	Date time.Time
}
