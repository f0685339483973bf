package dto

import "time"

type WriteInput struct {
	Date time.Time
}

type WriteOutput struct {
	Path    string
	Created bool
}

type ReadInput struct {
	Date time.Time
}

type ReadOutput struct {
	Found   bool
	Content string
}
