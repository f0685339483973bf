package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrNotEditable  = errors.New("date is not editable")
	ErrOutOfSeason  = errors.New("date is outside the season")
	ErrCorruptState = errors.New("corrupt progress state")
)
