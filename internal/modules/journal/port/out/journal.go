package out

import (
	"context"
	"time"
)

type NoteStore interface {
	Read(ctx context.Context, date time.Time) (content string, found bool, err error)
	Write(ctx context.Context, date time.Time, content string) (path string, err error)
}
