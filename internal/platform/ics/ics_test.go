package ics_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"exodus/internal/platform/ics"
)

func TestWriteAllDayEvents(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	err := ics.Write(&sb, ics.Calendar{
		ProductID: "-//exodus//season//EN",
		Name:      "Lent 2025",
		Stamp:     time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
		Events: []ics.Event{{
			UID:         "2025-03-05-fast@exodus",
			Date:        time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			Summary:     "Fast, Weekly fraternity meeting",
			Description: "line1\nline2",
		}},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	body := sb.String()
	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"PRODID:-//exodus//season//EN\r\n",
		"DTSTAMP:20250301T080000Z\r\n",
		"DTSTART;VALUE=DATE:20250305\r\n",
		"DTEND;VALUE=DATE:20250306\r\n",
		"SUMMARY:Fast\\, Weekly fraternity meeting\r\n",
		"DESCRIPTION:line1\\nline2\r\n",
		"END:VCALENDAR\r\n",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("calendar missing %q:\n%s", want, body)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePropagatesWriterError(t *testing.T) {
	t.Parallel()
	if err := ics.Write(failingWriter{}, ics.Calendar{ProductID: "x"}); err == nil {
		t.Fatalf("expected write error")
	}
}
